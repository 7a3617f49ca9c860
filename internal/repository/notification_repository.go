package repository

import (
	"gorm.io/gorm"

	"github.com/creatorhub/creator-review-api/internal/database"
	"github.com/creatorhub/creator-review-api/internal/models"
)

// GormNotificationRepository is a GORM implementation of NotificationRepository
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

func (r *GormNotificationRepository) FindByID(id uint64) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *GormNotificationRepository) List(page, pageSize int) ([]models.Notification, int64, error) {
	var notifications []models.Notification

	query := r.db.Model(&models.Notification{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC, id DESC").
		Scopes(database.Paginate(page, pageSize))

	if err := listQuery.Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (r *GormNotificationRepository) Update(n *models.Notification) error {
	return r.db.Save(n).Error
}

func (r *GormNotificationRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Notification{}, id).Error
}
