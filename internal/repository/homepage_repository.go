package repository

import (
	"gorm.io/gorm"

	"github.com/creatorhub/creator-review-api/internal/models"
)

// GormHomepageRepository is a GORM implementation of HomepageRepository
type GormHomepageRepository struct {
	db *gorm.DB
}

// NewHomepageRepository creates a new HomepageRepository
func NewHomepageRepository(db *gorm.DB) HomepageRepository {
	return &GormHomepageRepository{db: db}
}

func (r *GormHomepageRepository) Create(section *models.HomepageSection) error {
	return r.db.Create(section).Error
}

func (r *GormHomepageRepository) FindByID(id uint64) (*models.HomepageSection, error) {
	var section models.HomepageSection
	if err := r.db.First(&section, id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *GormHomepageRepository) List() ([]models.HomepageSection, error) {
	var sections []models.HomepageSection
	if err := r.db.Order("position ASC, id ASC").Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *GormHomepageRepository) Delete(id uint64) error {
	return r.db.Delete(&models.HomepageSection{}, id).Error
}
