package repository

import (
	"gorm.io/gorm"

	"github.com/creatorhub/creator-review-api/internal/database"
	"github.com/creatorhub/creator-review-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks with filtering and pagination.
// A CreatorType filter also matches tasks open to all creator types.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})
	if filter.CreatorType != nil {
		query = query.Where("creator_type IN ?", []models.CreatorType{*filter.CreatorType, models.CreatorTypeAll})
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("start_date DESC, id DESC").
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete soft deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// CountUploads counts videos submitted against a task. Rejected submissions
// do not count toward the quota since the creator is expected to repost.
func (r *GormTaskRepository) CountUploads(taskID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Video{}).
		Where("task_id = ? AND status <> ?", taskID, models.VideoStatusRejected).
		Count(&count).Error
	return count, err
}

// CountUploadsByCreator counts a single creator's non-rejected videos for a task
func (r *GormTaskRepository) CountUploadsByCreator(taskID uint64, creator string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Video{}).
		Where("task_id = ? AND creator_username = ? AND status <> ?", taskID, creator, models.VideoStatusRejected).
		Count(&count).Error
	return count, err
}
