package repository

import (
	"gorm.io/gorm"

	"github.com/creatorhub/creator-review-api/internal/database"
	"github.com/creatorhub/creator-review-api/internal/models"
)

// GormVideoRepository is a GORM implementation of VideoRepository
type GormVideoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new VideoRepository
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &GormVideoRepository{db: db}
}

// Create creates a new video
func (r *GormVideoRepository) Create(video *models.Video) error {
	return r.db.Create(video).Error
}

// FindByID finds a video by ID with optional preloading
func (r *GormVideoRepository) FindByID(id string, preload ...string) (*models.Video, error) {
	var video models.Video
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("id = ?", id).First(&video).Error; err != nil {
		return nil, err
	}

	return &video, nil
}

// List retrieves videos with filtering and pagination, newest first.
// All filters narrow the same submission order, so a filtered result is
// always a subsequence of the unfiltered one.
func (r *GormVideoRepository) List(filter VideoFilter) ([]models.Video, int64, error) {
	var videos []models.Video

	query := r.db.Model(&models.Video{})

	if filter.TaskID != nil {
		query = query.Where("task_id = ?", *filter.TaskID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Creator != "" {
		query = query.Where("creator_username = ?", filter.Creator)
	}
	if filter.Coordinator != "" {
		query = query.Where("coordinator_username = ?", filter.Coordinator)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("creator_username LIKE ? OR id LIKE ?", like, like)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC, id DESC").
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Preload("Insights").Find(&videos).Error; err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

// UpdateStatus applies a status transition only while the current status
// still matches. A zero row count means the video moved concurrently.
func (r *GormVideoRepository) UpdateStatus(id string, from, to models.VideoStatus) (int64, error) {
	res := r.db.Model(&models.Video{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// UpdateFields updates only the named columns of a video.
func (r *GormVideoRepository) UpdateFields(id string, fields map[string]interface{}) error {
	return r.db.Model(&models.Video{}).Where("id = ?", id).Updates(fields).Error
}

// AddInsight attaches an insight or UTM image to a video
func (r *GormVideoRepository) AddInsight(img *models.InsightImage) error {
	return r.db.Create(img).Error
}

// ListInsights lists a video's attached images, optionally by kind
func (r *GormVideoRepository) ListInsights(videoID string, kind *models.InsightKind) ([]models.InsightImage, error) {
	var images []models.InsightImage
	query := r.db.Where("video_id = ?", videoID)
	if kind != nil {
		query = query.Where("kind = ?", *kind)
	}
	if err := query.Order("created_at ASC, id ASC").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// CountInsights counts a video's attached images of the given kind
func (r *GormVideoRepository) CountInsights(videoID string, kind models.InsightKind) (int64, error) {
	var count int64
	err := r.db.Model(&models.InsightImage{}).
		Where("video_id = ? AND kind = ?", videoID, kind).
		Count(&count).Error
	return count, err
}

// AddComment appends a feedback comment to a video
func (r *GormVideoRepository) AddComment(comment *models.VideoComment) error {
	return r.db.Create(comment).Error
}

// ListComments lists a video's feedback thread in creation order
func (r *GormVideoRepository) ListComments(videoID string) ([]models.VideoComment, error) {
	var comments []models.VideoComment
	if err := r.db.Where("video_id = ?", videoID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Leaderboard aggregates total scores per creator across fully scored videos
func (r *GormVideoRepository) Leaderboard(limit int) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow

	err := r.db.Model(&models.Video{}).
		Select("creator_username, SUM(score_consistency + score_creativity + score_content) AS total_score, COUNT(*) AS scored_videos").
		Where("score_consistency > 0 AND score_creativity > 0 AND score_content > 0").
		Group("creator_username").
		Order("total_score DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
