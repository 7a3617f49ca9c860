package repository

import (
	"time"

	"github.com/creatorhub/creator-review-api/internal/models"
)

// UserRepository defines the interface for credential data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List retrieves users with optional role filtering and pagination
	List(filter UserFilter) ([]models.User, int64, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete soft deletes a user
	Delete(id uint64) error
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	Role        *models.Role
	Coordinator string
	Page        int
	PageSize    int
}

// TaskRepository defines the interface for campaign task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task and its videos stay untouched
	Delete(id uint64) error

	// CountUploads counts videos submitted against a task, excluding rejected ones
	CountUploads(taskID uint64) (int64, error)

	// CountUploadsByCreator counts a single creator's non-rejected videos for a task
	CountUploadsByCreator(taskID uint64, creator string) (int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	CreatorType *models.CreatorType
	Page        int
	PageSize    int
}

// VideoRepository defines the interface for video submission data access
type VideoRepository interface {
	// Create creates a new video
	Create(video *models.Video) error

	// FindByID finds a video by ID with optional preloading
	FindByID(id string, preload ...string) (*models.Video, error)

	// List retrieves videos with filtering and pagination
	List(filter VideoFilter) ([]models.Video, int64, error)

	// UpdateStatus transitions a video's status guarded by its current value,
	// returning the number of rows changed
	UpdateStatus(id string, from, to models.VideoStatus) (int64, error)

	// UpdateFields updates only the named columns of a video
	UpdateFields(id string, fields map[string]interface{}) error

	// AddInsight attaches an insight or UTM image to a video
	AddInsight(img *models.InsightImage) error

	// ListInsights lists a video's attached images, optionally by kind
	ListInsights(videoID string, kind *models.InsightKind) ([]models.InsightImage, error)

	// CountInsights counts a video's attached images of the given kind
	CountInsights(videoID string, kind models.InsightKind) (int64, error)

	// AddComment appends a feedback comment to a video
	AddComment(comment *models.VideoComment) error

	// ListComments lists a video's feedback thread in creation order
	ListComments(videoID string) ([]models.VideoComment, error)

	// Leaderboard aggregates total scores per creator, ranked descending
	Leaderboard(limit int) ([]LeaderboardRow, error)
}

// VideoFilter holds filtering options for listing videos
type VideoFilter struct {
	TaskID      *uint64
	Status      *models.VideoStatus
	Creator     string
	Coordinator string
	Query       string
	From        *time.Time
	To          *time.Time
	Page        int
	PageSize    int
}

// LeaderboardRow is one ranked entry in the creator leaderboard
type LeaderboardRow struct {
	CreatorUsername string `json:"creator_username"`
	TotalScore      int64  `json:"total_score"`
	ScoredVideos    int64  `json:"scored_videos"`
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Create(n *models.Notification) error
	FindByID(id uint64) (*models.Notification, error)
	List(page, pageSize int) ([]models.Notification, int64, error)
	Update(n *models.Notification) error
	Delete(id uint64) error
}

// HomepageRepository defines the interface for homepage section data access
type HomepageRepository interface {
	Create(section *models.HomepageSection) error
	FindByID(id uint64) (*models.HomepageSection, error)
	List() ([]models.HomepageSection, error)
	Delete(id uint64) error
}
