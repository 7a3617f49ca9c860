package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/creatorhub/creator-review-api/internal/constants"
	"github.com/creatorhub/creator-review-api/internal/models"
	"github.com/creatorhub/creator-review-api/internal/repository"
	"github.com/creatorhub/creator-review-api/internal/storage"
)

var (
	ErrVideoNotFound          = errors.New("video not found")
	ErrTaskNotFound           = errors.New("task not found")
	ErrInvalidTargetStatus    = errors.New("invalid target status")
	ErrTransitionNotAllowed   = errors.New("status transition not allowed")
	ErrRoleNotPermitted       = errors.New("role is not permitted to perform this transition")
	ErrNotVideoOwner          = errors.New("only the submitting creator may perform this action")
	ErrVideoNotApproved       = errors.New("video must be approved first")
	ErrVideoNotRejected       = errors.New("only a rejected video can be reposted")
	ErrInsightLimitReached    = errors.New("insight image limit reached")
	ErrScoreRequiresSocialURL = errors.New("scoring requires the social media URL to be set")
	ErrScoreRequiresInsights  = errors.New("scoring requires at least one insight image")
	ErrRatingOutOfRange       = errors.New("each rating must be between 1 and 5")
	ErrScoringNotPermitted    = errors.New("only admins and clients may submit scores")
	ErrCommentNotPermitted    = errors.New("only admins and clients may post feedback")
	ErrTaskNotAcceptingUpload = errors.New("task is not accepting uploads")
	ErrInvalidSocialURL       = errors.New("social media URL must be a valid http(s) URL")
	ErrFileRequired           = errors.New("a file upload is required")
	ErrCommentBodyRequired    = errors.New("comment body is required")
)

// transitionRoles is the review workflow edge table: for each current
// status, the reachable target statuses and the roles allowed to move
// there. Completed is a stored value only, never a transition target.
var transitionRoles = map[models.VideoStatus]map[models.VideoStatus][]models.Role{
	models.VideoStatusPending: {
		models.VideoStatusReview:   {models.RoleAdmin},
		models.VideoStatusRejected: {models.RoleAdmin, models.RoleClient},
	},
	models.VideoStatusReview: {
		models.VideoStatusApproved: {models.RoleClient},
		models.VideoStatusRejected: {models.RoleAdmin, models.RoleClient},
	},
}

// VideoService owns the video submission lifecycle: upload, review
// transitions, social URL, insight attachments, scoring and feedback.
type VideoService struct {
	videoRepo repository.VideoRepository
	taskRepo  repository.TaskRepository
	userRepo  repository.UserRepository
	store     storage.Storage
}

// NewVideoService creates a new VideoService.
func NewVideoService(videoRepo repository.VideoRepository, taskRepo repository.TaskRepository, userRepo repository.UserRepository, store storage.Storage) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		taskRepo:  taskRepo,
		userRepo:  userRepo,
		store:     store,
	}
}

// Actor identifies the authenticated caller of a workflow operation.
type Actor struct {
	Username string
	Role     models.Role
}

// UploadInput represents a new video submission.
type UploadInput struct {
	TaskID      uint64
	Creator     Actor
	File        io.Reader
	Filename    string
	ContentType string
}

// Upload stores a new submission for a task after checking the task gate:
// the task must accept uploads for the creator's type, not be overdue, and
// the creator must still be under quota.
func (s *VideoService) Upload(ctx context.Context, input UploadInput) (*models.Video, error) {
	if input.File == nil {
		return nil, ErrFileRequired
	}

	creator, err := s.userRepo.FindByUsername(input.Creator.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find creator: %w", err)
	}

	task, err := s.taskRepo.FindByID(input.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	uploaded, err := s.taskRepo.CountUploadsByCreator(task.ID, creator.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to count uploads: %w", err)
	}

	if !task.AcceptsUploadsFrom(creator.UserType, time.Now(), int(uploaded)) {
		return nil, ErrTaskNotAcceptingUpload
	}

	return s.storeSubmission(ctx, task, creator, input, false)
}

// Repost stores a fresh submission replacing a rejected one. The new video
// gets its own ID and starts back at Pending with the repost flag set.
func (s *VideoService) Repost(ctx context.Context, sourceID string, input UploadInput) (*models.Video, error) {
	if input.File == nil {
		return nil, ErrFileRequired
	}

	source, err := s.findVideo(sourceID)
	if err != nil {
		return nil, err
	}
	if source.CreatorUsername != input.Creator.Username {
		return nil, ErrNotVideoOwner
	}
	if source.Status != models.VideoStatusRejected {
		return nil, ErrVideoNotRejected
	}

	creator, err := s.userRepo.FindByUsername(input.Creator.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find creator: %w", err)
	}

	task, err := s.taskRepo.FindByID(source.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	input.TaskID = task.ID
	return s.storeSubmission(ctx, task, creator, input, true)
}

func (s *VideoService) storeSubmission(ctx context.Context, task *models.Task, creator *models.User, input UploadInput, repost bool) (*models.Video, error) {
	id := uuid.NewString()
	key := fmt.Sprintf("videos/%s/%s%s", creator.Username, id, path.Ext(input.Filename))

	fileURL, err := s.store.Save(ctx, key, input.ContentType, input.File)
	if err != nil {
		return nil, fmt.Errorf("failed to store video file: %w", err)
	}

	video := &models.Video{
		ID:                  id,
		TaskID:              task.ID,
		CreatorUsername:     creator.Username,
		CoordinatorUsername: creator.CoordinatorUsername,
		FileKey:             key,
		FileURL:             fileURL,
		Status:              models.VideoStatusPending,
		IsRepost:            repost,
	}

	if err := s.videoRepo.Create(video); err != nil {
		return nil, fmt.Errorf("failed to create video: %w", err)
	}

	log.WithFields(log.Fields{
		"video_id": video.ID,
		"task_id":  task.ID,
		"creator":  creator.Username,
		"repost":   repost,
	}).Info("Video submitted")

	return video, nil
}

// UpdateStatus moves a video along the review workflow. The target must be
// a legal edge from the current status and the actor's role must guard it.
func (s *VideoService) UpdateStatus(videoID string, target models.VideoStatus, actor Actor) (*models.Video, error) {
	if !target.Valid() {
		return nil, ErrInvalidTargetStatus
	}

	video, err := s.findVideo(videoID)
	if err != nil {
		return nil, err
	}

	edges, ok := transitionRoles[video.Status]
	if !ok {
		return nil, fmt.Errorf("%w: no transitions from %s", ErrTransitionNotAllowed, video.Status)
	}
	roles, ok := edges[target]
	if !ok {
		return nil, fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, video.Status, target)
	}

	permitted := false
	for _, role := range roles {
		if actor.Role == role {
			permitted = true
			break
		}
	}
	if !permitted {
		return nil, fmt.Errorf("%w: %s -> %s as %s", ErrRoleNotPermitted, video.Status, target, actor.Role)
	}

	rows, err := s.videoRepo.UpdateStatus(video.ID, video.Status, target)
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	if rows == 0 {
		// The status changed under us, so the validated edge no longer holds.
		return nil, fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, video.Status, target)
	}

	from := video.Status
	video.Status = target

	log.WithFields(log.Fields{
		"video_id": video.ID,
		"from":     from.String(),
		"to":       target.String(),
		"actor":    actor.Username,
		"role":     actor.Role,
	}).Info("Video status updated")

	return video, nil
}

// SetSocialURL records where the approved video was published. Only the
// owning creator may set it, and only while the video is Approved.
func (s *VideoService) SetSocialURL(videoID string, actor Actor, rawURL string) (*models.Video, error) {
	video, err := s.findVideo(videoID)
	if err != nil {
		return nil, err
	}
	if video.CreatorUsername != actor.Username {
		return nil, ErrNotVideoOwner
	}
	if video.Status != models.VideoStatusApproved {
		return nil, ErrVideoNotApproved
	}

	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, ErrInvalidSocialURL
	}

	video.SocialMediaURL = parsed.String()
	fields := map[string]interface{}{"social_media_url": video.SocialMediaURL}
	if err := s.videoRepo.UpdateFields(video.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to set social URL: %w", err)
	}

	return video, nil
}

// AttachImageInput represents an insight or UTM screenshot upload.
type AttachImageInput struct {
	VideoID     string
	Actor       Actor
	Kind        models.InsightKind
	File        io.Reader
	Filename    string
	ContentType string
}

// AttachImage stores an analytics screenshot against a video. Insight
// images require an approved video and are capped per video; UTM
// screenshots are owner-gated only.
func (s *VideoService) AttachImage(ctx context.Context, input AttachImageInput) (*models.InsightImage, error) {
	if input.File == nil {
		return nil, ErrFileRequired
	}

	video, err := s.findVideo(input.VideoID)
	if err != nil {
		return nil, err
	}
	if video.CreatorUsername != input.Actor.Username {
		return nil, ErrNotVideoOwner
	}

	if input.Kind == models.InsightKindInsight {
		if video.Status != models.VideoStatusApproved {
			return nil, ErrVideoNotApproved
		}
		count, err := s.videoRepo.CountInsights(video.ID, models.InsightKindInsight)
		if err != nil {
			return nil, fmt.Errorf("failed to count insights: %w", err)
		}
		if count >= constants.MaxInsightImages {
			return nil, ErrInsightLimitReached
		}
	}

	key := fmt.Sprintf("%ss/%s/%s%s", input.Kind, video.ID, uuid.NewString(), path.Ext(input.Filename))
	fileURL, err := s.store.Save(ctx, key, input.ContentType, input.File)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	img := &models.InsightImage{
		VideoID:    video.ID,
		Kind:       input.Kind,
		FileKey:    key,
		FileURL:    fileURL,
		UploadedBy: input.Actor.Username,
	}
	if err := s.videoRepo.AddInsight(img); err != nil {
		return nil, fmt.Errorf("failed to attach image: %w", err)
	}

	return img, nil
}

// ListInsights returns a video's attached images of the given kind.
func (s *VideoService) ListInsights(videoID string, kind models.InsightKind) ([]models.InsightImage, error) {
	if _, err := s.findVideo(videoID); err != nil {
		return nil, err
	}
	images, err := s.videoRepo.ListInsights(videoID, &kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list insights: %w", err)
	}
	return images, nil
}

// ScoreInput carries the three independent ratings.
type ScoreInput struct {
	Consistency int
	Creativity  int
	Content     int
}

// Score submits ratings for a video. Requires the social URL and at least
// one insight image; each rating must be 1..5. Re-scoring overwrites.
func (s *VideoService) Score(videoID string, actor Actor, input ScoreInput) (*models.Video, error) {
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleClient {
		return nil, ErrScoringNotPermitted
	}

	for _, rating := range []int{input.Consistency, input.Creativity, input.Content} {
		if rating < constants.MinRating || rating > constants.MaxRating {
			return nil, ErrRatingOutOfRange
		}
	}

	video, err := s.findVideo(videoID)
	if err != nil {
		return nil, err
	}
	if video.SocialMediaURL == "" {
		return nil, ErrScoreRequiresSocialURL
	}

	insightCount, err := s.videoRepo.CountInsights(video.ID, models.InsightKindInsight)
	if err != nil {
		return nil, fmt.Errorf("failed to count insights: %w", err)
	}
	if insightCount == 0 {
		return nil, ErrScoreRequiresInsights
	}

	now := time.Now()
	video.ScoreConsistency = input.Consistency
	video.ScoreCreativity = input.Creativity
	video.ScoreContent = input.Content
	video.ScoredBy = actor.Username
	video.ScoredAt = &now

	if err := s.videoRepo.UpdateFields(video.ID, map[string]interface{}{
		"score_consistency": input.Consistency,
		"score_creativity":  input.Creativity,
		"score_content":     input.Content,
		"scored_by":         actor.Username,
		"scored_at":         now,
	}); err != nil {
		return nil, fmt.Errorf("failed to save score: %w", err)
	}

	log.WithFields(log.Fields{
		"video_id":  video.ID,
		"total":     video.TotalScore(),
		"scored_by": actor.Username,
	}).Info("Video scored")

	return video, nil
}

// AddComment appends feedback to a video's thread. Admins and clients only.
func (s *VideoService) AddComment(videoID string, actor Actor, body string) (*models.VideoComment, error) {
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleClient {
		return nil, ErrCommentNotPermitted
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrCommentBodyRequired
	}

	if _, err := s.findVideo(videoID); err != nil {
		return nil, err
	}

	comment := &models.VideoComment{
		VideoID: videoID,
		Author:  actor.Username,
		Role:    actor.Role,
		Body:    body,
	}
	if err := s.videoRepo.AddComment(comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	return comment, nil
}

// ListComments returns a video's feedback thread.
func (s *VideoService) ListComments(videoID string) ([]models.VideoComment, error) {
	if _, err := s.findVideo(videoID); err != nil {
		return nil, err
	}
	comments, err := s.videoRepo.ListComments(videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// GetVideo returns a video with its insights preloaded.
func (s *VideoService) GetVideo(videoID string) (*models.Video, error) {
	video, err := s.videoRepo.FindByID(videoID, "Insights", "Task")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to find video: %w", err)
	}
	return video, nil
}

// ListVideos returns videos matching the filter. Creators only ever see
// their own submissions; coordinators see their creators' submissions.
func (s *VideoService) ListVideos(actor Actor, filter repository.VideoFilter) ([]models.Video, int64, error) {
	switch actor.Role {
	case models.RoleCreator:
		filter.Creator = actor.Username
	case models.RoleCoordinator:
		filter.Coordinator = actor.Username
	}

	videos, total, err := s.videoRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list videos: %w", err)
	}
	return videos, total, nil
}

// Leaderboard returns ranked creator score totals.
func (s *VideoService) Leaderboard(limit int) ([]repository.LeaderboardRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.videoRepo.Leaderboard(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard: %w", err)
	}
	return rows, nil
}

// findVideo loads a video with its insight images so the caller can hand it
// straight back as a response.
func (s *VideoService) findVideo(id string) (*models.Video, error) {
	video, err := s.videoRepo.FindByID(id, "Insights")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to find video: %w", err)
	}
	return video, nil
}
