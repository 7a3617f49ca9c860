package dto

import (
	"time"

	"github.com/creatorhub/creator-review-api/internal/models"
)

// InsightImageDTO represents an attached screenshot in API responses.
type InsightImageDTO struct {
	ID         uint64             `json:"id"`
	Kind       models.InsightKind `json:"kind"`
	FileURL    string             `json:"file_url"`
	UploadedBy string             `json:"uploaded_by"`
	CreatedAt  time.Time          `json:"created_at"`
}

// VideoDTO represents a video in API responses. Availability of the social
// URL and insight images is computed server-side so clients never need a
// second round trip before opening the scoring form.
type VideoDTO struct {
	ID                  string             `json:"id"`
	TaskID              uint64             `json:"task_id"`
	CreatorUsername     string             `json:"creator_username"`
	CoordinatorUsername string             `json:"coordinator_username,omitempty"`
	FileURL             string             `json:"file_url"`
	Status              models.VideoStatus `json:"status"`
	StatusLabel         string             `json:"status_label"`
	SocialMediaURL      string             `json:"social_media_url,omitempty"`
	IsRepost            bool               `json:"is_repost"`
	HasSocialURL        bool               `json:"has_social_url"`
	HasInsights         bool               `json:"has_insights"`
	ScoreConsistency    int                `json:"score_consistency"`
	ScoreCreativity     int                `json:"score_creativity"`
	ScoreContent        int                `json:"score_content"`
	TotalScore          int                `json:"total_score"`
	Scored              bool               `json:"scored"`
	ScoredBy            string             `json:"scored_by,omitempty"`
	ScoredAt            *time.Time         `json:"scored_at,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
	Insights            []InsightImageDTO  `json:"insights,omitempty"`
}

// VideoListResponse represents a paginated list of videos.
type VideoListResponse struct {
	Videos     []VideoDTO `json:"videos"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalCount int64      `json:"total_count"`
	TotalPages int        `json:"total_pages"`
}

// ToInsightImageDTO converts an InsightImage model to its DTO.
func ToInsightImageDTO(img models.InsightImage) InsightImageDTO {
	return InsightImageDTO{
		ID:         img.ID,
		Kind:       img.Kind,
		FileURL:    img.FileURL,
		UploadedBy: img.UploadedBy,
		CreatedAt:  img.CreatedAt,
	}
}

// ToVideoDTO converts a Video model to VideoDTO. Insight availability
// reflects preloaded insight-kind attachments.
func ToVideoDTO(video models.Video) VideoDTO {
	dto := VideoDTO{
		ID:                  video.ID,
		TaskID:              video.TaskID,
		CreatorUsername:     video.CreatorUsername,
		CoordinatorUsername: video.CoordinatorUsername,
		FileURL:             video.FileURL,
		Status:              video.Status,
		StatusLabel:         video.Status.String(),
		SocialMediaURL:      video.SocialMediaURL,
		IsRepost:            video.IsRepost,
		HasSocialURL:        video.SocialMediaURL != "",
		ScoreConsistency:    video.ScoreConsistency,
		ScoreCreativity:     video.ScoreCreativity,
		ScoreContent:        video.ScoreContent,
		TotalScore:          video.TotalScore(),
		Scored:              video.Scored(),
		ScoredBy:            video.ScoredBy,
		ScoredAt:            video.ScoredAt,
		CreatedAt:           video.CreatedAt,
		UpdatedAt:           video.UpdatedAt,
	}

	for _, img := range video.Insights {
		if img.Kind == models.InsightKindInsight {
			dto.HasInsights = true
		}
		dto.Insights = append(dto.Insights, ToInsightImageDTO(img))
	}

	return dto
}

// VideoCommentDTO represents a feedback comment in API responses.
type VideoCommentDTO struct {
	ID        uint64      `json:"id"`
	VideoID   string      `json:"video_id"`
	Author    string      `json:"author"`
	Role      models.Role `json:"role"`
	Body      string      `json:"body"`
	CreatedAt time.Time   `json:"created_at"`
}

// ToVideoCommentDTO converts a VideoComment model to its DTO.
func ToVideoCommentDTO(comment models.VideoComment) VideoCommentDTO {
	return VideoCommentDTO{
		ID:        comment.ID,
		VideoID:   comment.VideoID,
		Author:    comment.Author,
		Role:      comment.Role,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}
}

// ToVideoCommentDTOs converts a slice of comments to DTOs.
func ToVideoCommentDTOs(comments []models.VideoComment) []VideoCommentDTO {
	items := make([]VideoCommentDTO, len(comments))
	for i, comment := range comments {
		items[i] = ToVideoCommentDTO(comment)
	}
	return items
}

// ToVideoListResponse converts a slice of videos to a paginated response.
func ToVideoListResponse(videos []models.Video, page, pageSize int, totalCount int64) VideoListResponse {
	items := make([]VideoDTO, len(videos))
	for i, video := range videos {
		items[i] = ToVideoDTO(video)
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = int(totalCount) / pageSize
		if int(totalCount)%pageSize > 0 {
			totalPages++
		}
	}

	return VideoListResponse{
		Videos:     items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
