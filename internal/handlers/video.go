package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/creatorhub/creator-review-api/internal/dto"
	apierrors "github.com/creatorhub/creator-review-api/internal/errors"
	"github.com/creatorhub/creator-review-api/internal/middleware"
	"github.com/creatorhub/creator-review-api/internal/models"
	"github.com/creatorhub/creator-review-api/internal/repository"
	"github.com/creatorhub/creator-review-api/internal/services"
	"github.com/creatorhub/creator-review-api/internal/utils"
)

// VideoHandler exposes the video review workflow over HTTP.
type VideoHandler struct {
	videoService *services.VideoService
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(videoService *services.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// ListVideos lists videos with server-side filtering and pagination.
func (h *VideoHandler) ListVideos(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)
	filter := repository.VideoFilter{
		Creator:     c.Query("creator"),
		Coordinator: c.Query("coordinator"),
		Query:       c.Query("q"),
		Page:        params.Page,
		PageSize:    params.Limit,
	}

	if taskIDStr := c.Query("task_id"); taskIDStr != "" {
		taskID, err := strconv.ParseUint(taskIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task_id")
			return
		}
		filter.TaskID = &taskID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		code, err := strconv.Atoi(statusStr)
		if err != nil || !models.VideoStatus(code).Valid() {
			apierrors.BadRequest(c, "Invalid status")
			return
		}
		status := models.VideoStatus(code)
		filter.Status = &status
	}
	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid from date")
			return
		}
		filter.From = &from
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid to date")
			return
		}
		filter.To = &to
	}

	videos, total, err := h.videoService.ListVideos(actor, filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to list videos")
		return
	}

	c.JSON(http.StatusOK, dto.ToVideoListResponse(videos, params.Page, params.Limit, total))
}

// GetVideo returns one video with its attachments.
func (h *VideoHandler) GetVideo(c *gin.Context) {
	video, err := h.videoService.GetVideo(c.Param("id"))
	if err != nil {
		respondVideoError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVideoDTO(*video))
}

// UploadVideo accepts a multipart submission against a task.
func (h *VideoHandler) UploadVideo(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, err := strconv.ParseUint(c.PostForm("task_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "task_id is required")
		return
	}

	file, header, err := openFormFile(c, "file")
	if err != nil {
		apierrors.BadRequest(c, "A video file is required")
		return
	}
	defer file.Close()

	video, err := h.videoService.Upload(c.Request.Context(), services.UploadInput{
		TaskID:      taskID,
		Creator:     actor,
		File:        file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		respondVideoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToVideoDTO(*video))
}

// RepostVideo accepts a replacement upload for a rejected video.
func (h *VideoHandler) RepostVideo(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	file, header, err := openFormFile(c, "file")
	if err != nil {
		apierrors.BadRequest(c, "A video file is required")
		return
	}
	defer file.Close()

	video, err := h.videoService.Repost(c.Request.Context(), c.Param("id"), services.UploadInput{
		Creator:     actor,
		File:        file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		respondVideoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToVideoDTO(*video))
}

// UpdateStatus moves a video along the review workflow.
func (h *VideoHandler) UpdateStatus(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateStatusRequest struct {
		Status *int `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	video, err := h.videoService.UpdateStatus(c.Param("id"), models.VideoStatus(*req.Status), actor)
	if err != nil {
		respondVideoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVideoDTO(*video))
}

// SetSocialURL records where the approved video was published.
func (h *VideoHandler) SetSocialURL(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SetSocialURLRequest struct {
		SocialMediaURL string `json:"social_media_url" binding:"required"`
	}

	var req SetSocialURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	video, err := h.videoService.SetSocialURL(c.Param("id"), actor, req.SocialMediaURL)
	if err != nil {
		respondVideoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVideoDTO(*video))
}

// ListInsights returns a video's insight images.
func (h *VideoHandler) ListInsights(c *gin.Context) {
	images, err := h.videoService.ListInsights(c.Param("id"), models.InsightKindInsight)
	if err != nil {
		respondVideoError(c, err)
		return
	}

	dtos := make([]dto.InsightImageDTO, len(images))
	for i, img := range images {
		dtos[i] = dto.ToInsightImageDTO(img)
	}
	c.JSON(http.StatusOK, gin.H{"insights": dtos})
}

// AttachInsight uploads an insight image for an approved video.
func (h *VideoHandler) AttachInsight(c *gin.Context) {
	h.attachImage(c, models.InsightKindInsight)
}

// AttachUTM uploads a UTM screenshot for a video.
func (h *VideoHandler) AttachUTM(c *gin.Context) {
	h.attachImage(c, models.InsightKindUTM)
}

func (h *VideoHandler) attachImage(c *gin.Context, kind models.InsightKind) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	file, header, err := openFormFile(c, "file")
	if err != nil {
		apierrors.BadRequest(c, "An image file is required")
		return
	}
	defer file.Close()

	img, err := h.videoService.AttachImage(c.Request.Context(), services.AttachImageInput{
		VideoID:     c.Param("id"),
		Actor:       actor,
		Kind:        kind,
		File:        file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		respondVideoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInsightImageDTO(*img))
}

// SubmitScore records the three ratings for a video.
func (h *VideoHandler) SubmitScore(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	// Pointers so an explicit zero reaches the range validation instead of
	// tripping the required check.
	type ScoreRequest struct {
		Consistency *int `json:"consistency" binding:"required"`
		Creativity  *int `json:"creativity" binding:"required"`
		Content     *int `json:"content" binding:"required"`
	}

	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	video, err := h.videoService.Score(c.Param("id"), actor, services.ScoreInput{
		Consistency: *req.Consistency,
		Creativity:  *req.Creativity,
		Content:     *req.Content,
	})
	if err != nil {
		respondVideoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVideoDTO(*video))
}

// ListComments returns a video's feedback thread.
func (h *VideoHandler) ListComments(c *gin.Context) {
	comments, err := h.videoService.ListComments(c.Param("id"))
	if err != nil {
		respondVideoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": dto.ToVideoCommentDTOs(comments)})
}

// AddComment appends feedback to a video's thread.
func (h *VideoHandler) AddComment(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CommentRequest struct {
		Body string `json:"body" binding:"required"`
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.videoService.AddComment(c.Param("id"), actor, req.Body)
	if err != nil {
		respondVideoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToVideoCommentDTO(*comment))
}

// Leaderboard returns ranked creator score totals.
func (h *VideoHandler) Leaderboard(c *gin.Context) {
	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			apierrors.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	rows, err := h.videoService.Leaderboard(limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to build leaderboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": rows})
}

func openFormFile(c *gin.Context, field string) (multipart.File, *multipart.FileHeader, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil, err
	}
	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return file, header, nil
}

func respondVideoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrVideoNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTransitionNotAllowed),
		errors.Is(err, services.ErrVideoNotApproved),
		errors.Is(err, services.ErrVideoNotRejected),
		errors.Is(err, services.ErrTaskNotAcceptingUpload):
		apierrors.InvalidTransition(c, err.Error())
	case errors.Is(err, services.ErrRoleNotPermitted),
		errors.Is(err, services.ErrNotVideoOwner),
		errors.Is(err, services.ErrScoringNotPermitted),
		errors.Is(err, services.ErrCommentNotPermitted):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidTargetStatus),
		errors.Is(err, services.ErrRatingOutOfRange),
		errors.Is(err, services.ErrInvalidSocialURL),
		errors.Is(err, services.ErrFileRequired),
		errors.Is(err, services.ErrCommentBodyRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInsightLimitReached),
		errors.Is(err, services.ErrScoreRequiresSocialURL),
		errors.Is(err, services.ErrScoreRequiresInsights):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
