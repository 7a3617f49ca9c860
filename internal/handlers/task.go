package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/creatorhub/creator-review-api/internal/errors"
	"github.com/creatorhub/creator-review-api/internal/middleware"
	"github.com/creatorhub/creator-review-api/internal/models"
	"github.com/creatorhub/creator-review-api/internal/services"
	"github.com/creatorhub/creator-review-api/internal/utils"
)

// TaskHandler exposes campaign task operations.
type TaskHandler struct {
	taskService *services.TaskService
	authService *services.AuthService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, authService *services.AuthService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		authService: authService,
	}
}

// ListTasks lists tasks with derived status. Creators only see tasks open
// to their creator type.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)
	input := services.ListTasksInput{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if claims.Role == models.RoleCreator {
		user, err := h.authService.GetUser(claims.Username)
		if err != nil {
			apierrors.InternalError(c, "Failed to resolve creator type")
			return
		}
		creatorType := models.CreatorType(user.UserType)
		input.CreatorType = &creatorType
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.TaskStatus(statusStr)
		switch status {
		case models.TaskStatusPending, models.TaskStatusOngoing, models.TaskStatusCompleted, models.TaskStatusOverdue:
			input.Status = &status
		default:
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
	}

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		apierrors.InternalError(c, "Failed to list tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks":      tasks,
		"pagination": utils.NewPaginationResponse(params, total),
	})
}

// GetTask returns one task with derived fields.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// CreateTask creates a new campaign task.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title         string             `json:"title" binding:"required"`
		Description   string             `json:"description"`
		TotalVideos   int                `json:"total_videos" binding:"required"`
		StartDate     time.Time          `json:"start_date" binding:"required"`
		EndDate       time.Time          `json:"end_date" binding:"required"`
		CreatorType   models.CreatorType `json:"creator_type"`
		ReferenceLink string             `json:"reference_link"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		TotalVideos:   req.TotalVideos,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		CreatorType:   req.CreatorType,
		ReferenceLink: req.ReferenceLink,
		CreatedBy:     claims.Username,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask edits an existing task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateTaskRequest struct {
		Title         *string             `json:"title"`
		Description   *string             `json:"description"`
		TotalVideos   *int                `json:"total_videos"`
		StartDate     *time.Time          `json:"start_date"`
		EndDate       *time.Time          `json:"end_date"`
		CreatorType   *models.CreatorType `json:"creator_type"`
		ReferenceLink *string             `json:"reference_link"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(id, services.UpdateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		TotalVideos:   req.TotalVideos,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		CreatorType:   req.CreatorType,
		ReferenceLink: req.ReferenceLink,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(id); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrInvalidTotalVideos),
		errors.Is(err, services.ErrInvalidCreatorType):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
