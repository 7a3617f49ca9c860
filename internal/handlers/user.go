package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/creatorhub/creator-review-api/internal/dto"
	apierrors "github.com/creatorhub/creator-review-api/internal/errors"
	"github.com/creatorhub/creator-review-api/internal/models"
	"github.com/creatorhub/creator-review-api/internal/services"
	"github.com/creatorhub/creator-review-api/internal/utils"
)

// UserHandler exposes the admin-only credential CRUD.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser provisions a new credential.
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Username            string          `json:"username" binding:"required,min=3,max=50"`
		Password            string          `json:"password" binding:"required"`
		Role                models.Role     `json:"role" binding:"required"`
		UserType            models.UserType `json:"user_type"`
		CoordinatorUsername string          `json:"coordinator_username"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		Username:            req.Username,
		Password:            req.Password,
		Role:                req.Role,
		UserType:            req.UserType,
		CoordinatorUsername: req.CoordinatorUsername,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// ListUsers lists credentials, optionally filtered by role or coordinator.
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListUsersInput{
		Coordinator: c.Query("coordinator"),
		Page:        params.Page,
		PageSize:    params.Limit,
	}
	if roleStr := c.Query("role"); roleStr != "" {
		role := models.Role(roleStr)
		if !role.Valid() {
			apierrors.BadRequest(c, "Invalid role filter")
			return
		}
		input.Role = &role
	}

	users, total, err := h.userService.ListUsers(input)
	if err != nil {
		apierrors.InternalError(c, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      dto.ToUserDTOs(users),
		"pagination": utils.NewPaginationResponse(params, total),
	})
}

// UpdateUser edits an existing credential.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type UpdateUserRequest struct {
		Password            *string          `json:"password"`
		UserType            *models.UserType `json:"user_type"`
		CoordinatorUsername *string          `json:"coordinator_username"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(id, services.UpdateUserInput{
		Password:            req.Password,
		UserType:            req.UserType,
		CoordinatorUsername: req.CoordinatorUsername,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser removes a credential.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUsernameRequired),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrCoordinatorRequired),
		errors.Is(err, services.ErrCoordinatorNotFound):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
