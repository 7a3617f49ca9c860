package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/creatorhub/creator-review-api/internal/errors"
	"github.com/creatorhub/creator-review-api/internal/middleware"
	"github.com/creatorhub/creator-review-api/internal/services"
)

// HomepageHandler manages the configurable homepage blocks.
type HomepageHandler struct {
	homepageService *services.HomepageService
}

// NewHomepageHandler creates a new HomepageHandler.
func NewHomepageHandler(homepageService *services.HomepageService) *HomepageHandler {
	return &HomepageHandler{homepageService: homepageService}
}

// ListSections returns homepage blocks in display order.
func (h *HomepageHandler) ListSections(c *gin.Context) {
	sections, err := h.homepageService.ListSections()
	if err != nil {
		apierrors.InternalError(c, "Failed to list homepage sections")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// CreateSection adds a homepage block, with an optional image upload.
func (h *HomepageHandler) CreateSection(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	input := services.CreateSectionInput{
		Title:     c.PostForm("title"),
		LinkURL:   c.PostForm("link_url"),
		CreatedBy: actor.Username,
	}
	if posStr := c.PostForm("position"); posStr != "" {
		pos, err := strconv.Atoi(posStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid position")
			return
		}
		input.Position = pos
	}

	if header, err := c.FormFile("image"); err == nil {
		file, err := header.Open()
		if err != nil {
			apierrors.BadRequest(c, "Failed to read image")
			return
		}
		defer file.Close()
		input.Image = io.Reader(file)
		input.Filename = header.Filename
		input.ContentType = header.Header.Get("Content-Type")
	}

	section, err := h.homepageService.CreateSection(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrSectionTitleRequired) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to create homepage section")
		return
	}

	c.JSON(http.StatusCreated, section)
}

// DeleteSection removes a homepage block.
func (h *HomepageHandler) DeleteSection(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid section ID")
		return
	}

	if err := h.homepageService.DeleteSection(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrSectionNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to delete homepage section")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Section deleted successfully"})
}
