package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/creatorhub/creator-review-api/internal/errors"
	"github.com/creatorhub/creator-review-api/internal/services"
)

// ChatbotHandler answers support questions.
type ChatbotHandler struct {
	chatbotService *services.ChatbotService
}

// NewChatbotHandler creates a new ChatbotHandler.
func NewChatbotHandler(chatbotService *services.ChatbotService) *ChatbotHandler {
	return &ChatbotHandler{chatbotService: chatbotService}
}

// Message returns a reply for a support question.
func (h *ChatbotHandler) Message(c *gin.Context) {
	type MessageRequest struct {
		Message string `json:"message" binding:"required"`
	}

	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "A message is required")
		return
	}

	reply := h.chatbotService.Reply(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
