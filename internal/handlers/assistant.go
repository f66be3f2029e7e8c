package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/titanhub-backend/internal/pkg/logger"
	"github.com/yungbote/titanhub-backend/internal/services"
)

type AssistantHandler struct {
	log       *logger.Logger
	assistant *services.AssistantService
}

func NewAssistantHandler(log *logger.Logger, assistant *services.AssistantService) *AssistantHandler {
	return &AssistantHandler{
		log:       log.With("handler", "AssistantHandler"),
		assistant: assistant,
	}
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *AssistantHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	answer := h.assistant.Chat(c.Request.Context(), req.Message)
	RespondOK(c, gin.H{"answer": answer})
}
