package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/titanhub-backend/internal/pkg/logger"
	"github.com/yungbote/titanhub-backend/internal/services"
)

const sessionTokenHeader = "X-Session-Token"

type SessionHandler struct {
	log      *logger.Logger
	sessions *services.SessionService
}

func NewSessionHandler(log *logger.Logger, sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{
		log:      log.With("handler", "SessionHandler"),
		sessions: sessions,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login creates a session blob without verifying anything. The password is
// accepted and discarded; this is a dashboard shell convenience, not an
// authentication scheme.
func (h *SessionHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	sess, err := h.sessions.Create(req.Email)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_email", err)
		return
	}
	RespondOK(c, gin.H{"session": sess})
}

func (h *SessionHandler) Get(c *gin.Context) {
	sess, ok := h.sessions.Get(c.GetHeader(sessionTokenHeader))
	if !ok {
		RespondError(c, http.StatusUnauthorized, "session_not_found", nil)
		return
	}
	RespondOK(c, gin.H{"session": sess})
}

func (h *SessionHandler) Logout(c *gin.Context) {
	h.sessions.Clear(c.GetHeader(sessionTokenHeader))
	RespondOK(c, gin.H{"cleared": true})
}
