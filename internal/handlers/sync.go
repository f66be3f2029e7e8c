package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/titanhub-backend/internal/demo"
	"github.com/yungbote/titanhub-backend/internal/pkg/logger"
	"github.com/yungbote/titanhub-backend/internal/services"
)

type SyncHandler struct {
	log  *logger.Logger
	sync *services.SyncService
}

func NewSyncHandler(log *logger.Logger, sync *services.SyncService) *SyncHandler {
	return &SyncHandler{
		log:  log.With("handler", "SyncHandler"),
		sync: sync,
	}
}

func (h *SyncHandler) GetStatus(c *gin.Context) {
	RespondOK(c, gin.H{"status": h.sync.Status()})
}

// Refresh is the user-triggered variant: it shows the loading indicator and
// reports a primary-tab failure as a gateway error so the client can offer
// a retry or the demo fallback.
func (h *SyncHandler) Refresh(c *gin.Context) {
	if err := h.sync.Refresh(c.Request.Context(), true); err != nil {
		h.log.Error("Manual refresh failed", "error", err)
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": h.sync.Status()})
}

func (h *SyncHandler) LoadDemo(c *gin.Context) {
	h.sync.LoadDemo(demo.Generate(250, 1))
	RespondOK(c, gin.H{"status": h.sync.Status()})
}
