package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/titanhub-backend/internal/pkg/logger"
	"github.com/yungbote/titanhub-backend/internal/services"
)

// DashboardHandler serves the record set and every derived view the
// presentation layer renders.
type DashboardHandler struct {
	log  *logger.Logger
	sync *services.SyncService
}

func NewDashboardHandler(log *logger.Logger, sync *services.SyncService) *DashboardHandler {
	return &DashboardHandler{
		log:  log.With("handler", "DashboardHandler"),
		sync: sync,
	}
}

func (h *DashboardHandler) ListRecords(c *gin.Context) {
	records := h.sync.SearchRecords(c.Query("q"))
	RespondOK(c, gin.H{"records": records, "count": len(records)})
}

func (h *DashboardHandler) ListMembers(c *gin.Context) {
	snap := h.sync.Current()
	members := make([]any, 0, len(snap.MemberOrder))
	for _, key := range snap.MemberOrder {
		members = append(members, snap.Members[key])
	}
	RespondOK(c, gin.H{"members": members})
}

func (h *DashboardHandler) GetMember(c *gin.Context) {
	snap := h.sync.Current()
	m, ok := snap.Members[c.Param("key")]
	if !ok {
		RespondError(c, http.StatusNotFound, "member_not_found", nil)
		return
	}
	RespondOK(c, gin.H{"member": m})
}

func (h *DashboardHandler) ListTrainers(c *gin.Context) {
	snap := h.sync.Current()
	trainers := make([]any, 0, len(snap.TrainerOrder))
	for _, name := range snap.TrainerOrder {
		trainers = append(trainers, snap.Trainers[name])
	}
	RespondOK(c, gin.H{"trainers": trainers})
}

func (h *DashboardHandler) GetTrainer(c *gin.Context) {
	snap := h.sync.Current()
	t, ok := snap.Trainers[c.Param("name")]
	if !ok {
		RespondError(c, http.StatusNotFound, "trainer_not_found", nil)
		return
	}
	RespondOK(c, gin.H{"trainer": t})
}

func (h *DashboardHandler) GetDistributions(c *gin.Context) {
	RespondOK(c, gin.H{"distributions": h.sync.Current().Distributions})
}

func (h *DashboardHandler) GetMetrics(c *gin.Context) {
	RespondOK(c, gin.H{"metrics": h.sync.Current().Metrics})
}

func (h *DashboardHandler) GetRankings(c *gin.Context) {
	rankings := h.sync.Current().Rankings
	if raw := c.Query("n"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			rankings.TopClasses = truncate(rankings.TopClasses, n)
			rankings.TopTrainers = truncate(rankings.TopTrainers, n)
			rankings.TopMembers = truncate(rankings.TopMembers, n)
		}
	}
	RespondOK(c, gin.H{"rankings": rankings})
}

func truncate[T any](in []T, n int) []T {
	if len(in) > n {
		return in[:n]
	}
	return in
}
