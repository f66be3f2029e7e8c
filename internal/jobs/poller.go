package jobs

import (
	"context"
	"time"

	"github.com/yungbote/titanhub-backend/internal/pkg/logger"
)

// Refresher is the one operation the poller drives. It must be idempotent;
// the poller makes no attempt to de-duplicate overlapping refreshes.
type Refresher interface {
	Refresh(ctx context.Context, showLoading bool) error
}

// Poller re-syncs the record set on a fixed interval. It is the silent
// variant of a refresh: no loading indicator, failures only logged. Cancel
// the context handed to Start to stop it.
type Poller struct {
	log      *logger.Logger
	target   Refresher
	interval time.Duration
}

func NewPoller(log *logger.Logger, target Refresher, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &Poller{
		log:      log.With("component", "SyncPoller"),
		target:   target,
		interval: interval,
	}
}

func (p *Poller) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		p.log.Info("Sync poller started", "interval", p.interval.String())
		for {
			select {
			case <-ctx.Done():
				p.log.Info("Sync poller stopped")
				return
			case <-ticker.C:
				if err := p.target.Refresh(ctx, false); err != nil {
					p.log.Warn("Background refresh failed", "error", err)
				}
			}
		}
	}()
}
