package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/oweller/ipteav/internal/syncstate"
)

const refreshTimeout = 30 * time.Second

// Coordinator is the single link between the sync tracker and the
// navigator: every completed backend import resets navigation to the
// root and refetches the top level for the current content type.
type Coordinator struct {
	tracker *syncstate.Tracker
	nav     *Navigator
	logger  *slog.Logger
}

// NewCoordinator wires a tracker to a navigator.
func NewCoordinator(tracker *syncstate.Tracker, nav *Navigator, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{tracker: tracker, nav: nav, logger: logger}
}

// Run blocks until the context is cancelled, triggering a root refresh
// for every completion event. Refreshes are fire-and-forget: an
// in-flight manual navigation is not cancelled, and the last response
// to resolve wins.
func (c *Coordinator) Run(ctx context.Context) {
	completed, cancel := c.tracker.SubscribeCompleted()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case <-completed:
			c.refresh(ctx)
		}
	}
}

func (c *Coordinator) refresh(ctx context.Context) {
	c.logger.Info("sync completed, refreshing catalog")
	c.nav.GoToRoot()

	go func() {
		fetchCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
		defer cancel()
		if err := c.nav.RefreshTopLevel(fetchCtx); err != nil {
			c.logger.Error("post-sync catalog refresh failed", "error", err)
		}
	}()
}
