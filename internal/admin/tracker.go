package admin

import (
	"context"
	"sync"
	"time"

	"github.com/ketravel/travelbot/core/logger"
	"log/slog"
)

// DefaultRefreshInterval is how often an open panel re-renders itself.
const DefaultRefreshInterval = 10 * time.Second

// Tracker owns the auto-refresh loops of open admin panels, one per admin.
// Opening a panel replaces the admin's previous loop; navigating into a
// request detail stops it.
type Tracker struct {
	mu       sync.Mutex
	interval time.Duration
	loops    map[int64]*loop
	wg       sync.WaitGroup
}

type loop struct {
	cancel context.CancelFunc
}

// NewTracker creates a tracker with the given refresh interval.
func NewTracker(interval time.Duration) *Tracker {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Tracker{
		interval: interval,
		loops:    make(map[int64]*loop),
	}
}

// Start begins auto-refreshing the admin's panel. refresh re-renders the
// tracked panel message; a refresh error stops the loop, the message is
// assumed gone or superseded.
func (t *Tracker) Start(adminID int64, refresh func(ctx context.Context) error) {
	ctx, cancel := context.WithCancel(context.Background())
	l := &loop{cancel: cancel}

	t.mu.Lock()
	if prev, ok := t.loops[adminID]; ok {
		prev.cancel()
	}
	t.loops[adminID] = l
	t.mu.Unlock()

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer t.remove(adminID, l)

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := refresh(ctx); err != nil {
					logger.ADM.LogAttrs(ctx, slog.LevelDebug, "panel.refresh.stop",
						slog.Int64("admin_id", adminID),
						slog.String("err", err.Error()),
					)
					return
				}
			}
		}
	}()

	logger.ADM.LogAttrs(context.Background(), slog.LevelDebug, "panel.refresh.start",
		slog.Int64("admin_id", adminID),
	)
}

// Stop cancels the admin's refresh loop, if any.
func (t *Tracker) Stop(adminID int64) {
	t.mu.Lock()
	l, ok := t.loops[adminID]
	if ok {
		delete(t.loops, adminID)
	}
	t.mu.Unlock()
	if ok {
		l.cancel()
	}
}

// Close stops every loop and waits for them to exit.
func (t *Tracker) Close() {
	t.mu.Lock()
	for id, l := range t.loops {
		l.cancel()
		delete(t.loops, id)
	}
	t.mu.Unlock()
	t.wg.Wait()
}

// remove clears the admin's entry only if it still points at this loop.
func (t *Tracker) remove(adminID int64, own *loop) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cur, ok := t.loops[adminID]; ok && cur == own {
		delete(t.loops, adminID)
	}
}
