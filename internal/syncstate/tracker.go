// Package syncstate reconciles push notifications from the backend's
// catalog import into a single UI-visible session: current status,
// message, progress, and connectivity. Terminal states self-clear back
// to IDLE after a display delay.
package syncstate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/oweller/ipteav/internal/adapter/push"
	"github.com/oweller/ipteav/internal/domain"
)

// Reset delays after terminal notifications. Failures stay visible longer.
const (
	completedResetDelay = 3 * time.Second
	failedResetDelay    = 5 * time.Second
)

// AcceptFunc decides whether a notification applies to this session.
// The push topic is account-unscoped; this is the one seam where
// account filtering would be introduced.
type AcceptFunc func(domain.SyncNotification) bool

// Tracker is the synchronization status state machine. It exclusively
// owns the SyncSession; consumers read snapshots and subscribe to
// change/completion events.
type Tracker struct {
	logger *slog.Logger

	mu         sync.Mutex
	session    domain.SyncSession
	resetTimer *time.Timer
	accept     AcceptFunc

	completedDelay time.Duration
	failedDelay    time.Duration

	subMu         sync.Mutex
	nextSubID     int
	completedSubs map[int]chan struct{}
	changedSubs   map[int]chan struct{}
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithResetDelays overrides the IDLE-reset delays. Used by tests.
func WithResetDelays(completed, failed time.Duration) Option {
	return func(t *Tracker) {
		t.completedDelay = completed
		t.failedDelay = failed
	}
}

// WithAcceptFilter installs a notification filter. The default accepts
// every notification regardless of account.
func WithAcceptFilter(f AcceptFunc) Option {
	return func(t *Tracker) {
		t.accept = f
	}
}

// NewTracker creates a tracker in the IDLE state.
func NewTracker(logger *slog.Logger, opts ...Option) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Tracker{
		logger:         logger,
		session:        domain.NewSyncSession(),
		completedDelay: completedResetDelay,
		failedDelay:    failedResetDelay,
		completedSubs:  make(map[int]chan struct{}),
		changedSubs:    make(map[int]chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Session returns a snapshot of the current session.
func (t *Tracker) Session() domain.SyncSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session
}

// SetConnected records a connectivity transition. Disconnecting does
// not reset status, message, or progress; a notification may have
// arrived just before the drop.
func (t *Tracker) SetConnected(connected bool) {
	t.mu.Lock()
	t.session.Connected = connected
	t.mu.Unlock()

	t.logger.Debug("push connectivity changed", "connected", connected)
	t.signal(t.changedSubs)
}

// Apply processes one notification. Status changes are visible to
// callers of Session before Apply returns; the IDLE reset is the only
// asynchronous self-mutation.
func (t *Tracker) Apply(n domain.SyncNotification) {
	t.mu.Lock()
	if t.accept != nil && !t.accept(n) {
		t.mu.Unlock()
		t.logger.Debug("notification filtered", "accountId", n.AccountID)
		return
	}

	// A newer notification supersedes any pending reset.
	t.cancelResetLocked()

	t.session.Status = n.Status
	t.session.Message = n.Message

	switch n.Status {
	case domain.SyncProcessing:
		if n.Progress != nil {
			t.session.Progress = *n.Progress
		}
	case domain.SyncCompleted:
		t.scheduleResetLocked(t.completedDelay)
	case domain.SyncFailed:
		t.scheduleResetLocked(t.failedDelay)
	}
	t.mu.Unlock()

	t.logger.Info("sync update",
		"accountId", n.AccountID,
		"status", n.Status,
		"message", n.Message,
	)

	if n.Status == domain.SyncCompleted {
		t.signal(t.completedSubs)
	}
	t.signal(t.changedSubs)
}

// Run consumes a push channel until the context is cancelled.
func (t *Tracker) Run(ctx context.Context, ch *push.Channel) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-ch.Events():
			t.SetConnected(ev.Connected)
		case n := <-ch.Notifications():
			t.Apply(n)
		}
	}
}

// SubscribeCompleted returns a channel signalled on every COMPLETED
// notification, and a cancel function releasing the subscription.
func (t *Tracker) SubscribeCompleted() (<-chan struct{}, func()) {
	return t.subscribe(t.completedSubs)
}

// SubscribeChanged returns a channel signalled on every session
// mutation, including the asynchronous IDLE reset.
func (t *Tracker) SubscribeChanged() (<-chan struct{}, func()) {
	return t.subscribe(t.changedSubs)
}

func (t *Tracker) subscribe(subs map[int]chan struct{}) (<-chan struct{}, func()) {
	t.subMu.Lock()
	defer t.subMu.Unlock()

	id := t.nextSubID
	t.nextSubID++
	ch := make(chan struct{}, 1)
	subs[id] = ch

	cancel := func() {
		t.subMu.Lock()
		delete(subs, id)
		t.subMu.Unlock()
	}
	return ch, cancel
}

// signal notifies subscribers without blocking. The buffer of one
// coalesces bursts; subscribers re-read Session anyway.
func (t *Tracker) signal(subs map[int]chan struct{}) {
	t.subMu.Lock()
	defer t.subMu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// scheduleResetLocked arms the single pending reset task. Callers must
// hold t.mu and have cancelled any previous timer.
func (t *Tracker) scheduleResetLocked(delay time.Duration) {
	t.resetTimer = time.AfterFunc(delay, func() {
		t.mu.Lock()
		t.session.Status = domain.SyncIdle
		t.session.Message = ""
		t.session.Progress = 0
		t.resetTimer = nil
		t.mu.Unlock()

		t.logger.Debug("sync status reset to idle")
		t.signal(t.changedSubs)
	})
}

func (t *Tracker) cancelResetLocked() {
	if t.resetTimer != nil {
		t.resetTimer.Stop()
		t.resetTimer = nil
	}
}
