// Package push owns the persistent notification connection to the
// backend. It delivers parsed sync notifications in arrival order and
// reports connectivity transitions; it never filters by account.
package push

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/oweller/ipteav/internal/domain"
)

const (
	notificationBuffer = 64
	eventBuffer        = 8
)

// Event is a connectivity transition on the channel.
type Event struct {
	Connected bool
}

// Channel maintains a single WebSocket connection to the sync topic.
// Connect is idempotent; transport errors fail silently into the
// disconnected state and are not retried.
type Channel struct {
	url    string
	logger *slog.Logger

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	done      chan struct{}

	notifs chan domain.SyncNotification
	events chan Event
}

// NewChannel creates a channel for the given WebSocket endpoint
// (e.g. ws://localhost:8080/ws).
func NewChannel(url string, logger *slog.Logger) *Channel {
	if logger == nil {
		logger = slog.Default()
	}
	return &Channel{
		url:    url,
		logger: logger,
		notifs: make(chan domain.SyncNotification, notificationBuffer),
		events: make(chan Event, eventBuffer),
	}
}

// Connect establishes the connection and starts the read loop.
// It is a no-op when already connected.
func (c *Channel) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return nil
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("push channel connect failed", "error", err, "url", c.url)
		return domain.ErrNotConnected
	}

	c.conn = conn
	c.connected = true
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	c.logger.Info("push channel connected", "url", c.url)
	c.emitEvent(Event{Connected: true})

	go c.readLoop(conn, done)
	return nil
}

// Disconnect tears the connection down. Safe to call when not connected.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return
	}
	conn := c.conn
	done := c.done
	c.conn = nil
	c.connected = false
	c.done = nil
	c.mu.Unlock()

	close(done)
	conn.Close()

	c.logger.Info("push channel disconnected")
	c.emitEvent(Event{Connected: false})
}

// Connected reports whether a live connection exists.
func (c *Channel) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Notifications returns the inbound notification stream. Messages are
// delivered in arrival order, one per inbound frame.
func (c *Channel) Notifications() <-chan domain.SyncNotification {
	return c.notifs
}

// Events returns the connectivity event stream.
func (c *Channel) Events() <-chan Event {
	return c.events
}

// readLoop reads frames until the connection dies or Disconnect closes it.
func (c *Channel) readLoop(conn *websocket.Conn, done chan struct{}) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-done:
				// Deliberate disconnect; event already emitted.
			default:
				c.logger.Warn("push channel read error", "error", err)
				c.markDisconnected(conn)
			}
			return
		}

		var n domain.SyncNotification
		if err := json.Unmarshal(data, &n); err != nil {
			c.logger.Warn("dropping malformed notification", "error", err)
			continue
		}

		select {
		case c.notifs <- n:
		case <-done:
			return
		}
	}
}

// markDisconnected records a transport failure for the given connection.
func (c *Channel) markDisconnected(conn *websocket.Conn) {
	c.mu.Lock()
	if c.conn != conn {
		// A newer connection has replaced this one.
		c.mu.Unlock()
		return
	}
	c.conn = nil
	c.connected = false
	if c.done != nil {
		close(c.done)
		c.done = nil
	}
	c.mu.Unlock()

	conn.Close()
	c.emitEvent(Event{Connected: false})
}

// emitEvent sends without blocking; a stalled consumer only loses
// connectivity edges, never notifications.
func (c *Channel) emitEvent(ev Event) {
	select {
	case c.events <- ev:
	default:
	}
}
