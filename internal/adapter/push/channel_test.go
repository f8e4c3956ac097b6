package push

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oweller/ipteav/internal/domain"
	"github.com/oweller/ipteav/internal/log"
)

var upgrader = websocket.Upgrader{}

// newTestEndpoint runs a WebSocket server that hands each accepted
// connection to serve.
func newTestEndpoint(t *testing.T, serve func(*websocket.Conn)) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serve(conn)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestConnectEmitsConnectedEvent(t *testing.T) {
	url := newTestEndpoint(t, func(conn *websocket.Conn) {
		defer conn.Close()
		time.Sleep(100 * time.Millisecond)
	})

	ch := NewChannel(url, log.NullLogger())
	require.NoError(t, ch.Connect(context.Background()))
	defer ch.Disconnect()

	assert.True(t, ch.Connected())
	select {
	case ev := <-ch.Events():
		assert.True(t, ev.Connected)
	case <-time.After(time.Second):
		t.Fatal("expected a connected event")
	}
}

func TestConnectIsIdempotent(t *testing.T) {
	accepted := make(chan struct{}, 8)
	url := newTestEndpoint(t, func(conn *websocket.Conn) {
		accepted <- struct{}{}
		defer conn.Close()
		time.Sleep(200 * time.Millisecond)
	})

	ch := NewChannel(url, log.NullLogger())
	require.NoError(t, ch.Connect(context.Background()))
	require.NoError(t, ch.Connect(context.Background()))
	defer ch.Disconnect()

	<-accepted
	select {
	case <-accepted:
		t.Fatal("second Connect must not dial again")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestConnectFailureReturnsNotConnected(t *testing.T) {
	ch := NewChannel("ws://127.0.0.1:1/ws/sync", log.NullLogger())
	err := ch.Connect(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotConnected)
	assert.False(t, ch.Connected())
}

func TestNotificationsDeliveredInOrder(t *testing.T) {
	frames := []string{
		`{"accountId":1,"status":"PROCESSING","message":"Importing channels","progress":10}`,
		`{"accountId":1,"status":"PROCESSING","message":"Importing movies","progress":60}`,
		`{"accountId":1,"status":"COMPLETED","message":"Done"}`,
	}
	url := newTestEndpoint(t, func(conn *websocket.Conn) {
		defer conn.Close()
		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		time.Sleep(200 * time.Millisecond)
	})

	ch := NewChannel(url, log.NullLogger())
	require.NoError(t, ch.Connect(context.Background()))
	defer ch.Disconnect()

	var got []domain.SyncNotification
	for i := 0; i < len(frames); i++ {
		select {
		case n := <-ch.Notifications():
			got = append(got, n)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for notification %d", i)
		}
	}

	assert.Equal(t, "Importing channels", got[0].Message)
	require.NotNil(t, got[0].Progress)
	assert.Equal(t, 10, *got[0].Progress)
	assert.Equal(t, domain.SyncProcessing, got[1].Status)
	assert.Equal(t, domain.SyncCompleted, got[2].Status)
	assert.Nil(t, got[2].Progress)
}

func TestMalformedFramesAreDropped(t *testing.T) {
	url := newTestEndpoint(t, func(conn *websocket.Conn) {
		defer conn.Close()
		conn.WriteMessage(websocket.TextMessage, []byte(`not json`))
		conn.WriteMessage(websocket.TextMessage, []byte(`{"status":"COMPLETED","message":"Done"}`))
		time.Sleep(200 * time.Millisecond)
	})

	ch := NewChannel(url, log.NullLogger())
	require.NoError(t, ch.Connect(context.Background()))
	defer ch.Disconnect()

	select {
	case n := <-ch.Notifications():
		assert.Equal(t, domain.SyncCompleted, n.Status, "the malformed frame must be skipped")
	case <-time.After(time.Second):
		t.Fatal("expected the well-formed notification")
	}
}

func TestServerCloseEmitsDisconnectedEvent(t *testing.T) {
	url := newTestEndpoint(t, func(conn *websocket.Conn) {
		conn.Close()
	})

	ch := NewChannel(url, log.NullLogger())
	require.NoError(t, ch.Connect(context.Background()))

	// First event is the connect, second the transport drop.
	<-ch.Events()
	select {
	case ev := <-ch.Events():
		assert.False(t, ev.Connected)
	case <-time.After(time.Second):
		t.Fatal("expected a disconnected event")
	}
	assert.False(t, ch.Connected())
}

func TestDisconnectThenReconnect(t *testing.T) {
	url := newTestEndpoint(t, func(conn *websocket.Conn) {
		defer conn.Close()
		time.Sleep(300 * time.Millisecond)
	})

	ch := NewChannel(url, log.NullLogger())
	require.NoError(t, ch.Connect(context.Background()))
	ch.Disconnect()
	assert.False(t, ch.Connected())

	require.NoError(t, ch.Connect(context.Background()))
	defer ch.Disconnect()
	assert.True(t, ch.Connected())
}
