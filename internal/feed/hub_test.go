package feed

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/kitchen"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func newServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	e := echo.New()
	e.GET("/ws/kitchen", hub.Handle)
	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return server
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	hub := NewHub(zap.NewNop())
	server := newServer(t, hub)

	first := dial(t, server)
	second := dial(t, server)

	require.Eventually(t, func() bool { return hub.Clients() == 2 },
		time.Second, 10*time.Millisecond)

	hub.Broadcast([]byte(`{"kind":"order.created","order_id":1}`))

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		kind, payload, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, websocket.TextMessage, kind)
		assert.Contains(t, string(payload), "order.created")
	}
}

func TestClientRemovedOnClose(t *testing.T) {
	hub := NewHub(zap.NewNop())
	server := newServer(t, hub)

	conn := dial(t, server)
	require.Eventually(t, func() bool { return hub.Clients() == 1 },
		time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Clients() == 0 },
		time.Second, 10*time.Millisecond)
}

func TestBroadcastWithoutClientsIsSafe(t *testing.T) {
	hub := NewHub(zap.NewNop())
	hub.Broadcast([]byte("noop"))
	assert.Equal(t, 0, hub.Clients())
}
