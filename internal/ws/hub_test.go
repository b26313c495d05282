package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hubServer upgrades inbound connections and registers them on the hub,
// handing the created clients back through the channel.
func hubServer(t *testing.T, hub *Hub) (*httptest.Server, chan *Client) {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	clients := make(chan *Client, 8)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		clients <- hub.Add(r.URL.Query().Get("session"), conn)
	}))
	t.Cleanup(srv.Close)
	return srv, clients
}

func dial(t *testing.T, srv *httptest.Server, session string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?session=" + session
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) WSMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg WSMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()
	srv, clients := hubServer(t, hub)

	c1 := dial(t, srv, "s1")
	c2 := dial(t, srv, "s2")
	<-clients
	<-clients
	require.Equal(t, 2, hub.ClientCount())

	hub.Broadcast(WSMessage{Type: EventOnlineCount, Data: 2})

	for _, conn := range []*websocket.Conn{c1, c2} {
		msg := readMessage(t, conn)
		assert.Equal(t, EventOnlineCount, msg.Type)
		assert.Equal(t, float64(2), msg.Data)
	}
}

func TestHubSendTargetsOneClient(t *testing.T) {
	hub := NewHub()
	srv, clients := hubServer(t, hub)

	c1 := dial(t, srv, "s1")
	first := <-clients
	c2 := dial(t, srv, "s2")
	<-clients

	require.NoError(t, first.Send(WSMessage{Type: EventAnswerResult, Data: map[string]interface{}{"is_correct": true}}))

	msg := readMessage(t, c1)
	assert.Equal(t, EventAnswerResult, msg.Type)

	// The other client must not see the per-session result.
	c2.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := c2.ReadMessage()
	assert.Error(t, err)
}

func TestHubRemove(t *testing.T) {
	hub := NewHub()
	srv, clients := hubServer(t, hub)

	dial(t, srv, "s1")
	client := <-clients
	require.Equal(t, 1, hub.ClientCount())

	hub.Remove(client)
	assert.Equal(t, 0, hub.ClientCount())

	// Removing twice is harmless.
	hub.Remove(client)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHubDropsDeadClientOnBroadcast(t *testing.T) {
	hub := NewHub()
	srv, clients := hubServer(t, hub)

	conn := dial(t, srv, "s1")
	<-clients
	conn.Close()

	// The write to the closed connection fails and the client is evicted.
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() > 0 && time.Now().Before(deadline) {
		hub.Broadcast(WSMessage{Type: EventOnlineCount, Data: 0})
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, 0, hub.ClientCount())
}
