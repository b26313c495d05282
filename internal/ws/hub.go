package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Event types carried in WSMessage.Type.
const (
	EventOnlineCount    = "users:count"
	EventActivityChange = "activity:status:change"
	EventNotification   = "notification"
	EventQuestionActive = "question:active"
	EventPhotoApproved  = "photo:approved"
	EventPhotoPending   = "admin:photo:pending"
	EventPhotoLikes     = "photo:likes:update"
	EventAnswerResult   = "answer:result"
	EventLeaderboard    = "leaderboard:refresh"
	EventParticipantOut = "participant:removed"
	EventSettingsUpdate = "settings:update"
)

// Client wraps one websocket connection. Writes go through the client's
// own mutex: broadcasts and per-session results come from different
// goroutines and gorilla allows only one concurrent writer.
type Client struct {
	SessionID string
	conn      *websocket.Conn
	writeMu   sync.Mutex
}

func (c *Client) Send(message WSMessage) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub fans events out to every connected client. Delivery is best-effort:
// a client that is gone at broadcast time misses the event and re-fetches
// state on reconnect.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
	}
}

func (h *Hub) Add(sessionID string, conn *websocket.Conn) *Client {
	client := &Client{SessionID: sessionID, conn: conn}

	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	log.Printf("ws: client connected %s (total: %d)", sessionID, total)
	return client
}

func (h *Hub) Remove(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.conn.Close()
		log.Printf("ws: client disconnected %s", client.SessionID)
	}
	h.mu.Unlock()
}

func (h *Hub) Broadcast(message WSMessage) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.Send(message); err != nil {
			log.Printf("ws: write error: %v", err)
			h.Remove(c)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
