package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mquinn/folio/backend/internal/recordid"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The admin dashboard is served from the same origin; everything else
	// is rejected.
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || origin == "http://"+r.Host || origin == "https://"+r.Host
	},
}

// Record change events broadcast to connected admin dashboards.
const (
	EventBlogCreated    = "blog.created"
	EventBlogUpdated    = "blog.updated"
	EventBlogDeleted    = "blog.deleted"
	EventReadingSaved   = "reading.saved"
	EventReadingGone    = "reading.deleted"
	EventAdminChanged   = "admin.changed"
	EventProfileSaved   = "profile.saved"
	EventOrderRewritten = "order.rewritten"
)

// Envelope wraps every websocket message.
type Envelope struct {
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// wsClient is one connected dashboard.
type wsClient struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub fans record change events out to every connected client.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*wsClient
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*wsClient)}
}

// Publish sends an event to every connected client. Slow clients are
// dropped rather than allowed to stall the rest.
func (h *Hub) Publish(eventType string, data map[string]interface{}) {
	payload, err := json.Marshal(Envelope{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		zap.S().Errorw("cannot encode event", "type", eventType, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.send <- payload:
		default:
			zap.S().Warnw("dropping slow websocket client", "client", client.id)
			go h.remove(client)
		}
	}
}

// Serve upgrades the request and pumps events until the client goes away.
func (h *Hub) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.S().Warnw("websocket upgrade failed", "error", err)
		return
	}

	client := &wsClient{
		id:   recordid.New("ws"),
		conn: conn,
		send: make(chan []byte, 16),
	}
	h.mu.Lock()
	h.clients[client.id] = client
	h.mu.Unlock()
	zap.S().Debugw("websocket client connected", "client", client.id)

	go h.writePump(client)
	h.readPump(client)
}

func (h *Hub) writePump(client *wsClient) {
	for payload := range client.send {
		if err := client.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.remove(client)
			return
		}
	}
}

// readPump discards inbound frames; the stream is one-way. It exists to
// notice disconnects.
func (h *Hub) readPump(client *wsClient) {
	defer h.remove(client)
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) remove(client *wsClient) {
	h.mu.Lock()
	if _, ok := h.clients[client.id]; ok {
		delete(h.clients, client.id)
		close(client.send)
	}
	h.mu.Unlock()
	_ = client.conn.Close()
}
