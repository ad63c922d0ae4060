// Package realtime pushes deletion workflow events to connected browsers
// over WebSocket.
package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

const (
	EventDeletionRequested = "deletion_requested"
	EventDeletionReviewed  = "deletion_reviewed"
)

// Event is the envelope written to every subscriber.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type connection struct {
	userID string
	admin  bool
	conn   *websocket.Conn
	send   chan []byte
}

// Hub tracks live connections. A user may hold several at once, one per tab.
type Hub struct {
	log *zap.Logger

	mu          sync.RWMutex
	connections map[*connection]struct{}
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		log:         log,
		connections: make(map[*connection]struct{}),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}

// Count reports the number of open connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// BroadcastToAdmins delivers event to every admin connection.
func (h *Hub) BroadcastToAdmins(event Event) int {
	return h.deliver(event, func(c *connection) bool { return c.admin })
}

// SendToUser delivers event to every connection of userID and reports how
// many received it.
func (h *Hub) SendToUser(userID string, event Event) int {
	return h.deliver(event, func(c *connection) bool { return c.userID == userID })
}

func (h *Hub) deliver(event Event, match func(*connection) bool) int {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error("realtime event encode failed", zap.String("type", event.Type), zap.Error(err))
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	delivered := 0
	for c := range h.connections {
		if !match(c) {
			continue
		}
		select {
		case c.send <- data:
			delivered++
		default:
			h.log.Warn("realtime subscriber too slow, event dropped",
				zap.String("user_id", c.userID), zap.String("type", event.Type))
		}
	}
	return delivered
}

// Serve registers conn and blocks until the peer disconnects.
func (h *Hub) Serve(conn *websocket.Conn, userID string, admin bool) {
	c := &connection{
		userID: userID,
		admin:  admin,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}
	h.register(c)
	h.log.Debug("realtime subscriber connected", zap.String("user_id", userID), zap.Bool("admin", admin))

	go h.writePump(c)
	h.readPump(c)
}

// readPump only drains control frames; subscribers never send events.
func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
		h.log.Debug("realtime subscriber disconnected", zap.String("user_id", c.userID))
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("realtime read failed", zap.String("user_id", c.userID), zap.Error(err))
			}
			return
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
