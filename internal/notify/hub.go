package notify

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub 维护当前连接的 websocket 客户端并向它们广播事件
// 写失败的连接当场关闭并移除，事件不补发
type Hub struct {
	mu          sync.Mutex
	connections map[uuid.UUID]*websocket.Conn
	log         *zap.SugaredLogger
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{
		connections: map[uuid.UUID]*websocket.Conn{},
		log:         log,
	}
}

// AddConnection registers an upgraded connection with the hub.
func (h *Hub) AddConnection(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[uuid.New()] = conn
}

// ConnectionCount returns the number of currently registered clients.
func (h *Hub) ConnectionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.connections)
}

func (h *Hub) Publish(event string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.connections) == 0 {
		return
	}

	msg := Payload{Event: event, Data: payload}
	for id, conn := range h.connections {
		if err := conn.WriteJSON(msg); err != nil {
			// clean up dead connections
			_ = conn.Close()
			delete(h.connections, id)
			h.log.Debugw("dropped websocket subscriber", "error", err)
		}
	}
}
