package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ianmabie/appbot-review-display-dash/internal/logger"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		hub.AddConnection(conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

// TestHub_BroadcastsToSubscriber 订阅的客户端能收到事件
func TestHub_BroadcastsToSubscriber(t *testing.T) {
	hub := NewHub(logger.NewNop())
	client := dialHub(t, hub)

	if hub.ConnectionCount() != 1 {
		t.Fatalf("ConnectionCount() = %d, want 1", hub.ConnectionCount())
	}

	hub.Publish("new_reviews", map[string]any{"count": 3})

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := client.ReadMessage()
	if err != nil {
		t.Fatalf("read message: %v", err)
	}

	var payload Payload
	if err := json.Unmarshal(msg, &payload); err != nil {
		t.Fatalf("decode payload %q: %v", msg, err)
	}
	if payload.Event != "new_reviews" {
		t.Errorf("event = %q, want %q", payload.Event, "new_reviews")
	}
	data, ok := payload.Data.(map[string]any)
	if !ok || data["count"] != float64(3) {
		t.Errorf("data = %v, want count 3", payload.Data)
	}
}

// TestHub_PrunesDeadConnections 写失败的连接会被移除
func TestHub_PrunesDeadConnections(t *testing.T) {
	hub := NewHub(logger.NewNop())
	client := dialHub(t, hub)
	client.Close()

	// 连接刚关，第一次写可能还在内核缓冲里成功，多广播几次
	for i := 0; i < 5 && hub.ConnectionCount() > 0; i++ {
		hub.Publish("new_reviews", map[string]any{"count": 1})
		time.Sleep(50 * time.Millisecond)
	}

	if hub.ConnectionCount() != 0 {
		t.Errorf("ConnectionCount() = %d, want 0 after client close", hub.ConnectionCount())
	}
}

// TestHub_NoSubscribersIsNoop 没有订阅者时广播不会出错
func TestHub_NoSubscribersIsNoop(t *testing.T) {
	hub := NewHub(logger.NewNop())
	hub.Publish("new_reviews", map[string]any{"count": 1})
}
