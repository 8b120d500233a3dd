package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ianmabie/appbot-review-display-dash/internal/notify"
)

// WsHandler upgrades dashboard viewers onto the notification hub.
type WsHandler struct {
	Hub *notify.Hub
	Log *zap.SugaredLogger
}

func NewWsHandler(hub *notify.Hub, log *zap.SugaredLogger) *WsHandler {
	return &WsHandler{Hub: hub, Log: log}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 仪表盘是公开页面，和原先 cors_allowed_origins='*' 一致
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Serve 处理 GET /ws，升级后交给 Hub 管理，断开由写失败时清理
func (h *WsHandler) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Log.Warnw("websocket upgrade failed", "error", err)
		return
	}
	h.Hub.AddConnection(conn)
}
