package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ianmabie/appbot-review-display-dash/internal/ingest"
	"github.com/ianmabie/appbot-review-display-dash/internal/store"
	"github.com/ianmabie/appbot-review-display-dash/internal/util"
)

// WebhookHandler 负责接收评论推送
type WebhookHandler struct {
	Pipeline *ingest.Pipeline
	Log      *zap.SugaredLogger
}

func NewWebhookHandler(pipeline *ingest.Pipeline, log *zap.SugaredLogger) *WebhookHandler {
	return &WebhookHandler{Pipeline: pipeline, Log: log}
}

type webhookReq struct {
	// 指针用来区分 "reviews" 键缺失和空列表：缺失是 400，空列表正常处理
	Reviews *[]json.RawMessage `json:"reviews"`
}

// Receive 处理 POST /webhook
// 返回值只有三种：200 带 processed/failed，400 请求体不合法，500 入库失败
func (h *WebhookHandler) Receive(c *gin.Context) {
	var req webhookReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if req.Reviews == nil {
		util.Error(c, http.StatusBadRequest, "missing required key: reviews")
		return
	}

	result, err := h.Pipeline.Ingest(c.Request.Context(), *req.Reviews)
	if err != nil {
		if store.IsStorageError(err) {
			h.Log.Errorw("webhook persist failed", "error", err)
			util.Error(c, http.StatusInternalServerError, "failed to store reviews")
			return
		}
		h.Log.Errorw("webhook ingest failed", "error", err)
		util.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"processed": result.Processed,
		"failed":    result.Failed,
	})
}
