package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ianmabie/appbot-review-display-dash/internal/models"
	"github.com/ianmabie/appbot-review-display-dash/internal/store"
)

// DashboardHandler 渲染最近评论页面
type DashboardHandler struct {
	Store *store.ReviewStore
	Limit int
	Log   *zap.SugaredLogger
}

func NewDashboardHandler(s *store.ReviewStore, limit int, log *zap.SugaredLogger) *DashboardHandler {
	return &DashboardHandler{Store: s, Limit: limit, Log: log}
}

// reviewView 是模板使用的展示结构，时间都预先格式化好
type reviewView struct {
	Author      string
	Rating      int
	Subject     string
	Body        string
	PublishedAt string // YYYY-MM-DD，没有日期时为空
	Sentiment   string
	ReceivedAt  string // YYYY-MM-DD HH:MM:SS
}

func toReviewView(r *models.Review) reviewView {
	v := reviewView{
		Author:     r.Author,
		Rating:     r.Rating,
		Subject:    r.Subject,
		Body:       r.Body,
		Sentiment:  r.Sentiment,
		ReceivedAt: r.ReceivedAt.Format("2006-01-02 15:04:05"),
	}
	if r.PublishedAt != nil {
		v.PublishedAt = r.PublishedAt.Format("2006-01-02")
	}
	return v
}

// Index 处理 GET /
// 读库失败时降级渲染：空列表加提示，页面永远返回 200
func (h *DashboardHandler) Index(c *gin.Context) {
	degraded := false

	reviews, err := h.Store.ListRecent(c.Request.Context(), h.Limit)
	if err != nil {
		h.Log.Errorw("dashboard query failed", "error", err)
		reviews = nil
		degraded = true
	}

	items := make([]reviewView, 0, len(reviews))
	for i := range reviews {
		items = append(items, toReviewView(&reviews[i]))
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"title":    "Recent Reviews",
		"reviews":  items,
		"degraded": degraded,
	})
}
