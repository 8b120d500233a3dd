package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ianmabie/appbot-review-display-dash/internal/config"
	"github.com/ianmabie/appbot-review-display-dash/internal/handler"
	"github.com/ianmabie/appbot-review-display-dash/internal/ingest"
	"github.com/ianmabie/appbot-review-display-dash/internal/middleware"
	"github.com/ianmabie/appbot-review-display-dash/internal/notify"
	"github.com/ianmabie/appbot-review-display-dash/internal/store"
)

// SetupRouter configures Gin engine, templates and static resources.
// All collaborators are constructed here and passed down explicitly;
// hub may be nil when the notifier driver is not "websocket".
func SetupRouter(cfg *config.Config, db *gorm.DB, notifier notify.Notifier, hub *notify.Hub, log *zap.SugaredLogger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()

	perf := middleware.NewPerfMonitor(log)
	r.Use(middleware.RequestLogger(log), gin.Recovery(), perf.Middleware())

	// static files and templates
	r.Static("/static", "./web/static")
	r.LoadHTMLGlob("web/templates/*")

	reviewStore := store.NewReviewStore(db, log)
	pipeline := ingest.NewPipeline(reviewStore, notifier, cfg.Retention.MaxRetained, log)

	dashboardHandler := handler.NewDashboardHandler(reviewStore, cfg.Retention.MaxRetained, log)
	r.GET("/", dashboardHandler.Index)

	webhookHandler := handler.NewWebhookHandler(pipeline, log)
	r.POST("/webhook", webhookHandler.Receive)

	healthHandler := handler.NewHealthHandler(db)
	r.GET("/health", healthHandler.Health)
	r.GET("/health/ready", healthHandler.Ready)

	r.GET("/performance", perf.Stats)

	exportHandler := handler.NewExportHandler(reviewStore, cfg.Retention.MaxRetained, log)
	r.GET("/export/csv", exportHandler.ExportCSV)
	r.GET("/export/xlsx", exportHandler.ExportXLSX)

	if hub != nil {
		wsHandler := handler.NewWsHandler(hub, log)
		r.GET("/ws", wsHandler.Serve)
	}

	return r
}
