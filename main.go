package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ianmabie/appbot-review-display-dash/internal/config"
	"github.com/ianmabie/appbot-review-display-dash/internal/database"
	"github.com/ianmabie/appbot-review-display-dash/internal/logger"
	"github.com/ianmabie/appbot-review-display-dash/internal/notify"
	"github.com/ianmabie/appbot-review-display-dash/internal/router"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// init logger
	zlog := logger.New(cfg.Log)
	defer zlog.Sync()

	// init database
	db, err := database.Init(cfg.Database, zlog)
	if err != nil {
		zlog.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		zlog.Fatalf("migrate database: %v", err)
	}

	// pick the notification transport
	var (
		notifier notify.Notifier
		hub      *notify.Hub
	)
	switch cfg.Notifier.Driver {
	case "websocket":
		hub = notify.NewHub(zlog)
		notifier = hub
	case "redis":
		notifier, err = notify.NewRedisNotifier(cfg.Notifier, zlog)
		if err != nil {
			zlog.Fatalf("init redis notifier: %v", err)
		}
	default:
		notifier = notify.Noop{}
	}

	// setup router
	r := router.SetupRouter(cfg, db, notifier, hub, zlog)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		zlog.Infof("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatalf("run server: %v", err)
		}
	}()

	// wait for interrupt, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatalf("shutdown server: %v", err)
	}
	zlog.Info("server stopped")
}
