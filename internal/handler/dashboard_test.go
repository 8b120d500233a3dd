package handler

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ianmabie/appbot-review-display-dash/internal/logger"
	"github.com/ianmabie/appbot-review-display-dash/internal/models"
	"github.com/ianmabie/appbot-review-display-dash/internal/store"
)

func newDashboardApp(t *testing.T) (*gin.Engine, *store.ReviewStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Review{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	log := logger.NewNop()
	reviewStore := store.NewReviewStore(db, log)

	r := gin.New()
	r.LoadHTMLGlob("../../web/templates/*")
	r.GET("/", NewDashboardHandler(reviewStore, 100, log).Index)

	return r, reviewStore
}

func getDashboard(t *testing.T, r *gin.Engine) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestDashboard_ShowsRecentReviews 页面包含最新的评论
func TestDashboard_ShowsRecentReviews(t *testing.T) {
	r, s := newDashboardApp(t)

	review := models.Review{
		Author:     "Alice",
		Rating:     5,
		Subject:    "Great",
		Body:       "Loved it",
		Sentiment:  "positive",
		ReceivedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := s.DB.Create(&review).Error; err != nil {
		t.Fatalf("seed review: %v", err)
	}

	w := getDashboard(t, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	page := w.Body.String()
	for _, want := range []string{"Alice", "Great", "Loved it", "positive", "2024-01-01 12:00:00"} {
		if !strings.Contains(page, want) {
			t.Errorf("page does not contain %q", want)
		}
	}
}

// TestDashboard_EmptyStore 空库也正常渲染
func TestDashboard_EmptyStore(t *testing.T) {
	r, _ := newDashboardApp(t)

	w := getDashboard(t, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No reviews received yet") {
		t.Error("page does not show the empty state")
	}
}

// TestDashboard_DegradedOnStorageFailure 读库失败时降级渲染而不是报错
func TestDashboard_DegradedOnStorageFailure(t *testing.T) {
	r, s := newDashboardApp(t)

	// 关掉底层连接模拟存储故障
	sqlDB, err := s.DB.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close sql db: %v", err)
	}

	w := getDashboard(t, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even when storage is down", w.Code)
	}
	if !strings.Contains(w.Body.String(), "temporarily unavailable") {
		t.Error("page does not show the degraded banner")
	}
}
