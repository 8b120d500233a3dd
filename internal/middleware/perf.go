package middleware

import (
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	slowRequestThreshold = 2 * time.Second
	maxTrackedRequests   = 100
	maxTrackedSlow       = 20
)

type slowRequest struct {
	Method    string  `json:"method"`
	Path      string  `json:"path"`
	Duration  float64 `json:"duration"`
	Timestamp int64   `json:"timestamp"`
}

// PerfMonitor 跟踪最近请求的耗时和慢请求，供 /performance 查询
// 只保留最近 100 条耗时和 20 条慢请求，旧数据滚动丢弃
type PerfMonitor struct {
	mu           sync.Mutex
	requestTimes []time.Duration
	slowRequests []slowRequest
	log          *zap.SugaredLogger
}

func NewPerfMonitor(log *zap.SugaredLogger) *PerfMonitor {
	return &PerfMonitor{log: log}
}

// Middleware records the duration of every request.
func (p *PerfMonitor) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)

		p.mu.Lock()
		defer p.mu.Unlock()

		p.requestTimes = append(p.requestTimes, duration)
		if len(p.requestTimes) > maxTrackedRequests {
			p.requestTimes = p.requestTimes[len(p.requestTimes)-maxTrackedRequests:]
		}

		if duration > slowRequestThreshold {
			p.slowRequests = append(p.slowRequests, slowRequest{
				Method:    c.Request.Method,
				Path:      c.Request.URL.Path,
				Duration:  duration.Seconds(),
				Timestamp: time.Now().Unix(),
			})
			if len(p.slowRequests) > maxTrackedSlow {
				p.slowRequests = p.slowRequests[len(p.slowRequests)-maxTrackedSlow:]
			}
			p.log.Warnw("slow request",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"duration", duration,
			)
		}
	}
}

// Stats 处理 GET /performance
func (p *PerfMonitor) Stats(c *gin.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.requestTimes) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "no_data"})
		return
	}

	var total, max time.Duration
	for _, d := range p.requestTimes {
		total += d
		if d > max {
			max = d
		}
	}
	avg := total / time.Duration(len(p.requestTimes))

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	recentSlow := p.slowRequests
	if len(recentSlow) > 5 {
		recentSlow = recentSlow[len(recentSlow)-5:]
	}

	c.JSON(http.StatusOK, gin.H{
		"status":                "ok",
		"requests_tracked":      len(p.requestTimes),
		"average_response_time": avg.Seconds(),
		"max_response_time":     max.Seconds(),
		"slow_requests_count":   len(p.slowRequests),
		"memory_usage_mb":       float64(mem.Alloc) / 1024 / 1024,
		"goroutines":            runtime.NumGoroutine(),
		"recent_slow_requests":  recentSlow,
	})
}
