package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/ianmabie/appbot-review-display-dash/internal/config"
)

// RedisNotifier 把事件 PUBLISH 到一个 redis 频道，供外部展示层订阅
// 发布失败只记日志，不向上传递
type RedisNotifier struct {
	client  *redis.Client
	channel string
	log     *zap.SugaredLogger
}

// NewRedisNotifier creates the client and verifies the connection once.
func NewRedisNotifier(cfg config.NotifierConfig, log *zap.SugaredLogger) (*RedisNotifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisNotifier{client: client, channel: cfg.RedisChannel, log: log}, nil
}

func (n *RedisNotifier) Publish(event string, payload any) {
	msg, err := json.Marshal(Payload{Event: event, Data: payload})
	if err != nil {
		n.log.Errorw("encode notification", "event", event, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := n.client.Publish(ctx, n.channel, msg).Err(); err != nil {
		n.log.Warnw("publish notification", "event", event, "error", err)
	}
}
