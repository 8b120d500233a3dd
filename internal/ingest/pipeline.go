package ingest

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/ianmabie/appbot-review-display-dash/internal/models"
	"github.com/ianmabie/appbot-review-display-dash/internal/notify"
)

// EventNewReviews 是每次成功入库后广播给前端的事件名
const EventNewReviews = "new_reviews"

// Store 是流水线需要的最小持久化接口，测试时可以注入假实现
type Store interface {
	InsertBatch(ctx context.Context, entries []models.Review) (int, error)
	EnforceCap(ctx context.Context, maxRetained int) (int64, error)
}

// Result 汇总一次 webhook 调用的处理结果
type Result struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}

// Pipeline 按 校验 -> 批量入库 -> 保留上限 -> 通知 的顺序处理一批记录
type Pipeline struct {
	Store       Store
	Notifier    notify.Notifier
	MaxRetained int
	Log         *zap.SugaredLogger
}

func NewPipeline(store Store, notifier notify.Notifier, maxRetained int, log *zap.SugaredLogger) *Pipeline {
	return &Pipeline{
		Store:       store,
		Notifier:    notifier,
		MaxRetained: maxRetained,
		Log:         log,
	}
}

// Ingest 处理一批原始记录。单条解析失败只计入 Failed，不影响其余记录；
// 入库失败时整批回滚并返回错误，不再执行保留上限和通知；
// 入库成功之后，上限清理和通知的失败都只记日志，不改变已经成功的结果。
func (p *Pipeline) Ingest(ctx context.Context, records []json.RawMessage) (Result, error) {
	var result Result

	entries := make([]models.Review, 0, len(records))
	for _, raw := range records {
		review, err := ParseRecord(raw)
		if err != nil {
			result.Failed++
			p.Log.Warnw("skipping invalid review record", "error", err)
			continue
		}
		entries = append(entries, review)
	}

	inserted, err := p.Store.InsertBatch(ctx, entries)
	if err != nil {
		return Result{}, err
	}
	result.Processed = inserted

	if _, err := p.Store.EnforceCap(ctx, p.MaxRetained); err != nil {
		// 已提交的插入不受影响，这里只记日志
		p.Log.Errorw("retention cap enforcement failed", "error", err)
	}

	if result.Processed > 0 {
		p.Notifier.Publish(EventNewReviews, map[string]any{"count": result.Processed})
	}

	return result, nil
}
