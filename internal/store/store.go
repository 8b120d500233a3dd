package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ianmabie/appbot-review-display-dash/internal/models"
)

// StorageError wraps any failure coming out of the persistence layer so
// callers can tell storage trouble apart from their own errors.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err is (or wraps) a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// ReviewStore 负责 reviews 表的读写，保留上限之外的旧记录在这里删除
// 所有排序统一使用 (received_at, id)，保证同一时间戳下结果可重复
type ReviewStore struct {
	DB  *gorm.DB
	Log *zap.SugaredLogger
}

func NewReviewStore(db *gorm.DB, log *zap.SugaredLogger) *ReviewStore {
	return &ReviewStore{DB: db, Log: log}
}

// InsertBatch 在一个事务里写入整批记录，要么全部可见要么一条都不落库
// received_at 在这里赋值，调用方传入的值会被覆盖
func (s *ReviewStore) InsertBatch(ctx context.Context, entries []models.Review) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	for i := range entries {
		entries[i].ReceivedAt = now
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&entries).Error
	})
	if err != nil {
		return 0, &StorageError{Op: "insert", Err: err}
	}
	return len(entries), nil
}

// Count 返回当前保留的记录总数
func (s *ReviewStore) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := s.DB.WithContext(ctx).Model(&models.Review{}).Count(&total).Error; err != nil {
		return 0, &StorageError{Op: "count", Err: err}
	}
	return total, nil
}

// EnforceCap 删除最新 maxRetained 条之外的所有旧记录，一条 DELETE 完成
// 数量不超过上限时是空操作，重复调用第二次删除 0 行
func (s *ReviewStore) EnforceCap(ctx context.Context, maxRetained int) (int64, error) {
	total, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	if total <= int64(maxRetained) {
		return 0, nil
	}

	res := s.DB.WithContext(ctx).Exec(
		`DELETE FROM reviews WHERE id NOT IN (
			SELECT id FROM reviews ORDER BY received_at DESC, id DESC LIMIT ?
		)`, maxRetained)
	if res.Error != nil {
		return 0, &StorageError{Op: "enforce cap", Err: res.Error}
	}

	s.Log.Infow("retention cap enforced", "max_retained", maxRetained, "deleted", res.RowsAffected)
	return res.RowsAffected, nil
}

// ListRecent 按接收时间倒序返回最新的 limit 条记录
func (s *ReviewStore) ListRecent(ctx context.Context, limit int) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.DB.WithContext(ctx).
		Order("received_at DESC, id DESC").
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return reviews, nil
}
