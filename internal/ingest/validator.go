package ingest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ianmabie/appbot-review-display-dash/internal/models"
)

// 缺省值：上游经常只发部分字段，入库列又是 NOT NULL，所以统一补占位
const (
	defaultAuthor    = "Anonymous"
	defaultSubject   = "No Subject"
	defaultBody      = "No Content"
	defaultSentiment = "unknown"
)

// publishedAtLayout 是 published_at 唯一接受的格式
const publishedAtLayout = "2006-01-02"

type rawReview struct {
	AppID       *int64  `json:"app_id"`
	AppStoreID  *string `json:"app_store_id"`
	Author      *string `json:"author"`
	Rating      *int    `json:"rating"`
	Subject     *string `json:"subject"`
	Body        *string `json:"body"`
	PublishedAt *string `json:"published_at"`
	Sentiment   *string `json:"sentiment"`
}

// ParseRecord 把一条原始记录解析成 Review，纯函数，不做任何 I/O
// 字段缺失一律用占位值补齐，不拒绝；published_at 缺失或格式不对时只是不存日期，
// 同样不拒绝。只有记录本身无法按对象解码（比如元素是字符串、字段类型对不上）
// 才返回错误，由调用方跳过这一条。
func ParseRecord(raw json.RawMessage) (models.Review, error) {
	var r rawReview
	if err := json.Unmarshal(raw, &r); err != nil {
		return models.Review{}, fmt.Errorf("decode record: %w", err)
	}

	review := models.Review{
		AppID:     r.AppID,
		Author:    defaultAuthor,
		Subject:   defaultSubject,
		Body:      defaultBody,
		Sentiment: defaultSentiment,
	}

	if r.AppStoreID != nil {
		review.AppStoreID = *r.AppStoreID
	}
	if r.Author != nil && *r.Author != "" {
		review.Author = *r.Author
	}
	if r.Rating != nil {
		review.Rating = *r.Rating
	}
	if r.Subject != nil && *r.Subject != "" {
		review.Subject = *r.Subject
	}
	if r.Body != nil && *r.Body != "" {
		review.Body = *r.Body
	}
	if r.Sentiment != nil && *r.Sentiment != "" {
		review.Sentiment = *r.Sentiment
	}

	if r.PublishedAt != nil {
		if t, err := time.Parse(publishedAtLayout, *r.PublishedAt); err == nil {
			review.PublishedAt = &t
		}
		// 解析失败和没传同样处理：不存日期
	}

	return review, nil
}
