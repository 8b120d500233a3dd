package models

import "time"

// Review 表示一条从 webhook 接收的应用商店评论
// 入库后不可变：只有插入和保留上限触发的删除，没有更新
type Review struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	AppID       *int64     `gorm:"column:app_id" json:"app_id,omitempty"`
	AppStoreID  string     `gorm:"size:50" json:"app_store_id,omitempty"`
	Author      string     `gorm:"size:100;not null" json:"author"`
	Rating      int        `gorm:"not null" json:"rating"`
	Subject     string     `gorm:"size:200" json:"subject"`
	Body        string     `gorm:"type:text" json:"body"`
	PublishedAt *time.Time `json:"published_at,omitempty"` // 只有日期部分；缺失或无法解析时为 nil（两者不区分）
	Sentiment   string     `gorm:"size:50" json:"sentiment"`
	ReceivedAt  time.Time  `gorm:"index;not null" json:"received_at"` // 入库时由 store 赋值，作为唯一的时间排序键
}

func (Review) TableName() string {
	return "reviews"
}
