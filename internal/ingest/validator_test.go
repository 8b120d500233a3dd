package ingest

import (
	"encoding/json"
	"testing"
	"time"
)

// TestParseRecord_Defaults 测试全空记录的占位值
func TestParseRecord_Defaults(t *testing.T) {
	review, err := ParseRecord(json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("ParseRecord({}) error = %v, want nil", err)
	}

	if review.Author != "Anonymous" {
		t.Errorf("Author = %q, want %q", review.Author, "Anonymous")
	}
	if review.Rating != 0 {
		t.Errorf("Rating = %d, want 0", review.Rating)
	}
	if review.Subject != "No Subject" {
		t.Errorf("Subject = %q, want %q", review.Subject, "No Subject")
	}
	if review.Body != "No Content" {
		t.Errorf("Body = %q, want %q", review.Body, "No Content")
	}
	if review.Sentiment != "unknown" {
		t.Errorf("Sentiment = %q, want %q", review.Sentiment, "unknown")
	}
	if review.PublishedAt != nil {
		t.Errorf("PublishedAt = %v, want nil", review.PublishedAt)
	}
	if review.AppID != nil {
		t.Errorf("AppID = %v, want nil", review.AppID)
	}
}

// TestParseRecord_FullRecord 测试完整记录逐字段透传
func TestParseRecord_FullRecord(t *testing.T) {
	raw := json.RawMessage(`{
		"app_id": 42,
		"app_store_id": "ios-123",
		"author": "Alice",
		"rating": 5,
		"subject": "Great",
		"body": "Loved it",
		"published_at": "2024-03-15",
		"sentiment": "positive"
	}`)

	review, err := ParseRecord(raw)
	if err != nil {
		t.Fatalf("ParseRecord() error = %v, want nil", err)
	}

	if review.AppID == nil || *review.AppID != 42 {
		t.Errorf("AppID = %v, want 42", review.AppID)
	}
	if review.AppStoreID != "ios-123" {
		t.Errorf("AppStoreID = %q, want %q", review.AppStoreID, "ios-123")
	}
	if review.Author != "Alice" {
		t.Errorf("Author = %q, want %q", review.Author, "Alice")
	}
	if review.Rating != 5 {
		t.Errorf("Rating = %d, want 5", review.Rating)
	}
	if review.Sentiment != "positive" {
		t.Errorf("Sentiment = %q, want %q", review.Sentiment, "positive")
	}

	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if review.PublishedAt == nil || !review.PublishedAt.Equal(want) {
		t.Errorf("PublishedAt = %v, want %v", review.PublishedAt, want)
	}
}

// TestParseRecord_BadDateNeverRejects 测试非法日期只丢日期不丢记录
func TestParseRecord_BadDateNeverRejects(t *testing.T) {
	testCases := []string{
		"2024/03/15",
		"15-03-2024",
		"2024-3-5",
		"not-a-date",
		"2024-13-01",
		"",
	}

	for _, dateStr := range testCases {
		raw, _ := json.Marshal(map[string]any{"author": "Bob", "published_at": dateStr})
		review, err := ParseRecord(raw)
		if err != nil {
			t.Errorf("ParseRecord(published_at=%q) error = %v, want nil", dateStr, err)
			continue
		}
		if review.PublishedAt != nil {
			t.Errorf("ParseRecord(published_at=%q) PublishedAt = %v, want nil", dateStr, review.PublishedAt)
		}
		if review.Author != "Bob" {
			t.Errorf("ParseRecord(published_at=%q) Author = %q, want %q", dateStr, review.Author, "Bob")
		}
	}
}

// TestParseRecord_InvalidRecord 测试无法解码的记录返回错误
func TestParseRecord_InvalidRecord(t *testing.T) {
	testCases := []string{
		`"just a string"`,
		`[1, 2, 3]`,
		`{"rating": "five"}`,
		`{"author": 123}`,
	}

	for _, raw := range testCases {
		_, err := ParseRecord(json.RawMessage(raw))
		if err == nil {
			t.Errorf("ParseRecord(%s) error = nil, want error", raw)
		}
	}
}

// TestParseRecord_EmptyStringsKeepPlaceholders 测试空字符串同样回退占位值
func TestParseRecord_EmptyStringsKeepPlaceholders(t *testing.T) {
	raw := json.RawMessage(`{"author": "", "subject": "", "body": "", "sentiment": ""}`)

	review, err := ParseRecord(raw)
	if err != nil {
		t.Fatalf("ParseRecord() error = %v, want nil", err)
	}
	if review.Author != "Anonymous" {
		t.Errorf("Author = %q, want %q", review.Author, "Anonymous")
	}
	if review.Subject != "No Subject" {
		t.Errorf("Subject = %q, want %q", review.Subject, "No Subject")
	}
	if review.Body != "No Content" {
		t.Errorf("Body = %q, want %q", review.Body, "No Content")
	}
	if review.Sentiment != "unknown" {
		t.Errorf("Sentiment = %q, want %q", review.Sentiment, "unknown")
	}
}
