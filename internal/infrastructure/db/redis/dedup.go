package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const noticeTTL = 48 * time.Hour

// NoticeDedup suppresses repeat due-soon and overdue notices, backed by Redis.
// Key format: notice:<type>:<transaction_id>:<yyyy-mm-dd>
//
// The scanner runs many times a day; a key per calendar day caps each loan at
// one notice of each type per day. Keys expire after noticeTTL so the set
// never grows past two days of traffic.
type NoticeDedup struct {
	client *redis.Client
}

// NewNoticeDedup creates a NoticeDedup wrapping the given Redis client.
func NewNoticeDedup(client *redis.Client) *NoticeDedup {
	return &NoticeDedup{client: client}
}

// AlreadySent reports whether a notice of this type already went out for the
// transaction today.
func (d *NoticeDedup) AlreadySent(ctx context.Context, noticeType, transactionID string, day time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(noticeType, transactionID, day)).Result()
	if err != nil {
		return false, fmt.Errorf("notice dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that a notice went out (expires after noticeTTL).
func (d *NoticeDedup) Mark(ctx context.Context, noticeType, transactionID string, day time.Time) error {
	return d.client.Set(ctx, d.key(noticeType, transactionID, day), "1", noticeTTL).Err()
}

func (d *NoticeDedup) key(noticeType, transactionID string, day time.Time) string {
	return fmt.Sprintf("notice:%s:%s:%s", noticeType, transactionID, day.UTC().Format("2006-01-02"))
}
