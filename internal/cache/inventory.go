package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix          = "user:%d"
	RatingSummaryKeyPrefix = "user:%d:rating"
)

const (
	UserTTL          = 5 * time.Minute
	RatingSummaryTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func RatingSummaryKey(userID uint) string {
	return fmt.Sprintf(RatingSummaryKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateRatingSummary drops the cached rating aggregate after new feedback.
func InvalidateRatingSummary(ctx context.Context, userID uint) {
	Invalidate(ctx, RatingSummaryKey(userID))
}
