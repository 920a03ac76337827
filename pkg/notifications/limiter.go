package notifications

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var (
	storyCooldown    = 10 * time.Minute
	followerCooldown = 15 * time.Minute
)

const placeholder = "placeholder"

// Limiter keeps a creator's story burst from turning into a push storm, one
// push per creator per cooldown window.
type Limiter struct {
	rdb *redis.Client
}

func NewLimiter(rdb *redis.Client) *Limiter {
	return &Limiter{
		rdb: rdb,
	}
}

func (l *Limiter) ShouldSendNotification(target Target, notification *PushNotification) bool {
	key := limiterKey(target, notification)
	if key == "" {
		return false
	}

	return !l.isLimited(key)
}

func (l *Limiter) SentNotification(target Target, notification *PushNotification) {
	switch notification.Category {
	case NEW_STORY:
		l.limit(limiterKey(target, notification), storyCooldown)
	case NEW_FOLLOWER:
		l.limit(limiterKey(target, notification), followerCooldown)
	}
}

func (l *Limiter) isLimited(key string) bool {
	res, _ := l.rdb.Get(l.rdb.Context(), key).Result()
	return res == placeholder
}

func (l *Limiter) limit(key string, duration time.Duration) {
	l.rdb.Set(l.rdb.Context(), key, placeholder, duration)
}

func limiterKey(target Target, notification *PushNotification) string {
	switch notification.Category {
	case NEW_STORY:
		return fmt.Sprintf("notifications_limit_%d_story_%v", target.ID, notification.Arguments["creator"])
	case NEW_FOLLOWER:
		return fmt.Sprintf("notifications_limit_%d_follower_%v", target.ID, notification.Arguments["id"])
	}

	return ""
}
