package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	presenceKeyFmt = "presence:%d"
	// PresenceTTL is how long a user counts as online after their last request.
	PresenceTTL = 30 * time.Minute
)

// Presence records which users were recently active. It is bookkeeping only
// and never consulted when authorizing a request. A nil client disables it.
type Presence struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPresence(rdb *redis.Client) *Presence {
	return &Presence{rdb: rdb, ttl: PresenceTTL}
}

func (p *Presence) enabled() bool {
	return p != nil && p.rdb != nil
}

func (p *Presence) Touch(ctx context.Context, userID uint) error {
	if !p.enabled() {
		return nil
	}
	key := fmt.Sprintf(presenceKeyFmt, userID)
	return p.rdb.Set(ctx, key, time.Now().UTC().Unix(), p.ttl).Err()
}

func (p *Presence) Clear(ctx context.Context, userID uint) error {
	if !p.enabled() {
		return nil
	}
	key := fmt.Sprintf(presenceKeyFmt, userID)
	return p.rdb.Del(ctx, key).Err()
}

// OnlineCount returns the number of unique users seen within the TTL.
func (p *Presence) OnlineCount(ctx context.Context) (int, error) {
	if !p.enabled() {
		return 0, nil
	}
	var cursor uint64
	userIDs := make(map[string]struct{})
	for {
		keys, next, err := p.rdb.Scan(ctx, cursor, "presence:*", 100).Result()
		if err != nil {
			return 0, err
		}
		for _, key := range keys {
			parts := strings.Split(key, ":")
			if len(parts) == 2 && parts[0] == "presence" && parts[1] != "" {
				userIDs[parts[1]] = struct{}{}
			}
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	return len(userIDs), nil
}
