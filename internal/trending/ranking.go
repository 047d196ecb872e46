// Package trending maintains the engagement-driven lesson ranking in Redis.
// The ranking is fed by the Kafka engagement consumer and read by the public
// trending endpoint; it is derived data and can be rebuilt at any time.
package trending

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RankingKey is the sorted set holding lesson ids scored by engagement.
const RankingKey = "lessons:trending:ranking"

// Engagement kinds as carried in events
const (
	KindLike     = "like"
	KindFavorite = "favorite"
)

// Weight maps an engagement change to a score delta. Favorites weigh more
// than likes; removing engagement takes the same weight back off.
func Weight(kind string, active bool) float64 {
	var w float64
	switch kind {
	case KindLike:
		w = 1
	case KindFavorite:
		w = 2
	default:
		return 0
	}
	if !active {
		return -w
	}
	return w
}

// Ranker wraps the Redis sorted set operations.
type Ranker struct {
	client *redis.Client
}

func NewRanker(client *redis.Client) *Ranker {
	return &Ranker{client: client}
}

// Bump adjusts a lesson's score by delta.
func (r *Ranker) Bump(ctx context.Context, lessonID uint, delta float64) error {
	if delta == 0 {
		return nil
	}
	member := strconv.FormatUint(uint64(lessonID), 10)
	if err := r.client.ZIncrBy(ctx, RankingKey, delta, member).Err(); err != nil {
		return fmt.Errorf("failed to bump trending score for lesson %d: %w", lessonID, err)
	}
	return nil
}

// Top returns the highest scored lesson ids, best first.
func (r *Ranker) Top(ctx context.Context, n int) ([]uint, error) {
	if n <= 0 {
		n = 10
	}
	members, err := r.client.ZRevRange(ctx, RankingKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read trending ranking: %w", err)
	}
	ids := make([]uint, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
