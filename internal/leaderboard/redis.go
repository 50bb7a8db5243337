// Package leaderboard mirrors accepted high scores into a Redis sorted set
// for O(log n) rank lookups. The SQL users table stays authoritative; the
// mirror is rebuilt from it at startup.
package leaderboard

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mind-engage/mindengage-quiz/internal/quiz"
)

const DefaultKey = "quiz:leaderboard:score"

// Connect opens a client and pings it.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	c := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return c, nil
}

type RedisMirror struct {
	client *redis.Client
	key    string
}

func NewRedisMirror(client *redis.Client, key string) *RedisMirror {
	if key == "" {
		key = DefaultKey
	}
	return &RedisMirror{client: client, key: key}
}

// Publish records score for username unless the set already holds a
// higher one (ZADD GT), so out-of-order publishes cannot lower it.
func (m *RedisMirror) Publish(ctx context.Context, username string, score int) error {
	return m.client.ZAddGT(ctx, m.key, redis.Z{Score: float64(score), Member: username}).Err()
}

// Rank returns the 1-based rank of username by score; found is false when
// the user has no mirrored score.
func (m *RedisMirror) Rank(ctx context.Context, username string) (rank int64, found bool, err error) {
	r, err := m.client.ZRevRank(ctx, m.key, username).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return r + 1, true, nil
}

// Rebuild replaces the mirror with entries in one pipeline round-trip.
func (m *RedisMirror) Rebuild(ctx context.Context, entries []quiz.LeaderboardEntry) error {
	pipe := m.client.TxPipeline()
	pipe.Del(ctx, m.key)
	if len(entries) > 0 {
		zs := make([]redis.Z, len(entries))
		for i, e := range entries {
			zs[i] = redis.Z{Score: float64(e.Score), Member: e.Username}
		}
		pipe.ZAdd(ctx, m.key, zs...)
	}
	_, err := pipe.Exec(ctx)
	return err
}
