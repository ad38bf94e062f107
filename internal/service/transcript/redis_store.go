package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zhouzirui/babysitter/backend/internal/model/transcript"
)

const redisKeyPrefix = "babysitter:transcript:"

// RedisStore keeps each transcript in a Redis list that expires ttl after the
// last append, so abandoned sessions clean themselves up.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Append pushes the turn and refreshes the expiry.
func (s *RedisStore) Append(ctx context.Context, turn transcript.Turn) error {
	turn, err := prepare(turn)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("encode turn: %w", err)
	}

	key := redisKey(turn.SessionID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append turn: %w", err)
	}
	return nil
}

// Load reads every turn of the session in order.
func (s *RedisStore) Load(ctx context.Context, sessionID string) ([]transcript.Turn, error) {
	raw, err := s.client.LRange(ctx, redisKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrSessionNotFound
	}

	turns := make([]transcript.Turn, 0, len(raw))
	for _, item := range raw {
		var turn transcript.Turn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			return nil, fmt.Errorf("decode turn: %w", err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// Delete removes the session list.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, redisKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete transcript: %w", err)
	}
	return nil
}

func redisKey(sessionID string) string {
	return redisKeyPrefix + sessionID
}
