package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eduPulse/domain"

	"github.com/redis/go-redis/v9"
)

// HistoryRepository keeps the recent conversation tail per user in a
// Redis list, trimmed to a fixed length with a rolling TTL.
type HistoryRepository struct {
	client *redis.Client
	limit  int64
	ttl    time.Duration
}

func NewHistoryRepository(client *redis.Client, limit int, ttl time.Duration) *HistoryRepository {
	if limit <= 0 {
		limit = 50
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &HistoryRepository{
		client: client,
		limit:  int64(limit),
		ttl:    ttl,
	}
}

func historyKey(userID uint) string {
	return fmt.Sprintf("chat:history:%d", userID)
}

// Recent returns up to limit messages, oldest first.
func (r *HistoryRepository) Recent(ctx context.Context, userID uint, limit int) ([]domain.Message, error) {
	key := historyKey(userID)

	n := int64(limit)
	if n <= 0 || n > r.limit {
		n = r.limit
	}

	raw, err := r.client.LRange(ctx, key, -n, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []domain.Message{}, nil
		}
		return nil, fmt.Errorf("failed to read history from Redis: %w", err)
	}

	out := make([]domain.Message, 0, len(raw))
	for _, item := range raw {
		var msg domain.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			// skip rows written by older formats
			continue
		}
		out = append(out, msg)
	}

	return out, nil
}

// Append pushes one message and re-trims the list.
func (r *HistoryRepository) Append(ctx context.Context, userID uint, msg domain.Message) error {
	key := historyKey(userID)

	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, raw)
	pipe.LTrim(ctx, key, -r.limit, -1)
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append history in Redis: %w", err)
	}

	return nil
}

// Clear drops a user's cached conversation.
func (r *HistoryRepository) Clear(ctx context.Context, userID uint) error {
	if err := r.client.Del(ctx, historyKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear history in Redis: %w", err)
	}

	return nil
}
