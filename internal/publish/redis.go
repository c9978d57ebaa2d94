package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClientInterface defines the Redis operations used by the sink.
type RedisClientInterface interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Close() error
}

// RedisSink keeps the latest board under one key. The TTL lets the key
// expire when refreshes stop.
type RedisSink struct {
	client RedisClientInterface
	key    string
	ttl    time.Duration
}

func NewRedisSink(addr, key string, ttl time.Duration) (*RedisSink, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedisSinkWithClient(client, key, ttl), nil
}

// NewRedisSinkWithClient wraps an existing client (useful for testing).
func NewRedisSinkWithClient(client RedisClientInterface, key string, ttl time.Duration) *RedisSink {
	return &RedisSink{client: client, key: key, ttl: ttl}
}

func (s *RedisSink) Name() string { return "redis:" + s.key }

func (s *RedisSink) Publish(ctx context.Context, board Board) error {
	data, err := board.Encode()
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store board: %w", err)
	}
	return nil
}

// Latest reads back the stored board; ok is false when the key is absent.
func (s *RedisSink) Latest(ctx context.Context) (Board, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Board{}, false, nil
	}
	if err != nil {
		return Board{}, false, fmt.Errorf("failed to get board: %w", err)
	}

	var b Board
	if err := json.Unmarshal(data, &b); err != nil {
		return Board{}, false, fmt.Errorf("failed to unmarshal board: %w", err)
	}
	return b, true, nil
}

func (s *RedisSink) Close() error {
	return s.client.Close()
}
