package sink

import (
	"bytes"
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "numbers"

// RedisPusher is the part of a go-redis client the sink needs.
type RedisPusher interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	Close() error
}

// RedisSink appends each line to a Redis list. A single writer calls Append, so
// list order is arrival order.
type RedisSink struct {
	client  RedisPusher
	key     string
	timeout time.Duration
}

func NewRedisSink(client RedisPusher, key string) *RedisSink {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSink{client: client, key: key, timeout: 5 * time.Second}
}

func (s *RedisSink) Append(line []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	v := string(bytes.TrimSuffix(line, []byte{'\n'}))
	if err := s.client.RPush(ctx, s.key, v).Err(); err != nil {
		return fmt.Errorf("redis rpush key=%s: %w", s.key, err)
	}
	return nil
}

func (s *RedisSink) Close() error {
	return s.client.Close()
}

func (s *RedisSink) String() string {
	return "redis:" + s.key
}
