package sink

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	redis "github.com/redis/go-redis/v9"
)

// DefaultTarget is where numbers go when no target is configured.
const DefaultTarget = "./numbers.log"

// Sink matches numbers.Sink.
type Sink interface {
	Append(line []byte) error
	Close() error
}

// Open builds a sink from a target string:
//   - "" or a file path: FileSink, truncated
//   - redis://[:password@]host:port/db?key=name: RedisSink, list cleared
func Open(ctx context.Context, target string) (Sink, error) {
	if target == "" {
		target = DefaultTarget
	}
	if !strings.Contains(target, "://") {
		return NewFileSink(target)
	}

	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parse sink target: %w", err)
	}

	switch u.Scheme {
	case "file":
		return NewFileSink(u.Host + u.Path)
	case "redis", "rediss":
		key := u.Query().Get("key")
		q := u.Query()
		q.Del("key")
		u.RawQuery = q.Encode()

		opt, err := redis.ParseURL(u.String())
		if err != nil {
			return nil, fmt.Errorf("parse redis target: %w", err)
		}
		client := redis.NewClient(opt)

		s := NewRedisSink(client, key)
		// Same contract as the file sink: the log starts empty
		if err := client.Del(ctx, s.key).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("reset redis key=%s: %w", s.key, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown sink scheme: %s", u.Scheme)
	}
}
