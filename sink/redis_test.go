package sink

import (
	"context"
	"errors"
	"testing"

	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	lists  map[string][]string
	err    error
	closed bool
}

func (f *fakeRedis) RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, append([]interface{}{"rpush", key}, values...)...)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	for _, v := range values {
		f.lists[key] = append(f.lists[key], v.(string))
	}
	cmd.SetVal(int64(len(f.lists[key])))
	return cmd
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedisSink(t *testing.T) {
	client := &fakeRedis{lists: map[string][]string{}}
	s := NewRedisSink(client, "")

	require.NoError(t, s.Append([]byte("1\n")))
	require.NoError(t, s.Append([]byte("999999999\n")))
	require.NoError(t, s.Close())

	assert.Equal(t, []string{"1", "999999999"}, client.lists[DefaultRedisKey])
	assert.True(t, client.closed)
}

func TestRedisSinkError(t *testing.T) {
	client := &fakeRedis{lists: map[string][]string{}, err: errors.New("connection refused")}
	s := NewRedisSink(client, "seen")

	err := s.Append([]byte("1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key=seen")
}
