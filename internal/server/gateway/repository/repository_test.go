package repository

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alwanly/ttn-storage-pull/internal/server/gateway/dto"
	"github.com/Alwanly/ttn-storage-pull/pkg/logger"
	"github.com/Alwanly/ttn-storage-pull/pkg/pubsub"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, pubsub.PubSub) {
	t.Helper()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	ps, err := pubsub.NewRedisPubSub(context.Background(), pubsub.RedisConfig{Host: mr.Host(), Port: port}, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = ps.Close() })
	return mr, ps
}

func TestPublishPullCompleted(t *testing.T) {
	_, ps := newRedis(t)
	repo := NewRepository(ps, "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	msgs, err := ps.Subscribe(ctx, DefaultChannel)
	require.NoError(t, err)

	completed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.PublishPullCompleted(ctx, dto.PullCompletedNotification{
		PullID:      "pull-1",
		AppName:     "weather",
		APIVersion:  "v3",
		RecordCount: 2,
		Bytes:       512,
		CompletedAt: completed,
	}))

	select {
	case m := <-msgs:
		var got dto.PullCompletedNotification
		require.NoError(t, json.Unmarshal([]byte(m.Payload), &got))
		assert.Equal(t, "pull-1", got.PullID)
		assert.Equal(t, "weather", got.AppName)
		assert.Equal(t, 2, got.RecordCount)
		assert.True(t, completed.Equal(got.CompletedAt))
		assert.NotContains(t, m.Payload, "access_key")
	case <-time.After(2 * time.Second):
		t.Fatal("no notification received")
	}
}

func TestRedisHealthy(t *testing.T) {
	mr, ps := newRedis(t)
	repo := NewRepository(ps, "custom")

	assert.True(t, repo.RedisHealthy(context.Background()))
	mr.Close()
	assert.False(t, repo.RedisHealthy(context.Background()))
}

func TestNilPublisher(t *testing.T) {
	repo := NewRepository(nil, "")
	assert.NoError(t, repo.PublishPullCompleted(context.Background(), dto.PullCompletedNotification{PullID: "x"}))
	assert.False(t, repo.RedisHealthy(context.Background()))
}
