package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Alwanly/ttn-storage-pull/internal/server/gateway/dto"
	"github.com/Alwanly/ttn-storage-pull/pkg/pubsub"
)

const DefaultChannel = "ttn.storage.pull.completed"

type Repository struct {
	pub     pubsub.PubSub
	channel string
}

// NewRepository wires the notifier. pub may be nil; channel defaults to
// DefaultChannel.
func NewRepository(pub pubsub.PubSub, channel string) *Repository {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Repository{pub: pub, channel: channel}
}

func (r *Repository) PublishPullCompleted(ctx context.Context, n dto.PullCompletedNotification) error {
	if r.pub == nil {
		return nil
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	return r.pub.Publish(ctx, r.channel, string(payload))
}

func (r *Repository) RedisHealthy(ctx context.Context) bool {
	if r.pub == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.pub.Ping(ctx) == nil
}
