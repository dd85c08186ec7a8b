package repository

import (
	"context"

	"github.com/Alwanly/ttn-storage-pull/internal/server/gateway/dto"
)

// IRepository covers the gateway's side effects outside the storage API.
type IRepository interface {
	// PublishPullCompleted announces a finished pull. It is a no-op when
	// no publisher is configured.
	PublishPullCompleted(ctx context.Context, n dto.PullCompletedNotification) error
	// RedisHealthy reports whether the publisher answers a ping.
	RedisHealthy(ctx context.Context) bool
}
