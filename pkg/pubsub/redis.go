package pubsub

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Alwanly/ttn-storage-pull/pkg/logger"
	"github.com/Alwanly/ttn-storage-pull/pkg/retry"
)

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type redisPubSub struct {
	client *redis.Client
	logger *logger.CanonicalLogger

	mu   sync.Mutex
	subs []*redis.PubSub
}

// NewRedisPubSub connects to redis and verifies the connection with a ping.
func NewRedisPubSub(ctx context.Context, cfg RedisConfig, log *logger.CanonicalLogger) (PubSub, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr(), err)
	}

	log.Info("redis client initialized", logger.String("addr", cfg.Addr()))

	return &redisPubSub{client: client, logger: log}, nil
}

// ConnectWithRetry keeps calling NewRedisPubSub with exponential backoff
// until it succeeds, retries run out or ctx is done.
func ConnectWithRetry(ctx context.Context, cfg RedisConfig, backoff retry.Config, log *logger.CanonicalLogger) (PubSub, error) {
	var ps PubSub
	attempt := 0
	err := retry.WithExponentialBackoff(ctx, backoff, func(ctx context.Context) error {
		attempt++
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		var err error
		ps, err = NewRedisPubSub(pingCtx, cfg, log)
		if err != nil {
			log.Warn("redis connection attempt failed",
				logger.String("addr", cfg.Addr()),
				logger.Int("attempt", attempt),
				logger.Err(err),
			)
			// A server reply (bad password, unknown db) will not change on retry.
			var replyErr redis.Error
			if errors.As(err, &replyErr) {
				return retry.Permanent(err)
			}
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return ps, nil
}

// Publish publishes a message to a Redis channel
func (r *redisPubSub) Publish(ctx context.Context, channel string, message string) error {
	if err := r.client.Publish(ctx, channel, message).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", channel, err)
	}
	return nil
}

// Ping checks if Redis connection is healthy
func (r *redisPubSub) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Subscribe subscribes to Redis channels
func (r *redisPubSub) Subscribe(ctx context.Context, channels ...string) (<-chan Message, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("no channels to subscribe to")
	}

	sub := r.client.Subscribe(ctx, channels...)
	// Wait for the subscription confirmation so no message published right
	// after Subscribe returns is missed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	r.mu.Lock()
	r.subs = append(r.subs, sub)
	r.mu.Unlock()

	out := make(chan Message, 16)
	go r.listen(ctx, sub, out)

	r.logger.Info("subscribed to redis channels", logger.Any("channels", channels))
	return out, nil
}

// Close closes subscriptions and the Redis connection
func (r *redisPubSub) Close() error {
	r.mu.Lock()
	subs := r.subs
	r.subs = nil
	r.mu.Unlock()

	for _, sub := range subs {
		_ = sub.Close()
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}
	return nil
}

// listen forwards messages from sub until ctx is done or sub is closed.
func (r *redisPubSub) listen(ctx context.Context, sub *redis.PubSub, out chan<- Message) {
	defer close(out)
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			_ = sub.Close()
			return
		case m, ok := <-ch:
			if !ok {
				r.logger.Debug("redis pubsub channel closed")
				return
			}
			select {
			case out <- Message{Channel: m.Channel, Payload: m.Payload}:
			case <-ctx.Done():
				_ = sub.Close()
				return
			}
		}
	}
}
