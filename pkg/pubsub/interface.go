package pubsub

import "context"

// Message represents a pub/sub message
type Message struct {
	Channel string
	Payload string
}

// Publisher defines the interface for publishing messages
type Publisher interface {
	// Publish publishes a message to a channel
	Publish(ctx context.Context, channel string, message string) error
	Close() error
}

// Subscriber defines the interface for subscribing to messages
type Subscriber interface {
	// Subscribe subscribes to one or more channels and returns a message channel.
	// The channel is closed when ctx is done or the subscriber is closed.
	Subscribe(ctx context.Context, channels ...string) (<-chan Message, error)
	Close() error
}

// PubSub combines Publisher and Subscriber with a liveness probe.
type PubSub interface {
	Publisher
	Subscriber
	Ping(ctx context.Context) error
}
