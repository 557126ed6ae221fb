// Package pubsub carries domain events between the HTTP handlers and the
// background workers that react to them.
package pubsub

import (
	"context"
	"time"
)

// Message is one event on the bus.
type Message struct {
	// ID is assigned by the bus when left empty.
	ID    string
	Topic string
	// Subject is the record the event is about, e.g. "user:abc".
	Subject string
	Payload []byte
	// RequestID ties the event to the HTTP request that raised it.
	RequestID   string
	PublishedAt time.Time
}

// Handler processes one delivered message.
type Handler func(ctx context.Context, msg Message) error

// Publisher sends messages to the bus.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber receives messages from the bus.
type Subscriber interface {
	// Subscribe returns once the subscription is active; messages are then
	// handled in the background until ctx is canceled or the bus closes.
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}

// Bus is both ends of the in-process event stream.
type Bus interface {
	Publisher
	Subscriber
}
