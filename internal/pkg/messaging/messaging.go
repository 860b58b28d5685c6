package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrUnsupported reports an operation the selected broker cannot perform,
// such as deferred delivery.
var ErrUnsupported = errors.New("pkgmessage: unsupported operation")

// Messaging is a broker-agnostic client for publishing and consuming.
// Implementations exist for NATS, NSQ, Kafka, and Google Pub/Sub.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

// Publisher sends messages to a destination. Depending on the broker the
// destination is a subject, topic, or queue name.
type Publisher interface {
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// Consumer delivers messages from a source to a handler until the context
// is canceled.
type Consumer interface {
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes one received message. With auto-ack enabled the driver
// acks on nil and nacks on error; without it the handler must respond via
// the message itself.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage is a broker-agnostic payload to publish.
type OutgoingMessage struct {
	// Body is the payload.
	Body []byte

	// Key partitions messages on brokers that shard by key (Kafka).
	Key []byte

	// Headers carry binary metadata and allow duplicate keys.
	Headers []Header

	// Attributes carry string metadata for brokers that model it natively
	// (Pub/Sub).
	Attributes map[string]string

	// OrderingKey orders messages on Pub/Sub.
	OrderingKey string

	// Delay defers delivery where the broker supports it (NSQ). Brokers
	// without the feature fail the publish with ErrUnsupported.
	Delay time.Duration
}

// Header is one message header.
type Header struct {
	Key   string
	Value []byte
}

// PublishResult reports what the broker accepted.
type PublishResult struct {
	// MessageID is the broker-assigned ID when the broker returns one.
	MessageID string
	// Topic is the destination the message was published to.
	Topic string
	// Timestamp is when the publish was accepted.
	Timestamp time.Time
}

// Message is a received message.
type Message interface {
	// Body returns the payload.
	Body() []byte
	// Key returns the partition key when the broker has one.
	Key() []byte
	// Headers returns message headers.
	Headers() []Header
	// Attributes returns string metadata, collapsing duplicate headers.
	Attributes() map[string]string

	// ID returns the broker message ID when available.
	ID() string
	// Topic returns the topic for topic-based brokers.
	Topic() string
	// Subject returns the subject for subject-based brokers.
	Subject() string
	// Timestamp returns the broker or receipt timestamp.
	Timestamp() time.Time

	// Ack marks the message processed. Acking twice is a no-op.
	Ack(ctx context.Context) error
}

// Nackable is implemented by messages that can request redelivery.
type Nackable interface {
	Nack(ctx context.Context) error
}
