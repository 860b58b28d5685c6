package messaging

import (
	"context"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"go.uber.org/atomic"
)

// pubSubMessage adapts *pubsub.Message to Message. Attributes are native on
// Pub/Sub, so Attributes returns them as-is and Headers stays nil.
type pubSubMessage struct {
	msg          *pubsub.Message
	topic        string
	subscription string
	responded    atomic.Bool
}

func newPubSubMessage(topic, subscription string, msg *pubsub.Message) *pubSubMessage {
	return &pubSubMessage{
		msg:          msg,
		topic:        topic,
		subscription: subscription,
	}
}

func (m *pubSubMessage) hasResponded() bool {
	return m.responded.Load()
}

func (m *pubSubMessage) Body() []byte {
	return m.msg.Data
}

func (m *pubSubMessage) Key() []byte {
	return nil
}

func (m *pubSubMessage) Headers() []Header {
	return nil
}

func (m *pubSubMessage) Attributes() map[string]string {
	return m.msg.Attributes
}

func (m *pubSubMessage) ID() string {
	return m.msg.ID
}

func (m *pubSubMessage) Topic() string {
	return m.topic
}

func (m *pubSubMessage) Subject() string {
	return ""
}

func (m *pubSubMessage) Timestamp() time.Time {
	return m.msg.PublishTime
}

// Ack acknowledges the message. Only the first Ack or Nack wins.
func (m *pubSubMessage) Ack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.responded.Swap(true) {
		return nil
	}

	m.msg.Ack()
	return nil
}

// Nack signals redelivery.
func (m *pubSubMessage) Nack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.responded.Swap(true) {
		return nil
	}

	m.msg.Nack()
	return nil
}
