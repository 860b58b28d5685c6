package messaging

import (
	"context"
	"fmt"
	"time"

	nsq "github.com/nsqio/go-nsq"
	"go.uber.org/atomic"
)

// nsqMessage adapts *nsq.Message to Message. NSQ frames carry no key,
// headers, or attributes, so those accessors return zero values.
type nsqMessage struct {
	msg        *nsq.Message
	topic      string
	receivedAt time.Time
	responded  atomic.Bool
}

func newNSQMessage(topic string, msg *nsq.Message) *nsqMessage {
	return &nsqMessage{
		msg:        msg,
		topic:      topic,
		receivedAt: time.Now(),
	}
}

func (m *nsqMessage) hasResponded() bool {
	return m.responded.Load()
}

func (m *nsqMessage) Body() []byte {
	return m.msg.Body
}

func (m *nsqMessage) Key() []byte {
	return nil
}

func (m *nsqMessage) Headers() []Header {
	return nil
}

func (m *nsqMessage) Attributes() map[string]string {
	return nil
}

func (m *nsqMessage) ID() string {
	return fmt.Sprintf("%x", m.msg.ID)
}

func (m *nsqMessage) Topic() string {
	return m.topic
}

func (m *nsqMessage) Subject() string {
	return ""
}

func (m *nsqMessage) Timestamp() time.Time {
	if m.msg.Timestamp > 0 {
		return time.Unix(0, m.msg.Timestamp)
	}
	return m.receivedAt
}

// Ack finishes the message. Only the first Ack or Nack wins.
func (m *nsqMessage) Ack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.responded.Swap(true) {
		return nil
	}

	m.msg.Finish()
	return nil
}

// Nack requeues the message with nsqd's configured requeue delay.
func (m *nsqMessage) Nack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.responded.Swap(true) {
		return nil
	}

	m.msg.Requeue(-1)
	return nil
}
