// Package eventbus publishes domain events over Watermill, in process through
// a Go channel pub/sub or across processes through NATS.
package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/raynzz/eventdesk/pkg/observability/attr"
)

const (
	MetadataCorrelationID = "correlation_id"
	MetadataTopic         = "topic"
	MetadataOccurredAt    = "occurred_at"
)

// EventBus is a Watermill publisher and subscriber pair.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

// Publisher is what services depend on to announce domain events.
type Publisher interface {
	PublishJSON(ctx context.Context, topic string, payload any) error
}

// Bus implements EventBus and Publisher.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *slog.Logger
	backend    string
}

var _ EventBus = (*Bus)(nil)
var _ Publisher = (*Bus)(nil)

// NewInMemory returns a bus backed by Watermill's Go channel pub/sub. Messages
// reach only subscribers registered at publish time.
func NewInMemory(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	ps := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 256,
	}, watermill.NewSlogLogger(logger))

	return &Bus{publisher: ps, subscriber: ps, logger: logger, backend: "memory"}
}

// Backend names the transport ("memory" or "nats").
func (b *Bus) Backend() string { return b.backend }

// Publish implements message.Publisher.
func (b *Bus) Publish(topic string, msgs ...*message.Message) error {
	return b.publisher.Publish(topic, msgs...)
}

// Subscribe implements message.Subscriber.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.subscriber.Subscribe(ctx, topic)
}

// Close closes both sides. The Go channel backend shares one instance.
func (b *Bus) Close() error {
	err := b.publisher.Close()
	if any(b.subscriber) != any(b.publisher) {
		err = errors.Join(err, b.subscriber.Close())
	}
	return err
}

// PublishJSON encodes payload as JSON and publishes it on topic with the
// context's correlation id.
func (b *Bus) PublishJSON(ctx context.Context, topic string, payload any) error {
	msg, err := NewMessage(ctx, topic, payload)
	if err != nil {
		return err
	}
	if err := b.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	b.logger.DebugContext(ctx, "Message published",
		attr.ExtractCorrelationID(ctx),
		attr.String("topic", topic),
		attr.String("message_id", msg.UUID),
		attr.String("backend", b.backend),
	)
	return nil
}

// NewMessage builds a JSON message stamped with topic, time and correlation id.
func NewMessage(ctx context.Context, topic string, payload any) (*message.Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", topic, err)
	}
	ctx, correlationID := attr.EnsureCorrelationID(ctx)

	msg := message.NewMessage(uuid.NewString(), raw)
	msg.Metadata.Set(MetadataCorrelationID, correlationID)
	msg.Metadata.Set(MetadataTopic, topic)
	msg.Metadata.Set(MetadataOccurredAt, time.Now().UTC().Format(time.RFC3339Nano))
	msg.SetContext(ctx)
	return msg, nil
}

// Noop discards every event.
type Noop struct{}

// PublishJSON implements Publisher.
func (Noop) PublishJSON(context.Context, string, any) error { return nil }

// Notify publishes payload and logs a failure instead of returning it. The
// CMS write that triggered the event has already happened and stays valid.
func Notify(ctx context.Context, pub Publisher, logger *slog.Logger, topic string, payload any) {
	if pub == nil {
		return
	}
	if err := pub.PublishJSON(ctx, topic, payload); err != nil {
		logger.WarnContext(ctx, "Failed to publish event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}
