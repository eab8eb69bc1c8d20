// Package eventbus carries domain events between modules of the running
// process.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Handler processes one delivered message. A returned error nacks it.
type Handler func(ctx context.Context, msg *message.Message) error

// EventBus is an in-process watermill pub/sub. It satisfies
// message.Publisher so services can publish without knowing the transport.
type EventBus struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewEventBus creates an EventBus. Messages published to a topic with no
// subscriber are dropped.
func NewEventBus(logger *slog.Logger) *EventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventBus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, watermill.NewSlogLogger(logger)),
		logger: logger,
	}
}

// Publish implements message.Publisher.
func (eb *EventBus) Publish(topic string, msgs ...*message.Message) error {
	for _, msg := range msgs {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}
		eb.logger.Debug("Publishing message",
			slog.String("topic", topic),
			slog.String("message_id", msg.UUID),
		)
	}
	if err := eb.pubsub.Publish(topic, msgs...); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe delivers every message on topic to handler until ctx ends.
func (eb *EventBus) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := eb.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	eb.wg.Add(1)
	go func() {
		defer eb.wg.Done()
		for msg := range messages {
			if err := handler(msg.Context(), msg); err != nil {
				eb.logger.Error("Handler error", slog.String("topic", topic), slog.Any("error", err))
				msg.Nack()
				continue
			}
			msg.Ack()
		}
	}()
	return nil
}

// Close stops delivery and waits for running handlers.
func (eb *EventBus) Close() error {
	err := eb.pubsub.Close()
	eb.wg.Wait()
	return err
}

var _ message.Publisher = (*EventBus)(nil)
