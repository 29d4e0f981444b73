package sink

import (
	"context"
	"fmt"

	"vowsuite/pkg/kafka"
	"vowsuite/pkg/model"
)

const (
	EventTypeOrderResolved = "order.resolved"

	sourceOrdersService = "orders-service"
)

type publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// KafkaSink publishes resolution notifications for the notifications
// service to consume and persist. Messages are keyed by recipient so one
// customer's notifications stay ordered.
type KafkaSink struct {
	producer publisher
}

func NewKafkaSink(producer *kafka.Producer) *KafkaSink {
	return &KafkaSink{producer: producer}
}

func (s *KafkaSink) Send(ctx context.Context, notification *model.Notification) error {
	msg := kafka.NewMessage().
		WithKey(notification.To).
		WithValue(notification).
		WithEventType(EventTypeOrderResolved).
		WithSource(sourceOrdersService).
		Build()

	if err := s.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}
