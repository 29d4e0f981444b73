package worker

import (
	"context"
	"fmt"

	"vowsuite/internal/notifications/service"
	"vowsuite/pkg/config"
	"vowsuite/pkg/kafka"
	"vowsuite/pkg/model"
)

// NewNotificationHandler returns the consumer callback that persists
// incoming resolution notifications. A decode failure is permanent, so it
// is logged and swallowed rather than retried into the DLQ forever;
// storage failures return the error so the consumer's retry/DLQ path
// applies.
func NewNotificationHandler(cfg *config.Config, svc service.NotificationService) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var notification model.Notification
		if err := msg.DecodeValue(&notification); err != nil {
			cfg.Log.Error("Dropping undecodable notification message",
				"event_id", msg.GetEventID(),
				"topic", msg.Topic,
				"error", err,
			)
			return nil
		}

		// The sink's payload carries no id or date; the repository
		// assigns both on insert.
		notification.ID = ""

		if err := svc.Record(ctx, &notification); err != nil {
			return fmt.Errorf("failed to record notification %s: %w", msg.GetEventID(), err)
		}

		cfg.Log.Info("Notification consumed",
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"to", notification.To,
		)
		return nil
	}
}
