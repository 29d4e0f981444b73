package main

import (
	"context"
	"errors"

	"vowsuite/internal/notifications/handler"
	"vowsuite/internal/notifications/repository"
	"vowsuite/internal/notifications/service"
	"vowsuite/internal/notifications/worker"
	"vowsuite/pkg/app"
	"vowsuite/pkg/config"
	"vowsuite/pkg/kafka"
	kafka_config "vowsuite/pkg/kafka/config"
)

const ServiceName = "notifications"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Notifications service")

	notificationRepo := repository.NewMongoNotificationRepository(cfg)
	notificationService := service.NewNotificationService(cfg, notificationRepo)

	consumer := initConsumer(cfg, notificationService)
	defer func() {
		if err := consumer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka consumer", "error", err)
		}
	}()

	serverApp := app.NewApplication(cfg, handler.NewNotificationHandler(cfg, notificationService))
	serverApp.AddWorker(func(ctx context.Context) {
		if err := consumer.Start(ctx); err != nil &&
			!errors.Is(err, context.Canceled) &&
			!errors.Is(err, kafka.ErrConsumerClosed) {
			cfg.Log.Error("Kafka consumer stopped", "error", err)
		}
	})
	serverApp.Run()
}

func initConsumer(cfg *config.Config, svc service.NotificationService) *kafka.Consumer {
	kafkaCfg := kafka_config.Load()
	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.NotificationsTopic,
		cfg.NotificationsGroupID,
		cfg.NotificationsDLQTopic,
		worker.NewNotificationHandler(cfg, svc),
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	cfg.Log.Info("Notification consumer initialized",
		"topic", cfg.NotificationsTopic,
		"group_id", cfg.NotificationsGroupID,
	)
	return consumer
}
