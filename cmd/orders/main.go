package main

import (
	"context"

	"vowsuite/internal/notifications/sink"
	"vowsuite/internal/orders/handler"
	"vowsuite/internal/orders/repository"
	"vowsuite/internal/orders/service"
	"vowsuite/pkg/app"
	"vowsuite/pkg/config"
	"vowsuite/pkg/kafka"
	kafka_config "vowsuite/pkg/kafka/config"
)

const ServiceName = "orders"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Orders service")

	orderService, producer := initServices(cfg)
	defer func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}()

	serverApp := app.NewApplication(cfg, handler.NewOrderHandler(cfg, orderService))
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.OrderService, *kafka.Producer) {
	kafkaCfg := kafka_config.Load()
	producer, err := kafka.NewProducer(kafkaCfg, cfg.NotificationsTopic, cfg.NotificationsDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka.PublishLogging(cfg.Log))

	orderRepo := repository.NewMongoOrderRepository(cfg)
	lockRepo := repository.NewMongoVenueLockRepository(cfg)
	notificationSink := sink.NewKafkaSink(producer)

	orderService := service.NewOrderService(cfg, orderRepo, lockRepo, notificationSink)

	orderCount, err := orderRepo.Count(context.Background())
	if err != nil {
		cfg.Log.Warn("Failed to count existing orders", "error", err)
	}

	cfg.Log.Info("Order service initialized",
		"database", cfg.MongoDatabaseName,
		"orders", orderCount,
		"venue_lock_enabled", cfg.VenueLockEnabled,
		"notifications_topic", cfg.NotificationsTopic,
	)
	return orderService, producer
}
