package main

import (
	"context"

	bookinghandler "bokning/internal/bookings/handler"
	bookingrepo "bokning/internal/bookings/repository"
	bookingservice "bokning/internal/bookings/service"
	bookingvalidator "bokning/internal/bookings/validator"
	"bokning/internal/health"
	"bokning/internal/notifications"
	"bokning/internal/rooms/cache"
	roomhandler "bokning/internal/rooms/handler"
	roomrepo "bokning/internal/rooms/repository"
	roomservice "bokning/internal/rooms/service"
	"bokning/pkg/app"
	"bokning/pkg/config"
	"bokning/pkg/identity"
	"bokning/pkg/kafka"
	"bokning/pkg/middleware"
)

const ServiceName = "bokning"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting booking service")

	ctx := context.Background()
	if err := bookingrepo.EnsureLockIndexes(ctx, cfg); err != nil {
		cfg.Log.Fatal("Failed to ensure lock indexes", "error", err)
	}

	hub := notifications.NewHub(cfg.EventBufferSize, cfg.Log)
	defer hub.Close()

	publisher := notifications.Fanout{hub}
	if cfg.KafkaEnabled() {
		producer, err := kafka.NewProducer(kafka.ProducerConfig{
			Brokers:      cfg.KafkaBrokers,
			Topic:        cfg.KafkaTopic,
			DLQTopic:     cfg.KafkaDLQTopic,
			MaxAttempts:  cfg.KafkaMaxAttempts,
			BatchTimeout: cfg.KafkaBatchTimeout,
			RequireAcks:  cfg.KafkaRequireAcks,
			Compression:  cfg.KafkaCompression,
		})
		if err != nil {
			cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
		}

		relay := notifications.NewKafkaRelay(producer, cfg.KafkaPublishTimeout, cfg.Log)
		defer relay.Close()
		publisher = append(publisher, relay)
		cfg.Log.Info("Kafka event relay enabled", "topic", cfg.KafkaTopic)
	}

	roomRepo := roomrepo.NewMongoRoomRepository(cfg)
	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)
	lockRepo := bookingrepo.NewRoomLockRepository(cfg)

	roomSvc := roomservice.NewRoomService(cfg.Log, roomRepo, bookingRepo, cache.New(cfg.RoomCacheTTL))
	bookingSvc := bookingservice.NewBookingService(
		cfg,
		bookingRepo,
		lockRepo,
		roomRepo,
		bookingvalidator.NewBookingValidator(cfg.BookingAllowPast),
		publisher,
	)

	provider := identity.NewHTTPProvider(cfg.IdentityProviderURL, cfg.IdentityProviderTimeout)
	auth := middleware.Authentication(provider, cfg.Log)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		health.NewHandler(cfg),
		notifications.NewSSEHandler(hub, cfg.Log),
		auth,
		bookinghandler.NewBookingHandler(bookingSvc, cfg.Log),
		roomhandler.NewRoomHandler(roomSvc, cfg.Log),
	)
	serverApp.Run()
}
