package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/transfa/library-service/internal/api"
	"github.com/transfa/library-service/internal/app"
	"github.com/transfa/library-service/internal/config"
	"github.com/transfa/library-service/internal/store"
	"github.com/transfa/library-service/pkg/rabbitmq"
)

// components is everything serve needs after wiring.
type components struct {
	repo     *store.MemoryRepository
	service  *app.Service
	router   *chi.Mux
	producer *rabbitmq.EventProducer
}

func newLogger(cfg *config.Config) *slog.Logger {
	level, _ := config.ParseLogLevel(cfg.LogLevel)
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// wire builds the application layers. A configured RabbitMQ URL that cannot be
// reached is fatal; no URL means events are not published.
func wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*components, error) {
	repo := store.NewMemoryRepository()
	if cfg.SeedData {
		if err := repo.Seed(ctx, store.DefaultBooks(), store.DefaultUsers()); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
		logger.Info("catalog seeded")
	}

	opts := []app.Option{app.WithLogger(logger)}

	var producer *rabbitmq.EventProducer
	if cfg.RabbitMQURL != "" {
		p, err := rabbitmq.NewEventProducer(cfg.RabbitMQURL, cfg.EventsExchange, logger)
		if err != nil {
			return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
		}
		producer = p
		opts = append(opts, app.WithPublisher(producer, cfg.EventsExchange))
		logger.Info("RabbitMQ producer connected", "exchange", cfg.EventsExchange)
	}

	service := app.NewService(repo, opts...)
	handler := api.NewHandler(service, logger)
	router := api.NewRouter(handler, logger, cfg.AllowedOrigins())

	return &components{
		repo:     repo,
		service:  service,
		router:   router,
		producer: producer,
	}, nil
}
