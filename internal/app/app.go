// Package app wires configuration, storage, messaging, and the HTTP server
// into a runnable service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/elbatin/JustzMatbaa/internal/config"
	"github.com/elbatin/JustzMatbaa/internal/event"
	handlerhttp "github.com/elbatin/JustzMatbaa/internal/handler/http"
	redisrepo "github.com/elbatin/JustzMatbaa/internal/repository/redis"
	"github.com/elbatin/JustzMatbaa/internal/seed"
	"github.com/elbatin/JustzMatbaa/internal/service"
	"github.com/elbatin/JustzMatbaa/pkg/health"
	"github.com/elbatin/JustzMatbaa/pkg/kafka"
	"github.com/elbatin/JustzMatbaa/pkg/logger"
	"github.com/elbatin/JustzMatbaa/pkg/tracing"
)

// App is the assembled service.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	redisClient *goredis.Client
	publisher   event.Publisher
	server      *http.Server

	shutdownTracing func(context.Context) error
}

// New builds the application from configuration: connects to Redis, seeds
// the catalog on first boot, sets up the optional Kafka publisher and
// tracing, and assembles the HTTP router.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.New(cfg.ServiceName, cfg.LogLevel)
	slog.SetDefault(log)

	shutdownTracing, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:  cfg.ServiceName,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SampleRate:   cfg.TraceSampleRate,
		Enabled:      cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	redisClient, err := redisrepo.NewClient(ctx, redisrepo.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, err
	}

	var publisher event.Publisher = event.NoopPublisher{}
	var producer *kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafka.NewProducer(kafka.DefaultProducerConfig(cfg.KafkaBrokers), log)
		publisher = event.NewKafkaPublisher(producer)
	} else {
		log.Info("no kafka brokers configured, event publishing disabled")
	}

	cartTTL := time.Duration(cfg.CartTTLHours) * time.Hour

	catalogSvc := service.NewCatalogService(redisrepo.NewProductRepository(redisClient), publisher, log)
	cartSvc := service.NewCartService(redisrepo.NewCartRepository(redisClient, cartTTL), catalogSvc, publisher, log)
	orderSvc := service.NewOrderService(redisrepo.NewOrderRepository(redisClient), publisher, log)
	checkoutSvc := service.NewCheckoutService(cartSvc, orderSvc,
		time.Duration(cfg.PaymentDelayMS)*time.Millisecond, log)

	seedProducts, err := seed.Products()
	if err != nil {
		return nil, err
	}
	if err := catalogSvc.EnsureSeeded(ctx, seedProducts); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}

	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	if producer != nil {
		healthHandler.Register("kafka", producer.Ping)
	}

	if cfg.AdminAPIToken == "" {
		log.Warn("ADMIN_API_TOKEN is empty, admin API disabled")
	}

	router := handlerhttp.NewRouter(handlerhttp.RouterConfig{
		ServiceName:        cfg.ServiceName,
		Environment:        cfg.Environment,
		Logger:             log,
		Cart:               handlerhttp.NewCartHandler(cartSvc, log),
		Product:            handlerhttp.NewProductHandler(catalogSvc, log),
		Pricing:            handlerhttp.NewPricingHandler(catalogSvc, log),
		Order:              handlerhttp.NewOrderHandler(checkoutSvc, orderSvc, log),
		Health:             healthHandler,
		AdminToken:         cfg.AdminAPIToken,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		TracingEnabled:     cfg.TracingEnabled,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          log,
		redisClient:     redisClient,
		publisher:       publisher,
		server:          server,
		shutdownTracing: shutdownTracing,
	}, nil
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the server fails, then shuts everything down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening",
			slog.String("addr", a.server.Addr),
			slog.String("environment", a.cfg.Environment),
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(a.cfg.ShutdownTimeoutSecs)*time.Second)
	defer cancel()

	var errs []error
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if err := a.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close publisher: %w", err))
	}
	if err := a.redisClient.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close redis: %w", err))
	}
	if err := a.shutdownTracing(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown tracing: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	a.logger.Info("shutdown complete")
	return nil
}
