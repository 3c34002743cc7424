package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/adapters/in/http"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/adapters/out/bookingstore"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/adapters/out/cache"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/adapters/out/logger"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/adapters/out/notifier"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/adapters/out/storage"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/config"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/catalog"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/domain"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/ports/out"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/services/booking_service"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/observability/metrics"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

func main() {
	// .env is optional outside local development
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logger in the business timezone
	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone, logger.WithMinLevel(cfg.Log.Level))
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := mainLogger.WithModule("Main")

	logger.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"storageDriver":   cfg.Storage.Driver,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	// Gin mode depends on the environment
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(registry)

	slotCatalog, err := catalog.New(
		cfg.Catalog.OpenAt,
		cfg.Catalog.CloseAt,
		cfg.Catalog.Step,
		cfg.Catalog.ClosedWeekdays,
		cfg.App.Location,
	)
	if err != nil {
		logger.Error("app.catalog.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// storage is opened last so no exit path skips its Close
	bookingNotifier, stopNotifier, err := newNotifier(cfg, slotCatalog, mainLogger)
	if err != nil {
		logger.Error("app.rabbitmq.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() {
		if err := stopNotifier(); err != nil {
			logger.Error("app.rabbitmq.stop_failed", out.LogFields{
				"error": err.Error(),
			})
		}
	}()

	blob, err := newBlobStore(cfg, mainLogger)
	if err != nil {
		logger.Error("app.storage.init_failed", out.LogFields{
			"driver": cfg.Storage.Driver,
			"error":  err.Error(),
		})
		_ = stopNotifier()
		os.Exit(1)
	}
	defer func() {
		if err := blob.Close(); err != nil {
			logger.Error("app.storage.close_failed", out.LogFields{
				"error": err.Error(),
			})
		}
	}()

	// Adapters
	store := bookingstore.NewBlobBookingStore(
		blob,
		cfg.Storage.Key,
		slotCatalog,
		mainLogger.WithModule("BookingStore"),
		bookingMetrics,
	)

	opts := []booking_service.Option{
		booking_service.WithMetrics(bookingMetrics),
		booking_service.WithNotifier(bookingNotifier),
	}

	// a nil *CacheAdapter must not end up inside the interface
	if dayCache := cache.NewCacheAdapter(cfg, mainLogger.WithModule("CacheAdapter")); dayCache != nil {
		opts = append(opts, booking_service.WithCache(dayCache))
	}

	bookingService := booking_service.NewBookingService(
		store,
		slotCatalog,
		cfg.App.Services,
		mainLogger,
		opts...,
	)

	// HTTP server
	router := gin.Default()
	controller := http.NewBookingController(
		bookingService,
		bookingService,
		cfg,
		registry,
		mainLogger.WithModule("HttpController"),
	)
	controller.RegisterRoutes(router)

	server := &nethttp.Server{
		Addr:    cfg.HTTP.Host + ":" + cfg.HTTP.Port,
		Handler: router,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			logger.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	logger.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("app.http.shutdown_failed", out.LogFields{
			"error": err.Error(),
		})
	}

	// Extra logging for local development
	if cfg.IsLocal() {
		logger.Debug("app.config.debug", out.LogFields{
			"config": map[string]interface{}{
				"http": map[string]string{
					"host": cfg.HTTP.Host,
					"port": cfg.HTTP.Port,
				},
				"storage": map[string]interface{}{
					"driver": cfg.Storage.Driver,
					"key":    cfg.Storage.Key,
					"path":   cfg.Storage.Path,
				},
				"rabbitmq": map[string]interface{}{
					"enabled":  cfg.RabbitMQ.Enabled,
					"exchange": cfg.RabbitMQ.Exchange,
				},
				"cache": map[string]interface{}{
					"enabled": cfg.Cache.Enabled,
					"size":    cfg.Cache.Size,
					"ttl":     cfg.Cache.TTL.String(),
				},
			},
		})
	}
}

// newNotifier returns the confirmation channel and the function releasing it.
func newNotifier(cfg *config.Config, slotCatalog *catalog.Catalog, logger out.LoggerPort) (out.NotifierPort, func() error, error) {
	if !cfg.RabbitMQ.Enabled {
		return notifier.NewLogNotifier(logger.WithModule("LogNotifier")), func() error { return nil }, nil
	}

	resolve := func(b domain.Booking) time.Time {
		startsAt, _ := slotCatalog.Resolve(b.Date, b.Slot)
		return startsAt
	}

	publisher, err := notifier.NewRabbitMQNotifier(cfg, resolve, logger.WithModule("RabbitMQNotifier"))
	if err != nil {
		return nil, nil, err
	}
	return publisher, publisher.Stop, nil
}

func newBlobStore(cfg *config.Config, logger out.LoggerPort) (out.BlobPort, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverBadger:
		blob, err := storage.NewBadgerAdapter(cfg.Storage.Path, logger.WithModule("BadgerAdapter"))
		if err != nil {
			return nil, err
		}
		return blob, nil
	case config.StorageDriverRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		blob, err := storage.NewRedisAdapterFromOptions(ctx, &redis.Options{
			Addr:     cfg.Storage.RedisAddr,
			Password: cfg.Storage.RedisPassword,
			DB:       cfg.Storage.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return blob, nil
	default:
		return storage.NewMemoryAdapter(), nil
	}
}
