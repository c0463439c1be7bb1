package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/sanjeetk-dev/videograb-server/internal/api/handler"
	"github.com/sanjeetk-dev/videograb-server/internal/api/middleware"
	"github.com/sanjeetk-dev/videograb-server/internal/bot"
	"github.com/sanjeetk-dev/videograb-server/internal/config"
	"github.com/sanjeetk-dev/videograb-server/internal/domain/repository"
	"github.com/sanjeetk-dev/videograb-server/internal/infrastructure/cache"
	"github.com/sanjeetk-dev/videograb-server/internal/infrastructure/postgres"
	"github.com/sanjeetk-dev/videograb-server/internal/infrastructure/queue"
	"github.com/sanjeetk-dev/videograb-server/internal/infrastructure/storage"
	"github.com/sanjeetk-dev/videograb-server/internal/keepalive"
	"github.com/sanjeetk-dev/videograb-server/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Catalog store.
	db, err := postgres.NewClient(ctx, postgres.DefaultClientConfig(cfg.Database.DSN()))
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer db.Close()
	repo := postgres.NewMediaRepository(db.Pool())

	// Durable content host for relayed thumbnails.
	contentHost, err := storage.NewClient(ctx, storage.ClientConfig{
		Endpoint:      cfg.MinIO.Endpoint,
		AccessKey:     cfg.MinIO.AccessKey,
		SecretKey:     cfg.MinIO.SecretKey,
		Bucket:        cfg.MinIO.Bucket,
		UseSSL:        cfg.MinIO.UseSSL,
		PublicBaseURL: cfg.MinIO.PublicBaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to create content host: %w", err)
	}

	// Listing cache: Redis when configured, in-process memory otherwise.
	var listingCache cache.ListingCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rdb.Close()
		listingCache = cache.NewRedisListingCache(rdb)
		logger.Info("listing cache backed by redis", slog.String("addr", cfg.Redis.Addr))
	} else {
		listingCache = cache.NewMemoryListingCache()
		logger.Info("listing cache in process memory")
	}

	// Catalog events are optional; without a broker uploads simply skip
	// the notification.
	var events repository.CatalogEvents
	if cfg.RabbitMQ.URL != "" {
		mq, err := queue.NewClient(ctx, queue.DefaultClientConfig(cfg.RabbitMQ.URL))
		if err != nil {
			return fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}
		defer mq.Close()
		events = mq
		logger.Info("catalog events enabled")
	}

	// Telegram transport.
	webhookURL := strings.TrimRight(cfg.Server.ExternalBaseURL, "/") + "/webhook/" + cfg.Bot.Secret()
	transport, err := bot.NewTransport(bot.TransportConfig{
		Token:         cfg.Bot.Token,
		WebhookURL:    webhookURL,
		WebhookSecret: cfg.Bot.Secret(),
		FetchTimeout:  cfg.Relay.FetchTimeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create telegram transport: %w", err)
	}

	// Workflows.
	relay := usecase.NewMediaRelay(transport, contentHost)
	uploadSvc := usecase.NewUploadService(repo, relay, listingCache, transport, events, usecase.UploadServiceConfig{
		AdminID:     cfg.Bot.AdminID,
		BotUsername: cfg.Bot.Username,
	})
	resolveSvc := usecase.NewResolveService(repo, cache.NewHandleCache(), transport)
	listingSvc := usecase.NewListingService(repo, listingCache, usecase.ListingServiceConfig{
		PerPage:  cfg.Listing.PageSize,
		CacheTTL: cfg.Listing.CacheTTL,
	})

	dispatcher := bot.NewDispatcher(transport, logger)
	bot.NewHandlers(uploadSvc, resolveSvc).Register(dispatcher)
	transport.Bind(dispatcher)

	if err := transport.RegisterWebhook(ctx); err != nil {
		return fmt.Errorf("failed to register webhook: %w", err)
	}
	go transport.StartWebhook(ctx)

	r := setupRouter(logger, transport, listingSvc, cfg.Bot.Username, cfg.Bot.Secret())

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go keepalive.New(cfg.Server.ExternalBaseURL, cfg.KeepAlive.Interval, logger).Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func setupRouter(
	logger *slog.Logger,
	transport *bot.Transport,
	listingSvc usecase.ListingService,
	botUsername string,
	webhookSecret string,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/", handler.Health)
	r.Get("/files", handler.NewFilesHandler(listingSvc, botUsername).List)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/webhook/"+webhookSecret, transport.WebhookHandler())

	return r
}
