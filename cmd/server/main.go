package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc"

	"pinstack-post-page/internal/application/page"
	post_service "pinstack-post-page/internal/application/service/post"
	model "pinstack-post-page/internal/domain/models"
	ports "pinstack-post-page/internal/domain/ports/output"
	"pinstack-post-page/internal/domain/ports/output/client"
	"pinstack-post-page/internal/infrastructure/config"
	delivery_http "pinstack-post-page/internal/infrastructure/inbound/http"
	metrics_server "pinstack-post-page/internal/infrastructure/inbound/metrics"
	"pinstack-post-page/internal/infrastructure/logger"
	redis_cache "pinstack-post-page/internal/infrastructure/outbound/cache/redis"
	post_grpc "pinstack-post-page/internal/infrastructure/outbound/client/post/grpc"
	post_http "pinstack-post-page/internal/infrastructure/outbound/client/post/http"
	post_memory "pinstack-post-page/internal/infrastructure/outbound/client/post/memory"
	prometheus_metrics "pinstack-post-page/internal/infrastructure/outbound/metrics/prometheus"
)

func main() {
	cfg := config.MustLoad()
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	log := logger.New(cfg.Env)

	metrics := prometheus_metrics.NewPrometheusMetricsProvider()
	validate := page.NewValidator()

	postClient, grpcConn, err := newPostClient(cfg.PostService, validate, log, metrics)
	if err != nil {
		log.Error("Failed to create post client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if grpcConn != nil {
		defer func() {
			if err := grpcConn.Close(); err != nil {
				log.Error("Failed to close post service connection", slog.String("error", err.Error()))
			}
		}()
	}

	if cfg.Redis.Enabled {
		log.Info("Connecting to Redis",
			slog.String("address", cfg.Redis.Address),
			slog.Int("port", cfg.Redis.Port),
			slog.Int("db", cfg.Redis.DB))
		redisClient, err := redis_cache.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Error("Failed to create Redis client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", slog.String("error", err.Error()))
			}
		}()

		postCache := redis_cache.NewPostListCache(redisClient, log, cfg.Redis.TTL)
		postClient = post_service.NewPostClientCacheDecorator(postClient, postCache, log, metrics)
	}

	location, err := time.LoadLocation(cfg.Page.TimeZone)
	if err != nil {
		log.Warn("Unknown time zone, using local time",
			slog.String("time_zone", cfg.Page.TimeZone),
			slog.String("error", err.Error()))
		location = time.Local
	}
	pageOpts := page.Options{TimeLayout: cfg.Page.TimeLayout, Location: location}

	previews := page.NewPreviewStore(log)
	newController := func(identity model.Identity) *page.Controller {
		return page.NewController(postClient, previews, validate, identity, log, metrics, pageOpts)
	}
	sessions := delivery_http.NewSessionRegistry(cfg.Session.TTL, newController, log.With(slog.String("component", "sessions")), metrics)

	pageHandler := delivery_http.NewPageHandler(sessions, previews, cfg.Session.CookieName, cfg.HTTPServer.MaxUploadBytes, log)
	router, err := delivery_http.NewRouter(pageHandler, cfg.Identity.JWTSecret, log, metrics)
	if err != nil {
		log.Error("Failed to build router", slog.String("error", err.Error()))
		os.Exit(1)
	}

	httpServer := delivery_http.NewServer(router, cfg.HTTPServer, log)
	metricsServer := metrics_server.NewMetricsServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)

	metrics.SetServiceHealth(true)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	done := make(chan bool, 1)
	metricsDone := make(chan bool, 1)
	sessionsDone := make(chan bool, 1)

	go func() {
		sessions.Run(ctx, cfg.Session.SweepInterval)
		sessionsDone <- true
	}()

	go func() {
		if err := httpServer.Run(); err != nil {
			log.Error("HTTP server error", slog.String("error", err.Error()))
		}
		done <- true
	}()

	go func() {
		if err := metricsServer.Run(); err != nil {
			log.Error("Metrics server error", slog.String("error", err.Error()))
		}
		metricsDone <- true
	}()

	<-quit
	log.Info("Shutting down servers...")

	metrics.SetServiceHealth(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown error", slog.String("error", err.Error()))
	}

	stop()

	<-done
	<-metricsDone
	<-sessionsDone

	log.Info("Server exited")
}

func newPostClient(
	cfg config.PostService,
	validate *validator.Validate,
	log *logger.Logger,
	metrics ports.MetricsProvider,
) (client.PostClient, *grpc.ClientConn, error) {
	switch cfg.Transport {
	case config.TransportGRPC:
		log.Info("Using gRPC post service",
			slog.String("address", cfg.GRPCAddress),
			slog.Int("port", cfg.GRPCPort))
		postService, conn, err := post_grpc.Dial(cfg.GRPCAddress, cfg.GRPCPort, log, metrics)
		if err != nil {
			return nil, nil, err
		}
		return post_grpc.NewClient(postService, validate, log), conn, nil
	case config.TransportMemory:
		log.Info("Using in-memory post service")
		return post_memory.NewClient(log), nil, nil
	default:
		log.Info("Using HTTP post service", slog.String("base_url", cfg.BaseURL))
		httpClient := &http.Client{Timeout: cfg.Timeout}
		return post_http.NewClient(cfg.BaseURL, httpClient, validate, log, metrics), nil, nil
	}
}
