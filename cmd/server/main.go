package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nfl_dashboard/service/internal/api"
	"nfl_dashboard/service/internal/client"
	"nfl_dashboard/service/internal/config"
	"nfl_dashboard/service/internal/metrics"
	"nfl_dashboard/service/internal/normalize"
	"nfl_dashboard/service/internal/publisher"
	"nfl_dashboard/service/internal/schedule"
	"nfl_dashboard/service/internal/scheduler"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	setupLogger(cfg)

	log.Info().Msg("Starting NFL schedule service")
	log.Info().
		Str("env", cfg.AppEnv).
		Str("log_level", cfg.LogLevel).
		Str("espn_base_url", cfg.ESPNBaseURL).
		Msg("Configuration loaded")

	// Create context that listens for cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid display timezone")
	}

	// Initialize ESPN client
	espn := client.NewClient(client.Options{
		BaseURL:       cfg.ESPNBaseURL,
		UserAgent:     cfg.ESPNUserAgent,
		Timeout:       cfg.ESPNTimeout,
		MaxConcurrent: cfg.ESPNMaxConcurrent,
	})
	log.Info().Msg("ESPN client initialized")

	svc := schedule.NewService(espn, normalize.New(normalize.WithLocation(loc)))

	// Start metrics HTTP server
	if cfg.EnableMetrics {
		go startMetricsServer(cfg.MetricsPort)
	}

	// Update system uptime metric
	startTime := time.Now()
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.SystemUptime.Set(time.Since(startTime).Seconds())
			case <-ctx.Done():
				return
			}
		}
	}()

	// Snapshot publishing to Redis
	var sched *scheduler.Scheduler
	if cfg.RedisEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr()).Msg("Redis not reachable, snapshots will fail until it is")
		} else {
			log.Info().Str("addr", cfg.RedisAddr()).Msg("Redis connected")
		}
		pingCancel()

		if cfg.EnableScheduler {
			pub := publisher.NewStreamPublisher(rdb, cfg.SnapshotStream)
			sched = scheduler.NewScheduler(cfg.SnapshotCron, svc, pub)

			log.Info().Msg("Starting scheduler...")
			if err := sched.Start(ctx, true); err != nil {
				log.Fatal().Err(err).Msg("Failed to start scheduler")
			}
		}
	}

	// Start API server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      api.NewRouter(api.NewHandler(svc), cfg.CORSOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("API server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	// Keep running until context is cancelled or the server dies
	select {
	case <-ctx.Done():
	case err := <-serverErrors:
		log.Error().Err(err).Msg("API server failed")
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	log.Info().Msg("Shutting down API server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("API server shutdown failed")
	}

	if sched != nil {
		log.Info().Msg("Shutting down scheduler...")
		sched.Stop()
	}

	log.Info().Msg("Service shutdown complete")
}

// setupLogger configures the zerolog logger
func setupLogger(cfg *config.Config) {
	// Pretty console logging in development
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	// Set log level
	level := zerolog.InfoLevel
	if cfg.LogLevel != "" {
		parsedLevel, err := zerolog.ParseLevel(cfg.LogLevel)
		if err == nil {
			level = parsedLevel
		}
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("level", level.String()).
		Msg("Logger initialized")
}

// startMetricsServer starts the Prometheus metrics HTTP server
func startMetricsServer(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	addr := fmt.Sprintf(":%d", port)
	log.Info().Int("port", port).Msg("Starting metrics server")

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("Metrics server failed")
	}
}
