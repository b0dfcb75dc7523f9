package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dailydiet/internal/cache"
	"dailydiet/internal/config"
	"dailydiet/internal/services"
	"dailydiet/pkg/rabbitmq"

	log "github.com/sirupsen/logrus"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()
	configureLogging(cfg.LogLevel)

	// --- Storage ---
	stores, err := OpenStores(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer stores.Close()

	// --- Metrics cache (optional) ---
	cacheClient := cache.New(cache.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if cacheClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := cacheClient.Ping(ctx); err != nil {
			log.Warnf("Redis at %s is unreachable, metrics will be computed on every request: %v", cfg.RedisAddr, err)
		}
		cancel()
		defer cacheClient.Close()
	}

	// --- Meal events (optional) ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Warnf("Meal events disabled: %v", err)
		} else {
			defer mqClient.Close()
			events = mqClient
			if err := mqClient.ConsumeEvents(rabbitmq.LogEvent); err != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", err)
			}
		}
	}

	app := NewApp(cfg, stores, cacheClient, events)

	// --- Start HTTP Server ---
	log.WithFields(log.Fields{
		"port":   cfg.AppPort,
		"driver": cfg.DBDriver,
	}).Info("Starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

func configureLogging(level string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("Unknown LOG_LEVEL %q, using info", level)
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}
