package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"financeiro/internal/amqp"
	"financeiro/internal/chat"
	"financeiro/internal/config"
	apphttp "financeiro/internal/http"
	applog "financeiro/internal/log"
	"financeiro/internal/services"
	"financeiro/internal/storage"
	"financeiro/internal/store"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		Component: "financeiro",
	})
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	backend, cleanup, err := newBackend(cfg)
	if err != nil {
		logger.Error("Failed to initialize storage backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer cleanup()
	logger.Info("Initialized storage backend", "backend", cfg.DataBackend)

	var events services.EventPublisher
	if cfg.MirrorEnabled() {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		events = amqpClient
		logger.Info("Expense mirror enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("Expense mirror disabled - no AMQP_URL provided")
	}

	handle := store.NewHandle(backend)
	svc := services.NewExpenseService(handle, events, nil)
	bot := chat.NewBot(handle, svc)

	srv := apphttp.NewServer(":"+cfg.Port, bot, logger.WithComponent("http"))
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting financeiro server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func newBackend(cfg *config.Config) (store.Store, func(), error) {
	switch cfg.DataBackend {
	case "sqlite":
		st, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	case "memory":
		return store.NewMemoryStore(), func() {}, nil
	default:
		st, err := store.NewFileStore(cfg.StatePath)
		if err != nil {
			return nil, nil, err
		}
		return st, func() {}, nil
	}
}
