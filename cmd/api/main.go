// cmd/api/main.go

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"

	"sentilytics/internal/adapter/events"
	"sentilytics/internal/adapter/sentiment"
	"sentilytics/internal/adapter/storage"
	"sentilytics/internal/config"
	"sentilytics/internal/domain/analysis"
	"sentilytics/internal/migrations"
	"sentilytics/internal/ratelimit"
	"sentilytics/internal/server"
	"sentilytics/internal/service/listening"
	"sentilytics/pkg/logger"
	"sentilytics/pkg/retry"
)

// stores groups the persistence ports picked by STORE_DRIVER
type stores struct {
	queries analysis.QueryStore
	runs    analysis.RunRecorder
	close   func()
}

func main() {
	// Load configuration
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.New(logger.Opts{
		Env:       cfg.Environment,
		Level:     cfg.Log.Level,
		SentryDSN: cfg.Log.SentryDSN,
	})
	mainLog := appLog.WithComponent("Main")

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Initialize storage adapters
	st, err := initStores(ctx, cfg, appLog)
	if err != nil {
		mainLog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer st.close()

	// Initialize event bus
	var (
		publisher analysis.ViewPublisher
		stream    events.Stream
	)
	if cfg.NATS.Enabled {
		natsConn, err := initNATS(cfg.NATS, appLog)
		if err != nil {
			mainLog.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer natsConn.Close()

		natsPublisher := events.NewNATSPublisher(natsConn, cfg.Session.EventsTopic)
		publisher, stream = natsPublisher, natsPublisher
	} else {
		hub := events.NewHub()
		publisher, stream = hub, hub
	}

	// Initialize the sentiment API client
	fetcher := sentiment.New(cfg.Upstream.BaseURL,
		sentiment.WithHTTPClient(&http.Client{Timeout: cfg.Upstream.Timeout}),
		sentiment.WithRetry(retry.Config{
			MaxRetries:      uint64(cfg.Upstream.MaxRetries),
			InitialInterval: cfg.Upstream.RetryInitial,
			MaxInterval:     cfg.Upstream.RetryMax,
			Multiplier:      cfg.Upstream.RetryMultiplier,
		}),
		sentiment.WithLogger(appLog),
	)

	// Initialize services
	scheduler, err := listening.NewRefreshScheduler(appLog)
	if err != nil {
		mainLog.Error("Failed to start refresh scheduler", "error", err)
		os.Exit(1)
	}

	sessions := listening.NewManager(
		listening.Dependencies{
			Fetcher:   fetcher,
			Queries:   st.queries,
			Runs:      st.runs,
			Publisher: publisher,
			Scheduler: scheduler,
			Logger:    appLog,
		},
		listening.SessionConfig{
			DefaultFilter:   cfg.Session.DefaultFilter(),
			RefreshInterval: cfg.Session.RefreshInterval,
			FetchTimeout:    cfg.Server.WriteTimeout,
		},
	)

	limiter := ratelimit.NewInMemoryLimiter(cfg.Session.AnalyzePerMinute, time.Minute, cfg.Session.AnalyzeBurst)

	// Initialize HTTP server
	httpServer := server.NewServer(cfg.Server, server.Dependencies{
		Sessions: sessions,
		Runs:     st.runs,
		Stream:   stream,
		Limiter:  limiter,
		Logger:   appLog,
	})

	// Start HTTP server
	go func() {
		mainLog.Info("Starting HTTP server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			mainLog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	mainLog.Info("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Graceful shutdown
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		mainLog.Error("HTTP server shutdown error", "error", err)
	}

	sessions.Shutdown()

	if err := scheduler.Shutdown(); err != nil {
		mainLog.Error("Refresh scheduler shutdown error", "error", err)
	}

	mainLog.Info("Shutdown complete")
	appLog.Flush(shutdownCtx)
}

// Initialize the query and run stores
func initStores(ctx context.Context, cfg config.Config, appLog logger.Logger) (stores, error) {
	if cfg.Store.Driver == config.StoreDriverFile {
		fs, err := storage.NewFileStore(cfg.Store.FilePath)
		if err != nil {
			return stores{}, err
		}
		appLog.Info("Using file store", "path", cfg.Store.FilePath)
		return stores{queries: fs, runs: fs, close: func() {}}, nil
	}

	if cfg.Database.AutoMigrate {
		if err := migrate(ctx, cfg.Database); err != nil {
			return stores{}, err
		}
		appLog.Info("Database migrations applied")
	}

	db, err := initDatabase(ctx, cfg.Database)
	if err != nil {
		return stores{}, err
	}
	return stores{
		queries: storage.NewQueryStore(db),
		runs:    storage.NewRunStore(db),
		close:   db.Close,
	}, nil
}

// Apply pending migrations through database/sql
func migrate(ctx context.Context, cfg config.DatabaseConfig) error {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("unable to open database: %w", err)
	}
	defer db.Close()

	if err := migrations.Up(ctx, db); err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}
	return nil
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Test connection
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}

// Initialize NATS connection
func initNATS(cfg config.NATSConfig, appLog logger.Logger) (*nats.Conn, error) {
	natsLog := appLog.WithComponent("NATS")
	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			natsLog.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			natsLog.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			natsLog.Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return nc, nil
}
