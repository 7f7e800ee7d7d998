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
	_ "time/tzdata"

	"github.com/fatali-fataliyev/household_ledger/api"
	"github.com/fatali-fataliyev/household_ledger/internal/auth"
	"github.com/fatali-fataliyev/household_ledger/internal/config"
	"github.com/fatali-fataliyev/household_ledger/internal/events"
	"github.com/fatali-fataliyev/household_ledger/internal/ledger"
	"github.com/fatali-fataliyev/household_ledger/internal/storage"
	"github.com/fatali-fataliyev/household_ledger/logging"
	"github.com/rs/cors"
)

func main() {
	if err := run(); err != nil {
		logging.Logger.Errorf("application stopped: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logging.Init(cfg.LogLevel, cfg.AppEnv, cfg.LogDir); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Logger.Info("application starting...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Without a store the ledger still serves empty reads and the health
	// check reports 503.
	var (
		st       ledger.Storage
		pinger   api.Pinger
		sessions auth.SessionStorage
	)
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		logging.Logger.Errorf("failed to initialize database, running without a store: %v", err)
	} else {
		defer store.Close()
		st = store
		pinger = store
		sessions = store
	}

	var publisher ledger.ChangePublisher
	if cfg.AMQPURL != "" {
		p, err := events.Dial(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logging.Logger.Warnf("failed to connect to AMQP broker, changes will not be published: %v", err)
		} else {
			defer p.Close()
			publisher = p
		}
	}

	tracker := ledger.NewTracker(st, publisher, cfg.Location)
	gate := auth.NewGate(sessions, tracker, cfg.PassphraseHash, cfg.SessionTTL)

	ledgerApi, err := api.NewApi(tracker, gate, pinger)
	if err != nil {
		return err
	}

	corsConf := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", api.TRACE_HEADER},
		ExposedHeaders:   []string{api.TRACE_HEADER, "Content-Disposition"},
		AllowCredentials: true,
	})

	var handler http.Handler = ledgerApi.Routes()
	handler = api.TimeoutMiddleware(cfg.RequestTimeout, handler)
	handler = logging.Middleware(handler)
	handler = api.TraceMiddleware(handler)
	handler = corsConf.Handler(handler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logging.Logger.Infof("Starting server on port: %s", cfg.Port)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
