package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PlisioPay/config"
	"PlisioPay/internal/controller/rest"
	"PlisioPay/internal/controller/rest/handlers"
	"PlisioPay/internal/domain/payment"
	"PlisioPay/internal/external/plisio"
	"PlisioPay/internal/session"
	"PlisioPay/pkg/health"
	"PlisioPay/pkg/logger"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func Run(cfg config.Config) error {
	logger.Setup(logger.Options{Level: cfg.LogLevel, Console: cfg.LogFormat == "console"})

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	registry := health.NewRegistry()

	client := plisio.NewClient(plisio.Config{
		BaseURL:           cfg.PlisioBaseURL,
		Timeout:           cfg.HTTPPlisioClientTimeout,
		AdditionalHeaders: cfg.PlisioAdditionalHeaders,
		EnableLogging:     cfg.PlisioEnableLogging,
		RetryAttempts:     cfg.PlisioRetryAttempts,
		RetryBaseDelay:    cfg.PlisioRetryBaseDelay,
		RetryMaxDelay:     cfg.PlisioRetryMaxDelay,
		Logger:            slog.Default().With("component", "plisio"),
	})
	defer client.Close()
	registry.Add(health.NewPingChecker("plisio", client))

	memo, err := openMemo(ctx, cfg, registry)
	if err != nil {
		return fmt.Errorf("app - Run - openMemo: %w", err)
	}
	defer memo.close()

	sinks, err := openSinks(ctx, cfg, registry)
	if err != nil {
		return fmt.Errorf("app - Run - openSinks: %w", err)
	}
	defer sinks.Close()

	manager := session.NewManager(client, sinks,
		session.WithIdleTTL(cfg.SessionIdleTTL),
		session.WithMachineOptions(
			payment.WithShowErrorDetails(cfg.PlisioShowErrorDetails),
			payment.WithPollInterval(cfg.PollInterval),
			payment.WithInvoiceCreator(client),
			payment.WithInvoiceMemo(memo.store),
		),
	)
	defer manager.CloseAll()

	engine := NewGinEngine(cfg.LogHTTPBodies)
	router := rest.NewRouter(handlers.NewSessionHandler(manager, cfg.PlisioAPIKey), registry)
	router.SetUp(engine)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Starting HTTP server", "port", cfg.Port, "memo_backend", cfg.MemoBackend, "step_sinks", cfg.StepSinks)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return manager.Run(gctx)
	})
	if memo.purger != nil {
		g.Go(func() error {
			runPurger(gctx, memo.purger, memoPurgeInterval)
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down paysheet gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
