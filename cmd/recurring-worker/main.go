package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"billetera/internal/cli"
	applog "billetera/internal/log"
	"billetera/internal/services"
	"billetera/internal/storage"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger().WithComponent(applog.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	store, kv := cli.InitStore(logger, cfg.DBPath)
	defer kv.Close()

	processor := services.NewRecurringProcessor(store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting recurring-worker",
		"schedule", cfg.RecurringSchedule,
		applog.FieldPath, cfg.DBPath)

	// Run once at startup so a freshly booted worker catches up immediately.
	processAll(ctx, logger, store, processor)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.RecurringSchedule, func() {
		processAll(ctx, logger, store, processor)
	}); err != nil {
		logger.Error("Invalid recurring schedule", applog.FieldError, err, "schedule", cfg.RecurringSchedule)
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		scheduler.Start()
		<-gctx.Done()
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		stopCtx := scheduler.Stop()
		select {
		case <-stopCtx.Done():
		case <-time.After(cfg.ShutdownTimeout):
			logger.Warn("Shutdown timeout reached while waiting for running jobs")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Recurring-worker shutdown complete")
}

// processAll materializes due recurring transactions for every wallet with
// a persisted ledger.
func processAll(ctx context.Context, logger *applog.Logger, store *storage.WalletStore, processor *services.RecurringProcessor) {
	wallets, err := store.Wallets(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list wallets", applog.FieldError, err)
		return
	}

	total := 0
	for _, w := range wallets {
		added, err := processor.ProcessWallet(ctx, w, time.Now())
		if err != nil {
			logger.ErrorContext(ctx, "Failed to process wallet",
				applog.FieldWallet, w, applog.FieldError, err)
			continue
		}
		total += added
	}

	logger.InfoContext(ctx, "Recurring processing complete",
		applog.FieldCount, total, "wallets", len(wallets))
}
