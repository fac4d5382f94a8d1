// Command reconcile runs one interactive drift sweep over mirrored orders.
// Each drifted issue is shown to the operator, who approves or skips the
// fix; nothing is written without approval.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/greenlake/portal/internal/adapter/linear"
	"github.com/greenlake/portal/internal/config"
	"github.com/greenlake/portal/internal/logger"
	"github.com/greenlake/portal/internal/reconcile"
	"github.com/greenlake/portal/internal/storage/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "reconcile: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New()

	storage, err := postgres.New(ctx, cfg.DatabaseURI, log)
	if err != nil {
		return err
	}
	defer storage.Close()

	client, err := linear.NewHTTPClient(cfg.Linear.APIURL, cfg.Linear.APIKey, log)
	if err != nil {
		return err
	}

	sweeper := reconcile.NewSweeper(
		storage.Orders(),
		storage.Properties(),
		client,
		reconcile.NewHuhPrompter(),
		log,
	)

	summary, err := sweeper.Run(ctx)
	if summary != nil {
		fmt.Printf("examined %d, drifted %d, updated %d, skipped %d\n",
			summary.Examined, summary.Drifted, summary.Updated, summary.Skipped)
	}
	return err
}
