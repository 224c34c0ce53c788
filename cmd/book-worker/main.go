package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/beom0515/beom-jyeon-book/internal/amqp"
	"github.com/beom0515/beom-jyeon-book/internal/config"
	applog "github.com/beom0515/beom-jyeon-book/internal/log"
	gsheet "github.com/beom0515/beom-jyeon-book/internal/tabular/google"
	"github.com/beom0515/beom-jyeon-book/internal/worker"
)

func main() {
	logger := applog.Setup().WithComponent(applog.ComponentWorker)

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the mirror worker")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sheets, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", "error", err, "exchange", cfg.AMQPExchange)
		os.Exit(1)
	}
	defer client.Close()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	logger.Info("Starting mirror worker", "queue", cfg.AMQPQueue)
	w := worker.NewMirrorWorker(sheets)
	if err := w.Run(ctx, client); err != nil && ctx.Err() == nil {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped")
}
