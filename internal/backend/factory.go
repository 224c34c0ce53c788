// Package backend selects and wires the tabular store behind the
// ledgers: in-memory for local runs, Google Sheets directly, or SQLite
// as primary with the spreadsheet mirrored over AMQP.
package backend

import (
	"context"
	"fmt"

	"github.com/beom0515/beom-jyeon-book/internal/amqp"
	"github.com/beom0515/beom-jyeon-book/internal/config"
	"github.com/beom0515/beom-jyeon-book/internal/core"
	"github.com/beom0515/beom-jyeon-book/internal/ledger"
	applog "github.com/beom0515/beom-jyeon-book/internal/log"
	"github.com/beom0515/beom-jyeon-book/internal/tabular"
	gsheet "github.com/beom0515/beom-jyeon-book/internal/tabular/google"
	"github.com/beom0515/beom-jyeon-book/internal/tabular/memory"
	"github.com/beom0515/beom-jyeon-book/internal/tabular/sqlite"
)

// Result holds the wired store plus the optional mutation mirror and a
// cleanup function for owned resources.
type Result struct {
	Store   tabular.Store
	Mirror  ledger.Mirror
	Cleanup func() error
}

func Create(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*Result, error) {
	log := logger.WithComponent(applog.ComponentBackend)

	switch cfg.DataBackend {
	case "memory":
		store := memory.New()
		for _, p := range core.Persons() {
			store.Seed(ledger.TableID(p), tabular.Table{Header: tabular.CanonicalHeader})
		}
		log.Info("Initialized memory backend")
		return &Result{Store: store}, nil

	case "sheets":
		cli, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize Google Sheets client: %w", err)
		}
		log.Info("Initialized Google Sheets backend")
		return &Result{Store: cli}, nil

	case "sqlite":
		store, err := sqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite store: %w", err)
		}

		res := &Result{Store: store, Cleanup: store.Close}
		if cfg.AMQPURL != "" {
			client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
			if err != nil {
				// The book still works without its spreadsheet mirror.
				log.Warn("Failed to initialize AMQP client, continuing without mirror", "error", err)
			} else {
				res.Mirror = amqp.NewMirrorPublisher(client)
				res.Cleanup = func() error {
					client.Close()
					return store.Close()
				}
				log.Info("Initialized AMQP mirror",
					"exchange", cfg.AMQPExchange,
					"queue", cfg.AMQPQueue)
			}
		}
		log.Info("Initialized SQLite backend",
			"db_path", cfg.SQLiteDBPath,
			"mirror_enabled", res.Mirror != nil)
		return res, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.DataBackend)
	}
}
