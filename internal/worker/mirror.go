// Package worker replays ledger mutations from the mirror queue onto
// the household spreadsheet. The primary store already holds the data;
// failures here requeue the message instead of surfacing to a user.
package worker

import (
	"context"
	"fmt"

	"github.com/beom0515/beom-jyeon-book/internal/amqp"
	"github.com/beom0515/beom-jyeon-book/internal/core"
	"github.com/beom0515/beom-jyeon-book/internal/ledger"
	"github.com/beom0515/beom-jyeon-book/internal/tabular"
)

// MirrorWorker applies mirror messages against a tabular store,
// normally the Google Sheets adapter.
type MirrorWorker struct {
	sheets *ledger.Store
}

func NewMirrorWorker(sheets tabular.Store) *MirrorWorker {
	// TTL 0 disables read caching; the worker must always see current
	// sheet state for its read-modify-write.
	return &MirrorWorker{sheets: ledger.New(sheets, ledger.WithCacheTTL(0))}
}

// HandleMirrorMessage applies one mutation. The message's target ledger
// was resolved before publishing, so appends go to exactly that table
// without re-running kind routing (a shared entry arrives as two
// messages, one per ledger).
func (w *MirrorWorker) HandleMirrorMessage(ctx context.Context, msg *amqp.MirrorMessage) error {
	person, err := core.ParsePerson(msg.Person)
	if err != nil {
		return fmt.Errorf("mirror message person: %w", err)
	}
	date, err := core.ParseDate(msg.Date)
	if err != nil {
		return fmt.Errorf("mirror message date: %w", err)
	}

	switch msg.Op {
	case amqp.OpAppend:
		kind, err := core.ParseKind(msg.Kind, person)
		if err != nil {
			return fmt.Errorf("mirror message kind: %w", err)
		}
		e := core.Entry{
			Date:     date,
			Kind:     kind,
			Category: msg.Category,
			Memo:     msg.Memo,
			Amount:   msg.Amount,
		}
		e.Normalize()
		if err := e.Validate(); err != nil {
			return fmt.Errorf("mirror message entry: %w", err)
		}
		if err := w.sheets.AppendTo(ctx, person, e); err != nil {
			return fmt.Errorf("replay append: %w", err)
		}
		return nil

	case amqp.OpDelete:
		m := ledger.Match{Date: date, Amount: msg.Amount, Memo: msg.Memo}
		if err := w.sheets.Delete(ctx, person, m); err != nil {
			return fmt.Errorf("replay delete: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unknown mirror op %q", msg.Op)
	}
}

// Run consumes the mirror queue until the context is cancelled.
func (w *MirrorWorker) Run(ctx context.Context, client *amqp.Client) error {
	return client.ConsumeMirror(ctx, func(msg *amqp.MirrorMessage) error {
		return w.HandleMirrorMessage(ctx, msg)
	})
}
