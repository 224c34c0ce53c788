// Package ledger implements the per-person ledger protocol on top of a
// tabular backing store: defaulting reads, classify-and-route appends,
// delete-by-match, and the short-lived read cache that serves views.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/beom0515/beom-jyeon-book/internal/cache"
	"github.com/beom0515/beom-jyeon-book/internal/core"
	"github.com/beom0515/beom-jyeon-book/internal/tabular"
)

const (
	defaultCacheTTL  = 5 * time.Second
	defaultCacheSize = 8
)

type Store struct {
	tab tabular.Store

	// readCache serves view loads only. Mutations always re-read the
	// backing store and invalidate the key afterwards, so a stale read
	// can never feed a write.
	readCache *cache.LRUCache[[]core.Entry]

	// mirror, when set, receives every successful per-ledger mutation
	// for asynchronous replay onto the household spreadsheet. Mirror
	// failures never fail the user request; the entry is already
	// persisted in the primary store.
	mirror Mirror
}

// Mirror receives successful ledger mutations for replay elsewhere.
type Mirror interface {
	MirrorAppend(ctx context.Context, target core.Person, e core.Entry) error
	MirrorDelete(ctx context.Context, target core.Person, m Match) error
}

// Match identifies a row for deletion. Rows have no persistent id in
// the backing store, so deletion matches on the visible triple; when
// two rows are identical in all three fields the first one goes.
type Match struct {
	Date   core.Date
	Amount int64
	Memo   string
}

type Option func(*Store)

// WithCacheTTL overrides the view-read cache freshness window.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.readCache = cache.NewLRUCache[[]core.Entry](defaultCacheSize, ttl)
	}
}

// WithMirror attaches a mutation mirror.
func WithMirror(m Mirror) Option {
	return func(s *Store) { s.mirror = m }
}

func New(tab tabular.Store, opts ...Option) *Store {
	s := &Store{
		tab:       tab,
		readCache: cache.NewLRUCache[[]core.Entry](defaultCacheSize, defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TableID maps a person to their backing-store table. The worksheet
// names in the household spreadsheet are simply the person ids.
func TableID(p core.Person) string { return p.String() }

// Load returns a person's ledger for viewing. It never fails outward:
// a fetch error, an empty table, or a table missing any of the five
// expected columns all come back as an empty ledger, so callers render
// uniformly regardless of backing-store health. Results may be served
// from the short-lived read cache.
func (s *Store) Load(ctx context.Context, p core.Person) []core.Entry {
	if entries, ok := s.readCache.Get(TableID(p)); ok {
		return entries
	}
	entries, _ := s.loadFresh(ctx, p)
	s.readCache.Set(TableID(p), entries)
	return entries
}

// loadFresh reads the current backing-store state, bypassing the cache.
// It returns the decoded entries together with the raw table so that
// mutations can preserve rows they do not understand.
func (s *Store) loadFresh(ctx context.Context, p core.Person) ([]core.Entry, tabular.Table) {
	t, err := s.tab.Read(ctx, TableID(p))
	if err != nil {
		slog.WarnContext(ctx, "Ledger read degraded to empty",
			"person", p.String(),
			"error", err)
		return []core.Entry{}, tabular.Table{Header: tabular.CanonicalHeader}
	}
	if !t.HasCanonicalColumns() {
		slog.WarnContext(ctx, "Ledger table missing expected columns, treating as empty",
			"person", p.String(),
			"header", t.Header)
		return []core.Entry{}, tabular.Table{Header: tabular.CanonicalHeader}
	}
	entries, rowErrs := DecodeTable(p, t)
	for _, re := range rowErrs {
		slog.WarnContext(ctx, "Skipping malformed ledger row",
			"person", p.String(),
			"row", re.Row,
			"error", re.Err)
	}
	return entries, t
}

// Append routes an entry to its target ledgers and persists each one
// with an independent read-modify-write cycle. There is no cross-table
// transaction: with two targets, one side can succeed while the other
// fails, and that outcome is reported as a PartialWriteError rather
// than being folded into success or total failure.
func (s *Store) Append(ctx context.Context, entering core.Person, e core.Entry) error {
	e.Normalize()
	if err := e.Validate(); err != nil {
		return fmt.Errorf("invalid entry: %w", err)
	}

	targets := core.ClassifyTargets(e.Kind, entering)
	var succeeded []core.Person
	failed := make(map[core.Person]error)

	for _, target := range targets {
		if err := s.AppendTo(ctx, target, e); err != nil {
			failed[target] = err
			continue
		}
		succeeded = append(succeeded, target)
	}

	switch {
	case len(failed) == 0:
		return nil
	case len(succeeded) == 0:
		if len(targets) == 1 {
			return fmt.Errorf("%w: %s: %v", ErrWriteFailed, targets[0], failed[targets[0]])
		}
		return fmt.Errorf("%w: all targets: %v", ErrWriteFailed, failed)
	default:
		return &PartialWriteError{Succeeded: succeeded, Failed: failed}
	}
}

// AppendTo writes an already-normalized entry into exactly one ledger,
// bypassing kind routing. The mirror replay path uses it to apply a
// mutation whose target was resolved before publishing.
func (s *Store) AppendTo(ctx context.Context, target core.Person, e core.Entry) error {
	// Always read current state; never trust the view cache here.
	_, t := s.loadFresh(ctx, target)
	t.Rows = append(t.Rows, EncodeEntryFor(t, e))
	if err := s.tab.Write(ctx, TableID(target), t); err != nil {
		return err
	}
	s.readCache.Delete(TableID(target))
	slog.InfoContext(ctx, "Entry appended",
		"person", target.String(),
		"kind", e.Kind.String(),
		"category", e.Category,
		"amount", e.Amount,
		"date", e.Date.ISO())

	if s.mirror != nil {
		if err := s.mirror.MirrorAppend(ctx, target, e); err != nil {
			slog.WarnContext(ctx, "Mirror publish failed, entry persisted locally",
				"person", target.String(),
				"error", err)
		}
	}
	return nil
}

// Delete removes the first row matching date+amount+memo and writes the
// remaining sequence back unchanged in order. A match against zero rows
// is a no-op success, not an error.
func (s *Store) Delete(ctx context.Context, p core.Person, m Match) error {
	_, t := s.loadFresh(ctx, p)

	idx := -1
	for i, row := range t.Rows {
		e, err := DecodeRow(p, t, row)
		if err != nil {
			continue
		}
		if e.Date.Equal(m.Date) && e.Amount == m.Amount && e.Memo == m.Memo {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	t.Rows = append(t.Rows[:idx], t.Rows[idx+1:]...)
	if err := s.tab.Write(ctx, TableID(p), t); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, p, err)
	}
	s.readCache.Delete(TableID(p))
	slog.InfoContext(ctx, "Entry deleted",
		"person", p.String(),
		"date", m.Date.ISO(),
		"amount", m.Amount)

	if s.mirror != nil {
		if err := s.mirror.MirrorDelete(ctx, p, m); err != nil {
			slog.WarnContext(ctx, "Mirror publish failed, deletion applied locally",
				"person", p.String(),
				"error", err)
		}
	}
	return nil
}

// Summarize aggregates a person's ledger over a period.
func (s *Store) Summarize(ctx context.Context, p core.Person, period core.Period) core.Summary {
	return core.Aggregate(s.Load(ctx, p), period)
}
