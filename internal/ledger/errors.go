package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beom0515/beom-jyeon-book/internal/core"
)

// ErrWriteFailed wraps every backing-store write failure surfaced to
// callers. Reads never propagate errors; writes always do.
var ErrWriteFailed = errors.New("backing store write failed")

// PartialWriteError reports a multi-target append that landed in some
// ledgers but not others. The caller can retry just the failed side;
// treating this as plain success would silently lose half of a shared
// entry.
type PartialWriteError struct {
	Succeeded []core.Person
	Failed    map[core.Person]error
}

func (e *PartialWriteError) Error() string {
	oks := make([]string, 0, len(e.Succeeded))
	for _, p := range e.Succeeded {
		oks = append(oks, p.String())
	}
	fails := make([]string, 0, len(e.Failed))
	for p, err := range e.Failed {
		fails = append(fails, fmt.Sprintf("%s: %v", p, err))
	}
	return fmt.Sprintf("partial write: saved for [%s], failed for [%s]",
		strings.Join(oks, ", "), strings.Join(fails, "; "))
}

func (e *PartialWriteError) Unwrap() error { return ErrWriteFailed }

// FailedTargets lists the ledgers still missing the entry.
func (e *PartialWriteError) FailedTargets() []core.Person {
	out := make([]core.Person, 0, len(e.Failed))
	for _, p := range core.Persons() {
		if _, ok := e.Failed[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// RowError records one backing-store row that could not be decoded into
// an Entry. The row is excluded from the ledger; the load itself still
// succeeds.
type RowError struct {
	Row int // zero-based data row index
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }
