package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beom0515/beom-jyeon-book/internal/amqp"
	"github.com/beom0515/beom-jyeon-book/internal/core"
	"github.com/beom0515/beom-jyeon-book/internal/tabular"
	"github.com/beom0515/beom-jyeon-book/internal/tabular/memory"
)

func newWorker(t *testing.T) (*MirrorWorker, *memory.Store) {
	t.Helper()
	mem := memory.New()
	for _, p := range core.Persons() {
		mem.Seed(p.String(), tabular.Table{Header: tabular.CanonicalHeader})
	}
	return NewMirrorWorker(mem), mem
}

func TestHandleAppendTargetsExactlyOneLedger(t *testing.T) {
	w, mem := newWorker(t)

	// A shared entry arrives as one message per ledger; replay must not
	// re-run routing and duplicate it again.
	msg := &amqp.MirrorMessage{
		Op: amqp.OpAppend, Person: "jyeon",
		Date: "2026-02-14", Kind: "shared", Category: "leisure", Memo: "cinema", Amount: 20000,
	}
	require.NoError(t, w.HandleMirrorMessage(context.Background(), msg))

	jyeon, err := mem.Read(context.Background(), "jyeon")
	require.NoError(t, err)
	assert.Len(t, jyeon.Rows, 1)

	beom, err := mem.Read(context.Background(), "beom")
	require.NoError(t, err)
	assert.Empty(t, beom.Rows, "append must land only in the message's target ledger")
}

func TestHandleDelete(t *testing.T) {
	w, mem := newWorker(t)
	mem.Seed("beom", tabular.Table{
		Header: tabular.CanonicalHeader,
		Rows: [][]string{
			{"2026-02-01", "income", "other", "salary", "100000"},
			{"2026-02-02", "expense_of_beom", "food", "lunch", "9000"},
		},
	})

	msg := &amqp.MirrorMessage{
		Op: amqp.OpDelete, Person: "beom",
		Date: "2026-02-02", Memo: "lunch", Amount: 9000,
	}
	require.NoError(t, w.HandleMirrorMessage(context.Background(), msg))

	tab, err := mem.Read(context.Background(), "beom")
	require.NoError(t, err)
	require.Len(t, tab.Rows, 1)
	assert.Equal(t, "salary", tab.Rows[0][3])

	// Deleting again is the usual no-op success.
	require.NoError(t, w.HandleMirrorMessage(context.Background(), msg))
}

func TestHandleRejectsBadMessages(t *testing.T) {
	w, _ := newWorker(t)
	ctx := context.Background()

	cases := []*amqp.MirrorMessage{
		{Op: amqp.OpAppend, Person: "stranger", Date: "2026-02-01", Kind: "income", Amount: 1},
		{Op: amqp.OpAppend, Person: "beom", Date: "junk", Kind: "income", Amount: 1},
		{Op: "rename", Person: "beom", Date: "2026-02-01"},
	}
	for i, msg := range cases {
		if err := w.HandleMirrorMessage(ctx, msg); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestHandleAppendWriteFailureReturnsError(t *testing.T) {
	mem := memory.New()
	mem.Seed("beom", tabular.Table{Header: tabular.CanonicalHeader})
	w := NewMirrorWorker(mem)

	mem.FailWrite = func(string) error { return assert.AnError }
	msg := &amqp.MirrorMessage{
		Op: amqp.OpAppend, Person: "beom",
		Date: "2026-02-01", Kind: "income", Category: "other", Memo: "m", Amount: 1,
	}
	err := w.HandleMirrorMessage(context.Background(), msg)
	require.Error(t, err, "failed replay must error so the delivery is requeued")
}
