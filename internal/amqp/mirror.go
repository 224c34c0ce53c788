package amqp

import (
	"context"

	"github.com/beom0515/beom-jyeon-book/internal/core"
	"github.com/beom0515/beom-jyeon-book/internal/ledger"
)

// MirrorPublisher adapts the AMQP client to the ledger mirror port.
type MirrorPublisher struct {
	client *Client
}

var _ ledger.Mirror = (*MirrorPublisher)(nil)

func NewMirrorPublisher(client *Client) *MirrorPublisher {
	return &MirrorPublisher{client: client}
}

func (p *MirrorPublisher) MirrorAppend(ctx context.Context, target core.Person, e core.Entry) error {
	return p.client.PublishMirror(ctx, &MirrorMessage{
		Op:       OpAppend,
		Person:   target.String(),
		Date:     e.Date.ISO(),
		Kind:     e.Kind.String(),
		Category: e.Category,
		Memo:     e.Memo,
		Amount:   e.Amount,
	})
}

func (p *MirrorPublisher) MirrorDelete(ctx context.Context, target core.Person, m ledger.Match) error {
	return p.client.PublishMirror(ctx, &MirrorMessage{
		Op:     OpDelete,
		Person: target.String(),
		Date:   m.Date.ISO(),
		Memo:   m.Memo,
		Amount: m.Amount,
	})
}
