package domain

import (
	"context"
	"time"

	"github.com/motorline/sales-system/shared/models"
)

// SignalKind identifies the type of an external event addressed to a running
// order saga
type SignalKind string

const (
	SignalCancel          SignalKind = "cancel"
	SignalApproveFinance  SignalKind = "finance_approve"
	SignalRejectFinance   SignalKind = "finance_reject"
	SignalConfirmDelivery SignalKind = "delivery_confirm"
	SignalResupply        SignalKind = "resupply"
)

// Signal is a fire-and-forget event delivered at least once to the saga
// instance addressed by the order ID. Receivers must tolerate replay.
type Signal struct {
	Kind        SignalKind `json:"kind"`
	OrderID     models.ID  `json:"order_id"`
	Actor       string     `json:"actor,omitempty"`
	Recipient   string     `json:"recipient,omitempty"`
	DeliveredBy string     `json:"delivered_by,omitempty"`
	SentAt      time.Time  `json:"sent_at"`
}

// NewSignal creates a signal addressed to an order
func NewSignal(kind SignalKind, orderID models.ID) *Signal {
	return &Signal{Kind: kind, OrderID: orderID, SentAt: time.Now()}
}

// WithActor sets the acting user (finance approvals and rejections)
func (s *Signal) WithActor(actor string) *Signal {
	s.Actor = actor
	return s
}

// WithDelivery sets delivery confirmation details
func (s *Signal) WithDelivery(recipient, deliveredBy string) *Signal {
	s.Recipient = recipient
	s.DeliveredBy = deliveredBy
	return s
}

// SignalChannel is the per-order mailbox through which external actors reach
// a running saga. The channel buffers the latest signal per kind per order, so
// a signal sent before the saga reaches its wait point is still observed.
type SignalChannel interface {
	Send(ctx context.Context, signal *Signal) error
	// Peek returns the buffered signal of the given kind, nil when none.
	Peek(ctx context.Context, orderID models.ID, kind SignalKind) (*Signal, error)
	// Await blocks until a signal of one of the given kinds is observed or the
	// timeout elapses. Returns nil, nil on timeout.
	Await(ctx context.Context, orderID models.ID, kinds []SignalKind, timeout time.Duration) (*Signal, error)
}
