package domain

import (
	"context"

	"github.com/motorline/sales-system/shared/models"
)

// FinanceStatus represents the state of a financing decision
type FinanceStatus string

const (
	FinanceStatusPending  FinanceStatus = "PENDING"
	FinanceStatusApproved FinanceStatus = "APPROVED"
	FinanceStatusRejected FinanceStatus = "REJECTED"
)

// SystemTimeoutActor attributes an implicit rejection to the system when no
// financing decision arrives within the wait window
const SystemTimeoutActor = "SYSTEM_TIMEOUT"

// FinanceDecision is the financing record for an order, one-to-one with the
// order while the saga is active. It is decided at most once; replayed
// decision signals are no-ops.
type FinanceDecision struct {
	OrderID      models.ID
	CustomerName string
	Status       FinanceStatus
	DecidedBy    string
	Timestamps   models.Timestamps
}

// NewFinanceDecision opens a pending financing record for the order
func NewFinanceDecision(orderID models.ID, customerName string) *FinanceDecision {
	return &FinanceDecision{
		OrderID:      orderID,
		CustomerName: customerName,
		Status:       FinanceStatusPending,
		Timestamps:   models.NewTimestamps(),
	}
}

// Approve resolves the decision. Approving an already approved decision is a
// no-op so signal redelivery cannot change the record.
func (f *FinanceDecision) Approve(actor string) error {
	if f.Status == FinanceStatusApproved {
		return nil
	}
	if f.Status == FinanceStatusRejected {
		return ErrFinanceAlreadyDecided
	}
	f.Status = FinanceStatusApproved
	f.DecidedBy = actor
	f.Timestamps = f.Timestamps.Update()
	return nil
}

// Reject resolves the decision, idempotently on redelivery
func (f *FinanceDecision) Reject(actor string) error {
	if f.Status == FinanceStatusRejected {
		return nil
	}
	if f.Status == FinanceStatusApproved {
		return ErrFinanceAlreadyDecided
	}
	f.Status = FinanceStatusRejected
	f.DecidedBy = actor
	f.Timestamps = f.Timestamps.Update()
	return nil
}

// FinanceRepository persists financing decisions keyed by order ID
type FinanceRepository interface {
	Save(ctx context.Context, decision *FinanceDecision) error
	Update(ctx context.Context, decision *FinanceDecision) error
	FindByOrderID(ctx context.Context, orderID models.ID) (*FinanceDecision, error)
}
