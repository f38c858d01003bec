package domain

import (
	"context"
	"time"

	"github.com/motorline/sales-system/shared/models"
)

// Stage identifies how far the fulfillment saga has progressed. Persisted
// after every transition so a restarted process resumes instead of re-running
// side-effecting steps.
type Stage string

const (
	StageAllocation       Stage = "allocation"
	StageAwaitingResupply Stage = "awaiting_resupply"
	StageFinancing        Stage = "financing"
	StageAwaitingFinance  Stage = "awaiting_finance"
	StageDispatching      Stage = "dispatching"
	StageAwaitingDelivery Stage = "awaiting_delivery"
	StageCompleted        Stage = "completed"
	StageCanceled         Stage = "canceled"
	StageStalled          Stage = "stalled"
)

// IsFinal reports whether the saga will make no further progress on its own.
// A stalled saga is final until a human re-signals delivery.
func (s Stage) IsFinal() bool {
	return s == StageCompleted || s == StageCanceled || s == StageStalled
}

// WaitKind names what a suspended saga is waiting for
type WaitKind string

const (
	WaitNone     WaitKind = ""
	WaitResupply WaitKind = "resupply_or_cancel"
	WaitFinance  WaitKind = "finance_decision"
	WaitDelivery WaitKind = "delivery_confirmation"
)

// SagaState is the durable checkpoint of one saga instance
type SagaState struct {
	OrderID   models.ID
	Stage     Stage
	Waiting   WaitKind
	Deadline  *time.Time
	UpdatedAt time.Time
}

// NewSagaState opens a checkpoint at the allocation stage
func NewSagaState(orderID models.ID) *SagaState {
	return &SagaState{
		OrderID:   orderID,
		Stage:     StageAllocation,
		UpdatedAt: time.Now(),
	}
}

// Advance moves the checkpoint to a non-waiting stage
func (s *SagaState) Advance(stage Stage) {
	s.Stage = stage
	s.Waiting = WaitNone
	s.Deadline = nil
	s.UpdatedAt = time.Now()
}

// Suspend moves the checkpoint to a waiting stage with a deadline
func (s *SagaState) Suspend(stage Stage, waiting WaitKind, deadline time.Time) {
	s.Stage = stage
	s.Waiting = waiting
	s.Deadline = &deadline
	s.UpdatedAt = time.Now()
}

// SagaStateRepository persists saga checkpoints keyed by order ID
type SagaStateRepository interface {
	Save(ctx context.Context, state *SagaState) error
	// FindByOrderID returns nil, nil when no checkpoint exists.
	FindByOrderID(ctx context.Context, orderID models.ID) (*SagaState, error)
	// FindUnfinished returns every checkpoint whose stage is not final,
	// oldest first, so a restarted process can resume them.
	FindUnfinished(ctx context.Context) ([]*SagaState, error)
}
