package domain

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/motorline/sales-system/shared/models"
)

var (
	// ErrOrderNotFound indicates the order does not exist
	ErrOrderNotFound = errors.New("order not found")

	// ErrStockNotFound indicates no stock row exists for the variant
	ErrStockNotFound = errors.New("stock not found")

	// ErrFinanceNotFound indicates no finance decision exists for the order
	ErrFinanceNotFound = errors.New("finance decision not found")

	// ErrFinanceAlreadyDecided indicates a decision signal contradicts an
	// already resolved financing record
	ErrFinanceAlreadyDecided = errors.New("finance decision already resolved")

	// ErrCancelAfterDispatch indicates a cancel signal arrived after the order
	// was dispatched; the order must complete or go through returns instead
	ErrCancelAfterDispatch = errors.New("order already dispatched, cancellation rejected")

	// ErrDeliveryNotConfirmed indicates the delivery confirmation window
	// elapsed; the order is stalled and retriable by re-signaling
	ErrDeliveryNotConfirmed = errors.New("delivery not confirmed in time")
)

// InvalidStatusError indicates an order was not in the status a transition requires.
// It is a domain rule violation and is never retried.
type InvalidStatusError struct {
	OrderID models.ID
	Current OrderStatus
	Wanted  OrderStatus
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("order %s is %s, wanted %s", e.OrderID, e.Current, e.Wanted)
}

// NewInvalidStatusError creates an InvalidStatusError
func NewInvalidStatusError(orderID models.ID, current, wanted OrderStatus) error {
	return &InvalidStatusError{OrderID: orderID, Current: current, Wanted: wanted}
}

// IsInvalidStatus checks whether err is a status rule violation
func IsInvalidStatus(err error) bool {
	var target *InvalidStatusError
	return errors.As(err, &target)
}

// transientError marks an infrastructure failure worth retrying
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Transient wraps an error as retriable (store or network unavailability)
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient checks whether err should be retried by the activity layer
func IsTransient(err error) bool {
	var target *transientError
	return errors.As(err, &target)
}

// IsStalled checks whether err leaves the order stalled but retriable by
// a human re-signal rather than failed
func IsStalled(err error) bool {
	return errors.Is(err, ErrDeliveryNotConfirmed)
}

// StageError annotates a failure with the order and the fulfillment stage it
// happened in, so every surfaced error names both.
type StageError struct {
	OrderID   models.ID
	Stage     Stage
	Retriable bool
	Err       error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("order %s failed at stage %s: %v", e.OrderID, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// NewStageError creates a StageError
func NewStageError(orderID models.ID, stage Stage, retriable bool, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{OrderID: orderID, Stage: stage, Retriable: retriable, Err: err}
}
