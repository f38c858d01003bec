package domain

import (
	"context"
	"time"

	"github.com/motorline/sales-system/shared/models"
)

// DispatchStatus represents the state of a dispatch record
type DispatchStatus string

const (
	DispatchStatusPreparing  DispatchStatus = "PREPARING"
	DispatchStatusDispatched DispatchStatus = "DISPATCHED"
)

// DeliveryStatus represents the state of a delivery record
type DeliveryStatus string

const (
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
)

// DispatchRecord is created when the dispatch sub-process sends the vehicle out
type DispatchRecord struct {
	OrderID      models.ID
	Status       DispatchStatus
	DispatchedBy string
	DispatchedAt time.Time
}

// NewDispatchRecord creates a dispatch record in the preparing state
func NewDispatchRecord(orderID models.ID, dispatchedBy string) *DispatchRecord {
	return &DispatchRecord{
		OrderID:      orderID,
		Status:       DispatchStatusPreparing,
		DispatchedBy: dispatchedBy,
		DispatchedAt: time.Now(),
	}
}

// MarkDispatched records that the vehicle left the warehouse
func (d *DispatchRecord) MarkDispatched() {
	d.Status = DispatchStatusDispatched
	d.DispatchedAt = time.Now()
}

// DeliveryRecord is created only after a delivery confirmation signal
type DeliveryRecord struct {
	OrderID     models.ID
	Status      DeliveryStatus
	Recipient   string
	DeliveredBy string
	DeliveredAt time.Time
}

// NewDeliveryRecord creates a delivered record from the confirmation signal
func NewDeliveryRecord(orderID models.ID, recipient, deliveredBy string) *DeliveryRecord {
	return &DeliveryRecord{
		OrderID:     orderID,
		Status:      DeliveryStatusDelivered,
		Recipient:   recipient,
		DeliveredBy: deliveredBy,
		DeliveredAt: time.Now(),
	}
}

// DispatchRepository persists dispatch and delivery records keyed by order ID
type DispatchRepository interface {
	SaveDispatch(ctx context.Context, record *DispatchRecord) error
	FindDispatchByOrderID(ctx context.Context, orderID models.ID) (*DispatchRecord, error)
	// SaveDelivery upserts so that an idempotent re-confirmation with the same
	// recipient data yields the same stored record.
	SaveDelivery(ctx context.Context, record *DeliveryRecord) error
	FindDeliveryByOrderID(ctx context.Context, orderID models.ID) (*DeliveryRecord, error)
}
