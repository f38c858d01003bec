package domain

import (
	"context"
	"time"

	"github.com/motorline/sales-system/shared/models"
)

// FulfillmentResult is the saga's externally visible value: the order and its
// sub-records at their most recently known state. Never all-nil once the saga
// has started.
type FulfillmentResult struct {
	Order    *Order           `json:"order"`
	Finance  *FinanceDecision `json:"finance,omitempty"`
	Dispatch *DispatchRecord  `json:"dispatch,omitempty"`
	Delivery *DeliveryRecord  `json:"delivery,omitempty"`
}

// OverallStatus derives the externally observed status by precedence:
// delivered > dispatched > allotted > raw order status. Precedence, not
// timestamps, so a stale or missing intermediate record cannot regress the
// visible status.
func (r *FulfillmentResult) OverallStatus() OrderStatus {
	if r.Delivery != nil && r.Delivery.Status == DeliveryStatusDelivered {
		return OrderStatusDelivered
	}
	if r.Dispatch != nil && r.Dispatch.Status == DispatchStatusDispatched {
		return OrderStatusDispatched
	}
	if r.Finance != nil && r.Finance.Status == FinanceStatusApproved {
		return OrderStatusAllotted
	}
	if r.Order != nil {
		return r.Order.Status
	}
	return OrderStatusPending
}

// OrderID returns the correlation key of the result
func (r *FulfillmentResult) OrderID() models.ID {
	if r.Order != nil {
		return r.Order.ID
	}
	return ""
}

// StateCache mirrors the saga's last published result with a TTL. It is
// advisory: the running orchestrator is the source of truth, the cache only
// accelerates duplicate requests and survives orchestrator unavailability.
type StateCache interface {
	Put(ctx context.Context, orderID models.ID, result *FulfillmentResult, ttl time.Duration) error
	// Get returns nil, nil when no entry exists.
	Get(ctx context.Context, orderID models.ID) (*FulfillmentResult, error)
}
