package events

import "github.com/motorline/sales-system/shared/models"

// Order fulfillment lifecycle event types
const (
	OrderPlacedEvent            = "order.placed"
	OrderBlockedEvent           = "order.blocked"
	OrderPendingResupplyEvent   = "order.pending_resupply"
	OrderCanceledEvent          = "order.canceled"
	FinanceCreatedEvent         = "order.finance.created"
	FinanceApprovedEvent        = "order.finance.approved"
	FinanceRejectedEvent        = "order.finance.rejected"
	OrderDispatchedEvent        = "order.dispatched"
	OrderDeliveredEvent         = "order.delivered"
	OrderStalledEvent           = "order.stalled"
	StockReplenishedEvent       = "stock.replenished"
	DeliveryConfirmRequestEvent = "order.delivery.confirm_requested"
)

// OrderLifecycleData is the payload for order status transition events
type OrderLifecycleData struct {
	OrderID  models.ID `json:"order_id"`
	Status   string    `json:"status"`
	Stage    string    `json:"stage"`
	Actor    string    `json:"actor,omitempty"`
	Quantity int       `json:"quantity,omitempty"`
}

// FinanceDecisionData is the payload for finance decision events
type FinanceDecisionData struct {
	OrderID models.ID `json:"order_id"`
	Status  string    `json:"status"`
	Actor   string    `json:"actor"`
}

// StockReplenishedData is the payload published by the manufacturer feed
// when back-ordered stock arrives
type StockReplenishedData struct {
	VariantID        models.ID `json:"variant_id"`
	Colour           string    `json:"colour"`
	FuelType         string    `json:"fuel_type"`
	TransmissionType string    `json:"transmission_type"`
	Quantity         int       `json:"quantity"`
}
