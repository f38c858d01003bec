package domain

import (
	"context"

	"github.com/motorline/sales-system/shared/models"
	"github.com/pkg/errors"
)

// OrderStatus represents the lifecycle status of a vehicle order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusBlocked    OrderStatus = "BLOCKED"
	OrderStatusAllotted   OrderStatus = "ALLOTTED"
	OrderStatusDispatched OrderStatus = "DISPATCHED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCanceled   OrderStatus = "CANCELED"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
)

// IsTerminal reports whether no further transitions are allowed
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCanceled || s == OrderStatusCompleted
}

// AfterDispatch reports whether the order already left the warehouse
func (s OrderStatus) AfterDispatch() bool {
	return s == OrderStatusDispatched || s == OrderStatusDelivered || s == OrderStatusCompleted
}

// Order aggregate root. The order identifier is the saga correlation key:
// the orchestrator instance and the signal mailbox are both addressed by it.
type Order struct {
	ID               models.ID
	CustomerName     string
	Phone            string
	Email            string
	Address          string
	ModelName        string
	VariantID        models.ID
	Variant          string
	Colour           string
	FuelType         string
	TransmissionType string
	Quantity         int
	TotalPrice       models.Money
	BookingAmount    models.Money
	PaymentMode      string
	Status           OrderStatus
	// BlockedStockID remembers which stock row was decremented so a
	// cancellation can restore it.
	BlockedStockID models.ID
	Timestamps     models.Timestamps
	Version        models.Version
}

// PlaceOrder factory method
func PlaceOrder(cmd PlaceOrderCommand) (*Order, error) {
	if cmd.Quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	if cmd.CustomerName == "" {
		return nil, errors.New("customer name is required")
	}
	if cmd.VariantID.IsEmpty() {
		return nil, errors.New("variant ID is required")
	}

	return &Order{
		ID:               models.GenerateUUID(),
		CustomerName:     cmd.CustomerName,
		Phone:            cmd.Phone,
		Email:            cmd.Email,
		Address:          cmd.Address,
		ModelName:        cmd.ModelName,
		VariantID:        cmd.VariantID,
		Variant:          cmd.Variant,
		Colour:           cmd.Colour,
		FuelType:         cmd.FuelType,
		TransmissionType: cmd.TransmissionType,
		Quantity:         cmd.Quantity,
		TotalPrice:       cmd.TotalPrice,
		BookingAmount:    cmd.BookingAmount,
		PaymentMode:      cmd.PaymentMode,
		Status:           OrderStatusPending,
		Timestamps:       models.NewTimestamps(),
		Version:          models.NewVersion(),
	}, nil
}

// PlaceOrderCommand carries the customer's vehicle selection
type PlaceOrderCommand struct {
	CustomerName     string       `json:"customer_name"`
	Phone            string       `json:"phone"`
	Email            string       `json:"email"`
	Address          string       `json:"address"`
	ModelName        string       `json:"model_name"`
	VariantID        models.ID    `json:"variant_id"`
	Variant          string       `json:"variant"`
	Colour           string       `json:"colour"`
	FuelType         string       `json:"fuel_type"`
	TransmissionType string       `json:"transmission_type"`
	Quantity         int          `json:"quantity"`
	TotalPrice       models.Money `json:"total_price"`
	BookingAmount    models.Money `json:"booking_amount"`
	PaymentMode      string       `json:"payment_mode"`
}

// Block marks the stock as reserved for this order
func (o *Order) Block() error {
	if o.Status != OrderStatusPending {
		return NewInvalidStatusError(o.ID, o.Status, OrderStatusPending)
	}
	o.transition(OrderStatusBlocked)
	return nil
}

// Allot marks financing approved, stock assigned to the customer
func (o *Order) Allot() error {
	if o.Status != OrderStatusBlocked {
		return NewInvalidStatusError(o.ID, o.Status, OrderStatusBlocked)
	}
	o.transition(OrderStatusAllotted)
	return nil
}

// RevertToPending puts a financing-rejected order back to pending
func (o *Order) RevertToPending() error {
	if o.Status != OrderStatusBlocked {
		return NewInvalidStatusError(o.ID, o.Status, OrderStatusBlocked)
	}
	o.transition(OrderStatusPending)
	return nil
}

// Dispatch marks the vehicle as having left the warehouse
func (o *Order) Dispatch() error {
	if o.Status != OrderStatusAllotted {
		return NewInvalidStatusError(o.ID, o.Status, OrderStatusAllotted)
	}
	o.transition(OrderStatusDispatched)
	return nil
}

// Deliver marks the vehicle as handed over to the customer
func (o *Order) Deliver() error {
	if o.Status != OrderStatusDispatched {
		return NewInvalidStatusError(o.ID, o.Status, OrderStatusDispatched)
	}
	o.transition(OrderStatusDelivered)
	return nil
}

// Cancel terminates the order. Cancellation is rejected once the vehicle
// has been dispatched.
func (o *Order) Cancel() error {
	if o.Status.AfterDispatch() {
		return ErrCancelAfterDispatch
	}
	if o.Status == OrderStatusCanceled {
		return nil // already canceled, signal redelivery is a no-op
	}
	o.transition(OrderStatusCanceled)
	return nil
}

func (o *Order) transition(status OrderStatus) {
	o.Status = status
	o.Timestamps = o.Timestamps.Update()
	o.Version = o.Version.Update()
}

// OrderRepository persists orders
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id models.ID) (*Order, error)
	// FindPendingByVariant returns back-ordered orders for a variant, oldest
	// first, so resupply can be offered in arrival order.
	FindPendingByVariant(ctx context.Context, variantID models.ID) ([]*Order, error)
}
