package domain

import (
	"context"

	"github.com/motorline/sales-system/shared/models"
	"github.com/pkg/errors"
)

// StockStatus represents availability of a stock row
type StockStatus string

const (
	StockStatusAvailable StockStatus = "AVAILABLE"
	StockStatusDepleted  StockStatus = "DEPLETED"
)

// Stock represents a batch of identical vehicles in the warehouse
type Stock struct {
	ID               models.ID
	VariantID        models.ID
	ModelName        string
	Colour           string
	FuelType         string
	TransmissionType string
	Quantity         int
	Status           StockStatus
	Timestamps       models.Timestamps
}

// Matches reports whether the stock row satisfies the order's selection
func (s *Stock) Matches(colour, fuelType, transmissionType string) bool {
	return s.Status == StockStatusAvailable &&
		s.Colour == colour &&
		s.FuelType == fuelType &&
		s.TransmissionType == transmissionType
}

// Reserve decrements the quantity, marking the row depleted when it hits zero
func (s *Stock) Reserve(quantity int) error {
	if quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	if s.Quantity < quantity {
		return errors.Errorf("insufficient stock: have %d, want %d", s.Quantity, quantity)
	}
	s.Quantity -= quantity
	if s.Quantity == 0 {
		s.Status = StockStatusDepleted
	}
	s.Timestamps = s.Timestamps.Update()
	return nil
}

// Release restores previously blocked quantity (order canceled before dispatch)
func (s *Stock) Release(quantity int) {
	s.Quantity += quantity
	if s.Quantity > 0 {
		s.Status = StockStatusAvailable
	}
	s.Timestamps = s.Timestamps.Update()
}

// StockSelection identifies the stock an order wants to block
type StockSelection struct {
	VariantID        models.ID
	Colour           string
	FuelType         string
	TransmissionType string
	Quantity         int
}

// StockRepository persists stock rows. ReserveMatching must apply the
// read-check-decrement as one atomic unit so two concurrent orders cannot
// double-allocate the same vehicles.
type StockRepository interface {
	Save(ctx context.Context, stock *Stock) error
	FindByID(ctx context.Context, id models.ID) (*Stock, error)
	// ReserveMatching atomically decrements a matching available row and
	// returns it; returns ErrStockNotFound when nothing matches.
	ReserveMatching(ctx context.Context, sel StockSelection) (*Stock, error)
	// ReleaseQuantity atomically restores quantity to a stock row.
	ReleaseQuantity(ctx context.Context, stockID models.ID, quantity int) error
}
