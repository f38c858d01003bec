package application

import (
	"context"

	"github.com/motorline/sales-system/sales-service/domain"
	"github.com/motorline/sales-system/shared/models"
	"github.com/rs/zerolog"
)

// GetOrder reads an order's aggregate state. It prefers the state cache and
// falls back to composing the aggregate directly from the persistent store
// when no cache entry exists. The fallback repopulates the cache and never
// fabricates an optimistic status.
type GetOrder struct {
	activities *Activities
	cache      domain.StateCache
	logger     zerolog.Logger
}

// NewGetOrder creates the read use case
func NewGetOrder(activities *Activities, cache domain.StateCache, logger zerolog.Logger) *GetOrder {
	return &GetOrder{activities: activities, cache: cache, logger: logger}
}

// Execute returns the last known aggregate for the order
func (uc *GetOrder) Execute(ctx context.Context, orderID models.ID) (*domain.FulfillmentResult, error) {
	if cached, err := uc.cache.Get(ctx, orderID); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		uc.logger.Debug().Err(err).Str("order_id", orderID.String()).Msg("state cache read failed")
	}

	result, err := uc.activities.ComposeResult(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Put(ctx, orderID, result, DefaultCacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("order_id", orderID.String()).
			Msg("failed to repopulate state cache")
	}
	return result, nil
}

// PeekCachedResult returns the cached aggregate without touching the store.
// Returns nil, nil when no entry exists.
func (uc *GetOrder) PeekCachedResult(ctx context.Context, orderID models.ID) (*domain.FulfillmentResult, error) {
	return uc.cache.Get(ctx, orderID)
}
