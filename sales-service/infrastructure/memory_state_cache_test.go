package infrastructure

import (
	"context"
	"testing"
	"time"

	"github.com/motorline/sales-system/sales-service/domain"
	"github.com/motorline/sales-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStateCache(t *testing.T) {
	ctx := context.Background()
	orderID := models.GenerateUUID()
	result := &domain.FulfillmentResult{Order: &domain.Order{ID: orderID, Status: domain.OrderStatusBlocked}}

	t.Run("miss returns nil without error", func(t *testing.T) {
		cache := NewMemoryStateCache()
		got, err := cache.Get(ctx, orderID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("put then get", func(t *testing.T) {
		cache := NewMemoryStateCache()
		require.NoError(t, cache.Put(ctx, orderID, result, time.Minute))

		got, err := cache.Get(ctx, orderID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, domain.OrderStatusBlocked, got.Order.Status)
	})

	t.Run("expired entry reads as miss", func(t *testing.T) {
		cache := NewMemoryStateCache()
		require.NoError(t, cache.Put(ctx, orderID, result, -time.Second))

		got, err := cache.Get(ctx, orderID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("later put overwrites", func(t *testing.T) {
		cache := NewMemoryStateCache()
		require.NoError(t, cache.Put(ctx, orderID, result, time.Minute))
		delivered := &domain.FulfillmentResult{Order: &domain.Order{ID: orderID, Status: domain.OrderStatusDelivered}}
		require.NoError(t, cache.Put(ctx, orderID, delivered, time.Minute))

		got, err := cache.Get(ctx, orderID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, domain.OrderStatusDelivered, got.Order.Status)
	})

	t.Run("delete removes the entry", func(t *testing.T) {
		cache := NewMemoryStateCache()
		require.NoError(t, cache.Put(ctx, orderID, result, time.Minute))
		cache.Delete(orderID)

		got, err := cache.Get(ctx, orderID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
