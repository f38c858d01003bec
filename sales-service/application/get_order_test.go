package application

import (
	"context"
	"testing"

	"github.com/motorline/sales-system/sales-service/domain"
	"github.com/motorline/sales-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrder_UnknownOrder(t *testing.T) {
	h := newSagaHarness(fastTimeouts())

	_, err := h.get.Execute(context.Background(), models.GenerateUUID())
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestGetOrder_FallsBackToStoreAndRepopulatesCache(t *testing.T) {
	h := newSagaHarness(fastTimeouts())
	ctx := context.Background()
	variantID := models.GenerateUUID()
	h.seedStock(5, variantID)

	order, err := h.fulfill.Place(ctx, testPlaceCommand(variantID, 1))
	require.NoError(t, err)

	// Nothing cached yet, the read composes from the store.
	cached, err := h.get.PeekCachedResult(ctx, order.ID)
	require.NoError(t, err)
	require.Nil(t, cached)

	result, err := h.get.Execute(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, result.OverallStatus())

	cached, err = h.get.PeekCachedResult(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, order.ID, cached.Order.ID)
}

func TestGetOrder_PrefersCachedAggregate(t *testing.T) {
	h := newSagaHarness(fastTimeouts())
	ctx := context.Background()
	variantID := models.GenerateUUID()
	h.seedStock(5, variantID)

	order, err := h.fulfill.Place(ctx, testPlaceCommand(variantID, 1))
	require.NoError(t, err)
	require.NoError(t, h.signals.Send(ctx, domain.NewSignal(domain.SignalRejectFinance, order.ID).WithActor("underwriter-7")))

	_, err = h.fulfill.StartOrResume(ctx, order.ID)
	require.NoError(t, err)

	result, err := h.get.Execute(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, result.OverallStatus())
	require.NotNil(t, result.Finance)
	assert.Equal(t, domain.FinanceStatusRejected, result.Finance.Status)
}
