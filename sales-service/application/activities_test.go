package application

import (
	"context"
	"testing"

	"github.com/motorline/sales-system/sales-service/domain"
	"github.com/motorline/sales-system/sales-service/mocks"
	"github.com/motorline/sales-system/shared/models"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type activityMocks struct {
	orders   *mocks.MockOrderRepository
	stock    *mocks.MockStockRepository
	finance  *mocks.MockFinanceRepository
	dispatch *mocks.MockDispatchRepository
}

func newActivityMocks(t *testing.T) (*Activities, *activityMocks) {
	m := &activityMocks{
		orders:   mocks.NewMockOrderRepository(t),
		stock:    mocks.NewMockStockRepository(t),
		finance:  mocks.NewMockFinanceRepository(t),
		dispatch: mocks.NewMockDispatchRepository(t),
	}
	return NewActivities(m.orders, m.stock, m.finance, m.dispatch, zerolog.Nop()), m
}

func placedOrder(t *testing.T, variantID models.ID) *domain.Order {
	t.Helper()
	order, err := domain.PlaceOrder(*testPlaceCommand(variantID, 2))
	require.NoError(t, err)
	return order
}

func TestActivities_GetOrder_RetriesTransientFailures(t *testing.T) {
	activities, m := newActivityMocks(t)
	orderID := models.GenerateUUID()
	order := placedOrder(t, models.GenerateUUID())
	order.ID = orderID

	m.orders.EXPECT().FindByID(mock.Anything, orderID).
		Return(nil, domain.Transient(errors.New("connection reset"))).Once()
	m.orders.EXPECT().FindByID(mock.Anything, orderID).
		Return(order, nil).Once()

	got, err := activities.GetOrder(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, orderID, got.ID)
}

func TestActivities_GetOrder_DomainErrorsFailFast(t *testing.T) {
	activities, m := newActivityMocks(t)
	orderID := models.GenerateUUID()

	// Not found is not retriable: one lookup, no second attempt.
	m.orders.EXPECT().FindByID(mock.Anything, orderID).Return(nil, nil).Once()

	_, err := activities.GetOrder(context.Background(), orderID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestActivities_CheckAndBlockStock_NoMatchLeavesOrderPending(t *testing.T) {
	activities, m := newActivityMocks(t)
	order := placedOrder(t, models.GenerateUUID())

	m.stock.EXPECT().ReserveMatching(mock.Anything, mock.Anything).
		Return(nil, domain.ErrStockNotFound).Once()

	require.NoError(t, activities.CheckAndBlockStock(context.Background(), order))
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.True(t, order.BlockedStockID.IsEmpty())
}

func TestActivities_CheckAndBlockStock_ReleasesOnBlockConflict(t *testing.T) {
	activities, m := newActivityMocks(t)
	order := placedOrder(t, models.GenerateUUID())
	require.NoError(t, order.Cancel())

	reserved := &domain.Stock{ID: models.GenerateUUID(), Quantity: 3, Status: domain.StockStatusAvailable}
	m.stock.EXPECT().ReserveMatching(mock.Anything, mock.Anything).Return(reserved, nil).Once()
	// The order moved on while the reservation was in flight; the units go back.
	m.stock.EXPECT().ReleaseQuantity(mock.Anything, reserved.ID, order.Quantity).Return(nil).Once()

	err := activities.CheckAndBlockStock(context.Background(), order)
	assert.True(t, domain.IsInvalidStatus(err))
}

func TestActivities_CheckAndBlockStock_BlocksAndPersists(t *testing.T) {
	activities, m := newActivityMocks(t)
	order := placedOrder(t, models.GenerateUUID())

	reserved := &domain.Stock{ID: models.GenerateUUID(), Quantity: 3, Status: domain.StockStatusAvailable}
	m.stock.EXPECT().ReserveMatching(mock.Anything, mock.Anything).Return(reserved, nil).Once()
	m.orders.EXPECT().Update(mock.Anything, order).Return(nil).Once()

	require.NoError(t, activities.CheckAndBlockStock(context.Background(), order))
	assert.Equal(t, domain.OrderStatusBlocked, order.Status)
	assert.Equal(t, reserved.ID, order.BlockedStockID)
}

func TestActivities_CreateFinance_ReturnsExistingRecord(t *testing.T) {
	activities, m := newActivityMocks(t)
	order := placedOrder(t, models.GenerateUUID())

	existing := domain.NewFinanceDecision(order.ID, order.CustomerName)
	m.finance.EXPECT().FindByOrderID(mock.Anything, order.ID).Return(existing, nil).Once()

	decision, err := activities.CreateFinance(context.Background(), order)
	require.NoError(t, err)
	assert.Same(t, existing, decision)
}

func TestActivities_ResolveFinance_ReplayedApprovalIsNoOp(t *testing.T) {
	activities, m := newActivityMocks(t)
	order := placedOrder(t, models.GenerateUUID())
	require.NoError(t, order.Block())
	require.NoError(t, order.Allot())

	decision := domain.NewFinanceDecision(order.ID, order.CustomerName)
	require.NoError(t, decision.Approve("underwriter-7"))

	m.finance.EXPECT().FindByOrderID(mock.Anything, order.ID).Return(decision, nil).Once()
	m.finance.EXPECT().Update(mock.Anything, decision).Return(nil).Once()
	// The order is already allotted, so no order update happens.
	m.orders.EXPECT().FindByID(mock.Anything, order.ID).Return(order, nil).Once()

	got, err := activities.ApproveFinance(context.Background(), order.ID, "underwriter-9")
	require.NoError(t, err)
	assert.Equal(t, "underwriter-7", got.DecidedBy)
}

func TestActivities_ConfirmDelivery_IdempotentOnceDelivered(t *testing.T) {
	activities, m := newActivityMocks(t)
	order := placedOrder(t, models.GenerateUUID())
	require.NoError(t, order.Block())
	require.NoError(t, order.Allot())
	require.NoError(t, order.Dispatch())
	require.NoError(t, order.Deliver())

	m.orders.EXPECT().FindByID(mock.Anything, order.ID).Return(order, nil).Once()
	m.dispatch.EXPECT().SaveDelivery(mock.Anything, mock.Anything).Return(nil).Once()

	record, err := activities.ConfirmDelivery(context.Background(), order.ID, "Asha Rao", "driver-3")
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryStatusDelivered, record.Status)
}

func TestActivities_ConfirmDelivery_RejectedBeforeDispatch(t *testing.T) {
	activities, m := newActivityMocks(t)
	order := placedOrder(t, models.GenerateUUID())

	m.orders.EXPECT().FindByID(mock.Anything, order.ID).Return(order, nil).Once()

	_, err := activities.ConfirmDelivery(context.Background(), order.ID, "Asha Rao", "driver-3")
	assert.True(t, domain.IsInvalidStatus(err))
}

func TestActivities_CancelOrder_RestoresBlockedStock(t *testing.T) {
	activities, m := newActivityMocks(t)
	order := placedOrder(t, models.GenerateUUID())
	require.NoError(t, order.Block())
	order.BlockedStockID = models.GenerateUUID()

	m.orders.EXPECT().FindByID(mock.Anything, order.ID).Return(order, nil).Once()
	m.orders.EXPECT().Update(mock.Anything, order).Return(nil).Once()
	m.stock.EXPECT().ReleaseQuantity(mock.Anything, order.BlockedStockID, order.Quantity).Return(nil).Once()

	canceled, err := activities.CancelOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCanceled, canceled.Status)
}

func TestActivities_CancelOrder_PendingOrderSkipsRelease(t *testing.T) {
	activities, m := newActivityMocks(t)
	order := placedOrder(t, models.GenerateUUID())

	m.orders.EXPECT().FindByID(mock.Anything, order.ID).Return(order, nil).Once()
	m.orders.EXPECT().Update(mock.Anything, order).Return(nil).Once()

	canceled, err := activities.CancelOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCanceled, canceled.Status)
}
