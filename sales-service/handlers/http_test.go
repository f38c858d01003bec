package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/motorline/sales-system/sales-service/application"
	"github.com/motorline/sales-system/sales-service/domain"
	"github.com/motorline/sales-system/sales-service/infrastructure"
	"github.com/motorline/sales-system/sales-service/mocks"
	"github.com/motorline/sales-system/shared/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type handlerFixture struct {
	orders *mocks.MockOrderRepository
	router chi.Router
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	orders := mocks.NewMockOrderRepository(t)
	stock := mocks.NewMockStockRepository(t)
	finance := mocks.NewMockFinanceRepository(t)
	dispatch := mocks.NewMockDispatchRepository(t)
	sagaStates := mocks.NewMockSagaStateRepository(t)

	logger := zerolog.Nop()
	cache := infrastructure.NewMemoryStateCache()
	signals := infrastructure.NewMemorySignalChannel()

	activities := application.NewActivities(orders, stock, finance, dispatch, logger)
	dispatchDelivery := application.NewDispatchDelivery(
		activities, cache, signals, sagaStates, nil, application.DefaultSagaTimeouts().DeliveryWait, logger)
	fulfill := application.NewFulfillOrder(
		activities, dispatchDelivery, cache, signals, sagaStates, nil, application.DefaultSagaTimeouts(), logger)
	get := application.NewGetOrder(activities, cache, logger)
	signal := application.NewSignalOrder(activities, signals, sagaStates, cache, nil, logger)

	router := chi.NewRouter()
	NewOrderHandlers(fulfill, get, signal, logger).RegisterRoutes(router)
	return &handlerFixture{orders: orders, router: router}
}

func dispatchedOrder(t *testing.T) *domain.Order {
	t.Helper()
	order, err := domain.PlaceOrder(domain.PlaceOrderCommand{
		CustomerName:     "Asha Rao",
		Phone:            "+91-9000000001",
		Email:            "asha@example.com",
		Address:          "12 Hill Road",
		ModelName:        "Creta",
		VariantID:        models.GenerateUUID(),
		Variant:          "SX",
		Colour:           "white",
		FuelType:         "petrol",
		TransmissionType: "manual",
		Quantity:         1,
		TotalPrice:       models.NewMoney(1850000_00, "INR"),
		BookingAmount:    models.NewMoney(25000_00, "INR"),
		PaymentMode:      "FINANCE",
	})
	require.NoError(t, err)
	require.NoError(t, order.Block())
	require.NoError(t, order.Allot())
	require.NoError(t, order.Dispatch())
	return order
}

func TestPlaceOrder_InvalidBody(t *testing.T) {
	f := newHandlerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder_UnknownOrderIs404(t *testing.T) {
	f := newHandlerFixture(t)
	orderID := models.GenerateUUID()
	f.orders.EXPECT().FindByID(mock.Anything, orderID).Return(nil, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelOrder_AfterDispatchIs409(t *testing.T) {
	f := newHandlerFixture(t)
	order := dispatchedOrder(t)
	f.orders.EXPECT().FindByID(mock.Anything, order.ID).Return(order, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+order.ID.String()+"/cancel", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestApproveFinance_Accepted(t *testing.T) {
	f := newHandlerFixture(t)
	order := dispatchedOrder(t)
	f.orders.EXPECT().FindByID(mock.Anything, order.ID).Return(order, nil).Once()

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/orders/"+order.ID.String()+"/finance/approve",
		strings.NewReader(`{"actor":"underwriter-7"}`))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
}
