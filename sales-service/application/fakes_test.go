package application

import (
	"context"
	"sync"
	"time"

	"github.com/motorline/sales-system/sales-service/domain"
	"github.com/motorline/sales-system/sales-service/infrastructure"
	"github.com/motorline/sales-system/shared/events"
	"github.com/motorline/sales-system/shared/models"
	"github.com/rs/zerolog"
)

// recordingPublisher captures published events for assertions
type recordingPublisher struct {
	mu     sync.Mutex
	events []*events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, evts ...*events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evts...)
	return nil
}

func (p *recordingPublisher) byType(eventType string) []*events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []*events.Event
	for _, evt := range p.events {
		if evt.EventType == eventType {
			out = append(out, evt)
		}
	}
	return out
}

// In-memory repository fakes. The saga touches the store dozens of times per
// run, so stateful fakes keep the tests about behavior instead of call counts.

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[models.ID]domain.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[models.ID]domain.Order)}
}

func (r *memOrderRepo) Save(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = *order
	return nil
}

func (r *memOrderRepo) Update(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = *order
	return nil
}

func (r *memOrderRepo) FindByID(_ context.Context, id models.ID) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	copied := order
	return &copied, nil
}

func (r *memOrderRepo) FindPendingByVariant(_ context.Context, variantID models.ID) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, order := range r.orders {
		if order.VariantID == variantID && order.Status == domain.OrderStatusPending {
			copied := order
			out = append(out, &copied)
		}
	}
	return out, nil
}

type memStockRepo struct {
	mu           sync.Mutex
	stock        map[models.ID]domain.Stock
	reserveCalls int
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{stock: make(map[models.ID]domain.Stock)}
}

func (r *memStockRepo) Save(_ context.Context, stock *domain.Stock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stock[stock.ID] = *stock
	return nil
}

func (r *memStockRepo) FindByID(_ context.Context, id models.ID) (*domain.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stock, ok := r.stock[id]
	if !ok {
		return nil, nil
	}
	copied := stock
	return &copied, nil
}

func (r *memStockRepo) ReserveMatching(_ context.Context, sel domain.StockSelection) (*domain.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reserveCalls++
	for id, stock := range r.stock {
		if stock.VariantID != sel.VariantID || !stock.Matches(sel.Colour, sel.FuelType, sel.TransmissionType) {
			continue
		}
		if stock.Quantity < sel.Quantity {
			continue
		}
		if err := stock.Reserve(sel.Quantity); err != nil {
			return nil, err
		}
		r.stock[id] = stock
		copied := stock
		return &copied, nil
	}
	return nil, domain.ErrStockNotFound
}

func (r *memStockRepo) ReleaseQuantity(_ context.Context, stockID models.ID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stock, ok := r.stock[stockID]
	if !ok {
		return domain.ErrStockNotFound
	}
	stock.Release(quantity)
	r.stock[stockID] = stock
	return nil
}

func (r *memStockRepo) quantityOf(id models.ID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stock[id].Quantity
}

type memFinanceRepo struct {
	mu        sync.Mutex
	decisions map[models.ID]domain.FinanceDecision
}

func newMemFinanceRepo() *memFinanceRepo {
	return &memFinanceRepo{decisions: make(map[models.ID]domain.FinanceDecision)}
}

func (r *memFinanceRepo) Save(_ context.Context, decision *domain.FinanceDecision) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decisions[decision.OrderID] = *decision
	return nil
}

func (r *memFinanceRepo) Update(_ context.Context, decision *domain.FinanceDecision) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decisions[decision.OrderID] = *decision
	return nil
}

func (r *memFinanceRepo) FindByOrderID(_ context.Context, orderID models.ID) (*domain.FinanceDecision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	decision, ok := r.decisions[orderID]
	if !ok {
		return nil, nil
	}
	copied := decision
	return &copied, nil
}

type memDispatchRepo struct {
	mu         sync.Mutex
	dispatches map[models.ID]domain.DispatchRecord
	deliveries map[models.ID]domain.DeliveryRecord
}

func newMemDispatchRepo() *memDispatchRepo {
	return &memDispatchRepo{
		dispatches: make(map[models.ID]domain.DispatchRecord),
		deliveries: make(map[models.ID]domain.DeliveryRecord),
	}
}

func (r *memDispatchRepo) SaveDispatch(_ context.Context, record *domain.DispatchRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dispatches[record.OrderID] = *record
	return nil
}

func (r *memDispatchRepo) FindDispatchByOrderID(_ context.Context, orderID models.ID) (*domain.DispatchRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.dispatches[orderID]
	if !ok {
		return nil, nil
	}
	copied := record
	return &copied, nil
}

func (r *memDispatchRepo) SaveDelivery(_ context.Context, record *domain.DeliveryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries[record.OrderID] = *record
	return nil
}

func (r *memDispatchRepo) FindDeliveryByOrderID(_ context.Context, orderID models.ID) (*domain.DeliveryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.deliveries[orderID]
	if !ok {
		return nil, nil
	}
	copied := record
	return &copied, nil
}

type memSagaRepo struct {
	mu     sync.Mutex
	states map[models.ID]domain.SagaState
}

func newMemSagaRepo() *memSagaRepo {
	return &memSagaRepo{states: make(map[models.ID]domain.SagaState)}
}

func (r *memSagaRepo) Save(_ context.Context, state *domain.SagaState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[state.OrderID] = *state
	return nil
}

func (r *memSagaRepo) FindByOrderID(_ context.Context, orderID models.ID) (*domain.SagaState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[orderID]
	if !ok {
		return nil, nil
	}
	copied := state
	return &copied, nil
}

func (r *memSagaRepo) FindUnfinished(_ context.Context) ([]*domain.SagaState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.SagaState
	for _, state := range r.states {
		if !state.Stage.IsFinal() {
			copied := state
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memSagaRepo) stageOf(orderID models.ID) domain.Stage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.states[orderID].Stage
}

// sagaHarness wires the whole orchestration stack over in-memory plumbing
type sagaHarness struct {
	orders   *memOrderRepo
	stock    *memStockRepo
	finance  *memFinanceRepo
	dispatch *memDispatchRepo
	saga     *memSagaRepo
	cache    *infrastructure.MemoryStateCache
	signals  *infrastructure.MemorySignalChannel
	pub      *recordingPublisher

	activities *Activities
	fulfill    *FulfillOrder
	signal     *SignalOrder
	get        *GetOrder
}

func newSagaHarness(timeouts SagaTimeouts) *sagaHarness {
	h := &sagaHarness{
		orders:   newMemOrderRepo(),
		stock:    newMemStockRepo(),
		finance:  newMemFinanceRepo(),
		dispatch: newMemDispatchRepo(),
		saga:     newMemSagaRepo(),
		cache:    infrastructure.NewMemoryStateCache(),
		signals:  infrastructure.NewMemorySignalChannel(),
		pub:      &recordingPublisher{},
	}

	logger := zerolog.Nop()
	h.activities = NewActivities(h.orders, h.stock, h.finance, h.dispatch, logger)
	dispatchDelivery := NewDispatchDelivery(
		h.activities, h.cache, h.signals, h.saga, h.pub, timeouts.DeliveryWait, logger)
	h.fulfill = NewFulfillOrder(
		h.activities, dispatchDelivery, h.cache, h.signals, h.saga, h.pub, timeouts, logger)
	h.signal = NewSignalOrder(h.activities, h.signals, h.saga, h.cache, h.pub, logger)
	h.get = NewGetOrder(h.activities, h.cache, logger)
	return h
}

// restart swaps in a fresh orchestrator over the same durable stores, the way
// a new process would come up after a crash.
func (h *sagaHarness) restart(timeouts SagaTimeouts) {
	logger := zerolog.Nop()
	dispatchDelivery := NewDispatchDelivery(
		h.activities, h.cache, h.signals, h.saga, h.pub, timeouts.DeliveryWait, logger)
	h.fulfill = NewFulfillOrder(
		h.activities, dispatchDelivery, h.cache, h.signals, h.saga, h.pub, timeouts, logger)
}

func fastTimeouts() SagaTimeouts {
	return SagaTimeouts{
		ResupplyWait: 150 * time.Millisecond,
		FinanceWait:  150 * time.Millisecond,
		DeliveryWait: 150 * time.Millisecond,
	}
}

func (h *sagaHarness) seedStock(quantity int, variantID models.ID) models.ID {
	stock := &domain.Stock{
		ID:               models.GenerateUUID(),
		VariantID:        variantID,
		ModelName:        "Creta",
		Colour:           "white",
		FuelType:         "petrol",
		TransmissionType: "manual",
		Quantity:         quantity,
		Status:           domain.StockStatusAvailable,
		Timestamps:       models.NewTimestamps(),
	}
	_ = h.stock.Save(context.Background(), stock)
	return stock.ID
}

func testPlaceCommand(variantID models.ID, quantity int) *domain.PlaceOrderCommand {
	return &domain.PlaceOrderCommand{
		CustomerName:     "Asha Rao",
		Phone:            "+91-9000000001",
		Email:            "asha@example.com",
		Address:          "12 Hill Road",
		ModelName:        "Creta",
		VariantID:        variantID,
		Variant:          "SX",
		Colour:           "white",
		FuelType:         "petrol",
		TransmissionType: "manual",
		Quantity:         quantity,
		TotalPrice:       models.NewMoney(1850000_00, "INR"),
		BookingAmount:    models.NewMoney(25000_00, "INR"),
		PaymentMode:      "FINANCE",
	}
}
