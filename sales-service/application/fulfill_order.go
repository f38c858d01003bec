package application

import (
	"context"
	"time"

	"github.com/motorline/sales-system/sales-service/domain"
	"github.com/motorline/sales-system/shared/events"
	"github.com/motorline/sales-system/shared/models"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is how long published aggregates stay in the state cache
const DefaultCacheTTL = time.Hour

// SagaTimeouts bounds the saga's three suspension points
type SagaTimeouts struct {
	ResupplyWait time.Duration
	FinanceWait  time.Duration
	DeliveryWait time.Duration
}

// DefaultSagaTimeouts are the production wait windows
func DefaultSagaTimeouts() SagaTimeouts {
	return SagaTimeouts{
		ResupplyWait: 24 * time.Hour,
		FinanceWait:  7 * 24 * time.Hour,
		DeliveryWait: 7 * 24 * time.Hour,
	}
}

// FulfillOrder orchestrates the order fulfillment saga: stock allocation,
// financing, dispatch and delivery. One live run per order ID; concurrent
// callers for the same order attach to the in-flight run. Every externally
// visible transition is mirrored into the state cache and checkpointed in the
// saga state store so a restarted process resumes instead of re-running
// side-effecting steps.
type FulfillOrder struct {
	activities       *Activities
	dispatchDelivery *DispatchDelivery
	cache            domain.StateCache
	signals          domain.SignalChannel
	sagaStates       domain.SagaStateRepository
	publisher        events.Publisher
	timeouts         SagaTimeouts
	cacheTTL         time.Duration
	logger           zerolog.Logger

	inflight singleflight.Group
}

// NewFulfillOrder creates the saga orchestrator
func NewFulfillOrder(
	activities *Activities,
	dispatchDelivery *DispatchDelivery,
	cache domain.StateCache,
	signals domain.SignalChannel,
	sagaStates domain.SagaStateRepository,
	publisher events.Publisher,
	timeouts SagaTimeouts,
	logger zerolog.Logger,
) *FulfillOrder {
	return &FulfillOrder{
		activities:       activities,
		dispatchDelivery: dispatchDelivery,
		cache:            cache,
		signals:          signals,
		sagaStates:       sagaStates,
		publisher:        publisher,
		timeouts:         timeouts,
		cacheTTL:         DefaultCacheTTL,
		logger:           logger,
	}
}

// Execute places a new order and drives it through the saga
func (uc *FulfillOrder) Execute(ctx context.Context, cmd *domain.PlaceOrderCommand) (*domain.FulfillmentResult, error) {
	order, err := uc.Place(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return uc.StartOrResume(ctx, order.ID)
}

// Place persists a new order and announces it, without starting the saga.
// Callers that cannot block across the saga's wait windows place first and
// drive the saga from their own goroutine.
func (uc *FulfillOrder) Place(ctx context.Context, cmd *domain.PlaceOrderCommand) (*domain.Order, error) {
	order, err := domain.PlaceOrder(*cmd)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order request")
	}
	if err := uc.activities.SaveOrder(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to save order")
	}

	uc.publish(ctx, events.NewEvent(order.ID, events.OrderPlacedEvent, events.OrderLifecycleData{
		OrderID:  order.ID,
		Status:   string(order.Status),
		Stage:    string(domain.StageAllocation),
		Quantity: order.Quantity,
	}))
	return order, nil
}

// StartOrResume attaches to the saga instance for the order, starting or
// resuming it if none is running. The cache holds intermediate aggregates
// from suspended runs, so it only answers for settled sagas; a non-final
// checkpoint always goes through the run so buffered signals are observed.
func (uc *FulfillOrder) StartOrResume(ctx context.Context, orderID models.ID) (*domain.FulfillmentResult, error) {
	state, err := uc.sagaStates.FindByOrderID(ctx, orderID)
	if err != nil {
		uc.logger.Debug().Err(err).Str("order_id", orderID.String()).Msg("saga state read failed")
	}
	if state != nil && state.Stage.IsFinal() {
		cached, err := uc.cache.Get(ctx, orderID)
		if err != nil {
			uc.logger.Debug().Err(err).Str("order_id", orderID.String()).Msg("state cache read failed")
		}
		if cached != nil {
			uc.logger.Info().Str("order_id", orderID.String()).Msg("returning cached fulfillment state")
			return cached, nil
		}
	}

	v, err, _ := uc.inflight.Do(orderID.String(), func() (interface{}, error) {
		return uc.run(ctx, orderID)
	})
	result, _ := v.(*domain.FulfillmentResult)
	return result, err
}

// ResumeSuspended re-drives every saga whose checkpoint a previous process
// left non-final. Called once at startup; each saga runs detached.
func (uc *FulfillOrder) ResumeSuspended(ctx context.Context) (int, error) {
	states, err := uc.sagaStates.FindUnfinished(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to load suspended sagas")
	}

	for _, state := range states {
		orderID := state.OrderID
		uc.logger.Info().Str("order_id", orderID.String()).
			Str("stage", string(state.Stage)).Msg("resuming suspended saga")
		go func() {
			if _, err := uc.StartOrResume(ctx, orderID); err != nil {
				uc.logger.Error().Err(err).Str("order_id", orderID.String()).
					Msg("resumed saga finished with error")
			}
		}()
	}
	return len(states), nil
}

func (uc *FulfillOrder) run(ctx context.Context, orderID models.ID) (*domain.FulfillmentResult, error) {
	order, err := uc.activities.GetOrder(ctx, orderID)
	if err != nil {
		return nil, domain.NewStageError(orderID, domain.StageAllocation, false, err)
	}

	state, err := uc.sagaStates.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, domain.NewStageError(orderID, domain.StageAllocation, true, err)
	}
	if state == nil {
		state = domain.NewSagaState(orderID)
		uc.checkpoint(ctx, state)
	}

	// A settled saga only yields its last known aggregate.
	if state.Stage.IsFinal() {
		result, err := uc.activities.ComposeResult(ctx, orderID)
		if err != nil {
			return nil, domain.NewStageError(orderID, state.Stage, true, err)
		}
		uc.putCache(ctx, result)
		return result, nil
	}

	if state.Stage == domain.StageAllocation || state.Stage == domain.StageAwaitingResupply {
		result, done, err := uc.allocate(ctx, order, state)
		if done || err != nil {
			return result, err
		}
	}

	return uc.forkJoin(ctx, order, state)
}

// allocate runs the stock allocation stage. done reports that the saga
// terminated here (canceled, or pending on a manufacturer order).
func (uc *FulfillOrder) allocate(ctx context.Context, order *domain.Order, state *domain.SagaState) (*domain.FulfillmentResult, bool, error) {
	if state.Stage == domain.StageAllocation && order.Status == domain.OrderStatusPending {
		if err := uc.activities.CheckAndBlockStock(ctx, order); err != nil {
			return uc.degraded(ctx, order.ID, state, domain.NewStageError(order.ID, domain.StageAllocation, false, err))
		}
	}

	// Cancellation checkpoint: a cancel buffered before or during allocation
	// wins as long as nothing has been dispatched.
	if sig, err := uc.signals.Peek(ctx, order.ID, domain.SignalCancel); err == nil && sig != nil {
		return uc.cancel(ctx, order.ID, state)
	}

	if order.Status == domain.OrderStatusBlocked {
		uc.logger.Info().Str("order_id", order.ID.String()).Msg("stock blocked for order")
		uc.publish(ctx, events.NewEvent(order.ID, events.OrderBlockedEvent, events.OrderLifecycleData{
			OrderID:  order.ID,
			Status:   string(order.Status),
			Stage:    string(domain.StageAllocation),
			Quantity: order.Quantity,
		}))
		uc.putCache(ctx, &domain.FulfillmentResult{Order: order})
		state.Advance(domain.StageFinancing)
		uc.checkpoint(ctx, state)
		return nil, false, nil
	}

	// No matching stock: a manufacturer order is on its way. Wait, bounded,
	// for cancellation or resupply before giving the caller a PENDING answer.
	deadline := time.Now().Add(uc.timeouts.ResupplyWait)
	if state.Stage == domain.StageAwaitingResupply && state.Deadline != nil {
		deadline = *state.Deadline
	}
	state.Suspend(domain.StageAwaitingResupply, domain.WaitResupply, deadline)
	uc.checkpoint(ctx, state)
	uc.publish(ctx, events.NewEvent(order.ID, events.OrderPendingResupplyEvent, events.OrderLifecycleData{
		OrderID: order.ID,
		Status:  string(order.Status),
		Stage:   string(domain.StageAwaitingResupply),
	}))
	uc.putCache(ctx, &domain.FulfillmentResult{Order: order})

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		sig, err := uc.signals.Await(ctx, order.ID, []domain.SignalKind{domain.SignalCancel, domain.SignalResupply}, remaining)
		if err != nil {
			return uc.degraded(ctx, order.ID, state, domain.NewStageError(order.ID, domain.StageAwaitingResupply, true, err))
		}
		if sig == nil {
			break // window elapsed
		}
		if sig.Kind == domain.SignalCancel {
			return uc.cancel(ctx, order.ID, state)
		}

		// Resupply arrived, re-evaluate stock.
		if err := uc.activities.CheckAndBlockStock(ctx, order); err != nil {
			return uc.degraded(ctx, order.ID, state, domain.NewStageError(order.ID, domain.StageAllocation, false, err))
		}
		if order.Status == domain.OrderStatusBlocked {
			uc.publish(ctx, events.NewEvent(order.ID, events.OrderBlockedEvent, events.OrderLifecycleData{
				OrderID: order.ID,
				Status:  string(order.Status),
				Stage:   string(domain.StageAllocation),
			}))
			uc.putCache(ctx, &domain.FulfillmentResult{Order: order})
			state.Advance(domain.StageFinancing)
			uc.checkpoint(ctx, state)
			return nil, false, nil
		}
	}

	// Still pending: the saga settles here, the manufacturer order stands.
	result := &domain.FulfillmentResult{Order: order}
	state.Advance(domain.StageCompleted)
	uc.checkpoint(ctx, state)
	uc.putCache(ctx, result)
	return result, true, nil
}

// forkJoin runs the financing path and the dispatch path concurrently and
// joins both before the saga finishes. The dispatch path only proceeds once
// financing resolves to an approval.
func (uc *FulfillOrder) forkJoin(ctx context.Context, order *domain.Order, state *domain.SagaState) (*domain.FulfillmentResult, error) {
	var (
		finance     *domain.FinanceDecision
		dispatchRec *domain.DispatchRecord
		deliveryRec *domain.DeliveryRecord
	)

	// Resuming past financing: only the dispatch path is left.
	if state.Stage == domain.StageDispatching || state.Stage == domain.StageAwaitingDelivery {
		var err error
		finance, err = uc.activities.finance.FindByOrderID(ctx, order.ID)
		if err != nil {
			return uc.finalize(ctx, order.ID, state, finance, nil, nil, domain.NewStageError(order.ID, state.Stage, true, err))
		}
		dispatchRec, deliveryRec, err = uc.dispatchDelivery.Execute(ctx, order.ID, "system", state)
		return uc.finalize(ctx, order.ID, state, finance, dispatchRec, deliveryRec, err)
	}

	financeCh := make(chan *domain.FinanceDecision, 1)
	var cancelRequested bool
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(financeCh)
		decision, canceled, err := uc.runFinancing(gctx, order, state)
		if err != nil {
			return err
		}
		if canceled {
			// The empty close releases the dispatch branch without dispatching.
			cancelRequested = true
			return nil
		}
		finance = decision
		financeCh <- decision
		return nil
	})

	g.Go(func() error {
		decision, ok := <-financeCh
		if !ok || decision.Status != domain.FinanceStatusApproved {
			return nil
		}
		var err error
		dispatchRec, deliveryRec, err = uc.dispatchDelivery.Execute(gctx, order.ID, "system", state)
		return err
	})

	err := g.Wait()
	if err == nil && cancelRequested {
		result, _, cerr := uc.cancel(ctx, order.ID, state)
		return result, cerr
	}
	return uc.finalize(ctx, order.ID, state, finance, dispatchRec, deliveryRec, err)
}

// runFinancing creates the financing record and waits, bounded, for a
// decision. No decision within the window is an implicit rejection attributed
// to the system: never allot without confirmation. A cancel observed during
// the wait wins over any financing decision; canceled reports it so the
// caller terminates the saga instead of dispatching.
func (uc *FulfillOrder) runFinancing(ctx context.Context, order *domain.Order, state *domain.SagaState) (decision *domain.FinanceDecision, canceled bool, _ error) {
	decision, err := uc.activities.CreateFinance(ctx, order)
	if err != nil {
		return nil, false, domain.NewStageError(order.ID, domain.StageFinancing, true, err)
	}
	uc.publish(ctx, events.NewEvent(order.ID, events.FinanceCreatedEvent, events.FinanceDecisionData{
		OrderID: order.ID,
		Status:  string(decision.Status),
	}))
	uc.putCache(ctx, &domain.FulfillmentResult{Order: order, Finance: decision})

	deadline := time.Now().Add(uc.timeouts.FinanceWait)
	if state.Stage == domain.StageAwaitingFinance && state.Deadline != nil {
		deadline = *state.Deadline
	}
	state.Suspend(domain.StageAwaitingFinance, domain.WaitFinance, deadline)
	uc.checkpoint(ctx, state)

	// Cancel is listed first so it wins when buffered alongside a decision.
	sig, err := uc.signals.Await(ctx, order.ID,
		[]domain.SignalKind{domain.SignalCancel, domain.SignalApproveFinance, domain.SignalRejectFinance},
		time.Until(deadline))
	if err != nil {
		return nil, false, domain.NewStageError(order.ID, domain.StageAwaitingFinance, true, err)
	}

	switch {
	case sig != nil && sig.Kind == domain.SignalCancel:
		uc.logger.Info().Str("order_id", order.ID.String()).Msg("cancel received while awaiting financing")
		return nil, true, nil
	case sig != nil && sig.Kind == domain.SignalApproveFinance:
		decision, err = uc.activities.ApproveFinance(ctx, order.ID, sig.Actor)
	case sig != nil && sig.Kind == domain.SignalRejectFinance:
		decision, err = uc.activities.RejectFinance(ctx, order.ID, sig.Actor)
	default:
		uc.logger.Warn().Str("order_id", order.ID.String()).Msg("financing decision window elapsed, rejecting")
		decision, err = uc.activities.RejectFinance(ctx, order.ID, domain.SystemTimeoutActor)
	}
	if err != nil {
		return nil, false, domain.NewStageError(order.ID, domain.StageAwaitingFinance, false, err)
	}

	eventType := events.FinanceRejectedEvent
	if decision.Status == domain.FinanceStatusApproved {
		eventType = events.FinanceApprovedEvent
	}
	uc.publish(ctx, events.NewEvent(order.ID, eventType, events.FinanceDecisionData{
		OrderID: order.ID,
		Status:  string(decision.Status),
		Actor:   decision.DecidedBy,
	}))

	return decision, false, nil
}

// cancel terminates the saga through the cancel activity
func (uc *FulfillOrder) cancel(ctx context.Context, orderID models.ID, state *domain.SagaState) (*domain.FulfillmentResult, bool, error) {
	order, err := uc.activities.CancelOrder(ctx, orderID)
	if err != nil {
		result, _, derr := uc.degraded(ctx, orderID, state, domain.NewStageError(orderID, state.Stage, false, err))
		return result, true, derr
	}

	uc.logger.Info().Str("order_id", orderID.String()).Msg("order canceled")
	uc.publish(ctx, events.NewEvent(orderID, events.OrderCanceledEvent, events.OrderLifecycleData{
		OrderID: orderID,
		Status:  string(order.Status),
		Stage:   string(state.Stage),
	}))

	result := &domain.FulfillmentResult{Order: order}
	state.Advance(domain.StageCanceled)
	uc.checkpoint(ctx, state)
	uc.putCache(ctx, result)
	return result, true, nil
}

// finalize assembles and publishes the saga's final aggregate. On failure the
// aggregate is rebuilt, best-effort, from whatever the store holds, and still
// cached so duplicate requests observe the same degraded answer.
func (uc *FulfillOrder) finalize(
	ctx context.Context,
	orderID models.ID,
	state *domain.SagaState,
	finance *domain.FinanceDecision,
	dispatchRec *domain.DispatchRecord,
	deliveryRec *domain.DeliveryRecord,
	runErr error,
) (*domain.FulfillmentResult, error) {
	if runErr != nil {
		if domain.IsStalled(runErr) {
			state.Advance(domain.StageStalled)
			uc.checkpoint(ctx, state)
			status := string(domain.OrderStatusDispatched)
			if order, err := uc.activities.GetOrder(ctx, orderID); err == nil {
				status = string(order.Status)
			}
			uc.publish(ctx, events.NewEvent(orderID, events.OrderStalledEvent, events.OrderLifecycleData{
				OrderID: orderID,
				Status:  status,
				Stage:   string(domain.StageStalled),
			}))
		}
		result, _, err := uc.degraded(ctx, orderID, state, runErr)
		return result, err
	}

	order, err := uc.activities.GetOrder(ctx, orderID)
	if err != nil {
		result, _, derr := uc.degraded(ctx, orderID, state, domain.NewStageError(orderID, state.Stage, true, err))
		return result, derr
	}

	result := &domain.FulfillmentResult{
		Order:    order,
		Finance:  finance,
		Dispatch: dispatchRec,
		Delivery: deliveryRec,
	}

	state.Advance(domain.StageCompleted)
	uc.checkpoint(ctx, state)
	uc.putCache(ctx, result)

	if result.OverallStatus() == domain.OrderStatusDelivered {
		uc.publish(ctx, events.NewEvent(orderID, events.OrderDeliveredEvent, events.OrderLifecycleData{
			OrderID: orderID,
			Status:  string(domain.OrderStatusDelivered),
			Stage:   string(domain.StageCompleted),
		}))
	}

	uc.logger.Info().
		Str("order_id", orderID.String()).
		Str("status", string(result.OverallStatus())).
		Msg("fulfillment saga completed")
	return result, nil
}

// degraded builds a best-effort aggregate from the store after a failure.
// Nothing optimistic is fabricated; the degraded answer is cached so
// duplicates see the same state instead of re-attempting the whole saga.
func (uc *FulfillOrder) degraded(ctx context.Context, orderID models.ID, state *domain.SagaState, runErr error) (*domain.FulfillmentResult, bool, error) {
	uc.logger.Error().Err(runErr).Str("order_id", orderID.String()).
		Str("stage", string(state.Stage)).Msg("fulfillment saga degraded")

	result, err := uc.activities.ComposeResult(ctx, orderID)
	if err != nil {
		return nil, true, runErr
	}
	uc.putCache(ctx, result)
	return result, true, runErr
}

func (uc *FulfillOrder) checkpoint(ctx context.Context, state *domain.SagaState) {
	if err := uc.sagaStates.Save(ctx, state); err != nil {
		uc.logger.Error().Err(err).Str("order_id", state.OrderID.String()).
			Str("stage", string(state.Stage)).Msg("failed to checkpoint saga state")
	}
}

func (uc *FulfillOrder) putCache(ctx context.Context, result *domain.FulfillmentResult) {
	if result == nil || result.Order == nil {
		return
	}
	if err := uc.cache.Put(ctx, result.Order.ID, result, uc.cacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("order_id", result.Order.ID.String()).
			Msg("failed to mirror state to cache")
	}
}

func (uc *FulfillOrder) publish(ctx context.Context, evt *events.Event) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.logger.Warn().Err(err).Str("topic", evt.Topic.String()).Msg("failed to publish event")
	}
}
