package application

import (
	"context"
	"time"

	"github.com/motorline/sales-system/sales-service/domain"
	"github.com/motorline/sales-system/shared/events"
	"github.com/motorline/sales-system/shared/models"
	"github.com/rs/zerolog"
)

// DispatchDelivery is the nested dispatch-and-delivery saga, started only
// once financing resolves to an approval. It dispatches the vehicle, then
// waits for an external delivery confirmation before completing.
type DispatchDelivery struct {
	activities   *Activities
	cache        domain.StateCache
	signals      domain.SignalChannel
	sagaStates   domain.SagaStateRepository
	publisher    events.Publisher
	deliveryWait time.Duration
	cacheTTL     time.Duration
	logger       zerolog.Logger
}

// NewDispatchDelivery creates the dispatch sub-saga
func NewDispatchDelivery(
	activities *Activities,
	cache domain.StateCache,
	signals domain.SignalChannel,
	sagaStates domain.SagaStateRepository,
	publisher events.Publisher,
	deliveryWait time.Duration,
	logger zerolog.Logger,
) *DispatchDelivery {
	return &DispatchDelivery{
		activities:   activities,
		cache:        cache,
		signals:      signals,
		sagaStates:   sagaStates,
		publisher:    publisher,
		deliveryWait: deliveryWait,
		cacheTTL:     DefaultCacheTTL,
		logger:       logger,
	}
}

// Execute runs dispatch and delivery for an allotted order. Partial results
// are returned alongside errors so the caller can publish a best-effort
// aggregate. A delivery confirmation that never arrives leaves the order
// stalled (domain.ErrDeliveryNotConfirmed), retriable by re-signaling, not
// failed.
func (uc *DispatchDelivery) Execute(ctx context.Context, orderID models.ID, dispatchedBy string, state *domain.SagaState) (*domain.DispatchRecord, *domain.DeliveryRecord, error) {
	// Re-read the order; a concurrent actor may have moved it since allotment.
	order, err := uc.activities.GetOrder(ctx, orderID)
	if err != nil {
		return nil, nil, domain.NewStageError(orderID, domain.StageDispatching, true, err)
	}

	var dispatchRec *domain.DispatchRecord
	switch order.Status {
	case domain.OrderStatusAllotted:
		dispatchRec, err = uc.activities.InitiateDispatch(ctx, orderID, dispatchedBy)
		if err != nil {
			return nil, nil, domain.NewStageError(orderID, domain.StageDispatching, false, err)
		}
		// Postcondition, not a transient fault: dispatch must leave the
		// record DISPATCHED.
		if dispatchRec.Status != domain.DispatchStatusDispatched {
			return dispatchRec, nil, domain.NewStageError(orderID, domain.StageDispatching, false,
				domain.NewInvalidStatusError(orderID, order.Status, domain.OrderStatusDispatched))
		}
		uc.logger.Info().Str("order_id", orderID.String()).Msg("vehicle dispatched")
		uc.publish(ctx, events.NewEvent(orderID, events.OrderDispatchedEvent, events.OrderLifecycleData{
			OrderID: orderID,
			Status:  string(domain.OrderStatusDispatched),
			Stage:   string(domain.StageDispatching),
			Actor:   dispatchedBy,
		}))
	case domain.OrderStatusDispatched, domain.OrderStatusDelivered, domain.OrderStatusCompleted:
		// Idempotent no-op: dispatch already happened, pick up its record.
		uc.logger.Warn().Str("order_id", orderID.String()).Str("status", string(order.Status)).
			Msg("order already dispatched, skipping dispatch")
		dispatchRec, err = uc.activities.dispatch.FindDispatchByOrderID(ctx, orderID)
		if err != nil {
			return nil, nil, domain.NewStageError(orderID, domain.StageDispatching, true, err)
		}
	default:
		return nil, nil, domain.NewStageError(orderID, domain.StageDispatching, false,
			domain.NewInvalidStatusError(orderID, order.Status, domain.OrderStatusAllotted))
	}

	uc.mirror(ctx, orderID)

	deadline := time.Now().Add(uc.deliveryWait)
	if state.Stage == domain.StageAwaitingDelivery && state.Deadline != nil {
		deadline = *state.Deadline
	}
	state.Suspend(domain.StageAwaitingDelivery, domain.WaitDelivery, deadline)
	uc.checkpoint(ctx, state)
	uc.publish(ctx, events.NewEvent(orderID, events.DeliveryConfirmRequestEvent, events.OrderLifecycleData{
		OrderID: orderID,
		Status:  string(domain.OrderStatusDispatched),
		Stage:   string(domain.StageAwaitingDelivery),
	}))

	sig, err := uc.signals.Await(ctx, orderID,
		[]domain.SignalKind{domain.SignalConfirmDelivery}, time.Until(deadline))
	if err != nil {
		return dispatchRec, nil, domain.NewStageError(orderID, domain.StageAwaitingDelivery, true, err)
	}
	if sig == nil {
		uc.logger.Warn().Str("order_id", orderID.String()).Msg("delivery confirmation window elapsed")
		return dispatchRec, nil, domain.NewStageError(orderID, domain.StageAwaitingDelivery, true,
			domain.ErrDeliveryNotConfirmed)
	}

	deliveryRec, err := uc.activities.ConfirmDelivery(ctx, orderID, sig.Recipient, sig.DeliveredBy)
	if err != nil {
		return dispatchRec, nil, domain.NewStageError(orderID, domain.StageAwaitingDelivery, false, err)
	}

	uc.logger.Info().Str("order_id", orderID.String()).Str("recipient", sig.Recipient).
		Msg("delivery confirmed")
	uc.mirror(ctx, orderID)
	return dispatchRec, deliveryRec, nil
}

// mirror publishes the current store view of the order to the state cache
func (uc *DispatchDelivery) mirror(ctx context.Context, orderID models.ID) {
	result, err := uc.activities.ComposeResult(ctx, orderID)
	if err != nil {
		uc.logger.Warn().Err(err).Str("order_id", orderID.String()).Msg("failed to compose cache mirror")
		return
	}
	if err := uc.cache.Put(ctx, orderID, result, uc.cacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("order_id", orderID.String()).Msg("failed to mirror state to cache")
	}
}

func (uc *DispatchDelivery) checkpoint(ctx context.Context, state *domain.SagaState) {
	if err := uc.sagaStates.Save(ctx, state); err != nil {
		uc.logger.Error().Err(err).Str("order_id", state.OrderID.String()).
			Msg("failed to checkpoint saga state")
	}
}

func (uc *DispatchDelivery) publish(ctx context.Context, evt *events.Event) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.logger.Warn().Err(err).Str("topic", evt.Topic.String()).Msg("failed to publish event")
	}
}
