package application

import (
	"context"

	"github.com/motorline/sales-system/sales-service/domain"
	"github.com/motorline/sales-system/shared/events"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// SignalOrder delivers an external event to a running order saga. Sends are
// fire-and-forget and at-least-once: the channel buffers the latest signal per
// kind so a saga that has not reached its wait point yet still observes it.
type SignalOrder struct {
	activities *Activities
	signals    domain.SignalChannel
	sagaStates domain.SagaStateRepository
	cache      domain.StateCache
	publisher  events.Publisher
	logger     zerolog.Logger
}

// NewSignalOrder creates the signal use case
func NewSignalOrder(
	activities *Activities,
	signals domain.SignalChannel,
	sagaStates domain.SagaStateRepository,
	cache domain.StateCache,
	publisher events.Publisher,
	logger zerolog.Logger,
) *SignalOrder {
	return &SignalOrder{
		activities: activities,
		signals:    signals,
		sagaStates: sagaStates,
		cache:      cache,
		publisher:  publisher,
		logger:     logger,
	}
}

// Execute validates and delivers the signal
func (uc *SignalOrder) Execute(ctx context.Context, signal *domain.Signal) error {
	if signal == nil || signal.OrderID.IsEmpty() {
		return errors.New("signal requires an order ID")
	}

	order, err := uc.activities.GetOrder(ctx, signal.OrderID)
	if err != nil {
		return errors.Wrap(err, "failed to load order for signal")
	}

	switch signal.Kind {
	case domain.SignalCancel:
		// Cancellation boundary: once dispatched, cancel is rejected outright.
		if order.Status.AfterDispatch() {
			return domain.ErrCancelAfterDispatch
		}
	case domain.SignalApproveFinance, domain.SignalRejectFinance:
		if signal.Actor == "" {
			return errors.New("finance decision signal requires an actor")
		}
	case domain.SignalConfirmDelivery:
		if signal.Recipient == "" {
			return errors.New("delivery confirmation requires a recipient")
		}
	case domain.SignalResupply:
		// accepted as-is
	default:
		return errors.Errorf("unknown signal kind %q", signal.Kind)
	}

	if err := uc.signals.Send(ctx, signal); err != nil {
		return errors.Wrap(err, "failed to deliver signal")
	}

	uc.logger.Info().Str("order_id", signal.OrderID.String()).
		Str("kind", string(signal.Kind)).Msg("signal delivered")

	if signal.Kind == domain.SignalConfirmDelivery {
		return uc.retryStalledDelivery(ctx, signal)
	}
	return nil
}

// retryStalledDelivery lets a human re-signal complete a saga whose delivery
// confirmation window already elapsed, without resetting the whole saga.
func (uc *SignalOrder) retryStalledDelivery(ctx context.Context, signal *domain.Signal) error {
	state, err := uc.sagaStates.FindByOrderID(ctx, signal.OrderID)
	if err != nil || state == nil || state.Stage != domain.StageStalled {
		return nil // a live saga will observe the buffered signal itself
	}

	record, err := uc.activities.ConfirmDelivery(ctx, signal.OrderID, signal.Recipient, signal.DeliveredBy)
	if err != nil {
		return errors.Wrap(err, "failed to confirm delivery for stalled order")
	}

	state.Advance(domain.StageCompleted)
	if err := uc.sagaStates.Save(ctx, state); err != nil {
		uc.logger.Error().Err(err).Str("order_id", signal.OrderID.String()).
			Msg("failed to checkpoint saga state")
	}

	if result, err := uc.activities.ComposeResult(ctx, signal.OrderID); err == nil {
		if err := uc.cache.Put(ctx, signal.OrderID, result, DefaultCacheTTL); err != nil {
			uc.logger.Warn().Err(err).Str("order_id", signal.OrderID.String()).
				Msg("failed to mirror state to cache")
		}
	}

	if uc.publisher != nil {
		evt := events.NewEvent(signal.OrderID, events.OrderDeliveredEvent, events.OrderLifecycleData{
			OrderID: signal.OrderID,
			Status:  string(record.Status),
			Stage:   string(domain.StageCompleted),
		})
		if err := uc.publisher.Publish(ctx, evt); err != nil {
			uc.logger.Warn().Err(err).Msg("failed to publish delivery event")
		}
	}
	return nil
}
