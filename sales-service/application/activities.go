package application

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/motorline/sales-system/sales-service/domain"
	"github.com/motorline/sales-system/shared/models"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	activityAttempts = 3
	activityBackoff  = time.Second
)

// Activities are the saga's retryable units of work. Each method is one
// business operation against the persistent store and is idempotent or safely
// retryable. Only transient store failures are retried; domain rule
// violations fail fast.
type Activities struct {
	orders   domain.OrderRepository
	stock    domain.StockRepository
	finance  domain.FinanceRepository
	dispatch domain.DispatchRepository
	logger   zerolog.Logger
}

// NewActivities creates the activity executor set
func NewActivities(
	orders domain.OrderRepository,
	stock domain.StockRepository,
	finance domain.FinanceRepository,
	dispatch domain.DispatchRepository,
	logger zerolog.Logger,
) *Activities {
	return &Activities{
		orders:   orders,
		stock:    stock,
		finance:  finance,
		dispatch: dispatch,
		logger:   logger,
	}
}

func (a *Activities) retry(ctx context.Context, op string, fn func() error) error {
	return retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(activityAttempts),
		retry.Delay(activityBackoff),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(domain.IsTransient),
		retry.OnRetry(func(n uint, err error) {
			a.logger.Warn().Str("activity", op).Uint("attempt", n+1).Err(err).
				Msg("retrying activity")
		}),
	)
}

// SaveOrder persists a freshly placed order
func (a *Activities) SaveOrder(ctx context.Context, order *domain.Order) error {
	return a.retry(ctx, "save_order", func() error {
		return a.orders.Save(ctx, order)
	})
}

// GetOrder loads the current order row
func (a *Activities) GetOrder(ctx context.Context, orderID models.ID) (*domain.Order, error) {
	var order *domain.Order
	err := a.retry(ctx, "get_order", func() error {
		var err error
		order, err = a.orders.FindByID(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// CheckAndBlockStock tries to atomically reserve matching stock for the order.
// On success the order becomes BLOCKED; with no matching stock a manufacturer
// order is implied and the order stays PENDING.
func (a *Activities) CheckAndBlockStock(ctx context.Context, order *domain.Order) error {
	var reserved *domain.Stock
	err := a.retry(ctx, "check_and_block_stock", func() error {
		var err error
		reserved, err = a.stock.ReserveMatching(ctx, domain.StockSelection{
			VariantID:        order.VariantID,
			Colour:           order.Colour,
			FuelType:         order.FuelType,
			TransmissionType: order.TransmissionType,
			Quantity:         order.Quantity,
		})
		if errors.Is(err, domain.ErrStockNotFound) {
			reserved = nil
			return nil
		}
		return err
	})
	if err != nil {
		return err
	}

	if reserved == nil {
		a.logger.Info().Str("order_id", order.ID.String()).
			Msg("no matching stock, manufacturer order placed")
		return nil
	}

	if err := order.Block(); err != nil {
		// Reservation succeeded against an order that moved on; undo it.
		if releaseErr := a.stock.ReleaseQuantity(ctx, reserved.ID, order.Quantity); releaseErr != nil {
			a.logger.Error().Err(releaseErr).Str("order_id", order.ID.String()).
				Msg("failed to release stock after block conflict")
		}
		return err
	}
	order.BlockedStockID = reserved.ID

	return a.retry(ctx, "update_blocked_order", func() error {
		return a.orders.Update(ctx, order)
	})
}

// CreateFinance opens a pending financing record for the order. Re-invocation
// returns the existing record.
func (a *Activities) CreateFinance(ctx context.Context, order *domain.Order) (*domain.FinanceDecision, error) {
	var decision *domain.FinanceDecision
	err := a.retry(ctx, "create_finance", func() error {
		existing, err := a.finance.FindByOrderID(ctx, order.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			decision = existing
			return nil
		}
		decision = domain.NewFinanceDecision(order.ID, order.CustomerName)
		return a.finance.Save(ctx, decision)
	})
	return decision, err
}

// ApproveFinance resolves financing as approved and allots the order
func (a *Activities) ApproveFinance(ctx context.Context, orderID models.ID, actor string) (*domain.FinanceDecision, error) {
	return a.resolveFinance(ctx, orderID, actor, true)
}

// RejectFinance resolves financing as rejected and reverts the order to pending
func (a *Activities) RejectFinance(ctx context.Context, orderID models.ID, actor string) (*domain.FinanceDecision, error) {
	return a.resolveFinance(ctx, orderID, actor, false)
}

func (a *Activities) resolveFinance(ctx context.Context, orderID models.ID, actor string, approve bool) (*domain.FinanceDecision, error) {
	var decision *domain.FinanceDecision
	err := a.retry(ctx, "resolve_finance", func() error {
		var err error
		decision, err = a.finance.FindByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		if decision == nil {
			return domain.ErrFinanceNotFound
		}

		if approve {
			err = decision.Approve(actor)
		} else {
			err = decision.Reject(actor)
		}
		if err != nil {
			return err
		}
		if err := a.finance.Update(ctx, decision); err != nil {
			return err
		}

		order, err := a.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}

		if approve {
			if order.Status == domain.OrderStatusAllotted {
				return nil // signal replay, order already allotted
			}
			if err := order.Allot(); err != nil {
				return err
			}
		} else {
			if order.Status == domain.OrderStatusPending {
				return nil // signal replay, already reverted
			}
			if err := order.RevertToPending(); err != nil {
				return err
			}
		}
		return a.orders.Update(ctx, order)
	})
	return decision, err
}

// InitiateDispatch creates the dispatch record and moves the order to
// DISPATCHED. The order must be ALLOTTED.
func (a *Activities) InitiateDispatch(ctx context.Context, orderID models.ID, dispatchedBy string) (*domain.DispatchRecord, error) {
	var record *domain.DispatchRecord
	err := a.retry(ctx, "initiate_dispatch", func() error {
		order, err := a.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if err := order.Dispatch(); err != nil {
			return err
		}

		record = domain.NewDispatchRecord(orderID, dispatchedBy)
		record.MarkDispatched()
		if err := a.dispatch.SaveDispatch(ctx, record); err != nil {
			return err
		}
		return a.orders.Update(ctx, order)
	})
	return record, err
}

// ConfirmDelivery records the handover and moves the order to DELIVERED.
// Re-invocation with the same recipient data upserts the same record, so
// signal redelivery does not duplicate business effects.
func (a *Activities) ConfirmDelivery(ctx context.Context, orderID models.ID, recipient, deliveredBy string) (*domain.DeliveryRecord, error) {
	var record *domain.DeliveryRecord
	err := a.retry(ctx, "confirm_delivery", func() error {
		order, err := a.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}

		switch order.Status {
		case domain.OrderStatusDispatched:
			if err := order.Deliver(); err != nil {
				return err
			}
			if err := a.orders.Update(ctx, order); err != nil {
				return err
			}
		case domain.OrderStatusDelivered, domain.OrderStatusCompleted:
			// already delivered, fall through to the idempotent upsert
		default:
			return domain.NewInvalidStatusError(orderID, order.Status, domain.OrderStatusDispatched)
		}

		record = domain.NewDeliveryRecord(orderID, recipient, deliveredBy)
		return a.dispatch.SaveDelivery(ctx, record)
	})
	return record, err
}

// CancelOrder terminates the order and restores any blocked stock. Rejected
// once the vehicle has been dispatched.
func (a *Activities) CancelOrder(ctx context.Context, orderID models.ID) (*domain.Order, error) {
	var order *domain.Order
	err := a.retry(ctx, "cancel_order", func() error {
		var err error
		order, err = a.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}

		wasBlocked := order.Status == domain.OrderStatusBlocked
		if err := order.Cancel(); err != nil {
			return err
		}
		if err := a.orders.Update(ctx, order); err != nil {
			return err
		}

		if wasBlocked && !order.BlockedStockID.IsEmpty() {
			if err := a.stock.ReleaseQuantity(ctx, order.BlockedStockID, order.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	return order, err
}

// ComposeResult assembles the best-known aggregate view of an order from the
// persistent store. Missing sub-records stay nil; nothing optimistic is
// fabricated.
func (a *Activities) ComposeResult(ctx context.Context, orderID models.ID) (*domain.FulfillmentResult, error) {
	order, err := a.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	result := &domain.FulfillmentResult{Order: order}
	if result.Finance, err = a.finance.FindByOrderID(ctx, orderID); err != nil {
		return nil, err
	}
	if result.Dispatch, err = a.dispatch.FindDispatchByOrderID(ctx, orderID); err != nil {
		return nil, err
	}
	if result.Delivery, err = a.dispatch.FindDeliveryByOrderID(ctx, orderID); err != nil {
		return nil, err
	}
	return result, nil
}
