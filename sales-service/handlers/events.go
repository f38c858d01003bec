package handlers

import (
	"context"

	"github.com/motorline/sales-system/sales-service/domain"
	"github.com/motorline/sales-system/shared/events"
	"github.com/motorline/sales-system/shared/models"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// OrderEventHandlers consumes external events addressed to the sales service
type OrderEventHandlers struct {
	stock   domain.StockRepository
	orders  domain.OrderRepository
	signals domain.SignalChannel
	logger  zerolog.Logger
}

// NewOrderEventHandlers creates new order event handlers
func NewOrderEventHandlers(
	stock domain.StockRepository,
	orders domain.OrderRepository,
	signals domain.SignalChannel,
	logger zerolog.Logger,
) *OrderEventHandlers {
	return &OrderEventHandlers{
		stock:   stock,
		orders:  orders,
		signals: signals,
		logger:  logger,
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *OrderEventHandlers) HandlerID() string {
	return "sales-service-event-handler"
}

// Handle implements the events.EventHandler interface
func (h *OrderEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.EventType {
	case events.StockReplenishedEvent:
		return h.HandleStockReplenished(ctx, event)
	default:
		// Unknown event type, ignore
		return nil
	}
}

// HandleStockReplenished registers arrived manufacturer stock and wakes every
// back-ordered saga waiting on the variant
func (h *OrderEventHandlers) HandleStockReplenished(ctx context.Context, event *events.Event) error {
	var data events.StockReplenishedData
	if err := event.UnmarshalPayload(&data); err != nil {
		return errors.Wrap(err, "invalid stock replenished payload")
	}
	if data.VariantID.IsEmpty() || data.Quantity <= 0 {
		return errors.New("stock replenished event requires a variant and a positive quantity")
	}

	stock := &domain.Stock{
		ID:               models.GenerateUUID(),
		VariantID:        data.VariantID,
		Colour:           data.Colour,
		FuelType:         data.FuelType,
		TransmissionType: data.TransmissionType,
		Quantity:         data.Quantity,
		Status:           domain.StockStatusAvailable,
		Timestamps:       models.NewTimestamps(),
	}
	if err := h.stock.Save(ctx, stock); err != nil {
		return errors.Wrap(err, "failed to register replenished stock")
	}

	h.logger.Info().Str("variant_id", data.VariantID.String()).Int("quantity", data.Quantity).
		Msg("stock replenished")

	pending, err := h.orders.FindPendingByVariant(ctx, data.VariantID)
	if err != nil {
		return errors.Wrap(err, "failed to find back-ordered orders")
	}

	for _, order := range pending {
		signal := domain.NewSignal(domain.SignalResupply, order.ID)
		if err := h.signals.Send(ctx, signal); err != nil {
			h.logger.Error().Err(err).Str("order_id", order.ID.String()).
				Msg("failed to send resupply signal")
		}
	}
	return nil
}
