package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/motorline/sales-system/sales-service/application"
	"github.com/motorline/sales-system/sales-service/domain"
	"github.com/motorline/sales-system/shared/models"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// OrderHandlers contains order HTTP handlers
type OrderHandlers struct {
	fulfillOrder *application.FulfillOrder
	getOrder     *application.GetOrder
	signalOrder  *application.SignalOrder
	logger       zerolog.Logger
}

// NewOrderHandlers creates new order handlers
func NewOrderHandlers(
	fulfillOrder *application.FulfillOrder,
	getOrder *application.GetOrder,
	signalOrder *application.SignalOrder,
	logger zerolog.Logger,
) *OrderHandlers {
	return &OrderHandlers{
		fulfillOrder: fulfillOrder,
		getOrder:     getOrder,
		signalOrder:  signalOrder,
		logger:       logger,
	}
}

// PlaceOrder accepts a vehicle order and starts its fulfillment saga. The
// saga outlives the request by days, so it runs detached and the response
// carries the freshly placed order.
func (h *OrderHandlers) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var cmd domain.PlaceOrderCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.fulfillOrder.Place(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	go func() {
		// Detached from the request context: the saga keeps running after
		// the response is written.
		if _, err := h.fulfillOrder.StartOrResume(context.Background(), order.ID); err != nil {
			h.logger.Error().Err(err).Str("order_id", order.ID.String()).
				Msg("fulfillment saga finished with error")
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(order)
}

// GetOrder returns the order's last known aggregate state
func (h *OrderHandlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		http.Error(w, "Order ID is required", http.StatusBadRequest)
		return
	}

	result, err := h.getOrder.Execute(r.Context(), models.ID(orderID))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orderResponse(result))
}

// CancelOrder signals cancellation to the running saga
func (h *OrderHandlers) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		http.Error(w, "Order ID is required", http.StatusBadRequest)
		return
	}

	signal := domain.NewSignal(domain.SignalCancel, models.ID(orderID))
	if err := h.signalOrder.Execute(r.Context(), signal); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

type financeDecisionRequest struct {
	Actor string `json:"actor"`
}

// ApproveFinance signals a financing approval to the running saga
func (h *OrderHandlers) ApproveFinance(w http.ResponseWriter, r *http.Request) {
	h.financeDecision(w, r, domain.SignalApproveFinance)
}

// RejectFinance signals a financing rejection to the running saga
func (h *OrderHandlers) RejectFinance(w http.ResponseWriter, r *http.Request) {
	h.financeDecision(w, r, domain.SignalRejectFinance)
}

func (h *OrderHandlers) financeDecision(w http.ResponseWriter, r *http.Request, kind domain.SignalKind) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		http.Error(w, "Order ID is required", http.StatusBadRequest)
		return
	}

	var req financeDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	signal := domain.NewSignal(kind, models.ID(orderID)).WithActor(req.Actor)
	if err := h.signalOrder.Execute(r.Context(), signal); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

type confirmDeliveryRequest struct {
	Recipient   string `json:"recipient"`
	DeliveredBy string `json:"delivered_by"`
}

// ConfirmDelivery signals the delivery handover to the running saga
func (h *OrderHandlers) ConfirmDelivery(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		http.Error(w, "Order ID is required", http.StatusBadRequest)
		return
	}

	var req confirmDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	signal := domain.NewSignal(domain.SignalConfirmDelivery, models.ID(orderID)).
		WithDelivery(req.Recipient, req.DeliveredBy)
	if err := h.signalOrder.Execute(r.Context(), signal); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// RegisterRoutes registers order routes
func (h *OrderHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.PlaceOrder)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetOrder)
				r.Post("/cancel", h.CancelOrder)
				r.Post("/finance/approve", h.ApproveFinance)
				r.Post("/finance/reject", h.RejectFinance)
				r.Post("/delivery/confirm", h.ConfirmDelivery)
			})
		})
	})
}

// orderStateResponse is the read model returned by GetOrder
type orderStateResponse struct {
	*domain.FulfillmentResult
	OverallStatus string `json:"overall_status"`
}

func orderResponse(result *domain.FulfillmentResult) *orderStateResponse {
	return &orderStateResponse{
		FulfillmentResult: result,
		OverallStatus:     string(result.OverallStatus()),
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrCancelAfterDispatch):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrFinanceAlreadyDecided), domain.IsInvalidStatus(err):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
