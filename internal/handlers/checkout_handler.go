package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/limitless-llc/checkout-relay/internal/mail"
	"github.com/limitless-llc/checkout-relay/internal/models"
	"github.com/limitless-llc/checkout-relay/internal/service"
)

// CheckoutHandler handles order submission HTTP requests
type CheckoutHandler struct {
	checkout *service.CheckoutService
	log      *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkout *service.CheckoutService, log *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		log:      log,
	}
}

// SubmitOrder handles POST /api/checkout
func (h *CheckoutHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var sub models.OrderSubmission

	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		h.log.Error("failed to decode order submission", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid JSON", h.log)
		return
	}

	orderID, err := h.checkout.Submit(r.Context(), sub)
	if err != nil {
		var upstream *mail.UpstreamError

		switch {
		case errors.Is(err, service.ErrMissingSubject):
			WriteError(w, http.StatusBadRequest, "Bad request: subject is required", h.log)
		case errors.Is(err, service.ErrNoItems):
			WriteError(w, http.StatusBadRequest, "Bad request: items must not be empty", h.log)
		case errors.As(err, &upstream):
			h.log.Error("mail provider rejected submission",
				"status", upstream.Status, "body", upstream.Body)
			WriteError(w, http.StatusBadGateway, upstream.Error(), h.log)
		default:
			h.log.Error("failed to submit order", "error", err)
			WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Server error: %v", err), h.log)
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"orderId": orderID,
	}, h.log)
	h.log.Info("order submitted", "order_id", orderID, "items_count", len(sub.Items))
}
