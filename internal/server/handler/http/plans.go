package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/PatoApp/internal/models"
	"github.com/atinyakov/PatoApp/internal/service"
)

// CheckoutService defines the payment operation required by the HTTP handlers.
type CheckoutService interface {
	Checkout(ctx context.Context, method service.PaymentMethod, card service.Card) (models.User, service.FieldErrors, error)
}

// PlanHandler serves the subscription plans and the simulated checkout.
type PlanHandler struct {
	Checkout CheckoutService
	Logger   *zap.Logger
}

// CheckoutRequest represents the JSON payload for a checkout.
type CheckoutRequest struct {
	Method service.PaymentMethod `json:"method"`
	Card   service.Card          `json:"card"`
}

// Plans handles GET /api/plans.
func (h *PlanHandler) Plans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, service.Offers())
}

// Pay handles POST /api/checkout. A successful payment moves the active
// session to the paid plan and returns the updated account.
func (h *PlanHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, errs, err := h.Checkout.Checkout(r.Context(), req.Method, req.Card)
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	case errors.Is(err, service.ErrUnknownPaymentMethod):
		http.Error(w, "unknown payment method", http.StatusBadRequest)
		return
	case err != nil:
		if h.Logger != nil {
			h.Logger.Warn("checkout aborted", zap.Error(err))
		}
		http.Error(w, "payment not completed", http.StatusServiceUnavailable)
		return
	}

	if errs != nil {
		writeFieldErrors(w, http.StatusBadRequest, errs)
		return
	}

	writeJSON(w, http.StatusOK, user.Public())
}
