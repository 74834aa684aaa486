package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/atinyakov/PatoApp/internal/models"
)

var (
	// ErrUnknownPaymentMethod is returned for a method other than card or mercadopago.
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	// ErrNotAuthenticated is returned when checkout runs without an active session.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// PaymentMethod selects how a simulated payment is collected.
type PaymentMethod string

const (
	MethodCard        PaymentMethod = "card"
	MethodMercadoPago PaymentMethod = "mercadopago"
)

// MaxCardNameLength bounds the card holder name.
const MaxCardNameLength = 30

// DefaultPaymentDelay paces the simulated payment.
const DefaultPaymentDelay = 2 * time.Second

// Card holds the credit card form fields. Nothing is charged.
type Card struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

// Offer describes a subscription plan.
type Offer struct {
	Plan     models.Plan `json:"plan"`
	Duration string      `json:"duration"`
	Price    int         `json:"price"`
	Currency string      `json:"currency"`
	Features []string    `json:"features"`
}

// Offers returns the plan catalogue.
func Offers() []Offer {
	return []Offer{
		{
			Plan:     models.PlanFree,
			Duration: "ilimitado",
			Price:    0,
			Currency: "ARS",
			Features: []string{
				"Acceso al catálogo completo",
				"Información detallada de especies",
				"Filtros básicos de búsqueda",
			},
		},
		{
			Plan:     models.PlanPaid,
			Duration: "1 mes",
			Price:    1499,
			Currency: "ARS",
			Features: []string{
				"Todo lo del plan gratuito",
				"Reproducción de sonidos de especies",
				"Simulaciones interactivas",
				"Contenido exclusivo",
				"Soporte prioritario",
			},
		},
	}
}

// ValidateCard checks the card form: every field is required and the holder
// name is at most MaxCardNameLength characters.
func ValidateCard(c Card) FieldErrors {
	errs := FieldErrors{}
	for _, f := range []struct{ name, value string }{
		{"number", c.Number},
		{"name", c.Name},
		{"expiry", c.Expiry},
		{"cvv", c.CVV},
	} {
		if strings.TrimSpace(f.value) == "" {
			errs[f.name] = f.name + " is required"
		}
	}
	if utf8.RuneCountInString(c.Name) > MaxCardNameLength {
		errs["name"] = fmt.Sprintf("name must not exceed %d characters", MaxCardNameLength)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// PlanUpdater defines the session operations checkout needs.
type PlanUpdater interface {
	CurrentUser() (models.User, bool)
	UpdatePlan(ctx context.Context, plan models.Plan) bool
}

// CheckoutService simulates a premium upgrade payment.
type CheckoutService struct {
	auth  PlanUpdater
	delay time.Duration
	log   *zap.Logger
}

// NewCheckoutService constructs a CheckoutService that waits delay before
// confirming a payment.
func NewCheckoutService(auth PlanUpdater, delay time.Duration, log *zap.Logger) *CheckoutService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CheckoutService{auth: auth, delay: delay, log: log}
}

// Checkout validates the payment form, waits for the simulated processor and
// moves the active session to the paid plan. Field errors are returned for an
// invalid card form; the error result covers an unknown method, a missing
// session and context cancellation.
func (c *CheckoutService) Checkout(ctx context.Context, method PaymentMethod, card Card) (models.User, FieldErrors, error) {
	user, ok := c.auth.CurrentUser()
	if !ok {
		return models.User{}, nil, ErrNotAuthenticated
	}

	switch method {
	case MethodCard:
		if errs := ValidateCard(card); errs != nil {
			return models.User{}, errs, nil
		}
	case MethodMercadoPago:
	default:
		return models.User{}, nil, fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, method)
	}

	c.log.Info("processing payment", zap.String("user_id", user.ID), zap.String("method", string(method)))

	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return models.User{}, nil, ctx.Err()
		case <-timer.C:
		}
	}

	if !c.auth.UpdatePlan(ctx, models.PlanPaid) {
		return models.User{}, nil, ErrNotAuthenticated
	}
	upgraded, _ := c.auth.CurrentUser()
	c.log.Info("payment processed", zap.String("user_id", upgraded.ID))
	return upgraded, nil, nil
}
