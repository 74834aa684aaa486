package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/PatoApp/internal/models"
	"github.com/atinyakov/PatoApp/internal/service"
)

type mockPlanUpdater struct {
	CurrentUserFunc func() (models.User, bool)
	UpdatePlanFunc  func(ctx context.Context, plan models.Plan) bool
}

func (m *mockPlanUpdater) CurrentUser() (models.User, bool) {
	return m.CurrentUserFunc()
}

func (m *mockPlanUpdater) UpdatePlan(ctx context.Context, plan models.Plan) bool {
	return m.UpdatePlanFunc(ctx, plan)
}

func validCard() service.Card {
	return service.Card{Number: "4111 1111 1111 1111", Name: "MARIA GONZALEZ", Expiry: "12/29", CVV: "123"}
}

func TestValidateCard(t *testing.T) {
	assert.Nil(t, service.ValidateCard(validCard()))

	errs := service.ValidateCard(service.Card{})
	assert.Len(t, errs, 4)

	long := validCard()
	long.Name = strings.Repeat("a", service.MaxCardNameLength+1)
	errs = service.ValidateCard(long)
	assert.Contains(t, errs["name"], "30")

	exact := validCard()
	exact.Name = strings.Repeat("ñ", service.MaxCardNameLength)
	assert.Nil(t, service.ValidateCard(exact))
}

func TestCheckout_WithAuthService(t *testing.T) {
	ctx := context.Background()
	auth := service.NewAuthService(ctx, nil, nil)
	_, ok := auth.Login(ctx, "maria@example.com", "123456")
	require.True(t, ok)

	svc := service.NewCheckoutService(auth, 0, nil)
	user, errs, err := svc.Checkout(ctx, service.MethodMercadoPago, service.Card{})

	require.NoError(t, err)
	assert.Nil(t, errs)
	assert.Equal(t, models.PlanPaid, user.Plan)
	current, _ := auth.CurrentUser()
	assert.Equal(t, models.PlanPaid, current.Plan)
}

func TestCheckout_Errors(t *testing.T) {
	loggedIn := func() (models.User, bool) { return models.User{ID: "2", Plan: models.PlanFree}, true }

	tests := []struct {
		name       string
		current    func() (models.User, bool)
		method     service.PaymentMethod
		card       service.Card
		wantErr    error
		wantFields bool
	}{
		{
			name:    "anonymous",
			current: func() (models.User, bool) { return models.User{}, false },
			method:  service.MethodCard,
			card:    validCard(),
			wantErr: service.ErrNotAuthenticated,
		},
		{
			name:    "unknown method",
			current: loggedIn,
			method:  "bitcoin",
			wantErr: service.ErrUnknownPaymentMethod,
		},
		{
			name:       "invalid card",
			current:    loggedIn,
			method:     service.MethodCard,
			card:       service.Card{Number: "4111"},
			wantFields: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated := false
			auth := &mockPlanUpdater{
				CurrentUserFunc: tt.current,
				UpdatePlanFunc: func(context.Context, models.Plan) bool {
					updated = true
					return true
				},
			}
			svc := service.NewCheckoutService(auth, 0, nil)

			_, errs, err := svc.Checkout(context.Background(), tt.method, tt.card)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "err = %v; want %v", err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantFields, errs != nil)
			assert.False(t, updated, "plan must not change")
		})
	}
}

func TestCheckout_CardSuccess(t *testing.T) {
	var gotPlan models.Plan
	plan := models.PlanFree
	auth := &mockPlanUpdater{
		CurrentUserFunc: func() (models.User, bool) { return models.User{ID: "2", Plan: plan}, true },
		UpdatePlanFunc: func(_ context.Context, p models.Plan) bool {
			gotPlan = p
			plan = p
			return true
		},
	}
	svc := service.NewCheckoutService(auth, time.Millisecond, nil)

	user, errs, err := svc.Checkout(context.Background(), service.MethodCard, validCard())
	require.NoError(t, err)
	assert.Nil(t, errs)
	assert.Equal(t, models.PlanPaid, gotPlan)
	assert.Equal(t, models.PlanPaid, user.Plan)
}

func TestCheckout_Cancelled(t *testing.T) {
	updated := false
	auth := &mockPlanUpdater{
		CurrentUserFunc: func() (models.User, bool) { return models.User{ID: "2"}, true },
		UpdatePlanFunc: func(context.Context, models.Plan) bool {
			updated = true
			return true
		},
	}
	svc := service.NewCheckoutService(auth, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := svc.Checkout(ctx, service.MethodMercadoPago, service.Card{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, updated)
}

func TestOffers(t *testing.T) {
	offers := service.Offers()
	require.Len(t, offers, 2)
	assert.Equal(t, models.PlanFree, offers[0].Plan)
	assert.Equal(t, models.PlanPaid, offers[1].Plan)
	assert.Equal(t, 1499, offers[1].Price)
}
