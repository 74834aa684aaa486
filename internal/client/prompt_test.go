package client

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/PatoApp/internal/models"
	"github.com/atinyakov/PatoApp/internal/service"
)

func TestPrompter_Pato(t *testing.T) {
	input := "Pato Overo\nMareca sibilatrix\nDesc\nComp\nLagunas\nGris\nHerbívoro\nMareca\n\nhttps://example.com/overo.mp3\n"
	var out bytes.Buffer

	in := NewPrompter(strings.NewReader(input), &out).Pato()

	assert.Equal(t, models.PatoInput{
		Name: "Pato Overo", ScientificName: "Mareca sibilatrix", Description: "Desc",
		Behavior: "Comp", Habitat: "Lagunas", Plumage: "Gris", Diet: "Herbívoro",
		Group: "Mareca", Image: "", Sound: "https://example.com/overo.mp3",
	}, in)
	assert.Contains(t, out.String(), "Scientific name: ")
}

func TestPrompter_PatoShortInput(t *testing.T) {
	in := NewPrompter(strings.NewReader("Solo nombre\n"), &bytes.Buffer{}).Pato()
	assert.Equal(t, "Solo nombre", in.Name)
	assert.Empty(t, in.Sound)
}

func TestPrompter_Register(t *testing.T) {
	tests := []struct {
		name      string
		terms     string
		wantTerms bool
	}{
		{"accepted", "Y", true},
		{"accepted long", "yes", true},
		{"declined", "n", false},
		{"blank", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "Lucía\nFernández\nlucia@example.com\nluciaf\nsecreto\nsecreto\n" + tt.terms + "\n"
			var out bytes.Buffer

			form := NewPrompter(strings.NewReader(input), &out).Register()

			assert.Equal(t, service.RegistrationForm{
				RegisterInput: models.RegisterInput{
					FirstName: "Lucía", LastName: "Fernández", Email: "lucia@example.com",
					Username: "luciaf", Password: "secreto",
				},
				ConfirmPassword: "secreto",
				AcceptTerms:     tt.wantTerms,
			}, form)
			assert.Contains(t, out.String(), "Confirm password: ")
		})
	}
}

func TestPrompter_RegisterShortInput(t *testing.T) {
	form := NewPrompter(strings.NewReader("Lucía\n"), &bytes.Buffer{}).Register()
	assert.Equal(t, "Lucía", form.FirstName)
	assert.Empty(t, form.Email)
	assert.False(t, form.AcceptTerms)
}

func TestPrompter_Patch(t *testing.T) {
	current := models.DefaultPatos()[0]
	input := "\n\n\n\n  Costas  \n\n\n\n\n\n"
	var out bytes.Buffer

	patch := NewPrompter(strings.NewReader(input), &out).Patch(current)

	require.NotNil(t, patch.Habitat)
	assert.Equal(t, "Costas", *patch.Habitat)
	assert.Nil(t, patch.Name)
	assert.Nil(t, patch.Sound)
	assert.Contains(t, out.String(), "Name ["+current.Name+"]")

	updated := patch.Apply(current)
	assert.Equal(t, current.Name, updated.Name)
	assert.Equal(t, "Costas", updated.Habitat)
}

func TestPrompter_Checkout(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantMethod service.PaymentMethod
		wantCard   service.Card
	}{
		{"mercadopago", "MercadoPago\n", service.MethodMercadoPago, service.Card{}},
		{
			name:       "card",
			input:      "card\n4111 1111 1111 1111\nMARIA\n12/29\n123\n",
			wantMethod: service.MethodCard,
			wantCard:   service.Card{Number: "4111 1111 1111 1111", Name: "MARIA", Expiry: "12/29", CVV: "123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method, card := NewPrompter(strings.NewReader(tt.input), &bytes.Buffer{}).Checkout()
			assert.Equal(t, tt.wantMethod, method)
			assert.Equal(t, tt.wantCard, card)
		})
	}
}
