package client

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/atinyakov/PatoApp/internal/models"
	"github.com/atinyakov/PatoApp/internal/service"
)

// Prompter reads form answers line by line.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter reads answers from in and writes questions to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// Line asks label and returns the trimmed answer.
// The second result is false once the input is exhausted.
func (p *Prompter) Line(label string) (string, bool) {
	return p.Next(label + ": ")
}

// Next writes prefix as is and returns the next trimmed input line.
func (p *Prompter) Next(prefix string) (string, bool) {
	fmt.Fprint(p.out, prefix)
	if !p.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.scanner.Text()), true
}

// Register asks for the sign-up form. Terms count as accepted only for
// a "y" or "yes" answer.
func (p *Prompter) Register() service.RegistrationForm {
	var form service.RegistrationForm
	var terms string
	for _, f := range []struct {
		label string
		field *string
	}{
		{"First name", &form.FirstName},
		{"Last name", &form.LastName},
		{"Email", &form.Email},
		{"Username", &form.Username},
		{"Password", &form.Password},
		{"Confirm password", &form.ConfirmPassword},
		{"Accept terms (y/n)", &terms},
	} {
		answer, ok := p.Line(f.label)
		if !ok {
			break
		}
		*f.field = answer
	}
	switch strings.ToLower(terms) {
	case "y", "yes":
		form.AcceptTerms = true
	}
	return form
}

// patoLabels pairs each form label with its field on a PatoInput.
func patoLabels(in *models.PatoInput) []struct {
	label string
	field *string
} {
	return []struct {
		label string
		field *string
	}{
		{"Name", &in.Name},
		{"Scientific name", &in.ScientificName},
		{"Description", &in.Description},
		{"Behavior", &in.Behavior},
		{"Habitat", &in.Habitat},
		{"Plumage", &in.Plumage},
		{"Diet", &in.Diet},
		{"Group", &in.Group},
		{"Image URL", &in.Image},
		{"Sound URL", &in.Sound},
	}
}

// Pato asks for every field of a new record.
func (p *Prompter) Pato() models.PatoInput {
	var in models.PatoInput
	for _, f := range patoLabels(&in) {
		answer, ok := p.Line(f.label)
		if !ok {
			break
		}
		*f.field = answer
	}
	return in
}

// Patch asks for every field of current; an empty answer keeps the value.
func (p *Prompter) Patch(current models.Pato) models.PatoPatch {
	var patch models.PatoPatch
	fields := []struct {
		label  string
		old    string
		target **string
	}{
		{"Name", current.Name, &patch.Name},
		{"Scientific name", current.ScientificName, &patch.ScientificName},
		{"Description", current.Description, &patch.Description},
		{"Behavior", current.Behavior, &patch.Behavior},
		{"Habitat", current.Habitat, &patch.Habitat},
		{"Plumage", current.Plumage, &patch.Plumage},
		{"Diet", current.Diet, &patch.Diet},
		{"Group", current.Group, &patch.Group},
		{"Image URL", current.Image, &patch.Image},
		{"Sound URL", current.Sound, &patch.Sound},
	}

	for _, f := range fields {
		answer, ok := p.Line(fmt.Sprintf("%s [%s]", f.label, f.old))
		if !ok {
			break
		}
		if answer == "" {
			continue
		}
		value := answer
		*f.target = &value
	}
	return patch
}

// Checkout asks for a payment method and, for cards, the card form.
func (p *Prompter) Checkout() (service.PaymentMethod, service.Card) {
	method, _ := p.Line("Payment method (card/mercadopago)")
	m := service.PaymentMethod(strings.ToLower(method))
	if m != service.MethodCard {
		return m, service.Card{}
	}

	var card service.Card
	for _, f := range []struct {
		label string
		field *string
	}{
		{"Card number", &card.Number},
		{"Name on card", &card.Name},
		{"Expiry (MM/YY)", &card.Expiry},
		{"CVV", &card.CVV},
	} {
		answer, ok := p.Line(f.label)
		if !ok {
			break
		}
		*f.field = answer
	}
	return m, card
}
