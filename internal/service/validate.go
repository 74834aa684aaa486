package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/atinyakov/PatoApp/internal/models"
)

// FieldErrors maps a JSON field name to a human-readable problem.
type FieldErrors map[string]string

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Registration limits.
const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

// RegistrationForm is the sign-up form as submitted by a visitor.
type RegistrationForm struct {
	models.RegisterInput
	ConfirmPassword string `json:"confirmPassword"`
	AcceptTerms     bool   `json:"acceptTerms"`
}

// ValidateRegistration checks the sign-up form. It returns nil when the form is valid.
func ValidateRegistration(f RegistrationForm) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(f.FirstName) == "" {
		errs["firstName"] = "first name is required"
	}
	if strings.TrimSpace(f.LastName) == "" {
		errs["lastName"] = "last name is required"
	}

	switch {
	case strings.TrimSpace(f.Email) == "":
		errs["email"] = "email is required"
	case !emailPattern.MatchString(f.Email):
		errs["email"] = "email is not valid"
	}

	switch {
	case strings.TrimSpace(f.Username) == "":
		errs["username"] = "username is required"
	case utf8.RuneCountInString(f.Username) < MinUsernameLength:
		errs["username"] = "username must be at least 3 characters"
	}

	switch {
	case f.Password == "":
		errs["password"] = "password is required"
	case utf8.RuneCountInString(f.Password) < MinPasswordLength:
		errs["password"] = "password must be at least 6 characters"
	}

	if f.Password != f.ConfirmPassword {
		errs["confirmPassword"] = "passwords do not match"
	}
	if !f.AcceptTerms {
		errs["acceptTerms"] = "terms and conditions must be accepted"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// patoFields lists the admin form fields that must not be blank.
// Image is optional.
func patoFields(in models.PatoInput) []struct{ name, value string } {
	return []struct{ name, value string }{
		{"name", in.Name},
		{"scientificName", in.ScientificName},
		{"group", in.Group},
		{"description", in.Description},
		{"behavior", in.Behavior},
		{"habitat", in.Habitat},
		{"plumage", in.Plumage},
		{"diet", in.Diet},
		{"sound", in.Sound},
	}
}

// ValidatePato checks that every required admin form field is filled in.
func ValidatePato(in models.PatoInput) FieldErrors {
	errs := FieldErrors{}
	for _, f := range patoFields(in) {
		if strings.TrimSpace(f.value) == "" {
			errs[f.name] = f.name + " is required"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidatePatch rejects patches that would blank a required field.
func ValidatePatch(p models.PatoPatch) FieldErrors {
	// Unset fields are filled with a placeholder so only supplied values are checked.
	keep := func(v *string) string {
		if v == nil {
			return "-"
		}
		return *v
	}
	return ValidatePato(models.PatoInput{
		Name:           keep(p.Name),
		ScientificName: keep(p.ScientificName),
		Description:    keep(p.Description),
		Behavior:       keep(p.Behavior),
		Habitat:        keep(p.Habitat),
		Plumage:        keep(p.Plumage),
		Diet:           keep(p.Diet),
		Group:          keep(p.Group),
		Image:          keep(p.Image),
		Sound:          keep(p.Sound),
	})
}
