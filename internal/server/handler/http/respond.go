package http

import (
	"encoding/json"
	"net/http"

	"github.com/atinyakov/PatoApp/internal/service"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// fieldErrorsResponse is the body returned for rejected forms.
type fieldErrorsResponse struct {
	Errors service.FieldErrors `json:"errors"`
}

func writeFieldErrors(w http.ResponseWriter, status int, errs service.FieldErrors) {
	writeJSON(w, status, fieldErrorsResponse{Errors: errs})
}
