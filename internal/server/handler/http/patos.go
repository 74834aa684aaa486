package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/PatoApp/internal/middleware"
	"github.com/atinyakov/PatoApp/internal/models"
	"github.com/atinyakov/PatoApp/internal/service"
)

// groupAll is the group filter value meaning "any group".
const groupAll = "all"

// CatalogService defines the duck catalog operations required by the
// HTTP handlers.
type CatalogService interface {
	Search(ctx context.Context, query string, filters models.SearchFilters) []models.Pato
	Get(ctx context.Context, id string) (models.Pato, bool)
	Add(ctx context.Context, in models.PatoInput) models.Pato
	Update(ctx context.Context, id string, patch models.PatoPatch) bool
	Delete(ctx context.Context, id string) bool
	Groups(ctx context.Context) []string
}

// PatoHandler handles HTTP requests for the duck catalog.
type PatoHandler struct {
	Catalog CatalogService
}

// SoundResponse is returned by the premium sound endpoint.
type SoundResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Sound string `json:"sound"`
}

// List handles GET /api/patos. The q, group, habitat and diet query
// parameters narrow the result; the list is sorted by name.
func (h *PatoHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := models.SearchFilters{
		Group:   q.Get("group"),
		Habitat: q.Get("habitat"),
		Diet:    q.Get("diet"),
	}
	if filters.Group == groupAll {
		filters.Group = ""
	}

	writeJSON(w, http.StatusOK, h.Catalog.Search(r.Context(), q.Get("q"), filters))
}

// Groups handles GET /api/patos/groups.
func (h *PatoHandler) Groups(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Groups(r.Context()))
}

// Get handles GET /api/patos/{id}.
func (h *PatoHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "pato not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Sound handles GET /api/patos/{id}/sound. Only paid accounts hear the
// call; free accounts get 403.
func (h *PatoHandler) Sound(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	if !user.IsPremium() {
		http.Error(w, "premium plan required", http.StatusForbidden)
		return
	}

	p, ok := h.Catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "pato not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, SoundResponse{ID: p.ID, Name: p.Name, Sound: p.Sound})
}

// Create handles POST /api/patos and answers 201 with the stored record.
func (h *PatoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.PatoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if errs := service.ValidatePato(in); errs != nil {
		writeFieldErrors(w, http.StatusBadRequest, errs)
		return
	}

	writeJSON(w, http.StatusCreated, h.Catalog.Add(r.Context(), in))
}

// Update handles PATCH /api/patos/{id}. Fields absent from the body are
// left unchanged and the id cannot be rewritten.
func (h *PatoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch models.PatoPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if errs := service.ValidatePatch(patch); errs != nil {
		writeFieldErrors(w, http.StatusBadRequest, errs)
		return
	}

	if !h.Catalog.Update(r.Context(), id, patch) {
		http.Error(w, "pato not found", http.StatusNotFound)
		return
	}

	p, _ := h.Catalog.Get(r.Context(), id)
	writeJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /api/patos/{id}.
func (h *PatoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.Catalog.Delete(r.Context(), chi.URLParam(r, "id")) {
		http.Error(w, "pato not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
