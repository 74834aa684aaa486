package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/PatoApp/internal/models"
)

// fakeCatalog implements CatalogService for testing.
type fakeCatalog struct {
	patos       map[string]models.Pato
	lastQuery   string
	lastFilters models.SearchFilters
	added       []models.PatoInput
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{patos: map[string]models.Pato{
		"1": {ID: "1", Name: "Pato Barcino", Group: "Anas", Sound: "sonido"},
	}}
}

func (f *fakeCatalog) Search(_ context.Context, query string, filters models.SearchFilters) []models.Pato {
	f.lastQuery, f.lastFilters = query, filters
	out := []models.Pato{}
	for _, p := range f.patos {
		out = append(out, p)
	}
	return out
}

func (f *fakeCatalog) Get(_ context.Context, id string) (models.Pato, bool) {
	p, ok := f.patos[id]
	return p, ok
}

func (f *fakeCatalog) Add(_ context.Context, in models.PatoInput) models.Pato {
	f.added = append(f.added, in)
	p := in.WithID("new")
	f.patos[p.ID] = p
	return p
}

func (f *fakeCatalog) Update(_ context.Context, id string, patch models.PatoPatch) bool {
	p, ok := f.patos[id]
	if !ok {
		return false
	}
	f.patos[id] = patch.Apply(p)
	return true
}

func (f *fakeCatalog) Delete(_ context.Context, id string) bool {
	_, ok := f.patos[id]
	delete(f.patos, id)
	return ok
}

func (f *fakeCatalog) Groups(context.Context) []string {
	return []string{"Anas"}
}

func patoRouter(h *PatoHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/patos", h.List)
	r.Get("/patos/groups", h.Groups)
	r.Get("/patos/{id}", h.Get)
	r.Post("/patos", h.Create)
	r.Patch("/patos/{id}", h.Update)
	r.Delete("/patos/{id}", h.Delete)
	return r
}

const validPato = `{"name":"Pato Overo","scientificName":"Mareca sibilatrix","description":"d",` +
	`"behavior":"b","habitat":"h","plumage":"p","diet":"a","group":"Mareca","sound":"s"}`

func TestPatoHandler_ListFilters(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		wantQuery   string
		wantFilters models.SearchFilters
	}{
		{"no filters", "/patos", "", models.SearchFilters{}},
		{"query", "/patos?q=barcino", "barcino", models.SearchFilters{}},
		{"group all means any", "/patos?group=all", "", models.SearchFilters{}},
		{
			name:        "all filters",
			url:         "/patos?q=pato&group=Anas&habitat=lagunas&diet=omn%C3%ADvoro",
			wantQuery:   "pato",
			wantFilters: models.SearchFilters{Group: "Anas", Habitat: "lagunas", Diet: "omnívoro"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := newFakeCatalog()
			rec := httptest.NewRecorder()
			patoRouter(&PatoHandler{Catalog: catalog}).ServeHTTP(rec, httptest.NewRequest("GET", tt.url, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantQuery, catalog.lastQuery)
			assert.Equal(t, tt.wantFilters, catalog.lastFilters)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestPatoHandler_Get(t *testing.T) {
	h := patoRouter(&PatoHandler{Catalog: newFakeCatalog()})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/patos/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var p models.Pato
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	assert.Equal(t, "Pato Barcino", p.Name)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/patos/404", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPatoHandler_Groups(t *testing.T) {
	rec := httptest.NewRecorder()
	patoRouter(&PatoHandler{Catalog: newFakeCatalog()}).ServeHTTP(rec, httptest.NewRequest("GET", "/patos/groups", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["Anas"]`, rec.Body.String())
}

func TestPatoHandler_Create(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		expectedCode int
		wantAdded    int
	}{
		{"invalid JSON", `{`, http.StatusBadRequest, 0},
		{"missing fields", `{"name":"Pato Overo"}`, http.StatusBadRequest, 0},
		{"created", validPato, http.StatusCreated, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := newFakeCatalog()
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/patos", bytes.NewBufferString(tt.body))
			patoRouter(&PatoHandler{Catalog: catalog}).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.Len(t, catalog.added, tt.wantAdded)
		})
	}
}

func TestPatoHandler_Update(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		body         string
		expectedCode int
		wantName     string
	}{
		{"invalid JSON", "/patos/1", `x`, http.StatusBadRequest, "Pato Barcino"},
		{"blank field", "/patos/1", `{"name":" "}`, http.StatusBadRequest, "Pato Barcino"},
		{"unknown id", "/patos/9", `{"name":"Otro"}`, http.StatusNotFound, "Pato Barcino"},
		{"renamed", "/patos/1", `{"name":"Pato Criollo","id":"77"}`, http.StatusOK, "Pato Criollo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := newFakeCatalog()
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("PATCH", tt.url, bytes.NewBufferString(tt.body))
			patoRouter(&PatoHandler{Catalog: catalog}).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.Equal(t, tt.wantName, catalog.patos["1"].Name)
			assert.Equal(t, "1", catalog.patos["1"].ID)
		})
	}
}

func TestPatoHandler_Delete(t *testing.T) {
	catalog := newFakeCatalog()
	h := patoRouter(&PatoHandler{Catalog: catalog})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("DELETE", "/patos/1", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, catalog.patos)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("DELETE", "/patos/1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
