// Package service provides the catalog and account business logic,
// delegating persistence to a key-value store.
package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/atinyakov/PatoApp/internal/models"
)

// Keys of the documents held in the key-value store.
const (
	PatosKey   = "patoapp_patos"
	SessionKey = "patoapp_user"
	UsersKey   = "patoapp_users"
)

// KVStore defines the persistence operations required by the services.
type KVStore interface {
	// Get returns the value under key, or (nil, nil) if it is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the value under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key.
	Delete(ctx context.Context, key string) error
}

// CatalogService owns the pato collection. The store is the source of truth:
// every call reads the full collection and every mutation rewrites it.
// A nil store means no durable storage is available; reads then serve the
// default dataset and writes are dropped.
type CatalogService struct {
	mu    sync.Mutex
	store KVStore
	log   *zap.Logger
	newID func() string
}

// NewCatalogService constructs a CatalogService on top of store.
func NewCatalogService(store KVStore, log *zap.Logger) *CatalogService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogService{store: store, log: log, newID: uuid.NewString}
}

// List returns the full collection, seeding the store with the default
// dataset when nothing usable is stored yet.
func (s *CatalogService) List(ctx context.Context) []models.Pato {
	s.mu.Lock()
	defer s.mu.Unlock()
	patos, _ := s.load(ctx)
	return patos
}

// Get returns the pato with the given id.
func (s *CatalogService) Get(ctx context.Context, id string) (models.Pato, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	patos, _ := s.load(ctx)
	for _, p := range patos {
		if p.ID == id {
			return p, true
		}
	}
	return models.Pato{}, false
}

// Add stores a new pato under a freshly generated identifier and returns it.
func (s *CatalogService) Add(ctx context.Context, in models.PatoInput) models.Pato {
	s.mu.Lock()
	defer s.mu.Unlock()

	patos, ok := s.load(ctx)
	pato := in.WithID(s.uniqueID(patos))
	patos = append(patos, pato)
	s.saveLoaded(ctx, patos, ok)

	s.log.Info("pato added", zap.String("id", pato.ID), zap.String("name", pato.Name))
	return pato
}

// Update merges patch over the pato with the given id.
// It reports false, without writing, if no such pato exists.
func (s *CatalogService) Update(ctx context.Context, id string, patch models.PatoPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	patos, ok := s.load(ctx)
	for i := range patos {
		if patos[i].ID != id {
			continue
		}
		patos[i] = patch.Apply(patos[i])
		s.saveLoaded(ctx, patos, ok)
		s.log.Info("pato updated", zap.String("id", id))
		return true
	}
	return false
}

// Delete removes the pato with the given id.
// It reports false, without writing, if no such pato exists.
func (s *CatalogService) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	patos, ok := s.load(ctx)
	kept := make([]models.Pato, 0, len(patos))
	for _, p := range patos {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(patos) {
		return false
	}
	s.saveLoaded(ctx, kept, ok)
	s.log.Info("pato deleted", zap.String("id", id))
	return true
}

// Search returns the patos matching query and filters, sorted by name.
//
// A pato matches query when query is empty or is a case-insensitive
// substring of its name, scientific name or description. Group must match
// exactly; Habitat and Diet are case-insensitive substrings. Empty filter
// fields are ignored.
func (s *CatalogService) Search(ctx context.Context, query string, filters models.SearchFilters) []models.Pato {
	patos := s.List(ctx)

	q := strings.ToLower(query)
	habitat := strings.ToLower(filters.Habitat)
	diet := strings.ToLower(filters.Diet)

	found := make([]models.Pato, 0, len(patos))
	for _, p := range patos {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.ScientificName), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		if filters.Group != "" && p.Group != filters.Group {
			continue
		}
		if habitat != "" && !strings.Contains(strings.ToLower(p.Habitat), habitat) {
			continue
		}
		if diet != "" && !strings.Contains(strings.ToLower(p.Diet), diet) {
			continue
		}
		found = append(found, p)
	}

	SortByName(found)
	return found
}

// Groups returns the distinct taxonomic groups in collection order.
func (s *CatalogService) Groups(ctx context.Context) []string {
	seen := make(map[string]bool)
	var groups []string
	for _, p := range s.List(ctx) {
		if !seen[p.Group] {
			seen[p.Group] = true
			groups = append(groups, p.Group)
		}
	}
	return groups
}

// SortByName orders patos by display name using Spanish collation.
// Equal names keep their relative order.
func SortByName(patos []models.Pato) {
	// Collators keep internal buffers, so each sort gets its own.
	c := collate.New(language.Spanish)
	sort.SliceStable(patos, func(i, j int) bool {
		return c.CompareString(patos[i].Name, patos[j].Name) < 0
	})
}

func (s *CatalogService) uniqueID(patos []models.Pato) string {
	used := make(map[string]bool, len(patos))
	for _, p := range patos {
		used[p.ID] = true
	}
	for {
		if id := s.newID(); id != "" && !used[id] {
			return id
		}
	}
}

// load returns the stored collection, seeding the defaults when the key is
// absent or malformed. When the store cannot be read it returns the defaults
// without writing and reports false; the result must not be saved.
func (s *CatalogService) load(ctx context.Context) ([]models.Pato, bool) {
	if s.store == nil {
		return models.DefaultPatos(), true
	}

	raw, err := s.store.Get(ctx, PatosKey)
	if err != nil {
		s.log.Warn("failed to read catalog, using defaults", zap.String("key", PatosKey), zap.Error(err))
		return models.DefaultPatos(), false
	}
	if raw != nil {
		var patos []models.Pato
		if err := json.Unmarshal(raw, &patos); err == nil && patos != nil {
			return patos, true
		}
		s.log.Warn("malformed catalog, reseeding", zap.String("key", PatosKey))
	}

	defaults := models.DefaultPatos()
	s.save(ctx, defaults)
	return defaults, true
}

// saveLoaded persists patos unless they were derived from a failed read.
func (s *CatalogService) saveLoaded(ctx context.Context, patos []models.Pato, loaded bool) {
	if !loaded {
		s.log.Warn("catalog unreadable, change not persisted", zap.String("key", PatosKey))
		return
	}
	s.save(ctx, patos)
}

func (s *CatalogService) save(ctx context.Context, patos []models.Pato) {
	if s.store == nil {
		return
	}
	if err := writeJSON(ctx, s.store, PatosKey, patos); err != nil {
		s.log.Warn("failed to persist catalog", zap.String("key", PatosKey), zap.Error(err))
	}
}

func writeJSON(ctx context.Context, store KVStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, data)
}
