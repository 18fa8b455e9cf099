// Package recipe provides the in-memory recipe catalog plus the helpers
// shared by every recipe store: validation, YAML import/export, totals
// and sorting.
package recipe

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hammamikhairi/stepcook/internal/domain"
	"github.com/hammamikhairi/stepcook/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeStore = (*MemorySource)(nil)

// MemorySource holds recipes in memory. Safe for concurrent use.
type MemorySource struct {
	mu      sync.RWMutex
	recipes map[string]*domain.Recipe
	log     *logger.Logger
	now     func() time.Time
}

// NewMemorySource creates a recipe source preloaded with the sample recipes.
func NewMemorySource(log *logger.Logger) *MemorySource {
	return NewMemorySourceWith(log, Samples()...)
}

// NewMemorySourceWith creates a recipe source holding copies of recipes.
func NewMemorySourceWith(log *logger.Logger, recipes ...*domain.Recipe) *MemorySource {
	src := &MemorySource{
		recipes: make(map[string]*domain.Recipe, len(recipes)),
		log:     log,
		now:     time.Now,
	}
	for _, r := range recipes {
		src.recipes[r.ID] = Clone(r)
	}
	log.Debug("seeded %d recipes", len(src.recipes))
	return src
}

// List returns summaries of all recipes ordered by title.
func (s *MemorySource) List(ctx context.Context) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.log.Debug("listing all recipes, count=%d", len(s.recipes))

	out := make([]domain.RecipeSummary, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, Summarize(r))
	}
	Sort(out, SortByTitle)
	return out, nil
}

// Get returns a copy of the recipe with the given ID.
func (s *MemorySource) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		s.log.Debug("recipe not found: %s", id)
		return nil, domain.ErrNotFound
	}
	return Clone(r), nil
}

// Search returns recipes whose title or cuisine contains the query.
func (s *MemorySource) Search(ctx context.Context, query string) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	s.log.Debug("searching recipes for: %s", q)

	var out []domain.RecipeSummary
	for _, r := range s.recipes {
		if Matches(r, q) {
			out = append(out, Summarize(r))
		}
	}
	Sort(out, SortByTitle)
	return out, nil
}

// Save inserts or replaces a recipe. A recipe without an ID is new and
// gets one assigned along with its creation time.
func (s *MemorySource) Save(ctx context.Context, r *domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if existing, ok := s.recipes[r.ID]; ok {
		r.CreatedAt = existing.CreatedAt
	} else if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now

	s.recipes[r.ID] = Clone(r)
	s.log.Info("recipe saved: %s (%s)", r.Title, r.ID)
	return nil
}

// Delete removes a recipe.
func (s *MemorySource) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.recipes, id)
	s.log.Info("recipe deleted: %s", id)
	return nil
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (s *MemorySource) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	r.Favorite = !r.Favorite
	return r.Favorite, nil
}

// Matches reports whether r's title or cuisine contains the lower-cased
// query. An empty query matches everything.
func Matches(r *domain.Recipe, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Title), query) ||
		strings.Contains(strings.ToLower(r.Cuisine), query)
}

// Clone returns a deep copy of r, so callers can never mutate a recipe
// another goroutine is cooking from.
func Clone(r *domain.Recipe) *domain.Recipe {
	out := *r
	out.Ingredients = append([]domain.Ingredient(nil), r.Ingredients...)
	out.Steps = make([]domain.Step, len(r.Steps))
	for i, step := range r.Steps {
		if step.Settings != nil {
			settings := *step.Settings
			step.Settings = &settings
		}
		step.IngredientIDs = append([]string(nil), step.IngredientIDs...)
		out.Steps[i] = step
	}
	return &out
}
