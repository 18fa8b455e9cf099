package domain

import "context"

// RecipeSource provides recipes. Implementations can be in-memory
// (seeded), SQLite-backed, or loaded from YAML files.
type RecipeSource interface {
	List(ctx context.Context) ([]RecipeSummary, error)
	Get(ctx context.Context, id string) (*Recipe, error)
	Search(ctx context.Context, query string) ([]RecipeSummary, error)
}

// RecipeStore is a RecipeSource that can also be written to.
type RecipeStore interface {
	RecipeSource
	// Save inserts or replaces a recipe. New recipes get an ID and
	// timestamps assigned.
	Save(ctx context.Context, recipe *Recipe) error
	Delete(ctx context.Context, id string) error
	ToggleFavorite(ctx context.Context, id string) (bool, error)
}

// Notifier delivers messages to the user. Implementations can write to
// stdout or a terminal UI.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}

// Chime plays audible cues at step boundaries.
type Chime interface {
	Step(ctx context.Context) error
	Done(ctx context.Context) error
}
