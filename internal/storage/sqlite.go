// Package storage persists recipes in a SQLite database. Cooking
// sessions are never stored: they live only in the engine.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/hammamikhairi/stepcook/internal/domain"
	"github.com/hammamikhairi/stepcook/internal/logger"
	"github.com/hammamikhairi/stepcook/internal/recipe"
)

// Compile-time interface check.
var _ domain.RecipeStore = (*SQLiteStore)(nil)

const timeLayout = time.RFC3339Nano

// SQLiteStore is a recipe store backed by a single SQLite file.
// Ingredients and steps are stored as JSON columns on the recipe row.
type SQLiteStore struct {
	db  *sql.DB
	log *logger.Logger
	now func() time.Time

	// SQLite allows one writer at a time; serialize writes in-process
	// rather than surfacing SQLITE_BUSY.
	writeMu sync.Mutex
}

// OpenSQLite opens (creating if needed) the database at path and
// ensures the schema exists.
func OpenSQLite(path string, log *logger.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s := &SQLiteStore{db: db, log: log, now: time.Now}
	if err := s.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	log.Debug("recipe store opened at %s", path)
	return s, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS recipes (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  cuisine TEXT NOT NULL DEFAULT '',
  difficulty TEXT NOT NULL,
  favorite INTEGER NOT NULL DEFAULT 0,
  ingredients TEXT NOT NULL,
  steps TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create recipes table: %w", err)
	}
	return nil
}

// List returns summaries of every stored recipe ordered by title.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.RecipeSummary, error) {
	recipes, err := s.query(ctx, `SELECT `+recipeColumns+` FROM recipes`)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return summarize(recipes, ""), nil
}

// Get loads a recipe by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	recipes, err := s.query(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe %s: %w", id, err)
	}
	if len(recipes) == 0 {
		return nil, domain.ErrNotFound
	}
	return recipes[0], nil
}

// Search returns recipes whose title or cuisine contains query.
func (s *SQLiteStore) Search(ctx context.Context, query string) ([]domain.RecipeSummary, error) {
	recipes, err := s.query(ctx, `SELECT `+recipeColumns+` FROM recipes`)
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	return summarize(recipes, strings.ToLower(strings.TrimSpace(query))), nil
}

// Save inserts or updates r. New recipes get a UUID and creation time;
// every save bumps UpdatedAt.
func (s *SQLiteStore) Save(ctx context.Context, r *domain.Recipe) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	now := s.now().UTC()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now

	ingredients, err := json.Marshal(toJSONIngredients(r.Ingredients))
	if err != nil {
		return fmt.Errorf("encode ingredients: %w", err)
	}
	steps, err := json.Marshal(toJSONSteps(r.Steps))
	if err != nil {
		return fmt.Errorf("encode steps: %w", err)
	}

	const stmt = `
INSERT INTO recipes (id, title, cuisine, difficulty, favorite, ingredients, steps, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  title=excluded.title,
  cuisine=excluded.cuisine,
  difficulty=excluded.difficulty,
  favorite=excluded.favorite,
  ingredients=excluded.ingredients,
  steps=excluded.steps,
  updated_at=excluded.updated_at;
`
	_, err = s.db.ExecContext(ctx, stmt,
		r.ID,
		r.Title,
		r.Cuisine,
		string(r.Difficulty),
		r.Favorite,
		string(ingredients),
		string(steps),
		r.CreatedAt.UTC().Format(timeLayout),
		r.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("upsert recipe: %w", err)
	}
	s.log.Info("recipe saved: %s (%s)", r.Title, r.ID)
	return nil
}

// Delete removes a recipe. It returns ErrNotFound if nothing was deleted.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	s.log.Info("recipe deleted: %s", id)
	return nil
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (s *SQLiteStore) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var fav bool
	err := s.db.QueryRowContext(ctx,
		`UPDATE recipes SET favorite = 1 - favorite WHERE id = ? RETURNING favorite`, id,
	).Scan(&fav)
	if errors.Is(err, sql.ErrNoRows) {
		return false, domain.ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}
	return fav, nil
}

// Seed inserts recipes when the store is empty. It returns how many were
// written.
func (s *SQLiteStore) Seed(ctx context.Context, recipes []*domain.Recipe) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	if count > 0 {
		return 0, nil
	}
	for _, r := range recipes {
		if err := s.Save(ctx, r); err != nil {
			return 0, fmt.Errorf("seed %s: %w", r.Title, err)
		}
	}
	s.log.Info("seeded %d recipes", len(recipes))
	return len(recipes), nil
}

const recipeColumns = `id, title, cuisine, difficulty, favorite, ingredients, steps, created_at, updated_at`

func (s *SQLiteStore) query(ctx context.Context, q string, args ...any) ([]*domain.Recipe, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanRecipe(rows *sql.Rows) (*domain.Recipe, error) {
	var (
		r                    domain.Recipe
		difficulty           string
		ingredients, steps   string
		createdAt, updatedAt string
	)
	if err := rows.Scan(&r.ID, &r.Title, &r.Cuisine, &difficulty, &r.Favorite,
		&ingredients, &steps, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scan recipe: %w", err)
	}
	r.Difficulty = domain.Difficulty(difficulty)

	var ji []jsonIngredient
	if err := json.Unmarshal([]byte(ingredients), &ji); err != nil {
		return nil, fmt.Errorf("decode ingredients of %s: %w", r.ID, err)
	}
	var js []jsonStep
	if err := json.Unmarshal([]byte(steps), &js); err != nil {
		return nil, fmt.Errorf("decode steps of %s: %w", r.ID, err)
	}
	r.Ingredients = fromJSONIngredients(ji)
	r.Steps = fromJSONSteps(js)

	var err error
	if r.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at of %s: %w", r.ID, err)
	}
	if r.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at of %s: %w", r.ID, err)
	}
	return &r, nil
}

func summarize(recipes []*domain.Recipe, query string) []domain.RecipeSummary {
	out := make([]domain.RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		if recipe.Matches(r, query) {
			out = append(out, recipe.Summarize(r))
		}
	}
	recipe.Sort(out, recipe.SortByTitle)
	return out
}
