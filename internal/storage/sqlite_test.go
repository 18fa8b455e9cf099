package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/stepcook/internal/domain"
	"github.com/hammamikhairi/stepcook/internal/logger"
	"github.com/hammamikhairi/stepcook/internal/recipe"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "recipes.db")
	store, err := OpenSQLite(path, logger.New(logger.LevelOff, nil))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteSaveAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	soup := recipe.Samples()[0]
	require.NoError(t, store.Save(ctx, soup))

	got, err := store.Get(ctx, soup.ID)
	require.NoError(t, err)
	require.Equal(t, soup.Title, got.Title)
	require.Equal(t, soup.Cuisine, got.Cuisine)
	require.Equal(t, soup.Difficulty, got.Difficulty)
	require.True(t, got.Favorite)
	require.Equal(t, soup.Ingredients, got.Ingredients)
	require.Equal(t, soup.Steps, got.Steps)
	require.True(t, soup.UpdatedAt.Equal(got.UpdatedAt))
	require.NoError(t, recipe.Validate(got))
}

func TestSQLiteSaveAssignsIDAndKeepsCreatedAt(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store.now = func() time.Time { return clock }

	r := &domain.Recipe{
		Title:      "Rice",
		Difficulty: domain.DifficultyEasy,
		Ingredients: []domain.Ingredient{
			{ID: "rice", Name: "Rice", Quantity: 1, Unit: "cup"},
		},
		Steps: []domain.Step{
			{ID: "boil", Description: "Boil the rice.", Type: domain.StepCooking, DurationMinutes: 12,
				Settings: &domain.CookingSettings{Temperature: 100, Speed: 1}},
		},
	}
	require.NoError(t, store.Save(ctx, r))
	require.NotEmpty(t, r.ID)
	require.Equal(t, clock, r.CreatedAt)

	clock = clock.Add(time.Hour)
	r.Title = "Steamed Rice"
	r.CreatedAt = time.Time{}
	require.NoError(t, store.Save(ctx, r))

	got, err := store.Get(ctx, r.ID)
	require.NoError(t, err)
	require.Equal(t, "Steamed Rice", got.Title)
	require.True(t, got.CreatedAt.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))
	require.True(t, got.UpdatedAt.Equal(clock))
}

func TestSQLiteListSearchDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	n, err := store.Seed(ctx, recipe.Samples())
	require.NoError(t, err)
	require.Equal(t, 2, n)

	// Seeding a non-empty store is a no-op.
	n, err = store.Seed(ctx, recipe.Samples())
	require.NoError(t, err)
	require.Zero(t, n)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Classic Tomato Soup", list[0].Title)
	require.Equal(t, 35, list[0].TotalMinutes)

	found, err := store.Search(ctx, "asian")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "spicy-chicken-stir-fry", found[0].ID)

	require.NoError(t, store.Delete(ctx, "spicy-chicken-stir-fry"))
	require.ErrorIs(t, store.Delete(ctx, "spicy-chicken-stir-fry"), domain.ErrNotFound)

	_, err = store.Get(ctx, "spicy-chicken-stir-fry")
	require.ErrorIs(t, err, domain.ErrNotFound)

	list, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestSQLiteToggleFavorite(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	stirFry := recipe.Samples()[1]
	require.NoError(t, store.Save(ctx, stirFry))

	fav, err := store.ToggleFavorite(ctx, stirFry.ID)
	require.NoError(t, err)
	require.True(t, fav)

	got, err := store.Get(ctx, stirFry.ID)
	require.NoError(t, err)
	require.True(t, got.Favorite)

	fav, err = store.ToggleFavorite(ctx, stirFry.ID)
	require.NoError(t, err)
	require.False(t, fav)

	_, err = store.ToggleFavorite(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.db")
	log := logger.New(logger.LevelOff, nil)

	store, err := OpenSQLite(path, log)
	require.NoError(t, err)
	_, err = store.Seed(context.Background(), recipe.Samples())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(path, log)
	require.NoError(t, err)
	defer reopened.Close()

	list, err := reopened.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
}
