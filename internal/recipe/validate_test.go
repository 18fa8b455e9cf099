package recipe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/stepcook/internal/domain"
)

func validRecipe() *domain.Recipe {
	return &domain.Recipe{
		ID:         "r",
		Title:      "Pancakes",
		Difficulty: domain.DifficultyEasy,
		Ingredients: []domain.Ingredient{
			{ID: "flour", Name: "Flour", Quantity: 200, Unit: "g"},
			{ID: "milk", Name: "Milk", Quantity: 300, Unit: "ml"},
		},
		Steps: []domain.Step{
			{ID: "mix", Description: "Whisk the batter.", Type: domain.StepInstruction, DurationMinutes: 3, IngredientIDs: []string{"flour", "milk"}},
			{ID: "fry", Description: "Fry each pancake.", Type: domain.StepCooking, DurationMinutes: 10, Settings: &domain.CookingSettings{Temperature: 180, Speed: 1}},
		},
	}
}

func TestValidateAcceptsValidRecipe(t *testing.T) {
	require.NoError(t, Validate(validRecipe()))
	for _, r := range Samples() {
		require.NoError(t, Validate(r), r.Title)
	}
}

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *domain.Recipe)
		field  string
	}{
		{"short title", func(r *domain.Recipe) { r.Title = "ab" }, "title"},
		{"unknown difficulty", func(r *domain.Recipe) { r.Difficulty = "Expert" }, "difficulty"},
		{"no ingredients", func(r *domain.Recipe) {
			r.Ingredients = nil
			r.Steps = r.Steps[1:]
		}, "ingredients"},
		{"ingredient without name", func(r *domain.Recipe) { r.Ingredients[0].Name = " " }, "ingredients[0].name"},
		{"zero quantity", func(r *domain.Recipe) { r.Ingredients[1].Quantity = 0 }, "ingredients[1].quantity"},
		{"missing unit", func(r *domain.Recipe) { r.Ingredients[0].Unit = "" }, "ingredients[0].unit"},
		{"no steps", func(r *domain.Recipe) { r.Steps = nil }, "steps"},
		{"short description", func(r *domain.Recipe) { r.Steps[0].Description = "go" }, "steps[0].description"},
		{"zero duration", func(r *domain.Recipe) { r.Steps[1].DurationMinutes = 0 }, "steps[1].durationMinutes"},
		{"unknown type", func(r *domain.Recipe) { r.Steps[0].Type = "baking" }, "steps[0].type"},
		{"cooking without settings", func(r *domain.Recipe) { r.Steps[1].Settings = nil }, "steps[1].settings"},
		{"temperature too low", func(r *domain.Recipe) { r.Steps[1].Settings.Temperature = 39 }, "steps[1].settings.temperature"},
		{"temperature too high", func(r *domain.Recipe) { r.Steps[1].Settings.Temperature = 201 }, "steps[1].settings.temperature"},
		{"speed out of range", func(r *domain.Recipe) { r.Steps[1].Settings.Speed = 6 }, "steps[1].settings.speed"},
		{"cooking with ingredients", func(r *domain.Recipe) { r.Steps[1].IngredientIDs = []string{"milk"} }, "steps[1].ingredientIds"},
		{"instruction without ingredients", func(r *domain.Recipe) { r.Steps[0].IngredientIDs = nil }, "steps[0].ingredientIds"},
		{"instruction with dangling ingredient", func(r *domain.Recipe) { r.Steps[0].IngredientIDs = []string{"eggs"} }, "steps[0].ingredientIds"},
		{"instruction with settings", func(r *domain.Recipe) {
			r.Steps[0].Settings = &domain.CookingSettings{Temperature: 100, Speed: 2}
		}, "steps[0].settings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecipe()
			tt.mutate(r)

			err := Validate(r)
			require.Error(t, err)

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			require.True(t, verrs.Has(tt.field), "expected error on %s, got %v", tt.field, verrs)
		})
	}
}

func TestValidateBoundaries(t *testing.T) {
	r := validRecipe()
	r.Title = "Tea"
	r.Steps[1].Settings = &domain.CookingSettings{Temperature: MinTemperature, Speed: MaxSpeed}
	require.NoError(t, Validate(r))

	r.Steps[1].Settings = &domain.CookingSettings{Temperature: MaxTemperature, Speed: MinSpeed}
	require.NoError(t, Validate(r))
}

func TestValidationErrorsMessage(t *testing.T) {
	r := validRecipe()
	r.Title = ""
	r.Steps = nil

	err := Validate(r)
	require.EqualError(t, err, "invalid recipe: title: must be at least 3 characters; steps: at least one step is required")
}

func TestValidateMessages(t *testing.T) {
	r := validRecipe()
	r.Difficulty = "Expert"
	r.Ingredients[0].Name = ""
	r.Steps[0].IngredientIDs = []string{"flour", "eggs"}
	r.Steps[1].Settings.Temperature = 250

	err := Validate(r)
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))

	got := map[string]string{}
	for _, e := range verrs {
		got[e.Field] = e.Message
	}
	require.Equal(t, map[string]string{
		"difficulty":                    "must be one of Easy, Medium, Hard",
		"ingredients[0].name":           "name is required",
		"steps[0].ingredientIds":        `unknown ingredient "eggs"`,
		"steps[1].settings.temperature": "must be between 40 and 200",
	}, got)
}
