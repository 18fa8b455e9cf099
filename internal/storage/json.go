package storage

import "github.com/hammamikhairi/stepcook/internal/domain"

// Column encodings for the ingredients and steps JSON columns. Kept apart
// from the domain types so the on-disk shape only changes deliberately.

type jsonIngredient struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type jsonStep struct {
	ID              string        `json:"id"`
	Description     string        `json:"description"`
	Type            string        `json:"type"`
	DurationMinutes int           `json:"durationMinutes"`
	Settings        *jsonSettings `json:"cookingSettings,omitempty"`
	IngredientIDs   []string      `json:"ingredientIds,omitempty"`
}

type jsonSettings struct {
	Temperature int `json:"temperature"`
	Speed       int `json:"speed"`
}

func toJSONIngredients(in []domain.Ingredient) []jsonIngredient {
	out := make([]jsonIngredient, len(in))
	for i, ing := range in {
		out[i] = jsonIngredient(ing)
	}
	return out
}

func fromJSONIngredients(in []jsonIngredient) []domain.Ingredient {
	out := make([]domain.Ingredient, len(in))
	for i, ing := range in {
		out[i] = domain.Ingredient(ing)
	}
	return out
}

func toJSONSteps(in []domain.Step) []jsonStep {
	out := make([]jsonStep, len(in))
	for i, s := range in {
		out[i] = jsonStep{
			ID:              s.ID,
			Description:     s.Description,
			Type:            string(s.Type),
			DurationMinutes: s.DurationMinutes,
			IngredientIDs:   s.IngredientIDs,
		}
		if s.Settings != nil {
			out[i].Settings = &jsonSettings{Temperature: s.Settings.Temperature, Speed: s.Settings.Speed}
		}
	}
	return out
}

func fromJSONSteps(in []jsonStep) []domain.Step {
	out := make([]domain.Step, len(in))
	for i, s := range in {
		out[i] = domain.Step{
			ID:              s.ID,
			Description:     s.Description,
			Type:            domain.StepType(s.Type),
			DurationMinutes: s.DurationMinutes,
			IngredientIDs:   s.IngredientIDs,
		}
		if s.Settings != nil {
			out[i].Settings = &domain.CookingSettings{Temperature: s.Settings.Temperature, Speed: s.Settings.Speed}
		}
	}
	return out
}
