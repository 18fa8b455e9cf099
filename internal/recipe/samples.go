package recipe

import (
	"time"

	"github.com/hammamikhairi/stepcook/internal/domain"
)

// Samples returns fresh copies of the built-in recipes. IDs are stable so
// the same sample is not seeded twice into a persistent store.
func Samples() []*domain.Recipe {
	return []*domain.Recipe{
		tomatoSoup(),
		chickenStirFry(),
	}
}

func tomatoSoup() *domain.Recipe {
	now := time.Now()
	return &domain.Recipe{
		ID:         "classic-tomato-soup",
		Title:      "Classic Tomato Soup",
		Cuisine:    "Italian",
		Difficulty: domain.DifficultyEasy,
		Favorite:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
		Ingredients: []domain.Ingredient{
			{ID: "tomatoes", Name: "Tomatoes", Quantity: 800, Unit: "g"},
			{ID: "onion", Name: "Onion", Quantity: 1, Unit: "pcs"},
			{ID: "garlic", Name: "Garlic", Quantity: 2, Unit: "cloves"},
			{ID: "broth", Name: "Vegetable Broth", Quantity: 500, Unit: "ml"},
			{ID: "cream", Name: "Heavy Cream", Quantity: 100, Unit: "ml"},
			{ID: "basil", Name: "Fresh Basil", Quantity: 1, Unit: "bunch"},
		},
		Steps: []domain.Step{
			{
				ID:              "chop",
				Description:     "Chop onion and garlic.",
				Type:            domain.StepInstruction,
				DurationMinutes: 5,
				IngredientIDs:   []string{"onion", "garlic"},
			},
			{
				ID:              "saute",
				Description:     "Sauté onion and garlic.",
				Type:            domain.StepCooking,
				DurationMinutes: 5,
				Settings:        &domain.CookingSettings{Temperature: 120, Speed: 2},
			},
			{
				ID:              "add-liquids",
				Description:     "Add tomatoes and broth.",
				Type:            domain.StepInstruction,
				DurationMinutes: 2,
				IngredientIDs:   []string{"tomatoes", "broth"},
			},
			{
				ID:              "simmer",
				Description:     "Simmer the soup.",
				Type:            domain.StepCooking,
				DurationMinutes: 20,
				Settings:        &domain.CookingSettings{Temperature: 100, Speed: 1},
			},
			{
				ID:              "finish",
				Description:     "Blend, then stir in cream and basil.",
				Type:            domain.StepInstruction,
				DurationMinutes: 3,
				IngredientIDs:   []string{"cream", "basil"},
			},
		},
	}
}

func chickenStirFry() *domain.Recipe {
	now := time.Now()
	return &domain.Recipe{
		ID:         "spicy-chicken-stir-fry",
		Title:      "Spicy Chicken Stir-fry",
		Cuisine:    "Asian",
		Difficulty: domain.DifficultyMedium,
		CreatedAt:  now,
		UpdatedAt:  now,
		Ingredients: []domain.Ingredient{
			{ID: "chicken", Name: "Chicken Breast", Quantity: 500, Unit: "g"},
			{ID: "pepper", Name: "Bell Pepper", Quantity: 2, Unit: "pcs"},
			{ID: "broccoli", Name: "Broccoli", Quantity: 1, Unit: "head"},
			{ID: "soy", Name: "Soy Sauce", Quantity: 60, Unit: "ml"},
			{ID: "ginger", Name: "Ginger", Quantity: 1, Unit: "tbsp"},
			{ID: "sriracha", Name: "Sriracha", Quantity: 1, Unit: "tbsp"},
		},
		Steps: []domain.Step{
			{
				ID:              "prep",
				Description:     "Slice chicken, chop vegetables and grate ginger.",
				Type:            domain.StepInstruction,
				DurationMinutes: 10,
				IngredientIDs:   []string{"chicken", "pepper", "broccoli", "ginger"},
			},
			{
				ID:              "fry-chicken",
				Description:     "Stir-fry chicken until cooked.",
				Type:            domain.StepCooking,
				DurationMinutes: 7,
				Settings:        &domain.CookingSettings{Temperature: 140, Speed: 3},
			},
			{
				ID:              "add-vegetables",
				Description:     "Add vegetables and stir-fry for 3-4 minutes.",
				Type:            domain.StepInstruction,
				DurationMinutes: 4,
				IngredientIDs:   []string{"pepper", "broccoli"},
			},
			{
				ID:              "sauce",
				Description:     "Add soy sauce, ginger, and sriracha. Mix well.",
				Type:            domain.StepInstruction,
				DurationMinutes: 2,
				IngredientIDs:   []string{"soy", "ginger", "sriracha"},
			},
			{
				ID:              "combine",
				Description:     "Simmer for 2 minutes to combine flavors.",
				Type:            domain.StepCooking,
				DurationMinutes: 2,
				Settings:        &domain.CookingSettings{Temperature: 110, Speed: 2},
			},
		},
	}
}
