// Package domain defines the core types and interfaces for stepcook.
// All other packages depend on domain; domain depends on nothing.
package domain

import "time"

// Recipe is an ordered list of timed steps plus the ingredients they use.
// A recipe is treated as immutable while a cooking session runs against it.
type Recipe struct {
	ID          string
	Title       string
	Cuisine     string
	Difficulty  Difficulty
	Favorite    bool
	Ingredients []Ingredient
	Steps       []Step
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecipeSummary is a lightweight view of a recipe for listing.
type RecipeSummary struct {
	ID           string
	Title        string
	Cuisine      string
	Difficulty   Difficulty
	Favorite     bool
	TotalMinutes int
	StepCount    int
}

// Difficulty grades how hard a recipe is.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Rank orders difficulties from easiest to hardest. Unknown values rank last.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	default:
		return 4
	}
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	return d.Rank() < 4
}

// Ingredient is a single measured ingredient.
type Ingredient struct {
	ID       string
	Name     string
	Quantity float64
	Unit     string // "g", "ml", "pcs", "cloves", ...
}

// Step is a single timed recipe step.
type Step struct {
	ID              string
	Description     string
	Type            StepType
	DurationMinutes int
	Settings        *CookingSettings // cooking steps only
	IngredientIDs   []string         // instruction steps only
}

// DurationSec returns the step duration in seconds.
func (s Step) DurationSec() int {
	return s.DurationMinutes * 60
}

// StepType distinguishes machine cooking steps from manual instructions.
type StepType string

const (
	// StepCooking runs at a temperature and speed.
	StepCooking StepType = "cooking"
	// StepInstruction is manual work with a set of ingredients.
	StepInstruction StepType = "instruction"
)

// CookingSettings are the appliance settings for a cooking step.
type CookingSettings struct {
	Temperature int // degrees Celsius
	Speed       int
}

// IngredientByID returns the ingredient with the given ID, or nil.
func (r *Recipe) IngredientByID(id string) *Ingredient {
	for i := range r.Ingredients {
		if r.Ingredients[i].ID == id {
			return &r.Ingredients[i]
		}
	}
	return nil
}
