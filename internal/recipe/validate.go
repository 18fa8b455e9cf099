package recipe

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hammamikhairi/stepcook/internal/domain"
)

// Limits enforced on cooking step settings. The gte/lte tags on
// settingsForm carry the same numbers.
const (
	MinTemperature = 40
	MaxTemperature = 200
	MinSpeed       = 1
	MaxSpeed       = 5
)

// FieldError is a single validation failure at a field path such as
// "steps[2].settings.temperature".
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every failure found in a recipe.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return "invalid recipe: " + strings.Join(msgs, "; ")
}

// Has reports whether any failure is recorded for field.
func (v ValidationErrors) Has(field string) bool {
	for _, e := range v {
		if e.Field == field {
			return true
		}
	}
	return false
}

// recipeForm is the validated view of a recipe: strings are trimmed and
// the json names double as error field paths.
type recipeForm struct {
	Title       string           `json:"title" validate:"min=3"`
	Difficulty  string           `json:"difficulty" validate:"oneof=Easy Medium Hard"`
	Ingredients []ingredientForm `json:"ingredients" validate:"min=1,dive"`
	Steps       []stepForm       `json:"steps" validate:"min=1,dive"`
}

type ingredientForm struct {
	Name     string  `json:"name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gt=0"`
	Unit     string  `json:"unit" validate:"required"`
}

type stepForm struct {
	Description     string        `json:"description" validate:"min=3"`
	DurationMinutes int           `json:"durationMinutes" validate:"gt=0"`
	Type            string        `json:"type" validate:"oneof=cooking instruction"`
	Settings        *settingsForm `json:"settings"`
	IngredientIDs   []string      `json:"ingredientIds"`

	known map[string]bool
}

type settingsForm struct {
	Temperature int `json:"temperature" validate:"gte=40,lte=200"`
	Speed       int `json:"speed" validate:"gte=1,lte=5"`
}

// Tags reported by validateStep.
const (
	tagCookingSettings     = "cooking_settings"
	tagCookingIngredients  = "cooking_no_ingredients"
	tagInstructionNeeds    = "instruction_ingredients"
	tagInstructionSettings = "instruction_no_settings"
	tagKnownIngredient     = "known_ingredient"
)

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(validateStep, stepForm{})
	return v
}

// validateStep applies the rules that depend on the step type.
func validateStep(sl validator.StructLevel) {
	step := sl.Current().Interface().(stepForm)
	switch domain.StepType(step.Type) {
	case domain.StepCooking:
		if step.Settings == nil {
			sl.ReportError(step.Settings, "settings", "Settings", tagCookingSettings, "")
		}
		if len(step.IngredientIDs) > 0 {
			sl.ReportError(step.IngredientIDs, "ingredientIds", "IngredientIDs", tagCookingIngredients, "")
		}
	case domain.StepInstruction:
		if len(step.IngredientIDs) == 0 {
			sl.ReportError(step.IngredientIDs, "ingredientIds", "IngredientIDs", tagInstructionNeeds, "")
		}
		for _, id := range step.IngredientIDs {
			if !step.known[id] {
				sl.ReportError(step.IngredientIDs, "ingredientIds", "IngredientIDs", tagKnownIngredient, id)
			}
		}
		if step.Settings != nil {
			sl.ReportError(step.Settings, "settings", "Settings", tagInstructionSettings, "")
		}
	}
}

func newRecipeForm(r *domain.Recipe) recipeForm {
	known := make(map[string]bool, len(r.Ingredients))
	form := recipeForm{
		Title:      strings.TrimSpace(r.Title),
		Difficulty: string(r.Difficulty),
	}
	for _, ing := range r.Ingredients {
		form.Ingredients = append(form.Ingredients, ingredientForm{
			Name:     strings.TrimSpace(ing.Name),
			Quantity: ing.Quantity,
			Unit:     strings.TrimSpace(ing.Unit),
		})
		if ing.ID != "" {
			known[ing.ID] = true
		}
	}
	for _, step := range r.Steps {
		sf := stepForm{
			Description:     strings.TrimSpace(step.Description),
			DurationMinutes: step.DurationMinutes,
			Type:            string(step.Type),
			IngredientIDs:   step.IngredientIDs,
			known:           known,
		}
		if step.Settings != nil {
			sf.Settings = &settingsForm{Temperature: step.Settings.Temperature, Speed: step.Settings.Speed}
		}
		form.Steps = append(form.Steps, sf)
	}
	return form
}

// Validate checks r against the recipe form rules. It returns nil or a
// ValidationErrors listing every problem.
func Validate(r *domain.Recipe) error {
	err := formValidator.Struct(newRecipeForm(r))
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate recipe: %w", err)
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
	}
	return errs
}

// fieldPath drops the form type from a namespace such as
// "recipeForm.steps[1].settings.speed".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("at least one %s is required", strings.TrimSuffix(fe.Field(), "s"))
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gt":
		return "must be > " + fe.Param()
	case "gte", "lte":
		switch fe.Field() {
		case "temperature":
			return fmt.Sprintf("must be between %d and %d", MinTemperature, MaxTemperature)
		case "speed":
			return fmt.Sprintf("must be between %d and %d", MinSpeed, MaxSpeed)
		}
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case tagCookingSettings:
		return "settings are required"
	case tagCookingIngredients:
		return "ingredients not allowed for cooking steps"
	case tagInstructionNeeds:
		return "select at least one ingredient"
	case tagInstructionSettings:
		return "settings not allowed for instruction steps"
	case tagKnownIngredient:
		return fmt.Sprintf("unknown ingredient %q", fe.Param())
	}
	return "failed " + fe.Tag()
}
