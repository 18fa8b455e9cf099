package recipe

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/stepcook/internal/domain"
)

type yamlFile struct {
	Recipes []yamlRecipe `yaml:"recipes"`
}

type yamlRecipe struct {
	ID          string           `yaml:"id,omitempty"`
	Title       string           `yaml:"title"`
	Cuisine     string           `yaml:"cuisine,omitempty"`
	Difficulty  string           `yaml:"difficulty"`
	Favorite    bool             `yaml:"favorite,omitempty"`
	Ingredients []yamlIngredient `yaml:"ingredients"`
	Steps       []yamlStep       `yaml:"steps"`
}

type yamlIngredient struct {
	ID       string  `yaml:"id,omitempty"`
	Name     string  `yaml:"name"`
	Quantity float64 `yaml:"quantity"`
	Unit     string  `yaml:"unit"`
}

type yamlStep struct {
	ID          string        `yaml:"id,omitempty"`
	Description string        `yaml:"description"`
	Type        string        `yaml:"type"`
	Minutes     int           `yaml:"minutes"`
	Settings    *yamlSettings `yaml:"settings,omitempty"`
	// Ingredients references recipe ingredients by id or by name.
	Ingredients []string `yaml:"ingredients,omitempty"`
}

type yamlSettings struct {
	Temperature int `yaml:"temperature"`
	Speed       int `yaml:"speed"`
}

// Decode reads recipes from a YAML document. The document is either a
// single recipe or a mapping with a top-level "recipes" list. Missing
// IDs are filled with fresh UUIDs. Recipes are not validated.
func Decode(r io.Reader) ([]*domain.Recipe, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read recipe yaml: %w", err)
	}

	var file yamlFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse recipe yaml: %w", err)
	}
	if len(file.Recipes) == 0 {
		var single yamlRecipe
		if err := yaml.Unmarshal(raw, &single); err != nil {
			return nil, fmt.Errorf("parse recipe yaml: %w", err)
		}
		if single.Title == "" && len(single.Steps) == 0 {
			return nil, fmt.Errorf("parse recipe yaml: no recipes found")
		}
		file.Recipes = []yamlRecipe{single}
	}

	out := make([]*domain.Recipe, 0, len(file.Recipes))
	for i, yr := range file.Recipes {
		r, err := fromYAML(yr)
		if err != nil {
			return nil, fmt.Errorf("recipe %d (%s): %w", i+1, yr.Title, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// LoadFile decodes the recipes stored in the YAML file at path.
func LoadFile(path string) ([]*domain.Recipe, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe file: %w", err)
	}
	return Decode(bytes.NewReader(raw))
}

// Encode writes recipes as a YAML document with a top-level "recipes" list.
func Encode(w io.Writer, recipes ...*domain.Recipe) error {
	file := yamlFile{Recipes: make([]yamlRecipe, 0, len(recipes))}
	for _, r := range recipes {
		file.Recipes = append(file.Recipes, toYAML(r))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("marshal recipe yaml: %w", err)
	}
	return enc.Close()
}

func fromYAML(yr yamlRecipe) (*domain.Recipe, error) {
	r := &domain.Recipe{
		ID:         orNewID(yr.ID),
		Title:      strings.TrimSpace(yr.Title),
		Cuisine:    strings.TrimSpace(yr.Cuisine),
		Difficulty: normalizeDifficulty(yr.Difficulty),
		Favorite:   yr.Favorite,
	}

	byKey := make(map[string]string, len(yr.Ingredients)*2)
	for _, yi := range yr.Ingredients {
		ing := domain.Ingredient{
			ID:       orNewID(yi.ID),
			Name:     strings.TrimSpace(yi.Name),
			Quantity: yi.Quantity,
			Unit:     strings.TrimSpace(yi.Unit),
		}
		r.Ingredients = append(r.Ingredients, ing)
		byKey[ing.ID] = ing.ID
		if ing.Name != "" {
			byKey[strings.ToLower(ing.Name)] = ing.ID
		}
	}

	for i, ys := range yr.Steps {
		step := domain.Step{
			ID:              orNewID(ys.ID),
			Description:     strings.TrimSpace(ys.Description),
			Type:            domain.StepType(strings.ToLower(strings.TrimSpace(ys.Type))),
			DurationMinutes: ys.Minutes,
		}
		if ys.Settings != nil {
			step.Settings = &domain.CookingSettings{
				Temperature: ys.Settings.Temperature,
				Speed:       ys.Settings.Speed,
			}
		}
		for _, ref := range ys.Ingredients {
			id, ok := byKey[ref]
			if !ok {
				id, ok = byKey[strings.ToLower(strings.TrimSpace(ref))]
			}
			if !ok {
				return nil, fmt.Errorf("step %d: unknown ingredient %q", i+1, ref)
			}
			step.IngredientIDs = append(step.IngredientIDs, id)
		}
		r.Steps = append(r.Steps, step)
	}
	return r, nil
}

func toYAML(r *domain.Recipe) yamlRecipe {
	yr := yamlRecipe{
		ID:         r.ID,
		Title:      r.Title,
		Cuisine:    r.Cuisine,
		Difficulty: string(r.Difficulty),
		Favorite:   r.Favorite,
	}
	for _, ing := range r.Ingredients {
		yr.Ingredients = append(yr.Ingredients, yamlIngredient(ing))
	}
	for _, step := range r.Steps {
		ys := yamlStep{
			ID:          step.ID,
			Description: step.Description,
			Type:        string(step.Type),
			Minutes:     step.DurationMinutes,
			Ingredients: step.IngredientIDs,
		}
		if step.Settings != nil {
			ys.Settings = &yamlSettings{Temperature: step.Settings.Temperature, Speed: step.Settings.Speed}
		}
		yr.Steps = append(yr.Steps, ys)
	}
	return yr
}

func orNewID(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.NewString()
}

// normalizeDifficulty accepts any casing of the known difficulties.
func normalizeDifficulty(s string) domain.Difficulty {
	for _, d := range []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard} {
		if strings.EqualFold(s, string(d)) {
			return d
		}
	}
	return domain.Difficulty(s)
}
