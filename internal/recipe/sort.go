package recipe

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hammamikhairi/stepcook/internal/domain"
)

// SortBy selects the ordering of a recipe listing.
type SortBy string

const (
	SortByTitle      SortBy = "title"
	SortByTime       SortBy = "time"
	SortByDifficulty SortBy = "difficulty"
)

// ParseSortBy converts a flag value into a SortBy.
func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(strings.ToLower(s)) {
	case "", SortByTitle:
		return SortByTitle, nil
	case SortByTime:
		return SortByTime, nil
	case SortByDifficulty:
		return SortByDifficulty, nil
	default:
		return "", fmt.Errorf("unknown sort order %q (want title, time or difficulty)", s)
	}
}

// TotalMinutes sums the step durations of r.
func TotalMinutes(r *domain.Recipe) int {
	total := 0
	for _, step := range r.Steps {
		total += step.DurationMinutes
	}
	return total
}

// Summarize builds the listing view of r.
func Summarize(r *domain.Recipe) domain.RecipeSummary {
	return domain.RecipeSummary{
		ID:           r.ID,
		Title:        r.Title,
		Cuisine:      r.Cuisine,
		Difficulty:   r.Difficulty,
		Favorite:     r.Favorite,
		TotalMinutes: TotalMinutes(r),
		StepCount:    len(r.Steps),
	}
}

// Sort orders summaries in place. Ties fall back to title so the order
// is stable across stores.
func Sort(summaries []domain.RecipeSummary, by SortBy) {
	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		switch by {
		case SortByTime:
			if a.TotalMinutes != b.TotalMinutes {
				return a.TotalMinutes < b.TotalMinutes
			}
		case SortByDifficulty:
			if a.Difficulty.Rank() != b.Difficulty.Rank() {
				return a.Difficulty.Rank() < b.Difficulty.Rank()
			}
		}
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	})
}

// FilterFavorites returns only the favorite recipes.
func FilterFavorites(summaries []domain.RecipeSummary) []domain.RecipeSummary {
	var out []domain.RecipeSummary
	for _, s := range summaries {
		if s.Favorite {
			out = append(out, s)
		}
	}
	return out
}
