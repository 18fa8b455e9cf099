package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/stepcook/internal/domain"
	"github.com/hammamikhairi/stepcook/internal/recipe"
)

func newRecipesCmd(flags *globalFlags) *cobra.Command {
	recipes := &cobra.Command{Use: "recipes", Short: "Manage the recipe database"}
	recipes.AddCommand(
		newRecipesListCmd(flags),
		newRecipesShowCmd(flags),
		newRecipesImportCmd(flags),
		newRecipesExportCmd(flags),
		newRecipesDeleteCmd(flags),
		newRecipesFavoriteCmd(flags),
	)
	return recipes
}

func newRecipesListCmd(flags *globalFlags) *cobra.Command {
	var sortBy, search string
	var favorites bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			by, err := recipe.ParseSortBy(sortBy)
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), flags, func(a *app) error {
				var list []domain.RecipeSummary
				if search != "" {
					list, err = a.store.Search(cmd.Context(), search)
				} else {
					list, err = a.store.List(cmd.Context())
				}
				if err != nil {
					return err
				}
				if favorites {
					list = recipe.FilterFavorites(list)
				}
				recipe.Sort(list, by)
				printSummaries(cmd.OutOrStdout(), list)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&sortBy, "sort", "title", "ordering: title, time, difficulty")
	cmd.Flags().StringVar(&search, "search", "", "only recipes whose title, cuisine or ingredients match")
	cmd.Flags().BoolVar(&favorites, "favorites", false, "show favorites only")
	return cmd
}

func printSummaries(w io.Writer, list []domain.RecipeSummary) {
	if len(list) == 0 {
		_, _ = fmt.Fprintln(w, "no recipes")
		return
	}
	for _, s := range list {
		star := " "
		if s.Favorite {
			star = "*"
		}
		_, _ = fmt.Fprintf(w, "%s %-36s  %-28s  %-6s  %3d min  %d steps\n",
			star, s.ID, s.Title, s.Difficulty, s.TotalMinutes, s.StepCount)
	}
}

func newRecipesShowCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <recipe id or title>",
		Short: "Show a recipe's ingredients and steps",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), flags, func(a *app) error {
				r, err := resolveRecipe(cmd.Context(), a.store, strings.Join(args, " "))
				if err != nil {
					return err
				}
				printRecipe(cmd.OutOrStdout(), r)
				return nil
			})
		},
	}
}

func printRecipe(w io.Writer, r *domain.Recipe) {
	_, _ = fmt.Fprintf(w, "%s\n", r.Title)
	meta := fmt.Sprintf("%s, %d min", r.Difficulty, recipe.TotalMinutes(r))
	if r.Cuisine != "" {
		meta += ", " + r.Cuisine
	}
	if r.Favorite {
		meta += ", favorite"
	}
	_, _ = fmt.Fprintf(w, "%s\nid: %s\n\nIngredients:\n", meta, r.ID)
	for _, ing := range r.Ingredients {
		_, _ = fmt.Fprintf(w, "  - %g %s %s\n", ing.Quantity, ing.Unit, ing.Name)
	}
	_, _ = fmt.Fprintln(w, "\nSteps:")
	for i, step := range r.Steps {
		_, _ = fmt.Fprintf(w, "  %d. %s (%d min)\n", i+1, step.Description, step.DurationMinutes)
		if step.Settings != nil {
			_, _ = fmt.Fprintf(w, "     %d°C, speed %d\n", step.Settings.Temperature, step.Settings.Speed)
		}
	}
}

func newRecipesImportCmd(flags *globalFlags) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file.yaml>...",
		Short: "Import recipes from YAML files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), flags, func(a *app) error {
				for _, path := range args {
					n, err := importFile(cmd.Context(), a.store, path, replace)
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d recipe(s) from %s\n", n, path)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "overwrite recipes whose id already exists")
	return cmd
}

// importFile validates every recipe in path before saving any of them.
func importFile(ctx context.Context, store domain.RecipeStore, path string, replace bool) (int, error) {
	recipes, err := recipe.LoadFile(path)
	if err != nil {
		return 0, err
	}
	for _, r := range recipes {
		if err := recipe.Validate(r); err != nil {
			return 0, fmt.Errorf("%s: %q: %w", path, r.Title, err)
		}
		if replace {
			continue
		}
		if _, err := store.Get(ctx, r.ID); err == nil {
			return 0, fmt.Errorf("%s: recipe %s: %w (use --replace)", path, r.ID, domain.ErrAlreadyExists)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return 0, err
		}
	}
	for _, r := range recipes {
		if err := store.Save(ctx, r); err != nil {
			return 0, fmt.Errorf("%s: saving %q: %w", path, r.Title, err)
		}
	}
	return len(recipes), nil
}

func newRecipesExportCmd(flags *globalFlags) *cobra.Command {
	var output string
	var all bool

	cmd := &cobra.Command{
		Use:   "export [recipe id...]",
		Short: "Export recipes as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return errors.New("name at least one recipe id, or pass --all")
			}
			return withApp(cmd.Context(), flags, func(a *app) error {
				ids := args
				if all {
					list, err := a.store.List(cmd.Context())
					if err != nil {
						return err
					}
					recipe.Sort(list, recipe.SortByTitle)
					ids = nil
					for _, s := range list {
						ids = append(ids, s.ID)
					}
				}

				recipes := make([]*domain.Recipe, 0, len(ids))
				for _, id := range ids {
					r, err := a.store.Get(cmd.Context(), id)
					if err != nil {
						return fmt.Errorf("export %s: %w", id, err)
					}
					recipes = append(recipes, r)
				}

				w := cmd.OutOrStdout()
				if output != "" && output != "-" {
					f, err := os.Create(output)
					if err != nil {
						return err
					}
					defer f.Close()
					w = f
				}
				return recipe.Encode(w, recipes...)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().BoolVar(&all, "all", false, "export every recipe")
	return cmd
}

func newRecipesDeleteCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <recipe id>...",
		Short: "Delete recipes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), flags, func(a *app) error {
				for _, id := range args {
					if err := a.store.Delete(cmd.Context(), id); err != nil {
						return fmt.Errorf("delete %s: %w", id, err)
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
				}
				return nil
			})
		},
	}
}

func newRecipesFavoriteCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <recipe id>",
		Short: "Toggle a recipe's favorite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), flags, func(a *app) error {
				fav, err := a.store.ToggleFavorite(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				state := "removed from favorites"
				if fav {
					state = "added to favorites"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", args[0], state)
				return nil
			})
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.yaml>...",
		Short: "Check recipe files without importing them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				if err := validateFile(out, path); err != nil {
					failed++
					_, _ = fmt.Fprintf(out, "%s: %v\n", path, err)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) invalid", failed, len(args))
			}
			return nil
		},
	}
}

func validateFile(w io.Writer, path string) error {
	recipes, err := recipe.LoadFile(path)
	if err != nil {
		return err
	}
	var errs []error
	for _, r := range recipes {
		if err := recipe.Validate(r); err != nil {
			errs = append(errs, fmt.Errorf("%q: %w", r.Title, err))
			continue
		}
		_, _ = fmt.Fprintf(w, "%s: ok %q (%d steps, %d min)\n", path, r.Title, len(r.Steps), recipe.TotalMinutes(r))
	}
	return errors.Join(errs...)
}
