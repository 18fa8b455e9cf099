package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/stepcook/internal/display"
	"github.com/hammamikhairi/stepcook/internal/engine"
	"github.com/hammamikhairi/stepcook/internal/recipe"
)

type tuiOptions struct {
	sortBy    string
	favorites bool
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	var opts tuiOptions

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse recipes and cook with live timers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), flags, opts)
		},
	}
	cmd.Flags().StringVar(&opts.sortBy, "sort", "title", "initial ordering: title, time, difficulty")
	cmd.Flags().BoolVar(&opts.favorites, "favorites", false, "show favorites only")
	return cmd
}

func runTUI(ctx context.Context, flags *globalFlags, opts tuiOptions) error {
	by, err := recipe.ParseSortBy(opts.sortBy)
	if err != nil {
		return err
	}

	return withApp(ctx, flags, func(a *app) error {
		uiOpts := []display.Option{
			display.WithInterval(a.cfg.TickInterval),
			display.WithChime(a.newChime()),
			display.WithSortBy(by),
		}
		if opts.favorites {
			uiOpts = append(uiOpts, display.WithFavoritesOnly())
		}

		a.log.Info("starting tui (db=%s)", a.cfg.DBPath)
		return display.Run(ctx, a.store, engine.New(a.log), a.log, uiOpts...)
	})
}
