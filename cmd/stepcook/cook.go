package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/stepcook/internal/conversation"
	"github.com/hammamikhairi/stepcook/internal/cook"
	"github.com/hammamikhairi/stepcook/internal/display"
	"github.com/hammamikhairi/stepcook/internal/domain"
	"github.com/hammamikhairi/stepcook/internal/engine"
	"github.com/hammamikhairi/stepcook/internal/heartbeat"
)

func newCookCmd(flags *globalFlags) *cobra.Command {
	var noBanner bool

	cmd := &cobra.Command{
		Use:   "cook <recipe id or title>",
		Short: "Cook a recipe with typed commands (pause, resume, next, status, end)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), flags, func(a *app) error {
				r, err := resolveRecipe(cmd.Context(), a.store, strings.Join(args, " "))
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !noBanner {
					fmt.Fprint(out, display.RenderBanner())
				}
				return runCook(cmd.Context(), a, r, cmd.InOrStdin(), out)
			})
		},
	}
	cmd.Flags().BoolVar(&noBanner, "no-banner", false, "skip the startup banner")
	return cmd
}

// runCook drives one session from line input until it completes, the
// user ends it, or ctx is cancelled. Closing the input leaves the
// session running.
func runCook(ctx context.Context, a *app, r *domain.Recipe, in io.Reader, out io.Writer) error {
	notifier := conversation.NewCLINotifier(a.log, out)
	parser := conversation.NewKeywordParser(a.log)
	beat := heartbeat.New(a.log, heartbeat.WithInterval(a.cfg.TickInterval))
	driver := cook.NewDriver(engine.New(a.log), r, beat, notifier, a.newChime(), a.log)
	a.log.Debug("cooking %s with a %s heartbeat", r.ID, beat.Interval())

	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			if !driver.Send(parser.Parse(scanner.Text())) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			a.log.Warn("reading input: %v", err)
		}
	}()

	res, err := driver.Run(ctx)
	if err != nil {
		return fmt.Errorf("cook %s: %w", r.Title, err)
	}
	a.log.Info("cook session for %s finished: %s", r.ID, res)
	return nil
}

// resolveRecipe finds a recipe by id, then by a unique title match.
func resolveRecipe(ctx context.Context, src domain.RecipeSource, ref string) (*domain.Recipe, error) {
	r, err := src.Get(ctx, ref)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	matches, err := src.Search(ctx, ref)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("recipe %q: %w", ref, domain.ErrNotFound)
	case 1:
		return src.Get(ctx, matches[0].ID)
	}

	var b strings.Builder
	for _, m := range matches {
		if strings.EqualFold(m.Title, ref) {
			return src.Get(ctx, m.ID)
		}
		fmt.Fprintf(&b, "\n  %s  %s", m.ID, m.Title)
	}
	return nil, fmt.Errorf("%q matches %d recipes, use an id:%s", ref, len(matches), b.String())
}
