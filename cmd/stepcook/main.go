// stepcook: a terminal cooking companion.
//
// Usage:
//
//	stepcook [tui]                 interactive recipe browser and timer
//	stepcook cook <recipe>         line-driven cooking session
//	stepcook recipes ...           manage the recipe database
//	stepcook validate <file.yaml>  check a recipe file without importing it
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/stepcook/internal/chime"
	"github.com/hammamikhairi/stepcook/internal/config"
	"github.com/hammamikhairi/stepcook/internal/domain"
	"github.com/hammamikhairi/stepcook/internal/logger"
	"github.com/hammamikhairi/stepcook/internal/recipe"
	"github.com/hammamikhairi/stepcook/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// globalFlags override the environment configuration.
type globalFlags struct {
	dbPath   string
	logLevel string
	logFile  string
	noChime  bool
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "stepcook",
		Short:         "Step-by-step cooking timer for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), &flags, tuiOptions{sortBy: string(recipe.SortByTitle)})
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.dbPath, "db", "", "recipe database path, or :memory: for a throwaway store (default $STEPCOOK_DB_PATH or the user config dir)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: off, normal, verbose")
	pf.StringVar(&flags.logFile, "log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	pf.BoolVar(&flags.noChime, "no-chime", false, "disable the audible step chime")

	root.AddCommand(newTUICmd(&flags))
	root.AddCommand(newCookCmd(&flags))
	root.AddCommand(newRecipesCmd(&flags))
	root.AddCommand(newValidateCmd())
	return root
}

// app holds the wired dependencies shared by every subcommand.
type app struct {
	cfg   config.Config
	log   *logger.Logger
	store domain.RecipeStore

	closeStore func() error
	closeLog   func() error
}

func loadApp(ctx context.Context, flags *globalFlags) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flags.dbPath != "" {
		cfg.DBPath = flags.dbPath
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.logFile != "" {
		cfg.LogFile = flags.logFile
	}
	if flags.noChime {
		cfg.Chime = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out, closeLog, err := logger.OpenOutput(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", cfg.LogFile, err)
		out, closeLog = os.Stderr, func() error { return nil }
	}
	log := logger.New(cfg.Level(), out)

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	return &app{cfg: cfg, log: log, store: store, closeStore: closeStore, closeLog: closeLog}, nil
}

// openStore opens the SQLite database at cfg.DBPath, or an in-memory
// store for config.MemoryDB. Sample recipes are seeded into an empty
// store when cfg.Seed is set.
func openStore(ctx context.Context, cfg config.Config, log *logger.Logger) (domain.RecipeStore, func() error, error) {
	if cfg.InMemory() {
		var samples []*domain.Recipe
		if cfg.Seed {
			samples = recipe.Samples()
		}
		log.Info("using an in-memory recipe store; changes are discarded on exit")
		return recipe.NewMemorySourceWith(log, samples...), func() error { return nil }, nil
	}

	store, err := storage.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Seed {
		n, err := store.Seed(ctx, recipe.Samples())
		if err != nil {
			log.Warn("seeding sample recipes: %v", err)
		} else if n > 0 {
			log.Info("seeded %d sample recipes", n)
		}
	}
	return store, store.Close, nil
}

func (a *app) newChime() domain.Chime {
	return chime.New(a.cfg.Chime, a.log)
}

func (a *app) Close() error {
	return errors.Join(a.closeStore(), a.closeLog())
}

// withApp loads the app, runs fn and closes the app again.
func withApp(ctx context.Context, flags *globalFlags, fn func(*app) error) (err error) {
	a, err := loadApp(ctx, flags)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(a)
}
