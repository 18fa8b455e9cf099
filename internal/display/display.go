// Package display is the interactive terminal UI.
//
// It has two screens: a recipe list with a mini player for the running
// session, and a cook screen with the step timeline, countdowns and
// progress bars. All engine calls happen inside Update, so the engine is
// only ever touched from the Bubble Tea event loop.
//
// The heartbeat is a tea.Tick that is scheduled only while the active
// session runs. Every tick carries a generation number; any state change
// bumps the generation so ticks already in flight are dropped on arrival.
package display

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/stepcook/internal/domain"
	"github.com/hammamikhairi/stepcook/internal/engine"
	"github.com/hammamikhairi/stepcook/internal/logger"
	"github.com/hammamikhairi/stepcook/internal/recipe"
)

const (
	appTitle    = "stepcook"
	maxBarWidth = 60
)

type screen int

const (
	screenList screen = iota
	screenCook
)

// Messages.
type (
	tickMsg struct {
		gen int
		at  time.Time
	}
	recipesMsg struct {
		summaries []domain.RecipeSummary
		err       error
	}
	recipeMsg struct {
		recipe *domain.Recipe
		err    error
	}
	favoriteMsg struct {
		id       string
		favorite bool
		err      error
	}
)

// Option configures the UI.
type Option func(*model)

// WithInterval sets the heartbeat interval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(m *model) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithChime plays cues at step boundaries and on completion.
func WithChime(c domain.Chime) Option {
	return func(m *model) { m.chime = c }
}

// WithSortBy sets the initial list ordering.
func WithSortBy(by recipe.SortBy) Option {
	return func(m *model) { m.sortBy = by }
}

// WithFavoritesOnly starts the list filtered to favorites.
func WithFavoritesOnly() Option {
	return func(m *model) { m.favoritesOnly = true }
}

// Run starts the TUI and blocks until the user quits or ctx is done.
// A session still active on exit is dropped.
func Run(ctx context.Context, store domain.RecipeStore, eng *engine.Engine, log *logger.Logger, opts ...Option) error {
	m := newModel(ctx, store, eng, log, opts...)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := p.Run()
	if id, ok := eng.ActiveRecipeID(); ok {
		log.Info("dropping session for recipe %s on exit", id)
		eng.EndSession()
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

type model struct {
	ctx   context.Context
	store domain.RecipeStore
	eng   *engine.Engine
	chime domain.Chime
	log   *logger.Logger

	listKeys   listKeys
	cookKeys   cookKeys
	help       help.Model
	stepBar    progress.Model
	overallBar progress.Model

	interval time.Duration
	gen      int

	screen        screen
	recipes       []domain.RecipeSummary
	cursor        int
	sortBy        recipe.SortBy
	favoritesOnly bool

	current  *domain.Recipe // recipe on the cook screen
	active   *domain.Recipe // recipe of the running or paused session
	finished string         // recipe whose completion is on screen
	err      string
	width    int
}

func newModel(ctx context.Context, store domain.RecipeStore, eng *engine.Engine, log *logger.Logger, opts ...Option) model {
	m := model{
		ctx:        ctx,
		store:      store,
		eng:        eng,
		log:        log,
		listKeys:   newListKeys(),
		cookKeys:   newCookKeys(),
		help:       help.New(),
		stepBar:    progress.New(progress.WithGradient("#bae6fd", "#bbf7d0"), progress.WithoutPercentage()),
		overallBar: progress.New(progress.WithGradient("#fde68a", "#fca5a5"), progress.WithoutPercentage()),
		interval:   time.Second,
		sortBy:     recipe.SortByTitle,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.setWidth(80)
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.loadRecipes(), tea.SetWindowTitle(appTitle))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setWidth(msg.Width)
		return m, nil

	case recipesMsg:
		if msg.err != nil {
			m.err = fmt.Sprintf("load recipes: %v", msg.err)
			return m, nil
		}
		m.recipes = msg.summaries
		if m.cursor >= len(m.recipes) {
			m.cursor = len(m.recipes) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case recipeMsg:
		if msg.err != nil {
			m.err = fmt.Sprintf("open recipe: %v", msg.err)
			return m, nil
		}
		m.open(msg.recipe)
		return m, nil

	case favoriteMsg:
		if msg.err != nil {
			m.err = fmt.Sprintf("favorite: %v", msg.err)
			return m, nil
		}
		m.log.Debug("recipe %s favorite=%t", msg.id, msg.favorite)
		return m, m.loadRecipes()

	case tickMsg:
		return m.onTick(msg)

	case tea.KeyMsg:
		if m.screen == screenCook {
			return m.updateCook(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.listKeys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, k.Down):
		if m.cursor < len(m.recipes)-1 {
			m.cursor++
		}
	case key.Matches(msg, k.Open):
		if s, ok := m.selected(); ok {
			return m, m.loadRecipe(s.ID)
		}
	case key.Matches(msg, k.Favorite):
		if s, ok := m.selected(); ok {
			return m, m.toggleFavorite(s.ID)
		}
	case key.Matches(msg, k.Sort):
		m.sortBy = nextSort(m.sortBy)
		return m, m.loadRecipes()
	case key.Matches(msg, k.Favorites):
		m.favoritesOnly = !m.favoritesOnly
		m.cursor = 0
		return m, m.loadRecipes()
	case key.Matches(msg, k.Player):
		if m.active != nil {
			m.open(m.active)
		}
	}
	return m, nil
}

func (m model) updateCook(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.cookKeys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Back):
		m.screen = screenList
		m.finished = ""
		m.err = ""
		return m, m.loadRecipes()

	case key.Matches(msg, k.Start):
		return m.start()

	case key.Matches(msg, k.Toggle):
		if !m.cookingCurrent() {
			return m, nil
		}
		r := m.active
		if m.eng.Status(r.ID) == domain.SessionPaused {
			m.eng.Resume()
			cmd := m.settle(r, engine.OutcomeNone)
			return m, cmd
		}
		out := m.eng.Tick(r)
		if m.eng.Status(r.ID) != domain.SessionAbsent {
			m.eng.Pause()
		}
		cmd := m.settle(r, out)
		return m, cmd

	case key.Matches(msg, k.Stop):
		if !m.cookingCurrent() {
			return m, nil
		}
		r := m.active
		out := m.eng.Tick(r)
		// A tick that crossed the boundary already finished the step.
		if out != engine.OutcomeAdvanced && m.eng.Status(r.ID) != domain.SessionAbsent {
			out = m.eng.StopCurrentStep(r)
		}
		cmd := m.settle(r, out)
		return m, cmd

	case key.Matches(msg, k.End):
		if !m.cookingCurrent() {
			return m, nil
		}
		m.eng.EndSession()
		m.active = nil
		m.err = ""
		cmd := m.schedule()
		return m, tea.Batch(cmd, tea.SetWindowTitle(appTitle))
	}
	return m, nil
}

// start begins a session for the recipe on screen. A different active
// recipe is reported instead of silently ignored.
func (m model) start() (tea.Model, tea.Cmd) {
	if m.current == nil {
		return m, nil
	}
	if err := m.eng.CheckStart(m.current.ID); err != nil {
		m.err = m.conflictLine()
		m.log.Warn("start refused: %v", err)
		return m, nil
	}
	if err := m.eng.Start(m.current); err != nil {
		m.err = fmt.Sprintf("Cannot start this recipe: %v", err)
		return m, nil
	}
	m.active = m.current
	m.finished = ""
	m.err = ""
	cmd := m.schedule()
	return m, tea.Batch(cmd, tea.SetWindowTitle(m.title()))
}

func (m model) onTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || m.active == nil {
		return m, nil
	}
	r := m.active
	cmd := m.settle(r, m.eng.Tick(r))
	return m, cmd
}

// settle reacts to an engine call on r. A session that went absent
// without an explicit end has finished.
func (m *model) settle(r *domain.Recipe, out engine.Outcome) tea.Cmd {
	var cmds []tea.Cmd
	switch {
	case m.eng.Status(r.ID) == domain.SessionAbsent:
		m.log.Info("recipe %s complete", r.ID)
		m.active = nil
		m.finished = r.ID
		cmds = append(cmds, m.ring(true))
	case out == engine.OutcomeAdvanced:
		cmds = append(cmds, m.ring(false))
	}
	cmds = append(cmds, m.schedule(), tea.SetWindowTitle(m.title()))
	return tea.Batch(cmds...)
}

// schedule invalidates any tick in flight and, while the active session
// runs, schedules the next one.
func (m *model) schedule() tea.Cmd {
	m.gen++
	if m.active == nil || m.eng.Status(m.active.ID) != domain.SessionRunning {
		return nil
	}
	gen := m.gen
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

func (m model) ring(done bool) tea.Cmd {
	if m.chime == nil {
		return nil
	}
	ctx, c, log := m.ctx, m.chime, m.log
	return func() tea.Msg {
		var err error
		if done {
			err = c.Done(ctx)
		} else {
			err = c.Step(ctx)
		}
		if err != nil {
			log.Warn("chime: %v", err)
		}
		return nil
	}
}

func (m *model) open(r *domain.Recipe) {
	if m.active != nil && m.active.ID == r.ID {
		r = m.active
	}
	m.current = r
	m.screen = screenCook
	m.finished = ""
	m.err = ""
}

// cookingCurrent reports whether the recipe on screen owns the session.
func (m model) cookingCurrent() bool {
	return m.current != nil && m.active != nil && m.current.ID == m.active.ID
}

func (m model) selected() (domain.RecipeSummary, bool) {
	if m.cursor < 0 || m.cursor >= len(m.recipes) {
		return domain.RecipeSummary{}, false
	}
	return m.recipes[m.cursor], true
}

func (m model) conflictLine() string {
	title := "another recipe"
	if m.active != nil {
		title = m.active.Title
	}
	return fmt.Sprintf("%s is already cooking. End that session before starting a new one.", title)
}

func (m *model) setWidth(w int) {
	m.width = w
	m.help.Width = w
	bar := w - 4
	if bar > maxBarWidth {
		bar = maxBarWidth
	}
	if bar < 10 {
		bar = 10
	}
	m.stepBar.Width = bar
	m.overallBar.Width = bar
}

// title is the terminal window title: the live countdown while cooking.
func (m model) title() string {
	if m.active == nil {
		return appTitle
	}
	s, ok := m.eng.Session(m.active.ID)
	if !ok {
		return appTitle
	}
	state := ""
	if !s.IsRunning {
		state = " (paused)"
	}
	return fmt.Sprintf("%s: step %d/%d %s%s", appTitle,
		s.CurrentStepIndex+1, len(m.active.Steps),
		domain.FormatClock(s.DisplayStepRemaining()), state)
}

func (m model) loadRecipes() tea.Cmd {
	ctx, store, by, favs := m.ctx, m.store, m.sortBy, m.favoritesOnly
	return func() tea.Msg {
		list, err := store.List(ctx)
		if err != nil {
			return recipesMsg{err: err}
		}
		if favs {
			list = recipe.FilterFavorites(list)
		}
		recipe.Sort(list, by)
		return recipesMsg{summaries: list}
	}
}

func (m model) loadRecipe(id string) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		r, err := store.Get(ctx, id)
		return recipeMsg{recipe: r, err: err}
	}
}

func (m model) toggleFavorite(id string) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		fav, err := store.ToggleFavorite(ctx, id)
		return favoriteMsg{id: id, favorite: fav, err: err}
	}
}

func nextSort(by recipe.SortBy) recipe.SortBy {
	switch by {
	case recipe.SortByTitle:
		return recipe.SortByTime
	case recipe.SortByTime:
		return recipe.SortByDifficulty
	default:
		return recipe.SortByTitle
	}
}
