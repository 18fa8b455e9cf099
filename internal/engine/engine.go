// Package engine implements the core cooking session state machine.
//
// The Engine owns a registry of sessions keyed by recipe ID and a single
// active recipe ID. At most one session exists at a time and it is always
// the active one. Every operation is a synchronous state transition; none
// blocks and none is safe for concurrent use. Callers drive the engine
// from a single goroutine (a Bubble Tea Update loop or the cook driver).
package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/hammamikhairi/stepcook/internal/domain"
	"github.com/hammamikhairi/stepcook/internal/logger"
)

// Option configures the engine.
type Option func(*Engine)

// WithClock replaces the wall clock used to measure tick deltas.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine manages the single active cooking session.
type Engine struct {
	sessions map[string]*domain.Session
	activeID string
	now      func() time.Time
	log      *logger.Logger
}

// New creates a session engine with an empty registry.
func New(log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		sessions: make(map[string]*domain.Session),
		now:      time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CheckStart reports whether a session for recipeID may start. It returns
// ErrSessionConflict when a different recipe is already active. Callers
// surface this to the user before calling Start.
func (e *Engine) CheckStart(recipeID string) error {
	if e.activeID != "" && e.activeID != recipeID {
		return fmt.Errorf("recipe %s is active: %w", e.activeID, domain.ErrSessionConflict)
	}
	return nil
}

// Start begins (or restarts) the session for recipe. If a different recipe
// is already active the call is a logged no-op. A recipe without steps or
// with a non-positive step duration is rejected.
func (e *Engine) Start(recipe *domain.Recipe) error {
	if len(recipe.Steps) == 0 {
		return domain.ErrNoSteps
	}
	total := 0
	for i, step := range recipe.Steps {
		if step.DurationMinutes <= 0 {
			return fmt.Errorf("step %d: %w", i+1, domain.ErrInvalidDuration)
		}
		total += step.DurationSec()
	}

	if err := e.CheckStart(recipe.ID); err != nil {
		e.log.Warn("ignoring start for recipe %s: %v", recipe.ID, err)
		return nil
	}

	e.activeID = recipe.ID
	e.sessions[recipe.ID] = &domain.Session{
		RecipeID:            recipe.ID,
		CurrentStepIndex:    0,
		IsRunning:           true,
		StepRemainingSec:    recipe.Steps[0].DurationSec(),
		OverallRemainingSec: total,
		LastTickTs:          e.now(),
	}

	e.log.Info("started session for recipe %s (%d steps, %ds)", recipe.ID, len(recipe.Steps), total)
	return nil
}

// Pause stops time accounting for the active session. Idempotent.
func (e *Engine) Pause() {
	session := e.active()
	if session == nil {
		return
	}
	if session.IsRunning {
		e.log.Info("session for recipe %s paused", session.RecipeID)
	}
	session.IsRunning = false
}

// Resume restarts time accounting for the active session. The paused
// interval is discarded by re-anchoring the last tick timestamp.
func (e *Engine) Resume() {
	session := e.active()
	if session == nil {
		return
	}
	if !session.IsRunning {
		e.log.Info("session for recipe %s resumed", session.RecipeID)
	}
	session.IsRunning = true
	session.LastTickTs = e.now()
}

// Tick applies the wall-clock time elapsed since the last applied tick.
// It is a no-op when recipe is not the active recipe, when the session is
// paused, or when the elapsed time rounds to less than one second (the
// fraction then stays unaccounted until the next tick). At most one step
// boundary is crossed per call; any overshoot carries into the next step.
func (e *Engine) Tick(recipe *domain.Recipe) Outcome {
	session := e.activeFor(recipe)
	if session == nil || !session.IsRunning {
		return OutcomeNone
	}

	now := e.now()
	deltaSec := int(math.Round(now.Sub(session.LastTickTs).Seconds()))
	if deltaSec < 1 {
		return OutcomeNone
	}

	session.LastTickTs = now
	session.StepRemainingSec -= deltaSec
	session.OverallRemainingSec -= deltaSec

	if session.StepRemainingSec > 0 {
		return OutcomeTicked
	}

	if session.CurrentStepIndex >= len(recipe.Steps)-1 {
		e.complete(recipe.ID)
		return OutcomeCompleted
	}

	session.CurrentStepIndex++
	next := recipe.Steps[session.CurrentStepIndex]
	carry := session.StepRemainingSec
	session.StepRemainingSec = next.DurationSec() + carry

	e.log.Debug("recipe %s advanced to step %d/%d (carry %ds)",
		recipe.ID, session.CurrentStepIndex+1, len(recipe.Steps), carry)
	return OutcomeAdvanced
}

// StopCurrentStep ends the current step immediately. Its remaining time is
// written off the overall countdown rather than carried.
func (e *Engine) StopCurrentStep(recipe *domain.Recipe) Outcome {
	session := e.activeFor(recipe)
	if session == nil {
		return OutcomeNone
	}

	session.OverallRemainingSec -= session.StepRemainingSec

	if session.CurrentStepIndex >= len(recipe.Steps)-1 {
		e.complete(recipe.ID)
		return OutcomeCompleted
	}

	session.CurrentStepIndex++
	session.StepRemainingSec = recipe.Steps[session.CurrentStepIndex].DurationSec()
	session.LastTickTs = e.now()

	e.log.Debug("recipe %s stopped step, now on %d/%d",
		recipe.ID, session.CurrentStepIndex+1, len(recipe.Steps))
	return OutcomeAdvanced
}

// EndSession abandons the active session regardless of progress.
func (e *Engine) EndSession() {
	if e.activeID == "" {
		return
	}
	e.log.Info("session for recipe %s ended", e.activeID)
	delete(e.sessions, e.activeID)
	e.activeID = ""
}

// Session returns a copy of the session for recipeID, if one exists.
func (e *Engine) Session(recipeID string) (domain.Session, bool) {
	s, ok := e.sessions[recipeID]
	if !ok {
		return domain.Session{}, false
	}
	return *s, true
}

// ActiveRecipeID returns the ID of the recipe currently being cooked.
func (e *Engine) ActiveRecipeID() (string, bool) {
	return e.activeID, e.activeID != ""
}

// Status returns the display status of recipeID's session.
func (e *Engine) Status(recipeID string) domain.SessionStatus {
	s, ok := e.sessions[recipeID]
	switch {
	case !ok:
		return domain.SessionAbsent
	case s.IsRunning:
		return domain.SessionRunning
	default:
		return domain.SessionPaused
	}
}

// active returns the active session, or nil.
func (e *Engine) active() *domain.Session {
	if e.activeID == "" {
		return nil
	}
	return e.sessions[e.activeID]
}

// activeFor returns the active session only if it belongs to recipe.
// Commands for any other recipe are stale and must be ignored.
func (e *Engine) activeFor(recipe *domain.Recipe) *domain.Session {
	if recipe == nil || recipe.ID != e.activeID {
		return nil
	}
	return e.active()
}

// complete removes the finished session and clears the active ID.
func (e *Engine) complete(recipeID string) {
	delete(e.sessions, recipeID)
	e.activeID = ""
	e.log.Info("session for recipe %s completed", recipeID)
}
