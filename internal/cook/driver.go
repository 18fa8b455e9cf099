// Package cook runs a cooking session without a UI: typed commands and
// heartbeat beats go in, step announcements and chimes come out.
package cook

import (
	"context"
	"time"

	"github.com/hammamikhairi/stepcook/internal/domain"
	"github.com/hammamikhairi/stepcook/internal/engine"
	"github.com/hammamikhairi/stepcook/internal/logger"
	"github.com/hammamikhairi/stepcook/internal/recipe"
)

// Heartbeat is the periodic trigger the driver starts while the session
// is running and stops while it is paused. *heartbeat.Heartbeat satisfies it.
type Heartbeat interface {
	Start(ctx context.Context)
	Stop()
	C() <-chan time.Time
	Running() bool
	Drain()
}

// Result describes how a driven session ended.
type Result int

const (
	ResultCompleted Result = iota // last step finished
	ResultEnded                   // user ended the session
	ResultCancelled               // context cancelled
)

// String returns a human-readable result.
func (r Result) String() string {
	switch r {
	case ResultCompleted:
		return "completed"
	case ResultEnded:
		return "ended"
	case ResultCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Driver runs one recipe through the engine without a UI. It owns the
// dispatch loop: heartbeat beats and user commands are serialized onto
// the goroutine that calls Run, so the engine is never touched
// concurrently.
type Driver struct {
	eng      *engine.Engine
	recipe   *domain.Recipe
	beat     Heartbeat
	notifier domain.Notifier
	chime    domain.Chime
	log      *logger.Logger

	commands chan domain.Command
	done     chan struct{}
}

// NewDriver wires a driver for recipe. The chime may be nil.
func NewDriver(eng *engine.Engine, r *domain.Recipe, beat Heartbeat, notifier domain.Notifier, chime domain.Chime, log *logger.Logger) *Driver {
	return &Driver{
		eng:      eng,
		recipe:   r,
		beat:     beat,
		notifier: notifier,
		chime:    chime,
		log:      log,
		commands: make(chan domain.Command, 8),
		done:     make(chan struct{}),
	}
}

// Send queues a command for the dispatch loop. It returns false once Run
// has returned.
func (d *Driver) Send(cmd domain.Command) bool {
	select {
	case <-d.done:
		return false
	default:
	}
	select {
	case d.commands <- cmd:
		return true
	case <-d.done:
		return false
	}
}

// Done is closed when Run returns.
func (d *Driver) Done() <-chan struct{} {
	return d.done
}

// Run starts the session and blocks until it completes, the user ends
// it, or ctx is cancelled. A conflicting active session is reported
// before anything changes.
func (d *Driver) Run(ctx context.Context) (Result, error) {
	defer close(d.done)

	if err := d.eng.CheckStart(d.recipe.ID); err != nil {
		return ResultCancelled, err
	}
	if err := d.eng.Start(d.recipe); err != nil {
		return ResultCancelled, err
	}
	defer d.beat.Stop()

	d.notify(ctx, LineCookingStart(d.recipe.Title, len(d.recipe.Steps), recipe.TotalMinutes(d.recipe)))
	d.notify(ctx, LineStep(d.recipe, 0))
	d.syncHeartbeat(ctx)

	for {
		select {
		case <-ctx.Done():
			d.eng.EndSession()
			d.log.Info("cook driver cancelled: %v", ctx.Err())
			return ResultCancelled, nil

		case <-d.beat.C():
			if d.handleOutcome(ctx, d.eng.Tick(d.recipe)) {
				return ResultCompleted, nil
			}

		case cmd := <-d.commands:
			res, finished := d.dispatch(ctx, cmd)
			if finished {
				return res, nil
			}
		}
		d.syncHeartbeat(ctx)
	}
}

// dispatch applies one user command. It reports whether the session is over.
func (d *Driver) dispatch(ctx context.Context, cmd domain.Command) (Result, bool) {
	d.log.Debug("cook command: %s (%q)", cmd.Type, cmd.Input)

	session, ok := d.eng.Session(d.recipe.ID)
	if !ok {
		return ResultEnded, true
	}

	switch cmd.Type {
	case domain.CommandPause:
		if !session.IsRunning {
			d.notify(ctx, LineAlreadyPaused())
			return 0, false
		}
		if d.pause(ctx) {
			return ResultCompleted, true
		}

	case domain.CommandResume:
		if session.IsRunning {
			d.notify(ctx, LineAlreadyRunning())
			return 0, false
		}
		d.resume(ctx)

	case domain.CommandToggle:
		if !session.IsRunning {
			d.resume(ctx)
		} else if d.pause(ctx) {
			return ResultCompleted, true
		}

	case domain.CommandStopStep:
		// Account for time elapsed since the last beat before skipping.
		// A tick that already crossed the boundary finished the step.
		out := d.eng.Tick(d.recipe)
		if d.handleOutcome(ctx, out) {
			return ResultCompleted, true
		}
		if out != engine.OutcomeAdvanced && d.handleOutcome(ctx, d.eng.StopCurrentStep(d.recipe)) {
			return ResultCompleted, true
		}

	case domain.CommandEnd:
		d.eng.EndSession()
		d.notify(ctx, LineEnded())
		return ResultEnded, true

	case domain.CommandStatus:
		if d.handleOutcome(ctx, d.eng.Tick(d.recipe)) {
			return ResultCompleted, true
		}
		if s, ok := d.eng.Session(d.recipe.ID); ok {
			d.notify(ctx, LineStatus(d.recipe, s))
		}

	case domain.CommandHelp:
		d.notify(ctx, LineHelp())

	default:
		d.notify(ctx, LineUnknown(cmd.Input))
	}
	return 0, false
}

// pause banks the time since the last beat, then pauses. It reports
// whether that final tick completed the recipe.
func (d *Driver) pause(ctx context.Context) bool {
	if d.handleOutcome(ctx, d.eng.Tick(d.recipe)) {
		return true
	}
	d.eng.Pause()
	d.notify(ctx, LinePaused())
	return false
}

func (d *Driver) resume(ctx context.Context) {
	d.eng.Resume()
	d.notify(ctx, LineResumed())
}

// handleOutcome announces step changes. It reports whether the recipe
// completed.
func (d *Driver) handleOutcome(ctx context.Context, out engine.Outcome) bool {
	switch out {
	case engine.OutcomeAdvanced:
		s, ok := d.eng.Session(d.recipe.ID)
		if !ok {
			return false
		}
		d.notify(ctx, LineStep(d.recipe, s.CurrentStepIndex))
		d.ring(ctx, false)

	case engine.OutcomeCompleted:
		if err := d.notifier.NotifyUrgent(ctx, LineRecipeComplete(d.recipe.Title)); err != nil {
			d.log.Error("notifying completion: %v", err)
		}
		d.ring(ctx, true)
		return true
	}
	return false
}

// syncHeartbeat runs the heartbeat exactly while the session is running.
func (d *Driver) syncHeartbeat(ctx context.Context) {
	running := d.eng.Status(d.recipe.ID) == domain.SessionRunning
	switch {
	case running && !d.beat.Running():
		d.beat.Start(ctx)
	case !running && d.beat.Running():
		d.beat.Stop()
		// A beat buffered before Stop must not tick the paused session.
		d.beat.Drain()
	}
}

func (d *Driver) notify(ctx context.Context, msg string) {
	if err := d.notifier.Notify(ctx, msg); err != nil {
		d.log.Error("notify: %v", err)
	}
}

func (d *Driver) ring(ctx context.Context, done bool) {
	if d.chime == nil {
		return
	}
	var err error
	if done {
		err = d.chime.Done(ctx)
	} else {
		err = d.chime.Step(ctx)
	}
	if err != nil {
		d.log.Warn("chime: %v", err)
	}
}
