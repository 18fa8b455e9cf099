package cook

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hammamikhairi/stepcook/internal/domain"
	"github.com/hammamikhairi/stepcook/internal/engine"
	"github.com/hammamikhairi/stepcook/internal/logger"
)

// fakeClock is safe to advance from the test goroutine while the driver
// reads it from its own.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeHeartbeat hands beat delivery to the test.
type fakeHeartbeat struct {
	beats chan time.Time

	mu      sync.Mutex
	running bool
	starts  int
	stops   int
	drains  int
}

func newFakeHeartbeat() *fakeHeartbeat {
	return &fakeHeartbeat{beats: make(chan time.Time)}
}

func (h *fakeHeartbeat) Start(context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.running = true
	h.starts++
}

func (h *fakeHeartbeat) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		h.stops++
	}
	h.running = false
}

func (h *fakeHeartbeat) C() <-chan time.Time { return h.beats }

func (h *fakeHeartbeat) Drain() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drains++
}

func (h *fakeHeartbeat) Running() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running
}

func (h *fakeHeartbeat) counts() (starts, stops int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.starts, h.stops
}

func (h *fakeHeartbeat) drained() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.drains
}

// recordingNotifier forwards every message to a channel.
type recordingNotifier struct {
	msgs   chan string
	urgent chan string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{msgs: make(chan string, 64), urgent: make(chan string, 8)}
}

func (n *recordingNotifier) Notify(_ context.Context, msg string) error {
	n.msgs <- msg
	return nil
}

func (n *recordingNotifier) NotifyUrgent(_ context.Context, msg string) error {
	n.urgent <- msg
	return nil
}

type countingChime struct {
	mu    sync.Mutex
	steps int
	dones int
}

func (c *countingChime) Step(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.steps++
	return nil
}

func (c *countingChime) Done(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dones++
	return nil
}

type runResult struct {
	res Result
	err error
}

type fixture struct {
	eng      *engine.Engine
	clk      *fakeClock
	beat     *fakeHeartbeat
	notifier *recordingNotifier
	chime    *countingChime
	driver   *Driver
	result   chan runResult
	cancel   context.CancelFunc
}

func testRecipe(minutes ...int) *domain.Recipe {
	r := &domain.Recipe{
		ID:    "soup",
		Title: "Soup",
		Ingredients: []domain.Ingredient{
			{ID: "tomato", Name: "Tomatoes", Quantity: 4, Unit: "pcs"},
		},
	}
	for i, m := range minutes {
		r.Steps = append(r.Steps, domain.Step{
			ID:              string(rune('a' + i)),
			Description:     "Step body",
			Type:            domain.StepInstruction,
			DurationMinutes: m,
			IngredientIDs:   []string{"tomato"},
		})
	}
	return r
}

func startDriver(t *testing.T, r *domain.Recipe) *fixture {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	clk := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	f := &fixture{
		eng:      engine.New(log, engine.WithClock(clk.Now)),
		clk:      clk,
		beat:     newFakeHeartbeat(),
		notifier: newRecordingNotifier(),
		chime:    &countingChime{},
		result:   make(chan runResult, 1),
	}
	f.driver = NewDriver(f.eng, r, f.beat, f.notifier, f.chime, log)

	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	t.Cleanup(cancel)

	go func() {
		res, err := f.driver.Run(ctx)
		f.result <- runResult{res, err}
	}()

	f.waitFor(t, "Step 1/")
	return f
}

// waitFor reads notifications until one contains want.
func (f *fixture) waitFor(t *testing.T, want string) string {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case msg := <-f.notifier.msgs:
			if strings.Contains(msg, want) {
				return msg
			}
		case <-timeout:
			t.Fatalf("timed out waiting for notification containing %q", want)
		}
	}
}

// settle sends a help command and waits for its reply, so every earlier
// command has been fully dispatched (heartbeat sync included).
func (f *fixture) settle(t *testing.T) {
	t.Helper()
	f.driver.Send(domain.Command{Type: domain.CommandHelp})
	f.waitFor(t, "Commands:")
}

func (f *fixture) wait(t *testing.T) runResult {
	t.Helper()
	select {
	case r := <-f.result:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("driver did not return")
		return runResult{}
	}
}

func TestDriverCompletesOnBeat(t *testing.T) {
	r := testRecipe(1)
	f := startDriver(t, r)

	f.clk.Advance(61 * time.Second)
	f.beat.beats <- f.clk.Now()

	got := f.wait(t)
	if got.err != nil || got.res != ResultCompleted {
		t.Fatalf("expected completed, got %s (%v)", got.res, got.err)
	}
	if msg := <-f.notifier.urgent; !strings.Contains(msg, "Recipe complete") {
		t.Fatalf("unexpected completion message %q", msg)
	}
	if f.chime.dones != 1 {
		t.Fatalf("expected one done chime, got %d", f.chime.dones)
	}
	if _, ok := f.eng.ActiveRecipeID(); ok {
		t.Fatal("expected no active session after completion")
	}
	if f.beat.Running() {
		t.Fatal("expected heartbeat stopped after completion")
	}
}

func TestDriverAdvancesWithCarry(t *testing.T) {
	f := startDriver(t, testRecipe(1, 2))

	f.clk.Advance(65 * time.Second)
	f.beat.beats <- f.clk.Now()
	f.waitFor(t, "Step 2/2")

	f.driver.Send(domain.Command{Type: domain.CommandStatus})
	status := f.waitFor(t, "Step 2 of 2")
	if !strings.Contains(status, "01:55 left") {
		t.Fatalf("expected 5s carried into the second step, got %q", status)
	}

	f.driver.Send(domain.Command{Type: domain.CommandEnd})
	if got := f.wait(t); got.res != ResultEnded {
		t.Fatalf("expected ended, got %s", got.res)
	}
	if f.chime.steps != 1 {
		t.Fatalf("expected one step chime, got %d", f.chime.steps)
	}
}

func TestDriverPauseStopsHeartbeat(t *testing.T) {
	f := startDriver(t, testRecipe(5))
	if !f.beat.Running() {
		t.Fatal("expected heartbeat running after start")
	}

	f.driver.Send(domain.Command{Type: domain.CommandPause, Input: "pause"})
	f.waitFor(t, "Paused")
	f.settle(t)
	if f.beat.Running() {
		t.Fatal("expected heartbeat stopped while paused")
	}

	// Time spent paused is not counted.
	f.clk.Advance(10 * time.Minute)

	f.driver.Send(domain.Command{Type: domain.CommandToggle})
	f.waitFor(t, "Resumed")
	f.settle(t)
	if !f.beat.Running() {
		t.Fatal("expected heartbeat restarted on resume")
	}
	starts, stops := f.beat.counts()
	if starts != 2 || stops != 1 {
		t.Fatalf("expected 2 starts and 1 stop, got %d/%d", starts, stops)
	}
	if n := f.beat.drained(); n != 1 {
		t.Fatalf("expected the pending beat drained once on pause, got %d", n)
	}

	f.driver.Send(domain.Command{Type: domain.CommandStatus})
	if status := f.waitFor(t, "Step 1 of 1"); !strings.Contains(status, "05:00 left") {
		t.Fatalf("expected paused time to be excluded, got %q", status)
	}
	f.cancel()
	f.wait(t)
}

func TestDriverRepeatedPauseAndResume(t *testing.T) {
	f := startDriver(t, testRecipe(5))

	f.driver.Send(domain.Command{Type: domain.CommandResume})
	f.waitFor(t, "Already running")

	f.driver.Send(domain.Command{Type: domain.CommandPause})
	f.waitFor(t, "Paused")
	f.driver.Send(domain.Command{Type: domain.CommandPause})
	f.waitFor(t, "Already paused")

	f.cancel()
	f.wait(t)
}

func TestDriverStopStepToCompletion(t *testing.T) {
	f := startDriver(t, testRecipe(1, 2))

	f.driver.Send(domain.Command{Type: domain.CommandStopStep, Input: "next"})
	f.waitFor(t, "Step 2/2")

	f.driver.Send(domain.Command{Type: domain.CommandStopStep, Input: "next"})
	got := f.wait(t)
	if got.res != ResultCompleted {
		t.Fatalf("expected completed, got %s", got.res)
	}
	if f.chime.steps != 1 || f.chime.dones != 1 {
		t.Fatalf("expected 1 step and 1 done chime, got %d/%d", f.chime.steps, f.chime.dones)
	}
}

func TestDriverStopStepAfterBoundaryCrossed(t *testing.T) {
	f := startDriver(t, testRecipe(1, 2, 3))

	// The first step runs out with no beat in between.
	f.clk.Advance(60 * time.Second)
	f.driver.Send(domain.Command{Type: domain.CommandStopStep, Input: "next"})
	f.waitFor(t, "Step 2/3")

	f.driver.Send(domain.Command{Type: domain.CommandStatus})
	status := f.waitFor(t, "of 3")
	if !strings.Contains(status, "Step 2 of 3") || !strings.Contains(status, "02:00 left") {
		t.Fatalf("expected the second step untouched, got %q", status)
	}
	if f.chime.steps != 1 {
		t.Fatalf("expected one step chime, got %d", f.chime.steps)
	}

	f.cancel()
	f.wait(t)
}

func TestDriverCancelEndsSession(t *testing.T) {
	f := startDriver(t, testRecipe(3))

	f.cancel()
	got := f.wait(t)
	if got.res != ResultCancelled || got.err != nil {
		t.Fatalf("expected cancelled, got %s (%v)", got.res, got.err)
	}
	if _, ok := f.eng.ActiveRecipeID(); ok {
		t.Fatal("expected session removed on cancel")
	}
	if f.driver.Send(domain.Command{Type: domain.CommandPause}) {
		t.Fatal("expected Send to fail after Run returned")
	}
}

func TestDriverUnknownCommand(t *testing.T) {
	f := startDriver(t, testRecipe(3))

	f.driver.Send(domain.Command{Type: domain.CommandUnknown, Input: "flip it"})
	if msg := f.waitFor(t, "Didn't catch"); !strings.Contains(msg, "flip it") {
		t.Fatalf("expected input echoed, got %q", msg)
	}
	f.cancel()
	f.wait(t)
}

func TestDriverReportsConflict(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	eng := engine.New(log)
	other := testRecipe(2)
	other.ID = "other"
	if err := eng.Start(other); err != nil {
		t.Fatalf("start other: %v", err)
	}

	d := NewDriver(eng, testRecipe(1), newFakeHeartbeat(), newRecordingNotifier(), nil, log)
	_, err := d.Run(context.Background())
	if !errors.Is(err, domain.ErrSessionConflict) {
		t.Fatalf("expected ErrSessionConflict, got %v", err)
	}
	if id, _ := eng.ActiveRecipeID(); id != "other" {
		t.Fatalf("expected other to stay active, got %q", id)
	}
}

func TestDriverRejectsInvalidRecipe(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	d := NewDriver(engine.New(log), testRecipe(), newFakeHeartbeat(), newRecordingNotifier(), nil, log)

	if _, err := d.Run(context.Background()); !errors.Is(err, domain.ErrNoSteps) {
		t.Fatalf("expected ErrNoSteps, got %v", err)
	}
}
