package chime

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hammamikhairi/stepcook/internal/logger"
)

// fakeVoice plays until the test calls finish or the player pauses it.
type fakeVoice struct {
	mu      sync.Mutex
	playing bool
	paused  bool
	closed  bool
}

func (v *fakeVoice) Play() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.playing = true
}

func (v *fakeVoice) Pause() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.playing = false
	v.paused = true
}

func (v *fakeVoice) IsPlaying() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.playing
}

func (v *fakeVoice) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	return nil
}

func (v *fakeVoice) finish() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.playing = false
}

func (v *fakeVoice) state() (paused, closed bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.paused, v.closed
}

func newFakePlayer() (*Player, chan *fakeVoice) {
	voices := make(chan *fakeVoice, 4)
	p := newPlayer(logger.New(logger.LevelOff, nil), func([]byte) voice {
		v := &fakeVoice{}
		voices <- v
		return v
	})
	return p, voices
}

func TestDoneWaitsForPlayback(t *testing.T) {
	p, voices := newFakePlayer()

	returned := make(chan error, 1)
	go func() { returned <- p.Done(context.Background()) }()

	v := <-voices
	select {
	case err := <-returned:
		t.Fatalf("Done returned before playback finished: %v", err)
	case <-time.After(60 * time.Millisecond):
	}

	v.finish()
	select {
	case err := <-returned:
		if err != nil {
			t.Fatalf("done: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Done did not return after playback finished")
	}
	if _, closed := v.state(); !closed {
		t.Fatal("expected the voice closed")
	}
}

func TestDoneStopsOnCancel(t *testing.T) {
	p, voices := newFakePlayer()
	ctx, cancel := context.WithCancel(context.Background())

	returned := make(chan error, 1)
	go func() { returned <- p.Done(ctx) }()
	v := <-voices

	cancel()
	select {
	case err := <-returned:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Done did not return after cancel")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		paused, closed := v.state()
		if paused && closed {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected voice paused and closed, got paused=%v closed=%v", paused, closed)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStepDoesNotBlock(t *testing.T) {
	p, voices := newFakePlayer()

	if err := p.Step(context.Background()); err != nil {
		t.Fatalf("step: %v", err)
	}
	first := <-voices
	if !first.IsPlaying() {
		t.Fatal("expected step chime playing after Step returned")
	}

	// A new chime interrupts the one in progress.
	if err := p.Step(context.Background()); err != nil {
		t.Fatalf("step: %v", err)
	}
	<-voices
	if paused, _ := first.state(); !paused {
		t.Fatal("expected the first chime interrupted")
	}
}

func TestPlayRejectsCancelledContext(t *testing.T) {
	p, voices := newFakePlayer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.Done(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(voices) != 0 {
		t.Fatal("expected no voice created")
	}
}
