// Package chime plays short audible cues when a step ends and when a
// recipe completes.
package chime

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/hammamikhairi/stepcook/internal/domain"
	"github.com/hammamikhairi/stepcook/internal/logger"
)

// Output format shared by the oto context and the tone synthesizer.
const (
	SampleRate   = 24000
	ChannelCount = 1
)

// Compile-time interface checks.
var (
	_ domain.Chime = (*Player)(nil)
	_ domain.Chime = NoOp{}
)

var (
	stepPattern = Pattern{Frequency: 880, Beep: 180 * time.Millisecond, Gap: 0, Count: 1}
	donePattern = Pattern{Frequency: 660, Beep: 220 * time.Millisecond, Gap: 120 * time.Millisecond, Count: 3}
)

// voice is the slice of *oto.Player the chime drives.
type voice interface {
	Play()
	Pause()
	IsPlaying() bool
	Close() error
}

// Player plays synthesized chimes through the system audio device.
// A new chime interrupts the one in progress. Step returns as soon as
// playback starts; Done waits for the completion chime to finish.
type Player struct {
	log      *logger.Logger
	newVoice func(pcm []byte) voice

	step []byte
	done []byte

	mu     sync.Mutex
	active voice
}

// NewPlayer opens the audio device. It returns ErrChimeUnavailable
// (wrapped) when no device can be opened.
func NewPlayer(log *logger.Logger) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrChimeUnavailable, err)
	}
	<-readyChan

	log.Debug("chime player initialized (rate=%d, channels=%d)", SampleRate, ChannelCount)
	return newPlayer(log, func(pcm []byte) voice {
		return ctx.NewPlayer(bytes.NewReader(pcm))
	}), nil
}

func newPlayer(log *logger.Logger, newVoice func([]byte) voice) *Player {
	return &Player{
		log:      log,
		newVoice: newVoice,
		step:     stepPattern.PCM(),
		done:     donePattern.PCM(),
	}
}

// Step plays the single step-boundary beep.
func (p *Player) Step(ctx context.Context) error {
	_, err := p.play(ctx, p.step)
	return err
}

// Done plays the triple completion beep and blocks until it has been
// heard, so a process exiting right after completion is not cut short.
// Cancelling ctx stops playback and returns early.
func (p *Player) Done(ctx context.Context) error {
	finished, err := p.play(ctx, p.done)
	if err != nil {
		return err
	}
	select {
	case <-finished:
	case <-ctx.Done():
	}
	return ctx.Err()
}

// play starts pcm and returns a channel closed once the voice is released.
func (p *Player) play(ctx context.Context, pcm []byte) (<-chan struct{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v := p.newVoice(pcm)

	p.mu.Lock()
	if p.active != nil {
		p.active.Pause()
	}
	p.active = v
	p.mu.Unlock()

	v.Play()
	p.log.Debug("chime: playing %d bytes of PCM", len(pcm))

	finished := make(chan struct{})
	go p.wait(ctx, v, finished)
	return finished, nil
}

// wait closes v once it finishes, is interrupted, or ctx is cancelled.
func (p *Player) wait(ctx context.Context, v voice, finished chan<- struct{}) {
	defer close(finished)

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for v.IsPlaying() {
		select {
		case <-ctx.Done():
			v.Pause()
		case <-ticker.C:
		}
	}

	p.mu.Lock()
	if p.active == v {
		p.active = nil
	}
	p.mu.Unlock()

	if err := v.Close(); err != nil {
		p.log.Warn("chime: closing player: %v", err)
	}
}

// NoOp is a silent chime used when audio is disabled or unavailable.
type NoOp struct{}

func (NoOp) Step(context.Context) error { return nil }
func (NoOp) Done(context.Context) error { return nil }

// New returns an audio chime when enabled and available, otherwise NoOp.
// A missing audio device is logged, never fatal.
func New(enabled bool, log *logger.Logger) domain.Chime {
	if !enabled {
		log.Debug("chime disabled")
		return NoOp{}
	}
	p, err := NewPlayer(log)
	if err != nil {
		log.Warn("chime disabled: %v", err)
		return NoOp{}
	}
	return p
}
