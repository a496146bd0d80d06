// Package reveal drives the letter-by-letter name reveal on the intro page.
//
// A Sequencer walks a strictly linear state machine:
//
//	Idle → Typing(k) → AllTyped → Emphasizing → Done
//
// It owns its timers and stops them when the caller's context is cancelled,
// so a disconnected client never receives a late callback.
package reveal

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrAlreadyStarted is returned when Run is called a second time.
var ErrAlreadyStarted = errors.New("reveal: sequence already started")

// State is a step of the reveal sequence.
type State int

const (
	Idle State = iota
	Typing
	AllTyped
	Emphasizing
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Typing:
		return "typing"
	case AllTyped:
		return "all-typed"
	case Emphasizing:
		return "emphasizing"
	case Done:
		return "done"
	}
	return "unknown"
}

// Timing controls the cadence of a sequence.
type Timing struct {
	Interval time.Duration // between reveal ticks
	Pause    time.Duration // after the last glyph, before emphasis
	Emphasis time.Duration // length of the emphasis phase
}

// DefaultTiming matches the intro page animation.
var DefaultTiming = Timing{
	Interval: 100 * time.Millisecond,
	Pause:    CompletionPause,
	Emphasis: 4 * time.Second,
}

// Hooks are invoked from the goroutine that called Run. Any of them may be
// nil.
type Hooks struct {
	// OnTick receives the number of glyphs revealed and that prefix.
	OnTick     func(revealed int, prefix []Glyph)
	OnEmphasis func()
	OnDone     func()
}

// Sequencer reveals one string. It can be run at most once.
type Sequencer struct {
	glyphs []Glyph
	timing Timing

	started atomic.Bool

	mu       sync.Mutex
	state    State
	revealed int
}

// New prepares a sequence for text.
func New(text string, timing Timing) *Sequencer {
	if timing.Interval <= 0 {
		timing.Interval = DefaultTiming.Interval
	}
	return &Sequencer{glyphs: Tokenize(text), timing: timing}
}

// Glyphs returns the tokenized text.
func (s *Sequencer) Glyphs() []Glyph { return s.glyphs }

// State reports the current step.
func (s *Sequencer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Revealed reports how many glyphs are visible.
func (s *Sequencer) Revealed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revealed
}

func (s *Sequencer) set(state State, revealed int) {
	s.mu.Lock()
	s.state = state
	s.revealed = revealed
	s.mu.Unlock()
}

// Run plays the sequence and blocks until it is done or ctx is cancelled.
// OnDone fires exactly once on completion and never after cancellation.
func (s *Sequencer) Run(ctx context.Context, h Hooks) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	n := len(s.glyphs)
	if n == 0 {
		s.set(Done, 0)
		if h.OnDone != nil {
			h.OnDone()
		}
		return nil
	}

	s.set(Typing, 0)
	ticker := time.NewTicker(s.timing.Interval)
	defer ticker.Stop()

	for k := 1; k <= n; k++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		s.set(Typing, k)
		if h.OnTick != nil {
			h.OnTick(k, s.glyphs[:k])
		}
	}
	ticker.Stop()
	s.set(AllTyped, n)

	if err := sleep(ctx, s.timing.Pause); err != nil {
		return err
	}
	s.set(Emphasizing, n)
	if h.OnEmphasis != nil {
		h.OnEmphasis()
	}

	if err := sleep(ctx, s.timing.Emphasis); err != nil {
		return err
	}
	s.set(Done, n)
	if h.OnDone != nil {
		h.OnDone()
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return ctx.Err()
	}
}
