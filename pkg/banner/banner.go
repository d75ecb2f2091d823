// Package banner implements the transient success/error feedback shown after
// a submission. A banner hides itself after a fixed duration measured on an
// injectable clock; showing it again replaces the pending hide.
package banner

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/clock"
)

// DefaultDuration is how long a banner stays visible.
const DefaultDuration = 3000 * time.Millisecond

// Kind selects the banner variant.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// State is a snapshot of the banner.
type State struct {
	Kind    Kind      `json:"kind,omitempty"`
	Visible bool      `json:"visible"`
	ShownAt time.Time `json:"shownAt,omitempty"`
	Message string    `json:"message,omitempty"`
}

// MessageFunc returns the text displayed for kind.
type MessageFunc func(kind Kind) string

// Option configures a Banner.
type Option func(*Banner)

// WithClock swaps the clock used for timestamps and the auto-hide timer.
func WithClock(c clock.Clock) Option {
	return func(b *Banner) {
		if c != nil {
			b.clock = c
		}
	}
}

// WithDuration overrides the auto-hide delay. Non-positive values are ignored.
func WithDuration(d time.Duration) Option {
	return func(b *Banner) {
		if d > 0 {
			b.duration = d
		}
	}
}

// WithMessages sets the function resolving banner texts.
func WithMessages(fn MessageFunc) Option {
	return func(b *Banner) {
		if fn != nil {
			b.messages = fn
		}
	}
}

// WithLogger attaches a logger; show/hide transitions are logged at debug.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Banner) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Banner holds the visibility state and at most one pending hide.
type Banner struct {
	mu         sync.Mutex
	clock      clock.Clock
	duration   time.Duration
	messages   MessageFunc
	logger     *zap.Logger
	state      State
	pending    clock.Timer
	generation uint64
}

// New constructs a hidden banner.
func New(opts ...Option) *Banner {
	b := &Banner{
		clock:    clock.Real(),
		duration: DefaultDuration,
		messages: func(Kind) string { return "" },
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Show makes the banner visible as kind and schedules it to hide after the
// configured duration. A hide scheduled by an earlier Show is cancelled.
func (b *Banner) Show(kind Kind) State {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopPendingLocked()
	b.generation++
	gen := b.generation

	b.state = State{
		Kind:    kind,
		Visible: true,
		ShownAt: b.clock.Now(),
		Message: b.messages(kind),
	}
	b.pending = b.clock.AfterFunc(b.duration, func() { b.expire(gen) })

	b.logger.Debug("banner shown",
		zap.String("kind", string(kind)),
		zap.Duration("hideAfter", b.duration),
	)
	return b.state
}

// Hide hides the banner immediately. Hiding a hidden banner is a no-op.
func (b *Banner) Hide() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopPendingLocked()
	b.hideLocked("manual")
}

// Reset returns the banner to its initial hidden state, as after a reload.
func (b *Banner) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopPendingLocked()
	b.generation++
	b.state = State{}
}

// State returns the current snapshot.
func (b *Banner) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Visible reports whether the banner is showing kind.
func (b *Banner) Visible(kind Kind) bool {
	s := b.State()
	return s.Visible && s.Kind == kind
}

// Duration returns the configured auto-hide delay.
func (b *Banner) Duration() time.Duration { return b.duration }

func (b *Banner) expire(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	// a newer Show or Reset owns the banner now
	if gen != b.generation {
		return
	}
	b.pending = nil
	b.hideLocked("timer")
}

func (b *Banner) hideLocked(cause string) {
	if !b.state.Visible {
		return
	}
	b.state.Visible = false
	b.logger.Debug("banner hidden",
		zap.String("kind", string(b.state.Kind)),
		zap.String("cause", cause),
	)
}

func (b *Banner) stopPendingLocked() {
	if b.pending != nil {
		b.pending.Stop()
		b.pending = nil
	}
}
