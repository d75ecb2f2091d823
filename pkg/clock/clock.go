// Package clock abstracts time for components that schedule delayed work.
// Real delegates to the time package; Virtual is a logical clock that only
// moves when Advance is called and fires due callbacks synchronously.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Timer is a cancellable pending callback.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the call
	// stopped the timer, false if it already fired or was stopped.
	Stop() bool
}

// Clock provides the current time and delayed callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Virtual is a deterministic clock for tests and accelerated runs.
type Virtual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*virtualTimer
}

// NewVirtual returns a Virtual clock starting at start.
func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start}
}

// Now returns the current logical time.
func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// AfterFunc schedules f to run once the logical time reaches Now()+d.
// Non-positive durations fire on the next Advance, including Advance(0).
func (v *Virtual) AfterFunc(d time.Duration, f func()) Timer {
	v.mu.Lock()
	defer v.mu.Unlock()
	if d < 0 {
		d = 0
	}
	v.seq++
	t := &virtualTimer{clock: v, deadline: v.now.Add(d), seq: v.seq, fn: f}
	v.timers = append(v.timers, t)
	return t
}

// Advance moves logical time forward by d and runs every callback whose
// deadline is reached, in deadline order. Callbacks run on the caller's
// goroutine without the clock lock held, so they may schedule new timers;
// those fire in the same call when they fall inside the window. Time never
// moves backwards: a negative d is treated as zero.
func (v *Virtual) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	v.mu.Lock()
	target := v.now.Add(d)
	v.mu.Unlock()

	for {
		v.mu.Lock()
		next := v.popDueLocked(target)
		if next == nil {
			v.now = target
			v.mu.Unlock()
			return
		}
		if next.deadline.After(v.now) {
			v.now = next.deadline
		}
		v.mu.Unlock()
		next.fn()
	}
}

// Pending returns the number of scheduled callbacks.
func (v *Virtual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.timers)
}

func (v *Virtual) popDueLocked(target time.Time) *virtualTimer {
	if len(v.timers) == 0 {
		return nil
	}
	sort.SliceStable(v.timers, func(i, j int) bool {
		if v.timers[i].deadline.Equal(v.timers[j].deadline) {
			return v.timers[i].seq < v.timers[j].seq
		}
		return v.timers[i].deadline.Before(v.timers[j].deadline)
	})
	first := v.timers[0]
	if first.deadline.After(target) {
		return nil
	}
	v.timers = v.timers[1:]
	return first
}

func (v *Virtual) remove(t *virtualTimer) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, candidate := range v.timers {
		if candidate == t {
			v.timers = append(v.timers[:i], v.timers[i+1:]...)
			return true
		}
	}
	return false
}

type virtualTimer struct {
	clock    *Virtual
	deadline time.Time
	seq      uint64
	fn       func()
}

func (t *virtualTimer) Stop() bool {
	return t.clock.remove(t)
}
