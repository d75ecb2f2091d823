package clock

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestVirtual_FiresAtDeadline(t *testing.T) {
	c := NewVirtual(epoch)
	fired := 0
	c.AfterFunc(3*time.Second, func() { fired++ })

	c.Advance(2999 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("fired early")
	}
	c.Advance(time.Millisecond)
	if fired != 1 {
		t.Fatalf("expected callback at deadline, fired=%d", fired)
	}
	if got := c.Now(); !got.Equal(epoch.Add(3 * time.Second)) {
		t.Fatalf("unexpected now %v", got)
	}
	c.Advance(time.Hour)
	if fired != 1 {
		t.Fatalf("callback must fire once")
	}
}

func TestVirtual_OrderAndStop(t *testing.T) {
	c := NewVirtual(epoch)
	var order []string
	c.AfterFunc(2*time.Second, func() { order = append(order, "b") })
	c.AfterFunc(time.Second, func() { order = append(order, "a") })
	stopped := c.AfterFunc(1500*time.Millisecond, func() { order = append(order, "x") })

	if !stopped.Stop() {
		t.Fatalf("expected stop to succeed")
	}
	if stopped.Stop() {
		t.Fatalf("second stop must report false")
	}
	c.Advance(5 * time.Second)

	if diff := cmp.Diff([]string{"a", "b"}, order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if c.Pending() != 0 {
		t.Fatalf("expected no pending timers")
	}
}

func TestVirtual_CallbackSeesDeadlineAndReschedules(t *testing.T) {
	c := NewVirtual(epoch)
	var seen []time.Time
	c.AfterFunc(time.Second, func() {
		seen = append(seen, c.Now())
		c.AfterFunc(time.Second, func() { seen = append(seen, c.Now()) })
	})

	c.Advance(3 * time.Second)
	want := []time.Time{epoch.Add(time.Second), epoch.Add(2 * time.Second)}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Fatalf("times mismatch (-want +got):\n%s", diff)
	}
}

func TestReal_AfterFunc(t *testing.T) {
	done := make(chan struct{})
	Real().AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("real timer did not fire")
	}
}

func TestVirtual_NegativeAdvanceKeepsTime(t *testing.T) {
	c := NewVirtual(epoch)
	fired := false
	c.AfterFunc(0, func() { fired = true })

	c.Advance(-time.Minute)
	if got := c.Now(); !got.Equal(epoch) {
		t.Fatalf("time moved backwards to %v", got)
	}
	if !fired {
		t.Fatalf("due callback must fire on a clamped advance")
	}
}
