package banner

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/goliatone/go-contactform/pkg/clock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newVirtual(t *testing.T, opts ...Option) (*Banner, *clock.Virtual) {
	t.Helper()
	vc := clock.NewVirtual(epoch)
	messages := func(kind Kind) string {
		if kind == KindSuccess {
			return "Mensagem enviada com sucesso."
		}
		return "Valide os campos obrigatórios!"
	}
	b := New(append([]Option{WithClock(vc), WithMessages(messages)}, opts...)...)
	return b, vc
}

func TestBanner_HidesAfterExactDuration(t *testing.T) {
	b, vc := newVirtual(t)

	shown := b.Show(KindSuccess)
	want := State{Kind: KindSuccess, Visible: true, ShownAt: epoch, Message: "Mensagem enviada com sucesso."}
	if diff := cmp.Diff(want, shown); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}

	vc.Advance(2999 * time.Millisecond)
	if !b.Visible(KindSuccess) {
		t.Fatalf("banner must still be visible at 2999ms")
	}
	vc.Advance(time.Millisecond)
	if b.State().Visible {
		t.Fatalf("banner must be hidden at 3000ms")
	}
	if b.State().Kind != KindSuccess {
		t.Fatalf("kind should survive the hide")
	}
}

func TestBanner_ShowReplacesPendingHide(t *testing.T) {
	b, vc := newVirtual(t)

	b.Show(KindError)
	vc.Advance(2 * time.Second)
	b.Show(KindError)
	if vc.Pending() != 1 {
		t.Fatalf("expected exactly one pending hide, got %d", vc.Pending())
	}

	vc.Advance(time.Second)
	if !b.Visible(KindError) {
		t.Fatalf("first timer must not hide the second show")
	}
	if got := b.State().ShownAt; !got.Equal(epoch.Add(2 * time.Second)) {
		t.Fatalf("shownAt should track the latest show, got %v", got)
	}
	vc.Advance(2 * time.Second)
	if b.State().Visible {
		t.Fatalf("banner must hide 3000ms after the latest show")
	}
}

func TestBanner_SwitchKind(t *testing.T) {
	b, vc := newVirtual(t)
	b.Show(KindError)
	b.Show(KindSuccess)
	if b.Visible(KindError) || !b.Visible(KindSuccess) {
		t.Fatalf("expected success banner to replace error banner")
	}
	vc.Advance(DefaultDuration)
	if b.State().Visible {
		t.Fatalf("expected hidden banner")
	}
}

func TestBanner_HideIsIdempotent(t *testing.T) {
	b, vc := newVirtual(t)
	b.Hide()
	if b.State().Visible {
		t.Fatalf("hidden banner must stay hidden")
	}

	b.Show(KindSuccess)
	b.Hide()
	b.Hide()
	if b.State().Visible {
		t.Fatalf("expected banner hidden after Hide")
	}
	if vc.Pending() != 0 {
		t.Fatalf("Hide must cancel the pending timer")
	}
}

func TestBanner_ResetAndDuration(t *testing.T) {
	b, vc := newVirtual(t, WithDuration(500*time.Millisecond), WithDuration(-1))
	if b.Duration() != 500*time.Millisecond {
		t.Fatalf("unexpected duration %v", b.Duration())
	}
	b.Show(KindSuccess)
	b.Reset()
	if diff := cmp.Diff(State{}, b.State()); diff != "" {
		t.Fatalf("reset mismatch (-want +got):\n%s", diff)
	}
	vc.Advance(time.Second)
	if b.State().Visible {
		t.Fatalf("reset banner must stay hidden")
	}
}

func TestBanner_RealClock(t *testing.T) {
	b := New(WithDuration(20 * time.Millisecond))
	b.Show(KindSuccess)
	if !b.Visible(KindSuccess) {
		t.Fatalf("expected visible banner")
	}

	deadline := time.Now().Add(2 * time.Second)
	for b.State().Visible {
		if time.Now().After(deadline) {
			t.Fatalf("real clock banner did not hide")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBanner_ConcurrentShow(t *testing.T) {
	b := New(WithDuration(time.Hour))
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				b.Show(KindSuccess)
			} else {
				b.Show(KindError)
			}
		}(i)
	}
	wg.Wait()
	if !b.State().Visible {
		t.Fatalf("expected visible banner")
	}
	b.Hide()
}
