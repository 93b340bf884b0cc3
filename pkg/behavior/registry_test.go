package behavior

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLifecycleSignalOnce(t *testing.T) {
	l := NewLifecycle()

	if l.IsReady() {
		t.Fatal("new lifecycle reports ready")
	}

	l.SignalReady()
	l.SignalReady() // idempotent

	if !l.IsReady() {
		t.Fatal("lifecycle not ready after signal")
	}
	if err := l.WaitReady(context.Background()); err != nil {
		t.Fatalf("WaitReady after signal: %v", err)
	}
}

func TestLifecycleWaitReadyCancellation(t *testing.T) {
	l := NewLifecycle()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := l.WaitReady(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("WaitReady on unsignalled gate = %v, want deadline exceeded", err)
	}
}

func TestRegistryRunsInOrderAfterReady(t *testing.T) {
	r := NewRegistry()

	var order []string
	r.Register("menu", func() (int, error) {
		order = append(order, "menu")
		return 1, nil
	})
	r.Register("scroll", func() (int, error) {
		order = append(order, "scroll")
		return 5, nil
	})
	r.Register("form", func() (int, error) {
		order = append(order, "form")
		return 1, nil
	})

	// Setup must not run before the ready signal.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	if _, err := r.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run before ready = %v, want deadline exceeded", err)
	}
	cancel()
	if len(order) != 0 {
		t.Fatalf("setups ran before ready: %v", order)
	}

	r.SignalReady()
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"menu", "scroll", "form"}
	if len(order) != len(want) {
		t.Fatalf("ran %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("ran %v, want %v", order, want)
		}
	}
	if got := report.Handlers(); got != 7 {
		t.Errorf("Handlers() = %d, want 7", got)
	}
}

func TestRegistryFeaturesAreIndependent(t *testing.T) {
	r := NewRegistry()

	boom := errors.New("selector exploded")
	var ran []string
	r.Register("broken", func() (int, error) {
		ran = append(ran, "broken")
		return 0, boom
	})
	r.Register("panicky", func() (int, error) {
		ran = append(ran, "panicky")
		panic("nope")
	})
	r.Register("fine", func() (int, error) {
		ran = append(ran, "fine")
		return 2, nil
	})

	r.SignalReady()
	report, err := r.Run(context.Background())

	if len(ran) != 3 {
		t.Fatalf("ran %v, want all three despite failures", ran)
	}
	if !errors.Is(err, boom) {
		t.Errorf("joined error %v does not wrap %v", err, boom)
	}
	if report.Features[2].Handlers != 2 || report.Features[2].Err != nil {
		t.Errorf("healthy feature report = %+v", report.Features[2])
	}
	if report.Features[1].Err == nil {
		t.Error("panicking setup reported no error")
	}
}

func TestRegistryEmptyPageIsQuiet(t *testing.T) {
	// A page with none of the expected elements registers zero handlers and
	// raises no fault; each feature is just inactive.
	r := NewRegistry()
	for _, name := range []string{"menu", "scroll", "form", "buttons"} {
		r.Register(name, func() (int, error) { return 0, nil })
	}

	r.SignalReady()
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := report.Handlers(); got != 0 {
		t.Errorf("Handlers() = %d, want 0", got)
	}
	if got := report.Inactive(); len(got) != 4 {
		t.Errorf("Inactive() = %v, want all four features", got)
	}
}
