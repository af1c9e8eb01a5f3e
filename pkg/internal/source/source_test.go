package source_test

import (
	"context"
	"testing"

	"github.com/joeydtaylor/strum/pkg/internal/clock"
	"github.com/joeydtaylor/strum/pkg/internal/source"
	"github.com/joeydtaylor/strum/pkg/internal/types"
)

var _ types.SampleSource = (*source.Periodic)(nil)

func TestPeriodicDeliversOnePerTick(t *testing.T) {
	clk := clock.NewManual()
	samples := []types.RawSample{1, 2, 3}
	src := source.NewPeriodic(clk, source.Replay(samples, 512, false))

	var got []types.RawSample
	src.OnSample(func(v types.RawSample) { got = append(got, v) })
	if err := src.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer src.Stop()

	clk.Tick(5)
	want := []types.RawSample{1, 2, 3, 512, 512}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d: got %d, want %d", i, got[i], want[i])
		}
	}
	if src.Samples() != 5 {
		t.Fatalf("Samples() = %d", src.Samples())
	}
}

func TestPeriodicStopHaltsClock(t *testing.T) {
	clk := clock.NewManual()
	src := source.NewPeriodic(clk, source.Constant(600))
	var n int
	src.OnSample(func(types.RawSample) { n++ })
	if err := src.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	clk.Tick(2)
	src.Stop()
	src.Stop()
	clk.Tick(2)
	if n != 2 {
		t.Fatalf("expected 2 samples, got %d", n)
	}
	if src.IsStarted() || clk.IsRunning() {
		t.Fatalf("expected source and clock stopped")
	}
}

func TestPeriodicDoubleStart(t *testing.T) {
	src := source.NewPeriodic(clock.NewManual(), source.Constant(512))
	if err := src.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer src.Stop()
	if err := src.Start(context.Background()); err == nil {
		t.Fatal("expected error on second Start")
	}
}

func TestPeriodicRequiresClockAndReader(t *testing.T) {
	if err := source.NewPeriodic(nil, source.Constant(0)).Start(context.Background()); err == nil {
		t.Fatal("expected error without clock")
	}
}

func TestOnSampleAfterStartPanics(t *testing.T) {
	src := source.NewPeriodic(clock.NewManual(), source.Constant(512))
	if err := src.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer src.Stop()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	src.OnSample(func(types.RawSample) {})
}

func TestReplayLoop(t *testing.T) {
	r := source.Replay([]types.RawSample{7, 8}, 0, true)
	for i, want := range []types.RawSample{7, 8, 7, 8, 7} {
		if got := r(); got != want {
			t.Fatalf("read %d: got %d, want %d", i, got, want)
		}
	}
}

func TestSynthesize(t *testing.T) {
	out := source.Synthesize(512, source.Gesture{Amplitude: 200, HalfWidth: 3, Gap: 2})
	want := []types.RawSample{512, 512, 712, 712, 712, 312, 312, 312}
	if len(out) != len(want) {
		t.Fatalf("got %v", out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("index %d: got %d, want %d", i, out[i], want[i])
		}
	}

	clipped := source.Synthesize(512, source.Gesture{Amplitude: 600, HalfWidth: 1})
	if clipped[1] != 0 {
		t.Fatalf("expected negative half clipped to 0, got %d", clipped[1])
	}
}
