package engine_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/catalog"
	"github.com/joeydtaylor/strum/pkg/internal/clock"
	"github.com/joeydtaylor/strum/pkg/internal/controller"
	"github.com/joeydtaylor/strum/pkg/internal/dac"
	"github.com/joeydtaylor/strum/pkg/internal/engine"
	"github.com/joeydtaylor/strum/pkg/internal/fret"
	"github.com/joeydtaylor/strum/pkg/internal/onset"
	"github.com/joeydtaylor/strum/pkg/internal/sensor"
	"github.com/joeydtaylor/strum/pkg/internal/source"
	"github.com/joeydtaylor/strum/pkg/internal/storage"
	"github.com/joeydtaylor/strum/pkg/internal/types"
	"github.com/joeydtaylor/strum/pkg/internal/wav"
)

type harness struct {
	eng    *engine.Engine
	sample *clock.Manual
	feeder *clock.Manual
	player *clock.Manual
	out    *dac.Recorder
	cat    *catalog.Catalog
}

func newHarness(t *testing.T, samples []types.RawSample, fretNo int, frames int, opts ...types.Option[*engine.Engine]) *harness {
	t.Helper()
	st := storage.NewMemoryStorage()
	file, err := wav.EncodePCM16(8000, 1, wav.Sine(8000, 1, 440, frames, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	st.Put("S1_3.wav", file)
	cat, err := catalog.Build(context.Background(), st, catalog.WithRefs(map[int]string{3: "S1_3.wav"}))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(func() { _ = cat.Close() })

	h := &harness{
		sample: clock.NewManual(),
		feeder: clock.NewManual(),
		player: clock.NewManual(),
		out:    dac.NewRecorder(),
		cat:    cat,
	}
	ctrl, err := controller.New(cat, h.out, h.feeder, h.player)
	if err != nil {
		t.Fatalf("controller.New: %v", err)
	}
	det := onset.NewDetector(onset.WithFretScanner(fret.Static(fretNo)))
	src := source.NewPeriodic(h.sample, source.Replay(samples, onset.DefaultMidrail, false))

	eng, err := engine.New(src, det, ctrl, opts...)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	h.eng = eng
	return h
}

type recordingService struct {
	name    string
	log     *[]string
	mu      *sync.Mutex
	failErr error
}

func (s recordingService) Start(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	*s.log = append(*s.log, "start "+s.name)
	return s.failErr
}

func (s recordingService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	*s.log = append(*s.log, "stop "+s.name)
}

type countingCloser struct{ n atomic.Int32 }

func (c *countingCloser) Close() { c.n.Add(1) }

func TestNewRequiresComponents(t *testing.T) {
	if _, err := engine.New(nil, nil, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestStrumPlaysToneToCompletion(t *testing.T) {
	samples := source.Synthesize(onset.DefaultMidrail, source.Gesture{Amplitude: 200, HalfWidth: 3, Gap: 2})
	h := newHarness(t, samples, 3, 256)
	if err := h.eng.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer h.eng.Stop()

	if got := h.sample.Tick(len(samples) + 10); got != len(samples)+10 {
		t.Fatalf("delivered %d samples", got)
	}
	if h.eng.Strums() != 1 {
		t.Fatalf("strums = %d, want 1", h.eng.Strums())
	}
	st := h.eng.Snapshot()
	if st.ToneID != 3 || st.Phase != types.PhaseArming {
		t.Fatalf("after strum: tone %d phase %v", st.ToneID, st.Phase)
	}

	h.feeder.Tick(1)
	if !h.player.IsRunning() || h.eng.Snapshot().Phase != types.PhasePlaying {
		t.Fatal("expected player to start after first fill")
	}
	h.player.Tick(256)

	st = h.eng.Snapshot()
	if st.Phase != types.PhaseIdle || st.ToneID != types.IdleTone {
		t.Fatalf("after playback: tone %d phase %v", st.ToneID, st.Phase)
	}
	if st.FramesPlayed != 256 || st.Completions != 1 || st.Underruns != 0 || st.Overruns != 0 {
		t.Fatalf("state = %+v", st)
	}
	if h.out.Len() != 256 {
		t.Fatalf("codec received %d frames", h.out.Len())
	}
	if h.eng.Samples() != uint64(len(samples)+10) {
		t.Fatalf("samples = %d", h.eng.Samples())
	}
}

func TestFlatSignalNeverStrums(t *testing.T) {
	h := newHarness(t, nil, 3, 64)
	if err := h.eng.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer h.eng.Stop()
	h.sample.Tick(2000)
	if h.eng.Strums() != 0 || h.feeder.IsRunning() {
		t.Fatal("flat input must not trigger playback")
	}
}

func TestUnknownFretIsIgnored(t *testing.T) {
	samples := source.Synthesize(onset.DefaultMidrail, source.Gesture{Amplitude: 200, HalfWidth: 3, Gap: 2})
	h := newHarness(t, samples, 7, 64)
	if err := h.eng.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer h.eng.Stop()
	h.sample.Tick(len(samples))
	if h.eng.Strums() != 1 {
		t.Fatalf("strums = %d", h.eng.Strums())
	}
	if st := h.eng.Snapshot(); st.Phase != types.PhaseIdle || h.feeder.IsRunning() {
		t.Fatalf("unknown tone should leave controller idle, got %v", st.Phase)
	}
}

func TestLifecycle(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
	)
	closer := &countingCloser{}
	var starts, stops atomic.Int32
	s := sensor.NewSensor(
		sensor.WithOnStartFunc(func(types.ComponentMetadata) { starts.Add(1) }),
		sensor.WithOnStopFunc(func(types.ComponentMetadata) { stops.Add(1) }),
	)
	h := newHarness(t, nil, 3, 64,
		engine.WithService(
			recordingService{name: "a", log: &calls, mu: &mu},
			recordingService{name: "b", log: &calls, mu: &mu},
		),
		engine.WithCloser(closer),
		engine.WithSensor(s),
	)

	if err := h.eng.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !h.eng.IsRunning() || !h.sample.IsRunning() {
		t.Fatal("expected engine and sample clock running")
	}
	if err := h.eng.Start(context.Background()); !errors.Is(err, engine.ErrStarted) {
		t.Fatalf("second Start err = %v", err)
	}

	h.eng.Stop()
	h.eng.Stop()

	if h.eng.IsRunning() || h.sample.IsRunning() {
		t.Fatal("expected engine and sample clock stopped")
	}
	mu.Lock()
	got := append([]string(nil), calls...)
	mu.Unlock()
	want := []string{"start a", "start b", "stop b", "stop a"}
	if len(got) != len(want) {
		t.Fatalf("calls = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("calls = %v, want %v", got, want)
		}
	}
	if closer.n.Load() != 1 {
		t.Fatalf("closer called %d times", closer.n.Load())
	}
	if starts.Load() != 1 || stops.Load() != 1 {
		t.Fatalf("sensor start/stop = %d/%d", starts.Load(), stops.Load())
	}
	if err := h.eng.Start(context.Background()); !errors.Is(err, engine.ErrStopped) {
		t.Fatalf("restart err = %v", err)
	}
}

func TestServiceStartFailureUnwinds(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
	)
	boom := errors.New("boom")
	h := newHarness(t, nil, 3, 64, engine.WithService(
		recordingService{name: "a", log: &calls, mu: &mu},
		recordingService{name: "b", log: &calls, mu: &mu, failErr: boom},
	))
	if err := h.eng.Start(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Start err = %v", err)
	}
	if h.sample.IsRunning() {
		t.Fatal("sampling must not start when a service fails")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 3 || calls[2] != "stop a" {
		t.Fatalf("calls = %v", calls)
	}
}

func TestContextCancelStopsEngine(t *testing.T) {
	h := newHarness(t, nil, 3, 64)
	ctx, cancel := context.WithCancel(context.Background())
	if err := h.eng.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()
	deadline := time.Now().Add(2 * time.Second)
	for h.eng.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if h.eng.IsRunning() {
		t.Fatal("expected engine to stop after cancel")
	}
}

func TestFretPollerRunsWithEngine(t *testing.T) {
	var reads atomic.Int32
	p := fret.NewPoller(func() int { reads.Add(1); return 3 }, time.Millisecond)
	h := newHarness(t, nil, 3, 64, engine.WithFretPoller(p))
	if err := h.eng.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if p.Scan() != 3 || p.Polls() == 0 {
		t.Fatalf("poller not started: scan %d polls %d", p.Scan(), p.Polls())
	}
	h.eng.Stop()
	after := p.Polls()
	time.Sleep(10 * time.Millisecond)
	if p.Polls() != after {
		t.Fatal("poller kept running after Stop")
	}
}

func TestOptionsPanicAfterStart(t *testing.T) {
	h := newHarness(t, nil, 3, 64)
	if err := h.eng.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer h.eng.Stop()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	engine.WithService(recordingService{})(h.eng)
}
