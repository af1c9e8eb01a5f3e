package controller_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/clock"
	"github.com/joeydtaylor/strum/pkg/internal/controller"
	"github.com/joeydtaylor/strum/pkg/internal/dac"
	"github.com/joeydtaylor/strum/pkg/internal/decoder"
	"github.com/joeydtaylor/strum/pkg/internal/meter"
	"github.com/joeydtaylor/strum/pkg/internal/sensor"
	"github.com/joeydtaylor/strum/pkg/internal/storage"
	"github.com/joeydtaylor/strum/pkg/internal/types"
	"github.com/joeydtaylor/strum/pkg/internal/wav"
)

type bank struct {
	st      *storage.MemoryStorage
	tones   map[int]types.Tone
	handles map[int]types.ToneHandle
}

func newBank() *bank {
	return &bank{
		st:      storage.NewMemoryStorage(),
		tones:   make(map[int]types.Tone),
		handles: make(map[int]types.ToneHandle),
	}
}

func (b *bank) Tone(id int) (types.Tone, bool) {
	t, ok := b.tones[id]
	return t, ok
}

func (b *bank) Handle(id int) (types.ToneHandle, bool) {
	h, ok := b.handles[id]
	return h, ok
}

// add stores a ramp tone whose sample i (per channel) is base+i.
func (b *bank) add(t *testing.T, id int, channels uint16, frames int, base int16) types.Tone {
	t.Helper()
	samples := make([]int16, frames*int(channels))
	for i := 0; i < frames; i++ {
		for c := 0; c < int(channels); c++ {
			samples[i*int(channels)+c] = base + int16(i)
		}
	}
	file, err := wav.EncodePCM16(8000, channels, samples)
	if err != nil {
		t.Fatalf("EncodePCM16: %v", err)
	}
	name := fmt.Sprintf("tone-%d", id)
	b.st.Put(name, file)
	h, err := b.st.Open(context.Background(), name)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	tone := types.Tone{
		ID:            id,
		Ref:           name,
		SampleRate:    8000,
		Channels:      channels,
		BitsPerSample: 16,
		BlockAlign:    channels * 2,
		PayloadSize:   uint32(frames) * uint32(channels) * 2,
		DataOffset:    wav.HeaderSize,
	}
	b.tones[id] = tone
	b.handles[id] = h
	return tone
}

type rig struct {
	ctl    *controller.Controller
	feeder *clock.Manual
	player *clock.Manual
	out    *dac.Recorder
}

func newRig(t *testing.T, b controller.ToneSource, opts ...types.Option[*controller.Controller]) *rig {
	t.Helper()
	r := &rig{feeder: clock.NewManual(), player: clock.NewManual(), out: dac.NewRecorder()}
	ctl, err := controller.New(b, r.out, r.feeder, r.player, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.ctl = ctl
	return r
}

func checkBounds(t *testing.T, st controller.State) {
	t.Helper()
	if st.ReadCursor > st.PayloadSize || st.WriteCursor > st.PayloadSize {
		t.Fatalf("cursor out of bounds: read %d write %d payload %d", st.ReadCursor, st.WriteCursor, st.PayloadSize)
	}
}

func TestNewValidatesConfiguration(t *testing.T) {
	b := newBank()
	if _, err := controller.New(nil, dac.NewRecorder(), clock.NewManual(), clock.NewManual()); !errors.Is(err, controller.ErrConfig) {
		t.Fatalf("nil tones err = %v", err)
	}
	if _, err := controller.New(b, dac.NewRecorder(), clock.NewManual(), clock.NewManual(), controller.WithRingCapacity(100)); !errors.Is(err, controller.ErrConfig) {
		t.Fatalf("bad capacity err = %v", err)
	}
	if _, err := controller.New(b, dac.NewRecorder(), clock.NewManual(), clock.NewManual(), controller.WithChunkBytes(0)); !errors.Is(err, controller.ErrConfig) {
		t.Fatalf("bad chunk err = %v", err)
	}
}

func TestStartsIdle(t *testing.T) {
	r := newRig(t, newBank())
	st := r.ctl.Snapshot()
	if st.Phase != types.PhaseIdle || st.ToneID != types.IdleTone || st.ReadCursor != 0 || st.WriteCursor != 0 {
		t.Fatalf("initial state = %+v", st)
	}
	if r.feeder.IsRunning() || r.player.IsRunning() {
		t.Fatal("clocks running at rest")
	}
}

func TestScenarioCompletesAfterExactFrameCount(t *testing.T) {
	b := newBank()
	tone := b.add(t, 3, 2, 512, -256)
	if tone.PayloadSize != 2048 {
		t.Fatalf("payload = %d", tone.PayloadSize)
	}
	r := newRig(t, b, controller.WithChunkBytes(512))

	r.ctl.OnStrum(types.StrumEvent{ToneID: 3})
	st := r.ctl.Snapshot()
	if st.Phase != types.PhaseArming || !r.feeder.IsRunning() || r.player.IsRunning() {
		t.Fatalf("after strum: %+v feeder %v player %v", st, r.feeder.IsRunning(), r.player.IsRunning())
	}
	if r.player.Period() != time.Second/8000 {
		t.Fatalf("player period = %v", r.player.Period())
	}

	r.feeder.Tick(1)
	if r.ctl.Phase() != types.PhasePlaying || !r.player.IsRunning() {
		t.Fatalf("expected playing after first fill")
	}

	ticks := 0
	for r.ctl.Phase() != types.PhaseIdle {
		if ticks > 0 && ticks%64 == 0 {
			r.feeder.Tick(1)
		}
		if r.player.Tick(1) != 1 {
			t.Fatalf("player clock stopped early at tick %d", ticks)
		}
		ticks++
		checkBounds(t, r.ctl.Snapshot())
		if ticks > 600 {
			t.Fatal("never completed")
		}
	}
	if ticks != 512 {
		t.Fatalf("completed after %d player ticks, want 512", ticks)
	}

	st = r.ctl.Snapshot()
	if st.Overruns != 0 || st.Underruns != 0 {
		t.Fatalf("overruns %d underruns %d", st.Overruns, st.Underruns)
	}
	if st.ToneID != types.IdleTone || st.Completions != 1 || st.FramesPlayed != 512 {
		t.Fatalf("final state = %+v", st)
	}
	if r.feeder.IsRunning() || r.player.IsRunning() {
		t.Fatal("clocks still running after completion")
	}

	frames := r.out.Frames()
	if len(frames) != 512 {
		t.Fatalf("wrote %d frames", len(frames))
	}
	for i, f := range frames {
		want := decoder.ToCode(int16(-256 + i))
		if f.Left != want || f.Right != want {
			t.Fatalf("frame %d = %+v, want %#04x", i, f, want)
		}
	}
}

func TestFeederFasterThanPlayer(t *testing.T) {
	b := newBank()
	b.add(t, 1, 2, 512, 0)
	r := newRig(t, b)

	r.ctl.OnStrum(types.StrumEvent{ToneID: 1})
	r.feeder.Tick(10)
	st := r.ctl.Snapshot()
	if st.ReadCursor != 2048 || st.Buffered != 512 || st.Overruns != 0 {
		t.Fatalf("after eager feeding: %+v", st)
	}
	if n := r.player.Tick(1000); n != 512 {
		t.Fatalf("player delivered %d ticks", n)
	}
	if r.ctl.Phase() != types.PhaseIdle {
		t.Fatal("expected idle")
	}
}

func TestMonoDuplicatesToBothChannels(t *testing.T) {
	b := newBank()
	b.add(t, 0, 1, 4, 100)
	r := newRig(t, b)

	r.ctl.OnStrum(types.StrumEvent{ToneID: 0})
	r.feeder.Tick(1)
	r.player.Tick(4)

	frames := r.out.Frames()
	if len(frames) != 4 {
		t.Fatalf("frames = %d", len(frames))
	}
	for i, f := range frames {
		want := decoder.ToCode(int16(100 + i))
		if f.Left != want || f.Right != want {
			t.Fatalf("frame %d = %+v", i, f)
		}
	}
	if r.ctl.Phase() != types.PhaseIdle {
		t.Fatal("expected idle after 4 frames")
	}
}

func TestSameToneIsNoOp(t *testing.T) {
	b := newBank()
	b.add(t, 2, 2, 512, 0)
	r := newRig(t, b)

	r.ctl.OnStrum(types.StrumEvent{ToneID: 2})
	r.feeder.Tick(1)
	r.player.Tick(10)
	before := r.ctl.Snapshot()

	r.ctl.OnStrum(types.StrumEvent{ToneID: 2})
	after := r.ctl.Snapshot()
	if after != before {
		t.Fatalf("same-tone strum changed state:\n%+v\n%+v", before, after)
	}
}

func TestUnknownToneIgnored(t *testing.T) {
	r := newRig(t, newBank())
	r.ctl.OnStrum(types.StrumEvent{ToneID: 12})
	if r.ctl.Phase() != types.PhaseIdle || r.feeder.IsRunning() {
		t.Fatal("unknown tone armed playback")
	}
}

func TestUnderrunHoldsLastOutput(t *testing.T) {
	b := newBank()
	b.add(t, 1, 2, 512, 10)
	r := newRig(t, b, controller.WithChunkBytes(16))

	r.ctl.OnStrum(types.StrumEvent{ToneID: 1})
	r.feeder.Tick(1) // 4 frames
	r.player.Tick(7)

	st := r.ctl.Snapshot()
	if st.Underruns != 3 || st.FramesPlayed != 4 {
		t.Fatalf("state = %+v", st)
	}
	if st.Phase != types.PhasePlaying {
		t.Fatalf("underrun changed phase to %v", st.Phase)
	}
	frames := r.out.Frames()
	held := decoder.ToCode(13)
	for _, f := range frames[4:] {
		if f.Left != held || f.Right != held {
			t.Fatalf("held output = %+v, want %#04x", f, held)
		}
	}
	if st.WriteCursor != 16 {
		t.Fatalf("underrun advanced write cursor to %d", st.WriteCursor)
	}
}

func TestRetriggerKeepsPlayerRunning(t *testing.T) {
	b := newBank()
	b.add(t, 1, 2, 512, 0)
	b.add(t, 2, 1, 256, 1000)
	r := newRig(t, b)

	r.ctl.OnStrum(types.StrumEvent{ToneID: 1})
	r.feeder.Tick(1)
	r.player.Tick(20)
	gen := r.ctl.Snapshot().Generation

	r.ctl.OnStrum(types.StrumEvent{ToneID: 2})
	st := r.ctl.Snapshot()
	if st.Phase != types.PhaseArming || st.ToneID != 2 || st.ReadCursor != 0 || st.WriteCursor != 0 || st.Buffered != 0 {
		t.Fatalf("after retrigger: %+v", st)
	}
	if st.Generation == gen {
		t.Fatal("generation not bumped")
	}
	if !r.player.IsRunning() || r.player.Starts() != 1 {
		t.Fatalf("player restarted: running %v starts %d", r.player.IsRunning(), r.player.Starts())
	}

	// Ticks while arming hold output without counting underruns.
	r.player.Tick(3)
	if u := r.ctl.Snapshot().Underruns; u != 0 {
		t.Fatalf("arming ticks counted %d underruns", u)
	}

	r.feeder.Tick(1)
	if r.ctl.Phase() != types.PhasePlaying {
		t.Fatal("expected playing")
	}
	r.out.Reset()
	r.player.Tick(1)
	if f := r.out.Frames()[0]; f.Left != decoder.ToCode(1000) {
		t.Fatalf("first frame after retrigger = %+v", f)
	}
}

type failingHandle struct {
	types.ToneHandle
	err error
}

func (h failingHandle) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	return 0, h.err
}

func TestStorageErrorStopsPlayback(t *testing.T) {
	b := newBank()
	b.add(t, 4, 2, 64, 0)
	boom := errors.New("bus fault")
	b.handles[4] = failingHandle{ToneHandle: b.handles[4], err: boom}

	var reported error
	s := sensor.NewSensor(sensor.WithOnStorageErrorFunc(func(_ types.ComponentMetadata, id int, err error) {
		if id == 4 {
			reported = err
		}
	}))
	r := newRig(t, b, controller.WithSensor(s))

	r.ctl.OnStrum(types.StrumEvent{ToneID: 4})
	r.feeder.Tick(1)

	if r.ctl.Phase() != types.PhaseIdle || r.ctl.ActiveTone() != types.IdleTone {
		t.Fatalf("state after error = %+v", r.ctl.Snapshot())
	}
	if r.feeder.IsRunning() || r.player.IsRunning() {
		t.Fatal("clocks still running")
	}
	if !errors.Is(reported, decoder.ErrStorage) || !errors.Is(reported, boom) {
		t.Fatalf("reported = %v", reported)
	}
}

type blockingHandle struct {
	types.ToneHandle
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (h *blockingHandle) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	h.once.Do(func() {
		close(h.started)
		<-h.release
	})
	return h.ToneHandle.ReadAt(ctx, p, off)
}

func TestStaleReadIsDiscarded(t *testing.T) {
	b := newBank()
	b.add(t, 1, 2, 512, 0)
	b.add(t, 2, 2, 512, 5000)
	slow := &blockingHandle{ToneHandle: b.handles[1], started: make(chan struct{}), release: make(chan struct{})}
	b.handles[1] = slow
	r := newRig(t, b)

	r.ctl.OnStrum(types.StrumEvent{ToneID: 1})
	done := make(chan struct{})
	go func() {
		r.feeder.Tick(1)
		close(done)
	}()

	<-slow.started
	// The state lock is free while the read is in flight.
	r.ctl.OnStrum(types.StrumEvent{ToneID: 2})
	close(slow.release)
	<-done

	st := r.ctl.Snapshot()
	if st.ToneID != 2 || st.ReadCursor != 0 || st.Buffered != 0 || st.Phase != types.PhaseArming {
		t.Fatalf("stale read leaked into new tone: %+v", st)
	}

	r.feeder.Tick(1)
	r.player.Tick(1)
	if f := r.out.Frames()[0]; f.Left != decoder.ToCode(5000) {
		t.Fatalf("first frame = %+v", f)
	}
}

func TestOverrunStillCompletes(t *testing.T) {
	b := newBank()
	b.add(t, 1, 2, 64, 0)
	m := meter.NewMeter()
	s := sensor.NewSensor(sensor.WithMeter(m))
	r := newRig(t, b,
		controller.WithChunkBytes(4096),
		controller.WithRingCapacity(16),
		controller.WithSensor(s),
	)

	r.ctl.OnStrum(types.StrumEvent{ToneID: 1})
	r.feeder.Tick(1)
	st := r.ctl.Snapshot()
	if st.Overruns != 1 || st.Buffered != 16 || st.ReadCursor != 256 || st.WriteCursor != 48*4 {
		t.Fatalf("after overrun: %+v", st)
	}
	if n := r.player.Tick(100); n != 16 {
		t.Fatalf("completed after %d ticks, want 16", n)
	}
	if r.ctl.Phase() != types.PhaseIdle {
		t.Fatal("expected idle")
	}
	if got := m.GetMetricCount(types.MetricDroppedFrameCount); got != 48 {
		t.Fatalf("dropped metric = %d", got)
	}
	if got := m.GetMetricCount(types.MetricPlaybackCompleteCount); got != 1 {
		t.Fatalf("complete metric = %d", got)
	}
}

func TestBackpressurePreventsOverrun(t *testing.T) {
	b := newBank()
	b.add(t, 1, 2, 64, 0)
	r := newRig(t, b,
		controller.WithChunkBytes(4096),
		controller.WithRingCapacity(16),
		controller.WithBackpressure(true),
	)

	r.ctl.OnStrum(types.StrumEvent{ToneID: 1})
	ticks := 0
	for r.ctl.Phase() != types.PhaseIdle && ticks < 1000 {
		r.feeder.Tick(1)
		r.player.Tick(4)
		ticks++
	}
	st := r.ctl.Snapshot()
	if st.Phase != types.PhaseIdle || st.Overruns != 0 || st.FramesPlayed != 64 {
		t.Fatalf("state = %+v", st)
	}
}

func TestHaltReturnsToIdle(t *testing.T) {
	b := newBank()
	b.add(t, 1, 2, 512, 0)
	r := newRig(t, b)

	r.ctl.OnStrum(types.StrumEvent{ToneID: 1})
	r.feeder.Tick(1)
	r.ctl.Halt()

	st := r.ctl.Snapshot()
	if st.Phase != types.PhaseIdle || st.Buffered != 0 || st.Completions != 0 {
		t.Fatalf("after halt: %+v", st)
	}
	if r.feeder.IsRunning() || r.player.IsRunning() {
		t.Fatal("clocks still running")
	}

	// The same tone may be armed again after halting.
	r.ctl.OnStrum(types.StrumEvent{ToneID: 1})
	if r.ctl.Phase() != types.PhaseArming {
		t.Fatal("expected re-arm after halt")
	}
}

func TestTickerClocksDrivePlayback(t *testing.T) {
	b := newBank()
	b.add(t, 1, 2, 400, 0)
	feeder := clock.NewTicker()
	player := clock.NewTicker()
	out := dac.NewRecorder()
	ctl, err := controller.New(b, out, feeder, player, controller.WithFeederPeriod(time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer feeder.Close()
	defer player.Close()

	ctl.OnStrum(types.StrumEvent{ToneID: 1})
	deadline := time.Now().Add(5 * time.Second)
	for ctl.Phase() != types.PhaseIdle && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	st := ctl.Snapshot()
	if st.Phase != types.PhaseIdle || st.FramesPlayed != 400 {
		t.Fatalf("state = %+v", st)
	}
}
