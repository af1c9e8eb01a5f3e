package builder_test

import (
	"context"
	"testing"

	"github.com/joeydtaylor/strum/pkg/builder"
)

func TestAssembleEngineRequiresParts(t *testing.T) {
	if _, err := builder.AssembleEngine(builder.DefaultEngineConfig(), builder.EngineParts{}); err == nil {
		t.Fatal("expected error for missing parts")
	}
}

func TestAssembleEngineWithManualClocks(t *testing.T) {
	ctx := context.Background()
	st := builder.NewMemoryStorage()
	file, err := builder.EncodeTone(8000, 2, builder.SineTone(8000, 2, 330, 128, 0.4))
	if err != nil {
		t.Fatal(err)
	}
	st.Put("S1_5.wav", file)

	var completes int
	sens := builder.NewSensor(builder.SensorWithOnPlaybackCompleteFunc(func(builder.ComponentMetadata, builder.Tone) { completes++ }))
	cat, err := builder.BuildCatalog(ctx, st, builder.CatalogWithDiscovery(), builder.CatalogWithSensor(sens))
	if err != nil {
		t.Fatalf("BuildCatalog: %v", err)
	}
	defer cat.Close()

	cfg := builder.DefaultEngineConfig()
	samples := builder.SynthesizeGestures(cfg.Midrail, builder.Gesture{Amplitude: 250, HalfWidth: 4, Gap: 4})
	sampleClk, feederClk, playerClk := builder.NewManualClock(), builder.NewManualClock(), builder.NewManualClock()
	out := builder.NewDACRecorder()

	eng, err := builder.AssembleEngine(cfg, builder.EngineParts{
		Tones:       cat,
		Reader:      builder.ReplaySamples(samples, cfg.Midrail, false),
		Fret:        builder.StaticFret(5),
		Codec:       out,
		Sensors:     []builder.Sensor{sens},
		SampleClock: sampleClk,
		FeederClock: feederClk,
		PlayerClock: playerClk,
	})
	if err != nil {
		t.Fatalf("AssembleEngine: %v", err)
	}
	if err := eng.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer eng.Stop()

	sampleClk.Tick(len(samples))
	feederClk.Tick(1)
	playerClk.Tick(128)

	st2 := eng.Snapshot()
	if st2.Phase != builder.PhaseIdle || st2.FramesPlayed != 128 || completes != 1 {
		t.Fatalf("state %+v completes %d", st2, completes)
	}
	if out.Len() != 128 {
		t.Fatalf("codec frames = %d", out.Len())
	}
}

func TestAnalyzeTone(t *testing.T) {
	file, err := builder.EncodeTone(8000, 1, builder.SineTone(8000, 1, 1000, 800, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	h, rep, err := builder.AnalyzeTone(file)
	if err != nil {
		t.Fatal(err)
	}
	if h.NumChannels != 1 || rep.Frames != 800 {
		t.Fatalf("header %+v report %+v", h, rep)
	}
	if rep.DominantHz < 990 || rep.DominantHz > 1010 {
		t.Fatalf("dominant = %v", rep.DominantHz)
	}
	if _, err := builder.ParseWavHeader(file[:20]); err == nil {
		t.Fatal("expected short header error")
	}
}
