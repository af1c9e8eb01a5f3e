package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/joeydtaylor/strum/pkg/builder"
)

// Builds an in-memory bank of sine tones, replays three synthetic strums on
// frets 0, 3 and 7 and records every frame the codec receives.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg := builder.EngineConfigFromEnv()
	log := builder.NewLogger(
		builder.LoggerWithLevel(cfg.LogLevel),
		builder.LoggerWithSampling(time.Second, 5, 100),
	)
	defer func() { _ = log.Flush() }()

	st := builder.NewMemoryStorage()
	for fret, hz := range map[int]float64{0: 329.63, 3: 392.00, 7: 493.88} {
		file, err := builder.EncodeTone(22050, 1, builder.SineTone(22050, 1, hz, 22050/4, 0.6))
		if err != nil {
			panic(err)
		}
		st.Put(fmt.Sprintf(cfg.TonePattern, fret), file)
	}

	meter := builder.NewMeter(builder.MeterWithLogger(log))
	sensor := builder.NewSensor(
		builder.SensorWithMeter(meter),
		builder.SensorWithOnStrumFunc(func(_ builder.ComponentMetadata, ev builder.StrumEvent) {
			fmt.Printf("strum: fret=%d magnitude=%d\n", ev.ToneID, ev.Magnitude)
		}),
		builder.SensorWithOnPlaybackCompleteFunc(func(_ builder.ComponentMetadata, t builder.Tone) {
			fmt.Printf("complete: %s\n", t)
		}),
	)

	cat, err := builder.BuildCatalog(ctx, st,
		builder.CatalogWithPattern(cfg.TonePattern, cfg.MaxFret),
		builder.CatalogWithSensor(sensor),
		builder.CatalogWithLogger(log),
	)
	if err != nil {
		panic(err)
	}
	defer cat.Close()

	fret := &builder.SettableFret{}
	gesture := builder.Gesture{Amplitude: 300, HalfWidth: 20, Gap: 4000}
	samples := builder.SynthesizeGestures(cfg.Midrail, gesture, gesture, gesture)
	span := gesture.Gap + 2*gesture.HalfWidth
	frets := []int{0, 3, 7}

	// Runs on the sample clock only.
	var n int
	reader := func() builder.RawSample {
		if i := n / span; n%span == gesture.Gap && i < len(frets) {
			fret.Set(frets[i])
		}
		v := cfg.Midrail
		if n < len(samples) {
			v = samples[n]
		}
		n++
		return v
	}

	out := builder.NewDACRecorder()
	eng, err := builder.AssembleEngine(cfg, builder.EngineParts{
		Tones:   cat,
		Reader:  reader,
		Fret:    fret,
		Codec:   out,
		Sensors: []builder.Sensor{sensor},
		Loggers: []builder.Logger{log},
	})
	if err != nil {
		panic(err)
	}
	if err := eng.Start(ctx); err != nil {
		panic(err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(3 * time.Second):
	}
	eng.Stop()

	snap := eng.Snapshot()
	fmt.Printf("samples=%d strums=%d frames=%d underruns=%d overruns=%d completions=%d\n",
		eng.Samples(), eng.Strums(), out.Len(), snap.Underruns, snap.Overruns, snap.Completions)
	fmt.Printf("meter: %v error_rate=%.4f\n", meter.Snapshot(), meter.ErrorRate())
}
