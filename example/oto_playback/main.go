//go:build oto

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/joeydtaylor/strum/pkg/builder"
)

// Plays tones from a directory through the system speaker. Each Enter press
// strums the next fret.
func main() {
	cfg := builder.EngineConfigFromEnv()
	dir := flag.String("dir", cfg.ToneDir, "tone directory")
	rate := flag.Int("rate", 44100, "output sample rate; tones should share it")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	log := builder.NewLogger(builder.LoggerWithLevel(cfg.LogLevel))
	defer func() { _ = log.Flush() }()

	cat, err := builder.BuildCatalog(ctx, builder.NewFileStorage(*dir, ".wav"),
		builder.CatalogWithPattern(cfg.TonePattern, cfg.MaxFret),
		builder.CatalogWithLogger(log),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog: %v\n", err)
		os.Exit(1)
	}
	defer cat.Close()

	speaker, err := builder.NewSpeaker(*rate, 8192)
	if err != nil {
		fmt.Fprintf(os.Stderr, "speaker: %v\n", err)
		os.Exit(1)
	}
	defer speaker.Close()
	speaker.Start()

	// A strum is a swing above midrail followed by one below it.
	pending := make(chan struct{}, 1)
	strum := builder.SynthesizeGestures(cfg.Midrail, builder.Gesture{Amplitude: 300, HalfWidth: 8})
	var pos = len(strum)
	reader := func() builder.RawSample {
		if pos >= len(strum) {
			select {
			case <-pending:
				pos = 0
			default:
				return cfg.Midrail
			}
		}
		v := strum[pos]
		pos++
		return v
	}

	ids := cat.IDs()
	fret := &builder.SettableFret{}
	eng, err := builder.AssembleEngine(cfg, builder.EngineParts{
		Tones:   cat,
		Reader:  reader,
		Fret:    fret,
		Codec:   speaker,
		Loggers: []builder.Logger{log},
	})
	if err != nil {
		panic(err)
	}
	if err := eng.Start(ctx); err != nil {
		panic(err)
	}
	defer eng.Stop()

	fmt.Printf("%d tones loaded; press Enter to strum, Ctrl-C to quit\n", len(ids))
	lines := make(chan struct{})
	go func() {
		buf := make([]byte, 1)
		for {
			if _, err := os.Stdin.Read(buf); err != nil {
				close(lines)
				return
			}
			if buf[0] == '\n' {
				lines <- struct{}{}
			}
		}
	}()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-lines:
			if !ok {
				return
			}
			fret.Set(ids[i%len(ids)])
			select {
			case pending <- struct{}{}:
			default:
			}
			fmt.Printf("fret %d\n", ids[i%len(ids)])
		}
	}
}
