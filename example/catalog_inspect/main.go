package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/joeydtaylor/strum/pkg/builder"
)

// Validates a directory of tone files, prints a level/spectrum report per
// tone and optionally dumps one tone as CSV.
func main() {
	cfg := builder.EngineConfigFromEnv()
	dir := flag.String("dir", cfg.ToneDir, "tone directory")
	dump := flag.String("dump", "", "tone file to dump as CSV")
	hex := flag.Bool("hex", false, "dump in hex instead of decimal")
	perLine := flag.Int("per-line", 16, "values per CSV row")
	flag.Parse()

	log := builder.NewLogger(builder.LoggerWithLevel(cfg.LogLevel))
	defer func() { _ = log.Flush() }()

	st := builder.NewFileStorage(*dir, ".wav")
	cat, err := builder.BuildCatalog(context.Background(), st,
		builder.CatalogWithPattern(cfg.TonePattern, cfg.MaxFret),
		builder.CatalogWithLogger(log),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog: %v\n", err)
		os.Exit(1)
	}
	defer cat.Close()

	fmt.Printf("%-4s %-14s %7s %3s %9s %9s %8s %8s\n", "fret", "file", "rate", "ch", "frames", "dominant", "rms_db", "snr_db")
	for _, id := range cat.IDs() {
		tone, _ := cat.Tone(id)
		file, err := os.ReadFile(filepath.Join(*dir, tone.Ref))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", tone.Ref, err)
			continue
		}
		_, rep, err := builder.AnalyzeTone(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", tone.Ref, err)
			continue
		}
		fmt.Printf("%-4d %-14s %7d %3d %9d %9.1f %8.1f %8.1f\n",
			id, tone.Ref, tone.SampleRate, tone.Channels, tone.FrameCount(), rep.DominantHz, dbfs(rep.RMS), rep.SNRDB)
	}
	for ref, err := range cat.Rejected() {
		fmt.Printf("rejected %s: %v\n", ref, err)
	}

	if *dump == "" {
		return
	}
	file, err := os.ReadFile(*dump)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dump: %v\n", err)
		os.Exit(1)
	}
	format := builder.DumpDecimal
	if *hex {
		format = builder.DumpHex
	}
	if err := builder.DumpTone(os.Stdout, file, format, *perLine); err != nil {
		fmt.Fprintf(os.Stderr, "dump: %v\n", err)
		os.Exit(1)
	}
}

func dbfs(v float64) float64 {
	if v <= 0 {
		return -120
	}
	return 20 * math.Log10(v)
}
