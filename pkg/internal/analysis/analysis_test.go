package analysis_test

import (
	"errors"
	"math"
	"testing"

	"github.com/joeydtaylor/strum/pkg/internal/analysis"
	"github.com/joeydtaylor/strum/pkg/internal/wav"
)

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestAnalyzeSine(t *testing.T) {
	samples := wav.Sine(8000, 1, 440, 4000, 0.5)
	rep, err := analysis.Analyze(samples, 8000)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !near(rep.DominantHz, 440, 2) {
		t.Fatalf("DominantHz = %.2f", rep.DominantHz)
	}
	if !near(rep.Peak, 0.5, 0.01) {
		t.Fatalf("Peak = %.4f", rep.Peak)
	}
	if !near(rep.RMS, 0.5/math.Sqrt2, 0.01) {
		t.Fatalf("RMS = %.4f", rep.RMS)
	}
	if !near(rep.CrestDB, 3.01, 0.2) {
		t.Fatalf("CrestDB = %.2f", rep.CrestDB)
	}
	if rep.SNRDB < 20 {
		t.Fatalf("SNRDB = %.2f", rep.SNRDB)
	}
	if !near(rep.Duration, 0.5, 1e-9) || rep.Frames != 4000 {
		t.Fatalf("Duration %.3f Frames %d", rep.Duration, rep.Frames)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	if _, err := analysis.Analyze(nil, 8000); !errors.Is(err, analysis.ErrNoSamples) {
		t.Fatalf("err = %v", err)
	}
}

func TestAnalyzeFileMixesStereo(t *testing.T) {
	file, err := wav.EncodePCM16(8000, 2, wav.Sine(8000, 2, 1000, 800, 0.25))
	if err != nil {
		t.Fatal(err)
	}
	hdr, rep, err := analysis.AnalyzeFile(file)
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	if hdr.NumChannels != 2 || rep.Frames != 800 {
		t.Fatalf("channels %d frames %d", hdr.NumChannels, rep.Frames)
	}
	if !near(rep.DominantHz, 1000, 10) {
		t.Fatalf("DominantHz = %.2f", rep.DominantHz)
	}
}

func TestAnalyzeFileRejectsBadHeader(t *testing.T) {
	if _, _, err := analysis.AnalyzeFile([]byte("nope")); !errors.Is(err, wav.ErrHeaderSize) {
		t.Fatalf("err = %v", err)
	}
}

func TestMixdown(t *testing.T) {
	got := analysis.Mixdown([]int16{10, 20, -4, 4}, 2)
	if len(got) != 2 || got[0] != 15 || got[1] != 0 {
		t.Fatalf("Mixdown = %v", got)
	}
}
