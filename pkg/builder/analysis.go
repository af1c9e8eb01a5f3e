package builder

import (
	"io"

	"github.com/joeydtaylor/strum/pkg/internal/analysis"
	"github.com/joeydtaylor/strum/pkg/internal/wav"
)

type WavHeader = wav.Header

type ToneReport = analysis.Report

type DumpFormat = wav.DumpFormat

const (
	DumpDecimal = wav.DumpDecimal
	DumpHex     = wav.DumpHex
)

// AnalyzeTone validates a WAV file and reports its level and spectral figures.
func AnalyzeTone(file []byte) (WavHeader, ToneReport, error) { return analysis.AnalyzeFile(file) }

// AnalyzeSamples analyses mono samples; use analysis of a whole file for stereo.
func AnalyzeSamples(samples []int16, sampleRate uint32) (ToneReport, error) {
	return analysis.Analyze(samples, sampleRate)
}

// ParseWavHeader parses and validates the canonical 44-byte header.
func ParseWavHeader(b []byte) (WavHeader, error) { return wav.Parse(b) }

// DumpTone writes the header and payload of file as CSV, perLine values per row.
func DumpTone(w io.Writer, file []byte, format DumpFormat, perLine int) error {
	return wav.Dump(w, file, format, perLine)
}

// EncodeTone renders interleaved PCM16 samples as a WAV file.
func EncodeTone(sampleRate uint32, channels uint16, samples []int16) ([]byte, error) {
	return wav.EncodePCM16(sampleRate, channels, samples)
}

// SineTone generates frames of a sine wave at freq, amplitude in [0,1].
func SineTone(sampleRate uint32, channels uint16, freq float64, frames int, amplitude float64) []int16 {
	return wav.Sine(sampleRate, channels, freq, frames, amplitude)
}
