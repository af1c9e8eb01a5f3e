// Package analysis computes level and spectral figures for tone payloads.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/joeydtaylor/strum/pkg/internal/wav"
	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

var ErrNoSamples = errors.New("analysis: no samples")

// Report summarises one tone. Levels are relative to full scale.
type Report struct {
	Frames      int
	SampleRate  uint32
	Duration    float64 // seconds
	DominantHz  float64
	RMS         float64
	Peak        float64
	CrestDB     float64
	SNRDB       float64
	DCOffset    float64
	TotalEnergy float64
}

// Analyze examines mono samples at sampleRate.
func Analyze(samples []int16, sampleRate uint32) (Report, error) {
	if len(samples) == 0 || sampleRate == 0 {
		return Report{}, ErrNoSamples
	}

	x := make([]float64, len(samples))
	for i, s := range samples {
		x[i] = float64(s) / 32768
	}

	rep := Report{
		Frames:     len(x),
		SampleRate: sampleRate,
		Duration:   float64(len(x)) / float64(sampleRate),
		DCOffset:   floats.Sum(x) / float64(len(x)),
	}
	rep.TotalEnergy = floats.Dot(x, x)
	rep.RMS = math.Sqrt(rep.TotalEnergy / float64(len(x)))
	rep.Peak = math.Max(math.Abs(floats.Max(x)), math.Abs(floats.Min(x)))
	if rep.RMS > 0 {
		rep.CrestDB = 20 * math.Log10(rep.Peak/rep.RMS)
	}

	spectrum := fft.FFTReal(x)
	power := make([]float64, len(spectrum)/2)
	for i := range power {
		a := cmplx.Abs(spectrum[i])
		power[i] = a * a
	}
	if len(power) > 1 {
		// Bin 0 is DC.
		bins := power[1:]
		peak := floats.MaxIdx(bins)
		rep.DominantHz = float64(peak+1) * float64(sampleRate) / float64(len(x))

		signal := bins[peak]
		noise := floats.Sum(bins) - signal
		switch {
		case noise > 0:
			rep.SNRDB = 10 * math.Log10(signal/noise)
		case signal > 0:
			rep.SNRDB = math.Inf(1)
		}
	}
	return rep, nil
}

// Mixdown averages interleaved channels into mono.
func Mixdown(samples []int16, channels uint16) []int16 {
	if channels <= 1 {
		return samples
	}
	n := len(samples) / int(channels)
	out := make([]int16, n)
	for i := 0; i < n; i++ {
		var sum int32
		for c := 0; c < int(channels); c++ {
			sum += int32(samples[i*int(channels)+c])
		}
		out[i] = int16(sum / int32(channels))
	}
	return out
}

// AnalyzeFile parses a complete tone file and analyzes its mono mixdown.
func AnalyzeFile(file []byte) (wav.Header, Report, error) {
	hdr, samples, err := wav.Samples(file)
	if err != nil {
		return hdr, Report{}, fmt.Errorf("analysis: %w", err)
	}
	rep, err := Analyze(Mixdown(samples, hdr.NumChannels), hdr.SampleRate)
	return hdr, rep, err
}
