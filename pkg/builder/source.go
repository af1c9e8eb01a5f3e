package builder

import (
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/source"
	"github.com/joeydtaylor/strum/pkg/internal/types"
)

type PeriodicSource = source.Periodic

type SampleReader = source.Reader

type Gesture = source.Gesture

// NewPeriodicSource samples read once per period of clk.
func NewPeriodicSource(clk Clock, read SampleReader, options ...types.Option[*PeriodicSource]) *PeriodicSource {
	return source.NewPeriodic(clk, read, options...)
}

func SourceWithPeriod(d time.Duration) types.Option[*PeriodicSource] { return source.WithPeriod(d) }

func SourceWithLogger(l ...types.Logger) types.Option[*PeriodicSource] {
	return source.WithLogger(l...)
}

func SourceWithComponentMetadata(name string, id string) types.Option[*PeriodicSource] {
	return source.WithComponentMetadata(name, id)
}

// ReplaySamples plays samples in order and then holds rest, or wraps when loop is set.
func ReplaySamples(samples []RawSample, rest RawSample, loop bool) SampleReader {
	return source.Replay(samples, rest, loop)
}

func ConstantSample(v RawSample) SampleReader { return source.Constant(v) }

// SynthesizeGestures renders synthetic strums around midrail.
func SynthesizeGestures(midrail RawSample, gestures ...Gesture) []RawSample {
	return source.Synthesize(midrail, gestures...)
}
