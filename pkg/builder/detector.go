package builder

import (
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/fret"
	"github.com/joeydtaylor/strum/pkg/internal/onset"
	"github.com/joeydtaylor/strum/pkg/internal/types"
)

type Detector = onset.Detector

const (
	DefaultMidrail    = onset.DefaultMidrail
	DefaultNoiseFloor = onset.DefaultNoiseFloor
	DefaultMinDelta   = onset.DefaultMinDelta
	DefaultMinSamples = onset.DefaultMinSamples
)

// NewDetector creates an onset detector at rest.
func NewDetector(options ...types.Option[*Detector]) *Detector {
	return onset.NewDetector(options...)
}

func DetectorWithMidrail(v RawSample) types.Option[*Detector] { return onset.WithMidrail(v) }

func DetectorWithNoiseFloor(v RawSample) types.Option[*Detector] { return onset.WithNoiseFloor(v) }

func DetectorWithMinDelta(v RawSample) types.Option[*Detector] { return onset.WithMinDelta(v) }

// DetectorWithMinSamples sets the debounce interval in samples.
func DetectorWithMinSamples(n uint16) types.Option[*Detector] { return onset.WithMinSamples(n) }

// DetectorWithFretScanner sets the scanner consulted when a strum is accepted.
func DetectorWithFretScanner(f FretScanner) types.Option[*Detector] { return onset.WithFretScanner(f) }

func DetectorWithSensor(s ...types.Sensor) types.Option[*Detector] { return onset.WithSensor(s...) }

func DetectorWithLogger(l ...types.Logger) types.Option[*Detector] { return onset.WithLogger(l...) }

func DetectorWithClock(now func() time.Time) types.Option[*Detector] { return onset.WithClock(now) }

func DetectorWithComponentMetadata(name string, id string) types.Option[*Detector] {
	return onset.WithComponentMetadata(name, id)
}

type StaticFret = fret.Static

type FretFunc = fret.Func

type SettableFret = fret.Settable

type FretPoller = fret.Poller

// NewFretPoller polls src every interval and serves the cached value from Scan.
func NewFretPoller(src func() int, interval time.Duration) *FretPoller {
	return fret.NewPoller(src, interval)
}
