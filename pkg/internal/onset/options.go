package onset

import (
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/types"
)

// WithMidrail sets the sensor rest value.
func WithMidrail(v types.RawSample) types.Option[*Detector] {
	return func(d *Detector) { d.midrail = v }
}

// WithNoiseFloor sets the band around midrail that is ignored.
func WithNoiseFloor(v types.RawSample) types.Option[*Detector] {
	return func(d *Detector) { d.noiseFloor = v }
}

// WithMinDelta sets how far the newest baseline must exceed the reference.
func WithMinDelta(v types.RawSample) types.Option[*Detector] {
	return func(d *Detector) { d.minDelta = v }
}

// WithMinSamples sets the re-arm debounce, in samples.
func WithMinSamples(n uint16) types.Option[*Detector] {
	return func(d *Detector) { d.minSamples = n }
}

// WithFretScanner sets the scanner consulted when a strum is accepted.
func WithFretScanner(f types.FretScanner) types.Option[*Detector] {
	return func(d *Detector) { d.fret = f }
}

// WithSensor attaches sensors notified on every accepted strum.
func WithSensor(s ...types.Sensor) types.Option[*Detector] {
	return func(d *Detector) {
		for _, sn := range s {
			if sn != nil {
				d.sensors = append(d.sensors, sn)
			}
		}
	}
}

// WithLogger attaches loggers.
func WithLogger(l ...types.Logger) types.Option[*Detector] {
	return func(d *Detector) { d.ConnectLogger(l...) }
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) types.Option[*Detector] {
	return func(d *Detector) {
		if now != nil {
			d.now = now
		}
	}
}

// WithComponentMetadata sets the detector name and id.
func WithComponentMetadata(name string, id string) types.Option[*Detector] {
	return func(d *Detector) {
		d.componentMetadata.Name = name
		if id != "" {
			d.componentMetadata.ID = id
		}
	}
}
