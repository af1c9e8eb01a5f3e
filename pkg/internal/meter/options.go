package meter

import (
	"io"
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/types"
)

// WithLogger attaches loggers to the meter.
func WithLogger(logger ...types.Logger) types.Option[types.Meter] {
	return func(m types.Meter) {
		m.ConnectLogger(logger...)
	}
}

// WithComponentMetadata sets the meter name and id.
func WithComponentMetadata(name string, id string) types.Option[types.Meter] {
	return func(m types.Meter) {
		m.SetComponentMetadata(name, id)
	}
}

// WithMetricDisplayName overrides a metric label.
func WithMetricDisplayName(metric string, name string) types.Option[types.Meter] {
	return func(m types.Meter) {
		m.SetMetricDisplayName(metric, name)
	}
}

// WithDisplay redraws a terminal summary on every Monitor tick.
func WithDisplay(out io.Writer) types.Option[types.Meter] {
	return func(m types.Meter) {
		if mm, ok := m.(*Meter); ok {
			mm.display = true
			if out != nil {
				mm.displayOut = out
			}
		}
	}
}

// WithCPUSampleWindow sets the cpu.Percent sampling window.
func WithCPUSampleWindow(d time.Duration) types.Option[types.Meter] {
	return func(m types.Meter) {
		if mm, ok := m.(*Meter); ok && d > 0 {
			mm.cpuSample = d
		}
	}
}
