package builder

import (
	"io"
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/meter"
	"github.com/joeydtaylor/strum/pkg/internal/types"
)

// Here we re-export the metric names from the types package.
const (
	MetricStrumCount            = types.MetricStrumCount
	MetricToneSwitchCount       = types.MetricToneSwitchCount
	MetricPlaybackStartCount    = types.MetricPlaybackStartCount
	MetricPlaybackCompleteCount = types.MetricPlaybackCompleteCount
	MetricOverrunCount          = types.MetricOverrunCount
	MetricDroppedFrameCount     = types.MetricDroppedFrameCount
	MetricUnderrunCount         = types.MetricUnderrunCount
	MetricStorageErrorCount     = types.MetricStorageErrorCount
	MetricCatalogToneCount      = types.MetricCatalogToneCount
	MetricCatalogRejectCount    = types.MetricCatalogRejectCount
	MetricFramesPlayed          = types.MetricFramesPlayed
	MetricFramesDecoded         = types.MetricFramesDecoded
	MetricComponentRunningCount = types.MetricComponentRunningCount

	MetricCurrentGoRoutinesActive = types.MetricCurrentGoRoutinesActive
	MetricCurrentCpuPercentage    = types.MetricCurrentCpuPercentage
	MetricCurrentRamPercentage    = types.MetricCurrentRamPercentage
)

type SystemStats = types.SystemStats

// NewMeter creates a meter for engine counters and host metrics.
func NewMeter(options ...types.Option[types.Meter]) types.Meter {
	return meter.NewMeter(options...)
}

func MeterWithLogger(logger ...types.Logger) types.Option[types.Meter] {
	return meter.WithLogger(logger...)
}

func MeterWithComponentMetadata(name string, id string) types.Option[types.Meter] {
	return meter.WithComponentMetadata(name, id)
}

// MeterWithMetricDisplayName overrides the label used when rendering a metric.
func MeterWithMetricDisplayName(metric string, name string) types.Option[types.Meter] {
	return meter.WithMetricDisplayName(metric, name)
}

// MeterWithDisplay renders a status line to out on every Monitor report.
func MeterWithDisplay(out io.Writer) types.Option[types.Meter] {
	return meter.WithDisplay(out)
}

func MeterWithCPUSampleWindow(d time.Duration) types.Option[types.Meter] {
	return meter.WithCPUSampleWindow(d)
}
