package types

import (
	"context"
	"time"
)

const (
	MetricStrumCount            = "strum_count"
	MetricToneSwitchCount       = "tone_switch_count"
	MetricPlaybackStartCount    = "playback_start_count"
	MetricPlaybackCompleteCount = "playback_complete_count"
	MetricOverrunCount          = "overrun_count"
	MetricDroppedFrameCount     = "dropped_frame_count"
	MetricUnderrunCount         = "underrun_count"
	MetricStorageErrorCount     = "storage_error_count"
	MetricCatalogToneCount      = "catalog_tone_count"
	MetricCatalogRejectCount    = "catalog_reject_count"
	MetricFramesPlayed          = "frames_played"
	MetricFramesDecoded         = "frames_decoded"
	MetricComponentRunningCount = "component_running_count"

	MetricCurrentGoRoutinesActive = "current_goroutines_active"
	MetricCurrentCpuPercentage    = "current_cpu_percentage"
	MetricCurrentRamPercentage    = "current_ram_percentage"
)

// SystemStats is a host resource sample.
type SystemStats struct {
	CPUPercent float64
	RAMPercent float64
	Goroutines int
}

// Meter accumulates engine counters.
type Meter interface {
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
	ConnectLogger(...Logger)

	IncrementCount(metric string)
	DecrementCount(metric string)
	AddCount(metric string, n uint64)
	SetCount(metric string, n uint64)
	GetMetricCount(metric string) uint64
	GetMetricDisplayName(metric string) string
	SetMetricDisplayName(metric string, name string)
	Snapshot() map[string]uint64

	// ErrorRate is transient and storage errors per frame played.
	ErrorRate() float64
	ReportSystem() SystemStats
	Monitor(ctx context.Context, interval time.Duration)
}
