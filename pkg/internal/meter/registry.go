package meter

import "github.com/joeydtaylor/strum/pkg/internal/types"

var defaultDisplayNames = map[string]string{
	types.MetricStrumCount:              "Strums",
	types.MetricToneSwitchCount:         "Tone Switches",
	types.MetricPlaybackStartCount:      "Playbacks Started",
	types.MetricPlaybackCompleteCount:   "Playbacks Completed",
	types.MetricOverrunCount:            "Overruns",
	types.MetricDroppedFrameCount:       "Dropped Frames",
	types.MetricUnderrunCount:           "Underruns",
	types.MetricStorageErrorCount:       "Storage Errors",
	types.MetricCatalogToneCount:        "Catalog Tones",
	types.MetricCatalogRejectCount:      "Catalog Rejects",
	types.MetricFramesPlayed:            "Frames Played",
	types.MetricFramesDecoded:           "Frames Decoded",
	types.MetricComponentRunningCount:   "Running Components",
	types.MetricCurrentGoRoutinesActive: "Goroutines",
	types.MetricCurrentCpuPercentage:    "CPU",
	types.MetricCurrentRamPercentage:    "RAM",
}

func (m *Meter) initializeMetrics() {
	for metric, name := range defaultDisplayNames {
		m.counter(metric)
		m.displayNames[metric] = name
	}
}
