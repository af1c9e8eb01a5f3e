package meter

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/types"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// ReportSystem samples host CPU, RAM and goroutine usage and stores them as
// counters (percentages are stored as hundredths).
func (m *Meter) ReportSystem() types.SystemStats {
	stats := types.SystemStats{Goroutines: runtime.NumGoroutine()}

	if cpuPercentages, err := cpu.Percent(m.cpuSample, false); err == nil && len(cpuPercentages) > 0 {
		stats.CPUPercent = cpuPercentages[0]
	}
	if memStats, err := mem.VirtualMemory(); err == nil && memStats != nil {
		stats.RAMPercent = memStats.UsedPercent
	}

	m.SetCount(types.MetricCurrentGoRoutinesActive, uint64(stats.Goroutines))
	m.SetCount(types.MetricCurrentCpuPercentage, uint64(stats.CPUPercent*100))
	m.SetCount(types.MetricCurrentRamPercentage, uint64(stats.RAMPercent*100))
	return stats
}

func (m *Meter) render(stats types.SystemStats) string {
	var b strings.Builder
	elapsed := time.Since(m.startTime).Truncate(time.Second)
	fmt.Fprintf(&b, "Start Time: %v, Elapsed Time: %s\n", m.startTime.Format("01-02-2006 15:04:05"), elapsed)
	fmt.Fprintf(&b, "%s: %d, %s: %.2f%%, %s: %.2f%%\n",
		m.GetMetricDisplayName(types.MetricCurrentGoRoutinesActive), stats.Goroutines,
		m.GetMetricDisplayName(types.MetricCurrentCpuPercentage), stats.CPUPercent,
		m.GetMetricDisplayName(types.MetricCurrentRamPercentage), stats.RAMPercent,
	)
	fmt.Fprintf(&b, "%s: %d, %s: %d, %s: %d\n",
		m.GetMetricDisplayName(types.MetricStrumCount), m.GetMetricCount(types.MetricStrumCount),
		m.GetMetricDisplayName(types.MetricToneSwitchCount), m.GetMetricCount(types.MetricToneSwitchCount),
		m.GetMetricDisplayName(types.MetricPlaybackCompleteCount), m.GetMetricCount(types.MetricPlaybackCompleteCount),
	)
	fmt.Fprintf(&b, "%s: %d, %s: %d\n",
		m.GetMetricDisplayName(types.MetricFramesDecoded), m.GetMetricCount(types.MetricFramesDecoded),
		m.GetMetricDisplayName(types.MetricFramesPlayed), m.GetMetricCount(types.MetricFramesPlayed),
	)
	fmt.Fprintf(&b, "%s: %d, %s: %d, %s: %d, Error Rate: %.4f\n",
		m.GetMetricDisplayName(types.MetricOverrunCount), m.GetMetricCount(types.MetricOverrunCount),
		m.GetMetricDisplayName(types.MetricUnderrunCount), m.GetMetricCount(types.MetricUnderrunCount),
		m.GetMetricDisplayName(types.MetricStorageErrorCount), m.GetMetricCount(types.MetricStorageErrorCount),
		m.ErrorRate(),
	)
	return b.String()
}

func (m *Meter) updateDisplay(stats types.SystemStats) {
	fmt.Fprint(m.displayOut, "\033[2J\033[H")
	fmt.Fprint(m.displayOut, m.render(stats))
}
