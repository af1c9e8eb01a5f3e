package meter

import (
	"context"
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/types"
)

// Monitor samples the host and reports counters every interval until ctx is done.
func (m *Meter) Monitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.report(types.InfoLevel, "Meter final report")
			return
		case <-ticker.C:
			m.report(types.DebugLevel, "Meter report")
		}
	}
}

func (m *Meter) report(level types.LogLevel, msg string) {
	stats := m.ReportSystem()
	if m.display {
		m.updateDisplay(stats)
	}

	kv := []interface{}{
		"component", m.GetComponentMetadata(),
		"event", "Monitor",
		"error_rate", m.ErrorRate(),
	}
	for _, name := range m.sortedMetricNames() {
		kv = append(kv, name, m.GetMetricCount(name))
	}
	m.NotifyLoggers(level, msg, kv...)
}
