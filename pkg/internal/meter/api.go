package meter

import (
	"sort"
	"sync/atomic"

	"github.com/joeydtaylor/strum/pkg/internal/types"
)

func (m *Meter) counter(metric string) *atomic.Uint64 {
	if v, ok := m.counts.Load(metric); ok {
		return v.(*atomic.Uint64)
	}
	v, _ := m.counts.LoadOrStore(metric, new(atomic.Uint64))
	return v.(*atomic.Uint64)
}

// IncrementCount adds one to metric.
func (m *Meter) IncrementCount(metric string) {
	m.counter(metric).Add(1)
}

// DecrementCount subtracts one from metric, stopping at zero.
func (m *Meter) DecrementCount(metric string) {
	c := m.counter(metric)
	for {
		cur := c.Load()
		if cur == 0 || c.CompareAndSwap(cur, cur-1) {
			return
		}
	}
}

// AddCount adds n to metric.
func (m *Meter) AddCount(metric string, n uint64) {
	m.counter(metric).Add(n)
}

// SetCount overwrites metric.
func (m *Meter) SetCount(metric string, n uint64) {
	m.counter(metric).Store(n)
}

// GetMetricCount reads metric.
func (m *Meter) GetMetricCount(metric string) uint64 {
	return m.counter(metric).Load()
}

// GetMetricDisplayName returns the human-readable name of metric.
func (m *Meter) GetMetricDisplayName(metric string) string {
	m.namesLock.Lock()
	defer m.namesLock.Unlock()
	if name, ok := m.displayNames[metric]; ok {
		return name
	}
	return metric
}

// SetMetricDisplayName overrides the human-readable name of metric.
func (m *Meter) SetMetricDisplayName(metric string, name string) {
	m.namesLock.Lock()
	defer m.namesLock.Unlock()
	m.displayNames[metric] = name
}

// Snapshot copies every counter.
func (m *Meter) Snapshot() map[string]uint64 {
	out := make(map[string]uint64)
	m.counts.Range(func(k, v any) bool {
		out[k.(string)] = v.(*atomic.Uint64).Load()
		return true
	})
	return out
}

// ErrorRate returns (overruns + underruns + storage errors) per frame played.
func (m *Meter) ErrorRate() float64 {
	played := m.GetMetricCount(types.MetricFramesPlayed)
	if played == 0 {
		return 0
	}
	faults := m.GetMetricCount(types.MetricOverrunCount) +
		m.GetMetricCount(types.MetricUnderrunCount) +
		m.GetMetricCount(types.MetricStorageErrorCount)
	return float64(faults) / float64(played)
}

func (m *Meter) sortedMetricNames() []string {
	snap := m.Snapshot()
	names := make([]string, 0, len(snap))
	for k := range snap {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
