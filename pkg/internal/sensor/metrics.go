package sensor

import "github.com/joeydtaylor/strum/pkg/internal/types"

func (s *Sensor) snapshotMeters() []types.Meter {
	s.metersLock.Lock()
	meters := append([]types.Meter(nil), s.meters...)
	s.metersLock.Unlock()
	return meters
}

func (s *Sensor) incrementMeterCounters(metric string) {
	for _, m := range s.snapshotMeters() {
		m.IncrementCount(metric)
	}
}

func (s *Sensor) decrementMeterCounters(metric string) {
	for _, m := range s.snapshotMeters() {
		m.DecrementCount(metric)
	}
}

func (s *Sensor) addMeterCounters(metric string, n uint64) {
	for _, m := range s.snapshotMeters() {
		m.AddCount(metric, n)
	}
}

// decorateCallbacks registers the meter-forwarding callbacks ahead of any
// user callbacks.
func (s *Sensor) decorateCallbacks(options ...types.Option[types.Sensor]) []types.Option[types.Sensor] {
	decorated := []types.Option[types.Sensor]{
		WithOnStartFunc(func(c types.ComponentMetadata) {
			s.incrementMeterCounters(types.MetricComponentRunningCount)
		}),
		WithOnStopFunc(func(c types.ComponentMetadata) {
			s.decrementMeterCounters(types.MetricComponentRunningCount)
		}),
		WithOnStrumFunc(func(c types.ComponentMetadata, _ types.StrumEvent) {
			s.incrementMeterCounters(types.MetricStrumCount)
		}),
		WithOnToneSwitchFunc(func(c types.ComponentMetadata, _ int, _ int) {
			s.incrementMeterCounters(types.MetricToneSwitchCount)
		}),
		WithOnPlaybackStartFunc(func(c types.ComponentMetadata, _ types.Tone) {
			s.incrementMeterCounters(types.MetricPlaybackStartCount)
		}),
		WithOnPlaybackCompleteFunc(func(c types.ComponentMetadata, _ types.Tone) {
			s.incrementMeterCounters(types.MetricPlaybackCompleteCount)
		}),
		WithOnOverrunFunc(func(c types.ComponentMetadata, _ int, dropped int) {
			s.incrementMeterCounters(types.MetricOverrunCount)
			if dropped > 0 {
				s.addMeterCounters(types.MetricDroppedFrameCount, uint64(dropped))
			}
		}),
		WithOnUnderrunFunc(func(c types.ComponentMetadata, _ int) {
			s.incrementMeterCounters(types.MetricUnderrunCount)
		}),
		WithOnStorageErrorFunc(func(c types.ComponentMetadata, _ int, _ error) {
			s.incrementMeterCounters(types.MetricStorageErrorCount)
		}),
		WithOnCatalogLoadFunc(func(c types.ComponentMetadata, _ types.Tone) {
			s.incrementMeterCounters(types.MetricCatalogToneCount)
		}),
		WithOnCatalogRejectFunc(func(c types.ComponentMetadata, _ string, _ error) {
			s.incrementMeterCounters(types.MetricCatalogRejectCount)
		}),
	}
	return append(decorated, options...)
}
