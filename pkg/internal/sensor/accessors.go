package sensor

import "github.com/joeydtaylor/strum/pkg/internal/types"

// GetComponentMetadata returns the sensor metadata.
func (s *Sensor) GetComponentMetadata() types.ComponentMetadata {
	s.metadataLock.Lock()
	defer s.metadataLock.Unlock()
	return s.componentMetadata
}

// SetComponentMetadata updates the sensor name and id.
func (s *Sensor) SetComponentMetadata(name string, id string) {
	s.metadataLock.Lock()
	defer s.metadataLock.Unlock()
	s.componentMetadata.Name = name
	s.componentMetadata.ID = id
}

// ConnectLogger attaches loggers to the sensor.
func (s *Sensor) ConnectLogger(loggers ...types.Logger) {
	s.loggersLock.Lock()
	defer s.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			s.loggers = append(s.loggers, l)
		}
	}
}

// ConnectMeter attaches meters to the sensor.
func (s *Sensor) ConnectMeter(meters ...types.Meter) {
	s.metersLock.Lock()
	defer s.metersLock.Unlock()
	for _, m := range meters {
		if m != nil {
			s.meters = append(s.meters, m)
		}
	}
}

// GetMeters returns the attached meters.
func (s *Sensor) GetMeters() []types.Meter {
	return s.snapshotMeters()
}
