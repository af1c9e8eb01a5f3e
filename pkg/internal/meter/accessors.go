package meter

import "github.com/joeydtaylor/strum/pkg/internal/types"

// GetComponentMetadata returns the meter metadata.
func (m *Meter) GetComponentMetadata() types.ComponentMetadata {
	m.metadataLock.Lock()
	defer m.metadataLock.Unlock()
	return m.componentMetadata
}

// SetComponentMetadata updates the meter name and id.
func (m *Meter) SetComponentMetadata(name string, id string) {
	m.metadataLock.Lock()
	defer m.metadataLock.Unlock()
	m.componentMetadata.Name = name
	m.componentMetadata.ID = id
}

// ConnectLogger attaches loggers used by Monitor.
func (m *Meter) ConnectLogger(loggers ...types.Logger) {
	m.loggersLock.Lock()
	defer m.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
}
