package onset

import "github.com/joeydtaylor/strum/pkg/internal/types"

// PeakHistory returns a copy of the peak window.
func (d *Detector) PeakHistory() History { return d.peak }

// BaselineHistory returns a copy of the baseline window.
func (d *Detector) BaselineHistory() History { return d.baseline }

// Armed reports whether a new strum may be accepted.
func (d *Detector) Armed() bool { return d.armed }

// SinceStrum is the number of samples since the last accepted strum.
func (d *Detector) SinceStrum() uint16 { return d.sinceStrum }

// Midrail returns the configured rest value.
func (d *Detector) Midrail() types.RawSample { return d.midrail }

// GetComponentMetadata returns the detector metadata.
func (d *Detector) GetComponentMetadata() types.ComponentMetadata { return d.componentMetadata }

// ConnectLogger attaches loggers.
func (d *Detector) ConnectLogger(loggers ...types.Logger) {
	d.loggersLock.Lock()
	defer d.loggersLock.Unlock()
	d.loggers = append(d.loggers, loggers...)
}

// NotifyLoggers sends a structured log message to all attached loggers.
func (d *Detector) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	d.loggersLock.Lock()
	loggers := append([]types.Logger(nil), d.loggers...)
	d.loggersLock.Unlock()

	for _, logger := range loggers {
		if logger == nil || logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		default:
			logger.Error(msg, keysAndValues...)
		}
	}
}
