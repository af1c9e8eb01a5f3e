package engine

import "github.com/joeydtaylor/strum/pkg/internal/types"

func (e *Engine) GetComponentMetadata() types.ComponentMetadata { return e.componentMetadata }

func (e *Engine) ConnectLogger(loggers ...types.Logger) {
	e.loggersLock.Lock()
	defer e.loggersLock.Unlock()
	e.loggers = append(e.loggers, loggers...)
}

func (e *Engine) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	e.loggersLock.Lock()
	loggers := make([]types.Logger, len(e.loggers))
	copy(loggers, e.loggers)
	e.loggersLock.Unlock()

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
