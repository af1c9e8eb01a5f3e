package controller

import "github.com/joeydtaylor/strum/pkg/internal/types"

// GetComponentMetadata returns the controller metadata.
func (c *Controller) GetComponentMetadata() types.ComponentMetadata { return c.componentMetadata }

// ConnectLogger attaches loggers.
func (c *Controller) ConnectLogger(loggers ...types.Logger) {
	c.loggersLock.Lock()
	defer c.loggersLock.Unlock()
	c.loggers = append(c.loggers, loggers...)
}

// NotifyLoggers sends a structured log message to all attached loggers.
func (c *Controller) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	c.loggersLock.Lock()
	loggers := append([]types.Logger(nil), c.loggers...)
	c.loggersLock.Unlock()

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
