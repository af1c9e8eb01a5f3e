package kafkaclient

import "github.com/joeydtaylor/strum/pkg/internal/types"

// ConnectLogger attaches loggers.
func (p *Publisher) ConnectLogger(loggers ...types.Logger) {
	p.loggersLock.Lock()
	defer p.loggersLock.Unlock()
	p.loggers = append(p.loggers, loggers...)
}

// NotifyLoggers sends a structured log message to all attached loggers.
func (p *Publisher) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	p.loggersLock.Lock()
	loggers := make([]types.Logger, len(p.loggers))
	copy(loggers, p.loggers)
	p.loggersLock.Unlock()

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
