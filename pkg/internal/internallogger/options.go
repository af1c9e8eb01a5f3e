package internallogger

import (
	"io"
	"time"

	"github.com/joeydtaylor/strum/pkg/logschema"
)

// LoggerWithLevel sets the minimum level ("debug", "info", ...).
func LoggerWithLevel(levelStr string) LoggerOption {
	return func(cfg *loggerConfig) {
		cfg.level = ConvertLevel(parseLogLevel(levelStr))
	}
}

// LoggerWithDevelopment switches to colored level output.
func LoggerWithDevelopment(dev bool) LoggerOption {
	return func(cfg *loggerConfig) {
		cfg.development = dev
	}
}

// LoggerWithFields attaches fields to every log line.
func LoggerWithFields(fields map[string]interface{}) LoggerOption {
	return func(cfg *loggerConfig) {
		for key, value := range fields {
			if key == "" {
				continue
			}
			cfg.fields[key] = value
		}
	}
}

// LoggerWithSchema overrides the log schema identifier field.
func LoggerWithSchema(schema string) LoggerOption {
	return func(cfg *loggerConfig) {
		cfg.fields[logschema.FieldSchema] = schema
	}
}

// LoggerWithCaller toggles caller annotation.
func LoggerWithCaller(on bool) LoggerOption {
	return func(cfg *loggerConfig) {
		cfg.callerOn = on
	}
}

// ZapAdapterWithCallerSkip adds to the number of caller frames skipped.
func ZapAdapterWithCallerSkip(skip int) LoggerOption {
	return func(cfg *loggerConfig) {
		cfg.callerDepth += skip
	}
}

// LoggerWithOutput replaces stdout as the base destination.
func LoggerWithOutput(w io.Writer) LoggerOption {
	return func(cfg *loggerConfig) {
		cfg.out = w
	}
}

// LoggerWithSampling keeps the first entries of each message per tick and
// then every thereafter-th one. Overrun and underrun warnings fire from the
// sample clock and would otherwise flood the sinks.
func LoggerWithSampling(tick time.Duration, first, thereafter int) LoggerOption {
	return func(cfg *loggerConfig) {
		if tick <= 0 {
			tick = time.Second
		}
		cfg.sampleTick = tick
		cfg.sampleFirst = first
		cfg.sampleThereafter = thereafter
	}
}
