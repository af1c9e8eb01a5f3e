package builder

import (
	"io"
	"time"

	internalLogger "github.com/joeydtaylor/strum/pkg/internal/internallogger"
	"github.com/joeydtaylor/strum/pkg/internal/types"
	"github.com/joeydtaylor/strum/pkg/logschema"
)

type LoggerOption = internalLogger.LoggerOption

type SinkConfig = types.SinkConfig

type SinkType = types.SinkType

const (
	FileSink   SinkType = types.FileSink
	StdoutSink SinkType = types.StdoutSink
)

func NewLogger(options ...internalLogger.LoggerOption) types.Logger {
	return internalLogger.NewLogger(options...)
}

// WithLevel configures the logger to use the specified log level
func LoggerWithLevel(levelStr string) LoggerOption {
	return internalLogger.LoggerWithLevel(levelStr)
}

// WithDevelopment enables or disables development mode
func LoggerWithDevelopment(dev bool) LoggerOption {
	return internalLogger.LoggerWithDevelopment(dev)
}

// LoggerWithFields attaches fields to every log line.
func LoggerWithFields(fields map[string]interface{}) LoggerOption {
	return internalLogger.LoggerWithFields(fields)
}

// LoggerWithCaller toggles caller annotation.
func LoggerWithCaller(on bool) LoggerOption {
	return internalLogger.LoggerWithCaller(on)
}

// LoggerWithSchema overrides the log schema identifier field.
func LoggerWithSchema(schema string) LoggerOption {
	return internalLogger.LoggerWithSchema(schema)
}

// LoggerWithOutput replaces stdout as the base destination.
func LoggerWithOutput(w io.Writer) LoggerOption {
	return internalLogger.LoggerWithOutput(w)
}

// LoggerWithSampling throttles repeated messages per tick.
func LoggerWithSampling(tick time.Duration, first, thereafter int) LoggerOption {
	return internalLogger.LoggerWithSampling(tick, first, thereafter)
}

// Log schema constants for the standard strum log format.
const (
	LogSchemaID    = logschema.SchemaID
	LogSchemaField = logschema.FieldSchema
)

// LogLevel is exported from the internal types package.
type LogLevel = types.LogLevel

// Export log levels to be accessible under the builder package
const (
	DebugLevel  = types.DebugLevel
	InfoLevel   = types.InfoLevel
	WarnLevel   = types.WarnLevel
	ErrorLevel  = types.ErrorLevel
	DPanicLevel = types.DPanicLevel
	PanicLevel  = types.PanicLevel
	FatalLevel  = types.FatalLevel
)
