package logschema

// Log schema constants for strum engine structured logs.
const (
	SchemaID    = "strum.log.v1"
	FieldSchema = "log_schema"

	FieldTimestamp = "ts"
	FieldLevel     = "level"
	FieldMessage   = "msg"
	FieldLogger    = "logger"
	FieldCaller    = "caller"
	FieldStack     = "stack"

	FieldComponent = "component"
	FieldEvent     = "event"
	FieldResult    = "result"
	FieldError     = "error"

	FieldToneID    = "tone_id"
	FieldPhase     = "phase"
	FieldMagnitude = "magnitude"
)

// Result values.
const (
	ResultSuccess = "SUCCESS"
	ResultFailure = "FAILURE"
	ResultSkipped = "SKIPPED"
)

// LogRecord is a generic map representation of a log entry.
type LogRecord map[string]interface{}
