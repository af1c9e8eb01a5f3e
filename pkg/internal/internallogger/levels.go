package internallogger

import (
	"strings"

	"github.com/joeydtaylor/strum/pkg/internal/types"
	"go.uber.org/zap/zapcore"
)

var levelTable = []struct {
	name  string
	level types.LogLevel
	zap   zapcore.Level
}{
	{"debug", types.DebugLevel, zapcore.DebugLevel},
	{"info", types.InfoLevel, zapcore.InfoLevel},
	{"warn", types.WarnLevel, zapcore.WarnLevel},
	{"error", types.ErrorLevel, zapcore.ErrorLevel},
	{"dpanic", types.DPanicLevel, zapcore.DPanicLevel},
	{"panic", types.PanicLevel, zapcore.PanicLevel},
	{"fatal", types.FatalLevel, zapcore.FatalLevel},
}

// parseLogLevel maps a level name to a types.LogLevel. Unknown names are info.
func parseLogLevel(levelStr string) types.LogLevel {
	name := strings.ToLower(strings.TrimSpace(levelStr))
	if name == "warning" {
		name = "warn"
	}
	for _, row := range levelTable {
		if row.name == name {
			return row.level
		}
	}
	return types.InfoLevel
}

// ConvertLevel converts a types.LogLevel to a zap level.
func ConvertLevel(level types.LogLevel) zapcore.Level {
	for _, row := range levelTable {
		if row.level == level {
			return row.zap
		}
	}
	return zapcore.InfoLevel
}

func convertZapLevel(level zapcore.Level) types.LogLevel {
	for _, row := range levelTable {
		if row.zap == level {
			return row.level
		}
	}
	return types.InfoLevel
}
