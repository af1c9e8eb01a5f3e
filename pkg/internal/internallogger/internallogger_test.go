package internallogger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/internallogger"
	"github.com/joeydtaylor/strum/pkg/internal/types"
	"github.com/joeydtaylor/strum/pkg/logschema"
)

func TestNewLogger_DefaultLevel(t *testing.T) {
	logger := internallogger.NewLogger()
	if got := logger.GetLevel(); got != types.InfoLevel {
		t.Fatalf("expected InfoLevel, got %v", got)
	}
}

func TestNewLogger_WithLevel(t *testing.T) {
	logger := internallogger.NewLogger(internallogger.LoggerWithLevel("debug"))
	if got := logger.GetLevel(); got != types.DebugLevel {
		t.Fatalf("expected DebugLevel, got %v", got)
	}

	logger = internallogger.NewLogger(internallogger.LoggerWithLevel("unknown"))
	if got := logger.GetLevel(); got != types.InfoLevel {
		t.Fatalf("expected InfoLevel on unknown level, got %v", got)
	}
}

func TestLogger_SetLevel(t *testing.T) {
	logger := internallogger.NewLogger()
	logger.SetLevel(types.ErrorLevel)
	if got := logger.GetLevel(); got != types.ErrorLevel {
		t.Fatalf("expected ErrorLevel, got %v", got)
	}
}

func TestLogger_AddRemoveListSinks(t *testing.T) {
	logger := internallogger.NewLogger(internallogger.LoggerWithLevel("debug"))

	path := filepath.Join(t.TempDir(), "nested", "engine.log")
	if err := logger.AddSink("file", types.SinkConfig{Type: "file", Config: map[string]interface{}{"path": path}}); err != nil {
		t.Fatalf("AddSink(file) error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
	if err := logger.AddSink("stdout", types.SinkConfig{Type: "stdout"}); err != nil {
		t.Fatalf("AddSink(stdout) error: %v", err)
	}
	if err := logger.AddSink("stdout", types.SinkConfig{Type: "stdout"}); err == nil {
		t.Fatalf("expected duplicate sink error")
	}

	sinks, err := logger.ListSinks()
	if err != nil {
		t.Fatalf("ListSinks error: %v", err)
	}
	if len(sinks) != 2 {
		t.Fatalf("expected 2 sinks, got %d", len(sinks))
	}

	if err := logger.RemoveSink("stdout"); err != nil {
		t.Fatalf("RemoveSink error: %v", err)
	}
	if err := logger.RemoveSink("missing"); err == nil {
		t.Fatalf("expected error removing missing sink")
	}
}

func TestLogger_AddSinkInvalidConfig(t *testing.T) {
	logger := internallogger.NewLogger()

	if err := logger.AddSink("file", types.SinkConfig{Type: "file", Config: map[string]interface{}{}}); err == nil {
		t.Fatalf("expected error for missing file path")
	}
	if err := logger.AddSink("network", types.SinkConfig{Type: "network"}); err == nil {
		t.Fatalf("expected error for unsupported sink type")
	}
}

func TestLogger_FileSinkWritesStructuredFields(t *testing.T) {
	logger := internallogger.NewLogger(internallogger.LoggerWithLevel("debug"))
	path := filepath.Join(t.TempDir(), "engine.log")
	if err := logger.AddSink("file", types.SinkConfig{Type: "file", Config: map[string]interface{}{"path": path}}); err != nil {
		t.Fatalf("AddSink error: %v", err)
	}

	meta := types.ComponentMetadata{ID: "c1", Type: "CONTROLLER", Name: "ctl"}
	logger.Warn("Storage read failed",
		"component", meta,
		"event", "FeederTick",
		"error", errors.New("boom"),
		"phase", types.PhasePlaying,
	)
	_ = logger.Flush()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := strings.TrimSpace(string(data))
	var rec logschema.LogRecord
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		t.Fatalf("unmarshal %q: %v", line, err)
	}
	if rec[logschema.FieldSchema] != logschema.SchemaID {
		t.Fatalf("schema = %v", rec[logschema.FieldSchema])
	}
	if rec["phase"] != "PLAYING" {
		t.Fatalf("phase = %v", rec["phase"])
	}
	comp, ok := rec["component"].(map[string]interface{})
	if !ok || comp["type"] != "CONTROLLER" {
		t.Fatalf("component = %v", rec["component"])
	}
	if rec["error"] != "boom" {
		t.Fatalf("error = %v", rec["error"])
	}
}

func TestLogger_LevelFiltersFileSink(t *testing.T) {
	logger := internallogger.NewLogger(internallogger.LoggerWithLevel("error"))
	path := filepath.Join(t.TempDir(), "engine.log")
	if err := logger.AddSink("file", types.SinkConfig{Type: "file", Config: map[string]interface{}{"path": path}}); err != nil {
		t.Fatalf("AddSink error: %v", err)
	}
	logger.Info("dropped")
	_ = logger.Flush()

	data, _ := os.ReadFile(path)
	if len(data) != 0 {
		t.Fatalf("expected no output below level, got %q", data)
	}
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]interface{}{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestLogger_OutputEncodesDomainValues(t *testing.T) {
	var buf bytes.Buffer
	logger := internallogger.NewLogger(
		internallogger.LoggerWithOutput(&buf),
		internallogger.LoggerWithCaller(false),
	)
	tone := types.Tone{ID: 3, Ref: "S1_3.wav", SampleRate: 8000, Channels: 1, PayloadSize: 512}
	logger.Info("tone armed",
		logschema.FieldComponent, types.ComponentMetadata{ID: "c1", Type: "CONTROLLER"},
		"tone", tone,
		logschema.FieldPhase, types.PhaseArming,
		logschema.FieldError, errors.New("boom"),
		"dangling",
	)

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	line := lines[0]
	if line["tone"] != tone.String() {
		t.Fatalf("tone = %v", line["tone"])
	}
	if line[logschema.FieldPhase] != "ARMING" {
		t.Fatalf("phase = %v", line[logschema.FieldPhase])
	}
	if line[logschema.FieldError] != "boom" {
		t.Fatalf("error = %v", line[logschema.FieldError])
	}
	comp, ok := line[logschema.FieldComponent].(map[string]interface{})
	if !ok || comp["type"] != "CONTROLLER" {
		t.Fatalf("component = %v", line[logschema.FieldComponent])
	}
	if _, ok := line["dangling"]; ok {
		t.Fatalf("odd trailing key should be ignored")
	}
	if line[logschema.FieldSchema] != logschema.SchemaID {
		t.Fatalf("schema = %v", line[logschema.FieldSchema])
	}
}

func TestLogger_SamplingDropsRepeats(t *testing.T) {
	var buf bytes.Buffer
	logger := internallogger.NewLogger(
		internallogger.LoggerWithOutput(&buf),
		internallogger.LoggerWithSampling(time.Minute, 2, 0),
	)
	for i := 0; i < 10; i++ {
		logger.Warn("underrun", "count", i)
	}
	logger.Warn("overrun")

	lines := decodeLines(t, &buf)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if got := logger.SampledOut(); got != 8 {
		t.Fatalf("SampledOut = %d, want 8", got)
	}
}
