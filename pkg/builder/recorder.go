package builder

import (
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/recorder"
	"github.com/joeydtaylor/strum/pkg/internal/types"
)

type SessionRecorder = recorder.Recorder

type SessionSink = recorder.Sink

type SessionSinkFunc = recorder.SinkFunc

type DirSink = recorder.DirSink

// NewSessionRecorder buffers engine events and rolls them into parquet files on sink.
func NewSessionRecorder(sink SessionSink, options ...types.Option[*SessionRecorder]) (*SessionRecorder, error) {
	return recorder.New(sink, options...)
}

func RecorderWithQueueCapacity(n int) types.Option[*SessionRecorder] {
	return recorder.WithQueueCapacity(n)
}

// RecorderWithRoll sets the file window and row limit.
func RecorderWithRoll(window time.Duration, maxRecords int) types.Option[*SessionRecorder] {
	return recorder.WithRoll(window, maxRecords)
}

func RecorderWithDrainInterval(d time.Duration) types.Option[*SessionRecorder] {
	return recorder.WithDrainInterval(d)
}

// RecorderWithCompression selects snappy, zstd, gzip or none.
func RecorderWithCompression(name string) types.Option[*SessionRecorder] {
	return recorder.WithCompression(name)
}

func RecorderWithFilePrefix(prefix string) types.Option[*SessionRecorder] {
	return recorder.WithFilePrefix(prefix)
}

func RecorderWithLogger(l ...types.Logger) types.Option[*SessionRecorder] {
	return recorder.WithLogger(l...)
}

func RecorderWithComponentMetadata(name string, id string) types.Option[*SessionRecorder] {
	return recorder.WithComponentMetadata(name, id)
}

// ReadSessionFile decodes a parquet session file.
func ReadSessionFile(data []byte) ([]SessionRecord, error) { return recorder.ReadFile(data) }
