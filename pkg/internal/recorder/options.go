package recorder

import (
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/types"
)

// WithQueueCapacity sets the pending row capacity (a power of two).
func WithQueueCapacity(n int) types.Option[*Recorder] {
	return func(r *Recorder) { r.capacity = n }
}

// WithRoll sets the file window and the row limit per file.
func WithRoll(window time.Duration, maxRecords int) types.Option[*Recorder] {
	return func(r *Recorder) {
		if window > 0 {
			r.window = window
		}
		if maxRecords > 0 {
			r.maxRecords = maxRecords
		}
	}
}

// WithDrainInterval sets how often queued rows are written.
func WithDrainInterval(d time.Duration) types.Option[*Recorder] {
	return func(r *Recorder) {
		if d > 0 {
			r.drainInterval = d
		}
	}
}

// WithCompression selects snappy (default), zstd, gzip or none.
func WithCompression(name string) types.Option[*Recorder] {
	return func(r *Recorder) { r.compression = name }
}

// WithFilePrefix sets the file name prefix.
func WithFilePrefix(prefix string) types.Option[*Recorder] {
	return func(r *Recorder) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) types.Option[*Recorder] {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLogger attaches loggers.
func WithLogger(l ...types.Logger) types.Option[*Recorder] {
	return func(r *Recorder) { r.ConnectLogger(l...) }
}

// WithComponentMetadata sets the recorder name and id.
func WithComponentMetadata(name string, id string) types.Option[*Recorder] {
	return func(r *Recorder) {
		r.componentMetadata.Name = name
		if id != "" {
			r.componentMetadata.ID = id
		}
	}
}
