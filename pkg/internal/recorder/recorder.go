// Package recorder captures engine events as parquet session files.
//
// Sensor callbacks enqueue rows without blocking; a drain goroutine writes
// them through a parquet writer and rolls a complete file to the sink when the
// window elapses or the row limit is reached.
package recorder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/ringbuffer"
	"github.com/joeydtaylor/strum/pkg/internal/sensor"
	"github.com/joeydtaylor/strum/pkg/internal/types"
	"github.com/joeydtaylor/strum/pkg/internal/utils"
	parquet "github.com/parquet-go/parquet-go"
)

const (
	DefaultQueueCapacity = 4096
	DefaultWindow        = 60 * time.Second
	DefaultMaxRecords    = 50_000
	DefaultDrainInterval = 50 * time.Millisecond
)

var ErrStarted = errors.New("recorder: already started")

// Sink receives complete parquet files.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, name string, data []byte) error

func (f SinkFunc) Put(ctx context.Context, name string, data []byte) error { return f(ctx, name, data) }

// Recorder buffers SessionRecords and writes them as parquet files.
type Recorder struct {
	componentMetadata types.ComponentMetadata

	sink          Sink
	capacity      int
	window        time.Duration
	maxRecords    int
	drainInterval time.Duration
	compression   string
	prefix        string
	now           func() time.Time

	queue  *ringbuffer.Ring[types.SessionRecord]
	pushMu sync.Mutex

	started atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}

	recorded atomic.Uint64
	dropped  atomic.Uint64
	files    atomic.Uint64

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// New builds a recorder writing to sink.
func New(sink Sink, options ...types.Option[*Recorder]) (*Recorder, error) {
	if sink == nil {
		return nil, fmt.Errorf("recorder: sink is required")
	}
	r := &Recorder{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "SESSION_RECORDER",
		},
		sink:          sink,
		capacity:      DefaultQueueCapacity,
		window:        DefaultWindow,
		maxRecords:    DefaultMaxRecords,
		drainInterval: DefaultDrainInterval,
		compression:   "snappy",
		prefix:        "session",
		now:           time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	q, err := ringbuffer.New[types.SessionRecord](r.capacity)
	if err != nil {
		return nil, fmt.Errorf("recorder: queue: %w", err)
	}
	r.queue = q
	return r, nil
}

// Record enqueues rec. It reports false when the queue is full.
func (r *Recorder) Record(rec types.SessionRecord) bool {
	if rec.Timestamp == 0 {
		rec.Timestamp = r.now().UnixNano()
	}
	r.pushMu.Lock()
	ok := r.queue.Push(rec)
	r.pushMu.Unlock()
	if !ok {
		r.dropped.Add(1)
	}
	return ok
}

// Attach registers callbacks on s that record engine events.
func (r *Recorder) Attach(s types.Sensor) {
	sensor.RecordTo(s, func(rec types.SessionRecord) { r.Record(rec) })
}

func (r *Recorder) compressionOption() parquet.WriterOption {
	switch strings.ToLower(r.compression) {
	case "zstd":
		return parquet.Compression(&parquet.Zstd)
	case "gzip", "gz":
		return parquet.Compression(&parquet.Gzip)
	case "none", "uncompressed":
		return parquet.Compression(&parquet.Uncompressed)
	default:
		return parquet.Compression(&parquet.Snappy)
	}
}

// Start launches the drain goroutine. Rows are flushed when ctx is done or
// Stop is called.
func (r *Recorder) Start(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return ErrStarted
	}
	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	go r.run(runCtx)
	return nil
}

// Stop flushes pending rows and waits for the drain goroutine.
func (r *Recorder) Stop() {
	if !r.started.CompareAndSwap(true, false) {
		return
	}
	r.cancel()
	<-r.done
}

func (r *Recorder) run(ctx context.Context) {
	defer close(r.done)

	var (
		buf   bytes.Buffer
		count int
	)
	comp := r.compressionOption()
	pw := parquet.NewGenericWriter[types.SessionRecord](&buf, comp)
	opened := r.now()

	flush := func(putCtx context.Context) {
		if count == 0 {
			opened = r.now()
			return
		}
		if err := pw.Close(); err != nil {
			r.NotifyLoggers(types.ErrorLevel, "Parquet close failed",
				"component", r.componentMetadata,
				"event", "Flush",
				"result", "FAILURE",
				"error", err,
			)
		} else {
			name := fmt.Sprintf("%s-%s-%d.parquet", r.prefix, utils.ShortID(r.componentMetadata.ID), opened.UnixNano())
			data := append([]byte(nil), buf.Bytes()...)
			if err := r.sink.Put(putCtx, name, data); err != nil {
				r.NotifyLoggers(types.ErrorLevel, "Session upload failed",
					"component", r.componentMetadata,
					"event", "Flush",
					"result", "FAILURE",
					"name", name,
					"error", err,
				)
			} else {
				r.files.Add(1)
				r.NotifyLoggers(types.InfoLevel, "Session flushed",
					"component", r.componentMetadata,
					"event", "Flush",
					"result", "SUCCESS",
					"name", name,
					"records", count,
					"bytes", len(data),
					"compression", r.compression,
				)
			}
		}
		buf.Reset()
		count = 0
		pw = parquet.NewGenericWriter[types.SessionRecord](&buf, comp)
		opened = r.now()
	}

	drain := func(putCtx context.Context) {
		batch := make([]types.SessionRecord, 0, 64)
		for {
			batch = batch[:0]
			limit := r.maxRecords - count
			if limit > cap(batch) {
				limit = cap(batch)
			}
			for len(batch) < limit {
				rec, ok := r.queue.Pop()
				if !ok {
					break
				}
				batch = append(batch, rec)
			}
			if len(batch) == 0 {
				return
			}
			if _, err := pw.Write(batch); err != nil {
				r.NotifyLoggers(types.ErrorLevel, "Parquet write failed",
					"component", r.componentMetadata,
					"event", "Drain",
					"result", "FAILURE",
					"error", err,
				)
				continue
			}
			count += len(batch)
			r.recorded.Add(uint64(len(batch)))
			if count >= r.maxRecords {
				flush(putCtx)
			}
		}
	}

	tick := time.NewTicker(r.drainInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			// Final flush outlives the run context.
			final := context.WithoutCancel(ctx)
			drain(final)
			flush(final)
			return
		case <-tick.C:
			drain(ctx)
			if r.now().Sub(opened) >= r.window {
				flush(ctx)
			}
		}
	}
}

// Recorded is the number of rows written to parquet.
func (r *Recorder) Recorded() uint64 { return r.recorded.Load() }

// Dropped is the number of rows lost to a full queue.
func (r *Recorder) Dropped() uint64 { return r.dropped.Load() }

// Files is the number of files delivered to the sink.
func (r *Recorder) Files() uint64 { return r.files.Load() }

// GetComponentMetadata returns the recorder metadata.
func (r *Recorder) GetComponentMetadata() types.ComponentMetadata { return r.componentMetadata }

// ConnectLogger attaches loggers.
func (r *Recorder) ConnectLogger(loggers ...types.Logger) {
	r.loggersLock.Lock()
	defer r.loggersLock.Unlock()
	r.loggers = append(r.loggers, loggers...)
}

// NotifyLoggers sends a structured log message to all attached loggers.
func (r *Recorder) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	r.loggersLock.Lock()
	loggers := append([]types.Logger(nil), r.loggers...)
	r.loggersLock.Unlock()

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
