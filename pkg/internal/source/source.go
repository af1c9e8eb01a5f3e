// Package source provides sensor sample sources that deliver one RawSample
// per clock tick to registered callbacks.
package source

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/types"
	"github.com/joeydtaylor/strum/pkg/internal/utils"
)

// DefaultPeriod is the sensor sampling period used when none is configured.
const DefaultPeriod = 100 * time.Microsecond

// Reader produces the next conversion.
type Reader func() types.RawSample

// Periodic samples a Reader once per clock tick.
type Periodic struct {
	componentMetadata types.ComponentMetadata

	clock  types.Clock
	period time.Duration
	read   Reader

	callbacks     []func(types.RawSample)
	callbacksLock sync.Mutex

	started atomic.Bool
	samples atomic.Uint64
	cancel  context.CancelFunc

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// NewPeriodic builds a source around read driven by clk.
func NewPeriodic(clk types.Clock, read Reader, options ...types.Option[*Periodic]) *Periodic {
	p := &Periodic{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "SAMPLE_SOURCE",
		},
		clock:  clk,
		period: DefaultPeriod,
		read:   read,
	}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// WithPeriod sets the sampling period.
func WithPeriod(d time.Duration) types.Option[*Periodic] {
	return func(p *Periodic) {
		if d > 0 {
			p.period = d
		}
	}
}

// WithLogger attaches loggers.
func WithLogger(l ...types.Logger) types.Option[*Periodic] {
	return func(p *Periodic) { p.ConnectLogger(l...) }
}

// WithComponentMetadata sets the source name and id.
func WithComponentMetadata(name string, id string) types.Option[*Periodic] {
	return func(p *Periodic) {
		p.requireNotStarted("WithComponentMetadata")
		p.componentMetadata.Name = name
		if id != "" {
			p.componentMetadata.ID = id
		}
	}
}

// OnSample registers sample callbacks.
func (p *Periodic) OnSample(fn ...func(types.RawSample)) {
	p.requireNotStarted("OnSample")
	p.callbacksLock.Lock()
	defer p.callbacksLock.Unlock()
	for _, f := range fn {
		if f != nil {
			p.callbacks = append(p.callbacks, f)
		}
	}
}

// Start attaches to the clock and begins sampling. The source stops when ctx
// is cancelled.
func (p *Periodic) Start(ctx context.Context) error {
	if p.clock == nil || p.read == nil {
		return fmt.Errorf("source: clock and reader are required")
	}
	if !p.started.CompareAndSwap(false, true) {
		return fmt.Errorf("source: already started")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	p.callbacksLock.Lock()
	callbacks := make([]func(types.RawSample), len(p.callbacks))
	copy(callbacks, p.callbacks)
	p.callbacksLock.Unlock()

	p.clock.Attach(func() {
		raw := p.read()
		p.samples.Add(1)
		for _, cb := range callbacks {
			cb(raw)
		}
	})

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	go func() {
		<-runCtx.Done()
		if ctx.Err() != nil {
			p.Stop()
		}
	}()

	p.clock.Start(p.period)
	p.NotifyLoggers(types.InfoLevel, "Sample source started",
		"component", p.componentMetadata,
		"event", "Start",
		"result", "SUCCESS",
		"period", p.period.String(),
	)
	return nil
}

// Stop halts sampling. It is safe to call more than once.
func (p *Periodic) Stop() {
	if !p.started.CompareAndSwap(true, false) {
		return
	}
	p.clock.Stop()
	if p.cancel != nil {
		p.cancel()
	}
	p.NotifyLoggers(types.InfoLevel, "Sample source stopped",
		"component", p.componentMetadata,
		"event", "Stop",
		"result", "SUCCESS",
		"samples", p.samples.Load(),
	)
}

// IsStarted reports whether the source is sampling.
func (p *Periodic) IsStarted() bool { return p.started.Load() }

// Samples is the number of conversions delivered.
func (p *Periodic) Samples() uint64 { return p.samples.Load() }

// GetComponentMetadata returns the source metadata.
func (p *Periodic) GetComponentMetadata() types.ComponentMetadata { return p.componentMetadata }

func (p *Periodic) requireNotStarted(op string) {
	if p.started.Load() {
		panic(fmt.Sprintf("source: %s called after Start", op))
	}
}

// ConnectLogger attaches loggers.
func (p *Periodic) ConnectLogger(loggers ...types.Logger) {
	p.loggersLock.Lock()
	defer p.loggersLock.Unlock()
	p.loggers = append(p.loggers, loggers...)
}

// NotifyLoggers sends a structured log message to all attached loggers.
func (p *Periodic) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	p.loggersLock.Lock()
	loggers := append([]types.Logger(nil), p.loggers...)
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
