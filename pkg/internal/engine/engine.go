// Package engine wires a sample source, onset detector and playback
// controller into one unit with a Start/Stop lifecycle.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/joeydtaylor/strum/pkg/internal/controller"
	"github.com/joeydtaylor/strum/pkg/internal/onset"
	"github.com/joeydtaylor/strum/pkg/internal/types"
	"github.com/joeydtaylor/strum/pkg/internal/utils"
)

var (
	ErrStarted = errors.New("engine: already started")
	ErrStopped = errors.New("engine: stopped engines cannot be restarted")
)

// Service is an auxiliary component started before sampling and stopped
// after playback halts, such as a session recorder or event publisher.
type Service interface {
	Start(ctx context.Context) error
	Stop()
}

// Closer releases a resource, typically a ticker clock, once the engine stops.
type Closer interface {
	Close()
}

// Engine routes every sample through the detector and accepted strums into
// the controller.
type Engine struct {
	componentMetadata types.ComponentMetadata

	source     types.SampleSource
	detector   *onset.Detector
	controller *controller.Controller

	services []Service
	closers  []Closer
	sensors  []types.Sensor

	// detectMu serialises OnSample; the detector is not safe for concurrent use.
	detectMu sync.Mutex

	started atomic.Bool
	stopped atomic.Bool
	stopMu  sync.Mutex
	cancel  context.CancelFunc
	active  []Service

	samples atomic.Uint64
	strums  atomic.Uint64

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// New wires src to det and det to ctrl.
func New(src types.SampleSource, det *onset.Detector, ctrl *controller.Controller, options ...types.Option[*Engine]) (*Engine, error) {
	if src == nil || det == nil || ctrl == nil {
		return nil, fmt.Errorf("engine: source, detector and controller are required")
	}
	e := &Engine{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "ENGINE",
		},
		source:     src,
		detector:   det,
		controller: ctrl,
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	src.OnSample(e.onSample)
	return e, nil
}

func (e *Engine) onSample(raw types.RawSample) {
	e.samples.Add(1)
	e.detectMu.Lock()
	ev, ok := e.detector.OnSample(raw)
	e.detectMu.Unlock()
	if !ok {
		return
	}
	e.strums.Add(1)
	e.controller.OnStrum(ev)
}

// Start launches services, then sampling. The engine stops itself when ctx
// is cancelled.
func (e *Engine) Start(ctx context.Context) error {
	if e.stopped.Load() {
		return ErrStopped
	}
	if !e.started.CompareAndSwap(false, true) {
		return ErrStarted
	}
	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, cancel := context.WithCancel(ctx)

	e.stopMu.Lock()
	e.cancel = cancel
	for _, svc := range e.services {
		if err := svc.Start(runCtx); err != nil {
			e.stopMu.Unlock()
			e.NotifyLoggers(types.ErrorLevel, "Service failed to start",
				"component", e.componentMetadata,
				"event", "Start",
				"result", "FAILURE",
				"error", err,
			)
			e.Stop()
			return fmt.Errorf("engine: start service: %w", err)
		}
		e.active = append(e.active, svc)
	}
	e.stopMu.Unlock()

	if err := e.source.Start(runCtx); err != nil {
		e.NotifyLoggers(types.ErrorLevel, "Sample source failed to start",
			"component", e.componentMetadata,
			"event", "Start",
			"result", "FAILURE",
			"error", err,
		)
		e.Stop()
		return fmt.Errorf("engine: start source: %w", err)
	}

	go func() {
		<-runCtx.Done()
		e.Stop()
	}()

	for _, s := range e.sensors {
		s.InvokeOnStart(e.componentMetadata)
	}
	e.NotifyLoggers(types.InfoLevel, "Engine started",
		"component", e.componentMetadata,
		"event", "Start",
		"result", "SUCCESS",
		"services", len(e.active),
	)
	return nil
}

// Stop halts sampling and playback, stops services in reverse order and
// closes registered clocks. It is safe to call more than once but must not
// be called from a clock handler.
func (e *Engine) Stop() {
	if !e.started.Load() || !e.stopped.CompareAndSwap(false, true) {
		return
	}
	e.source.Stop()
	e.controller.Halt()

	e.stopMu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	active := e.active
	e.active = nil
	e.stopMu.Unlock()

	for i := len(active) - 1; i >= 0; i-- {
		active[i].Stop()
	}
	for _, c := range e.closers {
		c.Close()
	}
	for _, s := range e.sensors {
		s.InvokeOnStop(e.componentMetadata)
	}
	e.NotifyLoggers(types.InfoLevel, "Engine stopped",
		"component", e.componentMetadata,
		"event", "Stop",
		"result", "SUCCESS",
		"samples", e.samples.Load(),
		"strums", e.strums.Load(),
	)
}

// IsRunning reports whether the engine has started and not yet stopped.
func (e *Engine) IsRunning() bool { return e.started.Load() && !e.stopped.Load() }

// Samples is the number of sensor samples processed.
func (e *Engine) Samples() uint64 { return e.samples.Load() }

// Strums is the number of accepted strums.
func (e *Engine) Strums() uint64 { return e.strums.Load() }

// Snapshot returns the controller state.
func (e *Engine) Snapshot() controller.State { return e.controller.Snapshot() }

// Controller exposes the wired playback controller.
func (e *Engine) Controller() *controller.Controller { return e.controller }

// Detector exposes the wired onset detector.
func (e *Engine) Detector() *onset.Detector { return e.detector }
