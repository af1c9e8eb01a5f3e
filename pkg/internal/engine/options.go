package engine

import (
	"context"

	"github.com/joeydtaylor/strum/pkg/internal/fret"
	"github.com/joeydtaylor/strum/pkg/internal/types"
)

func (e *Engine) requireNotStarted(op string) {
	if e.started.Load() {
		panic("engine: " + op + " called after Start")
	}
}

// WithService registers services started with the engine.
func WithService(svc ...Service) types.Option[*Engine] {
	return func(e *Engine) {
		e.requireNotStarted("WithService")
		for _, s := range svc {
			if s != nil {
				e.services = append(e.services, s)
			}
		}
	}
}

type pollerService struct{ p *fret.Poller }

func (s pollerService) Start(ctx context.Context) error {
	s.p.Start(ctx)
	return nil
}

func (s pollerService) Stop() { s.p.Stop() }

// WithFretPoller runs p for the engine's lifetime.
func WithFretPoller(p *fret.Poller) types.Option[*Engine] {
	return func(e *Engine) {
		if p != nil {
			e.requireNotStarted("WithFretPoller")
			e.services = append(e.services, pollerService{p: p})
		}
	}
}

// WithCloser registers resources closed after the engine stops.
func WithCloser(c ...Closer) types.Option[*Engine] {
	return func(e *Engine) {
		for _, x := range c {
			if x != nil {
				e.closers = append(e.closers, x)
			}
		}
	}
}

func WithSensor(s ...types.Sensor) types.Option[*Engine] {
	return func(e *Engine) {
		for _, x := range s {
			if x != nil {
				e.sensors = append(e.sensors, x)
			}
		}
	}
}

func WithLogger(l ...types.Logger) types.Option[*Engine] {
	return func(e *Engine) { e.ConnectLogger(l...) }
}

func WithComponentMetadata(name string, id string) types.Option[*Engine] {
	return func(e *Engine) {
		e.componentMetadata.Name = name
		if id != "" {
			e.componentMetadata.ID = id
		}
	}
}
