// Package fret provides fret scanner collaborators.
package fret

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Static always reports the same fret.
type Static int

// Scan returns the fixed fret.
func (s Static) Scan() int { return int(s) }

// Func adapts a function to a scanner.
type Func func() int

// Scan calls f.
func (f Func) Scan() int { return f() }

// Settable is a scanner whose fret is set by another goroutine (a UI, a test,
// a MIDI input).
type Settable struct {
	v atomic.Int64
}

// Set changes the reported fret.
func (s *Settable) Set(fret int) { s.v.Store(int64(fret)) }

// Scan returns the last value set.
func (s *Settable) Scan() int { return int(s.v.Load()) }

// Poller samples a slower scanner on its own loop and serves the cached
// result, so Scan never touches the underlying hardware.
type Poller struct {
	src      func() int
	interval time.Duration

	cached atomic.Int64
	polls  atomic.Uint64

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller polls src every interval once started.
func NewPoller(src func() int, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 5 * time.Millisecond
	}
	return &Poller{src: src, interval: interval}
}

// Start takes an initial reading and begins polling until Stop or ctx ends.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	p.poll()

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx, p.done)
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll()
		}
	}
}

func (p *Poller) poll() {
	p.cached.Store(int64(p.src()))
	p.polls.Add(1)
}

// Stop ends polling and waits for the loop to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Scan returns the most recent polled fret.
func (p *Poller) Scan() int { return int(p.cached.Load()) }

// Polls reports how many readings have been taken.
func (p *Poller) Polls() uint64 { return p.polls.Load() }
