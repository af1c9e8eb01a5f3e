// Package clock provides the periodic timer facility driving the feeder,
// player and sensor callbacks.
package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	DefaultResolution = time.Millisecond
	DefaultMaxCatchUp = 8192
)

// Ticker fires its handler once per period. Periods shorter than the wake
// resolution are served by catching up: each wake fires every period that has
// elapsed since the previous one, up to MaxCatchUp.
//
// Stop may be called from inside the handler.
type Ticker struct {
	mu         sync.Mutex
	fn         func()
	period     time.Duration
	resolution time.Duration
	maxCatchUp int

	running atomic.Bool
	gen     atomic.Uint64
	stop    chan struct{}
	done    chan struct{}

	ticks   atomic.Uint64
	dropped atomic.Uint64
}

// NewTicker returns a stopped clock.
func NewTicker(options ...Option) *Ticker {
	c := &Ticker{resolution: DefaultResolution, maxCatchUp: DefaultMaxCatchUp}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Option configures a Ticker.
type Option func(*Ticker)

// WithResolution sets how often the clock goroutine wakes.
func WithResolution(d time.Duration) Option {
	return func(c *Ticker) {
		if d > 0 {
			c.resolution = d
		}
	}
}

// WithMaxCatchUp bounds how many periods a single wake may fire.
func WithMaxCatchUp(n int) Option {
	return func(c *Ticker) {
		if n > 0 {
			c.maxCatchUp = n
		}
	}
}

// Attach sets the tick handler.
func (c *Ticker) Attach(fn func()) {
	c.mu.Lock()
	c.fn = fn
	c.mu.Unlock()
}

// Start begins ticking at period. Starting a running clock only changes its period.
func (c *Ticker) Start(period time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if period > 0 {
		c.period = period
	}
	if c.period <= 0 || c.running.Load() {
		return
	}

	gen := c.gen.Add(1)
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	c.running.Store(true)
	go c.run(gen, c.stop, c.done)
}

// Stop halts the clock without waiting for the goroutine to exit.
func (c *Ticker) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running.CompareAndSwap(true, false) {
		return
	}
	c.gen.Add(1)
	close(c.stop)
}

// Close stops the clock and waits for its goroutine. It must not be called
// from the handler.
func (c *Ticker) Close() {
	c.Stop()
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

// IsRunning reports whether the clock is started.
func (c *Ticker) IsRunning() bool { return c.running.Load() }

// SetPeriod changes the period, effective from the next tick.
func (c *Ticker) SetPeriod(period time.Duration) {
	if period <= 0 {
		return
	}
	c.mu.Lock()
	c.period = period
	c.mu.Unlock()
}

// Period returns the configured period.
func (c *Ticker) Period() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.period
}

// Ticks is the number of handler invocations since construction.
func (c *Ticker) Ticks() uint64 { return c.ticks.Load() }

// Dropped is the number of periods skipped because a wake hit MaxCatchUp.
func (c *Ticker) Dropped() uint64 { return c.dropped.Load() }

func (c *Ticker) run(gen uint64, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	c.mu.Lock()
	wake := c.resolution
	if c.period < wake {
		wake = c.period
	}
	next := time.Now().Add(c.period)
	c.mu.Unlock()

	t := time.NewTicker(wake)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-t.C:
			c.mu.Lock()
			fn, period := c.fn, c.period
			c.mu.Unlock()

			fired := 0
			for !now.Before(next) {
				if c.gen.Load() != gen {
					return
				}
				if fired == c.maxCatchUp {
					behind := uint64(now.Sub(next)/period) + 1
					c.dropped.Add(behind)
					next = now.Add(period)
					break
				}
				if fn != nil {
					fn()
				}
				c.ticks.Add(1)
				next = next.Add(period)
				fired++
			}
		}
	}
}
