package clock

import (
	"sync"
	"time"
)

// Manual is a clock driven by explicit Tick calls. It lets tests step the
// feeder and player deterministically.
type Manual struct {
	mu      sync.Mutex
	fn      func()
	period  time.Duration
	running bool
	starts  int
	ticks   int
	carry   time.Duration
}

// NewManual returns a stopped manual clock.
func NewManual() *Manual { return &Manual{} }

func (c *Manual) Attach(fn func()) {
	c.mu.Lock()
	c.fn = fn
	c.mu.Unlock()
}

func (c *Manual) Start(period time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if period > 0 {
		c.period = period
	}
	if !c.running {
		c.running = true
		c.starts++
		c.carry = 0
	}
}

func (c *Manual) Stop() {
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
}

func (c *Manual) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *Manual) SetPeriod(period time.Duration) {
	c.mu.Lock()
	if period > 0 {
		c.period = period
	}
	c.mu.Unlock()
}

// Period returns the configured period.
func (c *Manual) Period() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.period
}

// Starts counts stopped-to-running transitions.
func (c *Manual) Starts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.starts
}

// Ticks counts delivered ticks.
func (c *Manual) Ticks() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}

// Tick fires up to n ticks, stopping early if the clock is stopped (including
// by the handler itself). It returns the number delivered.
func (c *Manual) Tick(n int) int {
	delivered := 0
	for i := 0; i < n; i++ {
		c.mu.Lock()
		if !c.running {
			c.mu.Unlock()
			break
		}
		fn := c.fn
		c.ticks++
		c.mu.Unlock()
		if fn != nil {
			fn()
		}
		delivered++
	}
	return delivered
}

// Advance fires one tick per whole period elapsed in d, carrying the remainder.
func (c *Manual) Advance(d time.Duration) int {
	c.mu.Lock()
	period := c.period
	if !c.running || period <= 0 {
		c.mu.Unlock()
		return 0
	}
	total := c.carry + d
	n := int(total / period)
	c.carry = total % period
	c.mu.Unlock()
	return c.Tick(n)
}
