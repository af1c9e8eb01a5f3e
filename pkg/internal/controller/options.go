package controller

import (
	"context"
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/types"
)

// WithChunkBytes sets how many payload bytes each feeder tick reads.
func WithChunkBytes(n int) types.Option[*Controller] {
	return func(c *Controller) { c.chunkBytes = n }
}

// WithRingCapacity sets the frame ring capacity (a power of two).
func WithRingCapacity(n int) types.Option[*Controller] {
	return func(c *Controller) { c.capacity = n }
}

// WithFeederPeriod sets the feeder clock period.
func WithFeederPeriod(d time.Duration) types.Option[*Controller] {
	return func(c *Controller) {
		if d > 0 {
			c.feederPeriod = d
		}
	}
}

// WithBackpressure limits each read to the free ring space so the feeder
// never overruns.
func WithBackpressure(on bool) types.Option[*Controller] {
	return func(c *Controller) { c.backpressure = on }
}

// WithContext sets the context passed to storage reads.
func WithContext(ctx context.Context) types.Option[*Controller] {
	return func(c *Controller) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// WithSensor attaches sensors.
func WithSensor(s ...types.Sensor) types.Option[*Controller] {
	return func(c *Controller) {
		for _, sn := range s {
			if sn != nil {
				c.sensors = append(c.sensors, sn)
			}
		}
	}
}

// WithLogger attaches loggers.
func WithLogger(l ...types.Logger) types.Option[*Controller] {
	return func(c *Controller) { c.ConnectLogger(l...) }
}

// WithComponentMetadata sets the controller name and id.
func WithComponentMetadata(name string, id string) types.Option[*Controller] {
	return func(c *Controller) {
		c.componentMetadata.Name = name
		if id != "" {
			c.componentMetadata.ID = id
		}
	}
}
