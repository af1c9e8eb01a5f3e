package catalog

import "github.com/joeydtaylor/strum/pkg/internal/types"

// WithPattern sets the printf pattern mapping a fret to a storage ref and the
// highest fret probed.
func WithPattern(pattern string, maxFret int) types.Option[*Catalog] {
	return func(c *Catalog) {
		if pattern != "" {
			c.pattern = pattern
		}
		if maxFret >= 0 {
			c.maxFret = maxFret
		}
	}
}

// WithRefs loads exactly the given id to ref mapping.
func WithRefs(refs map[int]string) types.Option[*Catalog] {
	return func(c *Catalog) {
		c.refs = make(map[int]string, len(refs))
		for id, ref := range refs {
			c.refs[id] = ref
		}
	}
}

// WithDiscovery lists storage and keeps every ref matching the pattern.
func WithDiscovery() types.Option[*Catalog] {
	return func(c *Catalog) { c.discover = true }
}

// WithSensor attaches sensors notified of loads and rejects.
func WithSensor(s ...types.Sensor) types.Option[*Catalog] {
	return func(c *Catalog) {
		for _, sn := range s {
			if sn != nil {
				c.sensors = append(c.sensors, sn)
			}
		}
	}
}

// WithLogger attaches loggers.
func WithLogger(l ...types.Logger) types.Option[*Catalog] {
	return func(c *Catalog) { c.ConnectLogger(l...) }
}

// WithComponentMetadata sets the catalog name and id.
func WithComponentMetadata(name string, id string) types.Option[*Catalog] {
	return func(c *Catalog) {
		c.componentMetadata.Name = name
		if id != "" {
			c.componentMetadata.ID = id
		}
	}
}
