package meter

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/types"
	"github.com/joeydtaylor/strum/pkg/internal/utils"
)

// Meter keeps engine counters. Counter updates are lock-free once a metric
// has been registered.
type Meter struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	counts       sync.Map // string -> *atomic.Uint64
	displayNames map[string]string
	namesLock    sync.Mutex

	loggers     []types.Logger
	loggersLock sync.Mutex

	startTime  time.Time
	display    bool
	displayOut io.Writer
	cpuSample  time.Duration
}

// NewMeter constructs a Meter with the engine metrics registered at zero.
func NewMeter(options ...types.Option[types.Meter]) types.Meter {
	m := &Meter{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "METER",
		},
		displayNames: make(map[string]string),
		startTime:    time.Now(),
		displayOut:   os.Stdout,
		cpuSample:    200 * time.Millisecond,
	}
	m.initializeMetrics()

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}
