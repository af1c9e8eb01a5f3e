package sensor

import (
	"sync"

	"github.com/joeydtaylor/strum/pkg/internal/types"
	"github.com/joeydtaylor/strum/pkg/internal/utils"
)

// Sensor provides callback hooks for engine telemetry.
type Sensor struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	OnStart            []func(types.ComponentMetadata)
	OnStop             []func(types.ComponentMetadata)
	OnStrum            []func(types.ComponentMetadata, types.StrumEvent)
	OnToneSwitch       []func(types.ComponentMetadata, int, int)
	OnPlaybackStart    []func(types.ComponentMetadata, types.Tone)
	OnPlaybackComplete []func(types.ComponentMetadata, types.Tone)
	OnOverrun          []func(types.ComponentMetadata, int, int)
	OnUnderrun         []func(types.ComponentMetadata, int)
	OnStorageError     []func(types.ComponentMetadata, int, error)
	OnCatalogLoad      []func(types.ComponentMetadata, types.Tone)
	OnCatalogReject    []func(types.ComponentMetadata, string, error)

	callbackLock sync.Mutex
	loggers      []types.Logger
	loggersLock  sync.Mutex
	meters       []types.Meter
	metersLock   sync.Mutex
}

// NewSensor constructs a Sensor with optional configuration.
func NewSensor(options ...types.Option[types.Sensor]) types.Sensor {
	s := &Sensor{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "SENSOR",
		},
	}

	for _, opt := range s.decorateCallbacks(options...) {
		if opt == nil {
			continue
		}
		opt(s)
	}

	return s
}
