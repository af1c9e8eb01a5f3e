package builder

import (
	"context"
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/catalog"
	"github.com/joeydtaylor/strum/pkg/internal/clock"
	"github.com/joeydtaylor/strum/pkg/internal/controller"
	"github.com/joeydtaylor/strum/pkg/internal/dac"
	"github.com/joeydtaylor/strum/pkg/internal/storage"
	"github.com/joeydtaylor/strum/pkg/internal/types"
)

type Controller = controller.Controller

type ControllerState = controller.State

type ToneSource = controller.ToneSource

const (
	DefaultRingCapacity = controller.DefaultRingCapacity
	DefaultFeederPeriod = controller.DefaultFeederPeriod
)

// NewController creates the playback controller and attaches it to both clocks.
func NewController(tones ToneSource, codec Codec, feeder, player Clock, options ...types.Option[*Controller]) (*Controller, error) {
	return controller.New(tones, codec, feeder, player, options...)
}

// ControllerWithChunkBytes sets the bytes read from storage per feeder tick.
func ControllerWithChunkBytes(n int) types.Option[*Controller] { return controller.WithChunkBytes(n) }

func ControllerWithRingCapacity(n int) types.Option[*Controller] {
	return controller.WithRingCapacity(n)
}

func ControllerWithFeederPeriod(d time.Duration) types.Option[*Controller] {
	return controller.WithFeederPeriod(d)
}

// ControllerWithBackpressure limits each read to the free ring space.
func ControllerWithBackpressure(on bool) types.Option[*Controller] {
	return controller.WithBackpressure(on)
}

func ControllerWithContext(ctx context.Context) types.Option[*Controller] {
	return controller.WithContext(ctx)
}

func ControllerWithSensor(s ...types.Sensor) types.Option[*Controller] {
	return controller.WithSensor(s...)
}

func ControllerWithLogger(l ...types.Logger) types.Option[*Controller] {
	return controller.WithLogger(l...)
}

func ControllerWithComponentMetadata(name string, id string) types.Option[*Controller] {
	return controller.WithComponentMetadata(name, id)
}

type Catalog = catalog.Catalog

const DefaultTonePattern = catalog.DefaultPattern

// BuildCatalog loads and validates every tone named by the configured pattern.
func BuildCatalog(ctx context.Context, st ToneStorage, options ...types.Option[*Catalog]) (*Catalog, error) {
	return catalog.Build(ctx, st, options...)
}

// CatalogWithPattern sets the printf pattern mapping fret to storage ref.
func CatalogWithPattern(pattern string, maxFret int) types.Option[*Catalog] {
	return catalog.WithPattern(pattern, maxFret)
}

func CatalogWithRefs(refs map[int]string) types.Option[*Catalog] { return catalog.WithRefs(refs) }

// CatalogWithDiscovery resolves tones from storage.List instead of probing every fret.
func CatalogWithDiscovery() types.Option[*Catalog] { return catalog.WithDiscovery() }

func CatalogWithSensor(s ...types.Sensor) types.Option[*Catalog] { return catalog.WithSensor(s...) }

func CatalogWithLogger(l ...types.Logger) types.Option[*Catalog] { return catalog.WithLogger(l...) }

func CatalogWithComponentMetadata(name string, id string) types.Option[*Catalog] {
	return catalog.WithComponentMetadata(name, id)
}

type MemoryStorage = storage.MemoryStorage

type FileStorage = storage.FileStorage

func NewMemoryStorage() *MemoryStorage { return storage.NewMemoryStorage() }

// NewFileStorage serves tones from dir; suffix filters List results.
func NewFileStorage(dir string, suffix string) *FileStorage {
	return storage.NewFileStorage(dir, suffix)
}

type Ticker = clock.Ticker

type ManualClock = clock.Manual

// NewTicker creates a wall-clock periodic timer.
func NewTicker(options ...clock.Option) *Ticker { return clock.NewTicker(options...) }

func TickerWithResolution(d time.Duration) clock.Option { return clock.WithResolution(d) }

func TickerWithMaxCatchUp(n int) clock.Option { return clock.WithMaxCatchUp(n) }

// NewManualClock creates a clock that only fires when ticked.
func NewManualClock() *ManualClock { return clock.NewManual() }

type DACRecorder = dac.Recorder

type DACStream = dac.Stream

type Speaker = dac.Speaker

func NewDACRecorder() *DACRecorder { return dac.NewRecorder() }

// NewDACStream buffers codec writes as little-endian stereo PCM for an audio sink.
func NewDACStream(capacity int) (*DACStream, error) { return dac.NewStream(capacity) }

// NewSpeaker opens the system audio device. Builds without the oto tag
// return dac.ErrNoAudio.
func NewSpeaker(sampleRate int, capacity int) (*Speaker, error) {
	return dac.NewSpeaker(sampleRate, capacity)
}
