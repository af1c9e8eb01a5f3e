package builder

import (
	"fmt"
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/catalog"
	"github.com/joeydtaylor/strum/pkg/internal/clock"
	"github.com/joeydtaylor/strum/pkg/internal/controller"
	"github.com/joeydtaylor/strum/pkg/internal/engine"
	"github.com/joeydtaylor/strum/pkg/internal/onset"
	"github.com/joeydtaylor/strum/pkg/internal/source"
	"github.com/joeydtaylor/strum/pkg/internal/types"
)

type Engine = engine.Engine

type EngineService = engine.Service

// EngineConfig holds the tunables of an assembled engine.
type EngineConfig struct {
	Midrail    RawSample
	NoiseFloor RawSample
	MinDelta   RawSample
	MinSamples uint16

	RingCapacity int
	ChunkBytes   int
	FeederPeriod time.Duration
	SensorPeriod time.Duration

	TonePattern string
	MaxFret     int
	ToneDir     string
	LogLevel    string
}

// DefaultEngineConfig returns the reference hardware constants.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Midrail:      onset.DefaultMidrail,
		NoiseFloor:   onset.DefaultNoiseFloor,
		MinDelta:     onset.DefaultMinDelta,
		MinSamples:   onset.DefaultMinSamples,
		RingCapacity: controller.DefaultRingCapacity,
		ChunkBytes:   512,
		FeederPeriod: controller.DefaultFeederPeriod,
		SensorPeriod: source.DefaultPeriod,
		TonePattern:  catalog.DefaultPattern,
		MaxFret:      catalog.DefaultMaxFret,
		ToneDir:      "tones",
		LogLevel:     "info",
	}
}

// EngineParts are the collaborators AssembleEngine wires together.
type EngineParts struct {
	Tones  ToneSource
	Reader SampleReader
	Fret   FretScanner
	Codec  Codec

	Sensors []Sensor
	Loggers []Logger

	// Nil clocks become wall-clock tickers, which the engine closes on Stop.
	SampleClock Clock
	FeederClock Clock
	PlayerClock Clock
}

// AssembleEngine builds detector, controller and sample source from cfg and
// parts and wires them into an engine.
func AssembleEngine(cfg EngineConfig, parts EngineParts, options ...types.Option[*Engine]) (*Engine, error) {
	if parts.Tones == nil || parts.Reader == nil || parts.Codec == nil {
		return nil, fmt.Errorf("builder: tones, reader and codec are required")
	}

	var closers []engine.Closer
	clockOr := func(c Clock) Clock {
		if c != nil {
			return c
		}
		t := clock.NewTicker()
		closers = append(closers, t)
		return t
	}
	sampleClk := clockOr(parts.SampleClock)
	feederClk := clockOr(parts.FeederClock)
	playerClk := clockOr(parts.PlayerClock)

	det := onset.NewDetector(
		onset.WithMidrail(cfg.Midrail),
		onset.WithNoiseFloor(cfg.NoiseFloor),
		onset.WithMinDelta(cfg.MinDelta),
		onset.WithMinSamples(cfg.MinSamples),
		onset.WithFretScanner(parts.Fret),
		onset.WithSensor(parts.Sensors...),
		onset.WithLogger(parts.Loggers...),
	)

	ctrl, err := controller.New(parts.Tones, parts.Codec, feederClk, playerClk,
		controller.WithRingCapacity(cfg.RingCapacity),
		controller.WithChunkBytes(cfg.ChunkBytes),
		controller.WithFeederPeriod(cfg.FeederPeriod),
		controller.WithSensor(parts.Sensors...),
		controller.WithLogger(parts.Loggers...),
	)
	if err != nil {
		return nil, err
	}

	src := source.NewPeriodic(sampleClk, parts.Reader,
		source.WithPeriod(cfg.SensorPeriod),
		source.WithLogger(parts.Loggers...),
	)

	opts := []types.Option[*Engine]{
		engine.WithSensor(parts.Sensors...),
		engine.WithLogger(parts.Loggers...),
		engine.WithCloser(closers...),
	}
	return engine.New(src, det, ctrl, append(opts, options...)...)
}

// NewEngine wires already-built components.
func NewEngine(src SampleSource, det *Detector, ctrl *Controller, options ...types.Option[*Engine]) (*Engine, error) {
	return engine.New(src, det, ctrl, options...)
}

// EngineWithService registers services such as a session recorder or Kafka
// publisher that run for the engine's lifetime.
func EngineWithService(svc ...EngineService) types.Option[*Engine] {
	return engine.WithService(svc...)
}

func EngineWithFretPoller(p *FretPoller) types.Option[*Engine] { return engine.WithFretPoller(p) }

func EngineWithCloser(c ...engine.Closer) types.Option[*Engine] { return engine.WithCloser(c...) }

func EngineWithSensor(s ...types.Sensor) types.Option[*Engine] { return engine.WithSensor(s...) }

func EngineWithLogger(l ...types.Logger) types.Option[*Engine] { return engine.WithLogger(l...) }

func EngineWithComponentMetadata(name string, id string) types.Option[*Engine] {
	return engine.WithComponentMetadata(name, id)
}
