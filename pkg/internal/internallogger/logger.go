package internallogger

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeydtaylor/strum/pkg/logschema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerOption mutates the adapter configuration before the zap logger is built.
type LoggerOption func(*loggerConfig)

type loggerConfig struct {
	level       zapcore.Level
	development bool
	callerDepth int
	callerOn    bool
	out         io.Writer
	fields      map[string]interface{}

	// Sampling applies per message per tick. Zero first disables it.
	sampleTick       time.Duration
	sampleFirst      int
	sampleThereafter int
}

// ZapLoggerAdapter implements types.Logger on top of zap.
type ZapLoggerAdapter struct {
	mu          sync.Mutex
	logger      *zap.Logger
	atomicLevel zap.AtomicLevel
	encConfig   zapcore.EncoderConfig
	baseCore    zapcore.Core
	baseFields  []zap.Field
	callerDepth int
	callerOn    bool
	sinks       map[string]sinkEntry

	sampleTick       time.Duration
	sampleFirst      int
	sampleThereafter int
	sampledOut       atomic.Uint64
}

// NewLogger builds a ZapLoggerAdapter writing JSON to stdout unless
// LoggerWithOutput says otherwise.
func NewLogger(options ...LoggerOption) *ZapLoggerAdapter {
	cfg := &loggerConfig{
		level:       zapcore.InfoLevel,
		callerDepth: 2,
		callerOn:    true,
		fields:      map[string]interface{}{logschema.FieldSchema: logschema.SchemaID},
	}
	for _, opt := range options {
		opt(cfg)
	}

	enc := standardEncoderConfig()
	if cfg.development {
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var ws zapcore.WriteSyncer = zapcore.Lock(os.Stdout)
	if cfg.out != nil {
		ws = zapcore.Lock(zapcore.AddSync(cfg.out))
	}

	z := &ZapLoggerAdapter{
		atomicLevel:      zap.NewAtomicLevelAt(cfg.level),
		encConfig:        enc,
		baseFields:       fieldsFromMap(cfg.fields),
		callerDepth:      cfg.callerDepth,
		callerOn:         cfg.callerOn,
		sinks:            make(map[string]sinkEntry),
		sampleTick:       cfg.sampleTick,
		sampleFirst:      cfg.sampleFirst,
		sampleThereafter: cfg.sampleThereafter,
	}
	z.baseCore = zapcore.NewCore(zapcore.NewJSONEncoder(enc), ws, z.atomicLevel)

	z.mu.Lock()
	z.rebuildLoggerLocked()
	z.mu.Unlock()
	return z
}

// SampledOut reports how many entries the sampler discarded.
func (z *ZapLoggerAdapter) SampledOut() uint64 { return z.sampledOut.Load() }

func (z *ZapLoggerAdapter) sample(core zapcore.Core) zapcore.Core {
	if z.sampleFirst <= 0 {
		return core
	}
	hook := zapcore.SamplerHook(func(_ zapcore.Entry, dec zapcore.SamplingDecision) {
		if dec&zapcore.LogDropped != 0 {
			z.sampledOut.Add(1)
		}
	})
	return zapcore.NewSamplerWithOptions(core, z.sampleTick, z.sampleFirst, z.sampleThereafter, hook)
}
