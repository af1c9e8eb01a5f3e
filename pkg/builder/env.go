package builder

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvOr returns the trimmed env value or def when empty.
func EnvOr(key, def string) string {
	v := strings.TrimSpace(strings.Trim(os.Getenv(key), `"`))
	if v == "" {
		return def
	}
	return v
}

// EnvIntOr returns the parsed int env value or def on empty/parse failure.
func EnvIntOr(key string, def int) int {
	v := EnvOr(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// EnvDurationOr parses a Go duration ("2ms", "125us") or returns def.
func EnvDurationOr(key string, def time.Duration) time.Duration {
	v := EnvOr(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// EngineConfigFromEnv overlays STRUM_* environment variables on the defaults.
//
//	STRUM_MIDRAIL, STRUM_NOISE_FLOOR, STRUM_MIN_DELTA, STRUM_MIN_SAMPLES
//	STRUM_RING_CAPACITY, STRUM_CHUNK_BYTES, STRUM_FEEDER_PERIOD, STRUM_SENSOR_PERIOD
//	STRUM_TONE_PATTERN, STRUM_MAX_FRET, STRUM_TONE_DIR, STRUM_LOG_LEVEL
func EngineConfigFromEnv() EngineConfig {
	cfg := DefaultEngineConfig()
	cfg.Midrail = RawSample(clampUint(EnvIntOr("STRUM_MIDRAIL", int(cfg.Midrail)), 0xffff))
	cfg.NoiseFloor = RawSample(clampUint(EnvIntOr("STRUM_NOISE_FLOOR", int(cfg.NoiseFloor)), 0xffff))
	cfg.MinDelta = RawSample(clampUint(EnvIntOr("STRUM_MIN_DELTA", int(cfg.MinDelta)), 0xffff))
	cfg.MinSamples = uint16(clampUint(EnvIntOr("STRUM_MIN_SAMPLES", int(cfg.MinSamples)), 0xffff))
	cfg.RingCapacity = EnvIntOr("STRUM_RING_CAPACITY", cfg.RingCapacity)
	cfg.ChunkBytes = EnvIntOr("STRUM_CHUNK_BYTES", cfg.ChunkBytes)
	cfg.FeederPeriod = EnvDurationOr("STRUM_FEEDER_PERIOD", cfg.FeederPeriod)
	cfg.SensorPeriod = EnvDurationOr("STRUM_SENSOR_PERIOD", cfg.SensorPeriod)
	cfg.TonePattern = EnvOr("STRUM_TONE_PATTERN", cfg.TonePattern)
	cfg.MaxFret = EnvIntOr("STRUM_MAX_FRET", cfg.MaxFret)
	cfg.ToneDir = EnvOr("STRUM_TONE_DIR", cfg.ToneDir)
	cfg.LogLevel = EnvOr("STRUM_LOG_LEVEL", cfg.LogLevel)
	return cfg
}

func clampUint(v int, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
