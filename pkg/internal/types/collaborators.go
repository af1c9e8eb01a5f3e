package types

import (
	"context"
	"time"
)

// SampleSource delivers one RawSample per fixed period to its registered callbacks.
type SampleSource interface {
	OnSample(fn ...func(RawSample))
	Start(ctx context.Context) error
	Stop()
}

// FretScanner returns the currently pressed fret (0 = open string).
type FretScanner interface {
	Scan() int
}

// ToneStorage opens tone assets by reference.
type ToneStorage interface {
	Open(ctx context.Context, ref string) (ToneHandle, error)
	List(ctx context.Context) ([]string, error)
}

// ToneHandle is a positional, seekless view of a tone asset.
type ToneHandle interface {
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	Size() int64
	Close() error
}

// Codec is the DAC write primitive.
type Codec interface {
	Write(ch Channel, code uint16)
}

// Clock is a periodic timer facility. The attached handler runs once per period
// while the clock is running.
type Clock interface {
	Attach(fn func())
	Start(period time.Duration)
	Stop()
	IsRunning() bool
	SetPeriod(period time.Duration)
}
