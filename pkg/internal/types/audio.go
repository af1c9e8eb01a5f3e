package types

import (
	"fmt"
	"time"
)

// RawSample is one conversion from the strum sensor (10-bit on the reference hardware).
type RawSample uint16

// Frame is a stereo pair of codec-domain sample codes.
type Frame struct {
	Left  uint16
	Right uint16
}

// Channel selects a codec output.
type Channel uint8

const (
	ChannelA Channel = iota
	ChannelB
)

// IdleTone is the reserved tone id meaning silence.
const IdleTone = -1

// Tone describes a playable audio asset. Tones are built once from a
// validated header and never mutated.
type Tone struct {
	ID            int
	Ref           string
	SampleRate    uint32
	Channels      uint16
	BitsPerSample uint16
	BlockAlign    uint16
	PayloadSize   uint32
	DataOffset    int64
}

// FrameCount returns the number of whole frames in the payload.
func (t Tone) FrameCount() uint32 {
	if t.BlockAlign == 0 {
		return 0
	}
	return t.PayloadSize / uint32(t.BlockAlign)
}

// FramePeriod returns the player clock period for the tone.
func (t Tone) FramePeriod() time.Duration {
	if t.SampleRate == 0 {
		return 0
	}
	return time.Second / time.Duration(t.SampleRate)
}

func (t Tone) String() string {
	return fmt.Sprintf("tone(%d %s %dHz %dch %dB)", t.ID, t.Ref, t.SampleRate, t.Channels, t.PayloadSize)
}

// StrumEvent is emitted by the onset detector when a gesture crosses the threshold.
type StrumEvent struct {
	ToneID    int
	Magnitude RawSample
	At        time.Time
}

// Phase is the playback controller state.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseArming
	PhasePlaying
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "IDLE"
	case PhaseArming:
		return "ARMING"
	case PhasePlaying:
		return "PLAYING"
	default:
		return fmt.Sprintf("PHASE(%d)", int32(p))
	}
}
