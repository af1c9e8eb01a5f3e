// Package builder is the public facade over the strum engine components.
//
// Each component constructor is re-exported as NewX and each functional
// option as XWithY, so programs outside this module never import
// pkg/internal directly.
package builder

import "github.com/joeydtaylor/strum/pkg/internal/types"

type ComponentMetadata = types.ComponentMetadata

type RawSample = types.RawSample

type Frame = types.Frame

type Channel = types.Channel

type Tone = types.Tone

type StrumEvent = types.StrumEvent

type Phase = types.Phase

type SessionRecord = types.SessionRecord

type Logger = types.Logger

type Sensor = types.Sensor

type Meter = types.Meter

type Clock = types.Clock

type Codec = types.Codec

type FretScanner = types.FretScanner

type SampleSource = types.SampleSource

type ToneStorage = types.ToneStorage

type ToneHandle = types.ToneHandle

const (
	IdleTone = types.IdleTone

	ChannelA = types.ChannelA
	ChannelB = types.ChannelB

	PhaseIdle    = types.PhaseIdle
	PhaseArming  = types.PhaseArming
	PhasePlaying = types.PhasePlaying
)
