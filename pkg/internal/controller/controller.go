// Package controller implements the streaming playback state machine.
//
// Three triggers drive it: accepted strums, feeder ticks that top up the
// frame ring from storage, and player ticks that move one frame from the ring
// to the codec. The player never waits on storage: the feeder performs its
// read without holding the state lock and discards the result if the tone
// changed while the read was in flight.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/decoder"
	"github.com/joeydtaylor/strum/pkg/internal/ringbuffer"
	"github.com/joeydtaylor/strum/pkg/internal/types"
	"github.com/joeydtaylor/strum/pkg/internal/utils"
)

const (
	DefaultRingCapacity = 512
	DefaultFeederPeriod = 2 * time.Millisecond
)

var ErrConfig = errors.New("controller: invalid configuration")

// ToneSource resolves tone ids. *catalog.Catalog satisfies it.
type ToneSource interface {
	Tone(id int) (types.Tone, bool)
	Handle(id int) (types.ToneHandle, bool)
}

// State is a copy of the playback state.
type State struct {
	ToneID      int
	Phase       types.Phase
	ReadCursor  uint32
	WriteCursor uint32
	PayloadSize uint32
	Generation  uint64
	LastOutput  types.Frame
	Buffered    int

	FramesPlayed uint64
	Underruns    uint64
	Overruns     uint64
	Completions  uint64
}

// Controller owns the feeder and player clocks and the active tone.
type Controller struct {
	componentMetadata types.ComponentMetadata

	ctx          context.Context
	tones        ToneSource
	codec        types.Codec
	feeder       types.Clock
	player       types.Clock
	feederPeriod time.Duration
	chunkBytes   int
	capacity     int
	backpressure bool

	// feedMu serialises whole feeder ticks so the decoder scratch buffer has a
	// single user. mu guards everything below it.
	feedMu sync.Mutex
	dec    *decoder.Decoder

	mu          sync.Mutex
	ring        *ringbuffer.Ring[types.Frame]
	tone        types.Tone
	handle      types.ToneHandle
	toneID      int
	phase       types.Phase
	readCursor  uint32
	writeCursor uint32
	generation  uint64
	last        types.Frame

	framesPlayed uint64
	underruns    uint64
	overruns     uint64
	completions  uint64

	sensors     []types.Sensor
	loggers     []types.Logger
	loggersLock sync.Mutex
}

// New builds an idle controller and attaches its tick handlers to the clocks.
func New(tones ToneSource, codec types.Codec, feeder, player types.Clock, options ...types.Option[*Controller]) (*Controller, error) {
	if tones == nil || codec == nil || feeder == nil || player == nil {
		return nil, fmt.Errorf("%w: tones, codec and both clocks are required", ErrConfig)
	}
	c := &Controller{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "PLAYBACK_CONTROLLER",
		},
		ctx:          context.Background(),
		tones:        tones,
		codec:        codec,
		feeder:       feeder,
		player:       player,
		feederPeriod: DefaultFeederPeriod,
		chunkBytes:   decoder.DefaultChunkBytes,
		capacity:     DefaultRingCapacity,
		toneID:       types.IdleTone,
		phase:        types.PhaseIdle,
		last:         types.Frame{Left: decoder.MidCode, Right: decoder.MidCode},
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}

	if c.chunkBytes <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d", ErrConfig, c.chunkBytes)
	}
	ring, err := ringbuffer.New[types.Frame](c.capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	c.ring = ring
	c.dec = decoder.New(c.chunkBytes)

	feeder.Attach(c.OnFeederTick)
	player.Attach(c.OnPlayerTick)
	return c, nil
}

// OnStrum switches to the strummed tone and arms playback. Unknown tones are
// ignored; strumming the active tone is a no-op.
func (c *Controller) OnStrum(ev types.StrumEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ev.ToneID == c.toneID {
		return
	}
	tone, ok := c.tones.Tone(ev.ToneID)
	h, hok := c.tones.Handle(ev.ToneID)
	if !ok || !hok || h == nil {
		c.NotifyLoggers(types.WarnLevel, "Strum for unknown tone ignored",
			"component", c.componentMetadata,
			"event", "OnStrum",
			"result", "SKIPPED",
			"tone_id", ev.ToneID,
		)
		return
	}

	from := c.toneID
	c.tone = tone
	c.handle = h
	c.toneID = tone.ID
	c.readCursor = 0
	c.writeCursor = 0
	c.ring.Reset()
	c.generation++
	c.phase = types.PhaseArming

	c.player.SetPeriod(tone.FramePeriod())
	if !c.feeder.IsRunning() {
		c.feeder.Start(c.feederPeriod)
	}

	for _, s := range c.sensors {
		s.InvokeOnToneSwitch(c.componentMetadata, from, tone.ID)
	}
	c.NotifyLoggers(types.InfoLevel, "Tone armed",
		"component", c.componentMetadata,
		"event", "OnStrum",
		"result", "SUCCESS",
		"tone_id", tone.ID,
		"from", from,
		"magnitude", int(ev.Magnitude),
		"phase", c.phase,
	)
}

// playableEnd is the payload length rounded down to whole frames.
func playableEnd(t types.Tone) uint32 {
	return t.FrameCount() * uint32(t.BlockAlign)
}

// OnFeederTick reads one chunk of the active tone and decodes it into the ring.
func (c *Controller) OnFeederTick() {
	c.feedMu.Lock()
	defer c.feedMu.Unlock()

	c.mu.Lock()
	if c.phase == types.PhaseIdle {
		c.mu.Unlock()
		return
	}
	gen := c.generation
	tone := c.tone
	h := c.handle
	rc := c.readCursor
	end := playableEnd(tone)
	want := uint32(c.chunkBytes)
	if c.backpressure {
		if room := uint32(c.ring.Free()) * uint32(tone.BlockAlign); room < want {
			want = room
		}
	}
	c.mu.Unlock()

	if rc >= end || want == 0 {
		return
	}
	if remain := end - rc; remain < want {
		want = remain
	}

	raw, err := c.dec.Read(c.ctx, tone, h, rc, want)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || c.phase == types.PhaseIdle {
		c.NotifyLoggers(types.DebugLevel, "Stale read discarded",
			"component", c.componentMetadata,
			"event", "OnFeederTick",
			"result", "SKIPPED",
			"tone_id", tone.ID,
		)
		return
	}
	if err != nil {
		c.failLocked(err)
		return
	}

	res := decoder.Decode(tone, raw, c.ring)
	c.readCursor += res.Consumed

	if res.Pushed > 0 {
		for _, s := range c.sensors {
			s.InvokeOnFramesDecoded(c.componentMetadata, res.Pushed)
		}
	}
	if res.Dropped > 0 {
		c.overruns++
		c.writeCursor = advance(c.writeCursor, uint32(res.Dropped)*uint32(tone.BlockAlign), end)
		for _, s := range c.sensors {
			s.InvokeOnOverrun(c.componentMetadata, tone.ID, res.Dropped)
		}
		c.NotifyLoggers(types.DebugLevel, "Ring overrun",
			"component", c.componentMetadata,
			"event", "OnFeederTick",
			"result", "FAILURE",
			"tone_id", tone.ID,
			"dropped", res.Dropped,
		)
	}

	if c.phase == types.PhaseArming && res.Pushed > 0 {
		c.phase = types.PhasePlaying
		if !c.player.IsRunning() {
			c.player.Start(tone.FramePeriod())
		}
		for _, s := range c.sensors {
			s.InvokeOnPlaybackStart(c.componentMetadata, tone)
		}
		c.NotifyLoggers(types.InfoLevel, "Playback started",
			"component", c.componentMetadata,
			"event", "OnFeederTick",
			"result", "SUCCESS",
			"tone_id", tone.ID,
			"phase", c.phase,
		)
	}
}

// OnPlayerTick writes one frame to the codec, holding the last output when
// the ring is empty, and finishes the tone once every byte was played.
func (c *Controller) OnPlayerTick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == types.PhaseIdle {
		return
	}
	end := playableEnd(c.tone)

	if f, ok := c.ring.Pop(); ok {
		c.last = f
		c.codec.Write(types.ChannelA, f.Left)
		c.codec.Write(types.ChannelB, f.Right)
		c.writeCursor = advance(c.writeCursor, uint32(c.tone.BlockAlign), end)
		c.framesPlayed++
		for _, s := range c.sensors {
			s.InvokeOnFramesPlayed(c.componentMetadata, 1)
		}
	} else {
		c.codec.Write(types.ChannelA, c.last.Left)
		c.codec.Write(types.ChannelB, c.last.Right)
		if c.phase == types.PhasePlaying && c.writeCursor < end {
			c.underruns++
			for _, s := range c.sensors {
				s.InvokeOnUnderrun(c.componentMetadata, c.toneID)
			}
			c.NotifyLoggers(types.DebugLevel, "Ring underrun",
				"component", c.componentMetadata,
				"event", "OnPlayerTick",
				"result", "FAILURE",
				"tone_id", c.toneID,
			)
		}
	}

	if c.phase == types.PhasePlaying && c.readCursor >= end && c.writeCursor >= end {
		c.completeLocked()
	}
}

func advance(cursor, n, end uint32) uint32 {
	if end-cursor < n {
		return end
	}
	return cursor + n
}

func (c *Controller) completeLocked() {
	tone := c.tone
	c.feeder.Stop()
	c.player.Stop()
	c.idleLocked()
	c.completions++

	for _, s := range c.sensors {
		s.InvokeOnPlaybackComplete(c.componentMetadata, tone)
	}
	c.NotifyLoggers(types.InfoLevel, "Playback complete",
		"component", c.componentMetadata,
		"event", "OnPlayerTick",
		"result", "SUCCESS",
		"tone_id", tone.ID,
		"frames", tone.FrameCount(),
	)
}

func (c *Controller) failLocked(err error) {
	tone := c.tone
	c.feeder.Stop()
	c.player.Stop()
	c.idleLocked()

	for _, s := range c.sensors {
		s.InvokeOnStorageError(c.componentMetadata, tone.ID, err)
	}
	c.NotifyLoggers(types.ErrorLevel, "Storage read failed, playback stopped",
		"component", c.componentMetadata,
		"event", "OnFeederTick",
		"result", "FAILURE",
		"tone_id", tone.ID,
		"error", err,
	)
}

// idleLocked keeps the finished tone's cursors for inspection; the next strum
// zeroes them.
func (c *Controller) idleLocked() {
	c.toneID = types.IdleTone
	c.phase = types.PhaseIdle
	c.handle = nil
	c.generation++
	c.ring.Reset()
}

// Halt stops both clocks and returns to Idle without reporting completion.
func (c *Controller) Halt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.feeder.Stop()
	c.player.Stop()
	if c.phase != types.PhaseIdle {
		c.NotifyLoggers(types.InfoLevel, "Playback halted",
			"component", c.componentMetadata,
			"event", "Halt",
			"result", "SUCCESS",
			"tone_id", c.toneID,
		)
	}
	c.idleLocked()
}

// Snapshot returns a copy of the playback state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		ToneID:       c.toneID,
		Phase:        c.phase,
		ReadCursor:   c.readCursor,
		WriteCursor:  c.writeCursor,
		PayloadSize:  c.tone.PayloadSize,
		Generation:   c.generation,
		LastOutput:   c.last,
		Buffered:     c.ring.Len(),
		FramesPlayed: c.framesPlayed,
		Underruns:    c.underruns,
		Overruns:     c.overruns,
		Completions:  c.completions,
	}
}

// Phase returns the current phase.
func (c *Controller) Phase() types.Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// ActiveTone returns the active tone id, or types.IdleTone.
func (c *Controller) ActiveTone() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.toneID
}
