package dac

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/joeydtaylor/strum/pkg/internal/decoder"
	"github.com/joeydtaylor/strum/pkg/internal/ringbuffer"
	"github.com/joeydtaylor/strum/pkg/internal/types"
)

// DefaultStreamCapacity holds roughly 90ms of 44.1kHz stereo.
const DefaultStreamCapacity = 4096

// BytesPerFrame is the size of one interleaved signed 16-bit stereo frame.
const BytesPerFrame = 4

// Stream latches channel A and queues a frame when channel B is written. Read
// renders queued frames as interleaved signed 16-bit little-endian stereo and
// repeats the last frame when the queue runs dry.
//
// Write must be called from a single goroutine and Read from another single
// goroutine.
type Stream struct {
	ring    *ringbuffer.Ring[types.Frame]
	pending uint16
	last    types.Frame

	dropped atomic.Uint64
	starved atomic.Uint64
}

// NewStream allocates a stream queue of capacity frames (a power of two).
func NewStream(capacity int) (*Stream, error) {
	if capacity <= 0 {
		capacity = DefaultStreamCapacity
	}
	ring, err := ringbuffer.New[types.Frame](capacity)
	if err != nil {
		return nil, err
	}
	return &Stream{
		ring:    ring,
		pending: decoder.MidCode,
		last:    types.Frame{Left: decoder.MidCode, Right: decoder.MidCode},
	}, nil
}

func (s *Stream) Write(ch types.Channel, code uint16) {
	switch ch {
	case types.ChannelA:
		s.pending = code
	case types.ChannelB:
		if !s.ring.Push(types.Frame{Left: s.pending, Right: code}) {
			s.dropped.Add(1)
		}
	}
}

// Read fills p with whole frames.
func (s *Stream) Read(p []byte) (int, error) {
	n := len(p) / BytesPerFrame
	for i := 0; i < n; i++ {
		if f, ok := s.ring.Pop(); ok {
			s.last = f
		} else {
			s.starved.Add(1)
		}
		off := i * BytesPerFrame
		binary.LittleEndian.PutUint16(p[off:], uint16(decoder.FromCode(s.last.Left)))
		binary.LittleEndian.PutUint16(p[off+2:], uint16(decoder.FromCode(s.last.Right)))
	}
	return n * BytesPerFrame, nil
}

// Buffered is the number of queued frames.
func (s *Stream) Buffered() int { return s.ring.Len() }

// Dropped counts frames lost because the queue was full.
func (s *Stream) Dropped() uint64 { return s.dropped.Load() }

// Starved counts frames rendered from the held value.
func (s *Stream) Starved() uint64 { return s.starved.Load() }
