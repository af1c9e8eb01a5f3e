// Package dac provides codec collaborators: an in-memory recorder, a frame
// stream that adapts channel writes to an io.Reader of PCM, and an oto-backed
// speaker output.
package dac

import (
	"sync"

	"github.com/joeydtaylor/strum/pkg/internal/types"
)

// Recorder keeps every code written per channel.
type Recorder struct {
	mu    sync.Mutex
	codes [2][]uint16
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Write(ch types.Channel, code uint16) {
	if ch > types.ChannelB {
		return
	}
	r.mu.Lock()
	r.codes[ch] = append(r.codes[ch], code)
	r.mu.Unlock()
}

// Codes returns a copy of the codes written to ch.
func (r *Recorder) Codes(ch types.Channel) []uint16 {
	if ch > types.ChannelB {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uint16(nil), r.codes[ch]...)
}

// Frames pairs up the channel writes. Unmatched trailing writes are omitted.
func (r *Recorder) Frames() []types.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.codes[types.ChannelA])
	if m := len(r.codes[types.ChannelB]); m < n {
		n = m
	}
	out := make([]types.Frame, n)
	for i := range out {
		out[i] = types.Frame{Left: r.codes[types.ChannelA][i], Right: r.codes[types.ChannelB][i]}
	}
	return out
}

// Len is the number of complete frames written.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.codes[types.ChannelA])
	if m := len(r.codes[types.ChannelB]); m < n {
		n = m
	}
	return n
}

// Reset forgets all writes.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.codes = [2][]uint16{}
	r.mu.Unlock()
}
