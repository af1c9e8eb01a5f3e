//go:build oto

package dac

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Speaker plays a Stream through the host audio device.
type Speaker struct {
	*Stream

	mu      sync.Mutex
	ctx     *oto.Context
	player  *oto.Player
	started bool
}

// NewSpeaker opens the default output at sampleRate. Only one oto context may
// exist per process.
func NewSpeaker(sampleRate int, capacity int) (*Speaker, error) {
	stream, err := NewStream(capacity)
	if err != nil {
		return nil, err
	}
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("dac: open audio context: %w", err)
	}
	<-ready

	sp := &Speaker{Stream: stream, ctx: ctx}
	sp.player = ctx.NewPlayer(stream)
	return sp, nil
}

// Start begins pulling frames from the stream.
func (s *Speaker) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started && s.player != nil {
		s.player.Play()
		s.started = true
	}
}

// Close stops playback and releases the player.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
	if s.player == nil {
		return nil
	}
	err := s.player.Close()
	s.player = nil
	return err
}

// IsStarted reports whether the speaker is playing.
func (s *Speaker) IsStarted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}
