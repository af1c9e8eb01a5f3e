//go:build !oto

package dac

import "errors"

// ErrNoAudio is returned when the binary was built without the oto tag.
var ErrNoAudio = errors.New("dac: built without audio output support (use -tags oto)")

// Speaker is unavailable in this build.
type Speaker struct {
	*Stream
}

// NewSpeaker always fails in this build.
func NewSpeaker(sampleRate int, capacity int) (*Speaker, error) {
	return nil, ErrNoAudio
}

func (s *Speaker) Start() {}

func (s *Speaker) Close() error { return nil }

func (s *Speaker) IsStarted() bool { return false }
