// Package wav parses and writes the 44-byte canonical PCM container header.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// HeaderSize is the length of the canonical header; payload starts right after it.
const HeaderSize = 44

const (
	offChunkID       = 0
	offChunkSize     = 4
	offFormat        = 8
	offSubchunk1ID   = 12
	offSubchunk1Size = 16
	offAudioFormat   = 20
	offNumChannels   = 22
	offSampleRate    = 24
	offByteRate      = 28
	offBlockAlign    = 32
	offBitsPerSample = 34
	offSubchunk2ID   = 36
	offSubchunk2Size = 40
)

const (
	formatPCM      = 1
	subchunk1Size  = 16
	supportedDepth = 16
)

var (
	ErrHeaderSize    = errors.New("wav: header shorter than 44 bytes")
	ErrChunkID       = errors.New("wav: missing RIFF chunk id")
	ErrFormat        = errors.New("wav: missing WAVE format")
	ErrSubchunk1ID   = errors.New("wav: missing fmt subchunk")
	ErrSubchunk1Size = errors.New("wav: fmt subchunk is not 16 bytes")
	ErrSubchunk2ID   = errors.New("wav: missing data subchunk")
	ErrAudioFormat   = errors.New("wav: audio format is not PCM")
	ErrChannels      = errors.New("wav: channel count must be 1 or 2")
	ErrBitsPerSample = errors.New("wav: only 16-bit samples are supported")
	ErrBlockAlign    = errors.New("wav: block align does not match channels")
	ErrSampleRate    = errors.New("wav: sample rate is zero")
	ErrEmptyPayload  = errors.New("wav: payload is empty")
)

// Header is the decoded canonical header.
type Header struct {
	ChunkSize     uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataSize      uint32
}

// Parse validates and decodes a canonical header. Checks run in header order
// so the first failing field is the one reported.
func Parse(b []byte) (Header, error) {
	var h Header
	if len(b) < HeaderSize {
		return h, fmt.Errorf("%w: got %d", ErrHeaderSize, len(b))
	}
	if string(b[offChunkID:offChunkID+4]) != "RIFF" {
		return h, ErrChunkID
	}
	if string(b[offFormat:offFormat+4]) != "WAVE" {
		return h, ErrFormat
	}
	if string(b[offSubchunk1ID:offSubchunk1ID+4]) != "fmt " {
		return h, ErrSubchunk1ID
	}
	if binary.LittleEndian.Uint32(b[offSubchunk1Size:]) != subchunk1Size {
		return h, ErrSubchunk1Size
	}
	if string(b[offSubchunk2ID:offSubchunk2ID+4]) != "data" {
		return h, ErrSubchunk2ID
	}

	h = Header{
		ChunkSize:     binary.LittleEndian.Uint32(b[offChunkSize:]),
		AudioFormat:   binary.LittleEndian.Uint16(b[offAudioFormat:]),
		NumChannels:   binary.LittleEndian.Uint16(b[offNumChannels:]),
		SampleRate:    binary.LittleEndian.Uint32(b[offSampleRate:]),
		ByteRate:      binary.LittleEndian.Uint32(b[offByteRate:]),
		BlockAlign:    binary.LittleEndian.Uint16(b[offBlockAlign:]),
		BitsPerSample: binary.LittleEndian.Uint16(b[offBitsPerSample:]),
		DataSize:      binary.LittleEndian.Uint32(b[offSubchunk2Size:]),
	}
	return h, h.Validate()
}

// Validate checks the playable subset: 16-bit PCM, mono or stereo.
func (h Header) Validate() error {
	switch {
	case h.AudioFormat != formatPCM:
		return fmt.Errorf("%w: %d", ErrAudioFormat, h.AudioFormat)
	case h.NumChannels != 1 && h.NumChannels != 2:
		return fmt.Errorf("%w: %d", ErrChannels, h.NumChannels)
	case h.BitsPerSample != supportedDepth:
		return fmt.Errorf("%w: %d", ErrBitsPerSample, h.BitsPerSample)
	case h.BlockAlign != h.NumChannels*h.BitsPerSample/8:
		return fmt.Errorf("%w: %d for %d channels", ErrBlockAlign, h.BlockAlign, h.NumChannels)
	case h.SampleRate == 0:
		return ErrSampleRate
	case h.DataSize == 0:
		return ErrEmptyPayload
	}
	return nil
}

// Frames returns the number of whole frames described by DataSize.
func (h Header) Frames() uint32 {
	if h.BlockAlign == 0 {
		return 0
	}
	return h.DataSize / uint32(h.BlockAlign)
}

// MarshalBinary encodes the header in canonical layout.
func (h Header) MarshalBinary() ([]byte, error) {
	b := make([]byte, HeaderSize)
	copy(b[offChunkID:], "RIFF")
	binary.LittleEndian.PutUint32(b[offChunkSize:], 36+h.DataSize)
	copy(b[offFormat:], "WAVE")
	copy(b[offSubchunk1ID:], "fmt ")
	binary.LittleEndian.PutUint32(b[offSubchunk1Size:], subchunk1Size)
	binary.LittleEndian.PutUint16(b[offAudioFormat:], h.AudioFormat)
	binary.LittleEndian.PutUint16(b[offNumChannels:], h.NumChannels)
	binary.LittleEndian.PutUint32(b[offSampleRate:], h.SampleRate)
	binary.LittleEndian.PutUint32(b[offByteRate:], h.ByteRate)
	binary.LittleEndian.PutUint16(b[offBlockAlign:], h.BlockAlign)
	binary.LittleEndian.PutUint16(b[offBitsPerSample:], h.BitsPerSample)
	copy(b[offSubchunk2ID:], "data")
	binary.LittleEndian.PutUint32(b[offSubchunk2Size:], h.DataSize)
	return b, nil
}
