package wav

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodePCM16 builds a complete 16-bit PCM file. samples are interleaved when
// channels is 2.
func EncodePCM16(sampleRate uint32, channels uint16, samples []int16) ([]byte, error) {
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("%w: %d", ErrChannels, channels)
	}
	if len(samples)%int(channels) != 0 {
		return nil, fmt.Errorf("wav: %d samples do not fill whole %d-channel frames", len(samples), channels)
	}
	blockAlign := channels * 2
	h := Header{
		AudioFormat:   formatPCM,
		NumChannels:   channels,
		SampleRate:    sampleRate,
		ByteRate:      sampleRate * uint32(blockAlign),
		BlockAlign:    blockAlign,
		BitsPerSample: supportedDepth,
		DataSize:      uint32(len(samples) * 2),
	}
	head, _ := h.MarshalBinary()
	out := make([]byte, HeaderSize+len(samples)*2)
	copy(out, head)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[HeaderSize+i*2:], uint16(s))
	}
	return out, nil
}

// Sine returns frames of a sine tone at freq Hz, duplicated across channels.
func Sine(sampleRate uint32, channels uint16, freq float64, frames int, amplitude float64) []int16 {
	if amplitude > 1 {
		amplitude = 1
	}
	out := make([]int16, frames*int(channels))
	for i := 0; i < frames; i++ {
		v := int16(math.Round(amplitude * math.MaxInt16 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))))
		for c := 0; c < int(channels); c++ {
			out[i*int(channels)+c] = v
		}
	}
	return out
}
