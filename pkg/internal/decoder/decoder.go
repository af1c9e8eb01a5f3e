// Package decoder turns raw tone payload bytes into codec-domain frames.
package decoder

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/joeydtaylor/strum/pkg/internal/types"
)

// DefaultChunkBytes is the feeder read size.
const DefaultChunkBytes = 512

var (
	ErrTruncated = errors.New("decoder: storage ended before payload")
	ErrBadTone   = errors.New("decoder: tone has no frame layout")
	ErrStorage   = errors.New("decoder: storage read failed")
)

// FrameSink receives decoded frames. Push reports false when the frame was dropped.
type FrameSink interface {
	Push(types.Frame) bool
}

// Result describes one decode pass.
type Result struct {
	Consumed uint32 // whole-frame bytes taken from the raw chunk
	Pushed   int
	Dropped  int
}

// Decoder owns the scratch buffer for one feeder. It is not safe for
// concurrent use.
type Decoder struct {
	scratch []byte
}

// New allocates a decoder able to read up to maxChunk bytes per call.
func New(maxChunk int) *Decoder {
	if maxChunk <= 0 {
		maxChunk = DefaultChunkBytes
	}
	return &Decoder{scratch: make([]byte, maxChunk)}
}

// ChunkSize is the largest read Read will issue.
func (d *Decoder) ChunkSize() int { return len(d.scratch) }

// Read fetches up to maxBytes of payload starting at readCursor. The returned
// slice aliases the scratch buffer and is valid until the next Read. A short
// read is not an error; the caller continues from the consumed position on the
// next tick.
func (d *Decoder) Read(ctx context.Context, tone types.Tone, h types.ToneHandle, readCursor uint32, maxBytes uint32) ([]byte, error) {
	if tone.BlockAlign == 0 {
		return nil, ErrBadTone
	}
	if readCursor >= tone.PayloadSize {
		return nil, nil
	}
	want := tone.PayloadSize - readCursor
	if maxBytes < want {
		want = maxBytes
	}
	if int(want) > len(d.scratch) {
		want = uint32(len(d.scratch))
	}
	if want == 0 {
		return nil, nil
	}

	n, err := h.ReadAt(ctx, d.scratch[:want], tone.DataOffset+int64(readCursor))
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		if n == 0 {
			return nil, fmt.Errorf("%w: tone %d at byte %d of %d", ErrTruncated, tone.ID, readCursor, tone.PayloadSize)
		}
	default:
		return nil, fmt.Errorf("%w: tone %d: %w", ErrStorage, tone.ID, err)
	}
	return d.scratch[:n], nil
}

// Decode converts whole frames of raw into sink. A trailing partial frame is
// left unconsumed.
func Decode(tone types.Tone, raw []byte, sink FrameSink) Result {
	var res Result
	align := int(tone.BlockAlign)
	if align == 0 {
		return res
	}
	stereo := tone.Channels == 2
	frames := len(raw) / align

	for i := 0; i < frames; i++ {
		off := i * align
		left := ToCode(int16(binary.LittleEndian.Uint16(raw[off:])))
		right := left
		if stereo {
			right = ToCode(int16(binary.LittleEndian.Uint16(raw[off+2:])))
		}
		if sink.Push(types.Frame{Left: left, Right: right}) {
			res.Pushed++
		} else {
			res.Dropped++
		}
	}
	res.Consumed = uint32(frames * align)
	return res
}

// Fill is Read followed by Decode.
func (d *Decoder) Fill(ctx context.Context, tone types.Tone, h types.ToneHandle, sink FrameSink, readCursor uint32, maxBytes uint32) (Result, error) {
	raw, err := d.Read(ctx, tone, h, readCursor, maxBytes)
	if err != nil {
		return Result{}, err
	}
	return Decode(tone, raw, sink), nil
}
