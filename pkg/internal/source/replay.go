package source

import (
	"sync"

	"github.com/joeydtaylor/strum/pkg/internal/types"
)

// Replay returns a Reader that plays samples in order and then holds rest.
// With loop set it wraps to the start instead.
func Replay(samples []types.RawSample, rest types.RawSample, loop bool) Reader {
	var (
		mu  sync.Mutex
		pos int
	)
	buf := append([]types.RawSample(nil), samples...)
	return func() types.RawSample {
		mu.Lock()
		defer mu.Unlock()
		if pos >= len(buf) {
			if !loop || len(buf) == 0 {
				return rest
			}
			pos = 0
		}
		v := buf[pos]
		pos++
		return v
	}
}

// Constant returns a Reader that always yields v.
func Constant(v types.RawSample) Reader {
	return func() types.RawSample { return v }
}

// Gesture describes a synthetic strum: the sensor swings to midrail+Amplitude
// for HalfWidth samples and then to midrail-Amplitude for the same count.
type Gesture struct {
	Amplitude types.RawSample
	HalfWidth int
	// Gap is the number of rest samples preceding the gesture.
	Gap int
}

// Synthesize renders gestures into a sample stream around midrail.
func Synthesize(midrail types.RawSample, gestures ...Gesture) []types.RawSample {
	var out []types.RawSample
	for _, g := range gestures {
		for i := 0; i < g.Gap; i++ {
			out = append(out, midrail)
		}
		hi := midrail + g.Amplitude
		var lo types.RawSample
		if g.Amplitude < midrail {
			lo = midrail - g.Amplitude
		}
		for i := 0; i < g.HalfWidth; i++ {
			out = append(out, hi)
		}
		for i := 0; i < g.HalfWidth; i++ {
			out = append(out, lo)
		}
	}
	return out
}
