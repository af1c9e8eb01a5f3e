// Package onset detects strum gestures in a raw sensor stream.
//
// The detector tracks the largest samples seen while the signal is above
// midrail. When the signal swings below midrail the mean of that peak window
// becomes the newest baseline; a strum is accepted when it exceeds the mean of
// the older baselines by more than the minimum delta and the detector is armed.
package onset

import (
	"sync"
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/types"
	"github.com/joeydtaylor/strum/pkg/internal/utils"
)

const (
	DefaultMidrail    types.RawSample = 512
	DefaultNoiseFloor types.RawSample = 150
	DefaultMinDelta   types.RawSample = 10
	DefaultMinSamples uint16          = 256

	// HistoryLen is the length of both history windows.
	HistoryLen = 5
)

// History is a most-recent-first window of samples.
type History [HistoryLen]types.RawSample

// Detector implements the peak/baseline onset algorithm. OnSample must be
// called from a single sampling goroutine.
type Detector struct {
	componentMetadata types.ComponentMetadata

	midrail    types.RawSample
	noiseFloor types.RawSample
	minDelta   types.RawSample
	minSamples uint16

	peak       History
	baseline   History
	sinceStrum uint16
	armed      bool

	fret    types.FretScanner
	now     func() time.Time
	sensors []types.Sensor

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// NewDetector builds a detector at rest (both windows at midrail, armed).
func NewDetector(options ...types.Option[*Detector]) *Detector {
	d := &Detector{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "ONSET_DETECTOR",
		},
		midrail:    DefaultMidrail,
		noiseFloor: DefaultNoiseFloor,
		minDelta:   DefaultMinDelta,
		minSamples: DefaultMinSamples,
		armed:      true,
		now:        time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}
	d.Reset()
	return d
}

// shiftIn drops the oldest entry and writes v at index 0.
func shiftIn(h History, v types.RawSample) History {
	copy(h[1:], h[:HistoryLen-1])
	h[0] = v
	return h
}

func filled(v types.RawSample) History {
	var h History
	for i := range h {
		h[i] = v
	}
	return h
}

func sum(h []types.RawSample) uint32 {
	var s uint32
	for _, v := range h {
		s += uint32(v)
	}
	return s
}

// OnSample feeds one raw sample. It returns the accepted strum, if any.
func (d *Detector) OnSample(raw types.RawSample) (types.StrumEvent, bool) {
	if d.sinceStrum == ^uint16(0) {
		d.sinceStrum = 0
	} else {
		d.sinceStrum++
	}
	// Re-arm before the flip check, so a flip on the sample that reaches
	// minSamples is already eligible.
	if d.sinceStrum >= d.minSamples {
		d.armed = true
	}

	if absDiff(raw, d.midrail) <= d.noiseFloor {
		return types.StrumEvent{}, false
	}

	positive := raw >= d.midrail
	if positive {
		if raw > d.peak[0] {
			d.peak = shiftIn(d.peak, raw)
		}
		return types.StrumEvent{}, false
	}
	if d.peak[0] <= d.midrail {
		return types.StrumEvent{}, false
	}

	// Polarity flip.
	d.baseline = shiftIn(d.baseline, types.RawSample(sum(d.peak[:])/HistoryLen))
	// Reference is the mean of the four older baselines; the newest slot holds current.
	reference := types.RawSample(sum(d.baseline[1:]) / (HistoryLen - 1))
	current := d.baseline[0]

	var (
		ev       types.StrumEvent
		accepted bool
	)
	if current > reference+d.minDelta && d.armed {
		ev = types.StrumEvent{ToneID: d.scanFret(), Magnitude: current, At: d.now()}
		accepted = true
		d.armed = false
		d.sinceStrum = 0
	}

	d.peak = filled(d.midrail)
	d.baseline = filled(d.midrail)

	if accepted {
		for _, s := range d.sensors {
			s.InvokeOnStrum(d.componentMetadata, ev)
		}
		d.NotifyLoggers(types.DebugLevel, "Strum accepted",
			"component", d.componentMetadata,
			"event", "OnSample",
			"result", "SUCCESS",
			"tone_id", ev.ToneID,
			"magnitude", int(ev.Magnitude),
			"reference", int(reference),
		)
	}
	return ev, accepted
}

// Reset returns both windows to midrail and re-arms the detector.
func (d *Detector) Reset() {
	d.peak = filled(d.midrail)
	d.baseline = filled(d.midrail)
	d.sinceStrum = 0
	d.armed = true
}

func (d *Detector) scanFret() int {
	if d.fret == nil {
		return 0
	}
	return d.fret.Scan()
}

func absDiff(a, b types.RawSample) types.RawSample {
	if a > b {
		return a - b
	}
	return b - a
}
