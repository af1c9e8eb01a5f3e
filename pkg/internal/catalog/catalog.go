// Package catalog builds the read-only tone table at startup.
//
// Every candidate asset is opened, its header parsed and validated, and its
// payload clamped to what storage actually holds. Invalid assets are excluded
// and reported; valid ones keep their handle open for the lifetime of the
// catalog so the feeder never has to reopen storage mid-playback.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/joeydtaylor/strum/pkg/internal/types"
	"github.com/joeydtaylor/strum/pkg/internal/utils"
	"github.com/joeydtaylor/strum/pkg/internal/wav"
)

const (
	DefaultPattern = "S1_%d.wav"
	DefaultMaxFret = 20
)

var (
	ErrEmpty   = errors.New("catalog: no playable tones")
	ErrPayload = errors.New("catalog: payload shorter than one frame")
)

// Catalog maps tone ids to validated tones and their open handles.
type Catalog struct {
	componentMetadata types.ComponentMetadata

	pattern  string
	maxFret  int
	refs     map[int]string
	discover bool

	tones    map[int]types.Tone
	handles  map[int]types.ToneHandle
	ids      []int
	rejected map[string]error

	sensors     []types.Sensor
	loggers     []types.Logger
	loggersLock sync.Mutex
}

// Build loads the catalog from st. It fails only when ctx is done or no tone
// survives validation.
func Build(ctx context.Context, st types.ToneStorage, options ...types.Option[*Catalog]) (*Catalog, error) {
	c := &Catalog{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "CATALOG",
		},
		pattern:  DefaultPattern,
		maxFret:  DefaultMaxFret,
		tones:    make(map[int]types.Tone),
		handles:  make(map[int]types.ToneHandle),
		rejected: make(map[string]error),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}

	refs, err := c.candidates(ctx, st)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(refs))
	for id := range refs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			c.Close()
			return nil, err
		}
		ref := refs[id]
		tone, h, err := load(ctx, st, id, ref)
		if err != nil {
			c.reject(ref, err)
			continue
		}
		c.tones[id] = tone
		c.handles[id] = h
		c.ids = append(c.ids, id)
		for _, s := range c.sensors {
			s.InvokeOnCatalogLoad(c.componentMetadata, tone)
		}
		c.NotifyLoggers(types.DebugLevel, "Tone loaded",
			"component", c.componentMetadata,
			"event", "Build",
			"result", "SUCCESS",
			"tone_id", id,
			"tone", tone,
		)
	}

	if len(c.ids) == 0 {
		return nil, fmt.Errorf("%w: %d candidates rejected", ErrEmpty, len(c.rejected))
	}
	c.NotifyLoggers(types.InfoLevel, "Catalog built",
		"component", c.componentMetadata,
		"event", "Build",
		"result", "SUCCESS",
		"tones", len(c.ids),
		"rejected", len(c.rejected),
	)
	return c, nil
}

func (c *Catalog) candidates(ctx context.Context, st types.ToneStorage) (map[int]string, error) {
	if len(c.refs) > 0 {
		out := make(map[int]string, len(c.refs))
		for id, ref := range c.refs {
			out[id] = ref
		}
		return out, nil
	}

	if c.discover {
		names, err := st.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("catalog: list storage: %w", err)
		}
		out := make(map[int]string)
		for _, name := range names {
			if id, ok := matchPattern(c.pattern, name); ok {
				out[id] = name
			}
		}
		return out, nil
	}

	out := make(map[int]string, c.maxFret+1)
	for id := 0; id <= c.maxFret; id++ {
		out[id] = fmt.Sprintf(c.pattern, id)
	}
	return out, nil
}

// matchPattern reports the id encoded in name when name is exactly pattern
// formatted with some non-negative id.
func matchPattern(pattern, name string) (int, bool) {
	var id int
	if _, err := fmt.Sscanf(name, pattern, &id); err != nil || id < 0 {
		return 0, false
	}
	return id, fmt.Sprintf(pattern, id) == name
}

func load(ctx context.Context, st types.ToneStorage, id int, ref string) (types.Tone, types.ToneHandle, error) {
	h, err := st.Open(ctx, ref)
	if err != nil {
		return types.Tone{}, nil, err
	}

	head := make([]byte, wav.HeaderSize)
	n, err := h.ReadAt(ctx, head, 0)
	if n < wav.HeaderSize {
		h.Close()
		if err != nil && n == 0 && h.Size() >= wav.HeaderSize {
			return types.Tone{}, nil, err
		}
		return types.Tone{}, nil, fmt.Errorf("%w: got %d", wav.ErrHeaderSize, n)
	}

	hdr, err := wav.Parse(head)
	if err != nil {
		h.Close()
		return types.Tone{}, nil, err
	}

	payload := hdr.DataSize
	if avail := h.Size() - wav.HeaderSize; avail < int64(payload) {
		payload = uint32(avail)
	}
	payload -= payload % uint32(hdr.BlockAlign)
	if payload == 0 {
		h.Close()
		return types.Tone{}, nil, fmt.Errorf("%w: header declares %d bytes, %d stored", ErrPayload, hdr.DataSize, h.Size()-wav.HeaderSize)
	}

	return types.Tone{
		ID:            id,
		Ref:           ref,
		SampleRate:    hdr.SampleRate,
		Channels:      hdr.NumChannels,
		BitsPerSample: hdr.BitsPerSample,
		BlockAlign:    hdr.BlockAlign,
		PayloadSize:   payload,
		DataOffset:    wav.HeaderSize,
	}, h, nil
}

func (c *Catalog) reject(ref string, err error) {
	c.rejected[ref] = err
	for _, s := range c.sensors {
		s.InvokeOnCatalogReject(c.componentMetadata, ref, err)
	}
	c.NotifyLoggers(types.WarnLevel, "Tone rejected",
		"component", c.componentMetadata,
		"event", "Build",
		"result", "FAILURE",
		"ref", ref,
		"error", err,
	)
}

// Tone returns the tone registered under id.
func (c *Catalog) Tone(id int) (types.Tone, bool) {
	t, ok := c.tones[id]
	return t, ok
}

// Handle returns the open storage handle for id.
func (c *Catalog) Handle(id int) (types.ToneHandle, bool) {
	h, ok := c.handles[id]
	return h, ok
}

// IDs returns the loaded ids in ascending order.
func (c *Catalog) IDs() []int { return append([]int(nil), c.ids...) }

// Len is the number of playable tones.
func (c *Catalog) Len() int { return len(c.ids) }

// Rejected returns the excluded refs and why.
func (c *Catalog) Rejected() map[string]error {
	out := make(map[string]error, len(c.rejected))
	for k, v := range c.rejected {
		out[k] = v
	}
	return out
}

// Close releases every handle.
func (c *Catalog) Close() error {
	var errs []error
	for _, h := range c.handles {
		if err := h.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// GetComponentMetadata returns the catalog metadata.
func (c *Catalog) GetComponentMetadata() types.ComponentMetadata { return c.componentMetadata }

// ConnectLogger attaches loggers.
func (c *Catalog) ConnectLogger(loggers ...types.Logger) {
	c.loggersLock.Lock()
	defer c.loggersLock.Unlock()
	c.loggers = append(c.loggers, loggers...)
}

// NotifyLoggers sends a structured log message to all attached loggers.
func (c *Catalog) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	c.loggersLock.Lock()
	loggers := append([]types.Logger(nil), c.loggers...)
	c.loggersLock.Unlock()

	for _, logger := range loggers {
		if logger == nil || logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		default:
			logger.Error(msg, keysAndValues...)
		}
	}
}
