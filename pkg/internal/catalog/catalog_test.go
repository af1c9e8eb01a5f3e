package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/joeydtaylor/strum/pkg/internal/catalog"
	"github.com/joeydtaylor/strum/pkg/internal/meter"
	"github.com/joeydtaylor/strum/pkg/internal/sensor"
	"github.com/joeydtaylor/strum/pkg/internal/storage"
	"github.com/joeydtaylor/strum/pkg/internal/types"
	"github.com/joeydtaylor/strum/pkg/internal/wav"
)

func tone(t *testing.T, channels uint16, frames int) []byte {
	t.Helper()
	b, err := wav.EncodePCM16(8000, channels, wav.Sine(8000, channels, 440, frames, 0.5))
	if err != nil {
		t.Fatalf("EncodePCM16: %v", err)
	}
	return b
}

func bank(t *testing.T) *storage.MemoryStorage {
	t.Helper()
	st := storage.NewMemoryStorage()
	st.Put("S1_0.wav", tone(t, 2, 512))
	st.Put("S1_1.wav", tone(t, 1, 100))

	bad := tone(t, 2, 16)
	copy(bad[0:4], "RIFX")
	st.Put("S1_2.wav", bad)

	// Header declares 512 frames but only 250 stereo frames plus one stray byte are stored.
	short := tone(t, 2, 512)
	st.Put("S1_3.wav", short[:wav.HeaderSize+1001])

	st.Put("notes.txt", []byte("not a tone"))
	return st
}

func TestBuildLoadsValidTones(t *testing.T) {
	ctx := context.Background()
	c, err := catalog.Build(ctx, bank(t), catalog.WithPattern(catalog.DefaultPattern, 4))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer c.Close()

	ids := c.IDs()
	if len(ids) != 3 || ids[0] != 0 || ids[1] != 1 || ids[2] != 3 {
		t.Fatalf("IDs = %v", ids)
	}

	t0, ok := c.Tone(0)
	if !ok {
		t.Fatal("tone 0 missing")
	}
	if t0.Channels != 2 || t0.BlockAlign != 4 || t0.PayloadSize != 2048 || t0.DataOffset != wav.HeaderSize || t0.SampleRate != 8000 {
		t.Fatalf("tone 0 = %+v", t0)
	}
	if t0.Ref != "S1_0.wav" || t0.ID != 0 {
		t.Fatalf("tone 0 identity = %+v", t0)
	}

	t3, _ := c.Tone(3)
	if t3.PayloadSize != 1000 {
		t.Fatalf("expected payload clamped to whole stored frames, got %d", t3.PayloadSize)
	}

	if _, ok := c.Handle(1); !ok {
		t.Fatal("handle for tone 1 missing")
	}
	if _, ok := c.Tone(2); ok {
		t.Fatal("invalid tone was loaded")
	}

	rej := c.Rejected()
	if !errors.Is(rej["S1_2.wav"], wav.ErrChunkID) {
		t.Fatalf("S1_2 reject = %v", rej["S1_2.wav"])
	}
	if !errors.Is(rej["S1_4.wav"], storage.ErrNotFound) {
		t.Fatalf("S1_4 reject = %v", rej["S1_4.wav"])
	}
}

func TestBuildDiscovery(t *testing.T) {
	c, err := catalog.Build(context.Background(), bank(t), catalog.WithDiscovery())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer c.Close()
	if c.Len() != 3 {
		t.Fatalf("Len = %d", c.Len())
	}
	if _, ok := c.Rejected()["notes.txt"]; ok {
		t.Fatal("non-matching ref was considered")
	}
	if len(c.Rejected()) != 1 {
		t.Fatalf("Rejected = %v", c.Rejected())
	}
}

func TestBuildExplicitRefs(t *testing.T) {
	st := bank(t)
	c, err := catalog.Build(context.Background(), st, catalog.WithRefs(map[int]string{9: "S1_1.wav"}))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer c.Close()
	tn, ok := c.Tone(9)
	if !ok || tn.Ref != "S1_1.wav" || tn.Channels != 1 || tn.PayloadSize != 200 {
		t.Fatalf("tone 9 = %+v %v", tn, ok)
	}
}

func TestBuildEmpty(t *testing.T) {
	st := storage.NewMemoryStorage()
	st.Put("S1_0.wav", []byte("short"))
	_, err := catalog.Build(context.Background(), st, catalog.WithPattern("", 0))
	if !errors.Is(err, catalog.ErrEmpty) {
		t.Fatalf("err = %v", err)
	}
}

func TestBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := catalog.Build(ctx, bank(t)); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestBuildReportsToSensor(t *testing.T) {
	m := meter.NewMeter()
	var loaded, rejected []string
	s := sensor.NewSensor(
		sensor.WithMeter(m),
		sensor.WithOnCatalogLoadFunc(func(_ types.ComponentMetadata, tn types.Tone) { loaded = append(loaded, tn.Ref) }),
		sensor.WithOnCatalogRejectFunc(func(_ types.ComponentMetadata, ref string, _ error) { rejected = append(rejected, ref) }),
	)
	c, err := catalog.Build(context.Background(), bank(t), catalog.WithPattern(catalog.DefaultPattern, 3), catalog.WithSensor(s))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer c.Close()

	if len(loaded) != 3 || len(rejected) != 1 || rejected[0] != "S1_2.wav" {
		t.Fatalf("loaded %v rejected %v", loaded, rejected)
	}
	if got := m.GetMetricCount(types.MetricCatalogToneCount); got != 3 {
		t.Fatalf("catalog tone metric = %d", got)
	}
	if got := m.GetMetricCount(types.MetricCatalogRejectCount); got != 1 {
		t.Fatalf("catalog reject metric = %d", got)
	}
}
