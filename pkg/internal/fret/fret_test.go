package fret_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/fret"
	"github.com/joeydtaylor/strum/pkg/internal/types"
)

var (
	_ types.FretScanner = fret.Static(0)
	_ types.FretScanner = fret.Func(nil)
	_ types.FretScanner = (*fret.Settable)(nil)
	_ types.FretScanner = (*fret.Poller)(nil)
)

func TestStaticFuncSettable(t *testing.T) {
	if fret.Static(5).Scan() != 5 {
		t.Fatalf("static")
	}
	if fret.Func(func() int { return 9 }).Scan() != 9 {
		t.Fatalf("func")
	}
	var s fret.Settable
	s.Set(12)
	if s.Scan() != 12 {
		t.Fatalf("settable")
	}
}

func TestPollerCachesLatestReading(t *testing.T) {
	var hw atomic.Int64
	hw.Store(3)
	p := fret.NewPoller(func() int { return int(hw.Load()) }, time.Millisecond)

	if p.Scan() != 0 {
		t.Fatalf("expected zero before start")
	}
	p.Start(context.Background())
	defer p.Stop()
	if p.Scan() != 3 {
		t.Fatalf("initial reading = %d", p.Scan())
	}

	hw.Store(8)
	deadline := time.Now().Add(2 * time.Second)
	for p.Scan() != 8 {
		if time.Now().After(deadline) {
			t.Fatalf("poller never observed new fret")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestPollerStopIsIdempotent(t *testing.T) {
	p := fret.NewPoller(func() int { return 1 }, time.Millisecond)
	p.Start(context.Background())
	p.Start(context.Background())
	p.Stop()
	polls := p.Polls()
	time.Sleep(10 * time.Millisecond)
	if p.Polls() != polls {
		t.Fatalf("poller kept running after Stop")
	}
	p.Stop()
}
