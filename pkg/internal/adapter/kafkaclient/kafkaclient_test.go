package kafkaclient

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/sensor"
	"github.com/joeydtaylor/strum/pkg/internal/types"
	"github.com/segmentio/kafka-go"
)

type fakeProducer struct {
	mu      sync.Mutex
	batches [][]kafka.Message
	err     error
	closed  bool
}

func (f *fakeProducer) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, append([]kafka.Message(nil), msgs...))
	return nil
}

func (f *fakeProducer) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

func (f *fakeProducer) messages() []kafka.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []kafka.Message
	for _, b := range f.batches {
		out = append(out, b...)
	}
	return out
}

func (f *fakeProducer) batchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

func TestRenderKeyFromTemplateField(t *testing.T) {
	rec := types.SessionRecord{Event: types.EventStrum, ToneID: 7}
	if key := renderKeyFromTemplate("{tone_id}", rec); string(key) != "7" {
		t.Fatalf("expected key to render from field, got %q", key)
	}
}

func TestRenderKeyFromTemplateLiteral(t *testing.T) {
	if key := renderKeyFromTemplate("static-key", types.SessionRecord{}); string(key) != "static-key" {
		t.Fatalf("expected literal key, got %q", key)
	}
	if key := renderKeyFromTemplate("  ", types.SessionRecord{}); key != nil {
		t.Fatalf("expected nil key, got %q", key)
	}
}

func TestRenderHeadersFromTemplates(t *testing.T) {
	rec := types.SessionRecord{Event: types.EventOverrun, ToneID: -1}
	headers := renderHeadersFromTemplates(map[string]string{
		"source": "strum",
		"event":  "{event}",
		"tone":   "{tone_id}",
	}, rec)
	if len(headers) != 3 {
		t.Fatalf("expected 3 headers, got %d", len(headers))
	}
	want := []header{{"event", "overrun"}, {"source", "strum"}, {"tone", "-1"}}
	for i, h := range headers {
		if h != want[i] {
			t.Fatalf("header %d = %+v, want %+v", i, h, want[i])
		}
	}
}

func TestRenderFieldFromValueRejectsInvalidPlaceholder(t *testing.T) {
	if _, ok := renderFieldFromValue(types.SessionRecord{}, "tone_id"); ok {
		t.Fatal("expected bare field name to be rejected")
	}
	if _, ok := renderFieldFromValue(types.SessionRecord{}, "{missing}"); ok {
		t.Fatal("expected unknown field to be rejected")
	}
}

func TestNewRequiresTopic(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil producer")
	}
	if _, err := New(&fakeProducer{}); err == nil {
		t.Fatal("expected error without a topic")
	}
	if _, err := New(&kafka.Writer{Topic: "strums"}); err != nil {
		t.Fatalf("writer topic should satisfy New: %v", err)
	}
}

func TestMessageTopicDefersToWriter(t *testing.T) {
	p, err := New(&kafka.Writer{Topic: "strums"}, WithTopic("other"))
	if err != nil {
		t.Fatal(err)
	}
	if got := p.messageTopic(); got != "" {
		t.Fatalf("message topic = %q, want empty when writer has a topic", got)
	}
	p, _ = New(&fakeProducer{}, WithTopic("strums"))
	if got := p.messageTopic(); got != "strums" {
		t.Fatalf("message topic = %q", got)
	}
}

func TestNewWriterCompression(t *testing.T) {
	w := NewWriter([]string{"127.0.0.1:9092"}, " strums ", "ZSTD")
	if w.Topic != "strums" || w.Compression != kafka.Zstd {
		t.Fatalf("writer = topic %q compression %v", w.Topic, w.Compression)
	}
	if w := NewWriter([]string{"b:9092"}, "t", ""); w.Compression != 0 {
		t.Fatalf("expected no compression, got %v", w.Compression)
	}
}

func TestPublishFlushesOnStop(t *testing.T) {
	prod := &fakeProducer{}
	p, err := New(prod, WithTopic("strums"), WithBatch(100, 0, time.Hour), WithCloseOnStop(true))
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := p.Start(context.Background()); !errors.Is(err, ErrStarted) {
		t.Fatalf("second Start err = %v", err)
	}

	at := time.Unix(0, 1234)
	p.Publish(types.SessionRecord{Timestamp: at.UnixNano(), Event: types.EventStrum, ToneID: 4, Magnitude: 300})
	p.Publish(types.SessionRecord{Event: types.EventPlaybackComplete, ToneID: 4, Count: 512})
	p.Stop()
	p.Stop()

	msgs := prod.messages()
	if len(msgs) != 2 || p.Published() != 2 {
		t.Fatalf("published %d messages (counter %d)", len(msgs), p.Published())
	}
	m := msgs[0]
	if m.Topic != "strums" || string(m.Key) != "4" || !m.Time.Equal(at) {
		t.Fatalf("message = topic %q key %q time %v", m.Topic, m.Key, m.Time)
	}
	if len(m.Headers) != 1 || m.Headers[0].Key != "event" || string(m.Headers[0].Value) != "strum" {
		t.Fatalf("headers = %+v", m.Headers)
	}
	var rec types.SessionRecord
	if err := json.Unmarshal(m.Value, &rec); err != nil {
		t.Fatal(err)
	}
	if rec.Magnitude != 300 || m.Value[len(m.Value)-1] != '\n' {
		t.Fatalf("value = %q", m.Value)
	}
	if msgs[1].Time.IsZero() {
		t.Fatal("expected unstamped record to receive a timestamp")
	}
	if !prod.closed {
		t.Fatal("expected producer to be closed")
	}
}

func TestPublishBatchesByRecordCount(t *testing.T) {
	prod := &fakeProducer{}
	p, _ := New(prod, WithTopic("strums"), WithBatch(2, 0, time.Hour))
	if err := p.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		p.Publish(types.SessionRecord{Event: types.EventUnderrun, ToneID: int32(i)})
	}

	deadline := time.Now().Add(2 * time.Second)
	for prod.batchCount() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	p.Stop()
	if got := len(prod.messages()); got != 4 {
		t.Fatalf("published %d, want 4", got)
	}
	if prod.batchCount() < 2 {
		t.Fatalf("expected full batches before Stop, got %d", prod.batchCount())
	}
}

func TestPublishFiltersEvents(t *testing.T) {
	p, _ := New(&fakeProducer{}, WithTopic("strums"), WithEvents(types.EventStrum))
	if p.Publish(types.SessionRecord{Event: types.EventUnderrun}) {
		t.Fatal("filtered event should not be queued")
	}
	if !p.Publish(types.SessionRecord{Event: types.EventStrum}) {
		t.Fatal("strum event should be queued")
	}
}

func TestPublishDropsWhenQueueFull(t *testing.T) {
	p, _ := New(&fakeProducer{}, WithTopic("strums"), WithQueueCapacity(2))
	for i := 0; i < 5; i++ {
		p.Publish(types.SessionRecord{Event: types.EventStrum})
	}
	if p.Dropped() == 0 {
		t.Fatal("expected drops with an unstarted publisher")
	}
}

func TestProduceErrorCountsFailures(t *testing.T) {
	prod := &fakeProducer{err: errors.New("broker down")}
	p, _ := New(prod, WithTopic("strums"))
	_ = p.Start(context.Background())
	p.Publish(types.SessionRecord{Event: types.EventStrum})
	p.Stop()
	if p.Failed() != 1 || p.Published() != 0 {
		t.Fatalf("failed %d published %d", p.Failed(), p.Published())
	}
}

func TestAttachPublishesSensorEvents(t *testing.T) {
	prod := &fakeProducer{}
	p, _ := New(prod, WithTopic("strums"))
	s := sensor.NewSensor()
	p.Attach(s)
	_ = p.Start(context.Background())

	meta := types.ComponentMetadata{Type: "ONSET_DETECTOR"}
	s.InvokeOnStrum(meta, types.StrumEvent{ToneID: 2, Magnitude: 200, At: time.Now()})
	s.InvokeOnOverrun(meta, 2, 16)
	p.Stop()

	msgs := prod.messages()
	if len(msgs) != 2 {
		t.Fatalf("published %d, want 2", len(msgs))
	}
	if string(msgs[1].Headers[0].Value) != types.EventOverrun {
		t.Fatalf("second event header = %q", msgs[1].Headers[0].Value)
	}
}
