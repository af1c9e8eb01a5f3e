// Package kafkaclient publishes engine session events to a Kafka topic.
//
// Sensor callbacks enqueue records without blocking. A drain goroutine
// encodes them as NDJSON, renders key and header templates per record and
// writes batches through a kafka-go Writer.
package kafkaclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/ringbuffer"
	"github.com/joeydtaylor/strum/pkg/internal/types"
	"github.com/joeydtaylor/strum/pkg/internal/utils"
	"github.com/segmentio/kafka-go"
)

const (
	DefaultQueueCapacity = 1024
	DefaultBatchRecords  = 100
	DefaultBatchBytes    = 1 << 20
	DefaultBatchAge      = 250 * time.Millisecond
	DefaultKeyTemplate   = "{tone_id}"
)

var ErrStarted = errors.New("kafkaclient: publisher already started")

// Producer is the subset of *kafka.Writer the publisher uses.
type Producer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher forwards SessionRecords to Kafka.
type Publisher struct {
	componentMetadata types.ComponentMetadata

	producer     Producer
	topic        string
	keyTemplate  string
	hdrTemplates map[string]string
	events       map[string]struct{}
	capacity     int
	batchRecords int
	batchBytes   int
	batchAge     time.Duration
	closeOnStop  bool
	now          func() time.Time

	queue  *ringbuffer.Ring[types.SessionRecord]
	pushMu sync.Mutex
	wake   chan struct{}

	started atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}

	published atomic.Uint64
	failed    atomic.Uint64
	dropped   atomic.Uint64

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// NewWriter builds a kafka-go Writer for brokers and topic. compression is
// one of gzip, snappy, lz4, zstd or empty for none.
func NewWriter(brokers []string, topic string, compression string) *kafka.Writer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        strings.TrimSpace(topic),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	switch strings.ToLower(strings.TrimSpace(compression)) {
	case "gzip":
		w.Compression = kafka.Gzip
	case "snappy":
		w.Compression = kafka.Snappy
	case "lz4":
		w.Compression = kafka.Lz4
	case "zstd":
		w.Compression = kafka.Zstd
	}
	return w
}

// New builds a publisher over producer.
func New(producer Producer, options ...types.Option[*Publisher]) (*Publisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("kafkaclient: producer is required")
	}
	p := &Publisher{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "KAFKA_PUBLISHER",
		},
		producer:     producer,
		keyTemplate:  DefaultKeyTemplate,
		hdrTemplates: map[string]string{"event": "{event}"},
		capacity:     DefaultQueueCapacity,
		batchRecords: DefaultBatchRecords,
		batchBytes:   DefaultBatchBytes,
		batchAge:     DefaultBatchAge,
		now:          time.Now,
		wake:         make(chan struct{}, 1),
	}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	if _, ok := p.effectiveTopic(); !ok {
		return nil, fmt.Errorf("kafkaclient: topic is required (set WithTopic or use a kafka.Writer with Topic)")
	}
	q, err := ringbuffer.New[types.SessionRecord](p.capacity)
	if err != nil {
		return nil, fmt.Errorf("kafkaclient: queue: %w", err)
	}
	p.queue = q
	return p, nil
}

// effectiveTopic prefers the configured topic, then the writer's own.
func (p *Publisher) effectiveTopic() (string, bool) {
	if t := strings.TrimSpace(p.topic); t != "" {
		return t, true
	}
	if w, ok := p.producer.(*kafka.Writer); ok && w != nil {
		if t := strings.TrimSpace(w.Topic); t != "" {
			return t, true
		}
	}
	return "", false
}

// messageTopic is the topic to set on each message. kafka-go rejects a
// message topic when the writer already carries one.
func (p *Publisher) messageTopic() string {
	if w, ok := p.producer.(*kafka.Writer); ok && w != nil && strings.TrimSpace(w.Topic) != "" {
		return ""
	}
	t, _ := p.effectiveTopic()
	return t
}

// Publish enqueues rec. It reports false when the event is filtered out or
// the queue is full.
func (p *Publisher) Publish(rec types.SessionRecord) bool {
	if len(p.events) > 0 {
		if _, ok := p.events[rec.Event]; !ok {
			return false
		}
	}
	if rec.Timestamp == 0 {
		rec.Timestamp = p.now().UnixNano()
	}
	p.pushMu.Lock()
	ok := p.queue.Push(rec)
	n := p.queue.Len()
	p.pushMu.Unlock()
	if !ok {
		p.dropped.Add(1)
		return false
	}
	if n >= p.batchRecords {
		select {
		case p.wake <- struct{}{}:
		default:
		}
	}
	return true
}

// Published is the number of records written to Kafka.
func (p *Publisher) Published() uint64 { return p.published.Load() }

// Failed is the number of records lost to produce errors.
func (p *Publisher) Failed() uint64 { return p.failed.Load() }

// Dropped is the number of records lost to a full queue.
func (p *Publisher) Dropped() uint64 { return p.dropped.Load() }

func (p *Publisher) GetComponentMetadata() types.ComponentMetadata { return p.componentMetadata }
