package kafkaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/sensor"
	"github.com/joeydtaylor/strum/pkg/internal/types"
	"github.com/segmentio/kafka-go"
)

// Attach registers callbacks on s that publish engine events.
func (p *Publisher) Attach(s types.Sensor) {
	sensor.RecordTo(s, func(rec types.SessionRecord) { p.Publish(rec) })
}

// Start launches the drain goroutine. Pending records are flushed when ctx
// is done or Stop is called.
func (p *Publisher) Start(ctx context.Context) error {
	if !p.started.CompareAndSwap(false, true) {
		return ErrStarted
	}
	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(runCtx)

	topic, _ := p.effectiveTopic()
	p.NotifyLoggers(types.InfoLevel, "Publisher started",
		"component", p.componentMetadata,
		"event", "Start",
		"result", "SUCCESS",
		"topic", topic,
	)
	return nil
}

// Stop flushes pending records and waits for the drain goroutine.
func (p *Publisher) Stop() {
	if !p.started.CompareAndSwap(true, false) {
		return
	}
	p.cancel()
	<-p.done
	if p.closeOnStop {
		if err := p.producer.Close(); err != nil {
			p.NotifyLoggers(types.WarnLevel, "Producer close failed",
				"component", p.componentMetadata,
				"event", "Stop",
				"result", "FAILURE",
				"error", err,
			)
		}
	}
	p.NotifyLoggers(types.InfoLevel, "Publisher stopped",
		"component", p.componentMetadata,
		"event", "Stop",
		"result", "SUCCESS",
		"published", p.published.Load(),
		"failed", p.failed.Load(),
		"dropped", p.dropped.Load(),
	)
}

func (p *Publisher) encode(rec types.SessionRecord) (kafka.Message, error) {
	val, err := json.Marshal(rec)
	if err != nil {
		return kafka.Message{}, err
	}
	val = append(val, '\n')

	msg := kafka.Message{
		Topic: p.messageTopic(),
		Key:   renderKeyFromTemplate(p.keyTemplate, rec),
		Value: val,
		Time:  time.Unix(0, rec.Timestamp),
	}
	if hdrs := renderHeadersFromTemplates(p.hdrTemplates, rec); len(hdrs) > 0 {
		msg.Headers = make([]kafka.Header, 0, len(hdrs))
		for _, h := range hdrs {
			msg.Headers = append(msg.Headers, kafka.Header{Key: h.Key, Value: []byte(h.Value)})
		}
	}
	return msg, nil
}

func (p *Publisher) run(ctx context.Context) {
	defer close(p.done)

	pending := make([]kafka.Message, 0, p.batchRecords)
	var byteTally int

	flush := func(writeCtx context.Context) {
		if len(pending) == 0 {
			return
		}
		start := p.now()
		err := p.producer.WriteMessages(writeCtx, pending...)
		if err != nil {
			p.failed.Add(uint64(len(pending)))
			p.NotifyLoggers(types.ErrorLevel, "Produce failed",
				"component", p.componentMetadata,
				"event", "Produce",
				"result", "FAILURE",
				"records", len(pending),
				"error", err,
			)
		} else {
			p.published.Add(uint64(len(pending)))
			p.NotifyLoggers(types.DebugLevel, "Batch produced",
				"component", p.componentMetadata,
				"event", "Produce",
				"result", "SUCCESS",
				"records", len(pending),
				"bytes", byteTally,
				"duration", p.now().Sub(start).String(),
			)
		}
		pending = pending[:0]
		byteTally = 0
	}

	drain := func(writeCtx context.Context) {
		for {
			rec, ok := p.queue.Pop()
			if !ok {
				return
			}
			msg, err := p.encode(rec)
			if err != nil {
				p.failed.Add(1)
				p.NotifyLoggers(types.ErrorLevel, "Encode failed",
					"component", p.componentMetadata,
					"event", "Encode",
					"result", "FAILURE",
					"error", fmt.Errorf("kafkaclient: encode %s: %w", rec.Event, err),
				)
				continue
			}
			pending = append(pending, msg)
			byteTally += len(msg.Key) + len(msg.Value)
			if len(pending) >= p.batchRecords || byteTally >= p.batchBytes {
				flush(writeCtx)
			}
		}
	}

	tick := time.NewTicker(p.batchAge)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			final := context.WithoutCancel(ctx)
			drain(final)
			flush(final)
			return
		case <-p.wake:
			drain(ctx)
		case <-tick.C:
			drain(ctx)
			flush(ctx)
		}
	}
}
