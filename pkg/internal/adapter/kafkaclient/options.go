package kafkaclient

import (
	"strings"
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/types"
)

// WithTopic sets the topic used when the producer does not carry one.
func WithTopic(topic string) types.Option[*Publisher] {
	return func(p *Publisher) { p.topic = strings.TrimSpace(topic) }
}

// WithKeyTemplate sets the message key template. "{field}" renders a JSON
// field of the record; anything else is used literally.
func WithKeyTemplate(tmpl string) types.Option[*Publisher] {
	return func(p *Publisher) { p.keyTemplate = tmpl }
}

// WithHeaderTemplates replaces the header templates.
func WithHeaderTemplates(tmpls map[string]string) types.Option[*Publisher] {
	return func(p *Publisher) {
		p.hdrTemplates = make(map[string]string, len(tmpls))
		for k, v := range tmpls {
			p.hdrTemplates[k] = v
		}
	}
}

// WithEvents restricts publishing to the named session events.
func WithEvents(events ...string) types.Option[*Publisher] {
	return func(p *Publisher) {
		p.events = make(map[string]struct{}, len(events))
		for _, e := range events {
			p.events[e] = struct{}{}
		}
	}
}

// WithQueueCapacity sets the pending record capacity.
func WithQueueCapacity(n int) types.Option[*Publisher] {
	return func(p *Publisher) {
		if n > 0 {
			p.capacity = n
		}
	}
}

// WithBatch sets the record, byte and age limits for a produce batch.
func WithBatch(records, bytes int, age time.Duration) types.Option[*Publisher] {
	return func(p *Publisher) {
		if records > 0 {
			p.batchRecords = records
		}
		if bytes > 0 {
			p.batchBytes = bytes
		}
		if age > 0 {
			p.batchAge = age
		}
	}
}

// WithCloseOnStop closes the producer when the publisher stops.
func WithCloseOnStop(enabled bool) types.Option[*Publisher] {
	return func(p *Publisher) { p.closeOnStop = enabled }
}

func WithClock(now func() time.Time) types.Option[*Publisher] {
	return func(p *Publisher) {
		if now != nil {
			p.now = now
		}
	}
}

func WithLogger(l ...types.Logger) types.Option[*Publisher] {
	return func(p *Publisher) { p.ConnectLogger(l...) }
}

func WithComponentMetadata(name string, id string) types.Option[*Publisher] {
	return func(p *Publisher) {
		p.componentMetadata.Name = name
		if id != "" {
			p.componentMetadata.ID = id
		}
	}
}
