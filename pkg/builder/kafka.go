package builder

import (
	"time"

	"github.com/joeydtaylor/strum/pkg/internal/adapter/kafkaclient"
	"github.com/joeydtaylor/strum/pkg/internal/types"
	"github.com/segmentio/kafka-go"
)

type KafkaPublisher = kafkaclient.Publisher

type KafkaProducer = kafkaclient.Producer

// NewKafkaWriter builds a kafka-go writer; compression is gzip, snappy, lz4, zstd or empty.
func NewKafkaWriter(brokers []string, topic string, compression string) *kafka.Writer {
	return kafkaclient.NewWriter(brokers, topic, compression)
}

// NewKafkaPublisher forwards session events to producer.
func NewKafkaPublisher(producer KafkaProducer, options ...types.Option[*KafkaPublisher]) (*KafkaPublisher, error) {
	return kafkaclient.New(producer, options...)
}

func KafkaPublisherWithTopic(topic string) types.Option[*KafkaPublisher] {
	return kafkaclient.WithTopic(topic)
}

// KafkaPublisherWithKeyTemplate sets the key template, e.g. "{tone_id}".
func KafkaPublisherWithKeyTemplate(tmpl string) types.Option[*KafkaPublisher] {
	return kafkaclient.WithKeyTemplate(tmpl)
}

func KafkaPublisherWithHeaderTemplates(tmpls map[string]string) types.Option[*KafkaPublisher] {
	return kafkaclient.WithHeaderTemplates(tmpls)
}

// KafkaPublisherWithEvents restricts publishing to the named session events.
func KafkaPublisherWithEvents(events ...string) types.Option[*KafkaPublisher] {
	return kafkaclient.WithEvents(events...)
}

func KafkaPublisherWithQueueCapacity(n int) types.Option[*KafkaPublisher] {
	return kafkaclient.WithQueueCapacity(n)
}

func KafkaPublisherWithBatch(records, bytes int, age time.Duration) types.Option[*KafkaPublisher] {
	return kafkaclient.WithBatch(records, bytes, age)
}

func KafkaPublisherWithCloseOnStop(enabled bool) types.Option[*KafkaPublisher] {
	return kafkaclient.WithCloseOnStop(enabled)
}

func KafkaPublisherWithLogger(l ...types.Logger) types.Option[*KafkaPublisher] {
	return kafkaclient.WithLogger(l...)
}

func KafkaPublisherWithComponentMetadata(name string, id string) types.Option[*KafkaPublisher] {
	return kafkaclient.WithComponentMetadata(name, id)
}

// Session event names used in record.Event and the default "event" header.
const (
	EventStrum            = types.EventStrum
	EventToneSwitch       = types.EventToneSwitch
	EventPlaybackStart    = types.EventPlaybackStart
	EventPlaybackComplete = types.EventPlaybackComplete
	EventOverrun          = types.EventOverrun
	EventUnderrun         = types.EventUnderrun
	EventStorageError     = types.EventStorageError
	EventCatalogReject    = types.EventCatalogReject
)
