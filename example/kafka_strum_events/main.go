package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joeydtaylor/strum/pkg/builder"
)

func splitCSV(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Publishes strum and playback events to Kafka while a synthetic sensor
// strums a small in-memory tone bank.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg := builder.EngineConfigFromEnv()
	log := builder.NewLogger(
		builder.LoggerWithLevel(cfg.LogLevel),
		builder.LoggerWithSampling(time.Second, 5, 100),
	)
	defer func() { _ = log.Flush() }()

	brokers := splitCSV(builder.EnvOr("STRUM_KAFKA_BROKERS", "127.0.0.1:9092"))
	topic := builder.EnvOr("STRUM_KAFKA_TOPIC", "strum-events")

	kw := builder.NewKafkaWriter(brokers, topic, builder.EnvOr("STRUM_KAFKA_COMPRESSION", "snappy"))
	pub, err := builder.NewKafkaPublisher(kw,
		builder.KafkaPublisherWithKeyTemplate("{tone_id}"),
		builder.KafkaPublisherWithHeaderTemplates(map[string]string{
			"event":  "{event}",
			"source": "strum-sim",
		}),
		builder.KafkaPublisherWithEvents(builder.EventStrum, builder.EventPlaybackStart, builder.EventPlaybackComplete, builder.EventStorageError),
		builder.KafkaPublisherWithBatch(50, 0, 200*time.Millisecond),
		builder.KafkaPublisherWithCloseOnStop(true),
		builder.KafkaPublisherWithLogger(log),
	)
	if err != nil {
		panic(err)
	}

	meter := builder.NewMeter(builder.MeterWithLogger(log))
	sensor := builder.NewSensor(builder.SensorWithMeter(meter))
	pub.Attach(sensor)

	st := builder.NewMemoryStorage()
	for fret := 0; fret < 3; fret++ {
		file, err := builder.EncodeTone(8000, 1, builder.SineTone(8000, 1, 220*float64(fret+1), 2000, 0.5))
		if err != nil {
			panic(err)
		}
		st.Put(fmt.Sprintf(cfg.TonePattern, fret), file)
	}
	cat, err := builder.BuildCatalog(ctx, st, builder.CatalogWithDiscovery(), builder.CatalogWithSensor(sensor))
	if err != nil {
		panic(err)
	}
	defer cat.Close()

	var tick int
	poller := builder.NewFretPoller(func() int {
		tick++
		return (tick / 200) % 3
	}, 5*time.Millisecond)

	eng, err := builder.AssembleEngine(cfg, builder.EngineParts{
		Tones:   cat,
		Reader:  builder.ReplaySamples(builder.SynthesizeGestures(cfg.Midrail, builder.Gesture{Amplitude: 260, HalfWidth: 12, Gap: 2500}), cfg.Midrail, true),
		Fret:    poller,
		Codec:   builder.NewDACRecorder(),
		Sensors: []builder.Sensor{sensor},
		Loggers: []builder.Logger{log},
	},
		builder.EngineWithService(pub),
		builder.EngineWithFretPoller(poller),
	)
	if err != nil {
		panic(err)
	}
	if err := eng.Start(ctx); err != nil {
		panic(err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(10 * time.Second):
	}
	eng.Stop()

	fmt.Printf("strums=%d published=%d failed=%d dropped=%d\n", eng.Strums(), pub.Published(), pub.Failed(), pub.Dropped())
	fmt.Printf("strum_count=%d\n", meter.GetMetricCount(builder.MetricStrumCount))
}
