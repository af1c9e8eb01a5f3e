package main

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/joeydtaylor/strum/pkg/builder"
)

// Seeds a LocalStack bucket with a tone bank, plays strums against tones
// fetched from S3 and uploads the session as parquet to the same bucket.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := builder.EngineConfigFromEnv()
	log := builder.NewLogger(
		builder.LoggerWithLevel(cfg.LogLevel),
		builder.LoggerWithSampling(time.Second, 5, 100),
	)
	defer func() { _ = log.Flush() }()

	bucket := builder.EnvOr("STRUM_S3_BUCKET", "strum-tones")
	tonePrefix := builder.EnvOr("STRUM_S3_TONE_PREFIX", "bank/guitar/")

	cli, err := builder.NewS3Client(ctx, builder.S3Config{
		Region:         builder.EnvOr("AWS_REGION", "us-east-1"),
		Endpoint:       builder.EnvOr("STRUM_S3_ENDPOINT", "http://localhost:4566"),
		ForcePathStyle: true,
		AccessKey:      builder.EnvOr("AWS_ACCESS_KEY_ID", "test"),
		SecretKey:      builder.EnvOr("AWS_SECRET_ACCESS_KEY", "test"),
		RoleARN:        builder.EnvOr("STRUM_S3_ROLE_ARN", ""),
		SessionName:    "strum-s3-tone-bank",
	})
	if err != nil {
		panic(err)
	}

	if _, err := cli.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)}); err != nil {
		fmt.Printf("create bucket: %v (continuing)\n", err)
	}
	for fret := 0; fret <= 4; fret++ {
		hz := 196.0 * float64(fret+1)
		file, err := builder.EncodeTone(16000, 2, builder.SineTone(16000, 2, hz, 8000, 0.5))
		if err != nil {
			panic(err)
		}
		key := tonePrefix + fmt.Sprintf(cfg.TonePattern, fret)
		if _, err := cli.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(file),
			ContentType: aws.String("audio/wav"),
		}); err != nil {
			panic(err)
		}
	}

	st, err := builder.NewS3Storage(cli, bucket,
		builder.S3StorageWithTonePrefix(tonePrefix),
		builder.S3StorageWithPreload(true),
		builder.S3StorageWithSessionPrefix("sessions/"),
		builder.S3StorageWithLogger(log),
	)
	if err != nil {
		panic(err)
	}

	rec, err := builder.NewSessionRecorder(st,
		builder.RecorderWithRoll(10*time.Second, 10_000),
		builder.RecorderWithCompression("zstd"),
		builder.RecorderWithLogger(log),
	)
	if err != nil {
		panic(err)
	}

	sensor := builder.NewSensor(builder.SensorWithLogger(log))
	rec.Attach(sensor)

	cat, err := builder.BuildCatalog(ctx, st,
		builder.CatalogWithPattern(cfg.TonePattern, cfg.MaxFret),
		builder.CatalogWithDiscovery(),
		builder.CatalogWithSensor(sensor),
		builder.CatalogWithLogger(log),
	)
	if err != nil {
		panic(err)
	}
	defer cat.Close()
	fmt.Printf("catalog: %d tones from s3://%s/%s\n", cat.Len(), bucket, tonePrefix)

	var (
		fretNo  int
		strums  = builder.SynthesizeGestures(cfg.Midrail, builder.Gesture{Amplitude: 280, HalfWidth: 16, Gap: 3000})
		reader  = builder.ReplaySamples(strums, cfg.Midrail, true)
		scanner = builder.FretFunc(func() int {
			fretNo = (fretNo + 1) % 5
			return fretNo
		})
	)

	eng, err := builder.AssembleEngine(cfg, builder.EngineParts{
		Tones:   cat,
		Reader:  reader,
		Fret:    scanner,
		Codec:   builder.NewDACRecorder(),
		Sensors: []builder.Sensor{sensor},
		Loggers: []builder.Logger{log},
	}, builder.EngineWithService(rec))
	if err != nil {
		panic(err)
	}
	if err := eng.Start(ctx); err != nil {
		panic(err)
	}
	time.Sleep(5 * time.Second)
	eng.Stop()

	fmt.Printf("strums=%d recorded=%d files=%d\n", eng.Strums(), rec.Recorded(), rec.Files())
}
