package s3client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3api "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/joeydtaylor/strum/pkg/internal/types"
)

const (
	defaultMaxAttempts = 4
	defaultBaseBackoff = 100 * time.Millisecond
	defaultMaxBackoff  = 2 * time.Second
)

func backoffDuration(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := defaultBaseBackoff << (attempt - 1)
	if d > defaultMaxBackoff {
		d = defaultMaxBackoff
	}
	return time.Duration(rand.Int63n(int64(d) + 1))
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "throttl"),
		strings.Contains(msg, "slowdown"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "tempor"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "eof"),
		strings.Contains(msg, "internalerror"),
		strings.Contains(msg, "service unavailable"),
		strings.Contains(msg, "503"),
		strings.Contains(msg, "500"):
		return true
	default:
		return false
	}
}

// Put uploads a session file under the session prefix. It satisfies
// recorder.Sink.
func (c *Client) Put(ctx context.Context, name string, data []byte) error {
	key := c.sessionPrefix + name
	put := &s3api.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(c.contentType),
	}
	switch strings.ToLower(c.sseMode) {
	case "aes256":
		put.ServerSideEncryption = s3types.ServerSideEncryptionAes256
	case "aws:kms":
		put.ServerSideEncryption = s3types.ServerSideEncryptionAwsKms
		if c.kmsKey != "" {
			put.SSEKMSKeyId = aws.String(c.kmsKey)
		}
	}

	dur, err := c.putWithRetry(ctx, put, key)
	if err != nil {
		return err
	}
	c.NotifyLoggers(types.InfoLevel, "Session uploaded",
		"component", c.componentMetadata,
		"event", "Put",
		"result", "SUCCESS",
		"key", key,
		"bytes", len(data),
		"duration", dur.String(),
	)
	return nil
}

func (c *Client) putWithRetry(ctx context.Context, put *s3api.PutObjectInput, key string) (time.Duration, error) {
	rs, ok := put.Body.(io.ReadSeeker)
	if !ok {
		return 0, fmt.Errorf("s3client: putWithRetry requires io.ReadSeeker body")
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return 0, err
		}
		start := time.Now()
		_, err := c.cli.PutObject(ctx, put)
		dur := time.Since(start)
		if err == nil {
			return dur, nil
		}
		lastErr = err
		c.NotifyLoggers(types.WarnLevel, "Session upload attempt failed",
			"component", c.componentMetadata,
			"event", "Put",
			"result", "FAILURE",
			"key", key,
			"attempt", attempt,
			"error", err,
		)
		if !isRetryable(err) || attempt == c.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(backoffDuration(attempt)):
		}
	}
	return 0, fmt.Errorf("s3client: put %s: %w", key, lastErr)
}
