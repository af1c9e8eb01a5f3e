// Package s3client serves tone banks from S3-compatible object storage and
// uploads recorded sessions back to it.
package s3client

import (
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/joeydtaylor/strum/pkg/internal/types"
	"github.com/joeydtaylor/strum/pkg/internal/utils"
)

const (
	DefaultReadAhead = 256 << 10
	DefaultSuffix    = ".wav"
)

// Client is a tone storage backend (ranged GETs with read-ahead) and a
// session sink (PutObject).
type Client struct {
	componentMetadata types.ComponentMetadata

	cli    *s3.Client
	bucket string

	tonePrefix    string
	suffix        string
	readAhead     int64
	preload       bool
	listPageSize  int32
	sessionPrefix string
	contentType   string
	sseMode       string
	kmsKey        string
	maxAttempts   int

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// New builds a client for bucket.
func New(cli *s3.Client, bucket string, options ...types.Option[*Client]) (*Client, error) {
	if cli == nil || bucket == "" {
		return nil, fmt.Errorf("s3client: client and bucket are required")
	}
	c := &Client{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "S3_CLIENT",
		},
		cli:           cli,
		bucket:        bucket,
		suffix:        DefaultSuffix,
		readAhead:     DefaultReadAhead,
		listPageSize:  1000,
		sessionPrefix: "sessions/",
		contentType:   "application/parquet",
		maxAttempts:   defaultMaxAttempts,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Bucket returns the configured bucket.
func (c *Client) Bucket() string { return c.bucket }

// GetComponentMetadata returns the client metadata.
func (c *Client) GetComponentMetadata() types.ComponentMetadata { return c.componentMetadata }

// ConnectLogger attaches loggers.
func (c *Client) ConnectLogger(loggers ...types.Logger) {
	c.loggersLock.Lock()
	defer c.loggersLock.Unlock()
	c.loggers = append(c.loggers, loggers...)
}

// NotifyLoggers sends a structured log message to all attached loggers.
func (c *Client) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	c.loggersLock.Lock()
	loggers := append([]types.Logger(nil), c.loggers...)
	c.loggersLock.Unlock()

	for _, logger := range loggers {
		if logger == nil || logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		default:
			logger.Error(msg, keysAndValues...)
		}
	}
}
