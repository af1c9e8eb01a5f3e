package s3client

import "github.com/joeydtaylor/strum/pkg/internal/types"

// WithTonePrefix sets the key prefix tone refs are resolved under.
func WithTonePrefix(prefix string) types.Option[*Client] {
	return func(c *Client) { c.tonePrefix = prefix }
}

// WithSuffix sets the extension List keeps (case-insensitive). Empty keeps everything.
func WithSuffix(suffix string) types.Option[*Client] {
	return func(c *Client) { c.suffix = suffix }
}

// WithReadAhead sets how many bytes each ranged GET fetches.
func WithReadAhead(n int64) types.Option[*Client] {
	return func(c *Client) {
		if n > 0 {
			c.readAhead = n
		}
	}
}

// WithPreload fetches each tone completely when it is opened.
func WithPreload(on bool) types.Option[*Client] {
	return func(c *Client) { c.preload = on }
}

// WithListPageSize sets ListObjectsV2 MaxKeys.
func WithListPageSize(n int32) types.Option[*Client] {
	return func(c *Client) {
		if n > 0 {
			c.listPageSize = n
		}
	}
}

// WithSessionPrefix sets the key prefix for uploaded session files.
func WithSessionPrefix(prefix string) types.Option[*Client] {
	return func(c *Client) { c.sessionPrefix = prefix }
}

// WithSSE enables server-side encryption: "AES256" or "aws:kms" with an optional key id.
func WithSSE(mode string, kmsKeyID string) types.Option[*Client] {
	return func(c *Client) {
		c.sseMode = mode
		c.kmsKey = kmsKeyID
	}
}

// WithMaxAttempts bounds upload retries.
func WithMaxAttempts(n int) types.Option[*Client] {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithLogger attaches loggers.
func WithLogger(l ...types.Logger) types.Option[*Client] {
	return func(c *Client) { c.ConnectLogger(l...) }
}

// WithComponentMetadata sets the client name and id.
func WithComponentMetadata(name string, id string) types.Option[*Client] {
	return func(c *Client) {
		c.componentMetadata.Name = name
		if id != "" {
			c.componentMetadata.ID = id
		}
	}
}
