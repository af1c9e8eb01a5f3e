package s3client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3api "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/joeydtaylor/strum/pkg/internal/storage"
	"github.com/joeydtaylor/strum/pkg/internal/types"
)

func (c *Client) key(ref string) string { return c.tonePrefix + ref }

func notFound(err error) bool {
	var nf *s3types.NotFound
	var nsk *s3types.NoSuchKey
	if errors.As(err, &nf) || errors.As(err, &nsk) {
		return true
	}
	var status interface{ HTTPStatusCode() int }
	return errors.As(err, &status) && status.HTTPStatusCode() == http.StatusNotFound
}

// Open resolves ref under the tone prefix and returns a positional handle.
func (c *Client) Open(ctx context.Context, ref string) (types.ToneHandle, error) {
	if ref == "" || strings.Contains(ref, "..") {
		return nil, fmt.Errorf("%w: %q", storage.ErrInvalid, ref)
	}
	key := c.key(ref)

	head, err := c.cli.HeadObject(ctx, &s3api.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("%w: s3://%s/%s", storage.ErrNotFound, c.bucket, key)
		}
		return nil, fmt.Errorf("s3client: head %s: %w", key, err)
	}

	h := &objectHandle{c: c, key: key, size: aws.ToInt64(head.ContentLength)}
	if c.preload && h.size > 0 {
		if err := h.fill(ctx, 0, h.size); err != nil {
			return nil, err
		}
	}
	c.NotifyLoggers(types.DebugLevel, "Tone object opened",
		"component", c.componentMetadata,
		"event", "Open",
		"result", "SUCCESS",
		"key", key,
		"size", h.size,
	)
	return h, nil
}

// List returns tone refs (keys relative to the tone prefix) in sorted order.
func (c *Client) List(ctx context.Context) ([]string, error) {
	p := s3api.NewListObjectsV2Paginator(c.cli, &s3api.ListObjectsV2Input{
		Bucket:  aws.String(c.bucket),
		Prefix:  aws.String(c.tonePrefix),
		MaxKeys: aws.Int32(c.listPageSize),
	})

	var refs []string
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3client: list %s: %w", c.tonePrefix, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			ref := strings.TrimPrefix(key, c.tonePrefix)
			if ref == "" || strings.Contains(ref, "/") {
				continue
			}
			if c.suffix != "" && !strings.HasSuffix(strings.ToLower(ref), strings.ToLower(c.suffix)) {
				continue
			}
			refs = append(refs, ref)
		}
	}
	sort.Strings(refs)
	return refs, nil
}

// objectHandle serves ReadAt from a cached window, fetching a new window
// with a ranged GET on a miss.
type objectHandle struct {
	c    *Client
	key  string
	size int64

	mu     sync.Mutex
	closed bool
	start  int64
	window []byte
}

func (h *objectHandle) Size() int64 { return h.size }

func (h *objectHandle) Close() error {
	h.mu.Lock()
	h.closed = true
	h.window = nil
	h.mu.Unlock()
	return nil
}

func (h *objectHandle) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, storage.ErrInvalid
	}
	if off >= h.size {
		return 0, io.EOF
	}
	want := int64(len(p))
	if remain := h.size - off; want > remain {
		want = remain
	}

	h.mu.Lock()
	closed := h.closed
	cached := off >= h.start && off+want <= h.start+int64(len(h.window))
	h.mu.Unlock()
	if closed {
		return 0, storage.ErrClosed
	}

	if !cached {
		n := h.c.readAhead
		if n < want {
			n = want
		}
		if off+n > h.size {
			n = h.size - off
		}
		if err := h.fill(ctx, off, n); err != nil {
			return 0, err
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0, storage.ErrClosed
	}
	if off < h.start || off >= h.start+int64(len(h.window)) {
		return 0, fmt.Errorf("s3client: window moved while reading %s", h.key)
	}
	n := copy(p[:want], h.window[off-h.start:])
	if int64(n) < int64(len(p)) {
		return n, io.EOF
	}
	return n, nil
}

func (h *objectHandle) fill(ctx context.Context, off, n int64) error {
	out, err := h.c.cli.GetObject(ctx, &s3api.GetObjectInput{
		Bucket: aws.String(h.c.bucket),
		Key:    aws.String(h.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, off+n-1)),
	})
	if err != nil {
		if notFound(err) {
			return fmt.Errorf("%w: s3://%s/%s", storage.ErrNotFound, h.c.bucket, h.key)
		}
		return fmt.Errorf("s3client: get %s [%d,+%d): %w", h.key, off, n, err)
	}
	defer out.Body.Close()

	buf := make([]byte, n)
	got, err := io.ReadFull(out.Body, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("s3client: read %s: %w", h.key, err)
	}

	h.mu.Lock()
	h.start = off
	h.window = buf[:got]
	h.mu.Unlock()

	h.c.NotifyLoggers(types.DebugLevel, "Tone window fetched",
		"component", h.c.componentMetadata,
		"event", "ReadAt",
		"result", "SUCCESS",
		"key", h.key,
		"offset", off,
		"bytes", got,
	)
	return nil
}
