package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/joeydtaylor/strum/pkg/internal/types"
)

// MemoryStorage keeps tones in memory. Used for synthetic tone banks and tests.
type MemoryStorage struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemoryStorage returns an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{files: make(map[string][]byte)}
}

// Put stores a copy of data under ref.
func (s *MemoryStorage) Put(ref string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[ref] = append([]byte(nil), data...)
}

// Remove deletes ref. Open handles keep their snapshot.
func (s *MemoryStorage) Remove(ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, ref)
}

// Open returns a handle over the stored bytes.
func (s *MemoryStorage) Open(ctx context.Context, ref string) (types.ToneHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	data, ok := s.files[ref]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return &memoryHandle{data: data}, nil
}

// List returns stored references, sorted.
func (s *MemoryStorage) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.files))
	for k := range s.files {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

type memoryHandle struct {
	data   []byte
	closed atomic.Bool
}

func (h *memoryHandle) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if h.closed.Load() {
		return 0, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n, eof, err := readAtBounds(int64(len(h.data)), p, off)
	if err != nil {
		return 0, err
	}
	copy(p[:n], h.data[off:])
	if eof {
		return n, io.EOF
	}
	return n, nil
}

func (h *memoryHandle) Size() int64 { return int64(len(h.data)) }

func (h *memoryHandle) Close() error {
	h.closed.Store(true)
	return nil
}
