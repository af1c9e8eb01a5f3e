package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/joeydtaylor/strum/pkg/internal/types"
)

// FileStorage serves tones from a directory.
type FileStorage struct {
	root   string
	suffix string
}

// NewFileStorage returns storage rooted at dir. List reports files ending in
// suffix (".wav" when empty).
func NewFileStorage(dir string, suffix string) *FileStorage {
	if suffix == "" {
		suffix = ".wav"
	}
	return &FileStorage{root: filepath.Clean(dir), suffix: strings.ToLower(suffix)}
}

// Open opens ref relative to the storage root.
func (s *FileStorage) Open(ctx context.Context, ref string) (types.ToneHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		return nil, fmt.Errorf("storage: open %s: %w", ref, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("storage: stat %s: %w", ref, err)
	}
	return &fileHandle{f: f, size: st.Size()}, nil
}

// List returns matching file names under the root, sorted.
func (s *FileStorage) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("storage: list %s: %w", s.root, err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || e.Type()&fs.ModeSymlink != 0 {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), s.suffix) {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *FileStorage) resolve(ref string) (string, error) {
	if ref == "" || filepath.IsAbs(ref) {
		return "", fmt.Errorf("%w: %q", ErrInvalid, ref)
	}
	path := filepath.Join(s.root, filepath.Clean(ref))
	rel, err := filepath.Rel(s.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q escapes storage root", ErrInvalid, ref)
	}
	return path, nil
}

type fileHandle struct {
	f      *os.File
	size   int64
	closed atomic.Bool
}

func (h *fileHandle) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if h.closed.Load() {
		return 0, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return h.f.ReadAt(p, off)
}

func (h *fileHandle) Size() int64 { return h.size }

func (h *fileHandle) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return nil
	}
	return h.f.Close()
}
