package recorder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirSink writes each file under a local directory.
type DirSink struct {
	Dir string
}

func (d DirSink) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("recorder: create %s: %w", d.Dir, err)
	}
	return os.WriteFile(filepath.Join(d.Dir, filepath.Base(name)), data, 0o644)
}
