package recorder

import (
	"bytes"
	"errors"
	"io"

	"github.com/joeydtaylor/strum/pkg/internal/types"
	parquet "github.com/parquet-go/parquet-go"
)

// ReadFile decodes every row of a session file.
func ReadFile(data []byte) ([]types.SessionRecord, error) {
	gr := parquet.NewGenericReader[types.SessionRecord](bytes.NewReader(data))
	defer gr.Close()

	out := make([]types.SessionRecord, 0, gr.NumRows())
	batch := make([]types.SessionRecord, 256)
	for {
		n, err := gr.Read(batch)
		if n > 0 {
			out = append(out, batch[:n]...)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
