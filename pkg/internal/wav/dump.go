package wav

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
)

// DumpFormat selects the number rendering used by Dump.
type DumpFormat int

const (
	DumpDecimal DumpFormat = iota
	DumpHex
)

// Dump writes the header fields followed by the payload bytes as a
// comma-separated list, perLine values per row.
func Dump(w io.Writer, file []byte, format DumpFormat, perLine int) error {
	h, err := Parse(file)
	if err != nil {
		return err
	}
	if perLine <= 0 {
		perLine = 16
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# channels=%d sample_rate=%d byte_rate=%d block_align=%d bits=%d data_size=%d\n",
		h.NumChannels, h.SampleRate, h.ByteRate, h.BlockAlign, h.BitsPerSample, h.DataSize)

	payload := file[HeaderSize:]
	if uint32(len(payload)) > h.DataSize {
		payload = payload[:h.DataSize]
	}

	buf := make([]byte, 0, 8)
	for i, v := range payload {
		buf = buf[:0]
		if format == DumpHex {
			buf = append(buf, "0x"...)
			if v < 0x10 {
				buf = append(buf, '0')
			}
			buf = strconv.AppendUint(buf, uint64(v), 16)
		} else {
			buf = strconv.AppendUint(buf, uint64(v), 10)
		}
		bw.Write(buf)
		switch {
		case i == len(payload)-1:
			bw.WriteByte('\n')
		case (i+1)%perLine == 0:
			bw.WriteString(",\n")
		default:
			bw.WriteString(", ")
		}
	}
	return bw.Flush()
}

// Samples decodes the payload of a parsed file into interleaved int16 samples.
func Samples(file []byte) (Header, []int16, error) {
	h, err := Parse(file)
	if err != nil {
		return h, nil, err
	}
	payload := file[HeaderSize:]
	if uint32(len(payload)) > h.DataSize {
		payload = payload[:h.DataSize]
	}
	out := make([]int16, len(payload)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(payload[i*2:]))
	}
	return h, out, nil
}
