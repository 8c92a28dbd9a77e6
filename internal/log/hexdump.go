package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// HexDumper writes labelled hex dumps of encoded values, one per line.
type HexDumper interface {
	Dump(label string, data []byte)
}

type hexDumper struct {
	w  io.Writer
	mu sync.Mutex
}

// NewHexDumper creates a HexDumper. If writer is nil, returns a no-op dumper.
func NewHexDumper(w io.Writer) HexDumper {
	return &hexDumper{w: w}
}

// Dump emits "<label>: <n> bytes, hex: 0a 1b ..." for data.
func (d *hexDumper) Dump(label string, data []byte) {
	if d.w == nil {
		return
	}

	var hexbuf bytes.Buffer
	const hexdigits = "0123456789abcdef"
	for i, b := range data {
		if i > 0 {
			hexbuf.WriteByte(' ')
		}
		hexbuf.WriteByte(hexdigits[b>>4])
		hexbuf.WriteByte(hexdigits[b&0x0f])
	}

	line := fmt.Sprintf("%s: %d bytes, hex: %s\n", label, len(data), hexbuf.String())

	d.mu.Lock()
	_, _ = d.w.Write([]byte(line))
	d.mu.Unlock()
}
