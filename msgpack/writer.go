package msgpack

import (
	"encoding/binary"
	"io"

	"github.com/nvimbind/nvimgen/errors"
)

// Writer wraps an io.Writer with the fixed-width big-endian writes the
// wire encoding uses. Write failures surface as transport errors.
type Writer struct {
	w   io.Writer
	n   int
	buf [9]byte
}

// NewWriter creates a new Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Written returns the number of bytes written so far.
func (w *Writer) Written() int {
	return w.n
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) error {
	w.buf[0] = b
	return w.write(w.buf[:1])
}

// Bytes writes a byte slice.
func (w *Writer) Bytes(data []byte) error {
	return w.write(data)
}

// MarkerU8 writes a marker byte followed by one unsigned byte.
func (w *Writer) MarkerU8(m byte, v uint8) error {
	w.buf[0] = m
	w.buf[1] = v
	return w.write(w.buf[:2])
}

// MarkerU16 writes a marker byte followed by a big-endian uint16.
func (w *Writer) MarkerU16(m byte, v uint16) error {
	w.buf[0] = m
	binary.BigEndian.PutUint16(w.buf[1:3], v)
	return w.write(w.buf[:3])
}

// MarkerU32 writes a marker byte followed by a big-endian uint32.
func (w *Writer) MarkerU32(m byte, v uint32) error {
	w.buf[0] = m
	binary.BigEndian.PutUint32(w.buf[1:5], v)
	return w.write(w.buf[:5])
}

// MarkerU64 writes a marker byte followed by a big-endian uint64.
func (w *Writer) MarkerU64(m byte, v uint64) error {
	w.buf[0] = m
	binary.BigEndian.PutUint64(w.buf[1:9], v)
	return w.write(w.buf[:9])
}

// U64 writes a bare big-endian uint64 with no marker.
func (w *Writer) U64(v uint64) error {
	binary.BigEndian.PutUint64(w.buf[:8], v)
	return w.write(w.buf[:8])
}

func (w *Writer) write(data []byte) error {
	n, err := w.w.Write(data)
	w.n += n
	if err != nil {
		return errors.Transport(errors.PhaseEncode, "write failed", err)
	}
	return nil
}
