package msgpack

import (
	"encoding/binary"
	"io"

	"github.com/nvimbind/nvimgen/errors"
)

// Reader wraps an io.Reader with position tracking and the fixed-width
// big-endian reads the wire encoding uses. Short reads surface as
// truncated errors carrying the stream position.
type Reader struct {
	r   io.Reader
	pos int
	buf [8]byte
}

// NewReader creates a new Reader wrapping the given io.Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(r.r, r.buf[:1]); err != nil {
		return 0, r.wrapErr(err)
	}
	r.pos++
	return r.buf[0], nil
}

// ReadFull reads exactly n bytes.
func (r *Reader) ReadFull(n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(r.r, buf)
	r.pos += read
	if err != nil {
		return nil, r.wrapErr(err)
	}
	return buf, nil
}

// ReadU8 reads one big-endian unsigned byte.
func (r *Reader) ReadU8() (uint8, error) {
	return r.ReadByte()
}

// ReadU16 reads a big-endian uint16.
func (r *Reader) ReadU16() (uint16, error) {
	if err := r.fill(2); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(r.buf[:2]), nil
}

// ReadU32 reads a big-endian uint32.
func (r *Reader) ReadU32() (uint32, error) {
	if err := r.fill(4); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(r.buf[:4]), nil
}

// ReadU64 reads a big-endian uint64.
func (r *Reader) ReadU64() (uint64, error) {
	if err := r.fill(8); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(r.buf[:8]), nil
}

func (r *Reader) fill(n int) error {
	read, err := io.ReadFull(r.r, r.buf[:n])
	r.pos += read
	if err != nil {
		return r.wrapErr(err)
	}
	return nil
}

func (r *Reader) wrapErr(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Truncated(errors.PhaseDecode, r.pos, err)
	}
	return errors.Transport(errors.PhaseDecode, "read failed", err)
}
