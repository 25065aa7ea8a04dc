package msgpack

import (
	"bytes"
	"io"
	"iter"
	"math"
	"unicode/utf8"

	"github.com/nvimbind/nvimgen/errors"
)

// Encoder writes wire values to a byte stream. Scalar writes select
// the most compact applicable width; collection writes stream their
// elements behind a length header without materializing anything.
type Encoder struct {
	w *Writer
}

// NewEncoder creates an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: NewWriter(w)}
}

// Written returns the number of bytes written so far.
func (e *Encoder) Written() int {
	return e.w.Written()
}

// WriteNil writes a nil value.
func (e *Encoder) WriteNil() error {
	return e.w.Byte(markerNil)
}

// WriteBool writes a boolean.
func (e *Encoder) WriteBool(v bool) error {
	if v {
		return e.w.Byte(markerTrue)
	}
	return e.w.Byte(markerFalse)
}

// WriteInt writes an integer using the narrowest form that holds the
// value: fixint or an unsigned width for non-negative values, the
// negative fixint range or a signed width otherwise.
func (e *Encoder) WriteInt(v int64) error {
	switch {
	case v >= 0 && v <= markerFixIntMax:
		return e.w.Byte(byte(v))
	case v >= 0 && v <= math.MaxUint8:
		return e.w.MarkerU8(markerUint8, uint8(v))
	case v >= 0 && v <= math.MaxUint16:
		return e.w.MarkerU16(markerUint16, uint16(v))
	case v >= 0 && v <= math.MaxUint32:
		return e.w.MarkerU32(markerUint32, uint32(v))
	case v >= 0:
		return e.w.MarkerU64(markerUint64, uint64(v))
	case v >= -32:
		return e.w.Byte(byte(v))
	case v >= math.MinInt8:
		return e.w.MarkerU8(markerInt8, uint8(v))
	case v >= math.MinInt16:
		return e.w.MarkerU16(markerInt16, uint16(v))
	case v >= math.MinInt32:
		return e.w.MarkerU32(markerInt32, uint32(v))
	}
	return e.w.MarkerU64(markerInt64, uint64(v))
}

// WriteFloat writes a double-precision float.
func (e *Encoder) WriteFloat(v float64) error {
	return e.w.MarkerU64(markerFloat64, math.Float64bits(v))
}

// WriteString writes a string with the length form sized to its byte
// length. The string must be valid UTF-8.
func (e *Encoder) WriteString(s string) error {
	if !utf8.ValidString(s) {
		return errors.InvalidUTF8(errors.PhaseEncode, []byte(s))
	}
	n := len(s)
	var err error
	switch {
	case n <= 31:
		err = e.w.Byte(markerFixStrLo | byte(n))
	case n <= math.MaxUint8:
		err = e.w.MarkerU8(markerStr8, uint8(n))
	case n <= math.MaxUint16:
		err = e.w.MarkerU16(markerStr16, uint16(n))
	default:
		err = e.w.MarkerU32(markerStr32, uint32(n))
	}
	if err != nil {
		return err
	}
	return e.w.Bytes([]byte(s))
}

// WriteArrayLen writes an array header for n elements. The caller then
// writes each element in order.
func (e *Encoder) WriteArrayLen(n int) error {
	switch {
	case n <= 15:
		return e.w.Byte(markerFixArrLo | byte(n))
	case n <= math.MaxUint16:
		return e.w.MarkerU16(markerArray16, uint16(n))
	}
	return e.w.MarkerU32(markerArray32, uint32(n))
}

// WriteMapLen writes a map header for n entries. The caller then
// writes each key and value in order, key first.
func (e *Encoder) WriteMapLen(n int) error {
	switch {
	case n <= 15:
		return e.w.Byte(markerFixMapLo | byte(n))
	case n <= math.MaxUint16:
		return e.w.MarkerU16(markerMap16, uint16(n))
	}
	return e.w.MarkerU32(markerMap32, uint32(n))
}

// WriteHandle writes a handle as an 8-byte big-endian payload under
// its fixed extension tag. Handles always take the fixed-width form.
func (e *Encoder) WriteHandle(h Handle) error {
	if err := e.w.Byte(markerFixExt8); err != nil {
		return err
	}
	if err := e.w.Byte(byte(h.Tag)); err != nil {
		return err
	}
	return e.w.U64(uint64(h.ID))
}

// WriteValue writes one value of any category.
func (e *Encoder) WriteValue(v Value) error {
	switch tv := v.(type) {
	case Nil:
		return e.WriteNil()
	case Bool:
		return e.WriteBool(bool(tv))
	case Int:
		return e.WriteInt(int64(tv))
	case Float:
		return e.WriteFloat(float64(tv))
	case String:
		return e.WriteString(string(tv))
	case Array:
		if err := e.WriteArrayLen(len(tv)); err != nil {
			return err
		}
		for _, el := range tv {
			if err := e.WriteValue(el); err != nil {
				return err
			}
		}
		return nil
	case Map:
		if err := e.WriteMapLen(len(tv)); err != nil {
			return err
		}
		for _, p := range tv {
			if err := e.WriteValue(p.Key); err != nil {
				return err
			}
			if err := e.WriteValue(p.Value); err != nil {
				return err
			}
		}
		return nil
	case Handle:
		return e.WriteHandle(tv)
	}
	return errors.New(errors.PhaseEncode, errors.KindUnsupported).
		Detail("unknown value type %T", v).
		Build()
}

// EncodeSeq writes a lazily produced element sequence as a wire array.
// Elements are encoded one at a time as the sequence yields them; the
// element values are never collected. The encoded bytes are staged in
// a scratch buffer because the length header must precede them.
func EncodeSeq[T any](e *Encoder, seq iter.Seq[T], elem func(*Encoder, T) error) error {
	var staged bytes.Buffer
	sub := NewEncoder(&staged)
	n := 0
	for v := range seq {
		if err := elem(sub, v); err != nil {
			return err
		}
		n++
	}
	if err := e.WriteArrayLen(n); err != nil {
		return err
	}
	return e.w.Bytes(staged.Bytes())
}
