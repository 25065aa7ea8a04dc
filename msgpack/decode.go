package msgpack

import (
	"io"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/nvimbind/nvimgen/errors"
)

// Decoder reads wire values from a byte stream. Every read consumes
// exactly one value; a failed read leaves no usable partial state and
// the decode of that value is terminal.
type Decoder struct {
	r   *Reader
	reg *Registry
}

// NewDecoder creates a Decoder with an empty handle registry; every
// extension value is rejected until a registry is supplied.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: NewReader(r), reg: NewRegistry()}
}

// NewDecoderWithRegistry creates a Decoder resolving extension tags
// against the given registry.
func NewDecoderWithRegistry(r io.Reader, reg *Registry) *Decoder {
	return &Decoder{r: NewReader(r), reg: reg}
}

// Position returns the stream position in bytes.
func (d *Decoder) Position() int {
	return d.r.Position()
}

// ReadNil consumes a nil value.
func (d *Decoder) ReadNil() error {
	m, err := d.r.ReadByte()
	if err != nil {
		return err
	}
	if m != markerNil {
		return errors.UnexpectedMarker(errors.PhaseDecode, "nil", m)
	}
	return nil
}

// ReadBool consumes a boolean. Exactly two marker forms are valid.
func (d *Decoder) ReadBool() (bool, error) {
	m, err := d.r.ReadByte()
	if err != nil {
		return false, err
	}
	switch m {
	case markerTrue:
		return true, nil
	case markerFalse:
		return false, nil
	}
	return false, errors.UnexpectedMarker(errors.PhaseDecode, "boolean", m)
}

// ReadInt consumes an integer in any of the eight marker/width
// combinations or either fixint range, normalized to int64. An
// unsigned 64-bit value beyond the int64 range is an overflow, not a
// silent wrap.
func (d *Decoder) ReadInt() (int64, error) {
	m, err := d.r.ReadByte()
	if err != nil {
		return 0, err
	}
	return d.readIntBody(m)
}

func (d *Decoder) readIntBody(m byte) (int64, error) {
	switch {
	case m <= markerFixIntMax:
		return int64(m), nil
	case m >= markerNegFixLo:
		return int64(int8(m)), nil
	}
	switch m {
	case markerUint8:
		v, err := d.r.ReadU8()
		return int64(v), err
	case markerUint16:
		v, err := d.r.ReadU16()
		return int64(v), err
	case markerUint32:
		v, err := d.r.ReadU32()
		return int64(v), err
	case markerUint64:
		v, err := d.r.ReadU64()
		if err != nil {
			return 0, err
		}
		if v > math.MaxInt64 {
			return 0, errors.Overflow(errors.PhaseDecode, v, "int64")
		}
		return int64(v), nil
	case markerInt8:
		v, err := d.r.ReadU8()
		return int64(int8(v)), err
	case markerInt16:
		v, err := d.r.ReadU16()
		return int64(int16(v)), err
	case markerInt32:
		v, err := d.r.ReadU32()
		return int64(int32(v)), err
	case markerInt64:
		v, err := d.r.ReadU64()
		return int64(v), err
	}
	return 0, errors.UnexpectedMarker(errors.PhaseDecode, "integer", m)
}

// ReadFloat consumes a float of either wire width, normalized to
// double precision.
func (d *Decoder) ReadFloat() (float64, error) {
	m, err := d.r.ReadByte()
	if err != nil {
		return 0, err
	}
	return d.readFloatBody(m)
}

func (d *Decoder) readFloatBody(m byte) (float64, error) {
	switch m {
	case markerFloat32:
		v, err := d.r.ReadU32()
		return float64(math.Float32frombits(v)), err
	case markerFloat64:
		v, err := d.r.ReadU64()
		return math.Float64frombits(v), err
	}
	return 0, errors.UnexpectedMarker(errors.PhaseDecode, "float", m)
}

// ReadString consumes a string in any of the four length forms. The
// payload must be valid UTF-8; an invalid payload is a terminal
// encoding failure, never a lossy substitution.
func (d *Decoder) ReadString() (string, error) {
	m, err := d.r.ReadByte()
	if err != nil {
		return "", err
	}
	return d.readStringBody(m)
}

func (d *Decoder) readStringBody(m byte) (string, error) {
	var n int
	switch {
	case isFixStr(m):
		n = int(m & 0x1f)
	case m == markerStr8:
		v, err := d.r.ReadU8()
		if err != nil {
			return "", err
		}
		n = int(v)
	case m == markerStr16:
		v, err := d.r.ReadU16()
		if err != nil {
			return "", err
		}
		n = int(v)
	case m == markerStr32:
		v, err := d.r.ReadU32()
		if err != nil {
			return "", err
		}
		n = int(v)
	default:
		return "", errors.UnexpectedMarker(errors.PhaseDecode, "string", m)
	}

	data, err := d.r.ReadFull(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errors.InvalidUTF8(errors.PhaseDecode, data)
	}
	return string(data), nil
}

// ReadArrayLen consumes an array header in any of the three length
// forms and returns the element count.
func (d *Decoder) ReadArrayLen() (int, error) {
	m, err := d.r.ReadByte()
	if err != nil {
		return 0, err
	}
	return d.readArrayLenBody(m)
}

func (d *Decoder) readArrayLenBody(m byte) (int, error) {
	switch {
	case isFixArr(m):
		return int(m & 0x0f), nil
	case m == markerArray16:
		v, err := d.r.ReadU16()
		return int(v), err
	case m == markerArray32:
		v, err := d.r.ReadU32()
		return int(v), err
	}
	return 0, errors.UnexpectedMarker(errors.PhaseDecode, "array", m)
}

// ReadMapLen consumes a map header in any of the three length forms
// and returns the entry count.
func (d *Decoder) ReadMapLen() (int, error) {
	m, err := d.r.ReadByte()
	if err != nil {
		return 0, err
	}
	return d.readMapLenBody(m)
}

func (d *Decoder) readMapLenBody(m byte) (int, error) {
	switch {
	case isFixMap(m):
		return int(m & 0x0f), nil
	case m == markerMap16:
		v, err := d.r.ReadU16()
		return int(v), err
	case m == markerMap32:
		v, err := d.r.ReadU32()
		return int(v), err
	}
	return 0, errors.UnexpectedMarker(errors.PhaseDecode, "map", m)
}

// ReadHandle consumes an extension-tagged handle: a fixed 8-byte
// big-endian integer payload under a registry-known tag. An
// unrecognized tag is a structural mismatch.
func (d *Decoder) ReadHandle() (Handle, error) {
	m, err := d.r.ReadByte()
	if err != nil {
		return Handle{}, err
	}
	return d.readHandleBody(m)
}

func (d *Decoder) readHandleBody(m byte) (Handle, error) {
	if m != markerFixExt8 {
		return Handle{}, errors.UnexpectedMarker(errors.PhaseDecode, "handle", m)
	}
	t, err := d.r.ReadByte()
	if err != nil {
		return Handle{}, err
	}
	tag := int8(t)
	payload, err := d.r.ReadU64()
	if err != nil {
		return Handle{}, err
	}
	if !d.reg.Has(tag) {
		return Handle{}, errors.UnknownExtTag(errors.PhaseDecode, tag)
	}
	return Handle{Tag: tag, ID: int64(payload)}, nil
}

// ReadHandleTag consumes a handle that must carry the given tag and
// returns its payload. A different registered tag is a structural
// mismatch between the generated stub and the wire.
func (d *Decoder) ReadHandleTag(tag int8) (int64, error) {
	h, err := d.ReadHandle()
	if err != nil {
		return 0, err
	}
	if h.Tag != tag {
		return 0, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Expected("handle tag " + strconv.Itoa(int(tag))).
			Detail("got tag %d", h.Tag).
			Build()
	}
	return h.ID, nil
}

// ReadFixedArrayLen consumes an array header that must announce
// exactly n elements.
func (d *Decoder) ReadFixedArrayLen(n int) error {
	got, err := d.ReadArrayLen()
	if err != nil {
		return err
	}
	if got != n {
		return errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Detail("fixed array of %d elements, got %d", n, got).
			Build()
	}
	return nil
}

// ReadArray consumes a complete array value.
func (d *Decoder) ReadArray() (Array, error) {
	n, err := d.ReadArrayLen()
	if err != nil {
		return nil, err
	}
	return d.readArrayBody(n)
}

// ReadMap consumes a complete map value.
func (d *Decoder) ReadMap() (Map, error) {
	n, err := d.ReadMapLen()
	if err != nil {
		return nil, err
	}
	return d.readMapBody(n)
}

// ReadValue consumes one value of any category, dispatching on the
// marker byte.
func (d *Decoder) ReadValue() (Value, error) {
	m, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}

	switch {
	case isFixInt(m):
		v, err := d.readIntBody(m)
		if err != nil {
			return nil, err
		}
		return Int(v), nil
	case isFixStr(m), m == markerStr8, m == markerStr16, m == markerStr32:
		v, err := d.readStringBody(m)
		if err != nil {
			return nil, err
		}
		return String(v), nil
	case isFixArr(m), m == markerArray16, m == markerArray32:
		n, err := d.readArrayLenBody(m)
		if err != nil {
			return nil, err
		}
		arr, err := d.readArrayBody(n)
		if err != nil {
			return nil, err
		}
		return arr, nil
	case isFixMap(m), m == markerMap16, m == markerMap32:
		n, err := d.readMapLenBody(m)
		if err != nil {
			return nil, err
		}
		mp, err := d.readMapBody(n)
		if err != nil {
			return nil, err
		}
		return mp, nil
	}

	switch m {
	case markerNil:
		return Nil{}, nil
	case markerTrue:
		return Bool(true), nil
	case markerFalse:
		return Bool(false), nil
	case markerUint8, markerUint16, markerUint32, markerUint64,
		markerInt8, markerInt16, markerInt32, markerInt64:
		v, err := d.readIntBody(m)
		if err != nil {
			return nil, err
		}
		return Int(v), nil
	case markerFloat32, markerFloat64:
		v, err := d.readFloatBody(m)
		if err != nil {
			return nil, err
		}
		return Float(v), nil
	case markerFixExt8:
		h, err := d.readHandleBody(m)
		if err != nil {
			return nil, err
		}
		return h, nil
	}

	return nil, errors.UnexpectedMarker(errors.PhaseDecode, "value", m)
}

func (d *Decoder) readArrayBody(n int) (Array, error) {
	arr := make(Array, 0, min(n, 1024))
	for i := 0; i < n; i++ {
		v, err := d.ReadValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	return arr, nil
}

func (d *Decoder) readMapBody(n int) (Map, error) {
	m := make(Map, 0, min(n, 1024))
	for i := 0; i < n; i++ {
		k, err := d.ReadValue()
		if err != nil {
			return nil, err
		}
		v, err := d.ReadValue()
		if err != nil {
			return nil, err
		}
		for _, prev := range m {
			if Equal(prev.Key, k) {
				return nil, errors.DuplicateKey(errors.PhaseDecode, nil)
			}
		}
		m = append(m, Pair{Key: k, Value: v})
	}
	return m, nil
}

// Skip consumes and discards one value of any category.
func (d *Decoder) Skip() error {
	_, err := d.ReadValue()
	return err
}
