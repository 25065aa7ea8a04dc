package msgpack

import (
	"bytes"
	goerrors "errors"
	"testing"

	"github.com/nvimbind/nvimgen/errors"
)

func TestDecode_WrongCategoryMarker(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		read   func(*Decoder) error
		marker byte
	}{
		{
			name: "bool from nil",
			data: []byte{0xc0},
			read: func(d *Decoder) error {
				_, err := d.ReadBool()
				return err
			},
			marker: 0xc0,
		},
		{
			name: "int from true",
			data: []byte{0xc3},
			read: func(d *Decoder) error {
				_, err := d.ReadInt()
				return err
			},
			marker: 0xc3,
		},
		{
			name: "float from uint8",
			data: []byte{0xcc, 0x05},
			read: func(d *Decoder) error {
				_, err := d.ReadFloat()
				return err
			},
			marker: 0xcc,
		},
		{
			name: "string from fixarray",
			data: []byte{0x91, 0x01},
			read: func(d *Decoder) error {
				_, err := d.ReadString()
				return err
			},
			marker: 0x91,
		},
		{
			name: "array from fixmap",
			data: []byte{0x80},
			read: func(d *Decoder) error {
				_, err := d.ReadArrayLen()
				return err
			},
			marker: 0x80,
		},
		{
			name: "map from fixstr",
			data: []byte{0xa1, 'x'},
			read: func(d *Decoder) error {
				_, err := d.ReadMapLen()
				return err
			},
			marker: 0xa1,
		},
		{
			name: "handle from int",
			data: []byte{0x07},
			read: func(d *Decoder) error {
				_, err := d.ReadHandle()
				return err
			},
			marker: 0x07,
		},
		{
			name: "nil from false",
			data: []byte{0xc2},
			read: func(d *Decoder) error {
				return d.ReadNil()
			},
			marker: 0xc2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(NewDecoder(bytes.NewReader(tt.data)))
			if err == nil {
				t.Fatal("expected structural mismatch, got nil error")
			}
			var e *errors.Error
			if !goerrors.As(err, &e) {
				t.Fatalf("expected *errors.Error, got %T: %v", err, err)
			}
			if e.Kind != errors.KindUnexpectedMarker {
				t.Errorf("expected unexpected_marker, got %s", e.Kind)
			}
			if !e.HasMarker || e.Marker != tt.marker {
				t.Errorf("expected observed marker 0x%02x, got 0x%02x", tt.marker, e.Marker)
			}
			if e.Expected == "" {
				t.Error("expected category missing from error")
			}
		})
	}
}

func TestDecode_ReservedMarker(t *testing.T) {
	// 0xc1 is never a valid marker.
	_, err := NewDecoder(bytes.NewReader([]byte{0xc1})).ReadValue()
	var e *errors.Error
	if !goerrors.As(err, &e) || e.Kind != errors.KindUnexpectedMarker {
		t.Fatalf("expected unexpected_marker, got %v", err)
	}
}

func TestDecode_Uint64Overflow(t *testing.T) {
	data := []byte{0xcf, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	_, err := NewDecoder(bytes.NewReader(data)).ReadInt()
	var e *errors.Error
	if !goerrors.As(err, &e) || e.Kind != errors.KindOverflow {
		t.Fatalf("expected overflow, got %v", err)
	}
}

func TestDecode_InvalidUTF8(t *testing.T) {
	data := []byte{0xa2, 0xff, 0xfe}
	_, err := NewDecoder(bytes.NewReader(data)).ReadString()
	var e *errors.Error
	if !goerrors.As(err, &e) || e.Kind != errors.KindInvalidUTF8 {
		t.Fatalf("expected invalid_utf8, got %v", err)
	}
}

func TestDecode_UnknownExtTag(t *testing.T) {
	data := []byte{0xd7, 0x09, 0, 0, 0, 0, 0, 0, 0, 1}
	_, err := NewDecoderWithRegistry(bytes.NewReader(data), testRegistry(t)).ReadHandle()
	var e *errors.Error
	if !goerrors.As(err, &e) || e.Kind != errors.KindUnknownExtTag {
		t.Fatalf("expected unknown_ext_tag, got %v", err)
	}
}

func TestDecode_EmptyRegistryRejectsHandles(t *testing.T) {
	data := []byte{0xd7, 0x00, 0, 0, 0, 0, 0, 0, 0, 1}
	_, err := NewDecoder(bytes.NewReader(data)).ReadValue()
	var e *errors.Error
	if !goerrors.As(err, &e) || e.Kind != errors.KindUnknownExtTag {
		t.Fatalf("expected unknown_ext_tag, got %v", err)
	}
}

func TestDecode_DuplicateMapKey(t *testing.T) {
	// {"a": 1, "a": 2}
	data := []byte{0x82, 0xa1, 'a', 0x01, 0xa1, 'a', 0x02}
	_, err := NewDecoder(bytes.NewReader(data)).ReadValue()
	var e *errors.Error
	if !goerrors.As(err, &e) || e.Kind != errors.KindDuplicateKey {
		t.Fatalf("expected duplicate_key, got %v", err)
	}
}

func TestDecode_IntWidths(t *testing.T) {
	tests := []struct {
		data []byte
		want int64
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x7f}, 127},
		{[]byte{0xff}, -1},
		{[]byte{0xe0}, -32},
		{[]byte{0xcc, 0xff}, 255},
		{[]byte{0xcd, 0x01, 0x00}, 256},
		{[]byte{0xce, 0x00, 0x01, 0x00, 0x00}, 65536},
		{[]byte{0xcf, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00}, 4294967296},
		{[]byte{0xd0, 0x80}, -128},
		{[]byte{0xd1, 0x80, 0x00}, -32768},
		{[]byte{0xd2, 0x80, 0x00, 0x00, 0x00}, -2147483648},
		{[]byte{0xd3, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, -1},
	}
	for _, tt := range tests {
		got, err := NewDecoder(bytes.NewReader(tt.data)).ReadInt()
		if err != nil {
			t.Errorf("decode % x: %v", tt.data, err)
			continue
		}
		if got != tt.want {
			t.Errorf("decode % x: got %d, want %d", tt.data, got, tt.want)
		}
	}
}

func TestDecode_Float32Normalized(t *testing.T) {
	// float32 1.5 = 0x3fc00000
	data := []byte{0xca, 0x3f, 0xc0, 0x00, 0x00}
	got, err := NewDecoder(bytes.NewReader(data)).ReadFloat()
	if err != nil {
		t.Fatal(err)
	}
	if got != 1.5 {
		t.Errorf("got %v, want 1.5", got)
	}
}

func TestDecode_Skip(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.WriteValue(Array{Int(1), Map{{Key: String("k"), Value: Nil{}}}}); err != nil {
		t.Fatal(err)
	}
	if err := enc.WriteInt(7); err != nil {
		t.Fatal(err)
	}

	dec := NewDecoder(&buf)
	if err := dec.Skip(); err != nil {
		t.Fatal(err)
	}
	got, err := dec.ReadInt()
	if err != nil || got != 7 {
		t.Fatalf("value after skip: %v %v", got, err)
	}
}
