package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full mismatch error",
			err: &Error{
				Phase:     PhaseDecode,
				Kind:      KindUnexpectedMarker,
				Path:      []string{"functions", "2", "name"},
				Expected:  "string",
				Marker:    0xc0,
				HasMarker: true,
				Detail:    "while decoding manifest",
			},
			contains: []string{"[decode]", "unexpected_marker", "functions.2.name", "expected string", "0xc0", "while decoding manifest"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseParse,
				Kind:  KindMalformedType,
			},
			contains: []string{"[parse]", "malformed_type"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseAcquire,
				Kind:   KindTransport,
				Detail: "spawn nvim",
				Cause:  errors.New("executable not found"),
			},
			contains: []string{"[acquire]", "transport", "spawn nvim", "caused by", "executable not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindTruncated,
		Cause: cause,
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find the cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap did not return the cause")
	}
}

func TestError_Is(t *testing.T) {
	a := UnexpectedMarker(PhaseDecode, "boolean", 0x01)
	b := &Error{Phase: PhaseDecode, Kind: KindUnexpectedMarker}
	c := &Error{Phase: PhaseEncode, Kind: KindUnexpectedMarker}

	if !errors.Is(a, b) {
		t.Error("expected same phase+kind to match")
	}
	if errors.Is(a, c) {
		t.Error("expected different phase to not match")
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseDecode, KindUnexpectedMarker).
		Path("version", "major").
		Expected("integer").
		Marker(0xa3).
		Detail("field %s", "major").
		Build()

	if err.Phase != PhaseDecode || err.Kind != KindUnexpectedMarker {
		t.Errorf("unexpected phase/kind: %s/%s", err.Phase, err.Kind)
	}
	if len(err.Path) != 2 {
		t.Errorf("unexpected path: %v", err.Path)
	}
	if !err.HasMarker || err.Marker != 0xa3 {
		t.Errorf("marker not recorded: %v %#x", err.HasMarker, err.Marker)
	}
	if err.Detail != "field major" {
		t.Errorf("unexpected detail: %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	if e := Truncated(PhaseDecode, 42, nil); !strings.Contains(e.Error(), "byte 42") {
		t.Errorf("Truncated: %v", e)
	}
	if e := InvalidUTF8(PhaseDecode, []byte{0xff, 0xfe}); !strings.Contains(e.Error(), "fffe") {
		t.Errorf("InvalidUTF8: %v", e)
	}
	if e := UnknownExtTag(PhaseDecode, 7); !strings.Contains(e.Error(), "tag 7") {
		t.Errorf("UnknownExtTag: %v", e)
	}
	if e := MalformedType("ArrayOf(", nil); !strings.Contains(e.Error(), "ArrayOf(") {
		t.Errorf("MalformedType: %v", e)
	}
	if e := CallFailed("nvim_get_mode", "boom"); !strings.Contains(e.Error(), "nvim_get_mode") {
		t.Errorf("CallFailed: %v", e)
	}
}

func TestInvalidUTF8_TruncatesPreview(t *testing.T) {
	data := make([]byte, 100)
	for i := range data {
		data[i] = 0xff
	}
	e := InvalidUTF8(PhaseDecode, data)
	// 32-byte preview, hex-encoded
	if strings.Count(e.Detail, "ff") > 32 {
		t.Errorf("preview not truncated: %q", e.Detail)
	}
}
