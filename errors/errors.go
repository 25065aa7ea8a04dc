package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode   Phase = "decode"   // wire bytes to values
	PhaseEncode   Phase = "encode"   // values to wire bytes
	PhaseParse    Phase = "parse"    // type-name grammar
	PhaseManifest Phase = "manifest" // manifest projection
	PhaseAcquire  Phase = "acquire"  // manifest acquisition
	PhaseGenerate Phase = "generate" // stub emission
	PhaseRPC      Phase = "rpc"      // request/response exchange
)

// Kind categorizes the error
type Kind string

const (
	KindTruncated        Kind = "truncated"
	KindUnexpectedMarker Kind = "unexpected_marker"
	KindInvalidUTF8      Kind = "invalid_utf8"
	KindUnknownExtTag    Kind = "unknown_ext_tag"
	KindOverflow         Kind = "overflow"
	KindInvalidData      Kind = "invalid_data"
	KindDuplicateKey     Kind = "duplicate_key"
	KindMalformedType    Kind = "malformed_type"
	KindTransport        Kind = "transport"
	KindUnsupported      Kind = "unsupported"
	KindCallFailed       Kind = "call_failed"
	KindNotFound         Kind = "not_found"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value     any
	Cause     error
	Phase     Phase
	Kind      Kind
	Expected  string // value category the decoder was positioned on
	Marker    byte   // observed wire marker
	HasMarker bool
	Detail    string
	Path      []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Expected != "" || e.HasMarker {
		b.WriteString(": ")
		if e.Expected != "" && e.HasMarker {
			fmt.Fprintf(&b, "expected %s, got marker 0x%02x", e.Expected, e.Marker)
		} else if e.Expected != "" {
			b.WriteString("expected ")
			b.WriteString(e.Expected)
		} else {
			fmt.Fprintf(&b, "marker 0x%02x", e.Marker)
		}
	}

	if e.Detail != "" {
		if e.Expected != "" || e.HasMarker {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Expected sets the value category the decoder expected
func (b *Builder) Expected(category string) *Builder {
	b.err.Expected = category
	return b
}

// Marker sets the observed wire marker byte
func (b *Builder) Marker(m byte) *Builder {
	b.err.Marker = m
	b.err.HasMarker = true
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnexpectedMarker creates a structural mismatch error carrying the
// expected value category and the marker actually observed
func UnexpectedMarker(phase Phase, expected string, marker byte) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindUnexpectedMarker,
		Expected:  expected,
		Marker:    marker,
		HasMarker: true,
	}
}

// Truncated creates a short-read error at the given stream position
func Truncated(phase Phase, pos int, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTruncated,
		Detail: fmt.Sprintf("unexpected end of input at byte %d", pos),
		Cause:  cause,
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// UnknownExtTag creates an error for an extension tag absent from the registry
func UnknownExtTag(phase Phase, tag int8) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownExtTag,
		Detail: fmt.Sprintf("extension tag %d not registered", tag),
		Value:  tag,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, value any, targetType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:  value,
	}
}

// DuplicateKey creates a duplicate mapping key error
func DuplicateKey(phase Phase, path []string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicateKey,
		Path:   path,
		Detail: "mapping key appears more than once",
	}
}

// MalformedType creates a type-name grammar error
func MalformedType(token string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindMalformedType,
		Detail: fmt.Sprintf("malformed type name %q", token),
		Cause:  cause,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Transport creates a transport failure error
func Transport(phase Phase, detail string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTransport,
		Detail: detail,
		Cause:  cause,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// CallFailed creates an error for a request the remote side rejected.
// The value is the decoded wire error payload.
func CallFailed(method string, value any) *Error {
	return &Error{
		Phase:  PhaseRPC,
		Kind:   KindCallFailed,
		Detail: fmt.Sprintf("call %s failed", method),
		Value:  value,
	}
}

// Acquire wraps a manifest acquisition failure. Acquisition failures
// are fatal to the whole generation pass.
func Acquire(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseAcquire,
		Kind:   KindTransport,
		Detail: detail,
		Cause:  cause,
	}
}
