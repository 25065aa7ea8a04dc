// Package msgpack implements the wire codec and value model for the
// Neovim API surface.
//
// The wire format is MessagePack-compatible: every value starts with a
// marker byte that selects its category and width class, followed by
// an optional fixed-width big-endian field and the payload.
//
//	┌────────────────────────────────────────────────────┐
//	│ Value ←→ [Decoder / Encoder] ←→ marker-tagged bytes │
//	└────────────────────────────────────────────────────┘
//
// # Value Model
//
// Value is a closed variant over the eight wire categories:
//
//	Category   Go type      Wire forms
//	──────────────────────────────────────────────────────
//	nil        Nil          1 marker
//	boolean    Bool         2 markers (true/false)
//	integer    Int          2 fixint ranges + 8 widths, all → int64
//	float      Float        2 widths, both → float64
//	string     String       4 length forms, UTF-8 enforced
//	array      Array        3 length forms
//	map        Map          3 length forms, keys unique
//	handle     Handle       fixext8, tag + 8-byte big-endian payload
//
// # Handles
//
// A Handle is an opaque remote reference: a 64-bit integer payload
// under a small extension tag. The Registry holds the closed tag
// assignment taken from the manifest's type table; encode and decode
// consult the same instance so they always agree. An unregistered tag
// fails decode as a structural mismatch.
//
// # Errors
//
// Three error kinds leave the codec: transport failures (short or
// failed reads and writes), structural mismatches (a marker outside
// the expected category, reported with both the expected category and
// the observed byte), and encoding failures (non-UTF-8 string
// payloads). All are terminal for the value being processed; there is
// no partial or resumable state.
//
// # Streaming
//
// Collection encoders write a length header and then stream element
// encodings. EncodeSeq accepts a lazily produced iter.Seq element
// source; element values are encoded as they are yielded.
//
// # Thread Safety
//
// Decoder and Encoder own their streams and are not safe for
// concurrent use. Registry is read-only after construction.
package msgpack
