// Package errors provides structured error types for the nvimgen module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: value path, the expected wire category, the
// observed marker byte, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindUnexpectedMarker).
//		Path("functions", "3", "name").
//		Expected("string").
//		Marker(0xc0).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnexpectedMarker(errors.PhaseDecode, "integer", 0xc3)
//	err := errors.Truncated(errors.PhaseDecode, 17, io.ErrUnexpectedEOF)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
