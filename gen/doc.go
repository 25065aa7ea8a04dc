// Package gen emits typed Go call stubs from a decoded manifest.
//
// One generation pass produces a single source file containing only
// inert declarations: the version record the manifest was captured
// from, one discriminant per remote error type, one handle type per
// entry in the manifest's type table with its wire tag as a named
// constant, an enumerant per UI option with a bijective mapping back
// to the raw option strings, and one call stub per eligible function.
//
// Eligibility is decided per function. Anything touching the remote
// callback-reference type cannot be represented on this side of the
// wire and is omitted. Everything else maps through a fixed table:
// Boolean, Integer, Float and String become their Go counterparts,
// Object and unrecognized names stay dynamic as msgpack.Value, and
// handle kinds become the generated handle types. Dynamic arrays in
// parameter position become iter.Seq so callers never materialize the
// sequence; in return position they become slices. Fixed-size arrays
// keep their size in the Go type.
//
// Output is deterministic: unordered manifest tables are emitted in
// lexicographic key order, and the rendered text runs through
// go/format before it is returned, which also proves it parses.
package gen
