package rpc

import (
	"context"

	"github.com/nvimbind/nvimgen/msgpack"
)

// Session performs one blocking request/response exchange. Generated
// stubs encode their arguments through the args callback and decode
// the matching reply through the reply callback; neither side ever
// sees framing. Pipelining multiple concurrent calls is the caller's
// responsibility, not this layer's.
type Session interface {
	Call(ctx context.Context, method string, nargs int,
		args func(*msgpack.Encoder) error,
		reply func(*msgpack.Decoder) error) error
}

// Version is the manifest's version record, baked into generated
// output as a constant and never mutated after generation.
type Version struct {
	APICompatible int64
	APILevel      int64
	APIPrerelease bool
	Major         int64
	Minor         int64
	Patch         int64
	Prerelease    bool
}
