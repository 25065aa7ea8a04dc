package msgpack

// Value is the canonical in-memory representation of every wire value.
// It is a closed variant: the concrete types below are the only
// implementations, sealed by the unexported category method.
type Value interface {
	// category names the wire category for error reporting.
	category() string
}

// Nil is the wire nil value.
type Nil struct{}

// Bool is a wire boolean.
type Bool bool

// Int is a wire integer. All eight wire widths plus the two fixint
// ranges normalize into this single 64-bit signed representation.
type Int int64

// Float is a wire float. Both wire widths normalize to double precision.
type Float float64

// String is a wire string. Always valid UTF-8 after a successful decode.
type String string

// Array is an ordered sequence of values.
type Array []Value

// Pair is one key/value entry of a Map.
type Pair struct {
	Key   Value
	Value Value
}

// Map is a wire mapping realized as an ordered pair list. Keys are
// Values, not restricted to strings, and are unique; the order carries
// no meaning on decode. Go's built-in map cannot key on arbitrary
// Values, and an explicitly ordered structure is what deterministic
// emission wants anyway.
type Map []Pair

// Handle is a tagged opaque remote reference: a 64-bit integer payload
// under a small extension type tag drawn from the closed registry set.
type Handle struct {
	ID  int64
	Tag int8
}

func (Nil) category() string    { return "nil" }
func (Bool) category() string   { return "boolean" }
func (Int) category() string    { return "integer" }
func (Float) category() string  { return "float" }
func (String) category() string { return "string" }
func (Array) category() string  { return "array" }
func (Map) category() string    { return "map" }
func (Handle) category() string { return "handle" }

// Get returns the value for the given string key, or false when absent.
func (m Map) Get(key string) (Value, bool) {
	for _, p := range m {
		if s, ok := p.Key.(String); ok && string(s) == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Equal reports whether two values are structurally equal. Map entries
// compare as an unordered set since insertion order is irrelevant on
// decode.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Float:
		bv, ok := b.(Float)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Map:
		bv, ok := b.(Map)
		if !ok || len(av) != len(bv) {
			return false
		}
		for _, pa := range av {
			found := false
			for _, pb := range bv {
				if Equal(pa.Key, pb.Key) {
					found = Equal(pa.Value, pb.Value)
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	case Handle:
		bv, ok := b.(Handle)
		return ok && av == bv
	}
	return false
}
