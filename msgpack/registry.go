package msgpack

import (
	"sort"

	"github.com/nvimbind/nvimgen/errors"
)

// Registry holds the closed mapping from handle-kind name to wire
// extension tag. It is fixed once built for a generation run; the
// decoder, encoder and stub generator all consult the same instance so
// the tag assignment agrees everywhere.
type Registry struct {
	byName map[string]int8
	byTag  map[int8]string
}

// NewRegistry creates an empty registry. A decoder holding an empty
// registry rejects every extension value.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]int8),
		byTag:  make(map[int8]string),
	}
}

// Register adds a handle kind under the given tag. Registering a
// duplicate name or tag is an error: the tag space is closed and dense.
func (r *Registry) Register(kind string, tag int8) error {
	if _, ok := r.byName[kind]; ok {
		return errors.InvalidData(errors.PhaseManifest, nil, "handle kind "+kind+" registered twice")
	}
	if other, ok := r.byTag[tag]; ok {
		return errors.New(errors.PhaseManifest, errors.KindInvalidData).
			Detail("tag %d already assigned to %s", tag, other).
			Build()
	}
	r.byName[kind] = tag
	r.byTag[tag] = kind
	return nil
}

// Tag returns the wire tag for a handle kind.
func (r *Registry) Tag(kind string) (int8, error) {
	tag, ok := r.byName[kind]
	if !ok {
		return 0, errors.NotFound(errors.PhaseEncode, "handle kind", kind)
	}
	return tag, nil
}

// Kind returns the handle kind for a wire tag.
func (r *Registry) Kind(tag int8) (string, error) {
	kind, ok := r.byTag[tag]
	if !ok {
		return "", errors.UnknownExtTag(errors.PhaseDecode, tag)
	}
	return kind, nil
}

// Has reports whether the tag is registered.
func (r *Registry) Has(tag int8) bool {
	_, ok := r.byTag[tag]
	return ok
}

// Kinds returns the registered kind names in lexicographic order.
// Unordered iteration must never reach generated output.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.byName))
	for k := range r.byName {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
