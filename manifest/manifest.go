package manifest

import (
	"sort"

	"github.com/nvimbind/nvimgen/msgpack"
)

// Manifest is the decoded capability document the target application
// emits at connection time. It and everything derived from it live for
// a single generation pass.
type Manifest struct {
	Version    Version
	ErrorTypes map[string]ErrorType
	Types      map[string]HandleType
	Functions  []Function
	UIOptions  []string
	UIEvents   []UIEvent
}

// Version is the manifest's immutable 7-field version record. It is
// captured once and baked into generated output as a constant.
type Version struct {
	APICompatible int64
	APILevel      int64
	APIPrerelease bool
	Major         int64
	Minor         int64
	Patch         int64
	Prerelease    bool
}

// ErrorType maps a symbolic error name to its numeric id.
type ErrorType struct {
	ID int64
}

// HandleType describes one opaque handle kind: its wire extension tag
// and the textual prefix its functions carry.
type HandleType struct {
	ID     int64
	Prefix string
}

// Function describes one exposed procedure.
type Function struct {
	Name            string
	Parameters      []Parameter
	ReturnType      TypeName
	Since           int64
	DeprecatedSince *int64
	Method          bool
}

// Parameter is one (type, name) pair, a 2-element tuple on the wire.
type Parameter struct {
	Type TypeName
	Name string
}

// UIEvent describes one UI event. Events carry no return type.
type UIEvent struct {
	Name       string
	Parameters []Parameter
	Since      int64
}

// Registry builds the handle registry from the manifest's type table.
// The tag assignment is whatever the manifest declares; nothing is
// hardcoded, though in practice exactly three kinds appear.
func (m *Manifest) Registry() (*msgpack.Registry, error) {
	reg := msgpack.NewRegistry()
	for _, name := range m.TypeNames() {
		if err := reg.Register(name, int8(m.Types[name].ID)); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// TypeNames returns the handle-kind names in lexicographic order.
func (m *Manifest) TypeNames() []string {
	names := make([]string, 0, len(m.Types))
	for name := range m.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ErrorTypeNames returns the error-type names in lexicographic order.
func (m *Manifest) ErrorTypeNames() []string {
	names := make([]string, 0, len(m.ErrorTypes))
	for name := range m.ErrorTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
