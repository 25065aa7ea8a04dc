package gen

import (
	"fmt"
	"strings"

	"github.com/nvimbind/nvimgen/manifest"
)

// luaRefType is the callback-reference category. Nothing on this side
// of the wire can hold one, so any function taking it is omitted
// outright; a permanent gap, not an error.
const luaRefType = "LuaRef"

// typeMapper maps manifest type names onto Go types for one
// generation pass. Handle kinds come from the manifest's type table,
// everything else through a fixed scalar table.
type typeMapper struct {
	handleKinds map[string]bool
}

func newTypeMapper(m *manifest.Manifest) *typeMapper {
	kinds := make(map[string]bool, len(m.Types))
	for name := range m.Types {
		kinds[name] = true
	}
	return &typeMapper{handleKinds: kinds}
}

// scalarGoType maps a scalar type name. Reports false for the
// callback-reference category.
func (tm *typeMapper) scalarGoType(name string) (string, bool) {
	switch name {
	case "Boolean":
		return "bool", true
	case "Integer":
		return "int64", true
	case "Float":
		return "float64", true
	case "String":
		return "string", true
	case "Array":
		return "msgpack.Array", true
	case "Dictionary":
		return "msgpack.Map", true
	case luaRefType:
		return "", false
	}
	if tm.handleKinds[name] {
		return name, true
	}
	// "Object" and anything unrecognized stay dynamic.
	return "msgpack.Value", true
}

// paramGoType maps a parameter type. A dynamic array becomes a lazily
// produced sequence; a fixed array becomes a fixed-size Go array.
func (tm *typeMapper) paramGoType(tn manifest.TypeName) (string, bool) {
	switch t := tn.(type) {
	case manifest.ScalarType:
		return tm.scalarGoType(string(t))
	case manifest.DynamicArrayType:
		elem, ok := tm.scalarGoType(string(t))
		if !ok {
			return "", false
		}
		return "iter.Seq[" + elem + "]", true
	case manifest.FixedArrayType:
		elem, ok := tm.scalarGoType(t.Elem)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("[%d]%s", t.Size, elem), true
	}
	return "", false
}

// returnGoType maps a return type. The empty string is a void return.
// A generic "Object" return disambiguates on the function name's
// prefix: the three handle kinds claim their prefixes, everything else
// stays dynamic.
func (tm *typeMapper) returnGoType(tn manifest.TypeName, funcName string) (string, bool) {
	switch t := tn.(type) {
	case manifest.ScalarType:
		if string(t) == "void" {
			return "", true
		}
		if string(t) == "Object" {
			if kind := tm.prefixHandleKind(funcName); kind != "" {
				return kind, true
			}
		}
		return tm.scalarGoType(string(t))
	case manifest.DynamicArrayType:
		elem, ok := tm.scalarGoType(string(t))
		if !ok {
			return "", false
		}
		return "[]" + elem, true
	case manifest.FixedArrayType:
		elem, ok := tm.scalarGoType(t.Elem)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("[%d]%s", t.Size, elem), true
	}
	return "", false
}

// prefixHandleKind claims a dynamically typed return for a handle
// kind when the function name announces one. Only the legacy families
// buffer_*, window_* and tabpage_* do this; the nvim_* family keeps
// Object returns dynamic.
func (tm *typeMapper) prefixHandleKind(funcName string) string {
	for prefix, kind := range prefixKinds {
		if strings.HasPrefix(funcName, prefix) && tm.handleKinds[kind] {
			return kind
		}
	}
	return ""
}

var prefixKinds = map[string]string{
	"buffer":  "Buffer",
	"window":  "Window",
	"tabpage": "Tabpage",
}

// representable reports whether a stub can be emitted for fn.
func (tm *typeMapper) representable(fn manifest.Function) bool {
	for _, p := range fn.Parameters {
		if _, ok := tm.paramGoType(p.Type); !ok {
			return false
		}
	}
	_, ok := tm.returnGoType(fn.ReturnType, fn.Name)
	return ok
}

// writeExpr returns the encoder call for one value of the given Go
// type. The expression evaluates to an error.
func (tm *typeMapper) writeExpr(goType, v string) string {
	switch goType {
	case "bool":
		return "e.WriteBool(" + v + ")"
	case "int64":
		return "e.WriteInt(" + v + ")"
	case "float64":
		return "e.WriteFloat(" + v + ")"
	case "string":
		return "e.WriteString(" + v + ")"
	case "msgpack.Value", "msgpack.Array", "msgpack.Map":
		return "e.WriteValue(" + v + ")"
	}
	// Handle kind.
	return fmt.Sprintf("e.WriteHandle(msgpack.Handle{Tag: %sTag, ID: int64(%s)})", goType, v)
}

// readCall returns the decoder call for one value of the given Go
// type, plus an optional conversion wrapped around the result.
func (tm *typeMapper) readCall(goType string) (call, conv string) {
	switch goType {
	case "bool":
		return "d.ReadBool()", ""
	case "int64":
		return "d.ReadInt()", ""
	case "float64":
		return "d.ReadFloat()", ""
	case "string":
		return "d.ReadString()", ""
	case "msgpack.Value":
		return "d.ReadValue()", ""
	case "msgpack.Array":
		return "d.ReadArray()", ""
	case "msgpack.Map":
		return "d.ReadMap()", ""
	}
	return fmt.Sprintf("d.ReadHandleTag(%sTag)", goType), goType
}
