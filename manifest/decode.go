package manifest

import (
	"bytes"
	"io"
	"strconv"

	"github.com/nvimbind/nvimgen/errors"
	"github.com/nvimbind/nvimgen/msgpack"
)

// Decode reads a manifest from its wire bytes: one top-level mapping
// projected onto the Manifest structure. The manifest itself contains
// no extension values, so decoding needs no handle registry.
func Decode(data []byte) (*Manifest, error) {
	return DecodeReader(bytes.NewReader(data))
}

// DecodeReader reads a manifest from a byte stream.
func DecodeReader(r io.Reader) (*Manifest, error) {
	root, err := msgpack.NewDecoder(r).ReadValue()
	if err != nil {
		return nil, err
	}
	top, ok := root.(msgpack.Map)
	if !ok {
		return nil, errors.InvalidData(errors.PhaseManifest, nil, "manifest root is not a mapping")
	}

	m := &Manifest{
		ErrorTypes: make(map[string]ErrorType),
		Types:      make(map[string]HandleType),
	}

	// Unknown top-level keys are ignored; the manifest is allowed to
	// grow fields this generator does not consume.
	for _, required := range []string{"version", "error_types", "types", "functions", "ui_options", "ui_events"} {
		if _, ok := top.Get(required); !ok {
			return nil, errors.InvalidData(errors.PhaseManifest, []string{required}, "required manifest field missing")
		}
	}

	version, _ := top.Get("version")
	if m.Version, err = decodeVersion(version); err != nil {
		return nil, err
	}
	errorTypes, _ := top.Get("error_types")
	if err = decodeErrorTypes(errorTypes, m.ErrorTypes); err != nil {
		return nil, err
	}
	types, _ := top.Get("types")
	if err = decodeTypes(types, m.Types); err != nil {
		return nil, err
	}
	functions, _ := top.Get("functions")
	if m.Functions, err = decodeFunctions(functions); err != nil {
		return nil, err
	}
	uiOptions, _ := top.Get("ui_options")
	if m.UIOptions, err = decodeUIOptions(uiOptions); err != nil {
		return nil, err
	}
	uiEvents, _ := top.Get("ui_events")
	if m.UIEvents, err = decodeUIEvents(uiEvents); err != nil {
		return nil, err
	}

	return m, nil
}

func decodeVersion(v msgpack.Value) (Version, error) {
	fields, ok := v.(msgpack.Map)
	if !ok {
		return Version{}, errors.InvalidData(errors.PhaseManifest, []string{"version"}, "not a mapping")
	}
	var out Version
	var err error
	if out.APICompatible, err = intField(fields, "version", "api_compatible"); err != nil {
		return Version{}, err
	}
	if out.APILevel, err = intField(fields, "version", "api_level"); err != nil {
		return Version{}, err
	}
	if out.APIPrerelease, err = boolField(fields, "version", "api_prerelease"); err != nil {
		return Version{}, err
	}
	if out.Major, err = intField(fields, "version", "major"); err != nil {
		return Version{}, err
	}
	if out.Minor, err = intField(fields, "version", "minor"); err != nil {
		return Version{}, err
	}
	if out.Patch, err = intField(fields, "version", "patch"); err != nil {
		return Version{}, err
	}
	if out.Prerelease, err = boolField(fields, "version", "prerelease"); err != nil {
		return Version{}, err
	}
	return out, nil
}

func decodeErrorTypes(v msgpack.Value, dst map[string]ErrorType) error {
	entries, ok := v.(msgpack.Map)
	if !ok {
		return errors.InvalidData(errors.PhaseManifest, []string{"error_types"}, "not a mapping")
	}
	for _, p := range entries {
		name, ok := p.Key.(msgpack.String)
		if !ok {
			return errors.InvalidData(errors.PhaseManifest, []string{"error_types"}, "non-string key")
		}
		body, ok := p.Value.(msgpack.Map)
		if !ok {
			return errors.InvalidData(errors.PhaseManifest, []string{"error_types", string(name)}, "not a mapping")
		}
		id, err := intField(body, "error_types", "id")
		if err != nil {
			return err
		}
		dst[string(name)] = ErrorType{ID: id}
	}
	return nil
}

func decodeTypes(v msgpack.Value, dst map[string]HandleType) error {
	entries, ok := v.(msgpack.Map)
	if !ok {
		return errors.InvalidData(errors.PhaseManifest, []string{"types"}, "not a mapping")
	}
	for _, p := range entries {
		name, ok := p.Key.(msgpack.String)
		if !ok {
			return errors.InvalidData(errors.PhaseManifest, []string{"types"}, "non-string key")
		}
		body, ok := p.Value.(msgpack.Map)
		if !ok {
			return errors.InvalidData(errors.PhaseManifest, []string{"types", string(name)}, "not a mapping")
		}
		id, err := intField(body, "types", "id")
		if err != nil {
			return err
		}
		prefix, err := stringField(body, "types", "prefix")
		if err != nil {
			return err
		}
		dst[string(name)] = HandleType{ID: id, Prefix: prefix}
	}
	return nil
}

func decodeFunctions(v msgpack.Value) ([]Function, error) {
	items, ok := v.(msgpack.Array)
	if !ok {
		return nil, errors.InvalidData(errors.PhaseManifest, []string{"functions"}, "not an array")
	}
	out := make([]Function, 0, len(items))
	for i, item := range items {
		path := []string{"functions", strconv.Itoa(i)}
		body, ok := item.(msgpack.Map)
		if !ok {
			return nil, errors.InvalidData(errors.PhaseManifest, path, "not a mapping")
		}
		var fn Function
		var err error
		if fn.Name, err = stringField(body, path[0], "name"); err != nil {
			return nil, err
		}
		if fn.Method, err = boolField(body, path[0], "method"); err != nil {
			return nil, err
		}
		if fn.Since, err = intField(body, path[0], "since"); err != nil {
			return nil, err
		}
		if raw, ok := body.Get("deprecated_since"); ok {
			n, ok := raw.(msgpack.Int)
			if !ok {
				return nil, errors.InvalidData(errors.PhaseManifest, append(path, "deprecated_since"), "not an integer")
			}
			v := int64(n)
			fn.DeprecatedSince = &v
		}
		retToken, err := stringField(body, path[0], "return_type")
		if err != nil {
			return nil, err
		}
		if fn.ReturnType, err = ParseTypeName(retToken); err != nil {
			return nil, err
		}
		params, ok := body.Get("parameters")
		if !ok {
			return nil, errors.InvalidData(errors.PhaseManifest, append(path, "parameters"), "missing")
		}
		if fn.Parameters, err = decodeParameters(params, path); err != nil {
			return nil, err
		}
		out = append(out, fn)
	}
	return out, nil
}

// decodeParameters reads the ordered parameter list: each entry is a
// 2-element tuple of (type-name token, parameter name).
func decodeParameters(v msgpack.Value, path []string) ([]Parameter, error) {
	items, ok := v.(msgpack.Array)
	if !ok {
		return nil, errors.InvalidData(errors.PhaseManifest, append(path, "parameters"), "not an array")
	}
	out := make([]Parameter, 0, len(items))
	for i, item := range items {
		tuple, ok := item.(msgpack.Array)
		if !ok || len(tuple) != 2 {
			return nil, errors.InvalidData(errors.PhaseManifest,
				append(path, "parameters", strconv.Itoa(i)), "not a 2-element tuple")
		}
		token, ok := tuple[0].(msgpack.String)
		if !ok {
			return nil, errors.InvalidData(errors.PhaseManifest,
				append(path, "parameters", strconv.Itoa(i)), "type token is not a string")
		}
		name, ok := tuple[1].(msgpack.String)
		if !ok {
			return nil, errors.InvalidData(errors.PhaseManifest,
				append(path, "parameters", strconv.Itoa(i)), "parameter name is not a string")
		}
		tn, err := ParseTypeName(string(token))
		if err != nil {
			return nil, err
		}
		out = append(out, Parameter{Type: tn, Name: string(name)})
	}
	return out, nil
}

func decodeUIOptions(v msgpack.Value) ([]string, error) {
	items, ok := v.(msgpack.Array)
	if !ok {
		return nil, errors.InvalidData(errors.PhaseManifest, []string{"ui_options"}, "not an array")
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(msgpack.String)
		if !ok {
			return nil, errors.InvalidData(errors.PhaseManifest,
				[]string{"ui_options", strconv.Itoa(i)}, "not a string")
		}
		out = append(out, string(s))
	}
	return out, nil
}

func decodeUIEvents(v msgpack.Value) ([]UIEvent, error) {
	items, ok := v.(msgpack.Array)
	if !ok {
		return nil, errors.InvalidData(errors.PhaseManifest, []string{"ui_events"}, "not an array")
	}
	out := make([]UIEvent, 0, len(items))
	for i, item := range items {
		path := []string{"ui_events", strconv.Itoa(i)}
		body, ok := item.(msgpack.Map)
		if !ok {
			return nil, errors.InvalidData(errors.PhaseManifest, path, "not a mapping")
		}
		var ev UIEvent
		var err error
		if ev.Name, err = stringField(body, path[0], "name"); err != nil {
			return nil, err
		}
		if ev.Since, err = intField(body, path[0], "since"); err != nil {
			return nil, err
		}
		params, ok := body.Get("parameters")
		if !ok {
			return nil, errors.InvalidData(errors.PhaseManifest, append(path, "parameters"), "missing")
		}
		if ev.Parameters, err = decodeParameters(params, path); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

func intField(m msgpack.Map, section, key string) (int64, error) {
	v, ok := m.Get(key)
	if !ok {
		return 0, errors.InvalidData(errors.PhaseManifest, []string{section, key}, "missing")
	}
	n, ok := v.(msgpack.Int)
	if !ok {
		return 0, errors.InvalidData(errors.PhaseManifest, []string{section, key}, "not an integer")
	}
	return int64(n), nil
}

func boolField(m msgpack.Map, section, key string) (bool, error) {
	v, ok := m.Get(key)
	if !ok {
		return false, errors.InvalidData(errors.PhaseManifest, []string{section, key}, "missing")
	}
	b, ok := v.(msgpack.Bool)
	if !ok {
		return false, errors.InvalidData(errors.PhaseManifest, []string{section, key}, "not a boolean")
	}
	return bool(b), nil
}

func stringField(m msgpack.Map, section, key string) (string, error) {
	v, ok := m.Get(key)
	if !ok {
		return "", errors.InvalidData(errors.PhaseManifest, []string{section, key}, "missing")
	}
	s, ok := v.(msgpack.String)
	if !ok {
		return "", errors.InvalidData(errors.PhaseManifest, []string{section, key}, "not a string")
	}
	return string(s), nil
}
