package gen

import (
	"strconv"
	"text/template"
)

var fileTemplate = template.Must(template.New("stubs").Funcs(template.FuncMap{
	"quote": strconv.Quote,
}).Parse(`// Code generated by nvimgen. DO NOT EDIT.

package {{.Package}}

import (
	"context"
{{- if .NeedsIter}}
	"iter"
{{- end}}

	"github.com/nvimbind/nvimgen/msgpack"
	"github.com/nvimbind/nvimgen/rpc"
)

// APIVersion is the version record of the manifest this file was
// generated from.
var APIVersion = rpc.Version{
	APICompatible: {{.Version.APICompatible}},
	APILevel:      {{.Version.APILevel}},
	APIPrerelease: {{.Version.APIPrerelease}},
	Major:         {{.Version.Major}},
	Minor:         {{.Version.Minor}},
	Patch:         {{.Version.Patch}},
	Prerelease:    {{.Version.Prerelease}},
}
{{if .Errors}}
// Remote error discriminants.
const (
{{- range .Errors}}
	Error{{.Ident}} int64 = {{.ID}}
{{- end}}
)
{{end}}
{{- range .Handles}}
// {{.Name}} is an opaque handle to a remote {{.Name}} object.
type {{.Name}} int64

// {{.Name}}Tag is the wire extension tag carried by {{.Name}} values.
const {{.Name}}Tag int8 = {{.Tag}}
{{end}}
{{- if .UIOptions}}
// UIOption enumerates the option names a UI attachment accepts.
type UIOption int

const (
{{- range $i, $o := .UIOptions}}
	UIOption{{$o.Ident}}{{if eq $i 0}} UIOption = iota{{end}}
{{- end}}
)

var uiOptionNames = [...]string{
{{- range .UIOptions}}
	{{quote .Raw}},
{{- end}}
}

// String returns the raw option name the enumerant was derived from.
func (o UIOption) String() string {
	if o < 0 || int(o) >= len(uiOptionNames) {
		return ""
	}
	return uiOptionNames[o]
}

// UIOptionFromString resolves a raw option name to its enumerant.
func UIOptionFromString(s string) (UIOption, bool) {
	for i, name := range uiOptionNames {
		if name == s {
			return UIOption(i), true
		}
	}
	return 0, false
}
{{end}}
{{- range .Stubs}}
// {{.FuncName}} invokes the remote procedure {{.WireName}}.
{{- if .Deprecated}}
//
// Deprecated: since API level {{.DeprecatedSince}}.
{{- end}}
func {{.FuncName}}(ctx context.Context, s rpc.Session{{range .Params}}, {{.Name}} {{.Type}}{{end}}) {{if .OutType}}({{.OutType}}, error){{else}}error{{end}} {
{{- if .OutType}}
	var out {{.OutType}}
	err := s.Call(ctx, {{quote .WireName}}, {{.NArgs}}, func(e *msgpack.Encoder) error {
{{- range .EncodeLines}}
		{{.}}
{{- end}}
	}, func(d *msgpack.Decoder) error {
{{- range .DecodeLines}}
		{{.}}
{{- end}}
	})
	return out, err
{{- else}}
	return s.Call(ctx, {{quote .WireName}}, {{.NArgs}}, func(e *msgpack.Encoder) error {
{{- range .EncodeLines}}
		{{.}}
{{- end}}
	}, func(d *msgpack.Decoder) error {
{{- range .DecodeLines}}
		{{.}}
{{- end}}
	})
{{- end}}
}
{{end}}`))
