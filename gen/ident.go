package gen

import "strings"

// goKeywords are identifiers that cannot be parameter names, plus the
// names the stub bodies themselves bind. Escaped with a trailing
// underscore, the way manifest names like "fn" and "type" demand.
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true,
	"continue": true, "default": true, "defer": true, "else": true,
	"fallthrough": true, "for": true, "func": true, "go": true,
	"goto": true, "if": true, "import": true, "interface": true,
	"map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true,
	"var": true,

	// Predeclared and stub-local names.
	"bool": true, "string": true, "int64": true, "float64": true,
	"true": true, "false": true, "nil": true, "iter": true,
	"msgpack": true, "rpc": true, "context": true,
	"ctx": true, "s": true, "e": true, "d": true, "out": true,
	"err": true, "el": true, "n": true, "i": true, "v": true,
}

// CamelIdent converts a word-separator-delimited raw name into an
// exported identifier: each underscore-delimited segment capitalized
// and concatenated. "nvim_buf_line_count" becomes "NvimBufLineCount".
func CamelIdent(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, segment := range strings.Split(raw, "_") {
		if segment == "" {
			continue
		}
		b.WriteString(strings.ToUpper(segment[:1]))
		b.WriteString(segment[1:])
	}
	return b.String()
}

// paramIdent converts a raw parameter name to a local identifier,
// escaping anything that would collide inside a stub body.
func paramIdent(raw string) string {
	segments := strings.Split(raw, "_")
	var b strings.Builder
	b.Grow(len(raw))
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		if b.Len() == 0 && i == 0 {
			b.WriteString(segment)
			continue
		}
		b.WriteString(strings.ToUpper(segment[:1]))
		b.WriteString(segment[1:])
	}
	name := b.String()
	if name == "" {
		name = "arg"
	}
	if goKeywords[name] {
		name += "_"
	}
	return name
}
