package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"

	"github.com/nvimbind/nvimgen/errors"
	"github.com/nvimbind/nvimgen/manifest"
)

// Options configure one generation pass.
type Options struct {
	// PackageName is the package clause of the emitted file.
	PackageName string
	// SkipDeprecated drops functions carrying a deprecation ordinal.
	SkipDeprecated bool
}

// Generator turns a decoded manifest into one Go source file of inert
// declarations and call stubs.
type Generator struct {
	m    *manifest.Manifest
	tm   *typeMapper
	opts Options
}

func New(m *manifest.Manifest, opts Options) *Generator {
	if opts.PackageName == "" {
		opts.PackageName = "nvim"
	}
	return &Generator{m: m, tm: newTypeMapper(m), opts: opts}
}

// Generate emits the stub file. The text is rendered from the model,
// then run through go/format both to normalize layout and to prove the
// output parses. Output is a pure function of the manifest: every
// unordered table is iterated in lexicographic key order, so
// byte-identical input yields byte-identical output.
func (g *Generator) Generate() ([]byte, error) {
	model, err := g.buildModel()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, model); err != nil {
		return nil, errors.New(errors.PhaseGenerate, errors.KindInvalidData).
			Detail("template execution failed").
			Cause(err).
			Build()
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.New(errors.PhaseGenerate, errors.KindInvalidData).
			Detail("generated source does not parse").
			Cause(err).
			Build()
	}
	return src, nil
}

type fileModel struct {
	Package   string
	Version   manifest.Version
	Errors    []errorDecl
	Handles   []handleDecl
	UIOptions []uiOption
	Stubs     []stubModel
	NeedsIter bool
}

type errorDecl struct {
	Ident string
	ID    int64
}

type handleDecl struct {
	Name string
	Tag  int64
}

type uiOption struct {
	Ident string
	Raw   string
}

type stubParam struct {
	Name string
	Type string
}

type stubModel struct {
	FuncName        string
	WireName        string
	Since           int64
	Deprecated      bool
	DeprecatedSince int64
	Params          []stubParam
	NArgs       int
	OutType     string // empty for void
	EncodeLines []string
	DecodeLines []string
}

func (g *Generator) buildModel() (*fileModel, error) {
	model := &fileModel{
		Package: g.opts.PackageName,
		Version: g.m.Version,
	}

	for _, name := range g.m.ErrorTypeNames() {
		model.Errors = append(model.Errors, errorDecl{
			Ident: CamelIdent(name),
			ID:    g.m.ErrorTypes[name].ID,
		})
	}

	for _, name := range g.m.TypeNames() {
		model.Handles = append(model.Handles, handleDecl{
			Name: CamelIdent(name),
			Tag:  g.m.Types[name].ID,
		})
	}

	// Enumerant derivation must be a bijection back to the raw
	// strings; two options collapsing onto one identifier would make
	// the reverse mapping ambiguous.
	seen := make(map[string]string, len(g.m.UIOptions))
	for _, raw := range g.m.UIOptions {
		ident := CamelIdent(raw)
		if prev, dup := seen[ident]; dup {
			return nil, errors.New(errors.PhaseGenerate, errors.KindDuplicateKey).
				Path("ui_options").
				Detail("options %q and %q normalize to the same enumerant %s", prev, raw, ident).
				Build()
		}
		seen[ident] = raw
		model.UIOptions = append(model.UIOptions, uiOption{Ident: ident, Raw: raw})
	}

	for _, fn := range g.m.Functions {
		if g.opts.SkipDeprecated && fn.DeprecatedSince != nil {
			continue
		}
		if !g.tm.representable(fn) {
			continue
		}
		stub, err := g.buildStub(fn)
		if err != nil {
			return nil, err
		}
		model.Stubs = append(model.Stubs, stub)
		for _, p := range stub.Params {
			if strings.HasPrefix(p.Type, "iter.Seq[") {
				model.NeedsIter = true
			}
		}
	}

	return model, nil
}

func (g *Generator) buildStub(fn manifest.Function) (stubModel, error) {
	stub := stubModel{
		FuncName: CamelIdent(fn.Name),
		WireName: fn.Name,
		Since:    fn.Since,
		NArgs:    len(fn.Parameters),
	}
	if fn.DeprecatedSince != nil {
		stub.Deprecated = true
		stub.DeprecatedSince = *fn.DeprecatedSince
	}

	var enc []string
	for _, p := range fn.Parameters {
		goType, ok := g.tm.paramGoType(p.Type)
		if !ok {
			return stubModel{}, errors.New(errors.PhaseGenerate, errors.KindUnsupported).
				Path("functions", fn.Name, p.Name).
				Detail("parameter type has no representation").
				Build()
		}
		name := paramIdent(p.Name)
		stub.Params = append(stub.Params, stubParam{Name: name, Type: goType})
		enc = append(enc, g.encodeLines(p.Type, goType, name))
	}
	enc = append(enc, "return nil")
	stub.EncodeLines = enc

	outType, ok := g.tm.returnGoType(fn.ReturnType, fn.Name)
	if !ok {
		return stubModel{}, errors.New(errors.PhaseGenerate, errors.KindUnsupported).
			Path("functions", fn.Name).
			Detail("return type has no representation").
			Build()
	}
	stub.OutType = outType
	stub.DecodeLines = g.decodeLines(fn.ReturnType, outType)

	return stub, nil
}

// encodeLines renders the statements that put one argument on the
// wire inside the request closure.
func (g *Generator) encodeLines(tn manifest.TypeName, goType, name string) string {
	switch t := tn.(type) {
	case manifest.DynamicArrayType:
		elem, _ := g.tm.scalarGoType(string(t))
		return fmt.Sprintf(`if err := msgpack.EncodeSeq(e, %s, func(e *msgpack.Encoder, el %s) error {
	return %s
}); err != nil {
	return err
}`, name, elem, g.tm.writeExpr(elem, "el"))
	case manifest.FixedArrayType:
		elem, _ := g.tm.scalarGoType(t.Elem)
		return fmt.Sprintf(`if err := e.WriteArrayLen(%d); err != nil {
	return err
}
for i := range %s {
	if err := %s; err != nil {
		return err
	}
}`, t.Size, name, g.tm.writeExpr(elem, name+"[i]"))
	default:
		return fmt.Sprintf(`if err := %s; err != nil {
	return err
}`, g.tm.writeExpr(goType, name))
	}
}

// decodeLines renders the body of the reply closure. A void return
// still has a result slot on the wire, which is consumed and dropped.
func (g *Generator) decodeLines(tn manifest.TypeName, outType string) []string {
	if outType == "" {
		return []string{"return d.Skip()"}
	}

	switch t := tn.(type) {
	case manifest.DynamicArrayType:
		elemGo, _ := g.tm.scalarGoType(string(t))
		call, conv := g.tm.readCall(elemGo)
		v := "v"
		if conv != "" {
			v = conv + "(v)"
		}
		return []string{fmt.Sprintf(`n, err := d.ReadArrayLen()
if err != nil {
	return err
}
out = make([]%s, 0, n)
for i := 0; i < n; i++ {
	v, err := %s
	if err != nil {
		return err
	}
	out = append(out, %s)
}
return nil`, elemGo, call, v)}
	case manifest.FixedArrayType:
		elemGo, _ := g.tm.scalarGoType(t.Elem)
		call, conv := g.tm.readCall(elemGo)
		v := "v"
		if conv != "" {
			v = conv + "(v)"
		}
		return []string{fmt.Sprintf(`if err := d.ReadFixedArrayLen(%d); err != nil {
	return err
}
for i := range out {
	v, err := %s
	if err != nil {
		return err
	}
	out[i] = %s
}
return nil`, t.Size, call, v)}
	default:
		call, conv := g.tm.readCall(outType)
		v := "v"
		if conv != "" {
			v = conv + "(v)"
		}
		return []string{fmt.Sprintf(`v, err := %s
if err != nil {
	return err
}
out = %s
return nil`, call, v)}
	}
}
