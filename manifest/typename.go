package manifest

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/nvimbind/nvimgen/errors"
)

// TypeName is the parsed form of one manifest type-name token: a
// closed variant over the three shapes the grammar admits.
type TypeName interface {
	typeName()
}

// ScalarType is a bare scalar identifier such as "Boolean" or "Object".
type ScalarType string

// DynamicArrayType is ArrayOf(Elem): an unsized element sequence.
type DynamicArrayType string

// FixedArrayType is ArrayOf(Elem, N): exactly N elements.
type FixedArrayType struct {
	Elem string
	Size int64
}

func (ScalarType) typeName()       {}
func (DynamicArrayType) typeName() {}
func (FixedArrayType) typeName()   {}

// String renders the token back in its manifest spelling.
func (t ScalarType) String() string { return string(t) }

func (t DynamicArrayType) String() string { return "ArrayOf(" + string(t) + ")" }

func (t FixedArrayType) String() string { return fmt.Sprintf("ArrayOf(%s, %d)", t.Elem, t.Size) }

// The grammar is purely lexical: an ASCII-alphabetic identifier, or
// the ArrayOf form with an identifier element and an optional decimal
// size. Nested ArrayOf is not part of any observed manifest and is
// rejected rather than guessed at.
//
type typeNameGrammar struct {
	Array  *arrayForm `parser:"( @@"`
	Scalar *string    `parser:"| @Ident )"`
}

type arrayForm struct {
	Elem string `parser:"'ArrayOf' '(' @Ident"`
	Size *int64 `parser:"( ',' @Int )? ')'"`
}

var typeNameLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[A-Za-z]+`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[(),]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var typeNameParser = participle.MustBuild[typeNameGrammar](
	participle.Lexer(typeNameLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseTypeName parses a single manifest type-name token. Malformed or
// truncated input, an unterminated "ArrayOf(" included, fails
// explicitly.
func ParseTypeName(token string) (TypeName, error) {
	g, err := typeNameParser.ParseString("", token)
	if err != nil {
		return nil, errors.MalformedType(token, err)
	}
	switch {
	case g.Array != nil:
		if g.Array.Size != nil {
			return FixedArrayType{Elem: g.Array.Elem, Size: *g.Array.Size}, nil
		}
		return DynamicArrayType(g.Array.Elem), nil
	case g.Scalar != nil:
		return ScalarType(*g.Scalar), nil
	}
	return nil, errors.MalformedType(token, nil)
}
