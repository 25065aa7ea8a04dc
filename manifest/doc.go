// Package manifest decodes the self-describing capability document the
// target application emits and parses its type-name grammar.
//
// The manifest arrives as one wire mapping with six sections:
//
//	version      7 scalar fields, baked into generated output
//	error_types  symbolic error name → numeric id
//	types        handle-kind name → {id, prefix}
//	functions    ordered procedure descriptors
//	ui_options   ordered raw option-name strings
//	ui_events    ordered event descriptors (no return types)
//
// Everything decoded here exists for the duration of one generation
// pass and is consumed immediately by the stub generator.
//
// Type-name tokens follow a small grammar: a bare ASCII-alphabetic
// scalar identifier, ArrayOf(Elem), or ArrayOf(Elem, N). The parser is
// purely lexical; nested ArrayOf is unsupported and rejected.
//
// Acquisition is abstracted behind the Source interface so the codec
// and generator can be exercised against canned fixtures without a
// live process.
package manifest
