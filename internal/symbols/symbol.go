// Package symbols defines the symbol model produced by the scanner and the
// identifier-set machinery used by the dependency closure resolver.
package symbols

// Kind identifies what a scanned declaration is.
type Kind string

const (
	KindFnProto       Kind = "fn_proto"
	KindFnDef         Kind = "fn_def"
	KindStruct        Kind = "struct"
	KindTypedefStruct Kind = "typedef_struct"
)

// IsFunction reports whether the kind is a function prototype or definition.
func (k Kind) IsFunction() bool {
	return k == KindFnProto || k == KindFnDef
}

// IsType reports whether the kind declares a struct-like type.
func (k Kind) IsType() bool {
	return k == KindStruct || k == KindTypedefStruct
}

// Visibility classifies whether a symbol belongs to the public API surface.
// The string values are the display form used by every emitter.
type Visibility string

const (
	Public  Visibility = "PUBLIC"
	Private Visibility = "PRIVATE"
)

// AnonTypedefName is recorded for a typedef'd struct whose trailing
// identifier cannot be found. Plain anonymous structs are never recorded.
const AnonTypedefName = "ANON_TYPEDEF_STRUCT"

// Symbol is one extracted declaration or definition. Symbols are immutable
// once created; a scan produces an ordered list of them.
type Symbol struct {
	Kind       Kind
	Visibility Visibility
	Name       string
	File       string // relative to the scan root, slash-separated
	LineStart  int    // 1-based, inclusive
	LineEnd    int    // 1-based, inclusive
	Snippet    string // original-text lines [LineStart, LineEnd], trailing newline trimmed
	Signature  string // functions only: collapsed first line without the trailing ; or {
}

// MatchesKindFilter reports whether k satisfies a search kind filter.
// "fn" covers both function kinds, "struct" covers both struct kinds, exact
// kind names select one kind, and anything else (including "") matches all.
func MatchesKindFilter(k Kind, filter string) bool {
	switch filter {
	case "fn":
		return k.IsFunction()
	case "fn_proto":
		return k == KindFnProto
	case "fn_def":
		return k == KindFnDef
	case "struct":
		return k.IsType()
	case "typedef_struct":
		return k == KindTypedefStruct
	}
	return true
}
