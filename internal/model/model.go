package model

import (
	"go/ast"
)

type RawField struct {
	Name       string        // Go identifier
	Comment    string        // doc and line comment of the field
	TypeExpr   ast.Expr      // AST for the type (pointer, slice, selector, …)
	TagLit     *ast.BasicLit // the raw `\`…\`` literal
	IsExport   bool          // ast.IsExported(Name)
	IsEmbedded bool
}

// RawStruct is a Go type declaration as found in the source: a struct, a
// slice alias (`type Widgets []*Widget`) or a named basic type
// (`type Status string`), the latter becoming an enum when constants of that
// type exist.
type RawStruct struct {
	Name       string
	Alias      *string // element type name of a slice alias
	AliasPtr   *bool   // slice alias elements are pointers
	Basic      string  // underlying builtin of a named basic type
	EnumValues []string
	Comment    string
	Fields     []*RawField
	PkgPath    string            // e.g. "github.com/you/project/model"
	Imports    map[string]string // import name → path, for selector resolution
	File       *ast.File
}

// IsEnum reports whether the type is a string with declared constant values.
func (r *RawStruct) IsEnum() bool {
	return r.Basic == "string" && len(r.EnumValues) > 0
}
