package php

import (
	"github.com/cmmoran/phpmodelgen/pkg/phptype"
)

// Field is a class property.
type Field struct {
	access     Access
	name       string
	typ        *phptype.Type
	value      Value
	comment    *DocComment
	static     bool
	raw        bool
	promoted   bool
	attributes []*Attribute
}

// NewField builds a property. The type is copied; a nil type means untyped.
// When no comment is given and the type cannot be hinted natively, a `@var`
// comment is synthesized.
func NewField(access Access, name string, value Value, typ *phptype.Type, comment *DocComment) *Field {
	if typ == nil {
		typ = phptype.Empty()
	} else {
		typ = typ.Clone()
	}
	if comment == nil && typ.NeedsDocOnlyHint() {
		comment = VarComment(typ)
	}
	return &Field{
		access:  access,
		name:    name,
		typ:     typ,
		value:   value,
		comment: comment,
	}
}

func PublicField(name string, value Value, typ *phptype.Type) *Field {
	return NewField(Public, name, value, typ, nil)
}

func ProtectedField(name string, value Value, typ *phptype.Type) *Field {
	return NewField(Protected, name, value, typ, nil)
}

func PrivateField(name string, value Value, typ *phptype.Type) *Field {
	return NewField(Private, name, value, typ, nil)
}

func (f *Field) Access() Access {
	return f.access
}

func (f *Field) SetAccess(a Access) *Field {
	f.access = a
	return f
}

func (f *Field) Name() string {
	return f.name
}

func (f *Field) Type() *phptype.Type {
	return f.typ
}

func (f *Field) Value() Value {
	return f.value
}

func (f *Field) SetValue(v Value) *Field {
	f.value = v
	return f
}

func (f *Field) Comment() *DocComment {
	return f.comment
}

func (f *Field) SetComment(c *DocComment) *Field {
	f.comment = c
	return f
}

// SetStatic marks the property static.
func (f *Field) SetStatic() *Field {
	f.static = true
	return f
}

func (f *Field) IsStatic() bool {
	return f.static
}

// EnableRawValue makes a string value render verbatim instead of quoted.
func (f *Field) EnableRawValue() *Field {
	f.raw = true
	return f
}

func (f *Field) IsRaw() bool {
	return f.raw
}

// IsPromoted reports whether the field is bound to a constructor parameter.
func (f *Field) IsPromoted() bool {
	return f.promoted
}

func (f *Field) AddAttribute(a *Attribute) *Field {
	f.attributes = append(f.attributes, a)
	return f
}

func (f *Field) Attributes() []*Attribute {
	return append([]*Attribute(nil), f.attributes...)
}
