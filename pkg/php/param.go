package php

import (
	"github.com/cmmoran/phpmodelgen/pkg/errors"
	"github.com/cmmoran/phpmodelgen/pkg/phptype"
)

// Param is a function or method parameter. A parameter bound to a Field is
// assigned to it by a constructor, or promoted where the profile allows.
type Param struct {
	name       string
	typ        *phptype.Type
	value      Value
	variadic   bool
	field      *Field
	attributes []*Attribute
}

// NewParam builds a parameter. The type is copied; nil means untyped.
func NewParam(name string, typ *phptype.Type) *Param {
	if typ == nil {
		typ = phptype.Empty()
	} else {
		typ = typ.Clone()
	}
	return &Param{name: name, typ: typ}
}

// ParamFromField builds a parameter named and typed after f and bound to it.
func ParamFromField(f *Field) *Param {
	p := NewParam(f.name, f.typ)
	p.bind(f)
	return p
}

// AutoCreateField creates a field with the parameter's name and type and
// binds the parameter to it.
func (p *Param) AutoCreateField(access Access) *Field {
	f := NewField(access, p.name, NoValue(), p.typ, nil)
	p.bind(f)
	return f
}

func (p *Param) bind(f *Field) {
	f.promoted = true
	p.field = f
}

func (p *Param) Name() string {
	return p.name
}

func (p *Param) Type() *phptype.Type {
	return p.typ
}

// Field returns the bound field, nil when unbound.
func (p *Param) Field() *Field {
	return p.field
}

func (p *Param) Default() Value {
	return p.value
}

// SetDefault sets the default value. Variadic parameters cannot have one.
func (p *Param) SetDefault(v any) error {
	if p.variadic {
		return errors.Unsupportedf("variadic parameter $%s cannot have a default value", p.name)
	}
	p.value = ValueOf(v)
	return nil
}

// SetVariadic marks the parameter variadic. Parameters with a default value
// cannot be variadic.
func (p *Param) SetVariadic() error {
	if p.value.IsSet() {
		return errors.Unsupportedf("parameter $%s with a default value cannot be variadic", p.name)
	}
	p.variadic = true
	return nil
}

func (p *Param) IsVariadic() bool {
	return p.variadic
}

func (p *Param) AddAttribute(a *Attribute) *Param {
	p.attributes = append(p.attributes, a)
	return p
}

func (p *Param) Attributes() []*Attribute {
	return append([]*Attribute(nil), p.attributes...)
}
