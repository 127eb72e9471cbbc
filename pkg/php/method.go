package php

import (
	"unicode"
	"unicode/utf8"

	"github.com/jinzhu/inflection"

	"github.com/cmmoran/phpmodelgen/pkg/phptype"
	"github.com/cmmoran/phpmodelgen/pkg/source"
)

// ConstructorName is the identifier of a class constructor.
const ConstructorName = "__construct"

// Method is a class method.
type Method struct {
	Function

	access     Access
	final      bool
	static     bool
	abstract   bool
	autoAssign bool
}

// NewMethod builds a method with explicit access.
func NewMethod(access Access, name string, params []*Param, body source.Block, returnType *phptype.Type, comment *DocComment) *Method {
	m := &Method{
		Function: *NewFunction(name, params, body, returnType),
		access:   access,
	}
	m.comment = comment
	return m
}

func PublicMethod(name string, params []*Param, body source.Block, returnType *phptype.Type) *Method {
	return NewMethod(Public, name, params, body, returnType, nil)
}

func ProtectedMethod(name string, params []*Param, body source.Block, returnType *phptype.Type) *Method {
	return NewMethod(Protected, name, params, body, returnType, nil)
}

func PrivateMethod(name string, params []*Param, body source.Block, returnType *phptype.Type) *Method {
	return NewMethod(Private, name, params, body, returnType, nil)
}

// Constructor builds a public `__construct`. With autoAssign, parameters bound
// to fields are assigned to them, or promoted where the renderer supports it.
func Constructor(params []*Param, body source.Block, autoAssign bool) *Method {
	m := PublicMethod(ConstructorName, params, body, nil)
	m.autoAssign = autoAssign
	return m
}

// Getter builds `getX(): T` returning the field.
func Getter(f *Field) *Method {
	return PublicMethod(
		"get"+upperFirst(f.name),
		nil,
		source.Lines("return $this->"+f.name+";"),
		f.typ,
	)
}

// Setter builds `setX(T $x)`. A fluent setter returns `$this` typed `static`.
func Setter(f *Field, fluent bool) *Method {
	body := source.Lines("$this->" + f.name + " = $" + f.name + ";")
	ret := phptype.MustFromString("void")
	if fluent {
		body = body.Extend(source.Lines("return $this;"))
		ret = phptype.MustFromString("static")
	}
	return PublicMethod("set"+upperFirst(f.name), []*Param{NewParam(f.name, f.typ)}, body, ret)
}

// Adder builds `addItem(Elem $item): void` appending to an array field. It
// reports false when the field is not an array.
func Adder(f *Field) (*Method, bool) {
	if !f.typ.IsArray(true) || f.typ.IsUnion() {
		return nil, false
	}
	elem, err := f.typ.ElementType()
	if err != nil || elem == nil {
		return nil, false
	}
	item := inflection.Singular(f.name)
	if item == f.name {
		item += "Item"
	}
	return PublicMethod(
		"add"+upperFirst(item),
		[]*Param{NewParam(item, elem)},
		source.Lines("$this->"+f.name+"[] = $"+item+";"),
		phptype.MustFromString("void"),
	), true
}

func (m *Method) Access() Access {
	return m.access
}

func (m *Method) SetAccess(a Access) *Method {
	m.access = a
	return m
}

// SetFinal marks the method final. Final together with abstract is accepted.
func (m *Method) SetFinal() *Method {
	m.final = true
	return m
}

func (m *Method) IsFinal() bool {
	return m.final
}

func (m *Method) SetStatic() *Method {
	m.static = true
	return m
}

func (m *Method) IsStatic() bool {
	return m.static
}

// SetAbstract marks the method abstract; its body is not rendered.
func (m *Method) SetAbstract() *Method {
	m.abstract = true
	return m
}

func (m *Method) IsAbstract() bool {
	return m.abstract
}

func (m *Method) IsConstructor() bool {
	return m.name == ConstructorName
}

func (m *Method) AutoAssign() bool {
	return m.autoAssign
}

func (m *Method) SetAutoAssign(v bool) *Method {
	m.autoAssign = v
	return m
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
