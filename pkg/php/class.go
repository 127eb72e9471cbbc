package php

import (
	"strings"

	"github.com/cmmoran/phpmodelgen/pkg/errors"
)

// Class is a class declaration with its members in declaration order.
type Class struct {
	name       string
	namespace  string
	extends    string
	implements []string
	final      bool
	abstract   bool
	comment    *DocComment
	attributes []*Attribute
	constants  []*Constant
	fields     []*Field
	methods    []*Method
}

// NewClass builds a class from a possibly namespace-qualified name such as
// `App\Model\User`.
func NewClass(fqcn string) *Class {
	fqcn = strings.TrimPrefix(fqcn, `\`)
	c := &Class{name: fqcn}
	if i := strings.LastIndex(fqcn, `\`); i >= 0 {
		c.namespace, c.name = fqcn[:i], fqcn[i+1:]
	}
	return c
}

func (c *Class) Name() string {
	return c.name
}

func (c *Class) Namespace() string {
	return c.namespace
}

func (c *Class) Fqcn() string {
	if c.namespace == "" {
		return c.name
	}
	return c.namespace + `\` + c.name
}

func (c *Class) Extends() string {
	return c.extends
}

func (c *Class) SetExtends(parent string) *Class {
	c.extends = parent
	return c
}

func (c *Class) Implements() []string {
	return append([]string(nil), c.implements...)
}

func (c *Class) AddImplements(iface ...string) *Class {
	c.implements = append(c.implements, iface...)
	return c
}

func (c *Class) SetFinal() *Class {
	c.final = true
	return c
}

func (c *Class) IsFinal() bool {
	return c.final
}

func (c *Class) SetAbstract() *Class {
	c.abstract = true
	return c
}

func (c *Class) IsAbstract() bool {
	return c.abstract
}

func (c *Class) Comment() *DocComment {
	return c.comment
}

func (c *Class) SetComment(dc *DocComment) *Class {
	c.comment = dc
	return c
}

func (c *Class) AddAttribute(a *Attribute) *Class {
	c.attributes = append(c.attributes, a)
	return c
}

func (c *Class) Attributes() []*Attribute {
	return append([]*Attribute(nil), c.attributes...)
}

func (c *Class) AddConstant(k *Constant) *Class {
	c.constants = append(c.constants, k)
	return c
}

func (c *Class) Constants() []*Constant {
	return append([]*Constant(nil), c.constants...)
}

func (c *Class) AddField(f *Field) *Class {
	c.fields = append(c.fields, f)
	return c
}

func (c *Class) Fields() []*Field {
	return append([]*Field(nil), c.fields...)
}

// Field returns the field called name.
func (c *Class) Field(name string) (*Field, bool) {
	for _, f := range c.fields {
		if f.name == name {
			return f, true
		}
	}
	return nil, false
}

// AddMethod appends m. Abstract methods need an abstract class.
func (c *Class) AddMethod(m *Method) error {
	if m.abstract && !c.abstract {
		return errors.Unsupportedf("abstract method %s in non-abstract class %s", m.name, c.name)
	}
	c.methods = append(c.methods, m)
	return nil
}

func (c *Class) Methods() []*Method {
	return append([]*Method(nil), c.methods...)
}

// Method returns the method called name.
func (c *Class) Method(name string) (*Method, bool) {
	for _, m := range c.methods {
		if m.name == name {
			return m, true
		}
	}
	return nil, false
}
