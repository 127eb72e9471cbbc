package php

import (
	"github.com/cmmoran/phpmodelgen/pkg/phptype"
	"github.com/cmmoran/phpmodelgen/pkg/source"
)

// Function is a free function. Method embeds it.
type Function struct {
	name       string
	params     []*Param
	body       source.Block
	returnType *phptype.Type
	comment    *DocComment
}

// NewFunction builds a function. A nil return type means no return hint.
func NewFunction(name string, params []*Param, body source.Block, returnType *phptype.Type) *Function {
	if returnType == nil {
		returnType = phptype.Empty()
	} else {
		returnType = returnType.Clone()
	}
	return &Function{
		name:       name,
		params:     append([]*Param(nil), params...),
		body:       body,
		returnType: returnType,
	}
}

func (f *Function) Name() string {
	return f.name
}

func (f *Function) Params() []*Param {
	return append([]*Param(nil), f.params...)
}

func (f *Function) AddParam(p *Param) {
	f.params = append(f.params, p)
}

// Body returns the statements of the function. Callers must not modify it.
func (f *Function) Body() source.Block {
	return f.body
}

func (f *Function) SetBody(b source.Block) {
	f.body = b
}

// AddStatement appends one line per statement to the body.
func (f *Function) AddStatement(lines ...string) {
	f.body = f.body.Extend(source.Lines(lines...))
}

func (f *Function) ReturnType() *phptype.Type {
	return f.returnType
}

func (f *Function) SetReturnType(t *phptype.Type) {
	f.returnType = t.Clone()
}

func (f *Function) Comment() *DocComment {
	return f.comment
}

func (f *Function) SetComment(c *DocComment) {
	f.comment = c
}
