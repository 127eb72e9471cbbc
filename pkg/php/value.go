// Package php is the in-memory model of PHP declarations: classes, methods,
// functions, fields, parameters, constants and their doc comments. Rendering
// lives in package render.
package php

// Access is a member visibility keyword.
type Access string

const (
	Public    Access = "public"
	Protected Access = "protected"
	Private   Access = "private"
)

// Value is an optional literal. The zero Value means "no value", which is
// distinct from an explicit null (Null()).
type Value struct {
	v   any
	set bool
}

// NoValue returns the absent value.
func NoValue() Value {
	return Value{}
}

// ValueOf wraps v. ValueOf(nil) is an explicit null.
func ValueOf(v any) Value {
	return Value{v: v, set: true}
}

// Null returns an explicit null value.
func Null() Value {
	return ValueOf(nil)
}

// IsSet reports whether a value was supplied.
func (v Value) IsSet() bool {
	return v.set
}

// IsNull reports whether the value is an explicit null.
func (v Value) IsNull() bool {
	return v.set && v.v == nil
}

// Get returns the wrapped value, nil when absent.
func (v Value) Get() any {
	return v.v
}
