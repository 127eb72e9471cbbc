package php

import (
	"regexp"
	"strings"
)

// Case is the letter case applied to a constant name.
type Case int

const (
	CaseUpper Case = iota
	CaseLower
	CaseNone
)

var (
	invalidIdentChars = regexp.MustCompile(`[^A-Za-z0-9_]`)
	leadingDigit      = regexp.MustCompile(`^[0-9]`)
)

// Constant is a class constant. Its name is derived from an arbitrary
// identifier; without an explicit value the identifier itself is the value.
type Constant struct {
	access     Access
	identifier string
	value      Value
	letterCase Case
}

func NewConstant(access Access, identifier string, value Value, c Case) *Constant {
	return &Constant{access: access, identifier: identifier, value: value, letterCase: c}
}

func PublicConstant(identifier string, value Value) *Constant {
	return NewConstant(Public, identifier, value, CaseUpper)
}

func ProtectedConstant(identifier string, value Value) *Constant {
	return NewConstant(Protected, identifier, value, CaseUpper)
}

func PrivateConstant(identifier string, value Value) *Constant {
	return NewConstant(Private, identifier, value, CaseUpper)
}

func (c *Constant) Access() Access {
	return c.access
}

func (c *Constant) Identifier() string {
	return c.identifier
}

// Name returns the sanitized, cased constant name.
func (c *Constant) Name() string {
	name := sanitizeIdentifier(c.identifier)
	switch c.letterCase {
	case CaseUpper:
		return strings.ToUpper(name)
	case CaseLower:
		return strings.ToLower(name)
	default:
		return name
	}
}

// Value returns the explicit value, or the identifier when none was set.
func (c *Constant) Value() any {
	if !c.value.IsSet() {
		return c.identifier
	}
	return c.value.Get()
}

func (c *Constant) SetValue(v any) *Constant {
	c.value = ValueOf(v)
	return c
}

func (c *Constant) SetCase(lc Case) *Constant {
	c.letterCase = lc
	return c
}

func sanitizeIdentifier(s string) string {
	s = invalidIdentChars.ReplaceAllString(s, "_s_")
	if leadingDigit.MatchString(s) {
		s = "_" + s
	}
	return s
}
