package php

import (
	"strings"
	"unicode"
)

// EnumCase is one case of a backed enumeration. The case name is derived
// from the backing string.
type EnumCase struct {
	value string
}

func NewEnumCase(value string) *EnumCase {
	return &EnumCase{value: value}
}

// Value returns the backing string.
func (e *EnumCase) Value() string {
	return e.value
}

// Name returns the sanitized case name, e.g. `foo-bar` becomes `FooBar` and
// `3DS` becomes `_3DS`.
func (e *EnumCase) Name() string {
	return EnumCaseName(e.value)
}

// EnumCaseName turns an arbitrary string into a PascalCase identifier.
func EnumCaseName(s string) string {
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "_", " ")
	words := strings.FieldsFunc(s, unicode.IsSpace)
	for i, w := range words {
		words[i] = upperFirst(w)
	}
	return sanitizeIdentifier(strings.Join(words, ""))
}
