package phptype

import (
	"strings"

	"github.com/cmmoran/phpmodelgen/pkg/errors"
)

// FromString parses a type string. Recognized shapes:
//
//	?T                 nullable T
//	A|B|null           union; `T|null` collapses to ?T, `mixed|null` to mixed
//	array<K, V>        array whose element type V may itself be a union
//	Name               scalar or class
//
// Pipes nested inside `array<...>` never split the outer type.
func FromString(s string) (*Type, error) {
	s = strings.TrimSpace(s)
	if strings.Trim(s, "? ") == "" {
		return nil, errors.InvalidTypef("no type hint found in %q", s)
	}

	parts := make([]string, 0, 2)
	for _, p := range splitTopLevel(s, '|') {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	onlyNull := true
	hasNull, hasMixed := false, false
	for _, p := range parts {
		switch p {
		case "null":
			hasNull = true
		case "mixed":
			hasMixed = true
			onlyNull = false
		default:
			onlyNull = false
		}
	}
	if len(parts) == 0 || (len(parts) > 1 && onlyNull) {
		return nil, errors.InvalidTypef("no type hint found in %q", s)
	}
	if len(parts) == 1 {
		return fromSingle(parts[0])
	}

	if len(parts) == 2 && hasNull {
		if hasMixed {
			return newType("mixed", true), nil
		}
		other := parts[0]
		if other == "null" {
			other = parts[1]
		}
		return fromSingle("?" + strings.TrimPrefix(other, "?"))
	}

	t := Empty()
	for _, p := range parts {
		if err := t.AddAlternative(p); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// MustFromString is FromString for literals known to be valid.
func MustFromString(s string) *Type {
	t, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return t
}

func fromSingle(s string) (*Type, error) {
	nullable := false
	for strings.HasPrefix(s, "?") {
		nullable = true
		s = strings.TrimSpace(s[1:])
	}
	if s == "" {
		return nil, errors.InvalidTypef("no type hint found after nullability marker")
	}
	return newType(s, nullable), nil
}

// genericArgs returns the top-level arguments of `array<...>`.
func genericArgs(name string) []string {
	open := strings.Index(name, "<")
	if open < 0 || !strings.HasSuffix(name, ">") {
		return nil
	}
	var args []string
	for _, a := range splitTopLevel(name[open+1:len(name)-1], ',') {
		if a = strings.TrimSpace(a); a != "" {
			args = append(args, a)
		}
	}
	return args
}

// splitTopLevel splits s on sep, ignoring separators nested in <> or ().
func splitTopLevel(s string, sep rune) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '<', '(':
			depth++
		case '>', ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
