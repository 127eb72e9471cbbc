package parser

import (
	"strings"
	"unicode"
)

// toSnakeCase converts PascalCase or camelCase to snake_case, keeping
// acronyms together ("HTTPSConnection" -> "https_connection").
func toSnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(s)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if i > 0 && unicode.IsUpper(r) {
			prevUpper := unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if !prevUpper || nextLower {
				result.WriteRune('_')
			}
		}

		result.WriteRune(r)
	}

	return strings.ToLower(result.String())
}

// toPascalCase converts snake_case, kebab-case or dotted names to PascalCase.
func toPascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})

	var result strings.Builder
	for _, part := range parts {
		runes := []rune(part)
		result.WriteRune(unicode.ToUpper(runes[0]))
		result.WriteString(string(runes[1:]))
	}

	return result.String()
}

// toCamelCase converts snake_case or kebab-case to camelCase.
func toCamelCase(s string) string {
	pascal := toPascalCase(s)
	if len(pascal) == 0 {
		return pascal
	}

	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// propertyName derives the PHP property name of a Go field: the json tag name
// when present, the snake-cased Go identifier otherwise, camelCased either way.
func propertyName(goName, jsonName string) string {
	if jsonName != "" {
		return toCamelCase(jsonName)
	}
	return toCamelCase(toSnakeCase(goName))
}
