package parser

import (
	"strings"

	"github.com/cmmoran/phpmodelgen/internal/model"
)

// ShouldOmitField reports whether a field is left out of the generated class.
// `php:"-"` and `json:"-"` always omit; Options.ExcludeByTags filters match
// any ';' or ',' separated part of the tag value.
func ShouldOmitField(wf *model.WorkingField, opts *Options) bool {
	if wf == nil || wf.Tag == "" {
		return false
	}
	for _, key := range []string{"php", "json"} {
		if v, ok := wf.Tag.Lookup(key); ok && v == "-" {
			return true
		}
	}
	for _, f := range opts.ExcludeByTags {
		if v, ok := wf.Tag.Lookup(f.Key); ok && containsTagPart(v, f.Value) {
			return true
		}
	}
	return false
}

func containsTagPart(tagVal, expected string) bool {
	parts := strings.FieldsFunc(tagVal, func(r rune) bool {
		return r == ';' || r == ','
	})
	for _, part := range parts {
		if strings.TrimSpace(part) == expected {
			return true
		}
	}
	return false
}
