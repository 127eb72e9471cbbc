package parser

import (
	"path/filepath"
	"strings"

	"github.com/cmmoran/phpmodelgen/pkg/errors"
	"github.com/cmmoran/phpmodelgen/pkg/php"
	"github.com/cmmoran/phpmodelgen/pkg/render"
)

// TagFilter excludes a field/type when the struct tag matches Key and contains Value.
type TagFilter struct {
	Key   string `json:"key" yaml:"key" toml:"key" mapstructure:"key"`
	Value string `json:"value" yaml:"value" toml:"value" mapstructure:"value"`
}

// Options control parsing and PHP generation.
//
// InDir             – directory of the Go module to parse
// OutDir            – directory receiving one <Class>.php per type
// Namespace         – PHP namespace; derived from the go.mod module path when empty
// Profile           – legacy, intermediate or modern
// Suffix            – append to every class name
// FieldAccess       – public, protected or private properties
// Final             – declare classes final
// Constructor       – add a constructor assigning (or promoting) every property
// Getters           – add getX() for every property
// Setters           – add setX() for every property
// FluentSetters     – setters return $this
// Adders            – add addX() for every array property
// NoStrictTypes     – omit declare(strict_types=1)
// ExcludeDeprecated – skip types and fields whose comment contains "deprecated".
// ExcludeTypes      – names of types to skip (case‑insensitive).
// ExcludeByTags     – filters to skip fields.
type Options struct {
	InDir             string      `json:"in_dir,omitempty" yaml:"in_dir,omitempty" toml:"in_dir,omitempty" mapstructure:"in_dir,omitempty"`
	OutDir            string      `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	Namespace         string      `json:"namespace,omitempty" yaml:"namespace,omitempty" toml:"namespace,omitempty" mapstructure:"namespace,omitempty"`
	Profile           string      `json:"profile,omitempty" yaml:"profile,omitempty" toml:"profile,omitempty" mapstructure:"profile,omitempty"`
	Suffix            string      `json:"suffix,omitempty" yaml:"suffix,omitempty" toml:"suffix,omitempty" mapstructure:"suffix,omitempty"`
	FieldAccess       string      `json:"field_access,omitempty" yaml:"field_access,omitempty" toml:"field_access,omitempty" mapstructure:"field_access,omitempty"`
	Final             bool        `json:"final,omitempty" yaml:"final,omitempty" toml:"final,omitempty" mapstructure:"final,omitempty"`
	Constructor       bool        `json:"constructor,omitempty" yaml:"constructor,omitempty" toml:"constructor,omitempty" mapstructure:"constructor,omitempty"`
	Getters           bool        `json:"getters,omitempty" yaml:"getters,omitempty" toml:"getters,omitempty" mapstructure:"getters,omitempty"`
	Setters           bool        `json:"setters,omitempty" yaml:"setters,omitempty" toml:"setters,omitempty" mapstructure:"setters,omitempty"`
	FluentSetters     bool        `json:"fluent_setters,omitempty" yaml:"fluent_setters,omitempty" toml:"fluent_setters,omitempty" mapstructure:"fluent_setters,omitempty"`
	Adders            bool        `json:"adders,omitempty" yaml:"adders,omitempty" toml:"adders,omitempty" mapstructure:"adders,omitempty"`
	NoStrictTypes     bool        `json:"no_strict_types,omitempty" yaml:"no_strict_types,omitempty" toml:"no_strict_types,omitempty" mapstructure:"no_strict_types,omitempty"`
	ExcludeDeprecated bool        `json:"exclude_deprecated,omitempty" yaml:"exclude_deprecated,omitempty" toml:"exclude_deprecated,omitempty" mapstructure:"exclude_deprecated,omitempty"`
	ExcludeTypes      []string    `json:"exclude_types,omitempty" yaml:"exclude_types,omitempty" toml:"exclude_types,omitempty" mapstructure:"exclude_types,omitempty"`
	ExcludeByTags     []TagFilter `json:"exclude_by_tags,omitempty" yaml:"exclude_by_tags,omitempty" toml:"exclude_by_tags,omitempty" mapstructure:"exclude_by_tags,omitempty"`
}

func NewOptions() *Options {
	return &Options{
		InDir:       ".",
		OutDir:      "php",
		Profile:     string(render.Modern),
		FieldAccess: string(php.Protected),
	}
}

// Normalize fills defaults, parses `key:value` tag filters and validates the
// profile and field access.
func (o *Options) Normalize(excludeByTagsStrings ...string) error {
	for _, s := range excludeByTagsStrings {
		key, val, ok := strings.Cut(s, ":")
		if !ok {
			return errors.Newf("invalid tag filter %q, want key:value", s)
		}
		o.ExcludeByTags = append(o.ExcludeByTags, TagFilter{Key: key, Value: strings.Trim(val, `"`)})
	}
	for i, t := range o.ExcludeTypes {
		o.ExcludeTypes[i] = strings.ToLower(strings.TrimSpace(t))
	}
	if len(o.InDir) == 0 {
		o.InDir = "."
	}
	if strings.Contains(o.InDir, ".") {
		o.InDir, _ = filepath.Abs(o.InDir)
	}
	if len(o.OutDir) == 0 {
		o.OutDir = "php"
	}
	if strings.Contains(o.OutDir, ".") {
		o.OutDir, _ = filepath.Abs(o.OutDir)
	}
	o.Namespace = strings.Trim(o.Namespace, `\`)

	if o.Profile == "" {
		o.Profile = string(render.Modern)
	}
	p, err := render.ParseProfile(o.Profile)
	if err != nil {
		return err
	}
	o.Profile = string(p)

	if o.FieldAccess == "" {
		o.FieldAccess = string(php.Protected)
	}
	switch php.Access(strings.ToLower(o.FieldAccess)) {
	case php.Public, php.Protected, php.Private:
		o.FieldAccess = strings.ToLower(o.FieldAccess)
	default:
		return errors.Newf("invalid field access %q", o.FieldAccess)
	}
	if o.FluentSetters {
		o.Setters = true
	}
	return nil
}

// RenderProfile returns the validated profile. Call Normalize first.
func (o *Options) RenderProfile() render.Profile {
	return render.Profile(o.Profile)
}

// Access returns the property visibility. Call Normalize first.
func (o *Options) Access() php.Access {
	return php.Access(o.FieldAccess)
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithInDir(d string) Option       { return func(o *Options) { o.InDir = d } }
func WithOutDir(d string) Option      { return func(o *Options) { o.OutDir = d } }
func WithNamespace(ns string) Option  { return func(o *Options) { o.Namespace = ns } }
func WithProfile(p string) Option     { return func(o *Options) { o.Profile = p } }
func WithSuffix(s string) Option      { return func(o *Options) { o.Suffix = s } }
func WithFieldAccess(a string) Option { return func(o *Options) { o.FieldAccess = a } }
func WithFinal() Option               { return func(o *Options) { o.Final = true } }
func WithConstructor() Option         { return func(o *Options) { o.Constructor = true } }
func WithGetters() Option             { return func(o *Options) { o.Getters = true } }
func WithSetters(fluent bool) Option {
	return func(o *Options) { o.Setters, o.FluentSetters = true, fluent }
}
func WithAdders() Option            { return func(o *Options) { o.Adders = true } }
func WithoutStrictTypes() Option    { return func(o *Options) { o.NoStrictTypes = true } }
func WithExcludeDeprecated() Option { return func(o *Options) { o.ExcludeDeprecated = true } }
func WithExcludeTypes(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.ExcludeTypes = append(o.ExcludeTypes, strings.TrimSpace(n))
		}
	}
}
func WithExcludeByTag(key, val string) Option {
	return func(o *Options) { o.ExcludeByTags = append(o.ExcludeByTags, TagFilter{key, val}) }
}
