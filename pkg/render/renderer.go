// Package render turns the declarations of package php into PHP source for
// one of three syntax profiles. A renderer never modifies the entities it is
// given, so rendering the same graph twice yields identical text.
package render

import (
	"log/slog"

	"github.com/cmmoran/phpmodelgen/pkg/phptype"
	"github.com/cmmoran/phpmodelgen/pkg/source"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithIndent sets the string used for one indentation level.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// WithStrictTypes controls the `declare(strict_types=1);` file header.
func WithStrictTypes(strict bool) Option {
	return func(r *Renderer) {
		r.strict = strict
	}
}

// Renderer renders declarations for a single profile.
type Renderer struct {
	caps   Capabilities
	indent string
	strict bool
	logger *slog.Logger
}

// New returns a renderer for profile p.
func New(p Profile, opts ...Option) (*Renderer, error) {
	caps, err := CapabilitiesFor(p)
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		caps:   caps,
		indent: source.DefaultIndent,
		strict: true,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Renderer) Profile() Profile {
	return r.caps.Profile()
}

func (r *Renderer) Capabilities() Capabilities {
	return r.caps
}

// TypeHint returns the native hint of a parameter or return type, or false
// when t can only be documented.
func (r *Renderer) TypeHint(t *phptype.Type) (string, bool) {
	if t == nil || t.IsEmpty() {
		return "", false
	}
	h, ok := t.Hint(r.caps.SupportsNativeUnion(), r.caps.InvalidHints()...)
	if !ok {
		r.logger.Debug("type has no native hint", "type", t.DocHint(), "profile", r.caps.Profile())
	}
	return h, ok
}

// PropertyHint is TypeHint for property declarations.
func (r *Renderer) PropertyHint(t *phptype.Type) (string, bool) {
	if t == nil || !r.caps.CanHintProperty(t) {
		return "", false
	}
	return r.TypeHint(t)
}

// needsDoc reports whether t must be documented next to a declaration that
// did or did not get a native hint. Array element types are never native.
func needsDoc(t *phptype.Type, hinted bool) bool {
	return !t.IsEmpty() && (!hinted || t.HasArray())
}
