package render

import (
	"strings"

	"github.com/cmmoran/phpmodelgen/pkg/errors"
	"github.com/cmmoran/phpmodelgen/pkg/phptype"
)

// Profile names one historical PHP syntax level.
type Profile string

const (
	// Legacy has no typed properties, no unions, no promotion and no attributes.
	Legacy Profile = "legacy"
	// Intermediate adds typed properties.
	Intermediate Profile = "intermediate"
	// Modern adds union types, constructor promotion and attributes.
	Modern Profile = "modern"
)

// Profiles lists every profile, oldest first.
var Profiles = []Profile{Legacy, Intermediate, Modern}

// ParseProfile accepts a profile name, case-insensitively.
func ParseProfile(s string) (Profile, error) {
	p := Profile(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Profiles {
		if p == known {
			return p, nil
		}
	}
	return "", errors.Unsupportedf("unknown profile %q (want one of %v)", s, Profiles)
}

// Capabilities answers what a profile can express natively.
type Capabilities interface {
	Profile() Profile
	SupportsNativeUnion() bool
	SupportsPromotion() bool
	SupportsAttributes() bool
	// CanHintProperty reports whether a property of type t gets a native hint.
	CanHintProperty(t *phptype.Type) bool
	// InvalidHints lists type names that must never be declared natively.
	InvalidHints() []string
}

// CapabilitiesFor returns the strategy for p.
func CapabilitiesFor(p Profile) (Capabilities, error) {
	switch p {
	case Legacy:
		return legacy{}, nil
	case Intermediate:
		return intermediate{Capabilities: legacy{}}, nil
	case Modern:
		return modern{Capabilities: intermediate{Capabilities: legacy{}}}, nil
	}
	return nil, errors.Unsupportedf("unknown profile %q", p)
}

type legacy struct{}

func (legacy) Profile() Profile { return Legacy }
func (legacy) SupportsNativeUnion() bool { return false }
func (legacy) SupportsPromotion() bool { return false }
func (legacy) SupportsAttributes() bool { return false }
func (legacy) CanHintProperty(*phptype.Type) bool { return false }
func (legacy) InvalidHints() []string { return []string{"resource", "mixed", "static"} }

// intermediate overrides property hinting only.
type intermediate struct {
	Capabilities
}

func (intermediate) Profile() Profile { return Intermediate }

func (c intermediate) CanHintProperty(t *phptype.Type) bool {
	if t.IsEmpty() || t.IsUnion() || t.Is("callable") {
		return false
	}
	_, ok := t.Hint(false, c.InvalidHints()...)
	return ok
}

// modern adds unions, promotion and attributes on top of intermediate.
type modern struct {
	Capabilities
}

func (modern) Profile() Profile { return Modern }
func (modern) SupportsNativeUnion() bool { return true }
func (modern) SupportsPromotion() bool { return true }
func (modern) SupportsAttributes() bool { return true }
func (modern) InvalidHints() []string { return []string{"resource"} }

func (c modern) CanHintProperty(t *phptype.Type) bool {
	if t.IsEmpty() || t.Is("callable") {
		return false
	}
	_, ok := t.Hint(true, c.InvalidHints()...)
	return ok
}
