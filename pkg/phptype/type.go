// Package phptype models PHP type expressions: scalars, classes, arrays of T,
// nullable types and unions, and produces the native and documentation hints
// a renderer needs for a given syntax profile.
package phptype

import (
	"slices"
	"strings"
)

var aliases = map[string]string{
	"boolean": "bool",
	"double":  "float",
	"integer": "int",
	"number":  "float",
}

var natives = map[string]struct{}{
	"string": {}, "float": {}, "bool": {}, "int": {},
	"resource": {}, "callable": {}, "object": {},
}

// unqualified names never take a namespace prefix.
var unqualified = map[string]struct{}{
	"mixed": {}, "null": {}, "array": {}, "iterable": {}, "void": {},
	"self": {}, "static": {}, "false": {}, "true": {},
}

// Type is a single PHP type or a union of types.
//
// A union keeps an empty primary name and stores its members as
// alternatives. Array-ness is encoded in the name, either as a `T[]` suffix
// or as an `array<K, V>` generic, never as a separate field.
type Type struct {
	name         string
	nullable     bool
	namespaced   bool
	simplified   bool
	namespace    string
	types        []*Type
	noNativeHint bool
}

func newType(name string, nullable bool) *Type {
	return &Type{
		name:         name,
		nullable:     nullable || name == "mixed",
		namespaced:   strings.Contains(name, `\`),
		noNativeHint: isLiteral(name),
	}
}

// isLiteral reports whether name is a quoted literal type such as 'red'.
func isLiteral(name string) bool {
	return len(name) >= 2 && (name[0] == '\'' || name[0] == '"') && name[len(name)-1] == name[0]
}

// Empty returns the "no type" sentinel.
func Empty() *Type {
	return &Type{}
}

// EnumString returns a union of string literal types. The result can only be
// documented, never declared natively.
func EnumString(values ...string) *Type {
	t := &Type{noNativeHint: true}
	for _, v := range values {
		lit := newType("'"+v+"'", false)
		if t.hasAlternative(lit.name) {
			continue
		}
		t.types = append(t.types, lit)
	}
	return t
}

// Name returns the primary name as written, empty for unions.
func (t *Type) Name() string {
	return t.name
}

// SetName replaces the primary name and resets namespace bookkeeping.
func (t *Type) SetName(name string) {
	t.name = name
	t.namespaced = strings.Contains(name, `\`)
	t.simplified = false
	t.namespace = ""
	t.noNativeHint = isLiteral(name) || (len(t.types) > 0 && t.noNativeHint)
}

// Namespace returns the namespace recorded by SimplifyName.
func (t *Type) Namespace() string {
	return t.namespace
}

// IsTypeNamespaced reports whether the name was namespace qualified when set.
func (t *Type) IsTypeNamespaced() bool {
	return t.namespaced
}

// SimplifyName strips the namespace from the primary name (and from every
// alternative) and records it separately. Names without a namespace keep the
// namespace recorded by an earlier call.
func (t *Type) SimplifyName() {
	t.simplified = true
	for _, a := range t.types {
		a.SimplifyName()
	}
	if strings.Contains(t.name, "<") {
		return
	}
	name := strings.TrimPrefix(t.name, `\`)
	i := strings.LastIndex(name, `\`)
	if i < 0 {
		return
	}
	t.namespace = name[:i]
	t.name = name[i+1:]
}

// IsSimplified reports whether SimplifyName has been applied.
func (t *Type) IsSimplified() bool {
	return t.simplified
}

// Fqcn returns the fully qualified name, re-attaching a namespace removed by
// SimplifyName.
func (t *Type) Fqcn() string {
	if t.simplified && t.namespace != "" {
		return t.namespace + `\` + t.name
	}
	return strings.TrimPrefix(t.name, `\`)
}

// Is reports whether the alias resolved primary name equals name.
func (t *Type) Is(name string) bool {
	return resolveAlias(t.name) == name
}

// IsEmpty reports whether t is the "no type" sentinel.
func (t *Type) IsEmpty() bool {
	return t.name == "" && len(t.types) == 0
}

// IsUnion reports whether t has more than one alternative.
func (t *Type) IsUnion() bool {
	return len(t.types) > 1
}

// IsNullable reports whether null is part of the type. For unions it is
// derived from the alternatives when the flag itself is not set.
func (t *Type) IsNullable() bool {
	if t.nullable {
		return true
	}
	if t.name != "" {
		return false
	}
	for _, a := range t.types {
		if a.nullable || a.name == "null" {
			return true
		}
	}
	return false
}

// Alternatives returns copies of the union members.
func (t *Type) Alternatives() []*Type {
	if len(t.types) == 0 {
		return nil
	}
	out := make([]*Type, 0, len(t.types))
	for _, a := range t.types {
		out = append(out, a.Clone())
	}
	return out
}

// Clone returns a deep copy of t.
func (t *Type) Clone() *Type {
	if t == nil {
		return nil
	}
	c := *t
	c.types = nil
	for _, a := range t.types {
		c.types = append(c.types, a.Clone())
	}
	return &c
}

// NotNull returns a copy of t without nullability. mixed stays nullable.
func (t *Type) NotNull() *Type {
	c := t.Clone()
	if c.name != "mixed" {
		c.nullable = false
	}
	for _, a := range c.types {
		if a.name != "mixed" {
			a.nullable = false
		}
	}
	return c
}

// AddAlternative parses name and adds it to the union. "null" only marks
// the type nullable.
func (t *Type) AddAlternative(name string) error {
	name = strings.TrimSpace(name)
	if name == "null" {
		t.markNull()
		return nil
	}
	alt, err := FromString(name)
	if err != nil {
		return err
	}
	t.AddAlternativeType(alt)
	return nil
}

// AddAlternativeType adds a copy of alt to the union. The first alternative
// added to a single type demotes that type into the alternatives set.
// Alternatives whose primary name already exists are skipped.
func (t *Type) AddAlternativeType(alt *Type) {
	if alt == nil || alt.IsEmpty() {
		return
	}
	if len(alt.types) > 0 {
		if alt.IsNullable() {
			t.markNull()
		}
		for _, a := range alt.types {
			t.AddAlternativeType(a)
		}
		return
	}
	if alt.name == "null" {
		t.markNull()
		return
	}

	c := alt.Clone()
	if c.nullable && c.name != "mixed" {
		t.markNull()
	}
	if c.noNativeHint {
		t.noNativeHint = true
	}
	c.nullable = c.name == "mixed"

	if len(t.types) == 0 {
		if t.name == "" {
			t.name, t.namespaced = c.name, c.namespaced
			t.simplified, t.namespace = c.simplified, c.namespace
			t.nullable = t.nullable || c.nullable
			return
		}
		if t.name == c.name {
			return
		}
		t.types = append(t.types, &Type{
			name:         t.name,
			nullable:     t.name == "mixed",
			namespaced:   t.namespaced,
			simplified:   t.simplified,
			namespace:    t.namespace,
			noNativeHint: isLiteral(t.name),
		})
		t.name, t.namespaced, t.simplified, t.namespace = "", false, false, ""
	}
	if t.hasAlternative(c.name) {
		return
	}
	t.types = append(t.types, c)
}

func (t *Type) hasAlternative(name string) bool {
	for _, a := range t.types {
		if a.name == name {
			return true
		}
	}
	return false
}

func (t *Type) markNull() {
	if t.name == "mixed" {
		return
	}
	t.nullable = true
}

// Hint returns the native declaration hint. ok is false when the type cannot
// be declared natively: literal unions, names on the deny list, and unions
// that are neither rendered as unions nor made only of arrays.
func (t *Type) Hint(renderUnion bool, deny ...string) (hint string, ok bool) {
	if t.noNativeHint || t.IsEmpty() {
		return "", false
	}

	if t.IsUnion() {
		if renderUnion {
			hints := make([]string, 0, len(t.types)+1)
			mixed := false
			for _, a := range t.types {
				h, ok := a.Hint(false, deny...)
				if !ok {
					return "", false
				}
				if h == "mixed" {
					mixed = true
				}
				if !slices.Contains(hints, h) {
					hints = append(hints, h)
				}
			}
			if t.IsNullable() && !mixed {
				hints = append([]string{"null"}, hints...)
			}
			return strings.Join(hints, "|"), true
		}
		if t.IsArray(true) {
			return t.nullPrefix() + "array", true
		}
		return "", false
	}

	p := t.single()
	name := resolveAlias(p.name)
	if slices.Contains(deny, name) {
		return "", false
	}
	if p.IsArray(false) {
		return t.nullPrefix() + "array", true
	}
	if name == "mixed" {
		return name, true
	}
	return t.nullPrefix() + p.qualified(name), true
}

// NeedsDocOnlyHint reports whether a documentation hint is required, either
// because no native hint exists or because the type is an array whose
// element type can only be documented.
func (t *Type) NeedsDocOnlyHint(deny ...string) bool {
	if t.IsEmpty() {
		return false
	}
	_, ok := t.Hint(false, deny...)
	return !ok || t.IsArray(true)
}

// DocHint renders the fully qualified documentation form, e.g.
// `\Foo\Bar|int|null`.
func (t *Type) DocHint() string {
	if len(t.types) > 0 {
		parts := make([]string, 0, len(t.types)+1)
		mixed := false
		for _, a := range t.types {
			name := resolveAlias(a.name)
			if name == "" {
				continue
			}
			if name == "mixed" {
				mixed = true
			}
			parts = append(parts, a.qualified(name))
		}
		if t.IsNullable() && t.name != "mixed" && !mixed {
			parts = append(parts, "null")
		}
		return strings.Join(parts, "|")
	}
	if t.name == "" {
		return ""
	}
	hint := t.qualified(resolveAlias(t.name))
	if t.nullable && t.name != "mixed" {
		hint += "|null"
	}
	return hint
}

// String returns the documentation hint.
func (t *Type) String() string {
	return t.DocHint()
}

// IsArray reports whether the primary name uses the array convention. With
// deep set, a union is an array only when every alternative is one.
func (t *Type) IsArray(deep bool) bool {
	if deep && t.IsUnion() {
		all := true
		for _, a := range t.types {
			all = all && isArrayName(a.name)
		}
		return all
	}
	return isArrayName(t.single().name)
}

// HasArray reports whether the type or any alternative is an array.
func (t *Type) HasArray() bool {
	if isArrayName(t.name) {
		return true
	}
	for _, a := range t.types {
		if isArrayName(a.name) {
			return true
		}
	}
	return false
}

// ElementName returns the element type as written, or "" when t is not an
// array. For `array<K, V>` this is V.
func (t *Type) ElementName() string {
	if !t.IsArray(false) {
		return ""
	}
	name := t.single().name
	if strings.HasPrefix(name, "array<") {
		args := genericArgs(name)
		if len(args) == 0 {
			return ""
		}
		return args[len(args)-1]
	}
	return strings.TrimSuffix(name, "[]")
}

// ElementType parses the element type. It returns nil without error when t
// is not an array. A container whose namespace was simplified hands that
// namespace to its element.
func (t *Type) ElementType() (*Type, error) {
	elem := t.ElementName()
	if elem == "" {
		return nil, nil
	}
	if t.simplified && t.namespace != "" {
		alts := splitTopLevel(elem, '|')
		for i, a := range alts {
			alts[i] = t.qualifyElement(strings.TrimSpace(a))
		}
		elem = strings.Join(alts, "|")
	}
	et, err := FromString(elem)
	if err != nil {
		return nil, err
	}
	if t.simplified {
		et.SimplifyName()
	}
	return et, nil
}

// IsNative reports whether the element resolved, alias resolved name is one
// of the built-in scalar, resource, callable or object names.
func (t *Type) IsNative() bool {
	name := t.single().name
	if isArrayName(name) {
		name = t.ElementName()
	}
	_, ok := natives[resolveAlias(name)]
	return ok
}

// qualifyElement prefixes the container namespace to one member of an
// element type, keeping its nullability marker in front.
func (t *Type) qualifyElement(name string) string {
	nullable := strings.HasPrefix(name, "?")
	bare := strings.TrimPrefix(name, "?")
	base := bare
	for strings.HasSuffix(base, "[]") {
		base = strings.TrimSuffix(base, "[]")
	}
	if strings.HasPrefix(base, `\`) || strings.HasPrefix(base, "array<") || isLiteral(base) {
		return name
	}
	if _, native := natives[resolveAlias(base)]; native {
		return name
	}
	if _, keyword := unqualified[base]; keyword {
		return name
	}
	if nullable {
		return "?" + t.namespace + `\` + bare
	}
	return t.namespace + `\` + bare
}

func (t *Type) single() *Type {
	if t.name == "" && len(t.types) == 1 {
		return t.types[0]
	}
	return t
}

func (t *Type) nullPrefix() string {
	if t.IsNullable() {
		return "?"
	}
	return ""
}

func (t *Type) qualified(name string) string {
	if !t.namespaced || t.simplified || strings.HasPrefix(name, `\`) || strings.Contains(name, "<") {
		return name
	}
	return `\` + name
}

func resolveAlias(name string) string {
	if a, ok := aliases[name]; ok {
		return a
	}
	return name
}

func isArrayName(name string) bool {
	return strings.HasSuffix(name, "[]") || strings.HasPrefix(name, "array<")
}
