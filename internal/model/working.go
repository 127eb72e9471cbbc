package model

import (
	"reflect"
)

// Kind classifies a WorkingType by the PHP shape it maps to.
type Kind int

const (
	KindInvalid Kind = iota
	KindBuiltin      // bool, numbers, string
	KindStruct       // becomes a class
	KindAlias        // type LineItems []*LineItem, type Code int
	KindPointer      // *T, nullable
	KindSlice        // []T, a list
	KindMap          // map[K]V, a keyed array
	KindEnum         // type Status string with string constants
	KindTime         // time.Time
	KindAny          // any, interface{} and types of packages that were not loaded
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindBuiltin: "builtin",
	KindStruct:  "struct",
	KindAlias:   "alias",
	KindPointer: "pointer",
	KindSlice:   "slice",
	KindMap:     "map",
	KindEnum:    "enum",
	KindTime:    "time",
	KindAny:     "any",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindInvalid]
	}
	return kindNames[k]
}

// WorkingType is one node of the resolved type graph. Named types
// (structs, enums, aliases) are shared; composite types are built per use.
type WorkingType struct {
	Name    string // Go type name, suffixed once NameResolved is set
	PkgPath string
	Kind    Kind

	Underlying *WorkingType    // alias target, or the element of a pointer, slice or map
	Key        *WorkingType    // map key
	Fields     []*WorkingField // KindStruct
	EnumValues []string        // KindEnum, in declaration order
	Comment    string

	IsExternal   bool
	IsDeprecated bool
	Omit         bool // excluded by name or deprecation; never emitted
	NameResolved bool
}

// WorkingField is a struct field on its way to becoming a PHP property.
type WorkingField struct {
	Name     string // camelCase property name
	RawName  string // Go field name
	Comment  string
	Embedded bool // anonymous and untagged; inlined into the parent

	Type *WorkingType

	Tag        reflect.StructTag
	Deprecated bool
	// OmitEmpty is set by `omitempty`; the property becomes nullable.
	OmitEmpty bool
	// TypeOverride is the PHP type given by a `php:"<type>"` tag.
	TypeOverride string
}
