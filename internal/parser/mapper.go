package parser

import (
	"strings"

	"github.com/cmmoran/phpmodelgen/internal/model"
	"github.com/cmmoran/phpmodelgen/pkg/errors"
	options "github.com/cmmoran/phpmodelgen/pkg/parser"
	"github.com/cmmoran/phpmodelgen/pkg/php"
	"github.com/cmmoran/phpmodelgen/pkg/phptype"
)

// ToClasses converts a set of WorkingTypes into PHP classes ready for
// rendering. Structs become data classes, string enums become classes of
// constants; aliases only shape the types of the fields that use them.
func ToClasses(types []*model.WorkingType, opts *options.Options, namespace string) ([]*php.Class, error) {
	out := make([]*php.Class, 0, len(types))

	for _, wt := range types {
		if wt == nil || wt.Omit {
			continue
		}

		switch wt.Kind {
		case model.KindStruct:
			cls, err := structToClass(wt, opts, namespace)
			if err != nil {
				return nil, errors.Wrapf(err, "type %s", wt.Name)
			}
			out = append(out, cls)

		case model.KindEnum:
			out = append(out, enumToClass(wt, namespace))
		}
	}

	return out, nil
}

func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + `\` + name
}

// -----------------------------------------------------------------------------
// Struct mapping
// -----------------------------------------------------------------------------

func structToClass(wt *model.WorkingType, opts *options.Options, namespace string) (*php.Class, error) {
	cls := php.NewClass(qualify(namespace, wt.Name))
	if wt.Comment != "" {
		cls.SetComment(php.NewDocComment(wt.Comment))
	}
	if opts.Final {
		cls.SetFinal()
	}

	fields := make([]*php.Field, 0, len(wt.Fields))
	for _, wf := range wt.Fields {
		if wf == nil {
			continue
		}
		f, err := workingFieldToField(wf, opts.Access())
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", wf.RawName)
		}
		cls.AddField(f)
		fields = append(fields, f)
	}

	if opts.Constructor {
		params := make([]*php.Param, 0, len(fields))
		for _, f := range fields {
			params = append(params, php.ParamFromField(f))
		}
		if err := cls.AddMethod(php.Constructor(params, nil, true)); err != nil {
			return nil, err
		}
	}

	for _, f := range fields {
		if opts.Getters {
			if err := cls.AddMethod(php.Getter(f)); err != nil {
				return nil, err
			}
		}
		if opts.Setters {
			if err := cls.AddMethod(php.Setter(f, opts.FluentSetters)); err != nil {
				return nil, err
			}
		}
		if opts.Adders {
			if m, ok := php.Adder(f); ok {
				if err := cls.AddMethod(m); err != nil {
					return nil, err
				}
			}
		}
	}

	return cls, nil
}

func workingFieldToField(wf *model.WorkingField, access php.Access) (*php.Field, error) {
	typ, err := fieldType(wf)
	if err != nil {
		return nil, err
	}

	var comment *php.DocComment
	if wf.Comment != "" {
		comment = php.NewDocComment(wf.Comment)
	}

	return php.NewField(access, wf.Name, defaultValue(typ), typ, comment), nil
}

// fieldType resolves the PHP type of a field: the php tag wins over the Go
// type, and omitempty makes the result nullable.
func fieldType(wf *model.WorkingField) (*phptype.Type, error) {
	var (
		typ *phptype.Type
		err error
	)
	if wf.TypeOverride != "" {
		typ, err = phptype.FromString(wf.TypeOverride)
	} else {
		typ, err = typeOf(wf.Type)
	}
	if err != nil {
		return nil, err
	}
	if wf.OmitEmpty {
		if err = typ.AddAlternative("null"); err != nil {
			return nil, err
		}
	}
	return typ, nil
}

// defaultValue is [] for non-nullable arrays and null for nullable types.
func defaultValue(typ *phptype.Type) php.Value {
	switch {
	case typ.IsNullable():
		return php.Null()
	case typ.IsArray(true):
		return php.ValueOf([]any{})
	}
	return php.NoValue()
}

// -----------------------------------------------------------------------------
// Enum mapping
// -----------------------------------------------------------------------------

func enumToClass(wt *model.WorkingType, namespace string) *php.Class {
	cls := php.NewClass(qualify(namespace, wt.Name)).SetFinal()
	if wt.Comment != "" {
		cls.SetComment(php.NewDocComment(wt.Comment))
	}
	for _, v := range wt.EnumValues {
		c := php.NewEnumCase(v)
		cls.AddConstant(php.NewConstant(php.Public, c.Name(), php.ValueOf(c.Value()), php.CaseNone))
	}
	return cls
}

// -----------------------------------------------------------------------------
// Type mapping
// -----------------------------------------------------------------------------

var builtinTypes = map[string]string{
	"string": "string", "error": "string", "bool": "bool",
	"int": "int", "int8": "int", "int16": "int", "int32": "int", "int64": "int",
	"uint": "int", "uint8": "int", "uint16": "int", "uint32": "int", "uint64": "int",
	"uintptr": "int", "byte": "int", "rune": "int",
	"float32": "float", "float64": "float",
}

// typeOf maps a WorkingType to a PHP type.
func typeOf(wt *model.WorkingType) (*phptype.Type, error) {
	if wt == nil {
		return phptype.FromString("mixed")
	}

	switch wt.Kind {
	case model.KindBuiltin:
		if name, ok := builtinTypes[wt.Name]; ok {
			return phptype.FromString(name)
		}
		return phptype.FromString("mixed")

	case model.KindTime:
		return phptype.FromString(`\DateTimeImmutable`)

	case model.KindAny:
		return phptype.FromString("mixed")

	case model.KindStruct:
		if wt.Omit {
			return phptype.FromString("mixed")
		}
		return phptype.FromString(wt.Name)

	case model.KindEnum:
		if wt.Omit || len(wt.EnumValues) == 0 {
			return phptype.FromString("string")
		}
		return phptype.EnumString(wt.EnumValues...), nil

	case model.KindAlias:
		return typeOf(wt.Underlying)

	case model.KindPointer:
		inner, err := typeOf(wt.Underlying)
		if err != nil {
			return nil, err
		}
		if err = inner.AddAlternative("null"); err != nil {
			return nil, err
		}
		return inner, nil

	case model.KindSlice:
		elem, err := typeOf(wt.Underlying)
		if err != nil {
			return nil, err
		}
		return arrayOf("", elem)

	case model.KindMap:
		key, err := typeOf(wt.Key)
		if err != nil {
			return nil, err
		}
		val, err := typeOf(wt.Underlying)
		if err != nil {
			return nil, err
		}
		k := "string"
		if key.Is("int") {
			k = "int"
		}
		return arrayOf(k, val)
	}

	return nil, errors.InvalidTypef("cannot map %s type %q", wt.Kind, wt.Name)
}

// arrayOf builds `E[]` for a list of a single element type and
// `array<K, E>` for keyed arrays or lists of a union.
func arrayOf(key string, elem *phptype.Type) (*phptype.Type, error) {
	elem = elem.NotNull()
	hint := elem.DocHint()
	if key == "" && !elem.IsUnion() {
		return phptype.FromString(hint + "[]")
	}
	if key == "" {
		key = "int"
	}
	return phptype.FromString("array<" + key + ", " + strings.TrimSpace(hint) + ">")
}
