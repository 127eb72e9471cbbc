package phptype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/phpmodelgen/pkg/errors"
)

func TestFromStringNullableForms(t *testing.T) {
	for _, name := range []string{"int", "string", "Foo", `Foo\Bar`, "int[]"} {
		for _, in := range []string{"?" + name, name + "|null", "null|" + name} {
			t.Run(in, func(t *testing.T) {
				typ, err := FromString(in)
				require.NoError(t, err)
				assert.True(t, typ.IsNullable())
				assert.False(t, typ.IsUnion())
				assert.Equal(t, name, typ.Name())
			})
		}
	}
}

func TestFromStringMixedAbsorbsNull(t *testing.T) {
	for _, in := range []string{"mixed|null", "null|mixed"} {
		t.Run(in, func(t *testing.T) {
			typ, err := FromString(in)
			require.NoError(t, err)
			assert.Equal(t, "mixed", typ.Name())
			assert.False(t, typ.IsUnion())
			assert.Empty(t, typ.Alternatives())
			assert.Equal(t, "mixed", typ.DocHint())

			hint, ok := typ.Hint(true)
			require.True(t, ok)
			assert.Equal(t, "mixed", hint)
		})
	}
}

func TestFromStringInvalid(t *testing.T) {
	for _, in := range []string{"", " ", "?", "??", "|", "?|", "| |", "null|null"} {
		t.Run(in, func(t *testing.T) {
			_, err := FromString(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidType))
		})
	}
}

func TestHints(t *testing.T) {
	tests := []struct {
		in         string
		hint       string
		hintOK     bool
		unionHint  string
		docHint    string
		needsDoc   bool
		isArray    bool
		isNative   bool
		isNullable bool
	}{
		{in: "int", hint: "int", hintOK: true, unionHint: "int", docHint: "int", isNative: true},
		{in: "integer", hint: "int", hintOK: true, unionHint: "int", docHint: "int", isNative: true},
		{in: "?boolean", hint: "?bool", hintOK: true, unionHint: "?bool", docHint: "bool|null", isNative: true, isNullable: true},
		{in: "double", hint: "float", hintOK: true, unionHint: "float", docHint: "float", isNative: true},
		{in: `Foo\Bar`, hint: `\Foo\Bar`, hintOK: true, unionHint: `\Foo\Bar`, docHint: `\Foo\Bar`},
		{in: `?\Foo\Bar`, hint: `?\Foo\Bar`, hintOK: true, unionHint: `?\Foo\Bar`, docHint: `\Foo\Bar|null`, isNullable: true},
		{in: "string[]", hint: "array", hintOK: true, unionHint: "array", docHint: "string[]", needsDoc: true, isArray: true, isNative: true},
		{in: "?Foo[]", hint: "?array", hintOK: true, unionHint: "?array", docHint: "Foo[]|null", needsDoc: true, isArray: true, isNullable: true},
		{in: "mixed", hint: "mixed", hintOK: true, unionHint: "mixed", docHint: "mixed", isNullable: true},
		{in: "string|int", unionHint: "string|int", docHint: "string|int", needsDoc: true},
		{in: "string|int|null", unionHint: "null|string|int", docHint: "string|int|null", needsDoc: true, isNullable: true},
		{in: "int[]|string[]", hint: "array", hintOK: true, unionHint: "array", docHint: "int[]|string[]", needsDoc: true, isArray: true},
		{in: `Foo\A|Foo\B`, unionHint: `\Foo\A|\Foo\B`, docHint: `\Foo\A|\Foo\B`, needsDoc: true},
		{in: "array<string, int>", hint: "array", hintOK: true, unionHint: "array", docHint: "array<string, int>", needsDoc: true, isArray: true, isNative: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			typ, err := FromString(tt.in)
			require.NoError(t, err)

			hint, ok := typ.Hint(false)
			assert.Equal(t, tt.hintOK, ok)
			assert.Equal(t, tt.hint, hint)

			unionHint, ok := typ.Hint(true)
			assert.True(t, ok)
			assert.Equal(t, tt.unionHint, unionHint)

			assert.Equal(t, tt.docHint, typ.DocHint())
			assert.Equal(t, tt.needsDoc, typ.NeedsDocOnlyHint())
			assert.Equal(t, tt.isArray, typ.IsArray(true))
			assert.Equal(t, tt.isNative, typ.IsNative())
			assert.Equal(t, tt.isNullable, typ.IsNullable())
		})
	}
}

func TestNativeExpressibleTypesNeedNoDocHint(t *testing.T) {
	for _, in := range []string{"int", "?string", "bool", "float", "callable", "object", `Foo\Bar`, "self"} {
		typ := MustFromString(in)
		_, ok := typ.Hint(false)
		assert.True(t, ok, in)
		assert.False(t, typ.NeedsDocOnlyHint(), in)
	}
	for _, in := range []string{"int[]", "?Foo[]", "array<int, string>", "array<string, Foo|Bar>"} {
		assert.True(t, MustFromString(in).NeedsDocOnlyHint(), in)
	}
}

func TestHintDenyList(t *testing.T) {
	typ := MustFromString("resource")
	_, ok := typ.Hint(false, "resource")
	assert.False(t, ok)
	assert.True(t, typ.NeedsDocOnlyHint("resource"))

	union := MustFromString("string|resource")
	_, ok = union.Hint(true, "resource")
	assert.False(t, ok)

	hint, ok := union.Hint(true)
	require.True(t, ok)
	assert.Equal(t, "string|resource", hint)
}

func TestEnumString(t *testing.T) {
	typ := EnumString("draft", "published", "draft")

	_, ok := typ.Hint(false)
	assert.False(t, ok)
	_, ok = typ.Hint(true)
	assert.False(t, ok)
	assert.True(t, typ.NeedsDocOnlyHint())
	assert.Equal(t, "'draft'|'published'", typ.DocHint())
}

func TestLiteralTypesHaveNoNativeHint(ttt *testing.T) {
	tests := []struct {
		name string
		typ  *Type
	}{
		{name: "reparsed enum", typ: MustFromString(EnumString("red", "blue").DocHint())},
		{name: "single literal", typ: MustFromString("'red'")},
		{name: "nullable literal", typ: MustFromString("'red'|null")},
		{name: "literal mixed with scalar", typ: MustFromString("'red'|int")},
		{name: "double quoted", typ: MustFromString(`"red"|"blue"`)},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			_, ok := tt.typ.Hint(true)
			assert.False(t, ok)
			_, ok = tt.typ.Hint(false)
			assert.False(t, ok)
			assert.True(t, tt.typ.NeedsDocOnlyHint())
		})
	}
}

func TestLiteralElementTypeHasNoNativeHint(t *testing.T) {
	typ := MustFromString("array<int, 'red'|'blue'>")
	hint, ok := typ.Hint(true)
	require.True(t, ok)
	assert.Equal(t, "array", hint)

	elem, err := typ.ElementType()
	require.NoError(t, err)
	_, ok = elem.Hint(true)
	assert.False(t, ok)
	assert.Equal(t, "'red'|'blue'", elem.DocHint())
}

func TestSimplifiedUnionElementQualifiesEveryMember(ttt *testing.T) {
	tests := []struct {
		name string
		elem string
		want []string
	}{
		{name: "two classes", elem: "Foo|Bar", want: []string{`App\Model\Foo`, `App\Model\Bar`}},
		{name: "class and scalar", elem: "Foo|int", want: []string{`App\Model\Foo`, "int"}},
		{name: "already qualified", elem: `Foo|\Other\Bar`, want: []string{`App\Model\Foo`, `Other\Bar`}},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			typ := &Type{name: "array<int, " + tt.elem + ">", simplified: true, namespace: `App\Model`}

			elem, err := typ.ElementType()
			require.NoError(t, err)
			require.True(t, elem.IsUnion())
			var got []string
			for _, a := range elem.Alternatives() {
				got = append(got, a.Fqcn())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddAlternative(t *testing.T) {
	typ := MustFromString("string")
	require.NoError(t, typ.AddAlternative("int"))
	assert.True(t, typ.IsUnion())
	assert.Equal(t, "", typ.Name())
	require.Len(t, typ.Alternatives(), 2)

	require.NoError(t, typ.AddAlternative("int"))
	assert.Len(t, typ.Alternatives(), 2)

	require.NoError(t, typ.AddAlternative("null"))
	assert.True(t, typ.IsNullable())
	assert.Len(t, typ.Alternatives(), 2)
	assert.Equal(t, "string|int|null", typ.DocHint())

	err := typ.AddAlternative("?")
	assert.True(t, errors.Is(err, errors.ErrInvalidType))
}

func TestAddAlternativeSameAsPrimary(t *testing.T) {
	typ := MustFromString("int")
	typ.AddAlternativeType(MustFromString("int"))
	assert.False(t, typ.IsUnion())
	assert.Equal(t, "int", typ.Name())
}

func TestAddAlternativeNullOnMixed(t *testing.T) {
	typ := MustFromString("mixed")
	require.NoError(t, typ.AddAlternative("null"))
	assert.Equal(t, "mixed", typ.Name())
	assert.False(t, typ.IsUnion())
}

func TestAddAlternativeCopiesValue(t *testing.T) {
	alt := MustFromString(`Foo\Bar`)
	typ := MustFromString("int")
	typ.AddAlternativeType(alt)

	alt.SetName("Changed")
	assert.Equal(t, `int|\Foo\Bar`, typ.DocHint())
}

func TestAddAlternativeFlattensUnion(t *testing.T) {
	typ := MustFromString("int")
	typ.AddAlternativeType(MustFromString("string|float|null"))
	assert.Len(t, typ.Alternatives(), 3)
	assert.True(t, typ.IsNullable())
}

// Alias duplicates are kept: comparison is textual.
func TestAliasDuplicatesAreKept(t *testing.T) {
	typ := MustFromString("bool|boolean")
	assert.Len(t, typ.Alternatives(), 2)

	hint, ok := typ.Hint(true)
	require.True(t, ok)
	assert.Equal(t, "bool", hint)
}

func TestArrayGenericElementUnion(t *testing.T) {
	typ := MustFromString("array<string, Foo|Bar>")
	assert.False(t, typ.IsUnion())
	assert.True(t, typ.IsArray(true))
	assert.True(t, typ.IsArray(false))
	assert.Equal(t, "Foo|Bar", typ.ElementName())

	elem, err := typ.ElementType()
	require.NoError(t, err)
	require.True(t, elem.IsUnion())
	alts := elem.Alternatives()
	require.Len(t, alts, 2)
	assert.Equal(t, "Foo", alts[0].Name())
	assert.Equal(t, "Bar", alts[1].Name())
}

func TestArrayGenericNested(t *testing.T) {
	typ := MustFromString("array<string, array<int, Foo>>|null")
	assert.True(t, typ.IsNullable())
	assert.Equal(t, "array<int, Foo>", typ.ElementName())

	elem, err := typ.ElementType()
	require.NoError(t, err)
	assert.Equal(t, "Foo", elem.ElementName())
}

func TestElementTypeNotArray(t *testing.T) {
	elem, err := MustFromString("int").ElementType()
	require.NoError(t, err)
	assert.Nil(t, elem)
}

func TestSimplifyNameIdempotent(t *testing.T) {
	typ := MustFromString(`\App\Model\User`)
	typ.SimplifyName()
	assert.True(t, typ.IsSimplified())
	assert.Equal(t, "User", typ.Name())
	assert.Equal(t, `App\Model`, typ.Namespace())

	typ.SimplifyName()
	assert.Equal(t, "User", typ.Name())
	assert.Equal(t, `App\Model`, typ.Namespace())
	assert.Equal(t, `App\Model\User`, typ.Fqcn())

	hint, ok := typ.Hint(false)
	require.True(t, ok)
	assert.Equal(t, "User", hint)
	assert.Equal(t, "User", typ.DocHint())
}

func TestSimplifiedArrayElementRequalified(t *testing.T) {
	typ := MustFromString(`App\Model\User[]`)
	typ.SimplifyName()
	assert.Equal(t, "User[]", typ.Name())

	elem, err := typ.ElementType()
	require.NoError(t, err)
	assert.Equal(t, "User", elem.Name())
	assert.Equal(t, `App\Model\User`, elem.Fqcn())
}

func TestNotNull(t *testing.T) {
	typ := MustFromString("?int")
	assert.False(t, typ.NotNull().IsNullable())
	assert.True(t, typ.IsNullable())
	assert.True(t, MustFromString("mixed").NotNull().IsNullable())
}

func TestEmpty(t *testing.T) {
	typ := Empty()
	assert.True(t, typ.IsEmpty())
	_, ok := typ.Hint(true)
	assert.False(t, ok)
	assert.False(t, typ.NeedsDocOnlyHint())
	assert.Equal(t, "", typ.DocHint())
}
