package render

import (
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/phpmodelgen/pkg/errors"
	"github.com/cmmoran/phpmodelgen/pkg/php"
	"github.com/cmmoran/phpmodelgen/pkg/phptype"
	"github.com/cmmoran/phpmodelgen/pkg/source"
)

func renderer(t *testing.T, p Profile) *Renderer {
	t.Helper()
	r, err := New(p)
	require.NoError(t, err)
	return r
}

func lines(s ...string) string {
	return strings.Join(s, "\n") + "\n"
}

func flat(t *testing.T, b source.Block, err error) string {
	t.Helper()
	require.NoError(t, err)
	return source.Flatten(b, source.DefaultIndent)
}

func renderMethod(t *testing.T, p Profile, m *php.Method) string {
	t.Helper()
	b, err := renderer(t, p).RenderMethod(m)
	return flat(t, b, err)
}

func TestParseProfile(t *testing.T) {
	p, err := ParseProfile(" Modern ")
	require.NoError(t, err)
	assert.Equal(t, Modern, p)

	_, err = ParseProfile("php5")
	assert.True(t, errors.Is(err, errors.ErrUnsupportedConstruct))

	_, err = New("php5")
	assert.Error(t, err)
}

func TestCapabilities(t *testing.T) {
	union := phptype.MustFromString("string|int")
	scalar := phptype.MustFromString("?string")
	tests := []struct {
		profile   Profile
		union     bool
		promotion bool
		attrs     bool
		propUnion bool
		propPlain bool
	}{
		{profile: Legacy},
		{profile: Intermediate, propPlain: true},
		{profile: Modern, union: true, promotion: true, attrs: true, propUnion: true, propPlain: true},
	}
	for _, tt := range tests {
		t.Run(string(tt.profile), func(t *testing.T) {
			c, err := CapabilitiesFor(tt.profile)
			require.NoError(t, err)
			assert.Equal(t, tt.profile, c.Profile())
			assert.Equal(t, tt.union, c.SupportsNativeUnion())
			assert.Equal(t, tt.promotion, c.SupportsPromotion())
			assert.Equal(t, tt.attrs, c.SupportsAttributes())
			assert.Equal(t, tt.propUnion, c.CanHintProperty(union))
			assert.Equal(t, tt.propPlain, c.CanHintProperty(scalar))
			assert.Contains(t, c.InvalidHints(), "resource")
			assert.Equal(t, tt.profile != Modern, slices.Contains(c.InvalidHints(), "mixed"))
		})
	}
}

func TestUnionFieldLegacy(t *testing.T) {
	f := php.ProtectedField("name", php.NoValue(), phptype.MustFromString("string|int|null"))
	for _, p := range []Profile{Legacy, Intermediate} {
		b, err := renderer(t, p).RenderField(f)
		assert.Equal(t, lines(
			"/** @var string|int|null */",
			"protected $name;",
		), flat(t, b, err), p)
	}
}

func TestUnionFieldModern(t *testing.T) {
	f := php.ProtectedField("name", php.NoValue(), phptype.MustFromString("string|int|null"))
	b, err := renderer(t, Modern).RenderField(f)
	assert.Equal(t, lines("protected null|string|int $name;"), flat(t, b, err))
}

func TestFieldHints(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		field   *php.Field
		want    string
	}{
		{
			name:    "legacy scalar documented",
			profile: Legacy,
			field:   php.PrivateField("id", php.NoValue(), phptype.MustFromString("int")),
			want:    lines("/** @var int */", "private $id;"),
		},
		{
			name:    "intermediate scalar hinted",
			profile: Intermediate,
			field:   php.PrivateField("id", php.ValueOf(0), phptype.MustFromString("int")),
			want:    lines("private int $id = 0;"),
		},
		{
			name:    "intermediate array keeps element doc",
			profile: Intermediate,
			field:   php.PrivateField("ids", php.ValueOf([]int{}), phptype.MustFromString("int[]")),
			want:    lines("/** @var int[] */", "private array $ids = [];"),
		},
		{
			name:    "intermediate mixed is denied",
			profile: Intermediate,
			field:   php.PublicField("data", php.NoValue(), phptype.MustFromString("mixed")),
			want:    lines("/** @var mixed */", "public $data;"),
		},
		{
			name:    "modern mixed is hinted",
			profile: Modern,
			field:   php.PublicField("data", php.NoValue(), phptype.MustFromString("mixed")),
			want:    lines("public mixed $data;"),
		},
		{
			name:    "null stripped when untyped",
			profile: Legacy,
			field:   php.PublicField("x", php.Null(), nil),
			want:    lines("public $x;"),
		},
		{
			name:    "null stripped on nullable hint",
			profile: Intermediate,
			field:   php.PublicField("x", php.Null(), phptype.MustFromString("?string")),
			want:    lines("public ?string $x;"),
		},
		{
			name:    "null stripped on modern nullable hint",
			profile: Modern,
			field:   php.PublicField("x", php.Null(), phptype.MustFromString("?string")),
			want:    lines("public ?string $x;"),
		},
		{
			name:    "null stripped on nullable union",
			profile: Modern,
			field:   php.PublicField("x", php.Null(), phptype.MustFromString("string|int|null")),
			want:    lines("public null|string|int $x;"),
		},
		{
			name:    "static with raw value",
			profile: Legacy,
			field:   php.PublicField("x", php.ValueOf("self::DEFAULT"), nil).SetStatic().EnableRawValue(),
			want:    lines("public static $x = self::DEFAULT;"),
		},
		{
			name:    "multi-line value",
			profile: Modern,
			field:   php.ProtectedField("map", php.ValueOf(map[string]any{"a": 1}), phptype.MustFromString("array")),
			want:    lines("protected array $map = [", "\t'a' => 1,", "];"),
		},
		{
			name:    "callable property documented",
			profile: Modern,
			field:   php.PrivateField("fn", php.NoValue(), phptype.MustFromString("callable")),
			want:    lines("/** @var callable */", "private $fn;"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := renderer(t, tt.profile).RenderField(tt.field)
			assert.Equal(t, tt.want, flat(t, b, err))
		})
	}
}

func TestFieldAttributesOnlyModern(t *testing.T) {
	f := php.PublicField("id", php.NoValue(), phptype.MustFromString("int")).
		AddAttribute(php.NewAttribute("Id"))

	b, err := renderer(t, Modern).RenderField(f)
	assert.Equal(t, lines("#[Id]", "public int $id;"), flat(t, b, err))

	b, err = renderer(t, Intermediate).RenderField(f)
	assert.Equal(t, lines("public int $id;"), flat(t, b, err))
}

func TestPromotedConstructor(t *testing.T) {
	f := php.ProtectedField("name", php.NoValue(), phptype.MustFromString("string|int|null"))
	ctor := php.Constructor([]*php.Param{php.ParamFromField(f)}, nil, true)

	b, err := renderer(t, Modern).RenderMethod(ctor)
	assert.Equal(t, lines(
		"public function __construct(",
		"\tprotected null|string|int $name,",
		") {}",
	), flat(t, b, err))
}

func TestMixedPromotion(t *testing.T) {
	name := php.ProtectedField("name", php.NoValue(), phptype.MustFromString("string"))
	handler := php.PrivateField("handler", php.NoValue(), phptype.MustFromString("callable"))
	ctor := php.Constructor([]*php.Param{php.ParamFromField(name), php.ParamFromField(handler)}, nil, true)

	got := renderMethod(t, Modern, ctor)
	assert.Equal(t, lines(
		"public function __construct(",
		"\tprotected string $name,",
		"\tcallable $handler,",
		") {",
		"\t$this->handler = $handler;",
		"}",
	), got)
	assert.Equal(t, 1, strings.Count(got, "$this->"))

	got = renderMethod(t, Legacy, ctor)
	assert.Equal(t, lines(
		"public function __construct(string $name, callable $handler)",
		"{",
		"\t$this->name = $name;",
		"\t$this->handler = $handler;",
		"}",
	), got)
}

func TestConstructorBodyKeepsStatements(t *testing.T) {
	f := php.PrivateField("id", php.NoValue(), phptype.MustFromString("int"))
	ctor := php.Constructor([]*php.Param{php.ParamFromField(f)}, source.Lines("parent::__construct();"), true)

	got := renderMethod(t, Intermediate, ctor)
	assert.Equal(t, lines(
		"public function __construct(int $id)",
		"{",
		"\tparent::__construct();",
		"\t$this->id = $id;",
		"}",
	), got)
}

func TestPromotionIneligible(t *testing.T) {
	variadic := php.NewParam("rest", phptype.MustFromString("int"))
	require.NoError(t, variadic.SetVariadic())

	tests := []struct {
		name  string
		param *php.Param
		want  bool
	}{
		{name: "scalar", param: php.NewParam("a", phptype.MustFromString("string")), want: true},
		{name: "callable", param: php.NewParam("a", phptype.MustFromString("callable")), want: false},
		{name: "nullable callable", param: php.NewParam("a", phptype.MustFromString("?callable")), want: false},
		{name: "resource", param: php.NewParam("a", phptype.MustFromString("resource")), want: false},
		{name: "untyped", param: php.NewParam("a", nil), want: false},
		{name: "variadic", param: variadic, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canPromote(tt.param))
		})
	}
}

func TestEmptyConstructor(t *testing.T) {
	ctor := php.Constructor(nil, nil, false)
	got := renderMethod(t, Legacy, ctor)
	assert.Equal(t, lines("public function __construct()", "{}"), got)
}

func TestCollapseEmptyBodyInvariant(t *testing.T) {
	_, err := collapseEmptyBody(source.Block{source.Block{}, source.Block{}, source.Text("}")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvariantViolation))

	_, err = collapseEmptyBody(source.Lines("{", "}"))
	assert.True(t, errors.Is(err, errors.ErrInvariantViolation))

	got, err := collapseEmptyBody(source.Block{source.Text(") {"), source.Block{}, source.Text("}")})
	require.NoError(t, err)
	assert.Equal(t, source.Lines(") {}"), got)
}

func TestMethodDocs(t *testing.T) {
	m := php.PublicMethod(
		"find",
		[]*php.Param{php.NewParam("ids", phptype.MustFromString("int[]"))},
		source.Lines("return null;"),
		phptype.MustFromString("Foo|Bar|null"),
	)

	got := renderMethod(t, Legacy, m)
	assert.Equal(t, lines(
		"/**",
		" * @param int[] $ids",
		" * @return Foo|Bar|null",
		" */",
		"public function find(array $ids)",
		"{",
		"\treturn null;",
		"}",
	), got)

	got = renderMethod(t, Modern, m)
	assert.Equal(t, lines(
		"/**",
		" * @param int[] $ids",
		" */",
		"public function find(array $ids): null|Foo|Bar",
		"{",
		"\treturn null;",
		"}",
	), got)
	assert.Nil(t, m.Comment())
}

func TestFluentSetterLegacy(t *testing.T) {
	f := php.PrivateField("name", php.NoValue(), phptype.MustFromString("string"))
	got := renderMethod(t, Legacy, php.Setter(f, true))
	assert.Equal(t, lines(
		"/**",
		" * @return static",
		" */",
		"public function setName(string $name)",
		"{",
		"\t$this->name = $name;",
		"\treturn $this;",
		"}",
	), got)
}

func TestAdderOfLiteralListHasNoNativeParamHint(t *testing.T) {
	f := php.PublicField("statuses", php.ValueOf([]any{}), phptype.MustFromString("array<int, 'red'|'blue'>"))
	m, ok := php.Adder(f)
	require.True(t, ok)

	for _, p := range Profiles {
		t.Run(string(p), func(t *testing.T) {
			assert.Equal(t, lines(
				"/**",
				" * @param 'red'|'blue' $status",
				" */",
				"public function addStatus($status): void",
				"{",
				"\t$this->statuses[] = $status;",
				"}",
			), renderMethod(t, p, m))
		})
	}
}

func TestAbstractMethod(t *testing.T) {
	m := php.ProtectedMethod("run", []*php.Param{php.NewParam("a", phptype.MustFromString("int"))}, nil, phptype.MustFromString("void")).
		SetAbstract()
	got := renderMethod(t, Modern, m)
	assert.Equal(t, lines("abstract protected function run(int $a): void;"), got)
}

func TestModifierOrder(t *testing.T) {
	m := php.PublicMethod("make", nil, source.Lines("return new static();"), phptype.MustFromString("static")).
		SetFinal().
		SetStatic()
	got := renderMethod(t, Modern, m)
	assert.Equal(t, lines(
		"final public static function make(): static",
		"{",
		"\treturn new static();",
		"}",
	), got)
}

func TestParams(t *testing.T) {
	r := renderer(t, Modern)

	withDefault := php.NewParam("s", phptype.MustFromString("string"))
	require.NoError(t, withDefault.SetDefault("x"))
	variadic := php.NewParam("ids", phptype.MustFromString("int"))
	require.NoError(t, variadic.SetVariadic())

	b, err := r.RenderParams([]*php.Param{withDefault, variadic})
	assert.Equal(t, lines("(string $s = 'x', int ...$ids)"), flat(t, b, err))

	three := []*php.Param{
		php.NewParam("a", phptype.MustFromString("int")),
		php.NewParam("b", nil),
		php.NewParam("c", phptype.MustFromString("?Foo")),
	}
	b, err = r.RenderParams(three)
	assert.Equal(t, lines("(", "\tint $a,", "\t$b,", "\t?Foo $c,", ")"), flat(t, b, err))

	empty, err := r.RenderParams(nil)
	assert.Equal(t, lines("()"), flat(t, empty, err))
}

func TestParamDefaultMustFitOneLine(t *testing.T) {
	p := php.NewParam("list", phptype.MustFromString("array"))
	require.NoError(t, p.SetDefault([]int{1, 2, 3}))
	_, err := renderer(t, Modern).RenderParam(p, false)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedConstruct))
}

func TestAttributedParamForcesMultiline(t *testing.T) {
	p := php.NewParam("id", phptype.MustFromString("int")).AddAttribute(php.NewAttribute("FromRoute", "'id'"))
	params := []*php.Param{p}

	b, err := renderer(t, Modern).RenderParams(params)
	assert.Equal(t, lines("(", "\t#[FromRoute('id')]", "\tint $id,", ")"), flat(t, b, err))

	b, err = renderer(t, Legacy).RenderParams(params)
	assert.Equal(t, lines("(int $id)"), flat(t, b, err))
}

func TestRenderAttribute(t *testing.T) {
	r := renderer(t, Modern)
	assert.Equal(t, source.Lines("#[Pure]"), r.RenderAttribute(php.NewAttribute("Pure")))
	assert.Equal(t, source.Lines("#[Route('/a', methods: ['GET'])]"), r.RenderAttribute(php.NewAttribute("Route", "'/a'", "methods: ['GET']")))
	assert.Equal(t,
		lines("#[Route(", "\t'/a',", "\tmethods: ['GET'],", "\tname: 'a',", ")]"),
		source.Flatten(r.RenderAttribute(php.NewAttribute("Route", "'/a'", "methods: ['GET']", "name: 'a'")), "\t"),
	)
}

func TestRenderConstant(t *testing.T) {
	r := renderer(t, Legacy)
	b, err := r.RenderConstant(php.PublicConstant("3DS", php.NoValue()))
	assert.Equal(t, lines("public const _3DS = '3DS';"), flat(t, b, err))

	b, err = r.RenderConstant(php.PrivateConstant("codes", php.ValueOf([]int{1, 2, 3})))
	assert.Equal(t, lines("private const CODES = [", "\t1,", "\t2,", "\t3,", "];"), flat(t, b, err))
}

func userClass(t *testing.T) *php.Class {
	t.Helper()
	c := php.NewClass(`App\Model\User`).SetFinal()
	c.AddConstant(php.PublicConstant("table", php.ValueOf("users")))
	id := php.PrivateField("id", php.NoValue(), phptype.MustFromString("int"))
	tags := php.PrivateField("tags", php.ValueOf([]string{}), phptype.MustFromString("string[]"))
	c.AddField(id).AddField(tags)
	require.NoError(t, c.AddMethod(php.Constructor([]*php.Param{php.ParamFromField(id)}, nil, true)))
	require.NoError(t, c.AddMethod(php.Getter(id)))
	return c
}

func TestRenderFile(t *testing.T) {
	tests := []struct {
		profile Profile
		want    string
	}{
		{
			profile: Modern,
			want: lines(
				"<?php",
				"",
				"declare(strict_types=1);",
				"",
				`namespace App\Model;`,
				"",
				"final class User",
				"{",
				"\tpublic const TABLE = 'users';",
				"",
				"\t/** @var string[] */",
				"\tprivate array $tags = [];",
				"",
				"\tpublic function __construct(",
				"\t\tprivate int $id,",
				"\t) {}",
				"",
				"\tpublic function getId(): int",
				"\t{",
				"\t\treturn $this->id;",
				"\t}",
				"}",
			),
		},
		{
			profile: Legacy,
			want: lines(
				"<?php",
				"",
				"declare(strict_types=1);",
				"",
				`namespace App\Model;`,
				"",
				"final class User",
				"{",
				"\tpublic const TABLE = 'users';",
				"",
				"\t/** @var int */",
				"\tprivate $id;",
				"",
				"\t/** @var string[] */",
				"\tprivate $tags = [];",
				"",
				"\tpublic function __construct(int $id)",
				"\t{",
				"\t\t$this->id = $id;",
				"\t}",
				"",
				"\tpublic function getId(): int",
				"\t{",
				"\t\treturn $this->id;",
				"\t}",
				"}",
			),
		},
	}
	for _, tt := range tests {
		t.Run(string(tt.profile), func(t *testing.T) {
			got, err := renderer(t, tt.profile).Render(userClass(t))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Render() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	c := userClass(t)
	for _, p := range Profiles {
		r := renderer(t, p)
		first, err := r.Render(c)
		require.NoError(t, err)
		second, err := r.Render(c)
		require.NoError(t, err)
		assert.Equal(t, first, second, p)
	}

	// switching profiles on the same graph does not leak state
	legacy, err := renderer(t, Legacy).Render(c)
	require.NoError(t, err)
	_, err = renderer(t, Modern).Render(c)
	require.NoError(t, err)
	again, err := renderer(t, Legacy).Render(c)
	require.NoError(t, err)
	assert.Equal(t, legacy, again)
}

func TestAutoCreatedFieldIsDeclared(t *testing.T) {
	p := php.NewParam("name", phptype.MustFromString("string"))
	p.AutoCreateField(php.Protected)
	c := php.NewClass("Person")
	require.NoError(t, c.AddMethod(php.Constructor([]*php.Param{p}, nil, true)))

	got, err := New(Intermediate, WithStrictTypes(false), WithIndent("    "))
	require.NoError(t, err)
	text, err := got.Render(c)
	require.NoError(t, err)
	assert.Equal(t, lines(
		"<?php",
		"",
		"class Person",
		"{",
		"    protected string $name;",
		"",
		"    public function __construct(string $name)",
		"    {",
		"        $this->name = $name;",
		"    }",
		"}",
	), text)
}
