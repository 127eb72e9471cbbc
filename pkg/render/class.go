package render

import (
	"slices"
	"strings"

	"github.com/cmmoran/phpmodelgen/pkg/errors"
	"github.com/cmmoran/phpmodelgen/pkg/format"
	"github.com/cmmoran/phpmodelgen/pkg/php"
	"github.com/cmmoran/phpmodelgen/pkg/source"
)

// RenderComment renders c, or nothing when c is empty.
func (r *Renderer) RenderComment(c *php.DocComment) source.Block {
	return c.Lines()
}

// RenderAttribute renders `#[Name]` or `#[Name(args)]`. Three or more
// arguments go one per line.
func (r *Renderer) RenderAttribute(a *php.Attribute) source.Block {
	args := a.Args()
	if len(args) == 0 {
		return source.Lines("#[" + a.Name() + "]")
	}
	frags := make([]fragment, 0, len(args))
	for _, arg := range args {
		frags = append(frags, fragment{lines: source.Lines(arg)})
	}
	return enclose("#["+a.Name()+"(", frags, ")]", false)
}

func (r *Renderer) attributes(attrs []*php.Attribute) source.Block {
	if !r.caps.SupportsAttributes() {
		return nil
	}
	var out source.Block
	for _, a := range attrs {
		out = out.Extend(r.RenderAttribute(a))
	}
	return out
}

// RenderField renders a property declaration with its doc comment. A `@var`
// tag is added when the type cannot be hinted natively and dropped when the
// native hint already says everything.
func (r *Renderer) RenderField(f *php.Field) (source.Block, error) {
	typ := f.Type()
	hint, hinted := r.PropertyHint(typ)

	comment := f.Comment().Clone()
	if needsDoc(typ, hinted) {
		if comment == nil {
			comment = php.NewDocComment("")
		}
		if !comment.HasVarHint() {
			comment.SetVar(typ)
		}
	} else if comment != nil {
		if v, ok := comment.Var(); ok && v == typ.DocHint() {
			comment.RemoveVar()
		}
	}

	out := r.RenderComment(comment)
	out = out.Extend(r.attributes(f.Attributes()))

	decl := []string{string(f.Access())}
	if f.IsStatic() {
		decl = append(decl, "static")
	}
	if hinted {
		decl = append(decl, hint)
	}
	line := strings.Join(append(decl, "$"+f.Name()), " ")

	v := f.Value()
	// untyped and nullable properties need no explicit null
	if !v.IsSet() || (v.IsNull() && (!hinted || nullableHint(hint))) {
		return append(out, source.Text(line+";")), nil
	}
	if s, ok := v.Get().(string); ok && f.IsRaw() {
		return out.Extend(source.Wrap(line+" = ", source.Lines(strings.Split(s, "\n")...), ";")), nil
	}
	val, err := format.Value(v.Get())
	if err != nil {
		return nil, errors.Wrapf(err, "value of $%s", f.Name())
	}
	return out.Extend(source.Wrap(line+" = ", val, ";")), nil
}

// RenderConstant renders `<access> const NAME = value;`.
func (r *Renderer) RenderConstant(c *php.Constant) (source.Block, error) {
	val, err := format.Value(c.Value())
	if err != nil {
		return nil, errors.Wrapf(err, "constant %s", c.Name())
	}
	return source.Wrap(string(c.Access())+" const "+c.Name()+" = ", val, ";"), nil
}

// RenderClass renders the class declaration. Fields promoted by the
// constructor are declared in its parameter list instead of the class body;
// constructor-bound fields missing from the class are declared as well.
func (r *Renderer) RenderClass(c *php.Class) (source.Block, error) {
	out := r.RenderComment(c.Comment())
	out = out.Extend(r.attributes(c.Attributes()))

	var head []string
	if c.IsAbstract() {
		head = append(head, "abstract")
	}
	if c.IsFinal() {
		head = append(head, "final")
	}
	head = append(head, "class "+c.Name())
	if c.Extends() != "" {
		head = append(head, "extends "+c.Extends())
	}
	if impl := c.Implements(); len(impl) > 0 {
		head = append(head, "implements "+strings.Join(impl, ", "))
	}
	out = append(out, source.Text(strings.Join(head, " ")), source.Text("{"))

	var sections []source.Block
	var consts source.Block
	for _, k := range c.Constants() {
		b, err := r.RenderConstant(k)
		if err != nil {
			return nil, errors.Wrapf(err, "class %s", c.Name())
		}
		consts = consts.Extend(b)
	}
	if len(consts) > 0 {
		sections = append(sections, consts)
	}

	fields := c.Fields()
	var a assignment
	if ctor, ok := c.Method(php.ConstructorName); ok {
		a = r.assign(ctor)
		for _, p := range ctor.Params() {
			if f := p.Field(); f != nil && !slices.Contains(fields, f) {
				fields = append(fields, f)
			}
		}
	}
	for _, f := range fields {
		if a.promotes(f) {
			continue
		}
		b, err := r.RenderField(f)
		if err != nil {
			return nil, errors.Wrapf(err, "class %s", c.Name())
		}
		sections = append(sections, b)
	}

	for _, m := range c.Methods() {
		b, err := r.RenderMethod(m)
		if err != nil {
			return nil, errors.Wrapf(err, "class %s", c.Name())
		}
		sections = append(sections, b)
	}

	var body source.Block
	for i, s := range sections {
		if i > 0 {
			body = append(body, source.Text(""))
		}
		body = body.Extend(s)
	}
	return append(out, body, source.Text("}")), nil
}

// RenderFile renders a complete PHP file holding c.
func (r *Renderer) RenderFile(c *php.Class) (source.Block, error) {
	out := source.Lines("<?php", "")
	if r.strict {
		out = out.Extend(source.Lines("declare(strict_types=1);", ""))
	}
	if ns := c.Namespace(); ns != "" {
		out = out.Extend(source.Lines("namespace "+ns+";", ""))
	}
	cls, err := r.RenderClass(c)
	if err != nil {
		return nil, err
	}
	return out.Extend(cls), nil
}

// Render returns the text of the file holding c.
func (r *Renderer) Render(c *php.Class) (string, error) {
	b, err := r.RenderFile(c)
	if err != nil {
		return "", err
	}
	return source.Flatten(b, r.indent), nil
}

// nullableHint reports whether a native hint admits null: ?T, a union with
// null, or mixed.
func nullableHint(hint string) bool {
	if strings.HasPrefix(hint, "?") || hint == "mixed" {
		return true
	}
	return slices.Contains(strings.Split(hint, "|"), "null")
}
