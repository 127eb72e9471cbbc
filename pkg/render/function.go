package render

import (
	"strings"

	"github.com/cmmoran/phpmodelgen/pkg/errors"
	"github.com/cmmoran/phpmodelgen/pkg/format"
	"github.com/cmmoran/phpmodelgen/pkg/php"
	"github.com/cmmoran/phpmodelgen/pkg/source"
)

// assignment is what auto-assignment decides for a constructor's parameters:
// which are promoted and which statements are appended to the body.
type assignment struct {
	promoted map[*php.Param]bool
	body     source.Block
	force    bool
}

func (a assignment) promotes(f *php.Field) bool {
	for p := range a.promoted {
		if p.Field() == f {
			return true
		}
	}
	return false
}

// canPromote reports whether p may become a promoted property.
func canPromote(p *php.Param) bool {
	t := p.Type()
	return !t.IsEmpty() && !t.Is("callable") && !t.Is("resource") && !p.IsVariadic()
}

func (r *Renderer) assign(m *php.Method) assignment {
	a := assignment{promoted: map[*php.Param]bool{}}
	if !m.IsConstructor() || !m.AutoAssign() {
		return a
	}
	a.force = r.caps.SupportsPromotion()
	for _, p := range m.Params() {
		f := p.Field()
		if f == nil {
			continue
		}
		if r.caps.SupportsPromotion() && canPromote(p) {
			a.promoted[p] = true
			continue
		}
		r.logger.Debug("assigning constructor parameter", "param", p.Name(), "field", f.Name(), "profile", r.caps.Profile())
		a.body = append(a.body, source.Text("$this->"+f.Name()+" = $"+p.Name()+";"))
	}
	return a
}

// RenderParam renders a single parameter. With promote set the bound field's
// access and attributes are merged into the declaration.
func (r *Renderer) RenderParam(p *php.Param, promote bool) (source.Block, error) {
	frag, err := r.param(p, promote)
	return frag.lines, err
}

// RenderParams renders `(a, b)` or a parenthesized block of parameters.
func (r *Renderer) RenderParams(params []*php.Param) (source.Block, error) {
	frags, err := r.params(params, assignment{})
	if err != nil {
		return nil, err
	}
	return enclose("(", frags, ")", false), nil
}

func (r *Renderer) params(params []*php.Param, a assignment) ([]fragment, error) {
	frags := make([]fragment, 0, len(params))
	for _, p := range params {
		frag, err := r.param(p, a.promoted[p])
		if err != nil {
			return nil, err
		}
		frags = append(frags, frag)
	}
	return frags, nil
}

func (r *Renderer) param(p *php.Param, promote bool) (fragment, error) {
	typ := p.Type()
	attrs := p.Attributes()
	var decl []string
	if promote && p.Field() != nil {
		f := p.Field()
		decl = append(decl, string(f.Access()))
		attrs = append(f.Attributes(), attrs...)
		if typ.IsEmpty() {
			typ = f.Type()
		}
	}

	var out source.Block
	if r.caps.SupportsAttributes() {
		for _, attr := range attrs {
			out = out.Extend(r.RenderAttribute(attr))
		}
	} else {
		attrs = nil
	}

	if h, ok := r.TypeHint(typ); ok {
		decl = append(decl, h)
	}
	name := "$" + p.Name()
	if p.IsVariadic() {
		name = "..." + name
	}
	line := strings.Join(append(decl, name), " ")

	if d := p.Default(); d.IsSet() {
		v, inline, err := format.Inline(d.Get())
		if err != nil {
			return fragment{}, errors.Wrapf(err, "default value of $%s", p.Name())
		}
		if !inline {
			return fragment{}, errors.Unsupportedf("default value of $%s does not fit on one line", p.Name())
		}
		line += " = " + v
	}
	return fragment{lines: append(out, source.Text(line)), attributed: len(attrs) > 0}, nil
}

// RenderFunction renders a free function.
func (r *Renderer) RenderFunction(fn *php.Function) (source.Block, error) {
	return r.callable("function "+fn.Name(), fn, assignment{}, false, false)
}

// RenderMethod renders a method. Constructors that auto-assign get their
// assignment statements appended, or their parameters promoted where the
// profile supports it.
func (r *Renderer) RenderMethod(m *php.Method) (source.Block, error) {
	var mods []string
	if m.IsAbstract() {
		mods = append(mods, "abstract")
	}
	if m.IsFinal() {
		mods = append(mods, "final")
	}
	mods = append(mods, string(m.Access()))
	if m.IsStatic() {
		mods = append(mods, "static")
	}
	mods = append(mods, "function "+m.Name())
	out, err := r.callable(strings.Join(mods, " "), &m.Function, r.assign(m), m.IsAbstract(), m.IsConstructor())
	if err != nil {
		return nil, errors.Wrapf(err, "method %s", m.Name())
	}
	return out, nil
}

func (r *Renderer) callable(signature string, fn *php.Function, a assignment, abstract, ctor bool) (source.Block, error) {
	frags, err := r.params(fn.Params(), a)
	if err != nil {
		return nil, err
	}

	comment := fn.Comment().Clone()
	doc := func() *php.DocComment {
		if comment == nil {
			comment = php.NewDocComment("")
		}
		return comment
	}
	for _, p := range fn.Params() {
		if _, ok := r.TypeHint(p.Type()); needsDoc(p.Type(), ok) {
			doc().AddParam(p.Type(), p.Name())
		}
	}

	var ret string
	if rt := fn.ReturnType(); !ctor && !rt.IsEmpty() {
		h, ok := r.TypeHint(rt)
		if ok {
			ret = ": " + h
		}
		if needsDoc(rt, ok) && !doc().HasReturn() {
			doc().SetReturn(rt)
		}
	}

	body := append(append(source.Block{}, fn.Body()...), a.body...)
	out := r.RenderComment(comment)

	inline, block, multiline := layout(frags, a.force)
	switch {
	case !multiline && abstract:
		return append(out, source.Text(signature+"("+inline+")"+ret+";")), nil
	case multiline && abstract:
		return append(out, source.Text(signature+"("), block, source.Text(")"+ret+";")), nil
	case !multiline:
		out = append(out, source.Text(signature+"("+inline+")"+ret), source.Text("{"), body, source.Text("}"))
	default:
		out = append(out, source.Text(signature+"("), block, source.Text(")"+ret+" {"), body, source.Text("}"))
	}

	if ctor && len(body) == 0 {
		return collapseEmptyBody(out)
	}
	return out, nil
}
