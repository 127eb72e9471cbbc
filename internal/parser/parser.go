package parser

import (
	"go/ast"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/tools/go/packages"

	"github.com/cmmoran/phpmodelgen/internal/model"
	"github.com/cmmoran/phpmodelgen/pkg/errors"
	"github.com/cmmoran/phpmodelgen/pkg/php"
	options "github.com/cmmoran/phpmodelgen/pkg/parser"
)

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedSyntax

// Parser loads a Go module and converts its types into PHP classes.
type Parser struct {
	Opts   options.Options
	Logger *slog.Logger

	// Namespace is the PHP namespace of every generated class.
	Namespace  string
	RawStructs RawStructs
	Classes    []*php.Class

	// enumValues maps "pkgPath.Type" to its string constants in declaration order.
	enumValues map[string][]string
}

type RawStructs []*model.RawStruct

func (x RawStructs) Find(name string) *model.RawStruct {
	for _, s := range x {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// New builds a Parser from the default options plus opts.
func New(opts ...options.Option) (*Parser, error) {
	o := options.NewOptions()
	for _, fn := range opts {
		fn(o)
	}

	return NewWithOpts(o)
}

// NewWithOpts normalizes a copy of opts into a new Parser.
func NewWithOpts(opts *options.Options) (*Parser, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}

	p := &Parser{
		Opts:       *opts,
		Logger:     slog.Default(),
		Namespace:  opts.Namespace,
		RawStructs: make([]*model.RawStruct, 0),
		enumValues: make(map[string][]string),
	}

	return p, nil
}

func (p *Parser) BuildWorkingModel() []*model.WorkingType {
	b := NewBuilder(&p.Opts, p.RawStructs, p.Logger)
	return b.BuildAll()
}

// Parse loads every package below InDir and converts its types into
// p.Classes.
func (p *Parser) Parse() error {
	pkgs, err := packages.Load(&packages.Config{
		Mode: loadMode,
		Dir:  p.Opts.InDir,
		Fset: token.NewFileSet(),
	}, "./...")
	if err != nil {
		return errors.Wrapf(err, "load packages in %s", p.Opts.InDir)
	}
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return errors.Wrapf(pkg.Errors[0], "load package %s", pkg.PkgPath)
		}
	}
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].PkgPath < pkgs[j].PkgPath })

	if p.Namespace == "" {
		if p.Namespace, err = p.moduleNamespace(); err != nil {
			return err
		}
	}

	// constants first: an enum's values may be declared in another file
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			p.collectConsts(pkg.PkgPath, file)
		}
	}
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			p.collectStructs(pkg.PkgPath, file)
		}
	}

	wts := p.BuildWorkingModel()
	p.Classes, err = ToClasses(wts, &p.Opts, p.Namespace)
	if err != nil {
		return err
	}
	p.Logger.Debug("parsed packages", "dir", p.Opts.InDir, "packages", len(pkgs), "classes", len(p.Classes))

	return nil
}

func (p *Parser) collectConsts(pkgPath string, file *ast.File) {
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.CONST {
			continue
		}
		for _, spec := range gen.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			typ, ok := vs.Type.(*ast.Ident)
			if !ok {
				continue
			}
			key := pkgPath + "." + typ.Name
			for _, v := range vs.Values {
				lit, ok := v.(*ast.BasicLit)
				if !ok || lit.Kind != token.STRING {
					continue
				}
				s, err := strconv.Unquote(lit.Value)
				if err != nil {
					continue
				}
				p.enumValues[key] = append(p.enumValues[key], s)
			}
		}
	}
}

// collectStructs records the type declarations of file that can become PHP
// classes or shape a property type. Type aliases (type X = Y) are skipped.
func (p *Parser) collectStructs(pkgPath string, file *ast.File) {
	imports := fileImports(file)

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		groupDoc := commentText(gen.Doc)

		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || ts.Assign.IsValid() {
				continue
			}

			doc := groupDoc
			if own := commentText(ts.Doc); own != "" {
				doc = strings.TrimPrefix(doc+"\n"+own, "\n")
			}

			raw := &model.RawStruct{
				Name:    ts.Name.Name,
				Comment: doc,
				PkgPath: pkgPath,
				Imports: imports,
				File:    file,
			}

			switch rhs := ts.Type.(type) {
			case *ast.ArrayType: // type LineItems []*LineItem
				elem, ptr := rhs.Elt, false
				if star, ok := elem.(*ast.StarExpr); ok {
					elem, ptr = star.X, true
				}
				id, ok := elem.(*ast.Ident)
				if !ok {
					p.Logger.Debug("skipping slice type with unsupported element", "type", ts.Name.Name)
					continue
				}
				raw.Alias, raw.AliasPtr = &id.Name, &ptr

			case *ast.Ident: // type Status string, an enum once string constants exist
				if _, ok := builtinIdents[rhs.Name]; !ok {
					continue
				}
				raw.Basic = rhs.Name
				raw.EnumValues = p.enumValues[pkgPath+"."+ts.Name.Name]

			case *ast.StructType:
				for _, fld := range rhs.Fields.List {
					raw.Fields = append(raw.Fields, p.parseRawFields(fld)...)
				}

			default:
				continue
			}

			p.RawStructs = append(p.RawStructs, raw)
		}
	}
}

func (p *Parser) parseRawFields(f *ast.Field) []*model.RawField {
	if f == nil {
		return nil
	}

	comment := commentText(f.Doc)
	if line := commentText(f.Comment); line != "" {
		if comment != "" {
			comment += "\n"
		}
		comment += line
	}

	// an embedded field is named by its type: Audit, *Audit, pkg.Audit
	if len(f.Names) == 0 {
		name := embeddedFieldName(f.Type)
		return []*model.RawField{{
			Name:       name,
			IsEmbedded: true,
			IsExport:   ast.IsExported(name),
			TypeExpr:   f.Type,
			TagLit:     f.Tag,
			Comment:    comment,
		}}
	}

	out := make([]*model.RawField, 0, len(f.Names))
	for _, id := range f.Names {
		out = append(out, &model.RawField{
			Name:     id.Name,
			IsExport: ast.IsExported(id.Name),
			TypeExpr: f.Type,
			TagLit:   f.Tag,
			Comment:  comment,
		})
	}

	return out
}

// helpers
func embeddedFieldName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.StarExpr:
		return embeddedFieldName(t.X)
	case *ast.IndexExpr:
		return embeddedFieldName(t.X)
	case *ast.IndexListExpr:
		return embeddedFieldName(t.X)
	}
	return ""
}

// fileImports maps the local name of every import of file to its path.
func fileImports(file *ast.File) map[string]string {
	m := make(map[string]string, len(file.Imports))
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		alias := filepath.Base(path)
		if prefix, _, ok := module.SplitPathVersion(path); ok && prefix != path {
			alias = filepath.Base(prefix)
		}
		if imp.Name != nil {
			if imp.Name.Name == "_" || imp.Name.Name == "." {
				continue
			}
			alias = imp.Name.Name
		}
		m[alias] = path
	}
	return m
}

func commentText(cg *ast.CommentGroup) string {
	return strings.TrimSpace(cg.Text())
}

// findGoModDir walks up from InDir until it finds go.mod.
func (p *Parser) findGoModDir() (string, error) {
	from, err := filepath.Abs(p.Opts.InDir)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", p.Opts.InDir)
	}
	for {
		if _, err = os.Stat(filepath.Join(from, "go.mod")); err == nil {
			return from, nil
		}
		parent := filepath.Dir(from)
		if parent == from {
			return "", errors.Newf("no go.mod found above %s", p.Opts.InDir)
		}
		from = parent
	}
}

// moduleNamespace derives the PHP namespace from the module path in go.mod.
func (p *Parser) moduleNamespace() (string, error) {
	dir, err := p.findGoModDir()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", errors.Wrap(err, "read go.mod")
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", errors.Newf("no module directive in %s", filepath.Join(dir, "go.mod"))
	}
	return namespaceFromModulePath(path), nil
}

// namespaceFromModulePath turns "github.com/acme/order-service/v2" into
// `Acme\OrderService`: the host and the major version suffix are dropped.
func namespaceFromModulePath(path string) string {
	if prefix, _, ok := module.SplitPathVersion(path); ok {
		path = prefix
	}
	segs := strings.Split(path, "/")
	out := make([]string, 0, len(segs))
	for i, s := range segs {
		if i == 0 && strings.Contains(s, ".") {
			continue
		}
		if s = toPascalCase(s); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, `\`)
}
