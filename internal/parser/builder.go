package parser

import (
	"go/ast"
	"log/slog"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/cmmoran/phpmodelgen/internal/model"
	options "github.com/cmmoran/phpmodelgen/pkg/parser"
)

// Builder links the collected RawStructs into WorkingTypes and applies the
// generator options to them.
type Builder struct {
	opts   *options.Options
	raws   RawStructs
	logger *slog.Logger

	types     map[string]*model.WorkingType
	inFlight  map[string]bool
	flattened map[*model.WorkingType]bool
}

// NewBuilder returns a Builder; a nil logger means slog.Default().
func NewBuilder(opts *options.Options, raws RawStructs, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		opts:      opts,
		raws:      raws,
		logger:    logger,
		types:     make(map[string]*model.WorkingType),
		inFlight:  make(map[string]bool),
		flattened: make(map[*model.WorkingType]bool),
	}
}

// BuildAll returns the emitted types sorted by (suffixed) name. Every raw type
// gets a WorkingType first so references resolve regardless of declaration
// order; exclusions are settled for all types before any embedding is
// flattened.
func (b *Builder) BuildAll() []*model.WorkingType {
	for _, raw := range b.raws {
		if raw != nil {
			b.ensureWorkingType(raw.Name)
		}
	}
	for _, wt := range b.sorted() {
		b.populateFields(wt)
	}

	for _, wt := range b.types {
		b.applyExclusions(wt)
	}
	for _, wt := range b.sorted() {
		b.applyTransformations(wt)
	}

	var out []*model.WorkingType
	for _, wt := range b.sorted() {
		if !wt.Omit {
			out = append(out, wt)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (b *Builder) sorted() []*model.WorkingType {
	keys := make([]string, 0, len(b.types))
	for k := range b.types {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*model.WorkingType, 0, len(keys))
	for _, k := range keys {
		out = append(out, b.types[k])
	}
	return out
}

// ensureWorkingType returns the one WorkingType for name, creating it with
// the kind of its raw declaration on first use.
func (b *Builder) ensureWorkingType(name string) *model.WorkingType {
	if wt, ok := b.types[name]; ok {
		return wt
	}
	kind := model.KindStruct
	wt := &model.WorkingType{Name: name}
	if raw := b.raws.Find(name); raw != nil {
		switch {
		case raw.IsEnum():
			kind = model.KindEnum
		case raw.Alias != nil, raw.Basic != "":
			kind = model.KindAlias
		}
		wt.PkgPath, wt.Comment = raw.PkgPath, raw.Comment
	}
	wt.Kind = kind
	b.types[name] = wt
	return wt
}

// populateFields resolves the declaration behind wt: struct fields, enum
// values or the target of an alias.
func (b *Builder) populateFields(wt *model.WorkingType) {
	if wt == nil || b.inFlight[wt.Name] {
		return
	}
	b.inFlight[wt.Name] = true
	defer delete(b.inFlight, wt.Name)

	raw := b.raws.Find(wt.Name)
	if raw == nil {
		return
	}

	switch {
	case raw.Alias != nil:
		wt.Underlying = b.resolveTypeExprAlias(*raw.Alias, raw.AliasPtr)
	case raw.IsEnum():
		wt.EnumValues = append([]string(nil), raw.EnumValues...)
	case raw.Basic != "":
		wt.Underlying = &model.WorkingType{Name: raw.Basic, Kind: model.KindBuiltin}
	default:
		for _, rf := range raw.Fields {
			if wf := b.resolveRawField(rf, raw.Imports); wf != nil {
				wt.Fields = append(wt.Fields, wf)
			}
		}
	}
}

// resolveRawField turns an exported (or embedded) field into a WorkingField
// named after its json tag. Fields dropped by php:"-", json:"-" or an
// exclude-by-tag filter return nil.
func (b *Builder) resolveRawField(rf *model.RawField, imports map[string]string) *model.WorkingField {
	if rf == nil || (!rf.IsExport && !rf.IsEmbedded) {
		return nil
	}

	var tag reflect.StructTag
	if rf.TagLit != nil {
		tag = reflect.StructTag(strings.Trim(rf.TagLit.Value, "`"))
	}

	jsonName, omitEmpty := jsonTag(tag)
	wf := &model.WorkingField{
		RawName:      rf.Name,
		Name:         propertyName(rf.Name, jsonName),
		Comment:      rf.Comment,
		Embedded:     rf.IsEmbedded && jsonName == "",
		Type:         b.resolveTypeExpr(rf.TypeExpr, imports),
		Tag:          tag,
		Deprecated:   strings.Contains(strings.ToLower(rf.Comment), "deprecated"),
		OmitEmpty:    omitEmpty,
		TypeOverride: phpTypeOverride(tag),
	}

	if options.ShouldOmitField(wf, b.opts) {
		b.logger.Debug("omitting field by tag", "field", rf.Name, "tag", string(tag))
		return nil
	}

	return wf
}

// jsonTag returns the json name of a field and whether omitempty (or
// omitzero) is set.
func jsonTag(tag reflect.StructTag) (name string, omitEmpty bool) {
	v, ok := tag.Lookup("json")
	if !ok {
		return "", false
	}
	name, rest, _ := strings.Cut(v, ",")
	for _, opt := range strings.Split(rest, ",") {
		if opt == "omitempty" || opt == "omitzero" {
			omitEmpty = true
		}
	}
	if name == "-" {
		name = ""
	}
	return name, omitEmpty
}

// phpTypeOverride returns the type given by a `php:"<type>"` tag.
func phpTypeOverride(tag reflect.StructTag) string {
	v, ok := tag.Lookup("php")
	if !ok || v == "-" {
		return ""
	}
	return strings.TrimSpace(v)
}

// resolveTypeExpr maps a field type expression onto WorkingTypes.
func (b *Builder) resolveTypeExpr(expr ast.Expr, imports map[string]string) *model.WorkingType {
	switch t := expr.(type) {
	case *ast.Ident:
		return b.resolveIdentType(t)

	case *ast.StarExpr:
		return &model.WorkingType{Kind: model.KindPointer, Underlying: b.resolveTypeExpr(t.X, imports)}

	case *ast.ArrayType:
		// []byte is encoded as a string
		if id, ok := t.Elt.(*ast.Ident); ok && (id.Name == "byte" || id.Name == "uint8") {
			return &model.WorkingType{Name: "string", Kind: model.KindBuiltin}
		}
		return &model.WorkingType{Kind: model.KindSlice, Underlying: b.resolveTypeExpr(t.Elt, imports)}

	case *ast.MapType:
		return &model.WorkingType{
			Kind:       model.KindMap,
			Key:        b.resolveTypeExpr(t.Key, imports),
			Underlying: b.resolveTypeExpr(t.Value, imports),
		}

	case *ast.InterfaceType:
		return &model.WorkingType{Name: "any", Kind: model.KindAny}

	case *ast.IndexExpr: // type arguments carry nothing PHP can declare
		return b.resolveTypeExpr(t.X, imports)
	case *ast.IndexListExpr:
		return b.resolveTypeExpr(t.X, imports)

	case *ast.SelectorExpr:
		return b.resolveSelector(t, imports)

	default:
		b.logger.Debug("unsupported type expression, using mixed", "expr", reflect.TypeOf(expr))
		return &model.WorkingType{Name: "any", Kind: model.KindAny}
	}
}

// resolveTypeExprAlias builds []T, or []*T when elemPtr is set, for a slice
// alias declaration.
func (b *Builder) resolveTypeExprAlias(elemName string, elemPtr *bool) *model.WorkingType {
	elem := b.resolveIdentType(ast.NewIdent(elemName))
	if elemPtr != nil && *elemPtr {
		elem = &model.WorkingType{Kind: model.KindPointer, Underlying: elem}
	}
	return &model.WorkingType{Kind: model.KindSlice, Underlying: elem}
}

var builtinIdents = map[string]struct{}{
	"string": {}, "bool": {}, "byte": {}, "rune": {}, "int": {}, "int8": {}, "int16": {},
	"int32": {}, "int64": {}, "uint": {}, "uint8": {}, "uint16": {}, "uint32": {}, "uint64": {},
	"uintptr": {}, "float32": {}, "float64": {}, "complex64": {}, "complex128": {}, "error": {},
}

func (b *Builder) resolveIdentType(id *ast.Ident) *model.WorkingType {
	if id == nil {
		return &model.WorkingType{Name: "any", Kind: model.KindAny}
	}
	name := id.Name
	if _, builtin := builtinIdents[name]; builtin {
		return &model.WorkingType{Name: name, Kind: model.KindBuiltin}
	}
	if b.raws.Find(name) != nil {
		return b.ensureWorkingType(name)
	}

	// any, type parameters and anything else we cannot see
	if name != "any" {
		b.logger.Debug("unresolved identifier, using mixed", "type", name)
	}
	return &model.WorkingType{Name: name, Kind: model.KindAny}
}

// resolveSelector maps a SelectorExpr (pkg.Type) through the file imports.
// time.Time becomes KindTime, types of loaded packages resolve to their
// WorkingType, anything else is an opaque external leaf.
func (b *Builder) resolveSelector(sel *ast.SelectorExpr, imports map[string]string) *model.WorkingType {
	var pkgPath string
	if x, ok := sel.X.(*ast.Ident); ok {
		pkgPath = imports[x.Name]
	}
	typeName := sel.Sel.Name

	switch pkgPath + "." + typeName {
	case "time.Time":
		return &model.WorkingType{Name: typeName, PkgPath: pkgPath, Kind: model.KindTime}
	case "time.Duration":
		return &model.WorkingType{Name: "int64", Kind: model.KindBuiltin}
	}

	if rs := b.raws.Find(typeName); rs != nil && rs.PkgPath == pkgPath {
		return b.ensureWorkingType(typeName)
	}

	b.logger.Debug("external type, using mixed", "pkg", pkgPath, "type", typeName)
	return &model.WorkingType{Name: typeName, PkgPath: pkgPath, Kind: model.KindAny, IsExternal: true}
}

// flattenEmbedded replaces anonymous embedded struct fields with the fields of
// the embedded type, recursively. Embedded non-struct types are dropped.
func (b *Builder) flattenEmbedded(wt *model.WorkingType) {
	if wt == nil || wt.Kind != model.KindStruct || b.flattened[wt] {
		return
	}
	b.flattened[wt] = true

	var fields []*model.WorkingField
	for _, f := range wt.Fields {
		if f == nil {
			continue
		}
		if !f.Embedded {
			fields = append(fields, f)
			continue
		}
		inner := f.Type
		if inner != nil && inner.Kind == model.KindPointer {
			inner = inner.Underlying
		}
		if inner != nil && inner.Kind == model.KindStruct {
			b.filterDeprecated(inner)
			b.flattenEmbedded(inner)
			fields = append(fields, inner.Fields...)
			continue
		}
		b.logger.Debug("dropping embedded non-struct field", "type", wt.Name, "field", f.RawName)
	}
	wt.Fields = fields
}

// applyExclusions marks whole types omitted by name or deprecation.
func (b *Builder) applyExclusions(wt *model.WorkingType) {
	if wt == nil || wt.Omit {
		return
	}
	if b.isTypeExcluded(wt.Name) {
		b.logger.Debug("excluding type", "type", wt.Name)
		wt.Omit = true
		return
	}

	if b.opts.ExcludeDeprecated && strings.Contains(strings.ToLower(wt.Comment), "deprecated") {
		wt.IsDeprecated = true
		wt.Omit = true
	}
}

// applyTransformations drops deprecated fields, inlines embedded structs,
// suffixes the class name and removes duplicate properties.
func (b *Builder) applyTransformations(wt *model.WorkingType) {
	if wt == nil || wt.Omit {
		return
	}
	b.filterDeprecated(wt)
	b.flattenEmbedded(wt)
	b.applySuffix(wt)
	b.dedupeFields(wt)
}

// isTypeExcluded matches name against the lowercased ExcludeTypes.
func (b *Builder) isTypeExcluded(name string) bool {
	return name != "" && slices.Contains(b.opts.ExcludeTypes, strings.ToLower(name))
}

func (b *Builder) filterDeprecated(wt *model.WorkingType) {
	if wt == nil || !b.opts.ExcludeDeprecated {
		return
	}
	wt.Fields = slices.DeleteFunc(wt.Fields, func(f *model.WorkingField) bool {
		return f == nil || f.Deprecated
	})
}

// applySuffix appends Options.Suffix to class-producing types once.
func (b *Builder) applySuffix(wt *model.WorkingType) {
	if wt == nil || wt.NameResolved || b.opts.Suffix == "" {
		return
	}
	if wt.Kind != model.KindStruct && wt.Kind != model.KindEnum {
		return
	}
	if !strings.HasSuffix(wt.Name, b.opts.Suffix) {
		wt.Name += b.opts.Suffix
	}
	wt.NameResolved = true
}

// dedupeFields keeps the first property of every name.
func (b *Builder) dedupeFields(wt *model.WorkingType) {
	if wt == nil || wt.Kind != model.KindStruct {
		return
	}
	seen := make(map[string]bool, len(wt.Fields))
	wt.Fields = slices.DeleteFunc(wt.Fields, func(f *model.WorkingField) bool {
		if f == nil || f.Name == "" || seen[f.Name] {
			return true
		}
		seen[f.Name] = true
		return false
	})
}
