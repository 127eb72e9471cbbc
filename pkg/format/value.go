// Package format turns Go values into PHP literal source.
package format

import (
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/cmmoran/phpmodelgen/pkg/errors"
	"github.com/cmmoran/phpmodelgen/pkg/source"
)

// Raw is emitted verbatim, e.g. a constant reference or a `new Foo()` call.
type Raw string

// Entry is one key/value pair of an associative array literal.
type Entry struct {
	Key   any
	Value any
}

// Map is an associative array literal that keeps its insertion order.
type Map []Entry

// Value formats v as a PHP literal. Scalars produce a single line; arrays
// either a single line or a `[`, entries, `]` block.
func Value(v any) (source.Block, error) {
	switch x := v.(type) {
	case nil:
		return source.Lines("null"), nil
	case Raw:
		return source.Lines(strings.Split(string(x), "\n")...), nil
	case bool:
		return source.Lines(strconv.FormatBool(x)), nil
	case string:
		return source.Lines(Quote(x)), nil
	case float32:
		return source.Lines(formatFloat(float64(x))), nil
	case float64:
		return source.Lines(formatFloat(x)), nil
	case Map:
		return formatMap(x)
	case map[string]any:
		m := make(Map, 0, len(x))
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			m = append(m, Entry{Key: k, Value: x[k]})
		}
		return formatMap(m)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return source.Lines(strconv.FormatInt(rv.Int(), 10)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return source.Lines(strconv.FormatUint(rv.Uint(), 10)), nil
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return formatList(items)
	}
	return nil, errors.Unsupportedf("cannot format value of type %T", v)
}

// Inline formats v and reports whether it fits on a single line.
func Inline(v any) (string, bool, error) {
	b, err := Value(v)
	if err != nil {
		return "", false, err
	}
	if len(b) != 1 {
		return "", false, nil
	}
	t, ok := b[0].(source.Text)
	return string(t), ok, nil
}

// Quote returns s as a single quoted PHP string.
func Quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func formatList(items []any) (source.Block, error) {
	if len(items) == 0 {
		return source.Lines("[]"), nil
	}
	formatted := make([]source.Block, 0, len(items))
	inline := len(items) <= 2
	for _, item := range items {
		b, err := Value(item)
		if err != nil {
			return nil, err
		}
		inline = inline && len(b) == 1
		formatted = append(formatted, b)
	}
	if inline {
		parts := make([]string, 0, len(formatted))
		for _, b := range formatted {
			parts = append(parts, string(b[0].(source.Text)))
		}
		return source.Lines("[" + strings.Join(parts, ", ") + "]"), nil
	}
	entries := make(source.Block, 0, len(formatted))
	for _, b := range formatted {
		entries = entries.Extend(source.Wrap("", b, ","))
	}
	return source.Block{source.Text("["), entries, source.Text("]")}, nil
}

func formatMap(m Map) (source.Block, error) {
	if len(m) == 0 {
		return source.Lines("[]"), nil
	}
	entries := make(source.Block, 0, len(m))
	for _, e := range m {
		key, ok, err := Inline(e.Key)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.Unsupportedf("array key %v does not fit on one line", e.Key)
		}
		val, err := Value(e.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "key %s", key)
		}
		entries = entries.Extend(source.Wrap(key+" => ", val, ","))
	}
	return source.Block{source.Text("["), entries, source.Text("]")}, nil
}
