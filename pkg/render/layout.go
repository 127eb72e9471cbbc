package render

import (
	"strings"

	"github.com/cmmoran/phpmodelgen/pkg/errors"
	"github.com/cmmoran/phpmodelgen/pkg/source"
)

// maxInline is the largest number of fragments kept on one line.
const maxInline = 2

// fragment is one rendered list item: a parameter, attribute argument or
// array entry.
type fragment struct {
	lines      source.Block
	attributed bool
}

// layout decides between `a, b` and one fragment per line with trailing
// commas. Fragments spanning several lines always force the multi-line form.
func layout(frags []fragment, force bool) (inline string, block source.Block, multiline bool) {
	multiline = force || len(frags) > maxInline
	for _, f := range frags {
		if f.attributed || len(f.lines) != 1 {
			multiline = true
		} else if _, ok := f.lines[0].(source.Text); !ok {
			multiline = true
		}
	}
	if !multiline {
		parts := make([]string, 0, len(frags))
		for _, f := range frags {
			parts = append(parts, string(f.lines[0].(source.Text)))
		}
		return strings.Join(parts, ", "), nil, false
	}
	block = make(source.Block, 0, len(frags))
	for _, f := range frags {
		block = block.Extend(source.Wrap("", f.lines, ","))
	}
	return "", block, true
}

// enclose lays out frags between open and close. The inline form is a single
// line; the multi-line form puts open and close on lines of their own.
func enclose(open string, frags []fragment, close string, force bool) source.Block {
	inline, block, multiline := layout(frags, force)
	if !multiline {
		return source.Lines(open + inline + close)
	}
	return source.Block{source.Text(open), block, source.Text(close)}
}

// collapseEmptyBody turns a trailing `{`, empty block, `}` into `{}` on the
// line that opened the body.
func collapseEmptyBody(b source.Block) (source.Block, error) {
	n := len(b)
	if n < 3 {
		return nil, errors.Invariantf("method body has %d lines, want at least 3", n)
	}
	body, ok := b[n-2].(source.Block)
	if !ok || len(body) != 0 {
		return nil, errors.Invariantf("expected an empty body block before the closing brace")
	}
	if b[n-1] != source.Text("}") {
		return nil, errors.Invariantf("expected a closing brace, got %v", b[n-1])
	}
	open, ok := b[n-3].(source.Text)
	if !ok {
		return nil, errors.Invariantf("line opening the body is not text")
	}
	out := append(source.Block(nil), b[:n-3]...)
	return append(out, open+"}"), nil
}
