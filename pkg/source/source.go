// Package source holds the nested line structure produced by renderers and
// flattens it into text.
//
// A Block is a sequence of nodes; a Text node is one line and a nested Block
// is one indentation level deeper:
//
//	source.Block{
//		source.Text("public function run(): void"),
//		source.Text("{"),
//		source.Block{source.Text("return;")},
//		source.Text("}"),
//	}
package source

import (
	"strings"
)

// DefaultIndent is one tab per level.
const DefaultIndent = "\t"

// Node is either Text or Block.
type Node interface {
	node()
}

// Text is a single line without trailing newline.
type Text string

func (Text) node() {}

// Block is an ordered list of nodes rendered one level deeper than its parent.
type Block []Node

func (Block) node() {}

// Lines builds a Block of Text nodes.
func Lines(lines ...string) Block {
	b := make(Block, 0, len(lines))
	for _, l := range lines {
		b = append(b, Text(l))
	}
	return b
}

// Append adds nodes to the end of b. Nested Blocks passed as nodes are kept
// as nested levels.
func (b Block) Append(nodes ...Node) Block {
	return append(b, nodes...)
}

// Extend adds the nodes of other at the same level as b.
func (b Block) Extend(other Block) Block {
	return append(b, other...)
}

// Strings returns the Text lines of b with nested blocks indented by indent.
func (b Block) Strings(indent string) []string {
	var out []string
	b.walk(0, indent, func(line string) {
		out = append(out, line)
	})
	return out
}

// Flatten joins b into text, one line per Text node, each terminated by a
// newline. Empty Text nodes produce blank lines without indentation.
func Flatten(b Block, indent string) string {
	var sb strings.Builder
	b.walk(0, indent, func(line string) {
		sb.WriteString(line)
		sb.WriteString("\n")
	})
	return sb.String()
}

func (b Block) walk(depth int, indent string, emit func(string)) {
	prefix := strings.Repeat(indent, depth)
	for _, n := range b {
		switch v := n.(type) {
		case Text:
			if v == "" {
				emit("")
				continue
			}
			for _, part := range strings.Split(string(v), "\n") {
				if part == "" {
					emit("")
					continue
				}
				emit(prefix + part)
			}
		case Block:
			v.walk(depth+1, indent, emit)
		}
	}
}

// Wrap prepends prefix to the first line of b and appends suffix to its last
// line. Leading or trailing nested blocks get a new Text line instead.
func Wrap(prefix string, b Block, suffix string) Block {
	out := make(Block, 0, len(b)+2)
	out = append(out, b...)
	if prefix != "" {
		if first, ok := firstText(out); ok {
			out[0] = Text(prefix) + first
		} else {
			out = append(Block{Text(prefix)}, out...)
		}
	}
	if suffix != "" {
		if i := out.LastText(); i >= 0 {
			out[i] = out[i].(Text) + Text(suffix)
		} else {
			out = append(out, Text(suffix))
		}
	}
	return out
}

func firstText(b Block) (Text, bool) {
	if len(b) == 0 {
		return "", false
	}
	t, ok := b[0].(Text)
	return t, ok
}

// LastText returns the index of the last node when it is Text, or -1.
func (b Block) LastText() int {
	if len(b) == 0 {
		return -1
	}
	if _, ok := b[len(b)-1].(Text); ok {
		return len(b) - 1
	}
	return -1
}
