package php

import (
	"strings"

	"github.com/cmmoran/phpmodelgen/pkg/phptype"
	"github.com/cmmoran/phpmodelgen/pkg/source"
)

// DocTag is one `@name value` line of a doc comment.
type DocTag struct {
	Name  string
	Value string
}

// DocComment is a `/** ... */` block.
type DocComment struct {
	description string
	tags        []DocTag
}

// NewDocComment returns a comment with an optional description.
func NewDocComment(description string) *DocComment {
	return &DocComment{description: description}
}

// VarComment returns a comment holding only `@var <doc hint>`.
func VarComment(t *phptype.Type) *DocComment {
	c := &DocComment{}
	c.SetVar(t)
	return c
}

func (c *DocComment) Description() string {
	return c.description
}

func (c *DocComment) Tags() []DocTag {
	return append([]DocTag(nil), c.tags...)
}

// AddTag appends a tag.
func (c *DocComment) AddTag(name, value string) *DocComment {
	c.tags = append(c.tags, DocTag{Name: name, Value: value})
	return c
}

// SetVar replaces the `@var` tag.
func (c *DocComment) SetVar(t *phptype.Type) {
	c.RemoveVar()
	c.tags = append([]DocTag{{Name: "var", Value: t.DocHint()}}, c.tags...)
}

// Var returns the `@var` value.
func (c *DocComment) Var() (string, bool) {
	return c.tag("var")
}

// HasVarHint reports whether the comment carries a `@var` type hint.
func (c *DocComment) HasVarHint() bool {
	_, ok := c.Var()
	return ok
}

// RemoveVar drops the `@var` tag.
func (c *DocComment) RemoveVar() {
	c.removeTag(func(t DocTag) bool { return t.Name == "var" })
}

// AddParam adds `@param <doc hint> $name` unless the parameter is already documented.
func (c *DocComment) AddParam(t *phptype.Type, name string) {
	if c.HasParam(name) {
		return
	}
	c.tags = append(c.tags, DocTag{Name: "param", Value: t.DocHint() + " $" + name})
}

// HasParam reports whether `$name` is documented.
func (c *DocComment) HasParam(name string) bool {
	for _, t := range c.tags {
		if t.Name == "param" && strings.HasSuffix(t.Value, "$"+name) {
			return true
		}
	}
	return false
}

// SetReturn replaces the `@return` tag.
func (c *DocComment) SetReturn(t *phptype.Type) {
	c.removeTag(func(t DocTag) bool { return t.Name == "return" })
	c.tags = append(c.tags, DocTag{Name: "return", Value: t.DocHint()})
}

// HasReturn reports whether a `@return` tag exists.
func (c *DocComment) HasReturn() bool {
	_, ok := c.tag("return")
	return ok
}

// IsEmpty reports whether rendering c would produce an empty comment.
func (c *DocComment) IsEmpty() bool {
	return c == nil || (strings.TrimSpace(c.description) == "" && len(c.tags) == 0)
}

// Clone returns a copy that can be extended without touching c.
func (c *DocComment) Clone() *DocComment {
	if c == nil {
		return nil
	}
	return &DocComment{description: c.description, tags: c.Tags()}
}

// Lines renders the comment. A comment holding only `@var` stays on one line.
func (c *DocComment) Lines() source.Block {
	if c.IsEmpty() {
		return nil
	}
	if strings.TrimSpace(c.description) == "" && len(c.tags) == 1 && c.tags[0].Name == "var" {
		return source.Lines("/** @var " + c.tags[0].Value + " */")
	}

	out := source.Lines("/**")
	if d := strings.TrimSpace(c.description); d != "" {
		for _, l := range strings.Split(d, "\n") {
			out = append(out, source.Text(strings.TrimRight(" * "+l, " ")))
		}
		if len(c.tags) > 0 {
			out = append(out, source.Text(" *"))
		}
	}
	for _, t := range c.tags {
		out = append(out, source.Text(" * @"+t.Name+" "+t.Value))
	}
	return append(out, source.Text(" */"))
}

func (c *DocComment) tag(name string) (string, bool) {
	for _, t := range c.tags {
		if t.Name == name {
			return t.Value, true
		}
	}
	return "", false
}

func (c *DocComment) removeTag(match func(DocTag) bool) {
	kept := c.tags[:0]
	for _, t := range c.tags {
		if !match(t) {
			kept = append(kept, t)
		}
	}
	c.tags = kept
}
