package php

// Attribute is a `#[Name(args)]` annotation. Arguments are source expressions
// and are emitted as written.
type Attribute struct {
	name string
	args []string
}

func NewAttribute(name string, args ...string) *Attribute {
	return &Attribute{name: name, args: args}
}

func (a *Attribute) Name() string {
	return a.name
}

func (a *Attribute) Args() []string {
	return append([]string(nil), a.args...)
}
