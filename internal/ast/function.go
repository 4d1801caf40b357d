package ast

import (
	"shorthand/internal/source"
)

// Function is a `F:name(params) → type [tags]` line.
type Function struct {
	Name   string
	Params []Parameter
	Return TypeSpec
	Tags   []Tag
	Span   source.Span
}

// Parameter is one `name: type` entry of a function signature.
type Parameter struct {
	Name string
	Type TypeSpec
}

// Tag returns the first tag with the given base, if present.
func (f *Function) Tag(base string) (Tag, bool) {
	for _, t := range f.Tags {
		if t.Base == base {
			return t, true
		}
	}
	return Tag{}, false
}

// Complexity returns the first complexity annotation found across the
// function's tags.
func (f *Function) Complexity() (string, bool) {
	for _, t := range f.Tags {
		if c, ok := t.Complexity(); ok {
			return c, true
		}
	}
	return "", false
}
