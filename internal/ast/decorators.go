package ast

// defaultDecorators is the built-in decorator vocabulary. Anything else
// in decorator position downgrades to a custom tag.
var defaultDecorators = []string{
	"Prop",
	"Static",
	"Class",
	"Abstract",
	"Cached",
	"RateLimit",
}

// DecoratorSet is an explicit allow-list of decorator bases.
type DecoratorSet struct {
	names map[string]bool
}

// DefaultDecorators returns the built-in vocabulary.
func DefaultDecorators() DecoratorSet {
	return NewDecoratorSet(defaultDecorators...)
}

// NewDecoratorSet builds a vocabulary from the given names.
func NewDecoratorSet(names ...string) DecoratorSet {
	set := DecoratorSet{names: make(map[string]bool, len(names))}
	for _, n := range names {
		if n != "" {
			set.names[n] = true
		}
	}
	return set
}

// With returns a copy of the set extended with additional names.
func (s DecoratorSet) With(extra ...string) DecoratorSet {
	out := DecoratorSet{names: make(map[string]bool, len(s.names)+len(extra))}
	for n := range s.names {
		out.names[n] = true
	}
	for _, n := range extra {
		if n != "" {
			out.names[n] = true
		}
	}
	return out
}

// Has reports whether name is in the vocabulary. Matching is
// case-sensitive.
func (s DecoratorSet) Has(name string) bool {
	return s.names[name]
}

// Len returns the vocabulary size.
func (s DecoratorSet) Len() int {
	return len(s.names)
}
