package ast

import (
	"shorthand/internal/source"
)

// Entity is a `[C:Name]` block with its dependencies and state.
type Entity struct {
	Name         string
	Dependencies []Reference
	State        []StateVariable
	// Methods are recovered best-effort from `# F:...` comment lines
	// inside the entity body.
	Methods []Function
	Span    source.Span
}

// Reference is a `◊ [Ref:Name]` dependency line.
type Reference struct {
	Name string
	Span source.Span
}

// StateVariable is a `name ∈ type` line.
type StateVariable struct {
	Name string
	Type TypeSpec
	Span source.Span
}
