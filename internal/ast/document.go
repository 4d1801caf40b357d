package ast

import (
	"shorthand/internal/diag"
)

// Metadata is the document header: `# [M:Name] [Role:Core]`.
type Metadata struct {
	ModuleName string
	Role       string
}

// Document is one parsed shorthand module.
type Document struct {
	Metadata  Metadata
	Entities  []*Entity
	Functions []Function
	// Diagnostics are the recoverable findings collected while parsing,
	// in emission order.
	Diagnostics []diag.Diagnostic
}

// Entity returns the named entity, if present.
func (d *Document) Entity(name string) (*Entity, bool) {
	for _, e := range d.Entities {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// HasDiagnostics reports whether the parse left any findings behind.
func (d *Document) HasDiagnostics() bool {
	return len(d.Diagnostics) > 0
}
