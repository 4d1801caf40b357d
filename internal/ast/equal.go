package ast

// Structural equality ignores spans and diagnostics: two documents are
// equal when they carry the same model, wherever it sat in the source.

// Equal compares two parameters by name and type.
func (p Parameter) Equal(other Parameter) bool {
	return p.Name == other.Name && p.Type.Equal(other.Type)
}

// Equal compares two functions by signature and tags.
func (f *Function) Equal(other *Function) bool {
	if f.Name != other.Name || !f.Return.Equal(other.Return) {
		return false
	}
	if len(f.Params) != len(other.Params) || len(f.Tags) != len(other.Tags) {
		return false
	}
	for i := range f.Params {
		if !f.Params[i].Equal(other.Params[i]) {
			return false
		}
	}
	for i := range f.Tags {
		if !f.Tags[i].Equal(other.Tags[i]) {
			return false
		}
	}
	return true
}

// Equal compares two entities by name, dependencies, state, and methods.
func (e *Entity) Equal(other *Entity) bool {
	if e.Name != other.Name {
		return false
	}
	if len(e.Dependencies) != len(other.Dependencies) ||
		len(e.State) != len(other.State) ||
		len(e.Methods) != len(other.Methods) {
		return false
	}
	for i := range e.Dependencies {
		if e.Dependencies[i].Name != other.Dependencies[i].Name {
			return false
		}
	}
	for i := range e.State {
		if e.State[i].Name != other.State[i].Name || !e.State[i].Type.Equal(other.State[i].Type) {
			return false
		}
	}
	for i := range e.Methods {
		if !e.Methods[i].Equal(&other.Methods[i]) {
			return false
		}
	}
	return true
}

// EqualStructure compares two documents by model content. State order
// is compared as-is: a formatter that sorts state produces a document
// equal to its own reparse, not necessarily to the original input's.
func (d *Document) EqualStructure(other *Document) bool {
	if d.Metadata != other.Metadata {
		return false
	}
	if len(d.Entities) != len(other.Entities) || len(d.Functions) != len(other.Functions) {
		return false
	}
	for i := range d.Entities {
		if !d.Entities[i].Equal(other.Entities[i]) {
			return false
		}
	}
	for i := range d.Functions {
		if !d.Functions[i].Equal(&other.Functions[i]) {
			return false
		}
	}
	return true
}
