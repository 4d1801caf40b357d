package ast

import (
	"strings"
)

// UnknownType is the sentinel base for types the parser could not resolve.
const UnknownType = "Unknown"

// Placements seen in the wild. The set is open: any identifier after @
// is accepted and preserved.
const (
	PlacementGPU = "GPU"
	PlacementCPU = "CPU"
)

// TypeSpec is a resolved type annotation: base, optional shape dims,
// optional placement. `f32[N,D]@GPU` has Base "f32", Shape ["N","D"],
// Placement "GPU".
type TypeSpec struct {
	Base      string
	Shape     []string
	Placement string
}

// Unknown returns the sentinel TypeSpec for unresolvable annotations.
func Unknown() TypeSpec {
	return TypeSpec{Base: UnknownType}
}

// IsUnknown reports whether the spec is the unresolvable sentinel.
func (t TypeSpec) IsUnknown() bool {
	return t.Base == UnknownType
}

// String renders the canonical form: base[d1,d2]@Placement.
func (t TypeSpec) String() string {
	if len(t.Shape) == 0 && t.Placement == "" {
		return t.Base
	}
	var b strings.Builder
	b.WriteString(t.Base)
	if len(t.Shape) > 0 {
		b.WriteByte('[')
		b.WriteString(strings.Join(t.Shape, ","))
		b.WriteByte(']')
	}
	if t.Placement != "" {
		b.WriteByte('@')
		b.WriteString(t.Placement)
	}
	return b.String()
}

// Equal compares two specs by value.
func (t TypeSpec) Equal(other TypeSpec) bool {
	if t.Base != other.Base || t.Placement != other.Placement {
		return false
	}
	if len(t.Shape) != len(other.Shape) {
		return false
	}
	for i := range t.Shape {
		if t.Shape[i] != other.Shape[i] {
			return false
		}
	}
	return true
}
