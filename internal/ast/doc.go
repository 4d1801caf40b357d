// Package ast defines the document model the parser produces and the
// formatter consumes.
// Invariants:
//   - Values are immutable by convention: producers build them once,
//     consumers never mutate them.
//   - Tag carries no span and compares by value (see Tag.Equal); positional
//     information for tags lives in diagnostics only.
//   - TypeSpec.Base is never empty: unresolvable types carry the Unknown
//     sentinel instead.
//   - Document.Diagnostics holds only recoverable findings, in emission
//     order. Hard failures never produce a Document at all.
package ast
