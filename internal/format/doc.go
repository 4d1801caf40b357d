// Package format serializes a parsed Document back to canonical
// shorthand text.
//
// The formatter is a full pretty-printer, not a source rewriter: it
// reads the document model and emits every line from scratch, so the
// output depends only on the model and the Config. Two contracts hold
// for any fixed Config: formatting is idempotent, and re-parsing the
// output yields a document structurally equal to the input (state
// order aside when sorting is enabled). Lines are never wrapped; the
// notation is line-oriented and a wrapped line would change meaning.
package format
