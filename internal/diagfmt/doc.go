// Package diagfmt renders diagnostics, documents, and token dumps for
// terminals and machine consumers.
//
// Pretty writes the single-line header plus source context with a
// caret underline; JSON emits the stable machine shape. Both read from
// a diag.Bag and never mutate it. DocumentJSON mirrors the document
// model with snake_case field names.
package diagfmt
