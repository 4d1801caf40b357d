// Package parser turns a token stream into an ast.Document.
//
// The grammar is line-oriented, so the parser walks one line shape at a
// time: the metadata comment, entity headers with indented blocks,
// dependency and state lines inside blocks, and function lines at the
// top level. Failures split two ways: a small closed set aborts the
// parse with a *ParseError (missing metadata, unterminated or empty
// bracket constructs, tag invariant violations); everything else is
// recorded as a recoverable diagnostic and the parse keeps going.
package parser
