// Package token defines lexical token kinds for the shorthand notation.
// Invariants:
//   - Token.Text is a slice of the original source (no copies), except for
//     the synthetic kinds Indent, Dedent and EOF whose Text is empty.
//   - Token.Span matches Text exactly (Start..End); synthetic kinds carry a
//     zero-width span at the position they were emitted.
//   - Token.Line/Token.Col are 1-based and count columns in runes, so the
//     three-byte ∈ advances the column by one.
//   - Comments are first-class tokens (the parser decides their relevance:
//     the metadata header and entity method lines live inside comments).
//   - ASCII spellings lex to the same kinds as their Unicode forms:
//     "in" → Memberof, "->" → Arrow, "<>" → Diamond. Text keeps the source
//     spelling; only the formatter chooses the output symbol set.
//   - Type shapes and placements are absorbed into a single Ident token
//     (f32[N,D]@GPU) when the closing bracket sits on the same line; the
//     parser re-reads that text as a TypeSpec.
package token
