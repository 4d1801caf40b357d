// Package lexer turns shorthand notation source into a token stream.
//
// The notation is line-oriented and indentation-sensitive. The lexer
// emits synthetic Indent/Dedent tokens when the leading width of a
// content line changes, and guarantees the stream ends with a Newline
// (synthesized when the file lacks one), a Dedent per open block, and
// EOF. Reserved symbols have ASCII aliases: "in" for ∈, "->" for →,
// "<>" for ◊. A type spec like f32[N,D]@GPU is absorbed into a single
// Ident token so its brackets never read as a tag.
package lexer
