package driver

import (
	"shorthand/internal/diag"
	"shorthand/internal/lexer"
	"shorthand/internal/parser"
	"shorthand/internal/source"
	"shorthand/internal/token"
)

// TokenizeResult holds the token stream of one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads one file and collects its full token stream,
// including trivia. Debug surface for `shorthand tokenize`.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	if maxDiagnostics <= 0 {
		maxDiagnostics = parser.DefaultMaxDiagnostics
	}

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	adapter := &lexer.ReporterAdapter{Bag: bag}
	tokens := lexer.Collect(file, lexer.Options{Reporter: adapter.Reporter()})

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

// StripTrivia filters out comments and line terminators. Indent and
// Dedent stay: they are structure, not trivia, in this notation.
func StripTrivia(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == token.Comment || tok.Kind == token.Newline {
			continue
		}
		out = append(out, tok)
	}
	return out
}
