package driver

import (
	"shorthand/internal/format"
	"shorthand/internal/parser"
)

// RunFmtCheck parses src, formats it, and verifies the round-trip: the
// formatted text must reparse into a structurally equal document. It
// returns whether the check passed and a short report line.
func RunFmtCheck(name, src string, cfg format.Config) (ok bool, msg string) {
	doc, _, err := parser.ParseString(name, src, parser.Options{})
	if err != nil {
		return false, "fmt-check: initial parse failed: " + err.Error()
	}
	formatted, err := format.Document(doc, cfg)
	if err != nil {
		return false, "fmt-check: format failed: " + err.Error()
	}
	return format.CheckRoundTrip(doc, formatted)
}
