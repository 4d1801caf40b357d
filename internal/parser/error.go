package parser

import (
	"fmt"

	"shorthand/internal/diag"
)

// ParseError is a hard parse failure: no Document is produced. Only a
// small closed set of conditions raises one; see the package doc.
type ParseError struct {
	Line uint32
	Col  uint32
	Code diag.Code
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Col, e.Msg)
}
