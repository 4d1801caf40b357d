package diag

import (
	"fmt"
)

// Code is a compact numeric diagnostic identifier. Ranges:
//
//	1000-1999  lexical (LEX)
//	2000-2999  syntax (SYN)
//	3000-3999  formatting/config (FMT)
//	4000-4999  IO and orchestration (IO)
type Code uint16

const (
	// UnknownCode is the zero value for unclassified findings.
	UnknownCode Code = 0

	// Lexical.
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadIndent          Code = 1003
	LexTooManyTokens      Code = 1004

	// Syntax.
	SynInfo             Code = 2000
	SynMissingMetadata  Code = 2001
	SynUnterminatedTag  Code = 2002
	SynEmptyTag         Code = 2003
	SynInvalidTag       Code = 2004
	SynUnknownType      Code = 2005
	SynUnrecognizedLine Code = 2006
	SynTrailingContent  Code = 2007
	SynExpectIdentifier Code = 2008
	SynMissingReturn    Code = 2009

	// Formatting and configuration.
	FmtInfo      Code = 3000
	FmtBadConfig Code = 3001
	FmtChanged   Code = 3002
	FmtLongLine  Code = 3003

	// IO and orchestration.
	IOInfo      Code = 4000
	IOFileRead  Code = 4001
	IOFileWrite Code = 4002
	IOCache     Code = 4003
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown diagnostic",

	LexInfo:               "lexical note",
	LexUnknownChar:        "unknown character",
	LexUnterminatedString: "unterminated string literal",
	LexBadIndent:          "suspicious indentation",
	LexTooManyTokens:      "token limit exceeded",

	SynInfo:             "syntax note",
	SynMissingMetadata:  "missing metadata header",
	SynUnterminatedTag:  "unterminated tag",
	SynEmptyTag:         "empty tag",
	SynInvalidTag:       "invalid tag",
	SynUnknownType:      "unresolvable type",
	SynUnrecognizedLine: "unrecognized line",
	SynTrailingContent:  "unexpected trailing content",
	SynExpectIdentifier: "identifier expected",
	SynMissingReturn:    "missing return type",

	FmtInfo:      "formatting note",
	FmtBadConfig: "invalid formatter configuration",
	FmtChanged:   "file needs reformatting",
	FmtLongLine:  "line exceeds configured length",

	IOInfo:      "io note",
	IOFileRead:  "cannot read file",
	IOFileWrite: "cannot write file",
	IOCache:     "document cache problem",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("FMT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
