package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Newline represents a physical line break.
	Newline // \n
	// Indent is a synthetic token emitted when a line starts deeper than
	// the enclosing block.
	Indent
	// Dedent is a synthetic token emitted when a line returns to a
	// shallower block level. Several may be emitted in a row.
	Dedent
	// Comment represents a comment running to the end of the line,
	// marker included.
	Comment // # ... or // ...

	// Ident represents an identifier token, possibly with an absorbed
	// shape and placement suffix (f32[N]@GPU).
	Ident
	// Number represents a decimal integer literal.
	Number
	// String represents a double-quoted string literal.
	String

	// BracketOpen opens a tag, entity header, or reference.
	BracketOpen // [
	// BracketClose closes a bracket construct.
	BracketClose // ]
	// Colon separates tag fragments and parameter types.
	Colon // :
	// Arrow separates a function signature from its return type.
	Arrow // → or ->
	// Memberof separates a state variable name from its type.
	Memberof // ∈ or "in"
	// Gradient is the ∇ marker used inside tag content.
	Gradient // ∇
	// Diamond marks a dependency line inside an entity block.
	Diamond // ◊ or <>

	// Symbol covers the remaining single-character punctuation; Text
	// carries the character.
	Symbol
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	Newline:      "Newline",
	Indent:       "Indent",
	Dedent:       "Dedent",
	Comment:      "Comment",
	Ident:        "Ident",
	Number:       "Number",
	String:       "String",
	BracketOpen:  "BracketOpen",
	BracketClose: "BracketClose",
	Colon:        "Colon",
	Arrow:        "Arrow",
	Memberof:     "Memberof",
	Gradient:     "Gradient",
	Diamond:      "Diamond",
	Symbol:       "Symbol",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsLayout reports whether the kind only structures the line grid.
func (k Kind) IsLayout() bool {
	switch k {
	case Newline, Indent, Dedent:
		return true
	default:
		return false
	}
}

// IsReserved reports whether the kind is one of the notation's reserved
// symbols.
func (k Kind) IsReserved() bool {
	switch k {
	case Arrow, Memberof, Gradient, Diamond:
		return true
	default:
		return false
	}
}
