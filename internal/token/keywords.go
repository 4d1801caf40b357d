package token

// symbolWords maps ASCII word spellings to reserved symbol kinds. "in" is
// the only reserved word of the notation; "->" and "<>" are handled by the
// punctuation scanner.
var symbolWords = map[string]Kind{
	"in": Memberof,
}

// LookupSymbolWord returns the reserved symbol kind for an identifier
// spelling, if any.
func LookupSymbolWord(word string) (Kind, bool) {
	kind, ok := symbolWords[word]
	return kind, ok
}
