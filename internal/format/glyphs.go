package format

// glyphs is the structural symbol set in effect for one print run.
// Only structural symbols are substituted in ASCII mode; ∇ and any
// other symbol inside tag content belong to the user.
type glyphs struct {
	memberof string // ∈ or in
	arrow    string // → or ->
	diamond  string // ◊ or <>
}

func glyphSet(preferUnicode bool) glyphs {
	if preferUnicode {
		return glyphs{memberof: "∈", arrow: "→", diamond: "◊"}
	}
	return glyphs{memberof: "in", arrow: "->", diamond: "<>"}
}
