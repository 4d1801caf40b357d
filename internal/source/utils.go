package source

import (
	"path/filepath"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// normalizeCRLF replaces every \r\n with \n, leaving lone \r alone.
// Returns the (possibly new) slice and whether any replacement happened.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

// normalizeNFC recomposes content to Unicode NFC so that each reserved
// symbol (∈ → ∇ ◊) is a single rune for the lexer.
func normalizeNFC(content []byte) ([]byte, bool) {
	if norm.NFC.IsNormal(content) {
		return content, false
	}
	return norm.NFC.Bytes(content), true
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

// toLineCol maps a byte offset to a 1-based line/column pair.
// Columns count runes from the line start, so ∈ occupies one column.
func toLineCol(content []byte, lineIdx []uint32, off uint32) LineCol {
	// Binary search: largest lineIdx[i] <= off, i.e. the last newline
	// at or before off.
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	line := hi // 0-based index of the newline ending the previous line

	var startOff uint32
	if line < 0 {
		startOff = 0
	} else {
		startOff = lineIdx[line] + 1
	}

	if off > uint32(len(content)) {
		off = uint32(len(content))
	}
	col := uint32(utf8.RuneCount(content[startOff:off])) + 1
	return LineCol{Line: uint32(line + 2), Col: col}
}

func normalizePath(p string) string {
	// Single form for cross-platform diffs.
	return filepath.ToSlash(filepath.Clean(p))
}
