package driver

import (
	"fmt"
	"strings"
)

// DiffLines renders a minimal line-by-line diff between the original
// and formatted content. Lines are compared positionally; the result
// is empty when both sides match. This is a readability aid for
// `fmt --diff`, not a patch format.
func DiffLines(path string, original, formatted []byte) string {
	if string(original) == string(formatted) {
		return ""
	}

	origLines := strings.Split(string(original), "\n")
	fmtLines := strings.Split(string(formatted), "\n")

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s (original)\n", path)
	fmt.Fprintf(&b, "+++ %s (formatted)\n", path)

	common := min(len(origLines), len(fmtLines))
	for i := 0; i < common; i++ {
		if origLines[i] != fmtLines[i] {
			fmt.Fprintf(&b, "- %d: %s\n", i+1, origLines[i])
			fmt.Fprintf(&b, "+ %d: %s\n", i+1, fmtLines[i])
		}
	}
	for i := common; i < len(origLines); i++ {
		fmt.Fprintf(&b, "- %d: %s\n", i+1, origLines[i])
	}
	for i := common; i < len(fmtLines); i++ {
		fmt.Fprintf(&b, "+ %d: %s\n", i+1, fmtLines[i])
	}
	return b.String()
}
