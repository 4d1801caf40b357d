package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto shows the path as recorded in the FileSet.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	// PathModeRelative shows paths relative to the working directory
	// when the file sits under it.
	PathModeRelative
	// PathModeBasename shows the file name only.
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	Context  int8 // extra source lines around the primary line
	PathMode PathMode
	// ShowNotes includes secondary notes under the primary entry.
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // add line/col to every location
	PathMode         PathMode
	Max              int // truncate the output, not the Bag
	IncludeNotes     bool
}
