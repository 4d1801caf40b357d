package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes normalization metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM indicates a UTF-8 BOM was stripped during load.
	FileHadBOM
	// FileNormalizedCRLF indicates CRLF pairs were rewritten to LF.
	FileNormalizedCRLF
	// FileNormalizedNFC indicates the content was recomposed to Unicode NFC.
	// The notation's reserved symbols must be single composed runes.
	FileNormalizedNFC
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
// Columns count runes, not bytes: a multi-byte symbol advances Col by one.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
