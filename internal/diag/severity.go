package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for recoverable findings the parse survived.
	SevWarning
	// SevError is for findings that make the result unusable.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Escalate raises the severity to at least min. Lint strict mode uses it
// to turn warnings into errors without touching infos.
func (s Severity) Escalate(min Severity) Severity {
	if s == SevWarning && min > s {
		return min
	}
	return s
}
