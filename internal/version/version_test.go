package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestDefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	// Commit and BuildDate are optional and may stay empty.
	_ = Commit
	_ = BuildDate
}

func TestPrettyWithoutColor(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = orig }()

	if got := Pretty(); got != Version {
		t.Errorf("Pretty() = %q, want %q", got, Version)
	}
}

func TestUserAgent(t *testing.T) {
	origVersion, origCommit := Version, Commit
	defer func() { Version, Commit = origVersion, origCommit }()

	Version = "1.2.3"
	Commit = ""
	if got := UserAgent(); got != "shorthand/1.2.3" {
		t.Errorf("UserAgent() = %q", got)
	}

	Commit = "abc123"
	got := UserAgent()
	if !strings.Contains(got, "shorthand/1.2.3") || !strings.Contains(got, "abc123") {
		t.Errorf("UserAgent() = %q, want version and commit", got)
	}
}

func TestCanBeOverridden(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	defer func() { Version, Commit, BuildDate = origVersion, origCommit, origDate }()

	// Simulates build-time ldflags.
	Version = "1.2.3"
	Commit = "abc123def456"
	BuildDate = "2026-01-15T10:30:00Z"

	if Version != "1.2.3" || Commit != "abc123def456" || BuildDate != "2026-01-15T10:30:00Z" {
		t.Errorf("override failed: %q %q %q", Version, Commit, BuildDate)
	}
}
