package format

import "fmt"

// SortMode selects the order of state variables within an entity block.
type SortMode int

const (
	// SortByLocation keeps state in source order.
	SortByLocation SortMode = iota
	// SortByName orders state lexically by variable name.
	SortByName
	// SortNone leaves the input order unchanged.
	SortNone
)

func (m SortMode) String() string {
	switch m {
	case SortByLocation:
		return "location"
	case SortByName:
		return "name"
	case SortNone:
		return "none"
	}
	return fmt.Sprintf("SortMode(%d)", int(m))
}

// Set implements pflag.Value so a SortMode can back a CLI flag.
func (m *SortMode) Set(s string) error {
	switch s {
	case "location":
		*m = SortByLocation
	case "name":
		*m = SortByName
	case "none":
		*m = SortNone
	default:
		return fmt.Errorf("unknown sort mode %q: want location, name, or none", s)
	}
	return nil
}

// Type implements pflag.Value.
func (m *SortMode) Type() string {
	return "mode"
}

// Config controls the canonical output.
type Config struct {
	// Indent is the number of spaces per block level.
	Indent int
	// AlignTypes pads state-variable names so the ∈ symbols of one
	// state run land in the same column.
	AlignTypes bool
	// PreferUnicode picks ∈ → ◊ over their ASCII spellings in, ->, <>.
	// Tag content is user data either way and is never rewritten.
	PreferUnicode bool
	// SortStateBy orders state variables within each entity.
	SortStateBy SortMode
	// MaxLineLength is advisory: the formatter never wraps, the lint
	// pipeline reports lines that exceed it.
	MaxLineLength int
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Indent:        2,
		AlignTypes:    true,
		PreferUnicode: true,
		SortStateBy:   SortByLocation,
		MaxLineLength: 100,
	}
}

// withDefaults fills zero values; explicit negatives stay for Validate
// to reject.
func (c Config) withDefaults() Config {
	if c.Indent == 0 {
		c.Indent = 2
	}
	if c.MaxLineLength == 0 {
		c.MaxLineLength = 100
	}
	return c
}

// Validate checks the numeric ranges.
func (c Config) Validate() error {
	if c.Indent <= 0 {
		return &ConfigError{Field: "indent", Reason: "indent must be positive"}
	}
	if c.MaxLineLength <= 0 {
		return &ConfigError{Field: "max_line_length", Reason: "line length must be positive"}
	}
	return nil
}

// ConfigError reports a Config value out of its valid range.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "format: " + e.Reason
}
