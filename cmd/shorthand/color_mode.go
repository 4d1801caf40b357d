package main

import (
	"fmt"
	"os"
	"strings"
)

// colorMode selects when output gets ANSI colors. It implements
// pflag.Value so --color is validated at parse time.
type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

var rootColor = colorAuto

func (m *colorMode) Set(s string) error {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "", "auto":
		*m = colorAuto
	case "on", "always":
		*m = colorOn
	case "off", "never":
		*m = colorOff
	default:
		return fmt.Errorf("invalid color mode %q (expected auto|on|off)", s)
	}
	return nil
}

func (m *colorMode) String() string { return string(*m) }

func (m *colorMode) Type() string { return "mode" }

func (m colorMode) enabled(f *os.File) bool {
	switch m {
	case colorOn:
		return true
	case colorOff:
		return false
	default:
		return isTerminal(f)
	}
}
