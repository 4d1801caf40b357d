package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode gates the interactive progress view for batch commands.
type uiMode uint8

const (
	uiAuto uiMode = iota
	uiOn
	uiOff
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiAuto, nil
	case "on":
		return uiOn, nil
	case "off":
		return uiOff, nil
	default:
		return uiAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// wantTUI decides whether the run gets the bubbletea view: forced on,
// forced off, or TTY-detected.
func (m uiMode) wantTUI() bool {
	switch m {
	case uiOn:
		return true
	case uiOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
