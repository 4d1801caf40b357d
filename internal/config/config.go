// Package config loads tool settings from a shorthand.toml manifest.
//
// The manifest is discovered by walking up from the working directory,
// so any file inside a project picks up the project's settings. Every
// key is optional; missing keys keep their defaults, and keys that
// match no known field are collected for a warning instead of being
// rejected.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"shorthand/internal/format"
	"shorthand/internal/parser"
)

// ManifestName is the file the walk-up discovery looks for.
const ManifestName = "shorthand.toml"

// Config is the resolved tool configuration: the documented defaults
// overlaid with whatever the manifest defines.
type Config struct {
	// Path is the manifest location, empty when running on defaults.
	Path string
	// Root is the directory containing the manifest.
	Root string

	// Format feeds the formatter and the fmt/lint commands.
	Format format.Config
	// Lint controls diagnostic reporting.
	Lint Lint
	// Decorators extends the tag vocabulary the parser accepts as
	// decorators, on top of the built-in set.
	Decorators []string

	// Unknown lists manifest keys that matched no known field.
	Unknown []string
}

// Lint holds the [lint] section.
type Lint struct {
	// Strict escalates warnings to errors.
	Strict bool
	// MaxDiagnostics caps how many diagnostics a single parse keeps.
	MaxDiagnostics int
}

// Default returns the configuration used when no manifest exists.
func Default() *Config {
	return &Config{
		Format: format.DefaultConfig(),
		Lint: Lint{
			Strict:         false,
			MaxDiagnostics: parser.DefaultMaxDiagnostics,
		},
	}
}

// manifest mirrors the TOML schema. Values are overlaid onto Default()
// only when toml.MetaData says the key was present, so `align_types =
// false` is distinguishable from an absent key.
type manifest struct {
	Format formatSection `toml:"format"`
	Lint   lintSection   `toml:"lint"`
	Tags   tagsSection   `toml:"tags"`
}

type formatSection struct {
	Indent        int    `toml:"indent"`
	AlignTypes    bool   `toml:"align_types"`
	PreferUnicode bool   `toml:"prefer_unicode"`
	SortState     string `toml:"sort_state"`
	MaxLineLength int    `toml:"max_line_length"`
}

type lintSection struct {
	Strict         bool `toml:"strict"`
	MaxDiagnostics int  `toml:"max_diagnostics"`
}

type tagsSection struct {
	Decorators []string `toml:"decorators"`
}

// Find walks up from startDir to locate a shorthand.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads one manifest file. The result always starts from
// Default(), so callers never see partially-filled settings.
func Load(path string) (*Config, error) {
	cfg := Default()
	var m manifest
	md, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.Path = path
	cfg.Root = filepath.Dir(path)

	if md.IsDefined("format", "indent") {
		cfg.Format.Indent = m.Format.Indent
	}
	if md.IsDefined("format", "align_types") {
		cfg.Format.AlignTypes = m.Format.AlignTypes
	}
	if md.IsDefined("format", "prefer_unicode") {
		cfg.Format.PreferUnicode = m.Format.PreferUnicode
	}
	if md.IsDefined("format", "sort_state") {
		if err := cfg.Format.SortStateBy.Set(m.Format.SortState); err != nil {
			return nil, fmt.Errorf("%s: [format].sort_state: %w", path, err)
		}
	}
	if md.IsDefined("format", "max_line_length") {
		cfg.Format.MaxLineLength = m.Format.MaxLineLength
	}
	if md.IsDefined("lint", "strict") {
		cfg.Lint.Strict = m.Lint.Strict
	}
	if md.IsDefined("lint", "max_diagnostics") {
		cfg.Lint.MaxDiagnostics = m.Lint.MaxDiagnostics
	}
	if md.IsDefined("tags", "decorators") {
		cfg.Decorators = slices.Clone(m.Tags.Decorators)
	}

	for _, key := range md.Undecoded() {
		cfg.Unknown = append(cfg.Unknown, key.String())
	}

	if err := cfg.Format.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Lint.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("%s: [lint].max_diagnostics must not be negative", path)
	}
	return cfg, nil
}

// Discover finds and loads the manifest governing startDir. When no
// manifest exists anywhere up the tree it returns Default().
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
