// Package config reads the optional .joule.yaml workspace file, mirroring
// cue/load's convention of an optional per-module YAML/CUE config file
// that overrides search-path defaults rather than requiring one.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file's name, searched for at the workspace
// root only (no upward directory search, unlike cue.mod).
const FileName = ".joule.yaml"

// Config holds the search-path override described in §6: "default is
// [importer_dir, workspace_root/vendor, workspace_root]".
type Config struct {
	// SearchPaths, if non-empty, replaces the default import search
	// order's middle element(s) — entries are resolved relative to the
	// workspace root.
	SearchPaths []string `yaml:"searchPaths"`
}

// Default returns the zero-override configuration.
func Default() *Config { return &Config{} }

// Load reads workspaceRoot/.joule.yaml if present; a missing file is not
// an error and yields Default().
func Load(workspaceRoot string) (*Config, error) {
	path := filepath.Join(workspaceRoot, FileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
