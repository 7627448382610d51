// Package config persists crawl defaults between runs.
//
// Options live in a TOML file under the user config directory
// (~/.config/ytcrawl/config.toml). The file stores only defaults:
// command-line flags override a stored value only when the flag was
// explicitly provided, which the CLI decides via cobra's Changed.
//
// Mutation goes through the typed option schema in schema.go; writes are
// atomic (temp file + rename) so a crash never leaves a half-written file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
)

const appName = "ytcrawl"

// Options is the persisted option mapping.
type Options struct {
	Number       []int  `toml:"number"`        // per-level branching schedule
	MaxDepth     int    `toml:"max_depth"`     // depth at which expansion stops
	APIKey       string `toml:"api_key"`       // YouTube Data API v3 key
	OutputDir    string `toml:"output_dir"`    // export target directory
	OutputFormat string `toml:"output_format"` // csv, json, dot, or mongo
	RegionCode   string `toml:"region_code"`   // ISO 3166-1 alpha-2 filter
	LangCode     string `toml:"lang_code"`     // ISO 639-1 relevance language
	SafeSearch   string `toml:"safe_search"`   // none, moderate, or strict
	Encoding     string `toml:"encoding"`      // ascii, utf-8, or smart
}

// Defaults returns the options used when nothing is persisted.
func Defaults() Options {
	return Options{
		Number:       []int{10},
		MaxDepth:     2,
		OutputFormat: "csv",
		SafeSearch:   "none",
		Encoding:     "utf-8",
	}
}

// Clone returns a deep copy, so callers can merge flags without touching
// the loaded value.
func (o Options) Clone() Options {
	c := o
	c.Number = slices.Clone(o.Number)
	return c
}

// DefaultPath returns the config file location, honoring XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the persisted options from path, filling unset fields with
// defaults. A missing file yields the defaults without error.
func Load(path string) (Options, error) {
	opts := Defaults()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return opts, nil
	}
	if err != nil {
		return opts, err
	}

	if err := toml.Unmarshal(data, &opts); err != nil {
		return Defaults(), fmt.Errorf("parse %s: %w", path, err)
	}
	if len(opts.Number) == 0 {
		opts.Number = Defaults().Number
	}
	return opts, nil
}

// Save writes the options to path atomically.
func Save(opts Options, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.toml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(opts); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
