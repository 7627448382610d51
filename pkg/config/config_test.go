package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	opts, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !slices.Equal(opts.Number, []int{10}) || opts.MaxDepth != 2 || opts.OutputFormat != "csv" {
		t.Errorf("defaults wrong: %+v", opts)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	opts := Defaults()
	opts.Number = []int{10, 3}
	opts.MaxDepth = 4
	opts.APIKey = "secret"
	opts.RegionCode = "DE"

	if err := Save(opts, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !slices.Equal(loaded.Number, []int{10, 3}) {
		t.Errorf("Number = %v", loaded.Number)
	}
	if loaded.MaxDepth != 4 || loaded.APIKey != "secret" || loaded.RegionCode != "DE" {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestSaveIsAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := Save(Defaults(), path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "config.toml" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("directory contents = %v, want [config.toml]", names)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("number = what"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	opts := Defaults()
	opts.Number = []int{10, 3}

	clone := opts.Clone()
	clone.Number[0] = 99

	if opts.Number[0] != 10 {
		t.Error("Clone aliases the Number slice")
	}
}
