package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ytcrawl/ytcrawl/pkg/errors"
)

func TestCacheDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-cache", appName) {
		t.Errorf("dir = %s", dir)
	}
}

func TestCacheDirDefaultsToHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "/home/tester")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if dir != filepath.Join("/home/tester", ".cache", appName) {
		t.Errorf("dir = %s", dir)
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	old := uiOut
	uiOut = &buf
	t.Cleanup(func() { uiOut = old })

	c := New(io.Discard, LogInfo)
	c.PrintError(errors.New(errors.ErrCodeRateLimited, "API quota exceeded"))

	out := buf.String()
	if !strings.Contains(out, "API quota exceeded") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "RATE_LIMITED") {
		t.Errorf("output missing code: %q", out)
	}
}

func TestRootCommandSilencesCobraErrors(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	if !root.SilenceErrors {
		t.Error("cobra error printing should be off, PrintError reports instead")
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"search", "config", "cache", "serve", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}
