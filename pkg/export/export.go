// Package export writes crawl results to files and external sinks.
//
// Every exporter takes the flat item list produced by a crawl and emits
// one record per item, preserving discovery order. File-based formats
// (CSV, JSON, DOT) name their output after the query plus a timestamp
// and a short run id, so repeated runs never clobber each other.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Filename builds the output path for a file-based export:
// <dir>/<slug>_<timestamp>_<id>.<ext>.
func Filename(dir, query, ext string) string {
	name := fmt.Sprintf("%s_%s_%s.%s",
		slugify(query),
		time.Now().Format("20060102-150405"),
		uuid.NewString()[:8],
		ext)
	return filepath.Join(dir, name)
}

// slugify reduces a query to a filesystem-safe token.
func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "crawl"
	}
	if len(slug) > 40 {
		slug = slug[:40]
	}
	return slug
}

func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}
