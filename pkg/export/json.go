package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ytcrawl/ytcrawl/pkg/crawl"
)

// WriteJSON encodes items as an indented JSON array and writes it to w.
// Each element carries the full item including depth, rank, and the
// related video ids, so the traversal graph can be rebuilt from the file.
func WriteJSON(items []*crawl.Item, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes items to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(items []*crawl.Item, path string) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(items, f)
}
