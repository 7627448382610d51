package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ytcrawl/ytcrawl/pkg/crawl"
)

var csvHeader = []string{
	"videoId", "title", "description", "channelId", "channelTitle",
	"publishedAt", "thumbnail", "rank", "depth", "relatedVideos",
}

// WriteCSV encodes items as CSV and writes them to w, one row per item
// in discovery order. Related video ids are joined with commas into a
// single column.
func WriteCSV(items []*crawl.Item, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, it := range items {
		record := []string{
			it.ID,
			it.Title,
			it.Description,
			it.ChannelID,
			it.ChannelTitle,
			it.PublishedAt,
			it.Thumbnail,
			strconv.Itoa(it.Rank),
			strconv.Itoa(it.Depth),
			strings.Join(it.RelatedIDs, ","),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes items to a CSV file at path.
// This is a convenience wrapper around [WriteCSV] for file-based output.
func ExportCSV(items []*crawl.Item, path string) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCSV(items, f)
}
