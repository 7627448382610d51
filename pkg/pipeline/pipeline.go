// Package pipeline orchestrates a full crawl: seed resolution, breadth-first
// traversal, text normalization, and export. Both the CLI and the HTTP API
// run crawls through the [Runner] so they share one code path.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/ytcrawl/ytcrawl/pkg/crawl"
	"github.com/ytcrawl/ytcrawl/pkg/errors"
	"github.com/ytcrawl/ytcrawl/pkg/youtube"
)

// Mode selects how the query is turned into seed videos.
type Mode string

const (
	// ModeTerm treats the query as a search term; the top results seed
	// the crawl.
	ModeTerm Mode = "term"
	// ModeID treats the query as a single video id.
	ModeID Mode = "id"
	// ModeURL extracts the video id from a watch URL.
	ModeURL Mode = "url"
)

// Options configures one crawl execution.
type Options struct {
	Mode  Mode   // seed resolution mode; defaults to ModeTerm
	Query string // search term, video id, or watch URL per Mode

	Number   []int // per-level branching schedule
	MaxDepth int   // depth at which expansion stops

	Search   youtube.SearchOptions // region, language, safe-search filters
	Encoding string                // ascii, utf-8, or smart; defaults to utf-8

	Logger *log.Logger
}

// ValidateAndSetDefaults fills zero values and rejects options no crawl
// can run with. The branching schedule is checked against the API page
// size here so the failure surfaces before any quota is spent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Mode == "" {
		o.Mode = ModeTerm
	}
	switch o.Mode {
	case ModeTerm, ModeID, ModeURL:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown search mode: %s", o.Mode)
	}

	if len(o.Number) == 0 {
		o.Number = []int{10}
	}
	for _, n := range o.Number {
		if n > youtube.MaxResults {
			return errors.New(errors.ErrCodeInvalidConfig,
				"branching factor %d exceeds the API page size of %d", n, youtube.MaxResults)
		}
	}

	if o.Encoding == "" {
		o.Encoding = "utf-8"
	}
	return errors.ValidateEncoding(o.Encoding)
}

// Result is the outcome of one crawl.
type Result struct {
	RunID string        // unique id tying exports of this run together
	Query string        // the resolved query (video id for id and url modes)
	Items []*crawl.Item // every visited video in discovery order
	Stats Stats
}

// Stats collects timing information for logs and the API response.
type Stats struct {
	SeedTime  time.Duration // seed resolution
	CrawlTime time.Duration // breadth-first traversal
	Seeds     int
	Visited   int
}
