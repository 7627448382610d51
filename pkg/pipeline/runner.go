package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ytcrawl/ytcrawl/pkg/crawl"
	"github.com/ytcrawl/ytcrawl/pkg/errors"
	"github.com/ytcrawl/ytcrawl/pkg/export"
	"github.com/ytcrawl/ytcrawl/pkg/youtube"
)

// VideoSource is the API surface the runner needs. [youtube.Client]
// satisfies it; tests substitute a fake.
type VideoSource interface {
	Search(ctx context.Context, n int64, query string, opts youtube.SearchOptions) ([]*crawl.Item, error)
	VideoByID(ctx context.Context, id string) ([]*crawl.Item, error)
	Related(ctx context.Context, n int64, id string, opts youtube.SearchOptions) ([]*crawl.Item, error)
}

// Runner executes crawls against a video source.
//
// The Runner is stateless except for the source and logger - it doesn't
// store crawl results. Multiple goroutines can safely share one Runner
// with different options.
type Runner struct {
	Source VideoSource
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, the default logger is used.
func NewRunner(src VideoSource, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Source: src, Logger: logger}
}

// Execute runs the complete seed → crawl → normalize pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	cfg, err := crawl.NormalizeConfig(opts.MaxDepth, opts.Number)
	if err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString()}

	// Stage 1: Seeds
	seedStart := time.Now()
	seeds, query, err := r.resolveSeeds(ctx, opts, cfg)
	if err != nil {
		return nil, err
	}
	result.Query = query
	result.Stats.SeedTime = time.Since(seedStart)
	result.Stats.Seeds = len(seeds)

	logger.Info("resolved seeds",
		"mode", opts.Mode,
		"seeds", len(seeds),
		"duration", result.Stats.SeedTime)

	// Stage 2: Crawl
	crawlStart := time.Now()
	fetch := crawl.FetchRelatedFunc(func(ctx context.Context, videoID string, n int64) ([]*crawl.Item, error) {
		return r.Source.Related(ctx, n, videoID, opts.Search)
	})
	items, err := crawl.Traverse(ctx, seeds, cfg, fetch)
	if err != nil {
		return nil, err
	}
	result.Stats.CrawlTime = time.Since(crawlStart)
	result.Stats.Visited = len(items)

	logger.Info("crawl complete",
		"visited", len(items),
		"max_depth", cfg.MaxDepth,
		"duration", result.Stats.CrawlTime)

	// Stage 3: Normalize text fields for the requested encoding.
	normalize, err := export.Normalizer(opts.Encoding)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		it.EachString(normalize)
	}

	result.Items = items
	return result, nil
}

// resolveSeeds produces the depth-0 items for the configured mode and
// returns them together with the resolved query string.
func (r *Runner) resolveSeeds(ctx context.Context, opts Options, cfg crawl.Config) ([]*crawl.Item, string, error) {
	switch opts.Mode {
	case ModeTerm:
		if err := errors.ValidateQuery(opts.Query); err != nil {
			return nil, "", err
		}
		n := int64(cfg.BranchCounts[0])
		seeds, err := r.Source.Search(ctx, n, opts.Query, opts.Search)
		if err != nil {
			return nil, "", err
		}
		if len(seeds) == 0 {
			return nil, "", errors.New(errors.ErrCodeNotFound, "no videos found for %q", opts.Query)
		}
		rankSeeds(seeds)
		return seeds, opts.Query, nil

	case ModeID:
		if err := errors.ValidateVideoID(opts.Query); err != nil {
			return nil, "", err
		}
		return r.seedByID(ctx, opts.Query)

	case ModeURL:
		id, err := errors.ValidateWatchURL(opts.Query)
		if err != nil {
			return nil, "", err
		}
		return r.seedByID(ctx, id)
	}
	return nil, "", errors.New(errors.ErrCodeInvalidInput, "unknown search mode: %s", opts.Mode)
}

func (r *Runner) seedByID(ctx context.Context, id string) ([]*crawl.Item, string, error) {
	seeds, err := r.Source.VideoByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	rankSeeds(seeds)
	return seeds, id, nil
}

// rankSeeds assigns zero-based ranks in result order, the same convention
// the engine uses for children. Depth stays zero.
func rankSeeds(seeds []*crawl.Item) {
	for i, s := range seeds {
		s.Rank = i
		s.Depth = 0
	}
}
