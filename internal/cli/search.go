package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytcrawl/ytcrawl/pkg/config"
	"github.com/ytcrawl/ytcrawl/pkg/crawl"
	"github.com/ytcrawl/ytcrawl/pkg/errors"
	"github.com/ytcrawl/ytcrawl/pkg/export"
	"github.com/ytcrawl/ytcrawl/pkg/pipeline"
	"github.com/ytcrawl/ytcrawl/pkg/youtube"
)

// defaultMongoURI is used when --mongo-uri is not given.
const defaultMongoURI = "mongodb://localhost:27017"

// searchOpts holds the command-line flags for the search command.
// Zero values fall back to the persisted configuration.
type searchOpts struct {
	number       []int
	maxDepth     int
	apiKey       string
	outputDir    string
	outputFormat string
	regionCode   string
	langCode     string
	safeSearch   string
	encoding     string
	pick         bool
	noCache      bool
	refresh      bool
	mongoURI     string
}

// searchCommand creates the search command, the main entry point for crawls.
func (c *CLI) searchCommand() *cobra.Command {
	var opts searchOpts

	cmd := &cobra.Command{
		Use:   "search [term|id|url] <query>",
		Short: "Crawl related videos starting from a search term, video id, or watch URL",
		Long: `Crawl YouTube's related-video graph breadth-first.

The first argument selects the seed mode (term, id, or url) and defaults
to term. The crawl expands every video level by level until the depth
limit, taking the per-level branch counts from --number.

Examples:
  ytcrawl search "lofi hip hop"                     # Term search seeds the crawl
  ytcrawl search term "lofi hip hop" -n 10 -n 3 -d 2
  ytcrawl search id dQw4w9WgXcQ                     # Start from one video
  ytcrawl search url "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
  ytcrawl search "lofi hip hop" --pick              # Choose the seed interactively`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, query, err := parseSearchArgs(args)
			if err != nil {
				return err
			}
			return c.runSearch(cmd, mode, query, opts)
		},
	}

	cmd.Flags().IntSliceVarP(&opts.number, "number", "n", nil, "branch counts per depth level (repeatable, e.g. -n 10 -n 3)")
	cmd.Flags().IntVarP(&opts.maxDepth, "max-depth", "d", 0, "depth at which expansion stops")
	cmd.Flags().StringVarP(&opts.apiKey, "api-key", "k", "", "YouTube Data API v3 key")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "export directory (print to stdout if empty)")
	cmd.Flags().StringVarP(&opts.outputFormat, "output-format", "f", "", "export format: csv, json, dot, or mongo")
	cmd.Flags().StringVarP(&opts.regionCode, "region-code", "r", "", "ISO 3166-1 alpha-2 region filter")
	cmd.Flags().StringVarP(&opts.langCode, "lang-code", "l", "", "ISO 639-1 relevance language")
	cmd.Flags().StringVarP(&opts.safeSearch, "safe-search", "s", "", "safe-search level: none, moderate, or strict")
	cmd.Flags().StringVarP(&opts.encoding, "encoding", "e", "", "text encoding: ascii, utf-8, or smart")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "pick the seed video interactively from the search results")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the API response cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached API responses")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB connection string for the mongo format")

	return cmd
}

// parseSearchArgs splits the positional arguments into seed mode and query.
// A single argument is treated as a search term.
func parseSearchArgs(args []string) (pipeline.Mode, string, error) {
	if len(args) == 1 {
		return pipeline.ModeTerm, args[0], nil
	}
	switch mode := pipeline.Mode(args[0]); mode {
	case pipeline.ModeTerm, pipeline.ModeID, pipeline.ModeURL:
		return mode, args[1], nil
	default:
		return "", "", errors.New(errors.ErrCodeInvalidInput,
			"unknown search mode: %s (expected term, id, or url)", args[0])
	}
}

func (c *CLI) runSearch(cmd *cobra.Command, mode pipeline.Mode, query string, opts searchOpts) error {
	ctx := cmd.Context()

	stored, _, err := loadConfig()
	if err != nil {
		return err
	}
	merged := mergeOptions(stored, opts, cmd.Flags().Changed)
	if err := errors.ValidateSafeSearch(merged.SafeSearch); err != nil {
		return err
	}

	client, err := c.newClient(merged.APIKey, opts.noCache, opts.refresh)
	if err != nil {
		return err
	}
	searchOptions := youtube.SearchOptions{
		RegionCode:        merged.RegionCode,
		RelevanceLanguage: merged.LangCode,
		SafeSearch:        merged.SafeSearch,
	}

	// Interactive seed selection replaces the term search with a crawl
	// from the chosen video.
	if opts.pick {
		if mode != pipeline.ModeTerm {
			return errors.New(errors.ErrCodeInvalidInput, "--pick requires a term search")
		}
		seed, err := c.pickSeed(ctx, client, query, searchOptions)
		if err != nil {
			return err
		}
		mode, query = pipeline.ModeID, seed.ID
	}

	runner := pipeline.NewRunner(client, c.Logger)
	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Mode:     mode,
		Query:    query,
		Number:   merged.Number,
		MaxDepth: merged.MaxDepth,
		Search:   searchOptions,
		Encoding: merged.Encoding,
		Logger:   c.Logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Visited %d videos", len(result.Items)))

	return writeResult(ctx, result, merged, opts.mongoURI)
}

// pickSeed searches for candidate videos and shows the interactive picker.
func (c *CLI) pickSeed(ctx context.Context, client *youtube.Client, query string, searchOptions youtube.SearchOptions) (*crawl.Item, error) {
	spinner := newSpinner(ctx, fmt.Sprintf("Searching for %q...", query))
	spinner.Start()
	candidates, err := client.Search(ctx, youtube.MaxResults, query, searchOptions)
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no videos found for %q", query)
	}
	return pickVideo(ctx, candidates)
}

// writeResult dispatches the crawl result to the configured output:
// stdout when no directory is set, otherwise the selected export format.
func writeResult(ctx context.Context, result *pipeline.Result, merged config.Options, mongoURI string) error {
	format := merged.OutputFormat

	if format == "mongo" {
		uri := mongoURI
		if uri == "" {
			uri = defaultMongoURI
		}
		if err := export.ExportMongo(ctx, uri, result.RunID, result.Items); err != nil {
			return err
		}
		printSuccess("Inserted %d videos into MongoDB", len(result.Items))
		printDetail("Run id: %s", result.RunID)
		return nil
	}

	if merged.OutputDir == "" {
		printItems(result.Items)
		printCrawlStats(result.Stats.Visited, result.Stats.Seeds, merged.MaxDepth)
		return nil
	}

	var path string
	var err error
	switch format {
	case "csv", "":
		path = export.Filename(merged.OutputDir, result.Query, "csv")
		err = export.ExportCSV(result.Items, path)
	case "json":
		path = export.Filename(merged.OutputDir, result.Query, "json")
		err = export.ExportJSON(result.Items, path)
	case "dot":
		path = export.Filename(merged.OutputDir, result.Query, "dot")
		err = export.ExportDOT(result.Items, path)
	default:
		return errors.New(errors.ErrCodeInvalidOption, "invalid output format %q", format)
	}
	if err != nil {
		return err
	}
	printSuccess("Exported %d videos", len(result.Items))
	printFile(path)
	return nil
}

// mergeOptions overlays explicitly set flags on the persisted options.
// A flag wins only when it was provided on the command line, so stored
// values keep working as defaults.
func mergeOptions(stored config.Options, o searchOpts, changed func(string) bool) config.Options {
	merged := stored.Clone()
	if changed("number") {
		merged.Number = o.number
	}
	if changed("max-depth") {
		merged.MaxDepth = o.maxDepth
	}
	if changed("api-key") {
		merged.APIKey = o.apiKey
	}
	if changed("output-dir") {
		merged.OutputDir = o.outputDir
	}
	if changed("output-format") {
		merged.OutputFormat = o.outputFormat
	}
	if changed("region-code") {
		merged.RegionCode = o.regionCode
	}
	if changed("lang-code") {
		merged.LangCode = o.langCode
	}
	if changed("safe-search") {
		merged.SafeSearch = o.safeSearch
	}
	if changed("encoding") {
		merged.Encoding = o.encoding
	}
	return merged
}
