// Package cli implements the ytcrawl command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ytcrawl/ytcrawl/pkg/buildinfo"
	"github.com/ytcrawl/ytcrawl/pkg/cache"
	"github.com/ytcrawl/ytcrawl/pkg/config"
	"github.com/ytcrawl/ytcrawl/pkg/errors"
	"github.com/ytcrawl/ytcrawl/pkg/youtube"
)

// appName is the application name used for directories and display.
const appName = "ytcrawl"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "ytcrawl",
		Short:        "Ytcrawl maps YouTube's related-video graph",
		Long:         `Ytcrawl crawls YouTube's "related videos" relation breadth-first from a search term, video id, or watch URL, and exports the visited videos as CSV, JSON, DOT, or MongoDB documents.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.searchCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// PrintError reports a failed command in the styled form. Cobra's own
// error output is silenced in favor of this; main calls it once per run.
func (c *CLI) PrintError(err error) {
	printError("%s", errors.UserMessage(err))
	if code := errors.GetCode(err); code != "" {
		printDetail("%s", code)
	}
}

// newClient creates the authenticated API client used by crawls.
func (c *CLI) newClient(apiKey string, noCache, refresh bool) (*youtube.Client, error) {
	return youtube.NewClient(youtube.Config{
		APIKey:  apiKey,
		Cache:   c.newCache(noCache),
		Refresh: refresh,
	})
}

// newCache picks the cache backend: Redis when YTCRAWL_REDIS_URL is set
// (shared cache for serve deployments), otherwise the local file cache.
// Backend failures degrade to no caching rather than failing the command.
func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	if url := os.Getenv("YTCRAWL_REDIS_URL"); url != "" {
		rc, err := cache.NewRedisCache(context.Background(), url)
		if err == nil {
			return rc
		}
		c.Logger.Warnf("Redis cache unavailable, falling back to file cache: %v", err)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using XDG standard (~/.cache/ytcrawl/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// loadConfig loads the persisted options from the default location.
func loadConfig() (config.Options, string, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return config.Defaults(), "", err
	}
	opts, err := config.Load(path)
	return opts, path, err
}
