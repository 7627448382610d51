// Package crawl implements the breadth-first traversal over the related-video
// relation.
//
// The traversal starts from one or more seed items and explores the graph
// level by level, bounded by a maximum depth and a per-level branching
// schedule. The output is a flat, rank- and depth-annotated record of every
// item visited, in exact BFS visitation order.
//
// The package does not talk to the network itself: expansion goes through the
// [RelatedFetcher] interface, so the engine can be driven by the YouTube API
// client or by a fake in tests.
package crawl

import (
	"context"
)

// Item is one crawled video. Items are constructed from API responses,
// mutated exactly once to attach rank, depth, and related ids, and are
// terminal once appended to the traversal output.
//
// The same video may appear more than once in a traversal when it is
// reachable through different branches; ids are not deduplicated.
type Item struct {
	ID           string   `json:"videoId"`
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description,omitempty"`
	ChannelID    string   `json:"channelId,omitempty"`
	ChannelTitle string   `json:"channelTitle,omitempty"`
	PublishedAt  string   `json:"publishedAt,omitempty"`
	Thumbnail    string   `json:"thumbnail,omitempty"`
	Rank         int      `json:"rank"`
	Depth        int      `json:"depth"`
	RelatedIDs   []string `json:"relatedVideos"`
}

// EachString applies f to every string field taken from the API snippet.
// Used by the post-traversal text normalization pass. Identifiers and
// related ids are left alone so references stay intact.
func (it *Item) EachString(f func(string) string) {
	it.Title = f(it.Title)
	it.Description = f(it.Description)
	it.ChannelTitle = f(it.ChannelTitle)
	it.PublishedAt = f(it.PublishedAt)
	it.Thumbnail = f(it.Thumbnail)
}

// Config is a validated traversal configuration.
// Use [NormalizeConfig] to produce one from raw option values.
type Config struct {
	// MaxDepth is the depth at which expansion stops. Items at MaxDepth are
	// still recorded but never expanded. Seeds are depth 0.
	MaxDepth int

	// BranchCounts is the per-level branching schedule, indexed by depth.
	// Depths beyond the last index reuse the final entry.
	BranchCounts []int
}

// RelatedFetcher retrieves the videos related to a given video.
// Implementations return at most n items, in an order that is significant:
// a child's position in the returned slice becomes its rank.
type RelatedFetcher interface {
	// FetchRelated returns up to n items related to the video with the given
	// id. A failure aborts the traversal; the engine never retries.
	FetchRelated(ctx context.Context, videoID string, n int64) ([]*Item, error)
}

// FetchRelatedFunc adapts a function to the RelatedFetcher interface.
type FetchRelatedFunc func(ctx context.Context, videoID string, n int64) ([]*Item, error)

// FetchRelated calls f.
func (f FetchRelatedFunc) FetchRelated(ctx context.Context, videoID string, n int64) ([]*Item, error) {
	return f(ctx, videoID, n)
}
