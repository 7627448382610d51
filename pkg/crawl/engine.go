package crawl

import (
	"context"

	"github.com/ytcrawl/ytcrawl/pkg/errors"
)

// Traverse walks the related-video graph breadth-first from seeds and
// returns every visited item in strict BFS visitation order.
//
// Seeds must already carry their rank (position among the seeds) and depth 0.
// For each dequeued item below MaxDepth the engine makes exactly one
// FetchRelated call, requesting the branching factor for that depth, assigns
// each child its rank (index in the response) and depth, mirrors the child
// ids into the parent's RelatedIDs, and enqueues the children in response
// order. Items at MaxDepth are recorded with an empty RelatedIDs and never
// expanded.
//
// A fetch failure is not caught: it propagates and aborts the traversal,
// discarding the output built so far. The engine owns the queue and the
// output exclusively for the duration of one call; execution is strictly
// sequential.
func Traverse(ctx context.Context, seeds []*Item, cfg Config, fetch RelatedFetcher) ([]*Item, error) {
	if len(seeds) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no seed videos to crawl")
	}
	if len(cfg.BranchCounts) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "branching schedule cannot be empty")
	}

	queue := make([]*Item, len(seeds))
	copy(queue, seeds)

	var out []*Item
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		out = append(out, v)

		if v.Depth >= cfg.MaxDepth {
			v.RelatedIDs = []string{}
			continue
		}

		n := branchAt(cfg.BranchCounts, v.Depth)
		children, err := fetch.FetchRelated(ctx, v.ID, int64(n))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeAPI, err, "related search for %s at depth %d", v.ID, v.Depth)
		}

		v.RelatedIDs = make([]string, len(children))
		for rank, child := range children {
			child.Rank = rank
			child.Depth = v.Depth + 1
			v.RelatedIDs[rank] = child.ID
		}
		queue = append(queue, children...)
	}
	return out, nil
}
