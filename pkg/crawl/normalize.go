package crawl

import (
	"slices"

	"github.com/ytcrawl/ytcrawl/pkg/errors"
)

// NormalizeConfig turns raw option values into a validated [Config].
//
// A scalar branch count (the single -n flag or the config file default)
// arrives as a one-element slice; a full schedule arrives as-is. Either way
// the result is a fresh value: the caller's slice is copied, never aliased,
// so later mutation of the input cannot surprise the engine.
//
// Normalizing an already-normalized config yields an identical structure.
func NormalizeConfig(maxDepth int, branchCounts []int) (Config, error) {
	if maxDepth < 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "max depth cannot be negative (got %d)", maxDepth)
	}
	if len(branchCounts) == 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "branching schedule cannot be empty")
	}
	for i, n := range branchCounts {
		if n <= 0 {
			return Config{}, errors.New(errors.ErrCodeInvalidConfig, "branching factor at level %d must be positive (got %d)", i, n)
		}
	}

	return Config{
		MaxDepth:     maxDepth,
		BranchCounts: slices.Clone(branchCounts),
	}, nil
}
