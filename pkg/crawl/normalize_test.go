package crawl

import (
	"slices"
	"testing"

	"github.com/ytcrawl/ytcrawl/pkg/errors"
)

func TestNormalizeConfig(t *testing.T) {
	tests := []struct {
		name     string
		maxDepth int
		counts   []int
		wantErr  bool
	}{
		{"scalar schedule", 2, []int{5}, false},
		{"full schedule", 3, []int{10, 3, 1}, false},
		{"zero depth is valid", 0, []int{1}, false},
		{"negative depth", -1, []int{5}, true},
		{"empty schedule", 2, nil, true},
		{"zero branching factor", 2, []int{10, 0}, true},
		{"negative branching factor", 2, []int{-4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NormalizeConfig(tt.maxDepth, tt.counts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, errors.ErrCodeInvalidConfig) {
					t.Errorf("expected INVALID_CONFIG, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeConfig: %v", err)
			}
			if cfg.MaxDepth != tt.maxDepth {
				t.Errorf("MaxDepth = %d, want %d", cfg.MaxDepth, tt.maxDepth)
			}
			if !slices.Equal(cfg.BranchCounts, tt.counts) {
				t.Errorf("BranchCounts = %v, want %v", cfg.BranchCounts, tt.counts)
			}
		})
	}
}

func TestNormalizeConfigCopiesSchedule(t *testing.T) {
	counts := []int{10, 3}
	cfg, err := NormalizeConfig(2, counts)
	if err != nil {
		t.Fatalf("NormalizeConfig: %v", err)
	}

	counts[0] = 99
	if cfg.BranchCounts[0] != 10 {
		t.Error("normalized config aliases the caller's slice")
	}
}

func TestNormalizeConfigIdempotent(t *testing.T) {
	first, err := NormalizeConfig(2, []int{10, 3})
	if err != nil {
		t.Fatalf("NormalizeConfig: %v", err)
	}
	second, err := NormalizeConfig(first.MaxDepth, first.BranchCounts)
	if err != nil {
		t.Fatalf("NormalizeConfig (second pass): %v", err)
	}
	if second.MaxDepth != first.MaxDepth || !slices.Equal(second.BranchCounts, first.BranchCounts) {
		t.Errorf("normalization not idempotent: %+v != %+v", second, first)
	}
}
