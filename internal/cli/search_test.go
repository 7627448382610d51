package cli

import (
	"slices"
	"testing"

	"github.com/ytcrawl/ytcrawl/pkg/config"
	"github.com/ytcrawl/ytcrawl/pkg/errors"
	"github.com/ytcrawl/ytcrawl/pkg/pipeline"
)

func TestParseSearchArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantMode pipeline.Mode
		wantQ    string
		wantErr  bool
	}{
		{"bare term", []string{"funny cats"}, pipeline.ModeTerm, "funny cats", false},
		{"explicit term", []string{"term", "funny cats"}, pipeline.ModeTerm, "funny cats", false},
		{"id mode", []string{"id", "dQw4w9WgXcQ"}, pipeline.ModeID, "dQw4w9WgXcQ", false},
		{"url mode", []string{"url", "https://youtube.com/watch?v=dQw4w9WgXcQ"}, pipeline.ModeURL, "https://youtube.com/watch?v=dQw4w9WgXcQ", false},
		{"unknown mode", []string{"playlist", "x"}, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, query, err := parseSearchArgs(tt.args)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("expected INVALID_INPUT, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSearchArgs: %v", err)
			}
			if mode != tt.wantMode || query != tt.wantQ {
				t.Errorf("got (%s, %q), want (%s, %q)", mode, query, tt.wantMode, tt.wantQ)
			}
		})
	}
}

func TestMergeOptions(t *testing.T) {
	stored := config.Defaults()
	stored.Number = []int{5, 2}
	stored.APIKey = "stored-key"
	stored.RegionCode = "DE"

	opts := searchOpts{
		number:   []int{20},
		maxDepth: 4,
		apiKey:   "", // explicitly cleared
	}
	changedFlags := map[string]bool{"number": true, "max-depth": true, "api-key": true}
	changed := func(name string) bool { return changedFlags[name] }

	merged := mergeOptions(stored, opts, changed)

	if !slices.Equal(merged.Number, []int{20}) {
		t.Errorf("Number = %v, want [20]", merged.Number)
	}
	if merged.MaxDepth != 4 {
		t.Errorf("MaxDepth = %d, want 4", merged.MaxDepth)
	}
	if merged.APIKey != "" {
		t.Errorf("APIKey = %q, explicit flag should win even when empty", merged.APIKey)
	}
	if merged.RegionCode != "DE" {
		t.Errorf("RegionCode = %q, untouched value should persist", merged.RegionCode)
	}
	if !slices.Equal(stored.Number, []int{5, 2}) {
		t.Errorf("stored options mutated: %v", stored.Number)
	}
}

func TestMergeOptionsNoFlags(t *testing.T) {
	stored := config.Defaults()
	merged := mergeOptions(stored, searchOpts{maxDepth: 9}, func(string) bool { return false })
	if merged.MaxDepth != stored.MaxDepth {
		t.Errorf("MaxDepth = %d, unchanged flags must not override", merged.MaxDepth)
	}
}
