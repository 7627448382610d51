package cli

import (
	"slices"
	"testing"

	"github.com/spf13/cobra"
)

func TestCompleteOptionNames(t *testing.T) {
	comps, directive := completeOptionNames(nil, nil, "")

	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("directive = %v", directive)
	}
	for _, want := range []string{"number\tint list", "max_depth\tint", "api_key\tstring"} {
		if !slices.Contains(comps, want) {
			t.Errorf("completions missing %q: %v", want, comps)
		}
	}

	// A filled first argument means nothing left to complete.
	comps, _ = completeOptionNames(nil, []string{"number"}, "")
	if comps != nil {
		t.Errorf("completions after an argument = %v", comps)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{[]int{10, 3}, "10,3"},
		{2, "2"},
		{"csv", "csv"},
	}
	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
