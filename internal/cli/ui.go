package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ytcrawl/ytcrawl/pkg/crawl"
)

// uiOut is where the styled print helpers write. Tests swap it for a buffer.
var uiOut io.Writer = os.Stdout

// Color palette
var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleRank    = lipgloss.NewStyle().Foreground(colorCyan)
	styleChannel = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(uiOut, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(uiOut, styleIconError.Render(iconError)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(uiOut, styleIconWarning.Render(iconWarning)+" "+msg)
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(uiOut, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fmt.Fprintln(uiOut, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printItems renders the crawl result as a depth-indented tree in
// discovery order. Each line shows the 1-based sibling position, title,
// and channel; ranks themselves stay zero-based in exports.
func printItems(items []*crawl.Item) {
	for _, it := range items {
		indent := strings.Repeat("  ", it.Depth)
		title := it.Title
		if title == "" {
			title = it.ID
		}
		line := indent + styleRank.Render(fmt.Sprintf("%d.", it.Rank+1)) + " " + title
		if it.ChannelTitle != "" {
			line += " " + styleChannel.Render("("+it.ChannelTitle+")")
		}
		fmt.Fprintln(uiOut, line)
	}
}

// printCrawlStats prints crawl statistics on a single line.
func printCrawlStats(visited, seeds, maxDepth int) {
	parts := []string{
		fmt.Sprintf("%d videos", visited),
		fmt.Sprintf("%d seeds", seeds),
		fmt.Sprintf("depth %d", maxDepth),
	}
	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Fprintln(uiOut, line)
}
