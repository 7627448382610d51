package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ytcrawl/ytcrawl/pkg/crawl"
	"github.com/ytcrawl/ytcrawl/pkg/errors"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// VideoListModel is the bubbletea model for interactive seed selection.
// It shows the search results and lets the user pick the video the crawl
// starts from.
type VideoListModel struct {
	Videos   []*crawl.Item
	Cursor   int
	Selected *crawl.Item
}

// NewVideoListModel creates a new video list model.
func NewVideoListModel(videos []*crawl.Item) VideoListModel {
	return VideoListModel{Videos: videos}
}

func (m VideoListModel) Init() tea.Cmd {
	return nil
}

func (m VideoListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Videos)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Videos[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m VideoListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Seed Video"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, v := range m.Videos {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		title := v.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		line := fmt.Sprintf("%s%-62s %s", cursor, title, listDimStyle.Render(v.ChannelTitle))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Videos))))

	return b.String()
}

// pickVideo shows the interactive list and returns the chosen video.
// Quitting without a selection is treated as a cancelled run.
func pickVideo(ctx context.Context, videos []*crawl.Item) (*crawl.Item, error) {
	model, err := tea.NewProgram(NewVideoListModel(videos), tea.WithContext(ctx)).Run()
	if err != nil {
		return nil, err
	}
	final, ok := model.(VideoListModel)
	if !ok || final.Selected == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no video selected")
	}
	return final.Selected, nil
}
