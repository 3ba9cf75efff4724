package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/techradar/pkg/radar"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listRemovedStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// RadarModel - Interactive radar browser
// =============================================================================

// RadarModel is the bubbletea model for browsing a radar stage by stage.
type RadarModel struct {
	Matrix  radar.Matrix
	Stage   int  // Index into radar.Stages
	Cursor  int  // Selected item within the stage
	Offset  int  // First visible row
	Height  int  // Visible rows
	Details bool // Show the packages of the selected item
}

// NewRadarModel creates a browser that opens on the first non-empty stage.
func NewRadarModel(m radar.Matrix) RadarModel {
	model := RadarModel{Matrix: m, Height: 15, Stage: -1}
	for i, s := range radar.Stages {
		if len(m.Stage(s)) > 0 {
			model.Stage = i
			break
		}
	}
	if model.Stage < 0 {
		model.Stage = 0
	}
	return model
}

func (m RadarModel) items() []radar.TechnologyItem {
	return m.Matrix.Stage(radar.Stages[m.Stage])
}

// Selected returns the item under the cursor, or nil for an empty stage.
func (m RadarModel) Selected() *radar.TechnologyItem {
	items := m.items()
	if m.Cursor < 0 || m.Cursor >= len(items) {
		return nil
	}
	return &items[m.Cursor]
}

func (m RadarModel) Init() tea.Cmd {
	return nil
}

func (m RadarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "shift+tab":
			m = m.switchStage(-1)
		case "right", "l", "tab":
			m = m.switchStage(1)
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.items())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.Details = !m.Details
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// switchStage moves by delta stages, wrapping around, and resets the cursor.
func (m RadarModel) switchStage(delta int) RadarModel {
	n := len(radar.Stages)
	m.Stage = ((m.Stage+delta)%n + n) % n
	m.Cursor, m.Offset = 0, 0
	return m
}

func (m RadarModel) View() string {
	var b strings.Builder

	title := "Tech Radar"
	if m.Matrix.Branch != "" {
		title += " · " + m.Matrix.Branch
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ stage  ↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")
	b.WriteString(m.tabs())
	b.WriteString("\n\n")

	items := m.items()
	if len(items) == 0 {
		b.WriteString(listDimStyle.Render("  No technologies in this stage."))
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(items) {
		end = len(items)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		it := items[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		packages := fmt.Sprintf("%d", len(it.Dependencies))
		if n := len(it.RemovedDependencies); n > 0 {
			packages += fmt.Sprintf(" (-%d)", n)
		}
		rows = append(rows, []string{cursor, it.Name, it.Category, packages})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Technology", "Category", "Packages").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(items) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 2 || col == 3 {
				base = base.Foreground(colorDim)
			}
			if idx == m.Cursor {
				if col == 1 {
					return listSelectedStyle
				}
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(items))))

	if sel := m.Selected(); m.Details && sel != nil {
		b.WriteString("\n\n")
		b.WriteString(itemDetails(*sel))
	}
	return b.String()
}

// tabs renders the stage names with their item counts.
func (m RadarModel) tabs() string {
	parts := make([]string, len(radar.Stages))
	for i, s := range radar.Stages {
		label := fmt.Sprintf("%s (%d)", strings.ToUpper(string(s)), len(m.Matrix.Stage(s)))
		if i == m.Stage {
			parts[i] = listSelectedStyle.Render("[" + label + "]")
		} else {
			parts[i] = listNormalStyle.Render(" " + label + " ")
		}
	}
	return strings.Join(parts, " ")
}

// itemDetails lists the packages behind an item.
func itemDetails(it radar.TechnologyItem) string {
	var b strings.Builder
	b.WriteString(StyleHighlight.Render(it.Name))
	b.WriteString(listDimStyle.Render("  " + it.Category))
	for _, d := range it.Dependencies {
		b.WriteString("\n  " + listNormalStyle.Render(d))
	}
	for _, d := range it.RemovedDependencies {
		b.WriteString("\n  " + listRemovedStyle.Render("- "+d))
	}
	return b.String()
}

// formatRelativeTime formats t relative to now (e.g. "5m ago").
func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
