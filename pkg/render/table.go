package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/techradar/pkg/radar"
)

var (
	colorCyan = lipgloss.Color("36")
	colorRed  = lipgloss.Color("167")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")

	styleStage   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	styleCell    = lipgloss.NewStyle().Padding(0, 1)
	styleRemoved = lipgloss.NewStyle().Foreground(colorRed).Padding(0, 1)
	styleEmpty   = lipgloss.NewStyle().Foreground(colorDim)
)

// Table renders one table per non-empty stage.
func Table(m radar.Matrix) string {
	var sb strings.Builder
	for _, stage := range radar.Stages {
		items := m.Stage(stage)
		if len(items) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s (%d)\n", styleStage.Render(strings.ToUpper(string(stage))), len(items))
		sb.WriteString(stageTable(items))
		sb.WriteString("\n")
	}
	if sb.Len() == 0 {
		return styleEmpty.Render("No technologies found.") + "\n"
	}
	if m.Branch != "" {
		sb.WriteString("\n" + styleEmpty.Render("branch: "+m.Branch) + "\n")
	}
	return sb.String()
}

func stageTable(items []radar.TechnologyItem) string {
	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = []string{it.Category, it.Name, strings.Join(it.Dependencies, ", "), strings.Join(it.RemovedDependencies, ", ")}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Category", "Technology", "Packages", "Removed").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 3:
				return styleRemoved
			}
			return styleCell
		}).
		String()
}
