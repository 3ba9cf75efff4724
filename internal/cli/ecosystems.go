package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/techradar/pkg/deps"
	"github.com/matzehuels/techradar/pkg/deps/languages"
	"github.com/matzehuels/techradar/pkg/techmap"
)

// ecosystemsCommand creates the ecosystems command.
func (c *CLI) ecosystemsCommand() *cobra.Command {
	var sparse bool
	cmd := &cobra.Command{
		Use:   "ecosystems",
		Short: "List supported ecosystems and their manifest files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sparse {
				for _, p := range languages.Registry().SparsePatterns() {
					fmt.Println(p)
				}
				return nil
			}
			cfg, err := c.mappings()
			if err != nil {
				return err
			}
			os.Stdout.WriteString(ecosystemTable(languages.All, cfg) + "\n")
			return nil
		},
	}
	cmd.Flags().BoolVar(&sparse, "sparse-patterns", false, "print the sparse-checkout patterns used for clones")
	return cmd
}

// ecosystemTable renders one row per language with its manifest files and
// the size of its mapping table.
func ecosystemTable(langs []*deps.Language, cfg *techmap.Config) string {
	rows := make([][]string, 0, len(langs))
	for _, l := range langs {
		var files []string
		for _, p := range l.Manifests() {
			files = append(files, p.Patterns()...)
		}
		techs := "0"
		if t := cfg.Table(l.Name); t != nil {
			techs = fmt.Sprintf("%d", t.Len())
		}
		rows = append(rows, []string{l.Name, l.Title, strings.Join(files, ", "), techs})
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Ecosystem", "Language", "Manifests", "Technologies").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleHighlight
			case col == 3:
				return StyleNumber
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
