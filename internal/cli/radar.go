package cli

import (
	"context"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/render"
	"github.com/matzehuels/techradar/pkg/store"
)

// radarCommand creates the command group for saved radars.
func (c *CLI) radarCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "radar",
		Short: "Manage saved radars",
		Long: `Manage radars saved with "analyze --save" or through the HTTP API.

Radars are stored in MongoDB when TECHRADAR_MONGO_URI is set and as JSON
files under ~/.config/techradar/radars otherwise. A radar is addressed by
its ID or by the repository URL it was saved for.`,
	}

	cmd.AddCommand(c.radarListCommand())
	cmd.AddCommand(c.radarShowCommand())
	cmd.AddCommand(c.radarDeleteCommand())

	return cmd
}

// radarListCommand creates the "radar list" subcommand.
func (c *CLI) radarListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved radars, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(ctx context.Context, st store.Store) error {
				list, err := st.List(ctx)
				if err != nil {
					return err
				}
				if len(list) == 0 {
					printInfo("No saved radars")
					return nil
				}
				os.Stdout.WriteString(summaryTable(list) + "\n")
				return nil
			})
		},
	}
}

// radarShowCommand creates the "radar show" subcommand.
func (c *CLI) radarShowCommand() *cobra.Command {
	var format string
	var interactive bool
	cmd := &cobra.Command{
		Use:   "show <id|url>",
		Short: "Render a saved radar",
		Args:  cobra.ExactArgs(1),

		ValidArgsFunction: c.completeRadarIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := render.ValidateFormat(format); err != nil {
				return err
			}
			return c.withStore(cmd.Context(), func(ctx context.Context, st store.Store) error {
				rec, err := loadRecord(ctx, st, args[0])
				if err != nil {
					return err
				}
				if interactive {
					_, err := tea.NewProgram(NewRadarModel(rec.Matrix), tea.WithContext(ctx), tea.WithAltScreen()).Run()
					return err
				}
				data, err := render.Render(ctx, rec.Matrix, format)
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(data)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", render.FormatTable, "output format: table, json, dot, svg")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the radar interactively")
	return cmd
}

// radarDeleteCommand creates the "radar delete" subcommand.
func (c *CLI) radarDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id|url>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved radar",
		Args:    cobra.ExactArgs(1),

		ValidArgsFunction: c.completeRadarIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(ctx context.Context, st store.Store) error {
				id := radarID(args[0])
				if err := st.Delete(ctx, id); err != nil {
					return err
				}
				printSuccess("Deleted radar %s", id)
				return nil
			})
		},
	}
}

// withStore opens the configured store for the duration of fn.
func (c *CLI) withStore(ctx context.Context, fn func(context.Context, store.Store) error) error {
	st, err := c.Config.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close(context.WithoutCancel(ctx))
	return fn(ctx, st)
}

// radarID accepts either a record ID or a repository URL.
func radarID(arg string) string {
	if strings.ContainsAny(arg, "/:.") {
		return store.RepoDocID(arg)
	}
	return arg
}

// loadRecord loads the radar for arg, failing with NOT_FOUND on a miss.
func loadRecord(ctx context.Context, st store.Store, arg string) (*store.Record, error) {
	id := radarID(arg)
	rec, err := st.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "no saved radar %s", id)
	}
	return rec, nil
}

// summaryTable renders saved radar summaries.
func summaryTable(list []store.Summary) string {
	rows := make([][]string, len(list))
	for i, s := range list {
		rows[i] = []string{s.ID, s.RepoURL, formatRelativeTime(s.SavedAt)}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Repository", "Saved").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
