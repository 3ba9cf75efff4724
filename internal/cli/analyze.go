package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/pipeline"
	"github.com/matzehuels/techradar/pkg/render"
)

// defaultOutputBase names output files when --output is not given and the
// format cannot go to stdout.
const defaultOutputBase = "radar"

// formatExt maps output formats to file extensions.
var formatExt = map[string]string{
	render.FormatTable: ".txt",
	render.FormatJSON:  ".json",
	render.FormatDOT:   ".dot",
	render.FormatSVG:   ".svg",
}

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	url         string   // remote repository to clone instead of a local path
	output      string   // output file (single format) or base path (multiple)
	formats     []string // output formats: table, json, dot, svg
	save        bool     // persist the radar
	skipHistory bool     // analyze the working tree only
	refresh     bool     // ignore cached results
	noCache     bool     // disable caching entirely
	interactive bool     // browse the radar in a terminal UI
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var formatsStr string
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Build a technology radar for a repository",
		Long: `Analyze reads every dependency manifest of a git working tree, resolves
package identifiers to technologies and walks the history of each manifest
to find technologies that were used before but are gone now.

Analyze a local checkout (default: current directory) or pass --url to
clone a remote repository. Only manifest files are checked out.`,
		Example: `  techradar analyze
  techradar analyze ../my-service --format json -o radar.json
  techradar analyze --url https://github.com/user/repo --format table,svg
  techradar analyze --interactive --skip-history`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := render.ValidateFormats(opts.formats); err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			if path != "" && opts.url != "" {
				return errors.New(errors.ErrCodeInvalidInput, "pass either a path or --url, not both")
			}
			if path == "" && opts.url == "" {
				path = "."
			}
			return c.runAnalyze(cmd.Context(), path, opts)
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", "", "remote repository URL to clone and analyze")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): table (default), json, dot, svg (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.save, "save", false, "save the radar, keeping curated stages of a previous save")
	cmd.Flags().BoolVar(&opts.skipHistory, "skip-history", false, "only analyze the current working tree")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the radar interactively")

	return cmd
}

// runAnalyze executes the pipeline and writes its artifacts.
func (c *CLI) runAnalyze(ctx context.Context, path string, opts analyzeOpts) error {
	ctx = withLogger(ctx, c.Logger)
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close(context.WithoutCancel(ctx))

	// At debug level progress goes to the log; otherwise a spinner shows
	// the latest message.
	var spinner *Spinner
	report := func(format string, args ...any) { logger.Debugf(format, args...) }
	if logger.GetLevel() > log.DebugLevel {
		spinner = newSpinnerWithContext(ctx, "Starting analysis...")
		spinner.Start()
		report = spinner.SetMessage
	}

	res, err := runner.Execute(ctx, pipeline.Options{
		RepoPath:    path,
		RepoURL:     opts.url,
		SkipHistory: opts.skipHistory,
		Refresh:     opts.refresh,
		Formats:     opts.formats,
		Save:        opts.save,
		Progress:    report,
	})
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	prog.done("Tech radar analysis complete")

	if opts.interactive {
		return browse(ctx, res)
	}
	if len(res.Analysis.Manifests) == 0 {
		printWarning("No dependency manifests found")
	}
	if err := writeArtifacts(res, opts.formats, opts.output); err != nil {
		return err
	}
	printRadarStats(len(res.Analysis.Manifests), res.Matrix, res.CacheHit)
	return nil
}

// browse opens the radar browser over the analyzed matrix.
func browse(ctx context.Context, res *pipeline.Result) error {
	_, err := tea.NewProgram(NewRadarModel(res.Matrix), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// writeArtifacts writes one artifact per format. A single text format with
// no --output goes to stdout; everything else goes to files.
func writeArtifacts(res *pipeline.Result, formats []string, output string) error {
	if len(formats) == 1 && output == "" && formats[0] != render.FormatSVG {
		_, err := os.Stdout.Write(res.Artifacts[formats[0]])
		return err
	}
	if len(formats) == 1 && output != "" {
		return writeFile(output, res.Artifacts[formats[0]])
	}
	base := basePath(output)
	for _, f := range formats {
		if err := writeFile(base+formatExt[f], res.Artifacts[f]); err != nil {
			return err
		}
	}
	return nil
}

// basePath strips a known format extension from output, defaulting to
// "radar" in the current directory.
func basePath(output string) string {
	if output == "" {
		return defaultOutputBase
	}
	ext := filepath.Ext(output)
	for _, known := range formatExt {
		if strings.EqualFold(ext, known) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}
