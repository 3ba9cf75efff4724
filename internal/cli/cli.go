package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/techradar/pkg/buildinfo"
	"github.com/matzehuels/techradar/pkg/deps/languages"
	"github.com/matzehuels/techradar/pkg/pipeline"
	"github.com/matzehuels/techradar/pkg/radar"
	"github.com/matzehuels/techradar/pkg/techmap"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories, key prefixes and display.
const appName = "techradar"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	mappingsDir string
}

// New creates a new CLI instance with a default logger. The configuration
// is read from the environment.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: ConfigFromEnv(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Techradar builds a technology radar from a repository's dependency history",
		Long: `Techradar reads the dependency manifests of a git repository, maps package
identifiers to technologies and compares the current state with every
historical revision, sorting technologies into adopted and removed.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.mappingsDir, "mappings", "", "directory with technology mapping tables (default: built-in)")

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.radarCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.ecosystemsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// mappings loads the technology tables from --mappings or the embedded set.
func (c *CLI) mappings() (*techmap.Config, error) {
	if c.mappingsDir != "" {
		c.Logger.Debug("loading mapping tables", "dir", c.mappingsDir)
		return techmap.LoadDir(c.mappingsDir)
	}
	return techmap.Default()
}

// newAnalyzer creates an analyzer over all supported ecosystems.
func (c *CLI) newAnalyzer() (*radar.Analyzer, error) {
	cfg, err := c.mappings()
	if err != nil {
		return nil, err
	}
	return radar.New(cfg, languages.Registry(), radar.Options{Logger: c.Logger.Debugf}), nil
}

// newRunner creates a pipeline runner with the configured cache and store.
// The caller must Close it.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	a, err := c.newAnalyzer()
	if err != nil {
		return nil, err
	}
	ch, err := c.Config.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	st, err := c.Config.openStore(ctx)
	if err != nil {
		ch.Close()
		return nil, err
	}
	return pipeline.NewRunner(a, ch, st, c.Logger), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
