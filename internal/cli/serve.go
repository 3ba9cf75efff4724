package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/techradar/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var allowLocal bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the radar API",
		Long: `Serve runs the HTTP API:

  GET    /api/analyze?repoUrl=...   analysis progress as server-sent events
  GET    /api/radars                saved radars, most recent first
  GET    /api/radars/{id}           one saved radar
  PUT    /api/radars/{id}           save an edited radar
  DELETE /api/radars/{id}           delete a saved radar
  GET    /api/ecosystems            supported ecosystems
  GET    /healthz                   liveness

The listen address defaults to TECHRADAR_ADDR. Local paths (path=...) and
file:// URLs are only analyzed with --allow-local.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, allowLocal)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.Config.Addr, "listen address")
	cmd.Flags().BoolVar(&allowLocal, "allow-local", false, "allow analyzing paths on the server's file system")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, allowLocal bool) error {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close(context.WithoutCancel(ctx))

	srv := server.New(runner, server.Options{
		Addr:       addr,
		AllowLocal: allowLocal,
		Logger:     c.Logger,
	})
	printInfo("Listening on %s", StyleLink.Render("http://"+displayAddr(addr)))
	err = srv.ListenAndServe(ctx)
	if errors.Is(err, context.Canceled) {
		printSuccess("Server stopped")
		return nil
	}
	return err
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
