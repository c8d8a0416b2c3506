package cli

import (
	"context"
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/matzehuels/warehousemap/internal/server"
)

// serveCommand creates the serve command. The root command runs the same
// action when no subcommand is given.
func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runServe(cmd.Context())
		},
	}
	c.addServeFlags(cmd.Flags())
	return cmd
}

func (c *CLI) runServe(ctx context.Context) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}

	cfg := server.Config{Host: c.opts.host, Port: c.opts.port, Debug: c.opts.debug}
	srv, err := server.New(ctx, runner, c.Logger, cfg)
	if err != nil {
		return err
	}

	printSuccess(c.Out, "%s", StyleTitle.Render(runner.Options.Title))
	printURL(c.Out, "Dashboard", dashboardURL(cfg))
	printURL(c.Out, "Metrics  ", dashboardURL(cfg)+"metrics")
	return srv.ListenAndServe(ctx)
}

// dashboardURL returns the browser URL for cfg. Wildcard hosts map to
// localhost.
func dashboardURL(cfg server.Config) string {
	host := cfg.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = server.DefaultPort
	}
	return fmt.Sprintf("http://%s/", net.JoinHostPort(host, fmt.Sprint(port)))
}
