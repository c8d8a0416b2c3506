// Package cli implements the warehousemap command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/warehousemap/internal/server"
	"github.com/matzehuels/warehousemap/pkg/buildinfo"
	"github.com/matzehuels/warehousemap/pkg/dataset"
	"github.com/matzehuels/warehousemap/pkg/layout"
	"github.com/matzehuels/warehousemap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "warehousemap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Flag names shared between the flag set and config file merging.
const (
	flagConfig       = "config"
	flagSystems      = "systems"
	flagSystemFlows  = "system-flows"
	flagTableFlows   = "table-flows"
	flagSystemImages = "system-images"
	flagTitle        = "title"
	flagLayout       = "layout"
	flagSeed         = "seed"
	flagStrict       = "strict"
	flagHost         = "host"
	flagPort         = "port"
	flagDebug        = "debug"
	flagVerbose      = "verbose"
)

const defaultHost = "127.0.0.1"

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer // command output; status lines and data go here

	opts options
}

// options collects the flags shared by all commands.
type options struct {
	configPath string
	paths      dataset.Paths
	title      string
	layout     string
	seed       uint64
	strict     bool
	host       string
	port       int
	debug      bool
	verbose    bool
}

func defaultOptions() options {
	return options{
		paths: dataset.Paths{
			Systems:     dataset.DefaultSystemsPath,
			SystemFlows: dataset.DefaultSystemFlowsPath,
			TableFlows:  dataset.DefaultTableFlowsPath,
		},
		title:  pipeline.DefaultTitle,
		layout: pipeline.DefaultLayout,
		host:   defaultHost,
		port:   server.DefaultPort,
		debug:  true,
	}
}

// New creates a new CLI instance that logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		opts:   defaultOptions(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered. Without a subcommand it serves the dashboard.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "warehousemap visualizes data flows between warehouse systems",
		Long: `warehousemap reads a systems table, a system flow table and a table flow
table, and serves an interactive dashboard with a system-level network graph
and a per-system table-level drill-down.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c.opts.verbose {
				c.SetLogLevel(LogDebug)
			}
			return c.resolve(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runServe(cmd.Context())
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.opts.configPath, flagConfig, "", "TOML or YAML file with default settings")
	pf.StringVar(&c.opts.paths.Systems, flagSystems, c.opts.paths.Systems, "systems table")
	pf.StringVar(&c.opts.paths.SystemFlows, flagSystemFlows, c.opts.paths.SystemFlows, "system flows table")
	pf.StringVar(&c.opts.paths.TableFlows, flagTableFlows, c.opts.paths.TableFlows, "table flows table")
	pf.StringVar(&c.opts.paths.SystemImages, flagSystemImages, "", "system image mapping table (optional)")
	pf.StringVar(&c.opts.title, flagTitle, c.opts.title, "dashboard title")
	pf.StringVar(&c.opts.layout, flagLayout, c.opts.layout, "layout engine: spring, circular")
	pf.Uint64Var(&c.opts.seed, flagSeed, 0, "layout seed (0 picks a random seed)")
	pf.BoolVar(&c.opts.strict, flagStrict, false, "fail on flows that reference undefined systems")
	pf.BoolVarP(&c.opts.verbose, flagVerbose, "v", false, "enable verbose logging")

	c.addServeFlags(root.Flags())

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.detailsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) addServeFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.opts.host, flagHost, c.opts.host, "listen host")
	fs.IntVar(&c.opts.port, flagPort, c.opts.port, "listen port")
	fs.BoolVar(&c.opts.debug, flagDebug, c.opts.debug, "debug logging and indented JSON responses")
}

// resolve merges the config file, if any, under the parsed flags.
func (c *CLI) resolve(flags *pflag.FlagSet) error {
	if c.opts.configPath == "" {
		return nil
	}
	cfg, err := LoadConfig(c.opts.configPath)
	if err != nil {
		return err
	}
	cfg.apply(flags, &c.opts)
	c.Logger.Debug("applied config file", "path", c.opts.configPath)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner loads the dataset and creates a pipeline runner for it.
// Undefined system references are logged as warnings, or returned as an
// error in strict mode.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	engine, err := layout.ByName(c.opts.layout, c.opts.seed)
	if err != nil {
		return nil, err
	}

	prog := newProgress(c.Logger)
	ds, err := dataset.Load(ctx, c.opts.paths, c.Logger)
	if err != nil {
		return nil, err
	}

	for _, name := range dataset.DuplicateSystems(ds) {
		c.Logger.Warn("duplicate system definition, keeping the first", "system", name)
	}
	if err := dataset.ValidateReferences(ds); err != nil {
		if c.opts.strict {
			return nil, err
		}
		c.Logger.Warn("flows reference undefined systems", "err", err)
	}

	prog.done(fmt.Sprintf("Loaded %d systems, %d system flows, %d table flows",
		len(ds.Systems), len(ds.SystemFlows), len(ds.TableFlows)))
	return pipeline.NewRunner(ds, engine, c.Logger, pipeline.Options{Title: c.opts.title}), nil
}
