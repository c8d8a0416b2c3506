package dataset

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Default input paths, relative to the working directory.
const (
	DefaultSystemsPath     = "systems.csv"
	DefaultSystemFlowsPath = "system_flows.csv"
	DefaultTableFlowsPath  = "table_flows.csv"
)

// Paths locates the input tables. SystemImages is optional.
type Paths struct {
	Systems      string `toml:"systems" yaml:"systems"`
	SystemFlows  string `toml:"system_flows" yaml:"system_flows"`
	TableFlows   string `toml:"table_flows" yaml:"table_flows"`
	SystemImages string `toml:"system_images" yaml:"system_images"`
}

// SetDefaults fills empty required paths with the default file names.
func (p *Paths) SetDefaults() {
	if p.Systems == "" {
		p.Systems = DefaultSystemsPath
	}
	if p.SystemFlows == "" {
		p.SystemFlows = DefaultSystemFlowsPath
	}
	if p.TableFlows == "" {
		p.TableFlows = DefaultTableFlowsPath
	}
}

// Load reads all tables named by paths. The three required tables and the
// optional image mapping are read concurrently; the first error from a
// required table is returned. Image problems only log warnings.
func Load(ctx context.Context, paths Paths, logger *log.Logger) (*Dataset, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	paths.SetDefaults()
	start := time.Now()

	ds := &Dataset{}
	var g errgroup.Group

	g.Go(func() error {
		v, err := ReadSystemsFile(paths.Systems)
		ds.Systems = v
		return err
	})
	g.Go(func() error {
		v, err := ReadSystemFlowsFile(paths.SystemFlows)
		ds.SystemFlows = v
		return err
	})
	g.Go(func() error {
		v, err := ReadTableFlowsFile(paths.TableFlows)
		ds.TableFlows = v
		return err
	})
	if paths.SystemImages != "" {
		g.Go(func() error {
			ds.Images = LoadImages(paths.SystemImages, logger)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("loaded dataset",
		"systems", len(ds.Systems),
		"system_flows", len(ds.SystemFlows),
		"table_flows", len(ds.TableFlows),
		"images", ds.Images.Len(),
		"duration", time.Since(start).Round(time.Millisecond))
	return ds, nil
}
