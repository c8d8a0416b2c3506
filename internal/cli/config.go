package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/warehousemap/pkg/dataset"
	werrors "github.com/matzehuels/warehousemap/pkg/errors"
)

// Config is the optional defaults file passed with --config. Flags set on
// the command line take precedence over its values.
//
//	[data]
//	systems = "systems.csv"
//	system_flows = "system_flows.csv"
//	table_flows = "table_flows.csv"
//	system_images = "system_images.csv"
//
//	[server]
//	host = "127.0.0.1"
//	port = 8050
//	debug = true
//
//	[view]
//	title = "Nexus Data Warehouse"
//	layout = "spring"
//	seed = 42
//	strict = false
type Config struct {
	Data   dataset.Paths `toml:"data" yaml:"data"`
	Server ServerConfig  `toml:"server" yaml:"server"`
	View   ViewConfig    `toml:"view" yaml:"view"`
}

// ServerConfig holds the [server] section.
type ServerConfig struct {
	Host  string `toml:"host" yaml:"host"`
	Port  int    `toml:"port" yaml:"port"`
	Debug *bool  `toml:"debug" yaml:"debug"`
}

// ViewConfig holds the [view] section.
type ViewConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Layout string `toml:"layout" yaml:"layout"`
	Seed   uint64 `toml:"seed" yaml:"seed"`
	Strict *bool  `toml:"strict" yaml:"strict"`
}

// LoadConfig reads a TOML (.toml) or YAML (.yaml, .yml) config file.
// Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, werrors.Wrap(werrors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, werrors.Wrap(werrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, werrors.Wrap(werrors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return nil, werrors.New(werrors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, werrors.Wrap(werrors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return nil, werrors.New(werrors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	return &cfg, nil
}

// apply copies file values into opts for every flag the user did not set.
func (cfg *Config) apply(flags *pflag.FlagSet, opts *options) {
	set := func(name string, assign func()) {
		if f := flags.Lookup(name); f == nil || !f.Changed {
			assign()
		}
	}
	str := func(name, v string, dst *string) {
		if v != "" {
			set(name, func() { *dst = v })
		}
	}

	str(flagSystems, cfg.Data.Systems, &opts.paths.Systems)
	str(flagSystemFlows, cfg.Data.SystemFlows, &opts.paths.SystemFlows)
	str(flagTableFlows, cfg.Data.TableFlows, &opts.paths.TableFlows)
	str(flagSystemImages, cfg.Data.SystemImages, &opts.paths.SystemImages)
	str(flagHost, cfg.Server.Host, &opts.host)
	str(flagTitle, cfg.View.Title, &opts.title)
	str(flagLayout, cfg.View.Layout, &opts.layout)

	if cfg.Server.Port != 0 {
		set(flagPort, func() { opts.port = cfg.Server.Port })
	}
	if cfg.Server.Debug != nil {
		set(flagDebug, func() { opts.debug = *cfg.Server.Debug })
	}
	if cfg.View.Seed != 0 {
		set(flagSeed, func() { opts.seed = cfg.View.Seed })
	}
	if cfg.View.Strict != nil {
		set(flagStrict, func() { opts.strict = *cfg.View.Strict })
	}
}
