package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/syssam/structgen/compiler/gen"
	"github.com/syssam/structgen/compiler/load"
	"github.com/syssam/structgen/schema"
)

// DefaultConfigFile is read from the working directory when --config is not given.
const DefaultConfigFile = "structgen.yaml"

// Config is the structgen.yaml file. Command line flags override its values.
type Config struct {
	// Schema is the graph file to read.
	Schema string `yaml:"schema,omitempty"`

	// Classes are the uids of the root classes to generate.
	Classes StringList `yaml:"classes,omitempty"`

	// Out is the output directory. Generated code goes to stdout when empty.
	Out string `yaml:"out,omitempty"`

	Package        string `yaml:"package,omitempty"`
	Format         string `yaml:"format,omitempty"`
	Indent         string `yaml:"indent,omitempty"`
	Header         string `yaml:"header,omitempty"`
	ExportedFields bool   `yaml:"exported_fields,omitempty"`
	Workers        int    `yaml:"workers,omitempty"`

	// Database reads the graph from a SQL table instead of Schema.
	Database Database `yaml:"database,omitempty"`
}

// Database configures the SQL graph source.
type Database struct {
	Dialect string `yaml:"dialect,omitempty"`
	DSN     string `yaml:"dsn,omitempty"`
	Table   string `yaml:"table,omitempty"`
}

// StringList is a YAML type that can be either a string or a list of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler for StringList.
func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = []string{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	default:
		return fmt.Errorf("expected string or list, got %v", node.Kind)
	}
}

// LoadConfig reads a structgen.yaml file. A missing file yields an empty
// config unless required is set.
func LoadConfig(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// configFromContext loads the config file and applies the flags set on the
// command line or through the environment.
func configFromContext(cctx *cli.Context) (*Config, error) {
	cfg, err := LoadConfig(cctx.String("config"), cctx.IsSet("config"))
	if err != nil {
		return nil, err
	}
	if cctx.IsSet("schema") {
		cfg.Schema = cctx.String("schema")
	}
	if cctx.IsSet("class") {
		cfg.Classes = cctx.StringSlice("class")
	}
	if cctx.IsSet("out") {
		cfg.Out = cctx.String("out")
	}
	if cctx.IsSet("package") {
		cfg.Package = cctx.String("package")
	}
	if cctx.IsSet("format") {
		cfg.Format = cctx.String("format")
	}
	if cctx.IsSet("indent") {
		cfg.Indent = cctx.String("indent")
	}
	if cctx.IsSet("header") {
		cfg.Header = cctx.String("header")
	}
	if cctx.IsSet("exported-fields") {
		cfg.ExportedFields = cctx.Bool("exported-fields")
	}
	if cctx.IsSet("workers") {
		cfg.Workers = cctx.Int("workers")
	}
	if cctx.IsSet("dialect") {
		cfg.Database.Dialect = cctx.String("dialect")
	}
	if cctx.IsSet("dsn") {
		cfg.Database.DSN = cctx.String("dsn")
	}
	if cctx.IsSet("table") {
		cfg.Database.Table = cctx.String("table")
	}
	return cfg, nil
}

// Options converts the config to generator options.
func (c *Config) Options(logger *slog.Logger) []gen.Option {
	var opts []gen.Option
	if logger != nil {
		opts = append(opts, gen.WithLogger(logger))
	}
	if c.Package != "" {
		opts = append(opts, gen.WithPackage(c.Package))
	}
	if c.Indent != "" {
		opts = append(opts, gen.WithIndent(unescapeIndent(c.Indent)))
	}
	if c.Header != "" {
		opts = append(opts, gen.WithHeader(c.Header))
	}
	if c.ExportedFields {
		opts = append(opts, gen.WithExportedFields())
	}
	return opts
}

// unescapeIndent lets "\t" be written literally on the command line.
func unescapeIndent(s string) string {
	return strings.ReplaceAll(s, `\t`, "\t")
}

// Nodes reads the graph from the configured database or schema file.
func (c *Config) Nodes(ctx context.Context) ([]schema.Node, error) {
	if c.Database.Dialect != "" {
		store, err := c.openStore()
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.Nodes(ctx)
	}
	if c.Schema == "" {
		return nil, fmt.Errorf("no schema given; set --schema or the schema key in %s", DefaultConfigFile)
	}
	return load.File(c.Schema)
}

func (c *Config) openStore() (*load.SQLStore, error) {
	if c.Database.DSN == "" {
		return nil, fmt.Errorf("database %s: missing dsn", c.Database.Dialect)
	}
	store, err := load.OpenSQL(c.Database.Dialect, c.Database.DSN)
	if err != nil {
		return nil, err
	}
	if c.Database.Table != "" {
		if _, err := store.WithTable(c.Database.Table); err != nil {
			store.Close()
			return nil, err
		}
	}
	return store, nil
}
