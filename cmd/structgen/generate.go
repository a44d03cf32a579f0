package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/syssam/structgen/compiler/gen"
	"github.com/syssam/structgen/compiler/load"
	"github.com/syssam/structgen/schema"
)

var generateCmd = &cli.Command{
	Name:   "generate",
	Usage:  "generate struct definitions for root classes",
	Flags:  append(sourceFlags(), outputFlags()...),
	Action: runGenerate,
}

var classesCmd = &cli.Command{
	Name:  "classes",
	Usage: "list the classes of a graph",
	Flags: append(sourceFlags(),
		&cli.BoolFlag{
			Name:  "flat",
			Usage: "show property lists after merging inherited properties",
		},
	),
	Action: runClasses,
}

var pushCmd = &cli.Command{
	Name:   "push",
	Usage:  "store a schema file in a database table",
	Flags:  sourceFlags(),
	Action: runPush,
}

func runGenerate(cctx *cli.Context) error {
	cfg, err := configFromContext(cctx)
	if err != nil {
		return err
	}
	nodes, err := cfg.Nodes(cctx.Context)
	if err != nil {
		return err
	}
	return generate(cctx.Context, cctx.App.Writer, cfg, nodes, slog.Default())
}

// generate writes the root classes of cfg to its output directory, or to w
// when no directory is configured.
func generate(ctx context.Context, w io.Writer, cfg *Config, nodes []schema.Node, logger *slog.Logger) error {
	if len(cfg.Classes) == 0 {
		return errors.New("no classes to generate; set --class or the classes key")
	}
	format, err := gen.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	opts := cfg.Options(logger)
	if cfg.Out != "" {
		writer := gen.NewWriter(nodes, cfg.Out, opts...).
			WithFormat(format).
			WithWorkers(cfg.Workers)
		files, err := writer.WriteAll(ctx, cfg.Classes...)
		if err != nil {
			return err
		}
		m := writer.Metrics()
		logger.Info("generated", "files", m.FilesGenerated, "structs", m.StructsWritten, "bytes", m.TotalBytes)
		for _, f := range files {
			fmt.Fprintln(w, f)
		}
		return nil
	}

	gcfg, err := gen.NewConfig(opts...)
	if err != nil {
		return err
	}
	for i, uid := range cfg.Classes {
		res, err := gen.Generate(nodes, uid, opts...)
		if err != nil {
			return err
		}
		out := res.Text()
		if format == gen.FormatGo {
			src, err := gen.RenderFile(res, gcfg)
			if err != nil {
				return err
			}
			out = strings.TrimRight(string(src), "\n")
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, out)
	}
	return nil
}

func runClasses(cctx *cli.Context) error {
	cfg, err := configFromContext(cctx)
	if err != nil {
		return err
	}
	nodes, err := cfg.Nodes(cctx.Context)
	if err != nil {
		return err
	}
	var classes []*schema.Class
	if cctx.Bool("flat") {
		classes, err = gen.FlattenGraph(nodes, gen.WithLogger(slog.Default()))
		if err != nil {
			return err
		}
	} else {
		classes = gen.NewContext(nodes, nil).Classes()
	}
	return printClasses(cctx.App.Writer, classes)
}

func printClasses(w io.Writer, classes []*schema.Class) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "UID\tLABEL\tPARENTS\tPROPERTIES")
	for _, c := range classes {
		refs := make([]string, len(c.PropertySpecs))
		for i, r := range c.PropertySpecs {
			refs[i] = r.Ref
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.UID, c.Label, orDash(c.ParentRefs), orDash(refs))
	}
	return tw.Flush()
}

func orDash(s []string) string {
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, ",")
}

func runPush(cctx *cli.Context) error {
	cfg, err := configFromContext(cctx)
	if err != nil {
		return err
	}
	if cfg.Schema == "" || cfg.Database.Dialect == "" {
		return errors.New("push needs both --schema and --dialect")
	}
	nodes, err := load.File(cfg.Schema)
	if err != nil {
		return err
	}
	store, err := cfg.openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Init(cctx.Context); err != nil {
		return err
	}
	if err := store.Save(cctx.Context, nodes); err != nil {
		return err
	}
	slog.Info("stored graph", "nodes", len(nodes), "dialect", cfg.Database.Dialect)
	return nil
}
