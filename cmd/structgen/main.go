// structgen generates Go struct definitions from schema graphs.
//
//	structgen generate --schema graph.json --class C1
//	structgen generate --class C1 --class C2 --out ./models --package models
//	structgen classes --schema graph.yaml --flat
//	structgen watch --schema graph.json --class C1 --out ./models
//	structgen push --schema graph.json --dialect sqlite --dsn graph.db
//
// Settings are read from structgen.yaml in the working directory, then from
// STRUCTGEN_* environment variables (a .env file is loaded when present),
// then from flags.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "structgen: load .env: %v\n", err)
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "structgen: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := &cli.App{
		Name:  "structgen",
		Usage: "generate Go structs from schema graphs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to the config file",
				Value:   DefaultConfigFile,
				EnvVars: []string{"STRUCTGEN_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log verbosity (debug, info, warn, error)",
				Value:   "warn",
				EnvVars: []string{"STRUCTGEN_LOG_LEVEL"},
			},
		},
		Before: func(cctx *cli.Context) error {
			logger, err := newLogger(cctx)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
	}
	app.Commands = []*cli.Command{
		generateCmd,
		classesCmd,
		watchCmd,
		pushCmd,
	}
	return app
}

// newLogger builds a text logger on the app's error writer.
func newLogger(cctx *cli.Context) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level: %q", cctx.String("log-level"))
	}
	h := slog.NewTextHandler(cctx.App.ErrWriter, &slog.HandlerOptions{Level: level})
	return slog.New(h), nil
}

// sourceFlags select and shape the graph source.
func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "schema",
			Aliases: []string{"s"},
			Usage:   "schema graph file (.json, .yaml, .msgpack, .cue, .graphql)",
			EnvVars: []string{"STRUCTGEN_SCHEMA"},
		},
		&cli.StringFlag{
			Name:    "dialect",
			Usage:   "read the graph from a database (sqlite, postgres, mysql)",
			EnvVars: []string{"STRUCTGEN_DB_DIALECT"},
		},
		&cli.StringFlag{
			Name:    "dsn",
			Usage:   "database source name",
			EnvVars: []string{"STRUCTGEN_DB_DSN"},
		},
		&cli.StringFlag{
			Name:    "table",
			Usage:   "table holding the graph nodes",
			EnvVars: []string{"STRUCTGEN_DB_TABLE"},
		},
	}
}

// outputFlags control code generation.
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "class",
			Aliases: []string{"c"},
			Usage:   "uid of a root class to generate (repeatable)",
			EnvVars: []string{"STRUCTGEN_CLASSES"},
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "output directory; prints to stdout when empty",
			EnvVars: []string{"STRUCTGEN_OUT"},
		},
		&cli.StringFlag{
			Name:    "package",
			Usage:   "package name of generated files",
			EnvVars: []string{"STRUCTGEN_PACKAGE"},
		},
		&cli.StringFlag{
			Name:    "format",
			Usage:   "output format: go renders complete files, text the bare struct definitions",
			EnvVars: []string{"STRUCTGEN_FORMAT"},
		},
		&cli.StringFlag{
			Name:    "indent",
			Usage:   `field indentation, "\t" for tabs`,
			EnvVars: []string{"STRUCTGEN_INDENT"},
		},
		&cli.StringFlag{
			Name:    "header",
			Usage:   "header comment of generated files",
			EnvVars: []string{"STRUCTGEN_HEADER"},
		},
		&cli.BoolFlag{
			Name:    "exported-fields",
			Usage:   "title-case field names",
			EnvVars: []string{"STRUCTGEN_EXPORTED_FIELDS"},
		},
		&cli.IntFlag{
			Name:    "workers",
			Usage:   "number of classes generated in parallel",
			EnvVars: []string{"STRUCTGEN_WORKERS"},
		},
	}
}
