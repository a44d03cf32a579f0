package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"

	"github.com/syssam/structgen/compiler/load"
)

var watchCmd = &cli.Command{
	Name:   "watch",
	Usage:  "regenerate whenever the schema file changes",
	Flags:  append(sourceFlags(), outputFlags()...),
	Action: runWatch,
}

// watcher regenerates the configured classes from a schema file.
type watcher struct {
	cfg   *Config
	cache *load.Cache
	log   *slog.Logger
	out   io.Writer
}

func newWatcher(cfg *Config, out io.Writer, logger *slog.Logger) (*watcher, error) {
	if cfg.Schema == "" {
		return nil, errors.New("watch needs a schema file")
	}
	if cfg.Out == "" {
		return nil, errors.New("watch needs an output directory")
	}
	cache, err := load.NewCache(load.DefaultCacheSize)
	if err != nil {
		return nil, err
	}
	return &watcher{cfg: cfg, cache: cache, log: logger, out: out}, nil
}

// regenerate reads the schema through the cache and writes the output files.
func (w *watcher) regenerate(ctx context.Context) error {
	nodes, err := w.cache.File(w.cfg.Schema)
	if err != nil {
		return err
	}
	return generate(ctx, w.out, w.cfg, nodes, w.log)
}

// run watches the directory of the schema file, since editors often replace
// the file instead of writing to it, and returns when ctx is done.
func (w *watcher) run(ctx context.Context) error {
	path, err := filepath.Abs(w.cfg.Schema)
	if err != nil {
		return err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	log := w.log.With("source", "watcher", "schema", w.cfg.Schema)
	if err := w.regenerate(ctx); err != nil {
		log.Error("generate failed", "err", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			log.Debug("schema changed", "op", event.Op.String())
			if err := w.regenerate(ctx); err != nil {
				log.Error("generate failed", "err", err)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "err", err)
		}
	}
}

func runWatch(cctx *cli.Context) error {
	cfg, err := configFromContext(cctx)
	if err != nil {
		return err
	}
	w, err := newWatcher(cfg, cctx.App.Writer, slog.Default())
	if err != nil {
		return err
	}
	return w.run(cctx.Context)
}
