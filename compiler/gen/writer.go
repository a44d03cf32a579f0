package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/structgen/schema"
)

// Format selects how the writer renders a result.
type Format string

// Output formats.
const (
	// FormatGo renders through Jennifer.
	FormatGo Format = "go"
	// FormatText renders the text output with a package clause, formatted
	// by goimports.
	FormatText Format = "text"
)

// ParseFormat returns the format with the given name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatGo, FormatText:
		return f, nil
	case "":
		return FormatGo, nil
	default:
		return "", NewConfigError("Format", s, "unsupported format; use go or text")
	}
}

// Writer generates one Go file per root class into a directory.
type Writer struct {
	nodes   []schema.Node
	outDir  string
	workers int
	format  Format
	opts    []Option

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks generation output.
type WriterMetrics struct {
	FilesGenerated int
	StructsWritten int
	TotalBytes     int64
}

// NewWriter creates a writer for the graph.
func NewWriter(nodes []schema.Node, outDir string, opts ...Option) *Writer {
	return &Writer{
		nodes:   nodes,
		outDir:  outDir,
		workers: runtime.GOMAXPROCS(0),
		format:  FormatGo,
		opts:    opts,
		metrics: &WriterMetrics{},
	}
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// WithFormat sets the output format.
func (w *Writer) WithFormat(f Format) *Writer {
	if f != "" {
		w.format = f
	}
	return w
}

// Metrics returns the generation metrics.
func (w *Writer) Metrics() *WriterMetrics {
	return w.metrics
}

// WriteAll generates the given root classes in parallel, each run with its
// own context, and writes one file per root named after the root struct.
// A struct reached from several roots is written only into the file of the
// first root listing it, so the files compile as one package.
func (w *Writer) WriteAll(ctx context.Context, classUIDs ...string) ([]string, error) {
	cfg, err := NewConfig(w.opts...)
	if err != nil {
		return nil, err
	}
	results := make([]*Result, len(classUIDs))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for i, uid := range classUIDs {
		eg.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := Generate(w.nodes, uid, w.opts...)
			if err != nil {
				return fmt.Errorf("generate %s: %w", uid, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	seen := make(map[string]bool)
	files := make([]string, 0, len(results))
	eg, gctx = errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for _, res := range results {
		root := res.Root()
		if seen[root] {
			continue
		}
		res = res.Without(seen)
		for _, s := range res.Structs {
			seen[s.Name] = true
		}
		path := filepath.Join(w.outDir, FileName(root))
		files = append(files, path)
		eg.Go(func() error {
			return w.writeFile(gctx, path, res, cfg)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// writeFile renders a single result to path unless ctx is done.
func (w *Writer) writeFile(ctx context.Context, path string, res *Result, cfg *Config) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	var (
		out []byte
		err error
	)
	switch w.format {
	case FormatText:
		out, err = FormatSource(res, cfg)
	default:
		out, err = RenderFile(res, cfg)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	// Update metrics
	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.StructsWritten += len(res.Structs)
	w.metrics.TotalBytes += int64(len(out))
	w.mu.Unlock()
	return nil
}
