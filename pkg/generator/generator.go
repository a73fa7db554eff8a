// Package generator converts a directory of OpenCL kernels into C++ headers.
//
// For every kernel file `<module>_<name>.cl` in the input directory, a header
// `<module>_<name>_ocl.hpp` is written to the output directory. The header
// embeds the compressed kernel source and defines `<module>_<name>_ocl()`,
// which returns a cv::ocl::ProgramSource for the kernel.
//
// Kernels are processed in lexicographic filename order. Processing stops at
// the first failure; headers written before it are left in place.
package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/macropower/oclhpp/pkg/compress"
	"github.com/macropower/oclhpp/pkg/header"
	"github.com/macropower/oclhpp/pkg/kernel"
	"github.com/macropower/oclhpp/pkg/manifest"
	"github.com/macropower/oclhpp/pkg/oclerrors"
	"github.com/macropower/oclhpp/pkg/tracing"
)

// Generator writes kernel headers.
type Generator struct {
	stdout  io.Writer
	logger  *slog.Logger
	tracer  tracing.Tracer
	pattern string
	jobs    int
}

// Option configures a [Generator].
type Option func(*Generator)

// WithStdout sets the writer that receives `-- Created <file>` progress
// lines. Defaults to [os.Stdout].
func WithStdout(w io.Writer) Option {
	return func(g *Generator) {
		g.stdout = w
	}
}

// WithLogger sets the logger. Defaults to [slog.Default].
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// WithTracer sets the tracer used to time each kernel.
func WithTracer(t tracing.Tracer) Option {
	return func(g *Generator) {
		g.tracer = t
	}
}

// WithPattern sets the glob matched against kernel filenames. Defaults to
// [kernel.DefaultPattern].
func WithPattern(pattern string) Option {
	return func(g *Generator) {
		g.pattern = pattern
	}
}

// WithJobs sets how many kernels may be read and rendered concurrently.
// Headers are always written one at a time, in order. Values below 1 are
// treated as 1.
func WithJobs(n int) Option {
	return func(g *Generator) {
		g.jobs = max(n, 1)
	}
}

// New creates a new [Generator].
func New(opts ...Option) *Generator {
	g := &Generator{
		stdout:  os.Stdout,
		pattern: kernel.DefaultPattern,
		jobs:    1,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.logger == nil {
		g.logger = slog.Default()
	}

	if g.tracer == nil {
		g.tracer = tracing.NewLoggingTracer(g.logger)
	}

	return g
}

// Result describes the headers written by [Generator.Generate].
type Result struct {
	Manifest *manifest.Manifest
}

// rendered is a kernel that is ready to be written.
type rendered struct {
	err    error
	file   *kernel.File
	header string
	size   int
}

// Generate writes one header into headerDir for every kernel file in
// kernelDir. headerDir is created if it does not exist.
func (g *Generator) Generate(ctx context.Context, kernelDir, headerDir string) (*Result, error) {
	if err := os.MkdirAll(headerDir, 0o755); err != nil { //nolint:gosec // Generated build output.
		return nil, fmt.Errorf("%w: %w", oclerrors.ErrCreateDir, err)
	}

	paths, err := kernel.Discover(kernelDir, g.pattern)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("discovered kernels",
		slog.String("kernel_dir", kernelDir),
		slog.Int("count", len(paths)),
	)

	results := g.renderAll(ctx, paths)

	res := &Result{
		Manifest: &manifest.Manifest{Headers: []manifest.Entry{}},
	}

	for _, r := range results {
		if r.err != nil {
			return res, r.err
		}

		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("generate: %w", err)
		}

		name := header.FileName(r.file.Base)
		path := filepath.Join(headerDir, name)

		//nolint:gosec // Generated build output.
		if err := os.WriteFile(path, []byte(r.header), 0o644); err != nil {
			return res, fmt.Errorf("%w: %w", oclerrors.ErrWriteFile, err)
		}

		if _, err := fmt.Fprintf(g.stdout, "-- Created %s\n", name); err != nil {
			return res, fmt.Errorf("%w: %w", oclerrors.ErrWrite, err)
		}

		g.logger.Debug("created header",
			slog.String("kernel", r.file.Path),
			slog.String("header", path),
		)

		res.Manifest.Headers = append(res.Manifest.Headers, manifest.Entry{
			Module:   r.file.Module,
			Name:     r.file.Name,
			Function: header.FuncName(r.file.Module, r.file.Name),
			Kernel:   r.file.Path,
			Header:   path,
			Size:     r.size,
		})
	}

	return res, nil
}

// renderAll renders every kernel using up to g.jobs goroutines. Failures are
// recorded per kernel so the writer can stop at the first one in order.
func (g *Generator) renderAll(ctx context.Context, paths []string) []rendered {
	results := make([]rendered, len(paths))

	eg := &errgroup.Group{}
	eg.SetLimit(g.jobs)

	for i, path := range paths {
		eg.Go(func() error {
			results[i] = g.render(ctx, path)

			return nil
		})
	}

	// Errors are carried in results.
	_ = eg.Wait()

	return results
}

func (g *Generator) render(ctx context.Context, path string) rendered {
	if err := ctx.Err(); err != nil {
		return rendered{err: fmt.Errorf("generate: %w", err)}
	}

	span := g.tracer.StartSpan("render_kernel")
	defer span.Finish()

	span.SetBaggageItem("kernel", path)

	f, err := kernel.Parse(path)
	if err != nil {
		return rendered{err: err}
	}

	src, err := os.ReadFile(path) //nolint:gosec // Paths come from the kernel directory listing.
	if err != nil {
		return rendered{err: fmt.Errorf("%w: %w", oclerrors.ErrReadFile, err)}
	}

	code := compress.Compress(string(src))

	span.SetBaggageItem("source_bytes", len(src))
	span.SetBaggageItem("compressed_bytes", len(code))

	return rendered{
		file: f,
		size: len(code),
		header: header.Render(header.Header{
			Definition: f.Definition(),
			Module:     f.Module,
			Name:       f.Name,
			Kernel:     code,
		}),
	}
}
