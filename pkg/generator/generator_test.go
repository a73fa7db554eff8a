package generator_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/oclhpp/pkg/generator"
	"github.com/macropower/oclhpp/pkg/kernel"
	"github.com/macropower/oclhpp/pkg/oclerrors"
)

var testDataDir string

func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	testDataDir = filepath.Join(dir, "testdata")
}

func newGenerator(stdout io.Writer, opts ...generator.Option) *generator.Generator {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return generator.New(append([]generator.Option{
		generator.WithStdout(stdout),
		generator.WithLogger(logger),
	}, opts...)...)
}

func writeKernels(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	kernelDir := filepath.Join(testDataDir, "kernels")
	headerDir := filepath.Join(t.TempDir(), "build", "include")
	stdout := &bytes.Buffer{}

	res, err := newGenerator(stdout).Generate(context.Background(), kernelDir, headerDir)
	require.NoError(t, err)

	assert.Equal(t, "-- Created hologram_focus_ocl.hpp\n-- Created recon_step_ocl.hpp\n", stdout.String())

	entries, err := os.ReadDir(headerDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, name := range []string{"hologram_focus_ocl.hpp", "recon_step_ocl.hpp"} {
		want, err := os.ReadFile(filepath.Join(testDataDir, "headers", name))
		require.NoError(t, err)

		got, err := os.ReadFile(filepath.Join(headerDir, name))
		require.NoError(t, err)

		assert.Equal(t, string(want), string(got), name)
	}

	require.Len(t, res.Manifest.Headers, 2)
	first := res.Manifest.Headers[0]
	assert.Equal(t, "hologram", first.Module)
	assert.Equal(t, "focus", first.Name)
	assert.Equal(t, "hologram_focus_ocl", first.Function)
	assert.Equal(t, filepath.Join(kernelDir, "hologram_focus.cl"), first.Kernel)
	assert.Equal(t, filepath.Join(headerDir, "hologram_focus_ocl.hpp"), first.Header)
	assert.Positive(t, first.Size)
}

func TestGenerateExample(t *testing.T) {
	t.Parallel()

	kernelDir := t.TempDir()
	headerDir := t.TempDir()
	writeKernels(t, kernelDir, map[string]string{
		"foo_bar.cl": "__kernel void k(){}  // comment\n",
	})

	stdout := &bytes.Buffer{}
	_, err := newGenerator(stdout).Generate(context.Background(), kernelDir, headerDir)
	require.NoError(t, err)
	assert.Equal(t, "-- Created foo_bar_ocl.hpp\n", stdout.String())

	got, err := os.ReadFile(filepath.Join(headerDir, "foo_bar_ocl.hpp"))
	require.NoError(t, err)
	assert.Equal(t, `#ifndef FOO_BAR_OCL_HPP
#define FOO_BAR_OCL_HPP
#include <opencv2/core/ocl.hpp>
const cv::ocl::ProgramSource& foo_bar_ocl() {
static cv::ocl::ProgramSource source("foo", "bar", "__kernel void k(){} ", "");
return source;
}
#endif
`, string(got))
}

func TestGenerateDeterministic(t *testing.T) {
	t.Parallel()

	kernelDir := filepath.Join(testDataDir, "kernels")

	run := func(headerDir string, jobs int) map[string]string {
		stdout := &bytes.Buffer{}
		_, err := newGenerator(stdout, generator.WithJobs(jobs)).
			Generate(context.Background(), kernelDir, headerDir)
		require.NoError(t, err)

		out := map[string]string{"stdout": stdout.String()}

		entries, err := os.ReadDir(headerDir)
		require.NoError(t, err)

		for _, e := range entries {
			data, err := os.ReadFile(filepath.Join(headerDir, e.Name()))
			require.NoError(t, err)

			out[e.Name()] = string(data)
		}

		return out
	}

	headerDir := t.TempDir()
	first := run(headerDir, 1)
	second := run(headerDir, 1)
	parallel := run(t.TempDir(), 4)

	assert.Equal(t, first, second)
	assert.Equal(t, first, parallel)
}

func TestGenerateOverwrites(t *testing.T) {
	t.Parallel()

	kernelDir := t.TempDir()
	headerDir := t.TempDir()
	writeKernels(t, kernelDir, map[string]string{"a_b.cl": "x"})
	require.NoError(t, os.WriteFile(filepath.Join(headerDir, "a_b_ocl.hpp"), []byte("stale"), 0o600))

	_, err := newGenerator(io.Discard).Generate(context.Background(), kernelDir, headerDir)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(headerDir, "a_b_ocl.hpp"))
	require.NoError(t, err)
	assert.Contains(t, string(got), `source("a", "b", "x", "")`)
}

func TestGenerateMalformedName(t *testing.T) {
	t.Parallel()

	kernelDir := t.TempDir()
	headerDir := t.TempDir()
	writeKernels(t, kernelDir, map[string]string{
		"a_first.cl":     "__kernel void a(){}",
		"onlyonepart.cl": "__kernel void o(){}",
		"z_last.cl":      "__kernel void z(){}",
	})

	stdout := &bytes.Buffer{}
	_, err := newGenerator(stdout, generator.WithJobs(2)).
		Generate(context.Background(), kernelDir, headerDir)
	require.ErrorIs(t, err, oclerrors.ErrMalformedName)

	var nameErr *kernel.NameError
	require.ErrorAs(t, err, &nameErr)
	assert.Equal(t, filepath.Join(kernelDir, "onlyonepart.cl"), nameErr.Path)

	assert.Equal(t, "-- Created a_first_ocl.hpp\n", stdout.String())
	assert.FileExists(t, filepath.Join(headerDir, "a_first_ocl.hpp"))
	assert.NoFileExists(t, filepath.Join(headerDir, "onlyonepart_ocl.hpp"))
	assert.NoFileExists(t, filepath.Join(headerDir, "z_last_ocl.hpp"))
}

func TestGenerateSkipsNonKernels(t *testing.T) {
	t.Parallel()

	kernelDir := t.TempDir()
	headerDir := t.TempDir()
	writeKernels(t, kernelDir, map[string]string{
		"notes.txt":       "not a kernel",
		"kernel_cl":       "not a kernel",
		"foo_bar.cl.orig": "not a kernel",
		"readme":          "not a kernel",
	})
	require.NoError(t, os.Mkdir(filepath.Join(kernelDir, "sub_dir.cl"), 0o750))

	stdout := &bytes.Buffer{}
	res, err := newGenerator(stdout).Generate(context.Background(), kernelDir, headerDir)
	require.NoError(t, err)
	assert.Empty(t, stdout.String())
	assert.Empty(t, res.Manifest.Headers)

	entries, err := os.ReadDir(headerDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerateErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing kernel dir", func(t *testing.T) {
		t.Parallel()

		_, err := newGenerator(io.Discard).
			Generate(context.Background(), filepath.Join(t.TempDir(), "missing"), t.TempDir())
		require.ErrorIs(t, err, oclerrors.ErrListDir)
	})

	t.Run("header dir is a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(path, nil, 0o600))

		_, err := newGenerator(io.Discard).
			Generate(context.Background(), filepath.Join(testDataDir, "kernels"), path)
		require.ErrorIs(t, err, oclerrors.ErrCreateDir)
	})

	t.Run("canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		headerDir := t.TempDir()
		_, err := newGenerator(io.Discard).Generate(ctx, filepath.Join(testDataDir, "kernels"), headerDir)
		require.ErrorIs(t, err, context.Canceled)

		entries, err := os.ReadDir(headerDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func BenchmarkGenerate(b *testing.B) {
	kernelDir := filepath.Join(testDataDir, "kernels")
	headerDir := b.TempDir()
	g := newGenerator(io.Discard)

	for range b.N {
		_, err := g.Generate(context.Background(), kernelDir, headerDir)
		require.NoError(b, err)
	}
}
