// Package kernel discovers OpenCL kernel files and derives the identifiers
// used in generated headers from their filenames.
package kernel

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/macropower/oclhpp/pkg/oclerrors"
)

const (
	// DefaultPattern matches kernel files by their `.cl` suffix.
	DefaultPattern = "*.cl"

	// Separator splits a kernel base name into module and name.
	Separator = "_"
)

// File is a kernel file named `<module>_<name>.cl`.
type File struct {
	// Path is the location of the kernel source.
	Path string
	// Base is the filename without directory and extension.
	Base string
	// Module is the part of Base before the separator.
	Module string
	// Name is the part of Base after the separator.
	Name string
}

// Definition returns the upper-cased base name used for include guards.
func (f *File) Definition() string {
	// Casers are stateful, so one is created per call.
	return cases.Upper(language.Und).String(f.Base)
}

// NameError is returned when a kernel filename does not split into exactly
// two non-empty parts.
type NameError struct {
	Path string
	Base string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%s %s: base name %q must have the form <module>%s<name>",
		oclerrors.ErrMalformedName, e.Path, e.Base, Separator)
}

func (e *NameError) Unwrap() error {
	return oclerrors.ErrMalformedName
}

// Parse derives a [File] from the kernel file at path. It does not access
// the filesystem.
func Parse(path string) (*File, error) {
	filename := filepath.Base(path)
	base := strings.TrimSuffix(filename, filepath.Ext(filename))

	parts := strings.Split(base, Separator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, &NameError{Path: path, Base: base}
	}

	return &File{
		Path:   path,
		Base:   base,
		Module: parts[0],
		Name:   parts[1],
	}, nil
}

// Match reports whether the directory entry name matches pattern.
func Match(pattern, name string) (bool, error) {
	ok, err := doublestar.Match(pattern, name)
	if err != nil {
		return false, fmt.Errorf("%w: %q: %w", oclerrors.ErrInvalidPattern, pattern, err)
	}

	return ok, nil
}

// Discover returns the paths of the direct children of dir whose names match
// pattern and that are regular files, in lexicographic order. Symlinks are
// followed. Entries that do not match are never opened.
func Discover(dir, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", oclerrors.ErrInvalidPattern, pattern)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", oclerrors.ErrListDir, err)
	}

	paths := []string{}

	for _, entry := range entries {
		ok, err := Match(pattern, entry.Name())
		if err != nil {
			return nil, err
		}

		if !ok {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		regular, err := isRegular(path, entry)
		if err != nil {
			return nil, err
		}

		if regular {
			paths = append(paths, path)
		}
	}

	return paths, nil
}

func isRegular(path string, entry fs.DirEntry) (bool, error) {
	if entry.Type().IsRegular() {
		return true, nil
	}

	if entry.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}

	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		// Dangling symlink.
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("%w: %w", oclerrors.ErrListDir, err)
	}

	return fi.Mode().IsRegular(), nil
}
