// Package manifest records the headers produced by a generator run so build
// systems can consume the list without globbing the output directory.
package manifest

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/macropower/oclhpp/pkg/oclerrors"
)

// Manifest lists generated headers in processing order.
type Manifest struct {
	Headers []Entry `yaml:"headers"`
}

// Entry describes one generated header.
type Entry struct {
	Module   string `yaml:"module"`
	Name     string `yaml:"name"`
	Function string `yaml:"function"`
	Kernel   string `yaml:"kernel"`
	Header   string `yaml:"header"`
	// Size is the length of the embedded, compressed kernel literal.
	Size int `yaml:"size"`
}

// Encode writes m to w as YAML.
func (m *Manifest) Encode(w io.Writer) error {
	buf := &bytes.Buffer{}

	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)

	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("%w: %w", oclerrors.ErrYAMLMarshal, err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: %w", oclerrors.ErrYAMLMarshal, err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", oclerrors.ErrWrite, err)
	}

	return nil
}

// WriteFile writes m to path, replacing any existing file.
func (m *Manifest) WriteFile(path string) error {
	buf := &bytes.Buffer{}
	if err := m.Encode(buf); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // Generated build output.
		return fmt.Errorf("%w: %w", oclerrors.ErrWriteFile, err)
	}

	return nil
}

// Read decodes a manifest from r.
func Read(r io.Reader) (*Manifest, error) {
	m := &Manifest{}
	if err := yaml.NewDecoder(r).Decode(m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	return m, nil
}
