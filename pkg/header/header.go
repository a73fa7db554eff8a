// Package header renders C++ headers that register an embedded OpenCL
// kernel as a cv::ocl::ProgramSource.
package header

import (
	"fmt"
	"io"
	"strings"

	"github.com/macropower/oclhpp/pkg/oclerrors"
)

// Include is the dependency header every generated file includes.
const Include = "<opencv2/core/ocl.hpp>"

const (
	fileSuffix = "_ocl.hpp"
	funcSuffix = "_ocl"
)

// Header holds the values substituted into the header template.
type Header struct {
	// Definition is the upper-cased kernel base name used in the include
	// guard.
	Definition string
	Module     string
	Name       string
	// Kernel is the compressed source. It must already be escaped for use
	// inside a double-quoted C++ string literal.
	Kernel string
}

// Render returns the header text for h.
func Render(h Header) string {
	b := &strings.Builder{}

	// [strings.Builder] never returns write errors.
	_, _ = h.WriteTo(b)

	return b.String()
}

// WriteTo writes the header text to w.
func (h Header) WriteTo(w io.Writer) (int64, error) {
	guard := h.Definition + "_OCL_HPP"

	n, err := fmt.Fprintf(w,
		"#ifndef %s\n"+
			"#define %s\n"+
			"#include %s\n"+
			"const cv::ocl::ProgramSource& %s() {\n"+
			"static cv::ocl::ProgramSource source(\"%s\", \"%s\", \"%s\", \"\");\n"+
			"return source;\n"+
			"}\n"+
			"#endif\n",
		guard,
		guard,
		Include,
		FuncName(h.Module, h.Name),
		h.Module, h.Name, h.Kernel,
	)
	if err != nil {
		return int64(n), fmt.Errorf("%w: %w", oclerrors.ErrWrite, err)
	}

	return int64(n), nil
}

// FileName returns the header filename for a kernel base name.
func FileName(base string) string {
	return base + fileSuffix
}

// FuncName returns the name of the generated accessor function.
func FuncName(module, name string) string {
	return module + "_" + name + funcSuffix
}
