package oclerrors

import (
	"errors"
	"fmt"
)

var (
	// ErrUsage indicates the program was invoked with the wrong arguments.
	ErrUsage = errors.New("usage")

	// ErrInvalidArguments indicates invalid arguments were provided.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrMalformedName indicates a kernel filename does not have the form
	// `<module>_<name>.cl`.
	ErrMalformedName = errors.New("malformed kernel filename")

	// ErrListDir indicates an error occurred while listing a directory.
	ErrListDir = errors.New("list directory")

	// ErrCreateDir indicates an error occurred while creating a directory.
	ErrCreateDir = errors.New("create directory")

	// ErrReadFile indicates an error occurred while reading a file.
	ErrReadFile = errors.New("read file")

	// ErrWrite indicates an error occurred while writing.
	ErrWrite = errors.New("write")

	// ErrWriteFile indicates an error occurred while writing a file.
	ErrWriteFile = fmt.Errorf("file: %w", ErrWrite)

	// ErrInvalidPattern indicates a malformed kernel filename pattern.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrYAMLMarshal indicates an error occurred while marshaling YAML.
	ErrYAMLMarshal = errors.New("marshal YAML")
)
