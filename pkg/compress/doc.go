// Package compress minifies OpenCL kernel sources for embedding in C++
// string literals.
//
// "Compression" here means comment stripping plus whitespace and escape
// normalization, not binary compression. The result of [Compress] is a single
// line that can be placed between double quotes in generated code.
package compress
