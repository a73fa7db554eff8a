// Package oclerrors provides error definitions shared by the header generator.
//
// This package defines standardized sentinel errors so callers can classify
// failures with [errors.Is] regardless of which package wrapped them.
package oclerrors
