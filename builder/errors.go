// SPDX-License-Identifier: MIT
// Package: knitnet/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables (package-level) are exposed.
//   • Callers use errors.Is(err, ErrX) to branch on semantics.
//   • Implementations attach context with `%w`; geometry and core sentinels
//     pass through unchanged so errors.Is keeps working across packages.
//   • Algorithms do not panic at runtime; validation panics are confined to
//     option constructors (WithX...).

package builder

import (
	"errors"
	"fmt"
)

// ErrTooFewRows indicates a fixture asked for fewer rows than it can build.
var ErrTooFewRows = errors.New("builder: too few rows")

// ErrTooFewStitches indicates a row with fewer stitches than two leaves need.
var ErrTooFewStitches = errors.New("builder: too few stitches per row")

// ErrConstructFailed indicates a nil constructor or nil graph was handed to
// the orchestrator.
var ErrConstructFailed = errors.New("builder: construction failed")

// builderErrorf wraps a sentinel with the given method context.
// It returns an error of the form "<Method>: <formatted message>: <sentinel>".
func builderErrorf(method string, sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), sentinel)
}
