// SPDX-License-Identifier: MIT
//
// File: errors.go
// Role: Sentinel errors of the mapping package.

package mapping

import "errors"

var (
	// ErrNoSegments indicates a Knit Graph without segmented weft edges.
	ErrNoSegments = errors.New("mapping: no segmented weft edges")

	// ErrEmptyChain indicates a trace seeded with no segment.
	ErrEmptyChain = errors.New("mapping: empty seed chain")
)
