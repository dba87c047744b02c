// SPDX-License-Identifier: MIT
//
// File: errors.go
// Role: sentinel errors of the topology builder.

package topology

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyNetwork indicates fewer than two rows; no weft edge can exist.
	ErrEmptyNetwork = errors.New("topology: fewer than two rows")

	// ErrNonContiguousRows indicates row numbers that do not run 0, 1, 2, ...
	ErrNonContiguousRows = errors.New("topology: rows are not contiguous from 0")

	// ErrStartRow indicates a propagation start row outside the graph.
	ErrStartRow = errors.New("topology: start row out of range")

	// ErrTopology indicates segmentation was attempted on a graph without weft edges.
	ErrTopology = errors.New("topology: no weft edges")

	// ErrNoEndNodes indicates segmentation was attempted before any end node was marked.
	ErrNoEndNodes = errors.New("topology: no end nodes")
)

// RowError reports the first row that breaks the contiguity precondition.
type RowError struct {
	Index int // position in the sorted row list
	Row   int // row number found there
}

func (e RowError) Error() string {
	return fmt.Sprintf("topology: row %d found at position %d", e.Row, e.Index)
}

// Unwrap lets errors.Is match ErrNonContiguousRows.
func (e RowError) Unwrap() error { return ErrNonContiguousRows }
