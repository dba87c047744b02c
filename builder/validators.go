// Package builder provides validation helpers to enforce
// parameter contracts in the fixture constructors.
package builder

// validateRows ensures a fixture has at least MinRows rows.
func validateRows(method string, rows int) error {
	if rows < MinRows {
		return builderErrorf(method, ErrTooFewRows, "rows=%d (must be ≥ %d)", rows, MinRows)
	}

	return nil
}

// validateStitches ensures every row has at least MinStitches stitches.
func validateStitches(method string, counts ...int) error {
	for i, n := range counts {
		if n < MinStitches {
			return builderErrorf(method, ErrTooFewStitches, "row %d has %d stitches (must be ≥ %d)", i, n, MinStitches)
		}
	}

	return nil
}
