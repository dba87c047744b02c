// SPDX-License-Identifier: MIT
//
// File: adapter.go
// Role: Adapter contract, distance selection and the Euclidean implementation.

package geometry

import "fmt"

// Adapter supplies the only geometric queries the topology builders need.
type Adapter interface {
	// Distance returns the exact distance between a and b.
	Distance(a, b Point) float64

	// DistanceSquared returns the squared distance between a and b.
	DistanceSquared(a, b Point) float64

	// RowTotalLength returns the polyline length of the given row.
	RowTotalLength(row int) (float64, error)
}

// DistanceFunc ranks candidate stitches; smaller is nearer.
type DistanceFunc func(a, b Point) float64

// Nearest selects the exact or squared distance of an adapter.
// The squared variant preserves ordering and skips the square root.
func Nearest(a Adapter, precise bool) DistanceFunc {
	if precise {
		return a.Distance
	}

	return a.DistanceSquared
}

// Euclidean implements Adapter over sampled courses with plain vector math.
// Row lengths are computed once at construction.
type Euclidean struct {
	lengths []float64
}

// NewEuclidean builds an adapter for the given courses.
func NewEuclidean(c Courses) *Euclidean {
	lengths := make([]float64, len(c.Rows))
	for i, r := range c.Rows {
		lengths[i] = PolylineLength(r.Points)
	}

	return &Euclidean{lengths: lengths}
}

// Distance returns |b - a|.
func (e *Euclidean) Distance(a, b Point) float64 {
	return b.Sub(a).Length()
}

// DistanceSquared returns |b - a|².
func (e *Euclidean) DistanceSquared(a, b Point) float64 {
	return b.Sub(a).Length2()
}

// RowTotalLength returns the cached polyline length of row.
func (e *Euclidean) RowTotalLength(row int) (float64, error) {
	if row < 0 || row >= len(e.lengths) {
		return 0, fmt.Errorf("RowTotalLength(%d): %w", row, ErrUnknownRow)
	}

	return e.lengths[row], nil
}

// Rows reports how many rows the adapter knows about.
func (e *Euclidean) Rows() int { return len(e.lengths) }

// PolylineLength sums segment lengths along pts.
func PolylineLength(pts []Point) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i].Sub(pts[i-1]).Length()
	}

	return total
}

// LongestRow returns the row with the greatest total length among rows
// [0, rows). Ties keep the lower row id.
func LongestRow(a Adapter, rows int) (int, error) {
	if rows <= 0 {
		return 0, ErrNoRows
	}
	best, bestLen := 0, -1.0
	for r := 0; r < rows; r++ {
		l, err := a.RowTotalLength(r)
		if err != nil {
			return 0, fmt.Errorf("LongestRow: %w", err)
		}
		if l > bestLen {
			best, bestLen = r, l
		}
	}

	return best, nil
}
