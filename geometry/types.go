// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Point alias, course input types and sentinel errors.

package geometry

import (
	"errors"
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Point is a stitch position in model space.
type Point = v3.Vec

// Sentinel errors for geometry inputs.
var (
	// ErrNoRows indicates an empty course set.
	ErrNoRows = errors.New("geometry: no rows")

	// ErrShortRow indicates a row with fewer than two points.
	ErrShortRow = errors.New("geometry: row has fewer than two points")

	// ErrCourseHeight indicates a non-positive course height.
	ErrCourseHeight = errors.New("geometry: course height must be positive")

	// ErrUnknownRow indicates a row id outside the adapter's course set.
	ErrUnknownRow = errors.New("geometry: unknown row")
)

// minRowPoints is the smallest row that still has two distinct leaves.
const minRowPoints = 2

// Row is one sampled course: ordered stitch points from first leaf to last leaf.
type Row struct {
	Points []Point `yaml:"points"`
}

// Len returns the number of points on the row.
func (r Row) Len() int { return len(r.Points) }

// Courses is the ordered set of rows consumed once by graph initialisation.
type Courses struct {
	Rows         []Row   `yaml:"rows"`
	CourseHeight float64 `yaml:"course_height"`
}

// Validate checks the structural preconditions shared by every consumer.
func (c Courses) Validate() error {
	if len(c.Rows) == 0 {
		return ErrNoRows
	}
	if c.CourseHeight <= 0 {
		return fmt.Errorf("course height %g: %w", c.CourseHeight, ErrCourseHeight)
	}
	for i, r := range c.Rows {
		if r.Len() < minRowPoints {
			return fmt.Errorf("row %d has %d points: %w", i, r.Len(), ErrShortRow)
		}
	}

	return nil
}

// TotalPoints returns the number of points across all rows.
func (c Courses) TotalPoints() int {
	n := 0
	for _, r := range c.Rows {
		n += r.Len()
	}

	return n
}
