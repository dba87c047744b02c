// Package builder defines shared constants used by the course constructors,
// keeping defaults and validation consistent across fixtures.
package builder

//-----------------------------------------------------------------------------
// Builder Method Name Constants
//   used to prefix errors with the constructor name for context.
//-----------------------------------------------------------------------------

const (
	// MethodCourses is the canonical name for the Courses constructor.
	MethodCourses = "Courses"
	// MethodLattice is the canonical name for the Lattice fixture.
	MethodLattice = "Lattice"
	// MethodTube is the canonical name for the Tube fixture.
	MethodTube = "Tube"
	// MethodTaper is the canonical name for the Taper fixture.
	MethodTaper = "Taper"
)

//-----------------------------------------------------------------------------
// Minimum Sizes
//-----------------------------------------------------------------------------

// MinRows is the smallest fixture that still has one pair of adjacent rows.
const MinRows = 2

// MinStitches is the smallest row with two distinct leaves.
const MinStitches = 2

//-----------------------------------------------------------------------------
// Defaults
//-----------------------------------------------------------------------------

// DefaultSpacing is the stitch width used by fixtures.
const DefaultSpacing = 1.0

// DefaultCourseHeight is the course height used by fixtures.
const DefaultCourseHeight = 1.0

// DefaultRadius is the tube radius used by Tube.
const DefaultRadius = 4.0
