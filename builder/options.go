// SPDX-License-Identifier: MIT
// Package: knitnet/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves never panic.
//   • Determinism is explicit: jitter only applies after WithSeed.
package builder

import "math/rand"

// BuilderOption customizes the behavior of a constructor by mutating a
// builderConfig instance before graph construction begins.
type BuilderOption func(*builderConfig)

// WithStartRows marks every node on the given rows with the start flag.
// Panics on a negative row.
func WithStartRows(rows ...int) BuilderOption {
	for _, r := range rows {
		if r < 0 {
			panic("builder: WithStartRows(row<0)")
		}
	}

	return func(c *builderConfig) {
		for _, r := range rows {
			c.startRows[r] = struct{}{}
		}
	}
}

// WithSpacing sets the stitch width used by fixtures. Panics if s <= 0.
func WithSpacing(s float64) BuilderOption {
	if s <= 0 {
		panic("builder: WithSpacing(s<=0)")
	}

	return func(c *builderConfig) { c.spacing = s }
}

// WithCourseHeight sets the distance between fixture rows. Panics if h <= 0.
func WithCourseHeight(h float64) BuilderOption {
	if h <= 0 {
		panic("builder: WithCourseHeight(h<=0)")
	}

	return func(c *builderConfig) { c.courseHeight = h }
}

// WithRadius sets the tube radius used by Tube. Panics if r <= 0.
func WithRadius(r float64) BuilderOption {
	if r <= 0 {
		panic("builder: WithRadius(r<=0)")
	}

	return func(c *builderConfig) { c.radius = r }
}

// WithSeed creates a new *rand.Rand with the given seed for fixture jitter.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithJitter sets the maximum in-plane displacement applied to fixture points
// (requires WithSeed). Panics if j < 0.
func WithJitter(j float64) BuilderOption {
	if j < 0 {
		panic("builder: WithJitter(j<0)")
	}

	return func(c *builderConfig) { c.jitter = j }
}
