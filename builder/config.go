// SPDX-License-Identifier: MIT
// Package: knitnet/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Design:
//   • builderConfig is the single source of truth for all builder knobs.
//   • Defaults are deterministic and documented; no globals.
//   • newBuilderConfig applies options in-order (later overrides earlier).
//
// Deterministic defaults:
//   • spacing      = DefaultSpacing
//   • courseHeight = DefaultCourseHeight
//   • radius       = DefaultRadius
//   • startRows    = none
//   • rng          = nil (no jitter unless seeded)
//   • jitter       = 0
package builder

import (
	"math/rand"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/katalvlaran/knitnet/geometry"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	spacing      float64
	courseHeight float64
	radius       float64

	// rows whose nodes are created with the start flag
	startRows map[int]struct{}

	// Optional positional noise for fixtures; applied only when rng != nil.
	rng    *rand.Rand
	jitter float64
}

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		spacing:      DefaultSpacing,
		courseHeight: DefaultCourseHeight,
		radius:       DefaultRadius,
		startRows:    map[int]struct{}{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func (c builderConfig) isStartRow(row int) bool {
	_, ok := c.startRows[row]

	return ok
}

// perturb adds uniform noise in [-jitter, +jitter] to X and Y.
// Deterministic for a fixed seed and call order.
func (c builderConfig) perturb(p geometry.Point) geometry.Point {
	if c.rng == nil || c.jitter == 0 {
		return p
	}
	dx := (c.rng.Float64()*2 - 1) * c.jitter
	dy := (c.rng.Float64()*2 - 1) * c.jitter

	return p.Add(v3.Vec{X: dx, Y: dy})
}
