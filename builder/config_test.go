// Package builder contains unit tests for the configuration primitives
// (builderConfig and BuilderOption) to ensure correct application and override behavior.
package builder

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
)

func TestNewBuilderConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := newBuilderConfig()
	assert.Equal(t, DefaultSpacing, cfg.spacing)
	assert.Equal(t, DefaultCourseHeight, cfg.courseHeight)
	assert.Equal(t, DefaultRadius, cfg.radius)
	assert.Nil(t, cfg.rng)
	assert.False(t, cfg.isStartRow(0))
}

func TestOptions_LastWins(t *testing.T) {
	t.Parallel()

	cfg := newBuilderConfig(WithSpacing(2), WithSpacing(3), WithCourseHeight(0.5), WithRadius(7), WithStartRows(1, 3))
	assert.Equal(t, 3.0, cfg.spacing)
	assert.Equal(t, 0.5, cfg.courseHeight)
	assert.Equal(t, 7.0, cfg.radius)
	assert.True(t, cfg.isStartRow(1))
	assert.True(t, cfg.isStartRow(3))
	assert.False(t, cfg.isStartRow(2))
}

func TestOptions_PanicOnInvalid(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { WithSpacing(0) })
	assert.Panics(t, func() { WithCourseHeight(-1) })
	assert.Panics(t, func() { WithRadius(0) })
	assert.Panics(t, func() { WithJitter(-0.1) })
	assert.Panics(t, func() { WithStartRows(2, -1) })
}

func TestPerturb(t *testing.T) {
	t.Parallel()

	p := v3.Vec{X: 1, Y: 2, Z: 3}

	// no rng: identity even with jitter set
	assert.Equal(t, p, newBuilderConfig(WithJitter(0.5)).perturb(p))

	a := newBuilderConfig(WithSeed(7), WithJitter(0.25))
	b := newBuilderConfig(WithSeed(7), WithJitter(0.25))
	pa, pb := a.perturb(p), b.perturb(p)
	assert.Equal(t, pa, pb, "same seed, same displacement")
	assert.InDelta(t, p.X, pa.X, 0.25)
	assert.InDelta(t, p.Y, pa.Y, 0.25)
	assert.Equal(t, p.Z, pa.Z)
}
