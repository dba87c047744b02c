package pipeline_test

import (
	"context"
	"errors"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/knitnet/builder"
	"github.com/katalvlaran/knitnet/config"
	"github.com/katalvlaran/knitnet/core"
	"github.com/katalvlaran/knitnet/geometry"
	"github.com/katalvlaran/knitnet/mapping"
	"github.com/katalvlaran/knitnet/metrics"
	"github.com/katalvlaran/knitnet/pipeline"
	"github.com/katalvlaran/knitnet/topology"
)

func lattice(t *testing.T, rows, cols int) geometry.Courses {
	t.Helper()
	c, err := builder.LatticeCourses(rows, cols)
	require.NoError(t, err)
	return c
}

func counter(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func chainKeys(cs []mapping.Chain) []mapping.ChainKey {
	out := make([]mapping.ChainKey, len(cs))
	for i, c := range cs {
		out[i] = c.Key
	}
	return out
}

func TestRun_Lattice(t *testing.T) {
	reg := metrics.NewRegistry()
	res, err := pipeline.Run(context.Background(), lattice(t, 3, 4), nil, pipeline.WithMetrics(reg))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, res.RunID)
	assert.Len(t, res.Segments.Segments, 4)
	assert.Equal(t, 4, res.Mapping.Stats().Segments)
	assert.Equal(t, []mapping.ChainKey{{Start: 0, End: 8}, {Start: 1, End: 9}, {Start: 2, End: 10}, {Start: 3, End: 11}},
		chainKeys(res.Chains.Source))
	assert.Len(t, res.Chains.Target, 4)

	assert.True(t, res.Diagnostics.Empty())
	assert.Equal(t, 4, res.Diagnostics.WeftComponents, "one weft column per wale")

	assert.Contains(t, res.Durations, pipeline.StageChains)
	assert.NotContains(t, res.Durations, pipeline.StageFinalWeft)

	assert.Equal(t, 1.0, counter(t, reg.RunsTotal.WithLabelValues(metrics.StatusSuccess)))
	assert.Equal(t, 4.0, counter(t, reg.ChainsTotal.WithLabelValues("source", "terminated")))
	assert.Equal(t, 1.0, counter(t, reg.StagesTotal.WithLabelValues(string(pipeline.StageMapping), metrics.StatusSuccess)))
}

func TestRun_FinalWeft(t *testing.T) {
	res, err := pipeline.Run(context.Background(), lattice(t, 4, 3), nil,
		pipeline.WithMetrics(metrics.NewRegistry()), pipeline.WithFinalWeft())
	require.NoError(t, err)

	assert.Contains(t, res.Durations, pipeline.StageFinalWeft)
	for _, e := range res.Graph.WeftEdges() {
		assert.NotNil(t, e.Segment, "weft edge %s", e.Key)
	}
}

func TestRun_Config(t *testing.T) {
	cfg := config.Default()
	cfg.Topology.MaxConnections = 2
	row := 1
	cfg.Topology.StartRow = &row
	cfg.Topology.LeastConnected = true

	res, err := pipeline.Run(context.Background(), lattice(t, 3, 4), cfg, pipeline.WithMetrics(metrics.NewRegistry()))
	require.NoError(t, err)
	assert.Len(t, res.Segments.Segments, 4)
}

func TestRun_Errors(t *testing.T) {
	single := geometry.Courses{
		CourseHeight: 1,
		Rows:         []geometry.Row{{Points: []geometry.Point{v3.Vec{}, v3.Vec{X: 1}}}},
	}
	badStart := config.Default()
	row := 5
	badStart.Topology.StartRow = &row
	badConfig := config.Default()
	badConfig.Topology.MaxConnections = 0
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	cases := []struct {
		name    string
		ctx     context.Context
		courses geometry.Courses
		cfg     *config.Config
		stage   pipeline.Stage
		want    error
	}{
		{"no rows", context.Background(), geometry.Courses{CourseHeight: 1}, nil, pipeline.StageBuild, geometry.ErrNoRows},
		{"single row", context.Background(), single, nil, pipeline.StageSeedLeaves, topology.ErrEmptyNetwork},
		{"start row", context.Background(), lattice(t, 3, 4), badStart, pipeline.StagePropagate, topology.ErrStartRow},
		{"cancelled", cancelled, lattice(t, 3, 4), nil, pipeline.StageConfig, context.Canceled},
		{"invalid config", context.Background(), lattice(t, 3, 4), badConfig, pipeline.StageConfig, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := metrics.NewRegistry()
			res, err := pipeline.Run(tc.ctx, tc.courses, tc.cfg, pipeline.WithMetrics(reg))
			require.Error(t, err)
			assert.Nil(t, res)

			var se *pipeline.StageError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tc.stage, se.Stage)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
			}
			assert.Equal(t, 1.0, counter(t, reg.RunsTotal.WithLabelValues(metrics.StatusError)))
		})
	}
}

func TestRun_State(t *testing.T) {
	st := pipeline.NewState()
	reg := metrics.NewRegistry()
	courses := lattice(t, 3, 4)

	first, err := pipeline.Run(context.Background(), courses, nil, pipeline.WithMetrics(reg), pipeline.WithState(st, "swatch"))
	require.NoError(t, err)
	again, err := pipeline.Run(context.Background(), courses, nil, pipeline.WithMetrics(reg), pipeline.WithState(st, "swatch"))
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, st.Len())
	assert.Equal(t, 1.0, counter(t, reg.RunsTotal.WithLabelValues(metrics.StatusSuccess)))

	st.Reset("swatch")
	fresh, err := pipeline.Run(context.Background(), courses, nil, pipeline.WithMetrics(reg), pipeline.WithState(st, "swatch"))
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, fresh.RunID)

	// failed runs are not recorded
	_, err = pipeline.Run(context.Background(), geometry.Courses{}, nil, pipeline.WithMetrics(reg), pipeline.WithState(st, "broken"))
	require.Error(t, err)
	_, ok := st.Completed("broken")
	assert.False(t, ok)
}

func TestRun_ZeroState(t *testing.T) {
	var st pipeline.State
	courses := lattice(t, 3, 4)

	first, err := pipeline.Run(context.Background(), courses, nil,
		pipeline.WithMetrics(metrics.NewRegistry()), pipeline.WithState(&st, "swatch"))
	require.NoError(t, err)
	assert.Equal(t, 1, st.Len())

	got, ok := st.Completed("swatch")
	require.True(t, ok)
	assert.Same(t, first, got)
}

func TestRun_NilContext(t *testing.T) {
	var ctx context.Context
	res, err := pipeline.Run(ctx, lattice(t, 3, 4), nil, pipeline.WithMetrics(metrics.NewRegistry()))
	require.NoError(t, err)
	assert.Len(t, res.Chains.Source, 4)
}

func TestRun_Saturated(t *testing.T) {
	c, err := builder.TaperCourses([]int{5, 3, 5})
	require.NoError(t, err)
	cfg := config.Default()
	cfg.Topology.MaxConnections = 3
	reg := metrics.NewRegistry()

	res, err := pipeline.Run(context.Background(), c, cfg, pipeline.WithMetrics(reg))
	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{11}, res.Diagnostics.Saturated)
	assert.False(t, res.Diagnostics.Empty())
	assert.Equal(t, 1.0, counter(t, reg.AnomaliesTotal.WithLabelValues(pipeline.AnomalySaturatedNode)))
	for _, n := range res.Graph.Nodes() {
		edges, err := res.Graph.EdgesIncidentTo(n.ID, core.RoleWeft)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(edges), 3, "weft edges of node %d", n.ID)
	}
}

func TestRun_Deterministic(t *testing.T) {
	c, err := builder.TaperCourses([]int{5, 3, 5})
	require.NoError(t, err)

	a, err := pipeline.Run(context.Background(), c, nil, pipeline.WithMetrics(metrics.NewRegistry()))
	require.NoError(t, err)
	b, err := pipeline.Run(context.Background(), c, nil, pipeline.WithMetrics(metrics.NewRegistry()))
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, a.Segments.Segments, b.Segments.Segments)
	assert.Equal(t, chainKeys(a.Chains.Source), chainKeys(b.Chains.Source))
	assert.Equal(t, chainKeys(a.Chains.Target), chainKeys(b.Chains.Target))
	assert.Equal(t, a.Diagnostics.Counts(), b.Diagnostics.Counts())
}
