// SPDX-License-Identifier: MIT
//
// File: pipeline.go
// Role: Run orchestration, stage timing, logging and metrics.

package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/katalvlaran/knitnet/builder"
	"github.com/katalvlaran/knitnet/config"
	"github.com/katalvlaran/knitnet/core"
	"github.com/katalvlaran/knitnet/geometry"
	"github.com/katalvlaran/knitnet/mapping"
	"github.com/katalvlaran/knitnet/metrics"
	"github.com/katalvlaran/knitnet/topology"
)

// Result holds everything one run produced.
type Result struct {
	RunID       uuid.UUID
	Graph       *core.Graph
	Mapping     *core.Graph
	Chains      *mapping.Chains
	Segments    *topology.SegmentReport
	Diagnostics Diagnostics
	Durations   map[Stage]time.Duration
}

// Option configures Run.
type Option func(*runOptions)

type runOptions struct {
	state     *State
	key       string
	metrics   *metrics.Registry
	builder   []builder.BuilderOption
	finalWeft bool
}

// WithState records the run under key in st. A key that already completed
// returns the recorded result without running again; st.Reset(key) clears it.
func WithState(st *State, key string) Option {
	return func(o *runOptions) {
		o.state, o.key = st, key
	}
}

// WithMetrics records into reg instead of metrics.DefaultRegistry().
func WithMetrics(reg *metrics.Registry) Option {
	return func(o *runOptions) {
		if reg != nil {
			o.metrics = reg
		}
	}
}

// WithBuilderOptions passes options to graph initialisation.
func WithBuilderOptions(opts ...builder.BuilderOption) Option {
	return func(o *runOptions) {
		o.builder = append(o.builder, opts...)
	}
}

// WithFinalWeft runs topology.ConnectSegmentNodes after segmentation.
func WithFinalWeft() Option {
	return func(o *runOptions) { o.finalWeft = true }
}

// runner carries one run through its stages.
type runner struct {
	ctx       context.Context
	reg       *metrics.Registry
	res       *Result
	saturated []core.NodeID
}

// stage times fn, logs it and records it in metrics.
func (r *runner) stage(name Stage, fn func() error) error {
	if err := r.ctx.Err(); err != nil {
		r.reg.RecordStage(string(name), 0, err)
		return &StageError{Stage: name, Err: err}
	}

	start := time.Now()
	err := fn()
	d := time.Since(start)
	r.res.Durations[name] = d
	r.reg.RecordStage(string(name), d, err)
	if err != nil {
		return &StageError{Stage: name, Err: err}
	}
	klog.V(1).Infof("run %s: %s done in %v", r.res.RunID, name, d)

	return nil
}

// Run derives the Knit Graph of courses, its mapping network and chains.
// A nil cfg means config.Default(); a nil ctx means context.Background().
//
// Errors: *StageError wrapping the failing stage's error; errors.Is sees the
// underlying sentinel (e.g. topology.ErrStartRow, context.Canceled).
func Run(ctx context.Context, courses geometry.Courses, cfg *config.Config, opts ...Option) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	o := runOptions{metrics: metrics.DefaultRegistry()}
	for _, fn := range opts {
		fn(&o)
	}
	if o.state != nil {
		if res, ok := o.state.Completed(o.key); ok {
			klog.V(1).Infof("pipeline: %q already ran as %s", o.key, res.RunID)
			return res, nil
		}
	}
	if cfg == nil {
		cfg = config.Default()
	}

	r := &runner{
		ctx: ctx,
		reg: o.metrics,
		res: &Result{RunID: uuid.New(), Durations: make(map[Stage]time.Duration)},
	}
	klog.Infof("run %s: %d rows, %d points", r.res.RunID, len(courses.Rows), courses.TotalPoints())

	err := r.run(courses, cfg, o)
	r.reg.RecordRun(err)
	if err != nil {
		klog.Errorf("run %s: %v", r.res.RunID, err)
		return nil, errors.Wrapf(err, "run %s", r.res.RunID)
	}

	if o.state != nil {
		o.state.record(o.key, r.res)
	}
	klog.Infof("run %s: %s, %d segments, %d source / %d target chains",
		r.res.RunID, r.res.Graph, len(r.res.Segments.Segments), len(r.res.Chains.Source), len(r.res.Chains.Target))

	return r.res, nil
}

func (r *runner) run(courses geometry.Courses, cfg *config.Config, o runOptions) error {
	res := r.res
	var geo *geometry.Euclidean

	err := r.stage(StageConfig, cfg.Validate)
	if err != nil {
		return err
	}
	if err = r.stage(StageBuild, func() (err error) {
		res.Graph, geo, err = builder.FromCourses(courses, o.builder...)
		return err
	}); err != nil {
		return err
	}
	if err = r.stage(StageSeedLeaves, func() error {
		return topology.SeedLeafConnections(res.Graph)
	}); err != nil {
		return err
	}
	if err = r.stage(StagePropagate, func() error {
		topts := append(topologyOptions(cfg), topology.WithOnSaturated(func(n core.Node, _ int) {
			r.saturated = append(r.saturated, n.ID)
		}))
		return topology.PropagateWeftEdges(res.Graph, geo, topts...)
	}); err != nil {
		return err
	}
	if err = r.stage(StageSeedWarp, func() error {
		return topology.SeedWarpEdges(res.Graph, nil)
	}); err != nil {
		return err
	}
	if err = r.stage(StageSegments, func() (err error) {
		res.Segments, err = topology.AssignSegments(res.Graph)
		return err
	}); err != nil {
		return err
	}
	if o.finalWeft {
		if err = r.stage(StageFinalWeft, func() error {
			return topology.ConnectSegmentNodes(res.Graph)
		}); err != nil {
			return err
		}
	}
	if err = r.stage(StageMapping, func() (err error) {
		res.Mapping, err = mapping.Build(res.Graph)
		return err
	}); err != nil {
		return err
	}
	if err = r.stage(StageChains, func() (err error) {
		res.Chains, err = mapping.BuildChains(res.Mapping, mapping.WithContext(r.ctx))
		return err
	}); err != nil {
		return err
	}
	if err = r.stage(StageDiagnose, func() (err error) {
		res.Diagnostics, err = diagnose(r.ctx, res.Graph, res.Segments, res.Chains, r.saturated)
		return err
	}); err != nil {
		return err
	}

	r.record()

	return nil
}

// record publishes graph sizes, chain counts and anomalies.
func (r *runner) record() {
	res := r.res
	r.reg.UpdateGraph("knit", res.Graph.Stats())
	r.reg.UpdateGraph("mapping", res.Mapping.Stats())
	for kind, list := range map[string][]mapping.Chain{"source": res.Chains.Source, "target": res.Chains.Target} {
		dangling := 0
		for _, ch := range list {
			if ch.Dangling {
				dangling++
			}
		}
		r.reg.RecordChains(kind, len(list)-dangling, dangling)
	}
	for kind, n := range res.Diagnostics.Counts() {
		r.reg.RecordAnomalies(kind, n)
	}
}

// topologyOptions maps the validated configuration onto propagation options.
func topologyOptions(cfg *config.Config) []topology.Option {
	t := cfg.Topology
	opts := []topology.Option{
		topology.WithMaxConnections(t.MaxConnections),
		topology.WithPrecise(t.Precise),
	}
	if t.ForceContinuousStart {
		opts = append(opts, topology.WithForceContinuousStart())
	}
	if t.ForceContinuousEnd {
		opts = append(opts, topology.WithForceContinuousEnd())
	}
	if t.LeastConnected {
		opts = append(opts, topology.WithLeastConnected())
	}
	if t.StartRow != nil {
		opts = append(opts, topology.WithStartRow(*t.StartRow))
	}

	return opts
}
