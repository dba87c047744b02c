// SPDX-License-Identifier: MIT
//
// File: errors.go
// Role: Stage names and the error that wraps a failed stage.

package pipeline

import "fmt"

// Stage names one step of a run.
type Stage string

// Pipeline stages, in execution order.
const (
	StageConfig     Stage = "config"
	StageBuild      Stage = "build"
	StageSeedLeaves Stage = "seed_leaves"
	StagePropagate  Stage = "propagate_weft"
	StageSeedWarp   Stage = "seed_warp"
	StageSegments   Stage = "assign_segments"
	StageFinalWeft  Stage = "final_weft"
	StageMapping    Stage = "mapping_network"
	StageChains     Stage = "build_chains"
	StageDiagnose   Stage = "diagnose"
)

// StageError reports the stage at which a run failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline: stage %s: %v", e.Stage, e.Err)
}

// Unwrap exposes the stage's own error to errors.Is and errors.As.
func (e *StageError) Unwrap() error { return e.Err }
