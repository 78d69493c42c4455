package mix

import (
	"github.com/linuxmatters/setmerge/internal/analysis"
	"github.com/linuxmatters/setmerge/internal/pcm"
	"github.com/linuxmatters/setmerge/internal/planner"
)

// Stage names one of the six renderer stages the progress callback reports
// against.
type Stage string

const (
	StageAnalyze   Stage = "analyze"
	StagePlan      Stage = "plan"
	StageFX        Stage = "fx"
	StageCrossfade Stage = "crossfade"
	StageMaster    Stage = "master"
	StageEncode    Stage = "encode"
)

// ProgressFunc mirrors the teacher's per-pass progress callback shape,
// generalized to the renderer's six stages.
type ProgressFunc func(stage Stage, progress float64, detail string)

func report(fn ProgressFunc, stage Stage, progress float64, detail string) {
	if fn != nil {
		fn(stage, progress, detail)
	}
}

// Result is the merge() invocation's success value: the mastered output,
// its encoded WAV bytes, the plan actually executed (post-override), and
// both track analyses.
type Result struct {
	Output   pcm.Buffer
	WAV      []byte
	Plan     planner.TransitionPlan
	AnalysisA analysis.Summary
	AnalysisB analysis.Summary
}
