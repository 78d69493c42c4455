package ui

import (
	"github.com/linuxmatters/setmerge/internal/analysis"
	"github.com/linuxmatters/setmerge/internal/mix"
)

// ProgressMsg represents a progress update from mix.Merge's progress callback.
type ProgressMsg struct {
	Stage    mix.Stage
	Progress float64 // 0.0 to 1.0
	Detail   string
}

// MergeDoneMsg carries the final result (or error) once mix.Merge returns.
type MergeDoneMsg struct {
	Result mix.Result
	Err    error
}

// AnalysisDoneMsg carries the pair of analysis summaries for analyze-only mode.
type AnalysisDoneMsg struct {
	A, B analysis.Summary
	Err  error
}
