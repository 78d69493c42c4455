// Package logging renders post-run analysis and transition-plan reports for
// a completed merge.

package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// writeSection writes a section header with title and dashed underline.
func writeSection(f *os.File, title string) {
	fmt.Fprintln(f, title)
	fmt.Fprintln(f, strings.Repeat("-", len(title)))
}

// TrackReport carries the subset of an analysis.Summary the report needs to
// print, kept independent of the analysis package to avoid an import cycle
// between logging and its callers.
type TrackReport struct {
	Path          string
	BPM           float64
	BPMConfidence float64
	Camelot       string
	KeyConfidence float64
	BeatCount     int
	VocalMean     float64
	EnergyMean    float64
}

// PlanReport carries the subset of a planner.TransitionPlan the report needs to print.
type PlanReport struct {
	Style      string
	Mode       string
	StartBarA  int
	StartBarB  int
	LengthBars int
	FXCount    int
	TempoOps   int
	PitchOps   int
}

// ReportData contains all the information needed to generate a merge report.
type ReportData struct {
	OutputPath   string
	StartTime    time.Time
	EndTime      time.Time
	AnalyzeTime  time.Duration
	RenderTime   time.Duration
	TrackA       TrackReport
	TrackB       TrackReport
	Plan         PlanReport
	OutputLUFS   float64
	OutputPeakDB float64
}

// GenerateReport creates a text report and saves it alongside the output
// file. The report path is the output path with its extension replaced by
// .log.
func GenerateReport(data ReportData) error {
	logPath := strings.TrimSuffix(data.OutputPath, filepath.Ext(data.OutputPath)) + ".log"

	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer f.Close()

	writeReportHeader(f, data)
	writeProcessingSummary(f, data)
	writeTrackTable(f, data.TrackA, data.TrackB)
	writePlanSection(f, data.Plan)
	writeOutputSection(f, data)

	return nil
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}

func writeReportHeader(f *os.File, data ReportData) {
	fmt.Fprintln(f, "setmerge Analysis Report")
	fmt.Fprintln(f, "========================")
	fmt.Fprintf(f, "Track A: %s\n", filepath.Base(data.TrackA.Path))
	fmt.Fprintf(f, "Track B: %s\n", filepath.Base(data.TrackB.Path))
	fmt.Fprintf(f, "Output:  %s\n", filepath.Base(data.OutputPath))
	fmt.Fprintf(f, "Rendered: %s\n", data.EndTime.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintln(f, "")
}

func writeProcessingSummary(f *os.File, data ReportData) {
	writeSection(f, "Processing Summary")
	fmt.Fprintf(f, "Analyze: %s\n", formatDuration(data.AnalyzeTime))
	fmt.Fprintf(f, "Render:  %s\n", formatDuration(data.RenderTime))
	fmt.Fprintf(f, "Total:   %s\n", formatDuration(data.EndTime.Sub(data.StartTime)))
	fmt.Fprintln(f, "")
}

// writeTrackTable outputs a two-column comparison table for the input
// tracks' AnalysisSummary fields, in the teacher's Input/Filtered/Final
// MetricTable style repurposed as Track A/Track B.
func writeTrackTable(f *os.File, a, b TrackReport) {
	writeSection(f, "Track Analysis")

	table := &MetricTable{Headers: []string{"Track A", "Track B"}}
	table.AddRow("BPM", []string{formatMetric(a.BPM, 1), formatMetric(b.BPM, 1)}, "", "")
	table.AddRow("BPM confidence", []string{formatMetric(a.BPMConfidence, 2), formatMetric(b.BPMConfidence, 2)}, "", "")
	table.AddRow("Key", []string{a.Camelot, b.Camelot}, "", "")
	table.AddRow("Key confidence", []string{formatMetric(a.KeyConfidence, 2), formatMetric(b.KeyConfidence, 2)}, "", "")
	table.AddRow("Beats detected", []string{formatMetric(float64(a.BeatCount), 0), formatMetric(float64(b.BeatCount), 0)}, "", "")
	table.AddRow("Mean vocal likelihood", []string{formatMetric(a.VocalMean, 2), formatMetric(b.VocalMean, 2)}, "", "")
	table.AddRow("Mean energy", []string{formatMetric(a.EnergyMean, 2), formatMetric(b.EnergyMean, 2)}, "", "")

	fmt.Fprint(f, table.String())
	fmt.Fprintln(f, "")
}

func writePlanSection(f *os.File, plan PlanReport) {
	writeSection(f, "Transition Plan")
	fmt.Fprintf(f, "Mode:       %s\n", plan.Mode)
	fmt.Fprintf(f, "Style:      %s\n", plan.Style)
	fmt.Fprintf(f, "Start bar:  A=%d B=%d\n", plan.StartBarA, plan.StartBarB)
	fmt.Fprintf(f, "Length:     %d bars\n", plan.LengthBars)
	fmt.Fprintf(f, "FX:         %d scheduled\n", plan.FXCount)
	fmt.Fprintf(f, "Tempo ops:  %d\n", plan.TempoOps)
	fmt.Fprintf(f, "Pitch ops:  %d\n", plan.PitchOps)
	fmt.Fprintln(f, "")
}

func writeOutputSection(f *os.File, data ReportData) {
	writeSection(f, "Output")
	fmt.Fprintf(f, "Loudness:  %.1f LUFS\n", data.OutputLUFS)
	fmt.Fprintf(f, "Peak:      %.1f dBFS\n", data.OutputPeakDB)
	fmt.Fprintln(f, "")
}
