package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/linuxmatters/setmerge/internal/analysis"
	"github.com/linuxmatters/setmerge/internal/logging"
	"github.com/linuxmatters/setmerge/internal/mix"
)

// stageLabel returns the human-facing name for a renderer stage.
func stageLabel(s mix.Stage) string {
	switch s {
	case mix.StageAnalyze:
		return "Analyzing tracks"
	case mix.StagePlan:
		return "Planning transition"
	case mix.StageFX:
		return "Applying effects"
	case mix.StageCrossfade:
		return "Crossfading"
	case mix.StageMaster:
		return "Mastering"
	case mix.StageEncode:
		return "Encoding WAV"
	default:
		return string(s)
	}
}

var stageOrder = []mix.Stage{
	mix.StageAnalyze, mix.StagePlan, mix.StageFX,
	mix.StageCrossfade, mix.StageMaster, mix.StageEncode,
}

func stageIndex(s mix.Stage) int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return 0
}

// renderProcessingView renders the main processing view.
func renderProcessingView(m Model) string {
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")
	b.WriteString(renderStagePipeline(m))
	b.WriteString("\n\n")
	b.WriteString(renderOverallProgress(m))

	return b.String()
}

// renderHeader renders the application header.
func renderHeader(m Model) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#A40000")).
		Render("setmerge")

	subtitle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Italic(true).
		Render(fmt.Sprintf("%s + %s", filepath.Base(m.TrackAPath), filepath.Base(m.TrackBPath)))

	return title + "\n" + subtitle
}

// renderStagePipeline shows each renderer stage with a checkmark, an active
// spinner-like marker, or a pending marker, mirroring the six-stage pipeline
// (analyze, plan, fx, crossfade, master, encode).
func renderStagePipeline(m Model) string {
	var b strings.Builder
	current := stageIndex(m.Stage)

	for i, st := range stageOrder {
		switch {
		case i < current:
			icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Render("✓")
			b.WriteString(fmt.Sprintf(" %s %s\n", icon, stageLabel(st)))
		case i == current:
			icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render("⚙")
			b.WriteString(fmt.Sprintf(" %s %s\n", icon, stageLabel(st)))
			b.WriteString(renderFileDetails(m))
		default:
			icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("○")
			b.WriteString(fmt.Sprintf(" %s %s\n", icon, stageLabel(st)))
		}
	}

	return b.String()
}

// renderFileDetails renders detailed progress for the active stage.
func renderFileDetails(m Model) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#A40000")).
		Padding(0, 1).
		Width(60)

	var content strings.Builder
	content.WriteString(renderProgressBar(m.Progress, 40))
	if m.Detail != "" {
		content.WriteString("\n")
		content.WriteString(m.Detail)
	}

	elapsed := m.ElapsedTime.Seconds()
	content.WriteString(fmt.Sprintf("\n⏱  Elapsed: %.1fs", elapsed))

	return box.Render(content.String())
}

// renderProgressBar renders a progress bar.
func renderProgressBar(progress float64, width int) string {
	filled := int(progress * float64(width))
	empty := width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	percentage := int(progress * 100)

	return fmt.Sprintf("%s %d%%", bar, percentage)
}

// renderOverallProgress renders the overall progress footer.
func renderOverallProgress(m Model) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#888888")).
		Padding(0, 1).
		Width(60)

	current := stageIndex(m.Stage) + 1
	content := fmt.Sprintf("Stage %d of %d: %s", current, len(stageOrder), stageLabel(m.Stage))

	return box.Render(content)
}

// renderCompletionSummary renders the final completion summary.
func renderCompletionSummary(m Model) string {
	var b strings.Builder

	if m.Err != nil {
		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A40000")).
			Render("✗ Merge failed")
		b.WriteString(header)
		b.WriteString("\n")
		b.WriteString(m.Err.Error())
		b.WriteString("\n")
		return b.String()
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00AA00")).
		Render("✓ Merge complete")
	b.WriteString(header)
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Plan: %s (bars A=%d B=%d, length=%d)\n",
		m.Result.Plan.Style, m.Result.Plan.StartBarA, m.Result.Plan.StartBarB, m.Result.Plan.LengthBars))
	b.WriteString(fmt.Sprintf("Output: %s\n\n", m.OutputPath))

	b.WriteString(renderAnalysisTable(m.Result.AnalysisA, m.Result.AnalysisB))

	return b.String()
}

// renderAnalysisTable renders both tracks' AnalysisSummary side by side using
// the same MetricTable infrastructure the teacher uses for filter comparison
// reports, with columns repurposed from Input/Filtered/Final to A/B.
func renderAnalysisTable(a, b analysis.Summary) string {
	t := &logging.MetricTable{Headers: []string{"Track A", "Track B"}}
	t.AddRow("BPM", []string{
		fmt.Sprintf("%.1f", a.BPM), fmt.Sprintf("%.1f", b.BPM),
	}, "", "")
	t.AddRow("Key", []string{a.Camelot, b.Camelot}, "", "")
	t.AddRow("Key confidence", []string{
		fmt.Sprintf("%.2f", a.KeyConfidence), fmt.Sprintf("%.2f", b.KeyConfidence),
	}, "", "")
	t.AddRow("Beats detected", []string{
		fmt.Sprintf("%d", len(a.BeatTimes)), fmt.Sprintf("%d", len(b.BeatTimes)),
	}, "", "")
	compatible := fmt.Sprintf("%v", analysis.KeysCompatible(a.Camelot, b.Camelot))
	t.AddRow("Compatible keys", []string{compatible, compatible}, "", "")
	return t.String()
}
