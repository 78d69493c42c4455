package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/linuxmatters/setmerge/internal/analysis"
)

// Spinner frames for indeterminate progress
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// AnalysisModel is the Bubbletea model for analyze-only mode (setmerge
// --analyze-only), which runs feature extraction on both tracks and prints
// their AnalysisSummary without rendering a merge.
type AnalysisModel struct {
	TrackAPath string
	TrackBPath string

	StartTime time.Time

	spinnerIndex int

	SummaryA analysis.Summary
	SummaryB analysis.Summary
	Err      error
	Done     bool

	Width  int
	Height int
}

// tickMsg is sent for spinner/timer animation.
type tickMsg time.Time

// NewAnalysisModel creates a new analyze-only UI model.
func NewAnalysisModel(trackA, trackB string) AnalysisModel {
	return AnalysisModel{
		TrackAPath: trackA,
		TrackBPath: trackB,
		StartTime:  time.Now(),
	}
}

// Init initializes the model.
func (m AnalysisModel) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd returns a command that sends a tick message every 100ms.
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model.
func (m AnalysisModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case tickMsg:
		if !m.Done {
			m.spinnerIndex = (m.spinnerIndex + 1) % len(spinnerFrames)
			return m, tickCmd()
		}
		return m, nil

	case AnalysisDoneMsg:
		m.SummaryA = msg.A
		m.SummaryB = msg.B
		m.Err = msg.Err
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the UI.
func (m AnalysisModel) View() string {
	if m.Width == 0 {
		return "Initializing..."
	}

	var b strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#A40000")).
		Render("setmerge")

	subtitle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Italic(true).
		Render("Analysis Mode")

	b.WriteString(title + " " + subtitle)
	b.WriteString("\n\n")

	fileStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true)

	b.WriteString("Track A: ")
	b.WriteString(fileStyle.Render(filepath.Base(m.TrackAPath)))
	b.WriteString("\n")
	b.WriteString("Track B: ")
	b.WriteString(fileStyle.Render(filepath.Base(m.TrackBPath)))
	b.WriteString("\n\n")

	elapsed := time.Since(m.StartTime)
	spinnerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#A40000"))
	spinner := spinnerStyle.Render(spinnerFrames[m.spinnerIndex])

	if !m.Done {
		b.WriteString(spinner)
		b.WriteString(" Analyzing...")
		b.WriteString(fmt.Sprintf(" [%s]", formatElapsed(elapsed)))
		b.WriteString("\n")
		return b.String()
	}

	if m.Err != nil {
		errStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A40000"))
		b.WriteString(errStyle.Render("Error: " + m.Err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(renderAnalysisTable(m.SummaryA, m.SummaryB))
	return b.String()
}

// formatElapsed formats elapsed time as MM:SS or HH:MM:SS.
func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
