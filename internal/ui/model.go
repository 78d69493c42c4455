// Package ui provides the Bubbletea terminal user interface for setmerge.
package ui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/linuxmatters/setmerge/internal/mix"
)

var debugLog *os.File

func init() {
	debugLog, _ = os.OpenFile("setmerge-ui-debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func log(format string, args ...interface{}) {
	if debugLog != nil {
		fmt.Fprintf(debugLog, format+"\n", args...)
	}
}

// Model is the Bubbletea model for the merge progress UI. Unlike the
// teacher's queue-of-files model, setmerge always processes exactly one
// pair of tracks, so there's a single stage/progress pair to track rather
// than a per-file slice.
type Model struct {
	TrackAPath string
	TrackBPath string
	OutputPath string

	Stage    mix.Stage
	Progress float64
	Detail   string

	StartTime   time.Time
	ElapsedTime time.Duration
	Done        bool

	Result mix.Result
	Err    error

	// ProgressChan is polled by waitForProgress. cmd/setmerge delivers
	// ProgressMsg and MergeDoneMsg with tea.Program.Send instead, so nothing
	// in this module writes to it.
	ProgressChan chan tea.Msg

	Width  int
	Height int
}

// NewModel creates a new UI model for merging trackA into trackB, writing to outputPath.
func NewModel(trackA, trackB, outputPath string) Model {
	return Model{
		TrackAPath:   trackA,
		TrackBPath:   trackB,
		OutputPath:   outputPath,
		Stage:        mix.StageAnalyze,
		StartTime:    time.Now(),
		ProgressChan: make(chan tea.Msg, 100),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return waitForProgress(m.ProgressChan)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		log("[DEBUG] Window size: %dx%d", m.Width, m.Height)

	case ProgressMsg:
		log("[DEBUG] ProgressMsg received: stage=%s %.1f%% %s", msg.Stage, msg.Progress*100, msg.Detail)
		m.Stage = msg.Stage
		m.Progress = msg.Progress
		m.Detail = msg.Detail
		m.ElapsedTime = time.Since(m.StartTime)
		return m, waitForProgress(m.ProgressChan)

	case MergeDoneMsg:
		log("[DEBUG] MergeDoneMsg received: err=%v", msg.Err)
		m.Result = msg.Result
		m.Err = msg.Err
		m.Done = true
		m.ElapsedTime = time.Since(m.StartTime)
		return m, tea.Quit
	}

	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	if m.Width == 0 {
		return fmt.Sprintf("Initializing...\nA: %s\nB: %s\n", m.TrackAPath, m.TrackBPath)
	}

	if m.Done {
		return renderCompletionSummary(m)
	}

	return renderProcessingView(m)
}

// waitForProgress creates a command that waits for progress messages.
func waitForProgress(progressChan chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-progressChan
	}
}
