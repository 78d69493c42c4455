package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/linuxmatters/setmerge/internal/analysis"
	"github.com/linuxmatters/setmerge/internal/cli"
	"github.com/linuxmatters/setmerge/internal/logging"
	"github.com/linuxmatters/setmerge/internal/mastering"
	"github.com/linuxmatters/setmerge/internal/mix"
	"github.com/linuxmatters/setmerge/internal/pcm"
	"github.com/linuxmatters/setmerge/internal/planner"
	"github.com/linuxmatters/setmerge/internal/ui"
)

var version = "0.0.1"

// CLI defines the command-line interface.
type CLI struct {
	Version bool `short:"v" help:"Show version information"`

	TrackA string `arg:"" name:"track-a" help:"First track, WAV/PCM16" type:"existingfile"`
	TrackB string `arg:"" name:"track-b" help:"Second track, WAV/PCM16" type:"existingfile"`

	Out         string  `short:"o" help:"Output WAV path" default:"merged.wav"`
	Mode        string  `help:"Transition mode: festival, club_smooth, neutral" default:"neutral"`
	Crossfade   float64 `help:"Crossfade duration in seconds" default:"4.0"`
	Seed        uint32  `help:"Deterministic noise seed for fx" default:"1"`
	AnalyzeOnly bool    `help:"Only analyze both tracks and print a report; do not render"`
	Logs        bool    `help:"Save a detailed analysis/plan report alongside the output"`
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("setmerge"),
		kong.Description("Beat-matched two-track mix renderer"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if cliArgs.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	mode, err := parseMode(cliArgs.Mode)
	if err != nil {
		cli.PrintError(err.Error())
		ctx.PrintUsage(false)
		os.Exit(1)
	}

	trackA, err := decodeTrack(cliArgs.TrackA)
	if err != nil {
		cli.PrintError(fmt.Sprintf("reading %s: %v", cliArgs.TrackA, err))
		os.Exit(1)
	}
	trackB, err := decodeTrack(cliArgs.TrackB)
	if err != nil {
		cli.PrintError(fmt.Sprintf("reading %s: %v", cliArgs.TrackB, err))
		os.Exit(1)
	}

	if cliArgs.AnalyzeOnly {
		runAnalyzeOnly(cliArgs, trackA, trackB)
		return
	}

	runMerge(cliArgs, mode, trackA, trackB)
}

func parseMode(s string) (planner.Mode, error) {
	switch planner.Mode(s) {
	case planner.ModeFestival, planner.ModeClubSmooth, planner.ModeNeutral:
		return planner.Mode(s), nil
	default:
		return "", fmt.Errorf("unknown --mode %q (want festival, club_smooth, or neutral)", s)
	}
}

func decodeTrack(path string) (pcm.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return pcm.Buffer{}, err
	}
	defer f.Close()
	return pcm.DecodeWAV(f)
}

func runAnalyzeOnly(cliArgs *CLI, trackA, trackB pcm.Buffer) {
	model := ui.NewAnalysisModel(cliArgs.TrackA, cliArgs.TrackB)
	p := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		sa, sb := analysis.AnalyzeBoth(trackA, trackB)
		p.Send(ui.AnalysisDoneMsg{A: sa, B: sb})
	}()

	if _, err := p.Run(); err != nil {
		cli.PrintError(fmt.Sprintf("UI error: %v", err))
		os.Exit(1)
	}
}

func runMerge(cliArgs *CLI, mode planner.Mode, trackA, trackB pcm.Buffer) {
	cfg := mix.DefaultConfig()
	cfg.MixMode = mode
	cfg.CrossfadeSeconds = cliArgs.Crossfade
	cfg.NoiseSeed = cliArgs.Seed

	model := ui.NewModel(cliArgs.TrackA, cliArgs.TrackB, cliArgs.Out)
	p := tea.NewProgram(model, tea.WithAltScreen())

	start := time.Now()
	var analyzeDone time.Time
	go func() {
		result, err := mix.Merge(trackA, trackB, cfg, func(stage mix.Stage, progress float64, detail string) {
			if stage == mix.StageAnalyze && progress == 1 {
				analyzeDone = time.Now()
			}
			p.Send(ui.ProgressMsg{Stage: stage, Progress: progress, Detail: detail})
		})
		if err == nil {
			err = os.WriteFile(cliArgs.Out, result.WAV, 0644)
		}
		p.Send(ui.MergeDoneMsg{Result: result, Err: err})
	}()

	final, err := p.Run()
	if err != nil {
		cli.PrintError(fmt.Sprintf("UI error: %v", err))
		os.Exit(1)
	}

	if !cliArgs.Logs {
		return
	}
	finalModel, ok := final.(ui.Model)
	if !ok || finalModel.Err != nil {
		return
	}
	if err := logging.GenerateReport(buildReportData(cliArgs, finalModel, start, analyzeDone)); err != nil {
		cli.PrintError(fmt.Sprintf("writing report: %v", err))
	}
}

func buildReportData(cliArgs *CLI, m ui.Model, start, analyzeDone time.Time) logging.ReportData {
	result := m.Result
	end := time.Now()
	analyzeTime := analyzeDone.Sub(start)
	renderTime := end.Sub(analyzeDone)

	return logging.ReportData{
		OutputPath:  cliArgs.Out,
		StartTime:   start,
		EndTime:     end,
		AnalyzeTime: analyzeTime,
		RenderTime:  renderTime,
		TrackA:      trackReportFrom(cliArgs.TrackA, result.AnalysisA),
		TrackB:      trackReportFrom(cliArgs.TrackB, result.AnalysisB),
		Plan: logging.PlanReport{
			Style:      string(result.Plan.Style),
			Mode:       string(cliArgs.Mode),
			StartBarA:  result.Plan.StartBarA,
			StartBarB:  result.Plan.StartBarB,
			LengthBars: result.Plan.LengthBars,
			FXCount:    len(result.Plan.FX),
			TempoOps:   len(result.Plan.TempoOps),
			PitchOps:   len(result.Plan.PitchOps),
		},
		OutputLUFS:   mastering.MeasureLUFS(result.Output),
		OutputPeakDB: peakDB(result.Output),
	}
}

func trackReportFrom(path string, s analysis.Summary) logging.TrackReport {
	return logging.TrackReport{
		Path:          path,
		BPM:           s.BPM,
		BPMConfidence: s.BPMConfidence,
		Camelot:       s.Camelot,
		KeyConfidence: s.KeyConfidence,
		BeatCount:     len(s.BeatTimes),
		VocalMean:     meanOf(s.VocalLikelihood),
		EnergyMean:    meanOf(s.EnergyCurve),
	}
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func peakDB(buf pcm.Buffer) float64 {
	var peak float32
	for _, ch := range buf.Channels {
		for _, s := range ch {
			abs := s
			if abs < 0 {
				abs = -abs
			}
			if abs > peak {
				peak = abs
			}
		}
	}
	if peak <= 0 {
		return -120
	}
	return 20 * math.Log10(float64(peak))
}
