package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGenerateReportWritesLogAlongsideOutput(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "merged.wav")

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	data := ReportData{
		OutputPath:  outPath,
		StartTime:   start,
		EndTime:     start.Add(2 * time.Second),
		AnalyzeTime: 500 * time.Millisecond,
		RenderTime:  1500 * time.Millisecond,
		TrackA: TrackReport{
			Path: "a.wav", BPM: 124, BPMConfidence: 0.9, Camelot: "8A",
			KeyConfidence: 0.8, BeatCount: 200, VocalMean: 0.4, EnergyMean: 0.6,
		},
		TrackB: TrackReport{
			Path: "b.wav", BPM: 126, BPMConfidence: 0.85, Camelot: "9A",
			KeyConfidence: 0.7, BeatCount: 210, VocalMean: 0.3, EnergyMean: 0.5,
		},
		Plan: PlanReport{
			Style: "hard_downbeat", Mode: "club_smooth",
			StartBarA: 12, StartBarB: 0, LengthBars: 4, FXCount: 1,
		},
		OutputLUFS:   -14.0,
		OutputPeakDB: -1.0,
	}

	if err := GenerateReport(data); err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}

	logPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".log"
	contents, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading generated report: %v", err)
	}

	text := string(contents)
	for _, want := range []string{"124.0", "126.0", "8A", "9A", "hard_downbeat", "club_smooth", "-14.0"} {
		if !strings.Contains(text, want) {
			t.Fatalf("report missing expected content %q:\n%s", want, text)
		}
	}
}
