package mix

import (
	"math"
	"testing"

	"github.com/linuxmatters/setmerge/internal/pcm"
	"github.com/linuxmatters/setmerge/internal/planner"
)

func TestMergeRejectsEmptyInput(t *testing.T) {
	cfg := DefaultConfig()
	valid := toneBuffer(8000, 1, 1, 440, 0.5)
	if _, err := Merge(pcm.Buffer{}, valid, cfg, nil); err == nil {
		t.Fatal("expected error for empty A")
	}
	if _, err := Merge(valid, pcm.Buffer{}, cfg, nil); err == nil {
		t.Fatal("expected error for empty B")
	}
}

func TestMergeRejectsBadExportFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExportFormat = ExportMP3_320
	valid := toneBuffer(8000, 1, 1, 440, 0.5)
	if _, err := Merge(valid, valid, cfg, nil); err == nil {
		t.Fatal("expected error for unsupported export format")
	}
}

func TestMergeSilenceSucceedsAndStaysNearSilent(t *testing.T) {
	a := silenceBuffer(8000, 2, 1)
	b := silenceBuffer(8000, 2, 1)
	cfg := DefaultConfig()

	var stages []Stage
	result, err := Merge(a, b, cfg, func(stage Stage, progress float64, detail string) {
		stages = append(stages, stage)
	})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(stages) == 0 {
		t.Fatal("expected progress callback to fire")
	}

	const lsb = 1.0 / (1 << 15)
	for _, ch := range result.Output.Channels {
		for _, s := range ch {
			if math.Abs(float64(s)) > lsb*4 {
				t.Fatalf("expected near-silent output, got %v", s)
			}
		}
	}
}

func TestMergeLengthLaw(t *testing.T) {
	a := toneBuffer(8000, 2, 1, 220, 0.4)
	b := toneBuffer(8000, 2, 1, 330, 0.4)
	cfg := DefaultConfig()
	result, err := Merge(a, b, cfg, nil)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	overlapStart := clampInt(int(float64(result.Plan.StartBarA)*4*(60/result.AnalysisA.BPM)*float64(a.SampleRate)), 0, a.Frames())
	want := overlapStart + b.Frames()
	got := result.Output.Frames()
	if abs(got-want) > 1 {
		t.Fatalf("length law violated: got %d want ~%d", got, want)
	}
}

func TestMergeChannelUpmix(t *testing.T) {
	a := toneBuffer(8000, 1, 1, 220, 0.4)
	b := toneBuffer(8000, 2, 1, 330, 0.4)
	cfg := DefaultConfig()
	result, err := Merge(a, b, cfg, nil)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if result.Output.NumChannels() != 2 {
		t.Fatalf("expected max(1,2)=2 output channels, got %d", result.Output.NumChannels())
	}
}

func TestMergeLimiterBound(t *testing.T) {
	a := toneBuffer(8000, 2, 1, 220, 0.99)
	b := toneBuffer(8000, 2, 1, 330, 0.99)
	cfg := DefaultConfig()
	result, err := Merge(a, b, cfg, nil)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	for _, ch := range result.Output.Channels {
		for _, s := range ch {
			if math.Abs(float64(s)) >= 0.95 {
				t.Fatalf("expected |y| < 0.95 after limiting, got %v", s)
			}
		}
	}
}

func TestMergeWithPlanOverride(t *testing.T) {
	a := toneBuffer(8000, 1, 1, 220, 0.4)
	b := toneBuffer(8000, 1, 1, 330, 0.4)
	cfg := DefaultConfig()
	style := planner.StyleBassSwap
	cfg.PlanOverride = &planner.Override{Style: &style}
	result, err := Merge(a, b, cfg, nil)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if result.Plan.Style != planner.StyleBassSwap {
		t.Fatalf("expected overridden style, got %s", result.Plan.Style)
	}
}

func TestMergeWAVRoundTrips(t *testing.T) {
	a := toneBuffer(8000, 1, 1, 220, 0.4)
	b := toneBuffer(8000, 1, 1, 330, 0.4)
	result, err := Merge(a, b, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(result.WAV) < 44 {
		t.Fatal("expected a non-trivial wav byte stream")
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
