package analysis

import (
	"math"
	"testing"
)

func TestAnalyzeIsTotalOnEmptyBuffer(t *testing.T) {
	s := Analyze(pcmEmptyBuffer())
	assertFinite(t, s)
	if s.BPM != 120 || s.Camelot != "1A" {
		t.Fatalf("expected fallback summary, got bpm=%v camelot=%v", s.BPM, s.Camelot)
	}
}

func TestAnalyzeIsTotalOnSilence(t *testing.T) {
	s := Analyze(silenceBuffer(8000, 1))
	assertFinite(t, s)
}

func TestAnalyzeInvariants(t *testing.T) {
	s := Analyze(clickTrackBuffer(8000, 128, 16))
	assertFinite(t, s)
	if s.BPM < 60 || s.BPM > 200 {
		t.Fatalf("bpm out of range: %v", s.BPM)
	}
	if !camelotPattern.MatchString(s.Camelot) {
		t.Fatalf("camelot %q does not match required pattern", s.Camelot)
	}
	for i := 1; i < len(s.BeatTimes); i++ {
		if s.BeatTimes[i] < s.BeatTimes[i-1] {
			t.Fatalf("beat times not non-decreasing at %d", i)
		}
	}
	for _, idx := range s.DownbeatIndices {
		if idx < 0 || idx >= len(s.BeatTimes) {
			t.Fatalf("downbeat index %d out of range [0,%d)", idx, len(s.BeatTimes))
		}
	}
}

func assertFinite(t *testing.T, s Summary) {
	t.Helper()
	check := func(name string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("%s is not finite: %v", name, v)
		}
	}
	check("bpm", s.BPM)
	check("bpm_alt", s.BPMAlt)
	check("bpm_confidence", s.BPMConfidence)
	check("key_confidence", s.KeyConfidence)
	if s.BPMConfidence < 0 || s.BPMConfidence > 1 {
		t.Fatalf("bpm_confidence out of [0,1]: %v", s.BPMConfidence)
	}
	if s.KeyConfidence < 0 || s.KeyConfidence > 1 {
		t.Fatalf("key_confidence out of [0,1]: %v", s.KeyConfidence)
	}
	for i, v := range s.EnergyCurve {
		check("energy_curve", v)
		_ = i
	}
	for _, v := range s.VocalLikelihood {
		check("vocal_likelihood", v)
		if v < 0 || v > 1 {
			t.Fatalf("vocal_likelihood out of [0,1]: %v", v)
		}
	}
	for _, v := range s.BeatTimes {
		check("beat_times", v)
	}
}
