package planner

import (
	"testing"

	"github.com/linuxmatters/setmerge/internal/analysis"
)

func fallbackSummary() analysis.Summary {
	return analysis.Fallback()
}

func summaryWith(bpm float64, camelot string, semitone int, vocal []float64, energy []float64) analysis.Summary {
	s := analysis.Fallback()
	s.BPM = bpm
	s.Camelot = camelot
	s.KeySemitone = semitone
	s.VocalLikelihood = vocal
	s.EnergyCurve = energy
	return s
}

func TestPlanIsPure(t *testing.T) {
	a := summaryWith(120, "8B", 0, []float64{0.1}, []float64{0.2})
	b := summaryWith(120, "8B", 0, []float64{0.1}, []float64{0.2})
	p1 := Plan(a, b, ModeNeutral)
	p2 := Plan(a, b, ModeNeutral)
	if p1.Style != p2.Style || p1.LengthBars != p2.LengthBars {
		t.Fatalf("plan is not deterministic: %+v vs %+v", p1, p2)
	}
}

func TestSameTrackTwiceIsEQMorph(t *testing.T) {
	a := fallbackSummary()
	b := fallbackSummary()
	p := Plan(a, b, ModeNeutral)
	if p.Style != StyleEQMorph {
		t.Fatalf("expected eq_morph, got %s", p.Style)
	}
	if p.LengthBars != 8 {
		t.Fatalf("expected length_bars=8 for neutral mode, got %d", p.LengthBars)
	}
	if len(p.PitchOps) != 0 || len(p.TempoOps) != 0 {
		t.Fatalf("expected no pitch/tempo ops for identical tracks")
	}

	pClub := Plan(a, b, ModeClubSmooth)
	if pClub.LengthBars != 16 {
		t.Fatalf("expected length_bars=16 for club_smooth mode, got %d", pClub.LengthBars)
	}
}

func TestHardDownbeatOnTempoMismatch(t *testing.T) {
	a := summaryWith(120, "8B", 0, nil, nil)
	b := summaryWith(128, "8B", 0, nil, nil)
	p := Plan(a, b, ModeNeutral)
	if p.Style != StyleHardDownbeat {
		t.Fatalf("expected hard_downbeat, got %s", p.Style)
	}
	if len(p.FX) != 1 || p.FX[0].Type != FXNoiseSweep || p.FX[0].AtBeat != -2 {
		t.Fatalf("expected one sweep FX at beat -2, got %+v", p.FX)
	}
}

func TestHardDownbeatIncompatibleKeysNoPitchShift(t *testing.T) {
	// 1A and 7A are 6 wheel-steps apart: incompatible and beyond shift range.
	a := summaryWith(120, "1A", 8, nil, nil)
	b := summaryWith(140, "7A", 2, nil, nil)
	p := Plan(a, b, ModeNeutral)
	if p.Style != StyleHardDownbeat {
		t.Fatalf("expected hard_downbeat, got %s", p.Style)
	}
	if len(p.PitchOps) != 0 {
		t.Fatalf("expected no pitch shift beyond wheel distance 1, got %+v", p.PitchOps)
	}
}

func TestFestivalStutterEntryWithReverseVerb(t *testing.T) {
	a := summaryWith(124, "1A", 8, nil, []float64{0.2})
	b := summaryWith(126, "7A", 2, nil, []float64{0.8})
	p := Plan(a, b, ModeFestival)
	if p.Style != StyleStutterEntry {
		t.Fatalf("expected stutter_entry, got %s", p.Style)
	}
	var hasStutter, hasReverseVerb bool
	for _, fx := range p.FX {
		if fx.Type == FXStutter && fx.AtBeat == -4 {
			hasStutter = true
		}
		if fx.Type == FXReverseVerb && fx.AtBeat == -4 {
			hasReverseVerb = true
		}
	}
	if !hasStutter || !hasReverseVerb {
		t.Fatalf("expected both stutter and reverseVerb FX, got %+v", p.FX)
	}
}

func TestVocalAwareWinsFirst(t *testing.T) {
	a := summaryWith(120, "8B", 0, []float64{0.5, 0.6}, nil)
	b := summaryWith(120, "8B", 0, []float64{0.4, 0.5}, nil)
	p := Plan(a, b, ModeNeutral)
	if p.Style != StyleVocalAware {
		t.Fatalf("expected vocal_aware, got %s", p.Style)
	}
	if p.LengthBars != 4 {
		t.Fatalf("expected length_bars=4, got %d", p.LengthBars)
	}
}

func TestApplyOverrideReplacesFieldsOnly(t *testing.T) {
	base := TransitionPlan{Style: StyleEQMorph, StartBarA: 3, LengthBars: 8}
	style := StyleBassSwap
	out := Apply(base, &Override{Style: &style})
	if out.Style != StyleBassSwap {
		t.Fatalf("expected overridden style, got %s", out.Style)
	}
	if out.StartBarA != 3 || out.LengthBars != 8 {
		t.Fatalf("expected untouched fields to survive, got %+v", out)
	}
}

func TestApplyOverrideNilIsNoop(t *testing.T) {
	base := TransitionPlan{Style: StyleEQMorph}
	if out := Apply(base, nil); out.Style != StyleEQMorph {
		t.Fatalf("nil override should be a no-op")
	}
}
