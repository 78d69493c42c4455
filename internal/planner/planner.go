package planner

import (
	"math"

	"github.com/linuxmatters/setmerge/internal/analysis"
)

// Style-selection thresholds, named per the teacher's adaptive.go
// convention of one constant per tunable rather than inline literals.
const (
	vocalBothThreshold = 0.3

	tempoDeltaTight     = 0.02
	tempoDeltaModerate  = 0.06

	energyMismatchThreshold = 0.3

	sweepAtBeat        = -2.0
	sweepDuration       = 1.0
	stutterAtBeat      = -4.0
	stutterDivision    = 8.0
	stutterBars        = 1.0
	reverseVerbAtBeat  = -4.0
	reverseVerbDuration = 2.0

	pitchShiftMaxWheelDistance = 1

	startBarAFraction = 0.75
)

// Plan is the pure decision procedure over two analyses and a mode, per
// §4.3's style-selection table.
func Plan(a, b analysis.Summary, mode Mode) TransitionPlan {
	tempoDelta := tempoDelta(a.BPM, b.BPM)
	keysCompatible := analysis.KeysCompatible(a.Camelot, b.Camelot)
	avgVocalA := mean(a.VocalLikelihood)
	avgVocalB := mean(b.VocalLikelihood)
	bothVocal := math.Min(avgVocalA, avgVocalB) > vocalBothThreshold
	energyMismatch := energyMismatch(a.EnergyCurve, b.EnergyCurve)
	bLouder := lastOrZero(b.EnergyCurve) > lastOrZero(a.EnergyCurve)

	style, lengthBars := selectStyle(bothVocal, keysCompatible, tempoDelta, mode)

	plan := TransitionPlan{
		Style:      style,
		StartBarA:  int(math.Floor(startBarAFraction * float64(BarsIn(a)))),
		StartBarB:  0,
		LengthBars: lengthBars,
	}

	plan.FX = buildFX(style, mode, energyMismatch, bLouder)
	plan.TempoOps = buildTempoOps(a.BPM, b.BPM, tempoDelta)
	plan.PitchOps = buildPitchOps(a.Camelot, b.Camelot, a.KeySemitone, b.KeySemitone, keysCompatible)

	return plan
}

func selectStyle(bothVocal, keysCompatible bool, tempoDelta float64, mode Mode) (Style, int) {
	switch {
	case bothVocal:
		return StyleVocalAware, 4
	case !keysCompatible && tempoDelta > tempoDeltaModerate:
		return StyleHardDownbeat, 4
	case keysCompatible && tempoDelta < tempoDeltaTight:
		if mode == ModeClubSmooth {
			return StyleEQMorph, 16
		}
		return StyleEQMorph, 8
	case keysCompatible && tempoDelta < tempoDeltaModerate:
		return StyleBassSwap, 8
	default:
		if mode == ModeFestival {
			return StyleStutterEntry, 4
		}
		return StyleHardDownbeat, 4
	}
}

func buildFX(style Style, mode Mode, energyMismatch, bLouder bool) []FX {
	var fx []FX
	if style == StyleHardDownbeat {
		fx = append(fx, FX{Type: FXNoiseSweep, AtBeat: sweepAtBeat, Params: map[string]float64{"duration": sweepDuration}})
	}
	if style == StyleStutterEntry && mode == ModeFestival {
		fx = append(fx, FX{Type: FXStutter, AtBeat: stutterAtBeat, Params: map[string]float64{"division": stutterDivision, "bars": stutterBars}})
	}
	if energyMismatch && bLouder && mode == ModeFestival {
		fx = append(fx, FX{Type: FXReverseVerb, AtBeat: reverseVerbAtBeat, Params: map[string]float64{"duration": reverseVerbDuration}})
	}
	return fx
}

func buildTempoOps(bpmA, bpmB, tempoDelta float64) []TempoOp {
	if !(tempoDelta > tempoDeltaTight && tempoDelta <= tempoDeltaModerate) {
		return nil
	}
	target := (bpmA + bpmB) / 2
	return []TempoOp{
		{Track: TrackA, StretchPercent: percentStretch(bpmA, target)},
		{Track: TrackB, StretchPercent: percentStretch(bpmB, target)},
	}
}

func buildPitchOps(camelotA, camelotB string, semitoneA, semitoneB int, keysCompatible bool) []PitchOp {
	if keysCompatible {
		return nil
	}
	if analysis.WheelDistance(camelotA, camelotB) > pitchShiftMaxWheelDistance {
		return nil
	}
	delta := analysis.PitchSemitoneDelta(semitoneA, semitoneB)
	if delta == 0 {
		return nil
	}
	return []PitchOp{{Track: TrackB, Semitones: delta, FormantPreserve: true}}
}

func tempoDelta(bpmA, bpmB float64) float64 {
	if bpmA == 0 {
		return 0
	}
	return math.Abs(bpmA-bpmB) / bpmA
}

func percentStretch(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	return (to - from) / from * 100
}

func energyMismatch(a, b []float64) bool {
	return math.Abs(lastOrZero(a)-firstOrZero(b)) > energyMismatchThreshold
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func lastOrZero(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return vals[len(vals)-1]
}

func firstOrZero(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return vals[0]
}

// BarsIn estimates a track's bar count from its downbeat count, falling
// back to a single bar when the beat grid never resolved a downbeat.
func BarsIn(s analysis.Summary) int {
	if len(s.DownbeatIndices) == 0 {
		return 1
	}
	return len(s.DownbeatIndices)
}
