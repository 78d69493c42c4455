package analysis

import "sort"

// classifySegments labels each phrase span by where its mean energy falls
// in the track's overall energy percentile distribution, in the style of
// the DJ-planning analog's classifySegments: the first and last phrases
// are labelled intro and outro by position; of the rest, the loudest read
// as choruses, a thin bridge band sits just under the chorus threshold,
// and everything else is verse.
func classifySegments(phrases []PhraseSpan, beatTimes []float64, bpm float64, energy []float64, totalDuration float64) []Segment {
	if len(phrases) == 0 || bpm <= 0 {
		return nil
	}
	beatPeriod := 60 / bpm
	phraseDur := 16 * beatPeriod

	type scored struct {
		seg    Segment
		energy float64
	}
	scoredSegs := make([]scored, 0, len(phrases))
	for i, p := range phrases {
		start := phraseStart(p, beatTimes)
		end := start + phraseDur
		if end > totalDuration && totalDuration > 0 {
			end = totalDuration
		}
		e := meanEnergyOverSpan(energy, totalDuration, start, end)
		label := SegmentVerse
		if i == 0 {
			label = SegmentIntro
		} else if i == len(phrases)-1 {
			label = SegmentOutro
		}
		scoredSegs = append(scoredSegs, scored{Segment{StartSec: start, EndSec: end, Label: label}, e})
	}

	energies := make([]float64, len(scoredSegs))
	for i, s := range scoredSegs {
		energies[i] = s.energy
	}
	sorted := append([]float64(nil), energies...)
	sort.Float64s(sorted)
	chorusThreshold := percentile(sorted, 0.75)
	bridgeThreshold := percentile(sorted, 0.55)

	out := make([]Segment, len(scoredSegs))
	for i, s := range scoredSegs {
		seg := s.seg
		if seg.Label == SegmentVerse {
			switch {
			case s.energy >= chorusThreshold:
				seg.Label = SegmentChorus
			case s.energy >= bridgeThreshold:
				seg.Label = SegmentBridge
			}
		}
		out[i] = seg
	}
	return out
}

// detectHighlight scans 16-beat windows for the highest mean energy and
// returns the single best one, mirroring detectHighlights but reporting
// only the top window since AnalysisSummary exposes one preview point.
func detectHighlight(beatTimes []float64, bpm float64, energy []float64, totalDuration float64) *Highlight {
	if bpm <= 0 || len(beatTimes) < 16 {
		return nil
	}
	beatPeriod := 60 / bpm
	windowDur := 16 * beatPeriod

	var best *Highlight
	for i := 0; i+16 <= len(beatTimes); i++ {
		start := beatTimes[i]
		end := start + windowDur
		e := meanEnergyOverSpan(energy, totalDuration, start, end)
		if best == nil || e > best.Energy {
			best = &Highlight{StartSec: start, EndSec: end, Energy: e}
		}
	}
	return best
}

func phraseStart(p PhraseSpan, beatTimes []float64) float64 {
	if p.DownbeatIndex >= 0 && p.DownbeatIndex < len(beatTimes) {
		return beatTimes[p.DownbeatIndex]
	}
	return 0
}

func meanEnergyOverSpan(energy []float64, totalDuration, start, end float64) float64 {
	if len(energy) == 0 || totalDuration <= 0 || end <= start {
		return 0
	}
	loFrac := start / totalDuration
	hiFrac := end / totalDuration
	lo := int(loFrac * float64(len(energy)))
	hi := int(hiFrac * float64(len(energy)))
	if lo < 0 {
		lo = 0
	}
	if hi > len(energy) {
		hi = len(energy)
	}
	if hi <= lo {
		if lo < len(energy) {
			return energy[lo]
		}
		return 0
	}
	var sum float64
	for _, v := range energy[lo:hi] {
		sum += v
	}
	return sum / float64(hi-lo)
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
