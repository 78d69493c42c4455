package analysis

import "github.com/linuxmatters/setmerge/internal/pcm"

// Analyze produces an AnalysisSummary from a decoded track. It never
// returns an error: an empty buffer returns Fallback(), and a buffer too
// short or too quiet for a detector gets that detector's own default (the
// fallback beat grid, key 1A), per §3's "downstream must remain total"
// invariant.
func Analyze(buf pcm.Buffer) Summary {
	if buf.Empty() {
		return Fallback()
	}

	mono := buf.Mono()
	totalDuration := float64(len(mono)) / float64(buf.SampleRate)

	beatTimes := detectBeats(mono, buf.SampleRate)
	bpm, bpmAlt, bpmConfidence := estimateTempo(beatTimes)
	downbeats := detectDownbeats(beatTimes, bpm)
	phrases := groupPhrases(downbeats)
	camelot, semitone, keyConfidence := detectKey(mono, buf.SampleRate)
	energy := energyCurve(mono, buf.SampleRate)
	vocal := vocalLikelihood(mono, buf.SampleRate)
	kicks := detectKicks(mono, buf.SampleRate, beatTimes)

	segments := classifySegments(phrases, beatTimes, bpm, energy, totalDuration)
	highlight := detectHighlight(beatTimes, bpm, energy, totalDuration)

	return Summary{
		BPM:             bpm,
		BPMAlt:          bpmAlt,
		BPMConfidence:   bpmConfidence,
		Camelot:         camelot,
		KeySemitone:     semitone,
		KeyConfidence:   keyConfidence,
		BeatTimes:       beatTimes,
		DownbeatIndices: downbeats,
		PhraseSpans:     phrases,
		EnergyCurve:     energy,
		VocalLikelihood: vocal,
		KickTimes:       kicks,
		Segments:        segments,
		Highlight:       highlight,
	}
}

// AnalyzeBoth runs Analyze on both tracks concurrently, since they share no
// mutable state (§5).
func AnalyzeBoth(a, b pcm.Buffer) (Summary, Summary) {
	type result struct {
		summary Summary
	}
	ch := make(chan result, 1)
	go func() { ch <- result{Analyze(a)} }()
	sb := Analyze(b)
	sa := (<-ch).summary
	return sa, sb
}
