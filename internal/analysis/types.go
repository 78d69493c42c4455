// Package analysis extracts an AnalysisSummary — tempo, key, beat grid,
// energy, vocal and kick estimates — from a single track's PCM. Every
// entry point here is total: pathological input degrades to a documented
// fallback summary rather than an error, so downstream stages never need
// to special-case a failed analysis.
package analysis

// PhraseSpan marks a run of four downbeats (16 beats, assuming 4/4) as one
// musical phrase.
type PhraseSpan struct {
	DownbeatIndex int
	LengthBeats   int
}

// SegmentLabel classifies a phrase's relative energy, supplementing the
// required fields with a coarse song-structure hint. Purely informative:
// nothing downstream depends on it.
type SegmentLabel string

const (
	SegmentIntro  SegmentLabel = "intro"
	SegmentVerse  SegmentLabel = "verse"
	SegmentChorus SegmentLabel = "chorus"
	SegmentBridge SegmentLabel = "bridge"
	SegmentOutro  SegmentLabel = "outro"
)

// Segment is one classified phrase-length span, in seconds.
type Segment struct {
	StartSec float64
	EndSec   float64
	Label    SegmentLabel
}

// Highlight is the single highest-energy 16-beat window, exposed as a
// preview scrub point for callers that want one.
type Highlight struct {
	StartSec float64
	EndSec   float64
	Energy   float64
}

// Summary is the per-track analysis result. Field names and ranges mirror
// the invariants every caller may rely on: all numeric fields finite,
// confidences in [0,1], indices in range.
type Summary struct {
	BPM           float64
	BPMAlt        float64
	BPMConfidence float64

	Camelot       string
	KeySemitone   int
	KeyConfidence float64

	BeatTimes       []float64
	DownbeatIndices []int
	PhraseSpans     []PhraseSpan

	EnergyCurve     []float64
	VocalLikelihood []float64
	KickTimes       []float64

	// Supplemented, informative only (SPEC_FULL §12).
	Segments  []Segment
	Highlight *Highlight
}

// Fallback returns the documented degenerate-input summary: bpm=120,
// camelot=1A, a small synthetic beat grid. Analyze returns it for an
// empty buffer.
func Fallback() Summary {
	return Summary{
		BPM:             120,
		BPMAlt:          60,
		BPMConfidence:   0,
		Camelot:         "1A",
		KeySemitone:     8,
		KeyConfidence:   0,
		BeatTimes:       []float64{0.0, 0.5, 1.0, 1.5},
		DownbeatIndices: []int{0},
		PhraseSpans:     nil,
		EnergyCurve:     []float64{0.5},
		VocalLikelihood: []float64{0},
		KickTimes:       nil,
	}
}
