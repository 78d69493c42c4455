// Package planner turns two AnalysisSummary values and a mix mode into a
// concrete TransitionPlan. Plan is a pure function of its inputs: same
// inputs always produce a byte-identical plan.
package planner

// Style names the crossfade/FX strategy the renderer executes.
type Style string

const (
	StyleHardDownbeat Style = "hard_downbeat"
	StyleEQMorph      Style = "eq_morph"
	StyleBassSwap     Style = "bass_swap"
	StyleVocalAware   Style = "vocal_aware"
	StyleStutterEntry Style = "stutter_entry"
)

// Mode is the caller-selected mixing personality.
type Mode string

const (
	ModeFestival    Mode = "festival"
	ModeClubSmooth  Mode = "club_smooth"
	ModeNeutral     Mode = "neutral"
)

// Track identifies which input buffer an op or FX targets.
type Track string

const (
	TrackA Track = "a"
	TrackB Track = "b"
)

// TempoOp is an advisory time-stretch request; the renderer may skip
// realization if unavailable (§1 Non-goals).
type TempoOp struct {
	Track          Track
	StretchPercent float64
}

// PitchOp is an advisory pitch-shift request.
type PitchOp struct {
	Track           Track
	Semitones       int
	FormantPreserve bool
}

// FXType names one of the C4 time-domain effects.
type FXType string

const (
	FXNoiseSweep    FXType = "sweep"
	FXReverseVerb   FXType = "reverseVerb"
	FXTapeStop      FXType = "tapeStop"
	FXStutter       FXType = "stutter"
)

// FX is one scheduled effect application. AtBeat is relative to the
// transition start and may be negative (pre-roll). Params carries
// effect-specific parameters (e.g. "duration", "division", "bars").
type FX struct {
	Type   FXType
	AtBeat float64
	Params map[string]float64
}

// TransitionPlan is the renderer's execution contract for one transition.
type TransitionPlan struct {
	Style Style

	StartBarA int
	StartBarB int
	LengthBars int

	TempoOps []TempoOp
	PitchOps []PitchOp
	FX       []FX
}
