package fx

import "github.com/linuxmatters/setmerge/internal/pcm"

// ID names one of the ordered FX applications, mirroring the teacher's
// FilterID string-enum-plus-registry pattern.
type ID string

const (
	IDNoiseSweep  ID = "sweep"
	IDReverseVerb ID = "reverseVerb"
	IDTapeStop    ID = "tapeStop"
	IDStutter     ID = "stutter"
)

// Spec describes one scheduled FX call: which effect, at what time (in
// seconds, already resolved from beat-relative timing by the caller), and
// its effect-specific parameters.
type Spec struct {
	ID       ID
	AtSec    float64
	Params   map[string]float64
	BPM      float64 // only consulted by IDStutter
}

// Apply runs one FX spec against buf, skipping (returning buf unchanged)
// on any invalid or missing parameter, so a failed FX is never fatal.
// The skip is not reported: Apply returns no error, and mix.Merge's
// progress detail for each FX is the effect name whether or not it was
// applied.
func Apply(buf pcm.Buffer, spec Spec, rng *Rand) pcm.Buffer {
	switch spec.ID {
	case IDNoiseSweep:
		return NoiseSweep(buf, spec.AtSec, spec.Params["duration"], rng)
	case IDReverseVerb:
		return ReverseReverb(buf, spec.AtSec, spec.Params["duration"])
	case IDTapeStop:
		return TapeStop(buf, spec.AtSec, spec.Params["duration"])
	case IDStutter:
		bars := int(spec.Params["bars"])
		division := int(spec.Params["division"])
		return Stutter(buf, spec.AtSec, spec.BPM, bars, division)
	default:
		return buf
	}
}
