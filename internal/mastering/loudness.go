// Package mastering implements the mastering-chain stages: phase
// correlation, bass mono-ization, glue compression, loudness
// normalization, and true-peak limiting. The renderer measures phase
// correlation first, applies bass mono-ization when it is triggered, then
// runs glue compression, loudness normalization and limiting in that
// order (§4.6 steps 8-9).
package mastering

import (
	"math"

	"github.com/linuxmatters/setmerge/internal/pcm"
)

const (
	// DefaultTargetLUFS is the default normalize target (§6 config
	// enumeration: -14, -12, -9 LUFS).
	DefaultTargetLUFS = -14.0
	silentFloorLUFS   = -60.0
)

// MeasureLUFS approximates integrated loudness as
// -0.691 + 10*log10(mean_square) across all channels. An empty or silent
// buffer reads as -60 LUFS rather than -Inf.
func MeasureLUFS(buf pcm.Buffer) float64 {
	if buf.Empty() {
		return silentFloorLUFS
	}
	var sumSq float64
	var n int
	for _, ch := range buf.Channels {
		for _, s := range ch {
			sumSq += float64(s) * float64(s)
		}
		n += len(ch)
	}
	if n == 0 || sumSq == 0 {
		return silentFloorLUFS
	}
	meanSquare := sumSq / float64(n)
	lufs := -0.691 + 10*math.Log10(meanSquare)
	if math.IsInf(lufs, -1) || math.IsNaN(lufs) {
		return silentFloorLUFS
	}
	return lufs
}

// Normalize applies a sample-wise linear gain to move buf from its
// measured loudness toward targetLUFS.
func Normalize(buf pcm.Buffer, targetLUFS float64) pcm.Buffer {
	current := MeasureLUFS(buf)
	gain := math.Pow(10, (targetLUFS-current)/20)
	out := buf.Clone()
	for _, ch := range out.Channels {
		for i, s := range ch {
			ch[i] = s * float32(gain)
		}
	}
	return out
}
