package mastering

import (
	"math"

	"github.com/linuxmatters/setmerge/internal/pcm"
)

const (
	lookaheadSamples = 10
	// DefaultTruePeakCeilingDBTP is the default ceiling (§6: -1.0, -0.5,
	// -0.1 dBTP).
	DefaultTruePeakCeilingDBTP = -1.0
	softClipDrive              = 1.5
	softClipGain               = 0.95
)

// dBTPToLinear converts a dBTP ceiling to a linear amplitude ceiling.
func dBTPToLinear(dbtp float64) float64 {
	return math.Pow(10, dbtp/20)
}

// Limit applies a 10-sample lookahead true-peak limiter followed by an
// unconditional soft clip, bounding output to |y| < 0.95 (§4.5).
func Limit(buf pcm.Buffer, ceilingDBTP float64) pcm.Buffer {
	ceiling := dBTPToLinear(ceilingDBTP)
	out := buf.Clone()
	for _, ch := range out.Channels {
		for i := range ch {
			lookaheadMax := 0.0
			hi := i + lookaheadSamples
			if hi >= len(ch) {
				hi = len(ch) - 1
			}
			for j := i; j <= hi; j++ {
				if a := math.Abs(float64(ch[j])); a > lookaheadMax {
					lookaheadMax = a
				}
			}
			x := float64(ch[i])
			if lookaheadMax > ceiling && lookaheadMax > 0 {
				x *= ceiling / lookaheadMax
			}
			ch[i] = float32(softClipGain * math.Tanh(softClipDrive*x))
		}
	}
	return out
}
