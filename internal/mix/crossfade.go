package mix

import (
	"math"

	"github.com/linuxmatters/setmerge/internal/pcm"
	"github.com/linuxmatters/setmerge/internal/planner"
)

// gainPair returns (gain_a, gain_b) at position x in [0,1] for the given
// style, per §4.6 step 7.
func gainPair(style planner.Style, x float64) (float64, float64) {
	switch style {
	case planner.StyleHardDownbeat:
		s := x * x * (3 - 2*x)
		return 1 - s, s
	case planner.StyleVocalAware:
		return 1 - x, x
	default:
		return math.Cos(math.Pi * x / 2), math.Sin(math.Pi * x / 2)
	}
}

// writeCrossfade blends n frames of a starting at aStart with n frames of
// b starting at bStart, writing the result into out starting at outStart.
// Every output channel is populated via pcm.Buffer.Channel's broadcast
// rule, so a mono input contributes its single channel to every output
// channel (§4.6 scenario 6).
func writeCrossfade(out, a, b pcm.Buffer, outStart, aStart, bStart, n int, style planner.Style) {
	for c := 0; c < out.NumChannels(); c++ {
		outCh := out.Channel(c)
		aCh := a.Channel(c)
		bCh := b.Channel(c)
		for i := 0; i < n; i++ {
			x := 0.0
			if n > 1 {
				x = float64(i) / float64(n-1)
			}
			gainA, gainB := gainPair(style, x)
			av := sampleOrZero(aCh, aStart+i)
			bv := sampleOrZero(bCh, bStart+i)
			outCh[outStart+i] = float32(float64(av)*gainA + float64(bv)*gainB)
		}
	}
}

func sampleOrZero(ch []float32, idx int) float32 {
	if idx < 0 || idx >= len(ch) {
		return 0
	}
	return ch[idx]
}
