package mastering

import (
	"math"

	"github.com/linuxmatters/setmerge/internal/pcm"
)

const (
	// DefaultCompressorThresholdDBFS and DefaultCompressorRatio are the
	// glue-compressor defaults per §4.5.
	DefaultCompressorThresholdDBFS = -12.0
	DefaultCompressorRatio         = 2.0

	compressorAttackMs  = 10.0
	compressorReleaseMs = 80.0
)

func dBFSToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// timeConstantCoeff converts a ms time constant to a one-pole smoothing
// coefficient at the given sample rate.
func timeConstantCoeff(ms float64, sampleRate int) float64 {
	if ms <= 0 || sampleRate <= 0 {
		return 0
	}
	return math.Exp(-1.0 / (ms / 1000 * float64(sampleRate)))
}

// GlueCompress runs a one-pole envelope follower per channel with a fast
// attack and slow release; whenever the envelope exceeds thresholdDBFS,
// gain reduces by (env/thr)^(1/ratio - 1).
func GlueCompress(buf pcm.Buffer, thresholdDBFS, ratio float64) pcm.Buffer {
	threshold := dBFSToLinear(thresholdDBFS)
	attackCoeff := timeConstantCoeff(compressorAttackMs, buf.SampleRate)
	releaseCoeff := timeConstantCoeff(compressorReleaseMs, buf.SampleRate)

	out := buf.Clone()
	for _, ch := range out.Channels {
		env := 0.0
		for i, s := range ch {
			absS := math.Abs(float64(s))
			if absS > env {
				env = attackCoeff*env + (1-attackCoeff)*absS
			} else {
				env = releaseCoeff*env + (1-releaseCoeff)*absS
			}
			gain := 1.0
			if env > threshold && threshold > 0 {
				gain = math.Pow(env/threshold, 1/ratio-1)
			}
			ch[i] = s * float32(gain)
		}
	}
	return out
}
