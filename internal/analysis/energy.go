package analysis

import (
	"math"

	"github.com/linuxmatters/setmerge/internal/spectral"
)

const (
	energyWindowMs   = 20
	energySmoothRadius = 5

	vocalHop    = 4096
	vocalLowHz  = 2000.0
	vocalHighHz = 5000.0

	kickWindowMs = 50
	kickFrame    = 512
	kickSearchStepSamples = 64
	kickLowBins  = 20
)

// energyCurve computes 20ms RMS windows, then a ±5-frame centered average.
// Never emits non-finite values.
func energyCurve(mono []float32, sampleRate int) []float64 {
	if sampleRate <= 0 || len(mono) == 0 {
		return []float64{0.5}
	}
	windowSize := sampleRate * energyWindowMs / 1000
	if windowSize < 1 {
		windowSize = 1
	}
	numWindows := (len(mono) + windowSize - 1) / windowSize
	if numWindows == 0 {
		return []float64{0.5}
	}

	raw := make([]float64, numWindows)
	for w := 0; w < numWindows; w++ {
		start := w * windowSize
		end := start + windowSize
		if end > len(mono) {
			end = len(mono)
		}
		var sumSq float64
		for _, s := range mono[start:end] {
			sumSq += float64(s) * float64(s)
		}
		rms := math.Sqrt(sumSq / float64(end-start))
		if math.IsNaN(rms) || math.IsInf(rms, 0) {
			rms = 0
		}
		raw[w] = rms
	}

	smoothed := make([]float64, numWindows)
	for i := range raw {
		lo := i - energySmoothRadius
		if lo < 0 {
			lo = 0
		}
		hi := i + energySmoothRadius
		if hi >= numWindows {
			hi = numWindows - 1
		}
		var sum float64
		for j := lo; j <= hi; j++ {
			sum += raw[j]
		}
		v := sum / float64(hi-lo+1)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		smoothed[i] = v
	}
	return smoothed
}

// vocalLikelihood computes, per 4096-sample hop, twice the magnitude in
// the 2-5kHz band divided by the total magnitude, clamped to [0,1].
func vocalLikelihood(mono []float32, sampleRate int) []float64 {
	if sampleRate <= 0 || len(mono) < vocalHop {
		return []float64{0}
	}
	numHops := len(mono) / vocalHop
	if numHops == 0 {
		return []float64{0}
	}
	window := spectral.HannWindow(vocalHop)
	out := make([]float64, numHops)
	for h := 0; h < numHops; h++ {
		start := h * vocalHop
		frame := spectral.ApplyWindow(spectral.ToFloat64(mono[start:start+vocalHop]), window)
		mag := spectral.MagnitudeSpectrum(frame)
		var band, total float64
		for k, m := range mag {
			freq := float64(k) * float64(sampleRate) / float64(vocalHop)
			total += m
			if freq >= vocalLowHz && freq <= vocalHighHz {
				band += m
			}
		}
		var ratio float64
		if total > 0 {
			ratio = (2 * band) / total
		}
		out[h] = clamp01(ratio)
	}
	return out
}

// detectKicks refines each beat to the local low-band energy maximum within
// ±50ms, by sliding a 512-sample search window and summing its first 20 DFT
// bins.
func detectKicks(mono []float32, sampleRate int, beatTimes []float64) []float64 {
	if sampleRate <= 0 || len(mono) < kickFrame {
		return nil
	}
	windowSamples := sampleRate * kickWindowMs / 1000
	kickWindow := spectral.HannWindow(kickFrame)

	var kicks []float64
	for _, bt := range beatTimes {
		center := int(bt * float64(sampleRate))
		lo := center - windowSamples
		hi := center + windowSamples
		if lo < 0 {
			lo = 0
		}
		if hi+kickFrame > len(mono) {
			hi = len(mono) - kickFrame
		}
		if hi < lo {
			continue
		}

		bestStart := -1
		bestEnergy := -1.0
		for start := lo; start <= hi; start += kickSearchStepSamples {
			frame := spectral.ApplyWindow(spectral.ToFloat64(mono[start:start+kickFrame]), kickWindow)
			mag := spectral.MagnitudeSpectrum(frame)
			limit := kickLowBins
			if limit > len(mag) {
				limit = len(mag)
			}
			var e float64
			for k := 0; k < limit; k++ {
				e += mag[k]
			}
			if e > bestEnergy {
				bestEnergy, bestStart = e, start
			}
		}
		if bestStart >= 0 {
			kicks = append(kicks, float64(bestStart)/float64(sampleRate))
		}
	}
	return kicks
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
