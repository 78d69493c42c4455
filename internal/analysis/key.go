package analysis

import (
	"math"

	"github.com/linuxmatters/setmerge/internal/spectral"
)

const (
	keyHop      = 4096
	keyLowHz    = 80.0
	keyHighHz   = 5000.0
	keyRefHz    = 440.0
)

// detectKey accumulates a 12-bin chromagram over non-overlapping 4096-sample
// hops and maps the dominant pitch class to a Camelot code.
func detectKey(mono []float32, sampleRate int) (camelot string, semitone int, confidence float64) {
	if sampleRate <= 0 || len(mono) < keyHop {
		return "1A", 8, 0
	}

	window := spectral.HannWindow(keyHop)
	var chroma [12]float64
	numHops := len(mono) / keyHop
	for h := 0; h < numHops; h++ {
		start := h * keyHop
		frame := spectral.ApplyWindow(spectral.ToFloat64(mono[start:start+keyHop]), window)
		mag := spectral.MagnitudeSpectrum(frame)
		for k, m := range mag {
			freq := float64(k) * float64(sampleRate) / float64(keyHop)
			if freq < keyLowHz || freq > keyHighHz {
				continue
			}
			pc := pitchClass(freq)
			chroma[pc] += m
		}
	}

	var total float64
	dominant, dominantVal := 0, chroma[0]
	for pc, v := range chroma {
		total += v
		if v > dominantVal {
			dominant, dominantVal = pc, v
		}
	}
	if total <= 0 {
		return "1A", 8, 0
	}

	code, root := camelotFor(dominant, chroma)
	return code, root, dominantVal / total
}

// pitchClass maps a frequency to its pitch class with 0=C .. 11=B, the
// indexing the Camelot tables use: the nearest semitone relative to A440,
// shifted up by the 9 semitones from C to A.
func pitchClass(freq float64) int {
	raw := int(math.Round(12*math.Log2(freq/keyRefHz))) + 9
	return ((raw % 12) + 12) % 12
}
