package analysis

import (
	"math"

	"github.com/linuxmatters/setmerge/internal/spectral"
)

const (
	onsetFrameSize = 2048
	onsetHop       = 512
	onsetPeakRadius = 3
	onsetThresholdMul = 1.5
)

var fallbackBeatGrid = []float64{0.0, 0.5, 1.0, 1.5}

// detectBeats computes a spectral-flux onset function at hop 512 over
// 2048-sample frames and peak-picks it with an adaptive local threshold.
func detectBeats(mono []float32, sampleRate int) []float64 {
	if sampleRate <= 0 || len(mono) < onsetFrameSize {
		return append([]float64(nil), fallbackBeatGrid...)
	}

	numFrames := (len(mono)-onsetFrameSize)/onsetHop + 1
	if numFrames < 2 {
		return append([]float64(nil), fallbackBeatGrid...)
	}

	window := spectral.HannWindow(onsetFrameSize)
	flux := make([]float64, numFrames)
	var prevMag []float64
	for f := 0; f < numFrames; f++ {
		start := f * onsetHop
		frame := spectral.ApplyWindow(spectral.ToFloat64(mono[start:start+onsetFrameSize]), window)
		mag := spectral.MagnitudeSpectrum(frame)
		if prevMag != nil {
			var sumSq float64
			for k, m := range mag {
				d := m - prevMag[k]
				if d > 0 {
					sumSq += d * d
				}
			}
			flux[f] = math.Sqrt(sumSq)
		}
		prevMag = mag
	}

	// Window radius ~1s of frames, per §4.2.
	windowFrames := sampleRate / onsetHop
	if windowFrames < 1 {
		windowFrames = 1
	}

	var beats []float64
	for i := range flux {
		lo := i - windowFrames
		if lo < 0 {
			lo = 0
		}
		hi := i + windowFrames
		if hi >= len(flux) {
			hi = len(flux) - 1
		}
		var sum float64
		for j := lo; j <= hi; j++ {
			sum += flux[j]
		}
		mean := sum / float64(hi-lo+1)
		if flux[i] > onsetThresholdMul*mean && spectral.IsLocalPeak(flux, i, onsetPeakRadius) {
			beats = append(beats, float64(i*onsetHop)/float64(sampleRate))
		}
	}

	if len(beats) == 0 {
		return append([]float64(nil), fallbackBeatGrid...)
	}
	return beats
}

// estimateTempo builds an inter-beat-interval histogram and returns
// (bpm, bpmAlt, confidence).
func estimateTempo(beatTimes []float64) (bpm, bpmAlt, confidence float64) {
	if len(beatTimes) < 2 {
		return 120, 60, 0
	}

	histogram := make(map[int]int)
	total := 0
	for i := 1; i < len(beatTimes); i++ {
		delta := beatTimes[i] - beatTimes[i-1]
		if !(delta > 0) || math.IsInf(delta, 0) {
			continue
		}
		bin := int(math.Round(60 / delta))
		if bin < 1 {
			bin = 1
		}
		if bin > 299 {
			bin = 299
		}
		histogram[bin]++
		total++
	}
	if total == 0 {
		return 120, 60, 0
	}

	dominantBin, dominantCount := 0, 0
	for bin, count := range histogram {
		if count > dominantCount || (count == dominantCount && bin < dominantBin) {
			dominantBin, dominantCount = bin, count
		}
	}

	bpm = float64(dominantBin)
	if bpm < 60 {
		bpm = 60
	} else if bpm > 200 {
		bpm = 200
	}
	if bpm > 100 {
		bpmAlt = bpm / 2
	} else {
		bpmAlt = bpm * 2
	}
	confidence = float64(dominantCount) / float64(total)
	return bpm, bpmAlt, confidence
}

// detectDownbeats assumes 4/4 and walks the beat grid, marking a beat as
// the next downbeat when it lands near the expected bar-length position;
// otherwise the bar counter resyncs to the beat's own position on the grid.
func detectDownbeats(beatTimes []float64, bpm float64) []int {
	if len(beatTimes) == 0 {
		return nil
	}
	if bpm <= 0 || math.IsNaN(bpm) || math.IsInf(bpm, 0) {
		bpm = 120
	}
	beatPeriod := 60 / bpm
	barPeriod := 4 * beatPeriod
	tolerance := 0.5 * beatPeriod

	downbeats := []int{0}
	origin := beatTimes[0]
	nextBar := 1

	for i := 1; i < len(beatTimes); i++ {
		expected := origin + float64(nextBar)*barPeriod
		if math.Abs(beatTimes[i]-expected) <= tolerance {
			downbeats = append(downbeats, i)
			nextBar++
			continue
		}
		if beatTimes[i] > expected+tolerance {
			nextBar = int(math.Floor((beatTimes[i]-origin)/barPeriod)) + 1
		}
	}
	return downbeats
}

// groupPhrases groups downbeats in runs of 4 into 16-beat phrase spans,
// index-based per the spec's adopted interpretation of an ambiguous source.
func groupPhrases(downbeatIndices []int) []PhraseSpan {
	var spans []PhraseSpan
	for i := 0; i+4 <= len(downbeatIndices); i += 4 {
		spans = append(spans, PhraseSpan{DownbeatIndex: downbeatIndices[i], LengthBeats: 16})
	}
	return spans
}
