package pcm

import "math"

// sineBuffer synthesizes a deterministic mono or multi-channel test tone,
// grounded on the teacher's testutil_test.go fixture generator but built
// directly in memory instead of via a temp WAV file.
func sineBuffer(sampleRate, channels, durationMs int, freq, level float64) Buffer {
	frames := sampleRate * durationMs / 1000
	buf := NewBuffer(sampleRate, channels, frames)
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(sampleRate)
		v := float32(level * math.Sin(2*math.Pi*freq*t))
		for c := 0; c < channels; c++ {
			buf.Channels[c][i] = v
		}
	}
	return buf
}
