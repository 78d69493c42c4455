// Package fx implements the time-domain transition effects: noise sweep,
// reverse reverb, tape stop, stutter, and EQ morph. Every function takes a
// buffer (or pair, for EQ morph) and returns a new one; invalid parameters
// (non-finite, negative durations) leave the buffer unchanged rather than
// erroring, per §4.4 — FX failures are skipped, never fatal.
package fx

import (
	"math"

	"github.com/linuxmatters/setmerge/internal/pcm"
)

func validParams(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// NoiseSweep adds per-sample uniform noise in [-0.3, 0.3] over
// [start, start+duration), scaled linearly by progress. rng must be seeded
// explicitly by the caller so rendering stays reproducible.
func NoiseSweep(buf pcm.Buffer, startSec, durationSec float64, rng *Rand) pcm.Buffer {
	if !validParams(startSec, durationSec) || durationSec < 0 {
		return buf
	}
	out := buf.Clone()
	sr := float64(buf.SampleRate)
	start := int(startSec * sr)
	durationSamples := int(durationSec * sr)
	if durationSamples <= 0 {
		return out
	}
	for _, ch := range out.Channels {
		for i := 0; i < durationSamples; i++ {
			idx := start + i
			if idx < 0 || idx >= len(ch) {
				continue
			}
			progress := float64(i) / float64(durationSamples)
			noise := (rng.Float64()*2 - 1) * 0.3 * progress
			ch[idx] += float32(noise)
		}
	}
	return out
}

// ReverseReverb reads the tail of the window backwards and blends it back
// in with a linear decay, over [start, start+duration).
func ReverseReverb(buf pcm.Buffer, startSec, durationSec float64) pcm.Buffer {
	if !validParams(startSec, durationSec) || durationSec < 0 {
		return buf
	}
	out := buf.Clone()
	sr := float64(buf.SampleRate)
	start := int(startSec * sr)
	durationSamples := int(durationSec * sr)
	if durationSamples <= 0 {
		return out
	}
	for c, ch := range out.Channels {
		src := buf.Channels[c]
		for i := 0; i < durationSamples; i++ {
			srcIdx := start + durationSamples - i
			dstIdx := start + i
			if srcIdx < 0 || srcIdx >= len(src) || dstIdx < 0 || dstIdx >= len(ch) {
				continue
			}
			decay := 1 - float64(i)/float64(durationSamples)
			ch[dstIdx] += src[srcIdx] * float32(decay*0.4)
		}
	}
	return out
}

// TapeStop applies a quadratic slowdown over [stop-duration, stop): the
// read position is (stop-duration) + Δ·(1-p²) for p = Δ/duration, with
// amplitude fade 1-0.5·p, then zero-fills beyond stop.
func TapeStop(buf pcm.Buffer, stopSec, durationSec float64) pcm.Buffer {
	if !validParams(stopSec, durationSec) || durationSec <= 0 {
		return buf
	}
	out := buf.Clone()
	sr := float64(buf.SampleRate)
	stop := stopSec * sr
	duration := durationSec * sr
	windowStart := stop - duration
	if windowStart < 0 {
		windowStart = 0
	}

	for c, ch := range out.Channels {
		src := buf.Channels[c]
		startIdx := int(windowStart)
		stopIdx := int(stop)
		if stopIdx > len(ch) {
			stopIdx = len(ch)
		}
		for idx := startIdx; idx < stopIdx; idx++ {
			delta := float64(idx) - windowStart
			p := delta / duration
			slowdown := 1 - p*p
			readPos := windowStart + delta*slowdown
			ch[idx] = sampleAt(src, readPos) * float32(1-0.5*p)
		}
		for idx := stopIdx; idx < len(ch); idx++ {
			ch[idx] = 0
		}
	}
	return out
}

func sampleAt(src []float32, pos float64) float32 {
	if pos < 0 {
		pos = 0
	}
	i0 := int(pos)
	if i0 >= len(src) {
		if len(src) == 0 {
			return 0
		}
		return src[len(src)-1]
	}
	i1 := i0 + 1
	frac := float32(pos - float64(i0))
	if i1 >= len(src) {
		return src[i0]
	}
	return src[i0]*(1-frac) + src[i1]*frac
}

// Stutter partitions [start, start+bars*4*60/bpm) into division equal
// slices and replays the first slice's samples into every slice. No-op if
// bpm <= 0.
func Stutter(buf pcm.Buffer, startSec float64, bpm float64, bars, division int) pcm.Buffer {
	if !validParams(startSec, bpm) || bpm <= 0 || division <= 0 || bars <= 0 {
		return buf
	}
	out := buf.Clone()
	sr := float64(buf.SampleRate)
	start := int(startSec * sr)
	totalSamples := int(bars * 4 * int(60/bpm*sr))
	if totalSamples <= 0 {
		return out
	}
	sliceSamples := totalSamples / division
	if sliceSamples <= 0 {
		return out
	}

	for _, ch := range out.Channels {
		firstStart := start
		firstEnd := firstStart + sliceSamples
		if firstStart < 0 || firstEnd > len(ch) {
			continue
		}
		first := append([]float32(nil), ch[firstStart:firstEnd]...)
		for slice := 1; slice < division; slice++ {
			dstStart := start + slice*sliceSamples
			for i, v := range first {
				idx := dstStart + i
				if idx < 0 || idx >= len(ch) {
					break
				}
				ch[idx] = v
			}
		}
	}
	return out
}

// EQMorph attenuates a's amplitude and boosts b's amplitude across the
// overlap window, an amplitude-only approximation of a low-shelf crossfade.
func EQMorph(a, b pcm.Buffer, durationSec float64) (pcm.Buffer, pcm.Buffer) {
	if !validParams(durationSec) || durationSec < 0 {
		return a, b
	}
	outA := a.Clone()
	outB := b.Clone()
	durationSamplesA := int(durationSec * float64(a.SampleRate))
	durationSamplesB := int(durationSec * float64(b.SampleRate))

	for _, ch := range outA.Channels {
		n := durationSamplesA
		if n > len(ch) {
			n = len(ch)
		}
		for i := 0; i < n; i++ {
			progress := float64(i) / float64(durationSamplesA)
			ch[i] *= float32(1 - 0.7*progress)
		}
	}
	for _, ch := range outB.Channels {
		n := durationSamplesB
		if n > len(ch) {
			n = len(ch)
		}
		for i := 0; i < n; i++ {
			progress := float64(i) / float64(durationSamplesB)
			ch[i] *= float32(0.3 + 0.7*progress)
		}
	}
	return outA, outB
}
