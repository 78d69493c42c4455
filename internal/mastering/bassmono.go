package mastering

import "github.com/linuxmatters/setmerge/internal/pcm"

// DefaultBassMonoCutoffHz is the default low-band cutoff (§4.5).
const DefaultBassMonoCutoffHz = 120.0

// BassMono sums the low band across all channels into a shared mono signal
// and leaves each channel's high band untouched, only meaningful with 2+
// channels. Window half-width is sr/(2*cutoff) samples per side: mono_low
// is the shared window average across channels, avg_i the per-channel
// window average used to strip that channel's own low end before adding
// the shared one back.
func BassMono(buf pcm.Buffer, cutoffHz float64) pcm.Buffer {
	if buf.NumChannels() < 2 || cutoffHz <= 0 {
		return buf
	}
	frames := buf.Frames()
	channels := buf.NumChannels()
	radius := int(float64(buf.SampleRate) / (2 * cutoffHz))
	if radius < 1 {
		radius = 1
	}

	monoLow := make([]float32, frames)
	perChannelLow := make([][]float32, channels)
	for c := range perChannelLow {
		perChannelLow[c] = make([]float32, frames)
	}

	for c, ch := range buf.Channels {
		prefix := windowPrefixSum(ch)
		for i := 0; i < frames; i++ {
			lo, hi := windowBounds(i, radius, frames)
			perChannelLow[c][i] = float32((prefix[hi+1] - prefix[lo]) / float64(hi-lo+1))
		}
	}
	for i := 0; i < frames; i++ {
		var sum float32
		for c := range buf.Channels {
			sum += perChannelLow[c][i]
		}
		monoLow[i] = sum / float32(channels)
	}

	out := buf.CloneEmpty()
	for c, ch := range out.Channels {
		src := buf.Channels[c]
		for i := range ch {
			ch[i] = monoLow[i] + (src[i] - perChannelLow[c][i])
		}
	}
	return out
}

func windowPrefixSum(ch []float32) []float64 {
	prefix := make([]float64, len(ch)+1)
	for i, s := range ch {
		prefix[i+1] = prefix[i] + float64(s)
	}
	return prefix
}

func windowBounds(i, radius, frames int) (lo, hi int) {
	lo = i - radius
	if lo < 0 {
		lo = 0
	}
	hi = i + radius
	if hi >= frames {
		hi = frames - 1
	}
	return lo, hi
}
