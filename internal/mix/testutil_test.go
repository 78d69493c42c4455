package mix

import (
	"math"

	"github.com/linuxmatters/setmerge/internal/pcm"
)

func toneBuffer(sampleRate, channels, durationSec int, freq float64, level float32) pcm.Buffer {
	frames := sampleRate * durationSec
	buf := pcm.NewBuffer(sampleRate, channels, frames)
	for _, ch := range buf.Channels {
		for i := range ch {
			t := float64(i) / float64(sampleRate)
			ch[i] = level * float32(math.Sin(2*math.Pi*freq*t))
		}
	}
	return buf
}

func silenceBuffer(sampleRate, channels, durationSec int) pcm.Buffer {
	return pcm.NewBuffer(sampleRate, channels, sampleRate*durationSec)
}
