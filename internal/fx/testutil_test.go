package fx

import "github.com/linuxmatters/setmerge/internal/pcm"

func toneBuffer(sampleRate, channels, frames int, level float32) pcm.Buffer {
	buf := pcm.NewBuffer(sampleRate, channels, frames)
	for _, ch := range buf.Channels {
		for i := range ch {
			ch[i] = level
		}
	}
	return buf
}
