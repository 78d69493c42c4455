package analysis

import (
	"math"

	"github.com/linuxmatters/setmerge/internal/pcm"
)

// clickTrackBuffer synthesizes a mono click track at the given bpm: a short
// burst of a low-band tone at every beat, silence between, the way a
// synthetic fixture stands in for real percussive audio in onset tests.
func clickTrackBuffer(sampleRate int, bpm float64, numBeats int) pcm.Buffer {
	beatPeriod := 60 / bpm
	totalFrames := int(float64(numBeats) * beatPeriod * float64(sampleRate))
	buf := pcm.NewBuffer(sampleRate, 1, totalFrames)

	clickFrames := sampleRate / 20 // 50ms click
	for beat := 0; beat < numBeats; beat++ {
		start := int(float64(beat) * beatPeriod * float64(sampleRate))
		for i := 0; i < clickFrames && start+i < totalFrames; i++ {
			t := float64(i) / float64(sampleRate)
			envelope := 1 - float64(i)/float64(clickFrames)
			buf.Channels[0][start+i] = float32(envelope * math.Sin(2*math.Pi*150*t))
		}
	}
	return buf
}

func silenceBuffer(sampleRate, durationSec int) pcm.Buffer {
	return pcm.NewBuffer(sampleRate, 1, sampleRate*durationSec)
}

func pcmEmptyBuffer() pcm.Buffer {
	return pcm.Buffer{}
}
