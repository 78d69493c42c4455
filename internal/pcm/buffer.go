// Package pcm defines the buffer type every stage of the mix engine reads
// and writes, plus the one container format the engine emits (WAV/PCM16).
package pcm

import "fmt"

// Buffer is an owned, decoded audio buffer: one float32 stream per channel,
// all channels the same length, sharing a sample rate. Samples are nominally
// in [-1, 1] but may transiently exceed that range before mastering.
type Buffer struct {
	SampleRate int
	Channels   [][]float32
}

// NewBuffer allocates a silent buffer with the given channel count and frame
// length.
func NewBuffer(sampleRate, channels, frames int) Buffer {
	ch := make([][]float32, channels)
	for i := range ch {
		ch[i] = make([]float32, frames)
	}
	return Buffer{SampleRate: sampleRate, Channels: ch}
}

// Frames reports the buffer's length in samples per channel.
func (b Buffer) Frames() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// NumChannels reports the channel count.
func (b Buffer) NumChannels() int {
	return len(b.Channels)
}

// Empty reports whether the buffer carries no channels or no frames.
func (b Buffer) Empty() bool {
	return b.NumChannels() == 0 || b.Frames() == 0
}

// Clone returns a deep copy, safe to mutate independently of b.
func (b Buffer) Clone() Buffer {
	out := Buffer{SampleRate: b.SampleRate, Channels: make([][]float32, len(b.Channels))}
	for i, ch := range b.Channels {
		out.Channels[i] = append([]float32(nil), ch...)
	}
	return out
}

// CloneEmpty returns a silent buffer with the same sample rate, channel
// count and length as b.
func (b Buffer) CloneEmpty() Buffer {
	return NewBuffer(b.SampleRate, b.NumChannels(), b.Frames())
}

// Mono returns a single-channel downmix, the arithmetic mean of all channels
// per frame. Used by the analyzer, which only ever measures mono features.
func (b Buffer) Mono() []float32 {
	frames := b.Frames()
	out := make([]float32, frames)
	n := b.NumChannels()
	if n == 0 {
		return out
	}
	inv := float32(1) / float32(n)
	for _, ch := range b.Channels {
		for i, s := range ch {
			out[i] += s * inv
		}
	}
	return out
}

// Channel returns the samples for logical channel idx, falling back to the
// last available channel when the buffer has fewer channels than idx+1 —
// this is how a mono source is broadcast to a stereo output frame.
func (b Buffer) Channel(idx int) []float32 {
	n := b.NumChannels()
	if n == 0 {
		return nil
	}
	if idx >= n {
		idx = n - 1
	}
	return b.Channels[idx]
}

func (b Buffer) String() string {
	return fmt.Sprintf("pcm.Buffer{sr=%d, ch=%d, frames=%d}", b.SampleRate, b.NumChannels(), b.Frames())
}
