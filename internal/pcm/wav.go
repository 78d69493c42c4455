package pcm

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	bitsPerSample = 16
	bytesPerSample = bitsPerSample / 8
)

// EncodeWAV writes b as a canonical 44-byte-header RIFF/WAVE PCM16 stream.
// Samples are clamped to [-1, 1] then quantized asymmetrically per the
// container's sign convention (negative samples scale by 0x8000, positive
// by 0x7fff), channel-interleaved per frame.
func EncodeWAV(w io.Writer, b Buffer) error {
	if b.Empty() {
		return fmt.Errorf("pcm: cannot encode empty buffer to wav")
	}
	channels := b.NumChannels()
	frames := b.Frames()
	dataLen := uint32(frames * channels * bytesPerSample)
	byteRate := uint32(b.SampleRate * channels * bytesPerSample)
	blockAlign := uint16(channels * bytesPerSample)

	bw := bufio.NewWriter(w)

	writeStr := func(s string) error { _, err := bw.WriteString(s); return err }
	writeU32 := func(v uint32) error { return binary.Write(bw, binary.LittleEndian, v) }
	writeU16 := func(v uint16) error { return binary.Write(bw, binary.LittleEndian, v) }

	steps := []func() error{
		func() error { return writeStr("RIFF") },
		func() error { return writeU32(36 + dataLen) },
		func() error { return writeStr("WAVE") },
		func() error { return writeStr("fmt ") },
		func() error { return writeU32(16) },
		func() error { return writeU16(1) },
		func() error { return writeU16(uint16(channels)) },
		func() error { return writeU32(uint32(b.SampleRate)) },
		func() error { return writeU32(byteRate) },
		func() error { return writeU16(blockAlign) },
		func() error { return writeU16(bitsPerSample) },
		func() error { return writeStr("data") },
		func() error { return writeU32(dataLen) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("pcm: write wav header: %w", err)
		}
	}

	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			if err := writeU16(uint16(quantizeSample(b.Channels[c][i]))); err != nil {
				return fmt.Errorf("pcm: write wav sample: %w", err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("pcm: flush wav: %w", err)
	}
	return nil
}

func quantizeSample(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	if x < 0 {
		return int16(x * 0x8000)
	}
	return int16(x * 0x7fff)
}

func dequantizeSample(v int16) float32 {
	if v < 0 {
		return float32(v) / 0x8000
	}
	return float32(v) / 0x7fff
}

// DecodeWAV reads a PCM16 RIFF/WAVE stream such as EncodeWAV produces. The
// fmt chunk must come first and describe 16-bit integer PCM; extra fmt
// bytes and any chunks between fmt and data are skipped.
func DecodeWAV(r io.Reader) (Buffer, error) {
	br := bufio.NewReader(r)

	tag := make([]byte, 4)
	if _, err := io.ReadFull(br, tag); err != nil || string(tag) != "RIFF" {
		return Buffer{}, fmt.Errorf("pcm: not a RIFF stream")
	}
	var riffSize uint32
	if err := binary.Read(br, binary.LittleEndian, &riffSize); err != nil {
		return Buffer{}, fmt.Errorf("pcm: read riff size: %w", err)
	}
	if _, err := io.ReadFull(br, tag); err != nil || string(tag) != "WAVE" {
		return Buffer{}, fmt.Errorf("pcm: not a WAVE stream")
	}
	if _, err := io.ReadFull(br, tag); err != nil || string(tag) != "fmt " {
		return Buffer{}, fmt.Errorf("pcm: missing fmt chunk")
	}
	var fmtSize uint32
	if err := binary.Read(br, binary.LittleEndian, &fmtSize); err != nil {
		return Buffer{}, fmt.Errorf("pcm: read fmt size: %w", err)
	}
	var audioFormat, channels uint16
	var sampleRate, byteRate uint32
	var blockAlign, bits uint16
	if err := binary.Read(br, binary.LittleEndian, &audioFormat); err != nil {
		return Buffer{}, fmt.Errorf("pcm: read audio format: %w", err)
	}
	if err := binary.Read(br, binary.LittleEndian, &channels); err != nil {
		return Buffer{}, fmt.Errorf("pcm: read channels: %w", err)
	}
	if err := binary.Read(br, binary.LittleEndian, &sampleRate); err != nil {
		return Buffer{}, fmt.Errorf("pcm: read sample rate: %w", err)
	}
	if err := binary.Read(br, binary.LittleEndian, &byteRate); err != nil {
		return Buffer{}, fmt.Errorf("pcm: read byte rate: %w", err)
	}
	if err := binary.Read(br, binary.LittleEndian, &blockAlign); err != nil {
		return Buffer{}, fmt.Errorf("pcm: read block align: %w", err)
	}
	if err := binary.Read(br, binary.LittleEndian, &bits); err != nil {
		return Buffer{}, fmt.Errorf("pcm: read bits per sample: %w", err)
	}
	if audioFormat != 1 || bits != bitsPerSample {
		return Buffer{}, fmt.Errorf("pcm: unsupported wav format (format=%d bits=%d), only PCM16 is supported", audioFormat, bits)
	}
	if fmtSize > 16 {
		if _, err := io.CopyN(io.Discard, br, int64(fmtSize-16)); err != nil {
			return Buffer{}, fmt.Errorf("pcm: skip fmt extension: %w", err)
		}
	}

	// Skip any chunks before "data" (e.g. LIST/fact) rather than assuming
	// data immediately follows fmt.
	var dataLen uint32
	for {
		if _, err := io.ReadFull(br, tag); err != nil {
			return Buffer{}, fmt.Errorf("pcm: missing data chunk: %w", err)
		}
		var size uint32
		if err := binary.Read(br, binary.LittleEndian, &size); err != nil {
			return Buffer{}, fmt.Errorf("pcm: read chunk size: %w", err)
		}
		if string(tag) == "data" {
			dataLen = size
			break
		}
		if _, err := io.CopyN(io.Discard, br, int64(size)); err != nil {
			return Buffer{}, fmt.Errorf("pcm: skip chunk %q: %w", tag, err)
		}
	}

	if channels == 0 || sampleRate == 0 {
		return Buffer{}, fmt.Errorf("pcm: invalid wav header (channels=%d sr=%d)", channels, sampleRate)
	}
	frames := int(dataLen) / (int(channels) * bytesPerSample)
	buf := NewBuffer(int(sampleRate), int(channels), frames)
	for i := 0; i < frames; i++ {
		for c := 0; c < int(channels); c++ {
			var v int16
			if err := binary.Read(br, binary.LittleEndian, &v); err != nil {
				return Buffer{}, fmt.Errorf("pcm: read sample: %w", err)
			}
			buf.Channels[c][i] = dequantizeSample(v)
		}
	}
	return buf, nil
}
