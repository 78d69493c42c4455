package mastering

import (
	"math"
	"testing"

	"github.com/linuxmatters/setmerge/internal/pcm"
)

func loudBuffer(sampleRate, frames int, amplitude float32) pcm.Buffer {
	buf := pcm.NewBuffer(sampleRate, 2, frames)
	for _, ch := range buf.Channels {
		for i := range ch {
			ch[i] = amplitude
		}
	}
	return buf
}

func TestMeasureLUFSSilence(t *testing.T) {
	if got := MeasureLUFS(pcm.NewBuffer(44100, 1, 1000)); got != silentFloorLUFS {
		t.Fatalf("expected silent floor, got %v", got)
	}
	if got := MeasureLUFS(pcm.Buffer{}); got != silentFloorLUFS {
		t.Fatalf("expected silent floor for empty buffer, got %v", got)
	}
}

func TestNormalizeMovesTowardTarget(t *testing.T) {
	buf := loudBuffer(44100, 4410, 0.01)
	out := Normalize(buf, DefaultTargetLUFS)
	got := MeasureLUFS(out)
	if math.Abs(got-DefaultTargetLUFS) > 0.5 {
		t.Fatalf("expected loudness near %v, got %v", DefaultTargetLUFS, got)
	}
}

func TestLimitBoundsOutput(t *testing.T) {
	buf := loudBuffer(44100, 4410, 5.0) // wildly over range
	out := Limit(buf, DefaultTruePeakCeilingDBTP)
	for _, ch := range out.Channels {
		for _, s := range ch {
			if math.Abs(float64(s)) >= 0.95 {
				t.Fatalf("expected |y| < 0.95, got %v", s)
			}
		}
	}
}

func TestGlueCompressReducesGainAboveThreshold(t *testing.T) {
	buf := loudBuffer(44100, 44100, 0.9)
	out := GlueCompress(buf, DefaultCompressorThresholdDBFS, DefaultCompressorRatio)
	// after settling, output should be attenuated relative to input
	if math.Abs(float64(out.Channels[0][40000])) >= math.Abs(float64(buf.Channels[0][40000])) {
		t.Fatalf("expected compressor to reduce a sustained loud signal")
	}
}

func TestBassMonoRequiresStereo(t *testing.T) {
	mono := pcm.NewBuffer(44100, 1, 1000)
	if out := BassMono(mono, DefaultBassMonoCutoffHz); out.NumChannels() != 1 {
		t.Fatal("expected mono input to pass through unchanged")
	}
}

func TestBassMonoEqualizesLowBandAcrossChannels(t *testing.T) {
	buf := pcm.NewBuffer(44100, 2, 2000)
	for i := range buf.Channels[0] {
		buf.Channels[0][i] = 1.0
		buf.Channels[1][i] = -1.0
	}
	out := BassMono(buf, DefaultBassMonoCutoffHz)
	// Shared low band should pull both channels toward the mean (0), not
	// leave them at their original opposite extremes everywhere.
	if out.Channels[0][1000] == 1.0 && out.Channels[1][1000] == -1.0 {
		t.Fatal("expected bass-mono to alter out-of-phase content")
	}
}

func TestPhaseCorrelationOutOfPhase(t *testing.T) {
	a := pcm.NewBuffer(44100, 2, 100)
	b := pcm.NewBuffer(44100, 2, 100)
	for i := range a.Channels[0] {
		a.Channels[0][i] = 1
		a.Channels[1][i] = -1
		b.Channels[0][i] = 1
		b.Channels[1][i] = -1
	}
	corr := PhaseCorrelation(a, b)
	if corr >= 0 {
		t.Fatalf("expected negative correlation for out-of-phase content, got %v", corr)
	}
}
