package fx

import (
	"math"
	"testing"

	"github.com/linuxmatters/setmerge/internal/pcm"
)

func TestNoiseSweepRejectsInvalidParams(t *testing.T) {
	buf := toneBuffer(44100, 1, 4410, 0)
	out := NoiseSweep(buf, math.NaN(), 1, NewRand(1))
	if !bufEqual(buf, out) {
		t.Fatal("expected buffer unchanged for NaN start")
	}
	out = NoiseSweep(buf, 0, -1, NewRand(1))
	if !bufEqual(buf, out) {
		t.Fatal("expected buffer unchanged for negative duration")
	}
}

func TestNoiseSweepIsDeterministic(t *testing.T) {
	buf := toneBuffer(44100, 1, 4410, 0)
	a := NoiseSweep(buf, 0, 0.05, NewRand(42))
	b := NoiseSweep(buf, 0, 0.05, NewRand(42))
	if !bufEqual(a, b) {
		t.Fatal("same seed should produce identical output")
	}
}

func TestReverseReverbNoop(t *testing.T) {
	buf := toneBuffer(44100, 1, 100, 0.5)
	out := ReverseReverb(buf, 0, -1)
	if !bufEqual(buf, out) {
		t.Fatal("expected no-op on negative duration")
	}
}

func TestTapeStopZeroFillsBeyondStop(t *testing.T) {
	buf := toneBuffer(44100, 1, 88200, 0.5)
	out := TapeStop(buf, 1.0, 0.2)
	stopIdx := 44100
	for i := stopIdx; i < len(out.Channels[0]); i++ {
		if out.Channels[0][i] != 0 {
			t.Fatalf("expected zero fill beyond stop at %d, got %v", i, out.Channels[0][i])
		}
	}
}

func TestStutterNoopOnZeroBPM(t *testing.T) {
	buf := toneBuffer(44100, 1, 4410, 0.5)
	out := Stutter(buf, 0, 0, 1, 8)
	if !bufEqual(buf, out) {
		t.Fatal("expected no-op on zero bpm")
	}
}

func TestStutterRepeatsFirstSlice(t *testing.T) {
	buf := pcm.NewBuffer(8000, 1, 20000)
	for i := range buf.Channels[0] {
		buf.Channels[0][i] = float32(i)
	}
	out := Stutter(buf, 0, 120, 1, 4)
	sliceLen := (4 * 60 / 120 * 8000) / 4
	for slice := 1; slice < 4; slice++ {
		for i := 0; i < sliceLen; i++ {
			got := out.Channels[0][slice*sliceLen+i]
			want := out.Channels[0][i]
			if got != want {
				t.Fatalf("slice %d sample %d: got %v want %v", slice, i, got, want)
			}
		}
	}
}

func TestEQMorphMonotoneBlend(t *testing.T) {
	a := toneBuffer(44100, 1, 44100, 1.0)
	b := toneBuffer(44100, 1, 44100, 1.0)
	outA, outB := EQMorph(a, b, 1.0)
	if outA.Channels[0][0] <= outA.Channels[0][22050] {
		t.Fatal("expected A's amplitude to decrease across the overlap")
	}
	if outB.Channels[0][0] >= outB.Channels[0][22050] {
		t.Fatal("expected B's amplitude to increase across the overlap")
	}
}

func bufEqual(a, b pcm.Buffer) bool {
	if a.SampleRate != b.SampleRate || len(a.Channels) != len(b.Channels) {
		return false
	}
	for c := range a.Channels {
		if len(a.Channels[c]) != len(b.Channels[c]) {
			return false
		}
		for i := range a.Channels[c] {
			if a.Channels[c][i] != b.Channels[c][i] {
				return false
			}
		}
	}
	return true
}
