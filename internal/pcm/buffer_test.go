package pcm

import "testing"

func TestMonoDownmix(t *testing.T) {
	b := NewBuffer(48000, 2, 4)
	b.Channels[0] = []float32{1, 1, 1, 1}
	b.Channels[1] = []float32{-1, -1, -1, -1}
	mono := b.Mono()
	for i, v := range mono {
		if v != 0 {
			t.Fatalf("frame %d: got %v want 0", i, v)
		}
	}
}

func TestChannelBroadcastsMono(t *testing.T) {
	b := NewBuffer(48000, 1, 4)
	b.Channels[0] = []float32{0.1, 0.2, 0.3, 0.4}
	if got := b.Channel(1); &got[0] != &b.Channels[0][0] {
		t.Fatalf("expected channel 1 to fall back to channel 0's storage")
	}
}

func TestEmpty(t *testing.T) {
	if !(Buffer{}).Empty() {
		t.Fatal("zero-value buffer should be empty")
	}
	if NewBuffer(48000, 1, 0).Empty() != true {
		t.Fatal("zero-length buffer should be empty")
	}
	if NewBuffer(48000, 1, 1).Empty() {
		t.Fatal("non-empty buffer reported empty")
	}
}
