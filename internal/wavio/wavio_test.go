package wavio

import (
	"bytes"
	"math"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func encodeTestWAV(t *testing.T, samples []int, sampleRate, bitDepth, channels int) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc := wav.NewEncoder(&buf, sampleRate, bitDepth, channels, 1)

	ib := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(ib); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeMonoRoundTrip(t *testing.T) {
	raw := []int{0, 16384, -16384, 32767, -32768}
	wavBytes := encodeTestWAV(t, raw, 44100, 16, 1)

	samples, fs, err := Decode(bytes.NewReader(wavBytes))
	if err != nil {
		t.Fatal(err)
	}
	if fs != 44100 {
		t.Fatalf("got fs=%d, want 44100", fs)
	}
	if len(samples) != len(raw) {
		t.Fatalf("got %d samples, want %d", len(samples), len(raw))
	}
	for i, v := range samples {
		if math.Abs(v) > 1.0001 {
			t.Fatalf("sample %d out of range: %v", i, v)
		}
	}
}

func TestDecodeDownmixesStereo(t *testing.T) {
	raw := []int{100, -100, 200, -200} // frame0: L=100,R=-100  frame1: L=200,R=-200
	wavBytes := encodeTestWAV(t, raw, 48000, 16, 2)

	samples, fs, err := Decode(bytes.NewReader(wavBytes))
	if err != nil {
		t.Fatal(err)
	}
	if fs != 48000 {
		t.Fatalf("got fs=%d, want 48000", fs)
	}
	if len(samples) != 2 {
		t.Fatalf("got %d frames, want 2", len(samples))
	}
	if math.Abs(samples[0]) > 1e-9 || math.Abs(samples[1]) > 1e-9 {
		t.Fatalf("expected symmetric L/R channels to downmix to ~0, got %v", samples)
	}
}

func TestDecodeRejectsInvalidFile(t *testing.T) {
	if _, _, err := Decode(bytes.NewReader([]byte("not a wav file"))); err == nil {
		t.Fatal("want error for invalid WAV data")
	}
}
