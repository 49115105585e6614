package sweep

import (
	"math"
	"testing"
)

func TestGenerateLengthAndNormalization(t *testing.T) {
	s, inv, err := Generate(3.0, 48000, 20, 20000)
	if err != nil {
		t.Fatal(err)
	}
	wantLen := int(3.0 * 48000)
	if len(s) != wantLen || len(inv) != wantLen {
		t.Fatalf("got lengths %d,%d want %d", len(s), len(inv), wantLen)
	}
	assertPeakNormalized(t, s)
	assertPeakNormalized(t, inv)
}

func assertPeakNormalized(t *testing.T, x []float64) {
	t.Helper()
	peak := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if math.Abs(peak-1) > 1e-9 {
		t.Fatalf("peak = %v, want 1", peak)
	}
}

func TestGenerateRejectsInvalidRange(t *testing.T) {
	if _, _, err := Generate(1, 44100, 100, 50); err == nil {
		t.Fatal("want error when fHi <= fLo")
	}
}

func TestDeconvolveRoundTripSingleDominantPeak(t *testing.T) {
	fs := 48000.0
	s, inv, err := Generate(1.0, fs, 20, 20000)
	if err != nil {
		t.Fatal(err)
	}

	result, ok, err := Deconvolve(s, inv, fs)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected a computable result")
	}

	peakIdx, peakVal := argmaxAbs(result.AudioData)
	for i, v := range result.AudioData {
		if i == peakIdx {
			continue
		}
		if math.Abs(v) > 0.3*peakVal {
			t.Fatalf("secondary peak at %d (%v) too close to dominant peak %v at %d", i, v, peakVal, peakIdx)
		}
	}
}

func TestDeconvolveRejectsEmptyInputs(t *testing.T) {
	if _, _, err := Deconvolve(nil, []float64{1}, 44100); err == nil {
		t.Fatal("want error for empty recording")
	}
}
