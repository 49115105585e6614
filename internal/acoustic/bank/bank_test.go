package bank

import (
	"math"
	"testing"
)

func TestNewRejectsInvalidFilterType(t *testing.T) {
	if _, err := New(44100, FilterType(2)); err == nil {
		t.Fatal("want error for filter_type=2")
	}
}

func TestNewRejectsNonPositiveSampleRate(t *testing.T) {
	if _, err := New(0, Octave); err == nil {
		t.Fatal("want error for fs=0")
	}
}

func TestOctaveBandCount(t *testing.T) {
	bk, err := New(44100, Octave)
	if err != nil {
		t.Fatal(err)
	}
	if len(bk.Bands()) != len(octaveCenters) {
		t.Fatalf("got %d bands, want %d", len(bk.Bands()), len(octaveCenters))
	}
}

func TestHighBandsDroppedNearNyquist(t *testing.T) {
	// At fs=8000, nyquist=4000; the 4000 and 8000 Hz octave bands both have
	// high cutoffs at or above nyquist and must be skipped, not clamped.
	bk, err := New(8000, Octave)
	if err != nil {
		t.Fatal(err)
	}
	for _, band := range bk.Bands() {
		if band.HighCutoff >= 4000 {
			t.Fatalf("band fc=%v should have been dropped (high=%v >= nyquist)", band.CenterFreq, band.HighCutoff)
		}
	}
}

func TestApplyPreservesLength(t *testing.T) {
	bk, err := New(44100, Octave)
	if err != nil {
		t.Fatal(err)
	}
	x := make([]float64, 2048)
	x[0] = 1
	out := bk.Apply(x)
	for fc, sig := range out {
		if len(sig) != len(x) {
			t.Fatalf("band %d: got length %d, want %d", fc, len(sig), len(x))
		}
	}
}

func TestApplyNoNaNOrInf(t *testing.T) {
	bk, err := New(44100, ThirdOctave)
	if err != nil {
		t.Fatal(err)
	}
	x := make([]float64, 4096)
	x[0] = 1
	for fc, sig := range bk.Apply(x) {
		for i, v := range sig {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("band %d sample %d is %v", fc, i, v)
			}
		}
	}
}
