package envelope

import (
	"math"
	"testing"
)

func TestAnalyticMagnitudeOfCosineIsConstant(t *testing.T) {
	const n = 256
	const freq = 10.0
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Cos(2 * math.Pi * freq * float64(i) / n)
	}
	mag, err := AnalyticMagnitude(x)
	if err != nil {
		t.Fatal(err)
	}
	// Away from the edges, a pure cosine's analytic-signal magnitude is ~1.
	for i := 20; i < n-20; i++ {
		if math.Abs(mag[i]-1) > 0.05 {
			t.Fatalf("sample %d: got magnitude %v, want ~1", i, mag[i])
		}
	}
}

func TestAnalyticMagnitudeNonNegative(t *testing.T) {
	x := []float64{1, -3, 2, -0.5, 0, 4, -4, 1}
	mag, err := AnalyticMagnitude(x)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range mag {
		if v < 0 {
			t.Fatalf("sample %d: got negative magnitude %v", i, v)
		}
	}
}

func TestAnalyticMagnitudeEmpty(t *testing.T) {
	mag, err := AnalyticMagnitude(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(mag) != 0 {
		t.Fatalf("want empty output, got %v", mag)
	}
}

func TestMovingAverageIdentityForW1(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	out, err := MovingAverage(x, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := range x {
		if out[i] != x[i] {
			t.Fatalf("sample %d: got %v, want %v", i, out[i], x[i])
		}
	}
}

func TestMovingAverageRejectsSubOneWindow(t *testing.T) {
	if _, err := MovingAverage([]float64{1, 2, 3}, 0); err == nil {
		t.Fatal("want error for window < 1")
	}
}

func TestMovingAverageEmptyInput(t *testing.T) {
	out, err := MovingAverage(nil, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Fatalf("want empty output, got %v", out)
	}
}

func TestMovingAverageSmoothsConstant(t *testing.T) {
	x := make([]float64, 100)
	for i := range x {
		x[i] = 3.0
	}
	out, err := MovingAverage(x, 7)
	if err != nil {
		t.Fatal(err)
	}
	for i := 10; i < 90; i++ {
		if math.Abs(out[i]-3.0) > 1e-9 {
			t.Fatalf("sample %d: got %v, want 3.0", i, out[i])
		}
	}
}

func TestSmoothPreservesLength(t *testing.T) {
	x := make([]float64, 512)
	x[0] = 1
	out, err := Smooth(x, 44100, DefaultWindowMS)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(x) {
		t.Fatalf("got length %d, want %d", len(out), len(x))
	}
	for i, v := range out {
		if v < 0 {
			t.Fatalf("sample %d: envelope must be non-negative, got %v", i, v)
		}
	}
}
