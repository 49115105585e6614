package numeric

import (
	"math"
	"testing"
)

func TestToDBAllZero(t *testing.T) {
	out := ToDB(make([]float64, 8))
	for i, v := range out {
		if v != -100 {
			t.Fatalf("sample %d: got %v, want -100", i, v)
		}
	}
}

func TestToDBPeakNormalized(t *testing.T) {
	out := ToDB([]float64{1, 0.5, 0.25})
	if math.Abs(out[0]) > 1e-9 {
		t.Fatalf("peak sample should be 0 dB, got %v", out[0])
	}
	if out[1] >= out[0] || out[2] >= out[1] {
		t.Fatalf("expected strictly decreasing dB values, got %v", out)
	}
}

func TestLinearRegressionEmpty(t *testing.T) {
	r := LinearRegression(nil, nil)
	if r.Slope != 0 || r.Intercept != 0 {
		t.Fatalf("want zero sentinel, got %+v", r)
	}
}

func TestLinearRegressionDegenerate(t *testing.T) {
	r := LinearRegression([]float64{2, 2, 2}, []float64{1, 2, 3})
	if !math.IsInf(r.Slope, -1) {
		t.Fatalf("want slope=-Inf, got %v", r.Slope)
	}
}

func TestLinearRegressionExactLine(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{1, 3, 5, 7} // y = 2x + 1
	r := LinearRegression(x, y)
	if math.Abs(r.Slope-2) > 1e-9 || math.Abs(r.Intercept-1) > 1e-9 {
		t.Fatalf("got slope=%v intercept=%v, want 2, 1", r.Slope, r.Intercept)
	}
}

func TestLinearRegressionInRangeEmptyMask(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{0, 0, 0}
	r := LinearRegressionInRange(x, y, -1, -2)
	if !math.IsInf(r.Slope, -1) {
		t.Fatalf("want slope=-Inf for empty mask, got %v", r.Slope)
	}
}

func TestLinearRegressionInRangeMasked(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{0, -2, -4, -6, -8}
	r := LinearRegressionInRange(x, y, 0, -6)
	if math.Abs(r.Slope-(-2)) > 1e-9 {
		t.Fatalf("got slope=%v, want -2", r.Slope)
	}
}

func TestNextPow2(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 5: 8, 1024: 1024, 1025: 2048}
	for n, want := range cases {
		if got := NextPow2(n); got != want {
			t.Errorf("NextPow2(%d) = %d, want %d", n, got, want)
		}
	}
}
