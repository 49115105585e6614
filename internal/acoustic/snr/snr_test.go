package snr

import (
	"math"
	"testing"
)

func TestEstimateEmptyIsNotComputable(t *testing.T) {
	_, ok, err := Estimate(nil, DefaultTailFraction)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("want not-computable for empty input")
	}
}

func TestEstimateAllZeroIsNotComputable(t *testing.T) {
	_, ok, err := Estimate(make([]float64, 1024), DefaultTailFraction)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("want not-computable for all-zero input")
	}
}

func TestEstimateSilentTailIsInfinite(t *testing.T) {
	x := make([]float64, 1000)
	for i := 0; i < 800; i++ {
		x[i] = 1
	}
	db, ok, err := Estimate(x, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || !math.IsInf(db, 1) {
		t.Fatalf("got db=%v ok=%v, want +Inf,true", db, ok)
	}
}

func TestEstimateRejectsInvalidTailFraction(t *testing.T) {
	if _, _, err := Estimate([]float64{1, 2, 3}, 0); err == nil {
		t.Fatal("want error for tail_fraction=0")
	}
	if _, _, err := Estimate([]float64{1, 2, 3}, 1); err == nil {
		t.Fatal("want error for tail_fraction=1")
	}
}

func TestEstimateScaleInvariance(t *testing.T) {
	x := make([]float64, 44100)
	for i := range x {
		if i < 40000 {
			x[i] = math.Sin(float64(i) * 0.1)
		} else {
			x[i] = 0.001 * math.Sin(float64(i)*0.3)
		}
	}
	db1, ok1, err := Estimate(x, DefaultTailFraction)
	if err != nil || !ok1 {
		t.Fatal(err, ok1)
	}

	scaled := make([]float64, len(x))
	for i, v := range x {
		scaled[i] = 100 * v
	}
	db2, ok2, err := Estimate(scaled, DefaultTailFraction)
	if err != nil || !ok2 {
		t.Fatal(err, ok2)
	}

	if math.Abs(db1-db2) > 1e-6 {
		t.Fatalf("SNR not scale invariant: %v vs %v", db1, db2)
	}
}
