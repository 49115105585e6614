// Package params derives the final ISO 3382 descriptors — EDT, T20/T30
// derived T60, C50, D50 — from a band's decay curve and band-filtered
// signal.
package params

import (
	"math"

	"github.com/jero-scafati/roomwaves/internal/acoustic/numeric"
)

const (
	edtUpper, edtLower = -1.0, -11.0
	t20Upper, t20Lower = -5.0, -25.0
	t30Upper, t30Lower = -5.0, -35.0

	clarityFloor = 1e-12
)

// BandParameters is the scalar descriptor set for one frequency band.
type BandParameters struct {
	EDT          float64
	T60FromT20   float64
	T60FromT30   float64
	C50          float64
	D50          float64
	// Flag is non-empty when a regression used to derive EDT/T60_* did not
	// converge (non-negative slope, or the -Inf empty-window sentinel, on its
	// decay window) — spec §7's "prefer explicit flagging" policy. The
	// numeric field is still set to -60/slope verbatim (so it reads +0 or
	// -Inf), but callers must check Flag before trusting it.
	Flag string
}

// Calculate derives BandParameters for one band.
//
// decayCurveDB is the band's normalized dB decay curve (max shifted to
// 0 dB, e.g. decay.Result.SchroederCurveDB). bandSignal is the zero-phase
// band-pass-filtered IR. noiseStartIndex is the Lundeby noise-estimation
// start index in the same sample domain as bandSignal. fs is the sample
// rate.
func Calculate(decayCurveDB, bandSignal []float64, noiseStartIndex int, fs float64) BandParameters {
	t := make([]float64, len(decayCurveDB))
	for i := range t {
		t[i] = float64(i) / fs
	}

	edtReg := numeric.LinearRegressionInRange(t, decayCurveDB, edtUpper, edtLower)
	t20Reg := numeric.LinearRegressionInRange(t, decayCurveDB, t20Upper, t20Lower)
	t30Reg := numeric.LinearRegressionInRange(t, decayCurveDB, t30Upper, t30Lower)

	edt, edtFlagged := fromSlope(edtReg.Slope, 60)
	t60T20, t20Flagged := fromSlope(t20Reg.Slope, 60)
	t60T30, t30Flagged := fromSlope(t30Reg.Slope, 60)

	c50, d50 := clarityAndDefinition(bandSignal, noiseStartIndex, fs)

	flag := ""
	if edtFlagged || t20Flagged || t30Flagged {
		flag = "decay regression did not converge"
	}

	return BandParameters{
		EDT:        edt,
		T60FromT20: t60T20,
		T60FromT30: t60T30,
		C50:        c50,
		D50:        d50,
		Flag:       flag,
	}
}

// fromSlope computes -target/slope, reporting whether the slope indicates
// non-convergence (slope >= 0, i.e. no decay was observed, or the -Inf
// sentinel for an empty regression window).
func fromSlope(slope, target float64) (value float64, flagged bool) {
	return -target / slope, slope >= 0 || math.IsInf(slope, -1)
}

// clarityAndDefinition computes the noise-corrected, peak-aligned C50/D50
// pair from a band's squared signal, matching the on-disk
// parameter_calculation.py variant (spec §4.5's Open Question, resolved in
// DESIGN.md).
func clarityAndDefinition(bandSignal []float64, noiseStartIndex int, fs float64) (c50, d50 float64) {
	n := len(bandSignal)
	if n == 0 {
		return 0, 0
	}

	pSquared := make([]float64, n)
	peakIdx := 0
	for i, v := range bandSignal {
		pSquared[i] = v * v
		if pSquared[i] > pSquared[peakIdx] {
			peakIdx = i
		}
	}

	if noiseStartIndex >= n || noiseStartIndex < 0 {
		noiseStartIndex = maxInt(0, n-1)
	}
	noiseSlice := pSquared[noiseStartIndex:]
	var noisePowerPerSample float64
	if len(noiseSlice) > 0 {
		noisePowerPerSample = meanOf(noiseSlice)
	}

	samples50ms := int(0.050 * fs)
	t0 := peakIdx
	t50 := minInt(t0+samples50ms, n)

	totalEnergyRaw := sumOf(pSquared)
	totalEnergyCorrected := totalEnergyRaw - float64(n)*noisePowerPerSample

	early50Len := t50 - t0
	earlyEnergyRaw := sumOf(pSquared[t0:t50])
	earlyEnergyCorrected := earlyEnergyRaw - float64(early50Len)*noisePowerPerSample

	lateEnergyCorrected := totalEnergyCorrected - earlyEnergyCorrected

	totalEnergyCorrected = math.Max(totalEnergyCorrected, clarityFloor)
	earlyEnergyCorrected = math.Max(earlyEnergyCorrected, clarityFloor)
	lateEnergyCorrected = math.Max(lateEnergyCorrected, clarityFloor)

	d50 = math.Min(100.0*(earlyEnergyCorrected/totalEnergyCorrected), 100.0)
	c50 = 10.0 * math.Log10(earlyEnergyCorrected/lateEnergyCorrected)
	return c50, d50
}

func sumOf(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v
	}
	return s
}

func meanOf(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return sumOf(x) / float64(len(x))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
