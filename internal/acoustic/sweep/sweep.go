// Package sweep generates logarithmic sine sweeps and their matched inverse
// filters for impulse-response measurement, and reconstructs an IR from a
// recorded sweep by FFT deconvolution.
package sweep

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/jero-scafati/roomwaves/internal/acoustic/envelope"
	"github.com/jero-scafati/roomwaves/internal/acoustic/numeric"
)

// Generate synthesizes a Farina exponential sine sweep and its matched
// inverse filter, both peak-normalized to unit amplitude.
//
// duration is in seconds, fs in Hz, fLo/fHi the sweep's frequency range.
func Generate(duration, fs, fLo, fHi float64) (sweepOut, inverseOut []float64, err error) {
	if duration <= 0 || fs <= 0 || fLo <= 0 || fHi <= fLo {
		return nil, nil, fmt.Errorf("sweep: invalid parameters (duration=%v fs=%v fLo=%v fHi=%v)", duration, fs, fLo, fHi)
	}

	r := math.Log(fHi / fLo)
	n := int(math.Floor(duration * fs))
	l := duration / r
	k := 2 * math.Pi * fLo * l

	sweepOut = make([]float64, n)
	m := make([]float64, n)
	for i := 0; i < n; i++ {
		tt := float64(i) / fs
		sweepOut[i] = math.Sin(k * (math.Exp(tt/l) - 1))
		m[i] = fLo / ((k / l) * math.Exp(tt/l))
	}

	inverseOut = make([]float64, n)
	for i := 0; i < n; i++ {
		inverseOut[i] = m[i] * sweepOut[n-1-i]
	}

	peakNormalize(sweepOut)
	peakNormalize(inverseOut)
	return sweepOut, inverseOut, nil
}

func peakNormalize(x []float64) {
	peak := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return
	}
	for i := range x {
		x[i] /= peak
	}
}

// DeconvolveResult is the reconstructed impulse response from §4.7.2.
type DeconvolveResult struct {
	AudioData []float64
	SampleRate float64
}

const (
	defaultStartMarginMS  = 20.0
	defaultDurationFactor = 4.0
)

// Deconvolve reconstructs an impulse response from a recorded sweep r and
// its matched inverse filter g by frequency-domain deconvolution, trimming
// the result around the direct-sound peak.
//
// Returns (nil, false, nil) when the reconstruction is not computable (an
// all-zero deconvolution result) — spec §4.8's "not computable" sentinel,
// never an error for that case.
func Deconvolve(r, g []float64, fs float64) (*DeconvolveResult, bool, error) {
	return DeconvolveWithOptions(r, g, fs, defaultStartMarginMS, defaultDurationFactor)
}

// DeconvolveWithOptions is Deconvolve with explicit start margin (ms) and
// duration factor parameters.
func DeconvolveWithOptions(r, g []float64, fs, startMarginMS, durationFactor float64) (*DeconvolveResult, bool, error) {
	if len(r) == 0 || len(g) == 0 {
		return nil, false, fmt.Errorf("sweep: recording and inverse filter must be non-empty")
	}

	n := len(r) + len(g) - 1
	nFFT := numeric.NextPow2(n)

	plan, err := algofft.NewPlan64(nFFT)
	if err != nil {
		return nil, false, fmt.Errorf("sweep: failed to create FFT plan: %w", err)
	}

	rFreq, err := forwardPadded(plan, r, nFFT)
	if err != nil {
		return nil, false, err
	}
	gFreq, err := forwardPadded(plan, g, nFFT)
	if err != nil {
		return nil, false, err
	}

	product := make([]complex128, nFFT)
	for i := range product {
		product[i] = rFreq[i] * gFreq[i]
	}

	timeDomain := make([]complex128, nFFT)
	if err := plan.Inverse(timeDomain, product); err != nil {
		return nil, false, fmt.Errorf("sweep: inverse FFT failed: %w", err)
	}

	irFull := make([]float64, n)
	allZero := true
	for i := range irFull {
		irFull[i] = real(timeDomain[i])
		if irFull[i] != 0 {
			allZero = false
		}
	}
	if allZero {
		return nil, false, nil
	}

	peakIdx, peakVal := argmaxAbs(irFull)
	if peakVal < 1e-9 {
		peakNormalize(irFull)
		return &DeconvolveResult{AudioData: irFull, SampleRate: fs}, true, nil
	}

	startSamples := int(startMarginMS * fs / 1000)
	start := peakIdx - startSamples
	if start < 0 {
		start = 0
	}

	t60 := estimateTailT60(irFull[peakIdx:], peakVal, fs)

	irDuration := t60 * durationFactor
	end := peakIdx + int(irDuration*fs)
	if end > len(irFull) {
		end = len(irFull)
	}
	if end <= start {
		start = 0
		end = len(irFull)
	}

	trimmed := make([]float64, end-start)
	copy(trimmed, irFull[start:end])
	peakNormalize(trimmed)

	return &DeconvolveResult{AudioData: trimmed, SampleRate: fs}, true, nil
}

func forwardPadded(plan *algofft.Plan64, x []float64, n int) ([]complex128, error) {
	padded := make([]complex128, n)
	for i, v := range x {
		padded[i] = complex(v, 0)
	}
	freq := make([]complex128, n)
	if err := plan.Forward(freq, padded); err != nil {
		return nil, fmt.Errorf("sweep: forward FFT failed: %w", err)
	}
	return freq, nil
}

func argmaxAbs(x []float64) (idx int, val float64) {
	for i, v := range x {
		if a := math.Abs(v); a > val {
			val = a
			idx = i
		}
	}
	return idx, val
}

// estimateTailT60 estimates a quick-and-dirty T60 from the post-peak decay
// tail, used only to size the trim window around the reconstructed IR.
func estimateTailT60(tail []float64, peakVal, fs float64) float64 {
	mag, err := envelope.AnalyticMagnitude(tail)
	if err != nil || len(mag) == 0 {
		return 1.0
	}

	dB := make([]float64, len(mag))
	for i, v := range mag {
		dB[i] = 20 * math.Log10(v/peakVal+1e-9)
	}

	var times, dbVals []float64
	for i, v := range dB {
		if v >= -35 && v <= -5 {
			times = append(times, float64(i)/fs)
			dbVals = append(dbVals, v)
		}
	}

	if len(times) <= int(0.05*fs) {
		return 1.0
	}

	reg := numeric.LinearRegression(times, dbVals)
	if reg.Slope >= 0 {
		return 1.0
	}
	t60 := -60.0 / reg.Slope
	return clip(t60, 0.1, 10.0)
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
