// Package envelope computes the per-band envelope the decay analyzer
// operates on: an analytic-signal magnitude followed by a moving-average
// smoother.
package envelope

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
)

// DefaultWindowMS is the smoothing window length used when the caller does
// not specify one.
const DefaultWindowMS = 5.0

// Smooth computes the envelope of a band-filtered signal: analytic
// magnitude via the DFT sign-mask-and-double scheme, then a moving average
// of length windowMS milliseconds at sample rate fs.
func Smooth(x []float64, fs float64, windowMS float64) ([]float64, error) {
	mag, err := AnalyticMagnitude(x)
	if err != nil {
		return nil, err
	}
	w := int(math.Round(windowMS * 1e-3 * fs))
	return MovingAverage(mag, w)
}

// AnalyticMagnitude returns |analytic(x)| via a direct DFT: forward
// transform, zero the negative-frequency bins, double the positive-
// frequency bins, leave DC and Nyquist (for even length) untouched, inverse
// transform, take the absolute value of the resulting complex sequence.
//
// This is implemented directly on the spectrum rather than via any library
// "hilbert" helper, since those may disagree on DC/Nyquist handling.
func AnalyticMagnitude(x []float64) ([]float64, error) {
	n := len(x)
	if n == 0 {
		return nil, nil
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("envelope: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	spectrum := make([]complex128, n)
	if err := plan.Forward(spectrum, in); err != nil {
		return nil, fmt.Errorf("envelope: forward FFT failed: %w", err)
	}

	masked := make([]complex128, n)
	even := n%2 == 0
	nyquist := n / 2
	lastPositive := nyquist
	if even {
		lastPositive = nyquist - 1
	}
	for k := 0; k < n; k++ {
		switch {
		case k == 0:
			masked[k] = spectrum[k]
		case even && k == nyquist:
			masked[k] = spectrum[k]
		case k >= 1 && k <= lastPositive:
			masked[k] = 2 * spectrum[k]
		default:
			masked[k] = 0
		}
	}

	analytic := make([]complex128, n)
	if err := plan.Inverse(analytic, masked); err != nil {
		return nil, fmt.Errorf("envelope: inverse FFT failed: %w", err)
	}

	out := make([]float64, n)
	for i, v := range analytic {
		out[i] = cmplxAbs(v)
	}
	return out, nil
}

func cmplxAbs(v complex128) float64 {
	return math.Hypot(real(v), imag(v))
}

// MovingAverage applies a same-length moving-average (box kernel) filter of
// kernel length w. w=1 is identity; w<1 is an error; an empty input yields
// an empty output.
func MovingAverage(x []float64, w int) ([]float64, error) {
	if len(x) == 0 {
		return nil, nil
	}
	if w < 1 {
		return nil, fmt.Errorf("envelope: moving average window must be >= 1, got %d", w)
	}
	if w == 1 {
		out := make([]float64, len(x))
		copy(out, x)
		return out, nil
	}

	n := len(x)
	out := make([]float64, n)
	// 'same'-length convolution with a box kernel of length w, matching
	// numpy's np.convolve(..., mode='same') centering: for even w the extra
	// tap leads (left = ceil((w-1)/2) = w/2), not trails.
	left := w / 2
	for i := 0; i < n; i++ {
		var sum float64
		for k := -left; k < w-left; k++ {
			j := i + k
			if j < 0 || j >= n {
				continue
			}
			sum += x[j]
		}
		out[i] = sum / float64(w)
	}
	return out, nil
}
