// Package snr estimates a global signal-to-noise ratio from an impulse
// response's peak amplitude and the RMS of its noise tail.
package snr

import (
	"fmt"
	"math"
)

// DefaultTailFraction is the fraction of the IR treated as the noise tail
// when the caller does not specify one.
const DefaultTailFraction = 0.2

// Estimate computes 20*log10(peak/tailRMS) for x, using the last
// tailFraction of the signal as the noise tail.
//
// Returns (0, false, nil) for an empty or all-zero input — not computable,
// per spec §4.8 ("undefined (sentinel)"). Returns (+Inf, true, nil) when
// the tail is perfectly silent.
func Estimate(x []float64, tailFraction float64) (db float64, ok bool, err error) {
	if tailFraction <= 0 || tailFraction >= 1 {
		return 0, false, fmt.Errorf("snr: tail_fraction must be in (0,1), got %v", tailFraction)
	}
	if len(x) == 0 {
		return 0, false, nil
	}

	peak := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return 0, false, nil
	}

	start := int(float64(len(x)) * (1 - tailFraction))
	tail := x[start:]
	if len(tail) == 0 {
		return 0, false, nil
	}

	var sumSq float64
	for _, v := range tail {
		sumSq += v * v
	}
	noiseRMS := math.Sqrt(sumSq / float64(len(tail)))

	if noiseRMS == 0 {
		return math.Inf(1), true, nil
	}
	return 20 * math.Log10(peak/noiseRMS), true, nil
}
