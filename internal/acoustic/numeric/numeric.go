// Package numeric provides the small scalar/slice primitives the acoustic
// analysis pipeline builds on: dB conversion, ordinary least squares, and
// power-of-two sizing.
package numeric

import "math"

// dBFloor is the clip floor applied before taking 10*log10, matching the
// pipeline's convention of reporting at most -100 dB for near-silent input.
const dBFloor = 1e-10

// ToDB normalizes |x| by its own peak, clips to dBFloor, and returns
// 10*log10 of the result. An all-zero input yields a sequence entirely at
// the clip floor (-100 dB).
func ToDB(x []float64) []float64 {
	out := make([]float64, len(x))
	peak := 0.0
	for _, v := range x {
		a := math.Abs(v)
		if a > peak {
			peak = a
		}
	}
	if peak == 0 {
		for i := range out {
			out[i] = 10 * math.Log10(dBFloor)
		}
		return out
	}
	for i, v := range x {
		norm := math.Abs(v) / peak
		if norm < dBFloor {
			norm = dBFloor
		}
		out[i] = 10 * math.Log10(norm)
	}
	return out
}

// Regression is the result of an ordinary least squares line fit.
type Regression struct {
	Slope     float64
	Intercept float64
}

// LinearRegression fits y = slope*x + intercept by ordinary least squares.
//
// For n=0 it returns slope=0, intercept=0. For a degenerate denominator (all
// x equal) it returns slope=-Inf, intercept=0 — the pipeline's "no decay"
// sentinel, never an error.
func LinearRegression(x, y []float64) Regression {
	n := len(x)
	if n == 0 {
		return Regression{}
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var num, den float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		num += dx * (y[i] - meanY)
		den += dx * dx
	}
	if den == 0 {
		return Regression{Slope: math.Inf(-1), Intercept: 0}
	}

	slope := num / den
	intercept := meanY - slope*meanX
	return Regression{Slope: slope, Intercept: intercept}
}

// LinearRegressionInRange fits a line restricted to samples where
// yLower <= y <= yUpper. If the mask selects no samples, it returns the
// slope=-Inf sentinel.
func LinearRegressionInRange(x, y []float64, yUpper, yLower float64) Regression {
	var mx, my []float64
	for i := range y {
		if y[i] >= yLower && y[i] <= yUpper {
			mx = append(mx, x[i])
			my = append(my, y[i])
		}
	}
	if len(mx) == 0 {
		return Regression{Slope: math.Inf(-1), Intercept: 0}
	}
	return LinearRegression(mx, my)
}

// NextPow2 returns the smallest power of two >= n.
func NextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
