// Package decay implements the Lundeby iterative crossover search and the
// truncated Schroeder backward integration it feeds, the most delicate
// stage of the acoustic analysis pipeline.
package decay

import (
	"math"

	"github.com/jero-scafati/roomwaves/internal/acoustic/numeric"
)

// DefaultBlockMS is the block length used for the coarse RMS decay the
// Lundeby search operates on.
const DefaultBlockMS = 20.0

const maxLundebyIterations = 10

// BlockRMS partitions envelope into contiguous blocks of B = round(fs *
// blockMS/1000) samples, discards a trailing partial block, and returns the
// per-block RMS sequence together with the effective block sample rate.
func BlockRMS(envelope []float64, fs float64, blockMS float64) (rms []float64, fsRMS float64, blockSize int) {
	b := int(math.Round(fs * blockMS / 1000))
	if b < 1 {
		b = 1
	}
	nBlocks := len(envelope) / b
	rms = make([]float64, nBlocks)
	for k := 0; k < nBlocks; k++ {
		var sumSq float64
		for i := k * b; i < (k+1)*b; i++ {
			sumSq += envelope[i] * envelope[i]
		}
		rms[k] = math.Sqrt(sumSq / float64(b))
	}
	return rms, fs / float64(b), b
}

// SchroederIntegral computes the truncated backward integration of power
// samples p (dt is the sample period of p): S[n] = sum_{m=n..K-1} p[m]^2*dt
// for n < K, and 0 for n >= K. cutoff K is exclusive; pass len(p) for an
// untruncated integral. It also returns p squared elementwise.
func SchroederIntegral(p []float64, dt float64, cutoff int) (schroeder, pSquared []float64) {
	n := len(p)
	if cutoff > n {
		cutoff = n
	}
	if cutoff < 0 {
		cutoff = 0
	}

	pSquared = make([]float64, n)
	for i, v := range p {
		pSquared[i] = v * v
	}

	schroeder = make([]float64, n)
	var acc float64
	for i := cutoff - 1; i >= 0; i-- {
		acc += pSquared[i] * dt
		schroeder[i] = acc
	}
	// schroeder[cutoff:] stays at its zero value.
	return schroeder, pSquared
}

// Result is the Lundeby analyzer's output for one band.
type Result struct {
	CrossoverIndex   int       // sample index in the original IR, [1, len(IR)]
	NoiseStartIndex  int       // i_ns in original IR samples
	SchroederCurve   []float64 // length len(IR), zero at and beyond CrossoverIndex
	SchroederCurveDB []float64 // dB-normalized companion, max shifted to 0 dB
}

// Analyze runs the Lundeby iterative crossover search on a band's envelope,
// then computes the Schroeder integral truncated at the discovered
// crossover, both expressed in the original IR's sample domain.
func Analyze(envelope []float64, fs float64, blockMS float64) Result {
	irLen := len(envelope)
	if irLen == 0 {
		return Result{CrossoverIndex: 1}
	}

	rms, fsRMS, blockSize := BlockRMS(envelope, fs, blockMS)
	if len(rms) < 2 {
		schroeder, _ := SchroederIntegral(envelope, 1/fs, irLen)
		return Result{
			CrossoverIndex:   irLen,
			NoiseStartIndex:  irLen,
			SchroederCurve:   schroeder,
			SchroederCurveDB: normalizedDB(schroeder),
		}
	}

	schRms, _ := SchroederIntegral(rms, 1/fsRMS, len(rms))
	dB := numeric.ToDB(schRms)
	t := make([]float64, len(dB))
	for k := range t {
		t[k] = float64(k) / fsRMS
	}

	tailStart := int(math.Round(float64(len(dB)) * 0.9))
	if tailStart >= len(dB) {
		tailStart = len(dB) - 1
	}
	noise := mean(dB[tailStart:])

	reg := numeric.LinearRegressionInRange(t, dB, 0, noise+7.5)
	tCross := crossoverTime(noise, reg)

	iNs := 0
	for iter := 0; iter < maxLundebyIterations; iter++ {
		if !math.IsInf(reg.Slope, 0) && reg.Slope != 0 {
			tNs := (noise + 7.5 - reg.Intercept) / reg.Slope
			iNs = int(math.Round(tNs * fs))
		}
		if iNs < 0 {
			iNs = 0
		}
		if iNs > irLen {
			iNs = irLen
		}
		if tail := irLen - iNs; tail < int(math.Round(0.1*float64(irLen))) {
			iNs = irLen - int(math.Round(0.1*float64(irLen)))
			if iNs < 0 {
				iNs = 0
			}
		}

		blockIdx := iNs / blockSize
		if blockIdx > len(dB) {
			blockIdx = len(dB)
		}
		if blockIdx >= len(dB) {
			blockIdx = len(dB) - 1
		}
		if blockIdx < 0 {
			blockIdx = 0
		}
		noise = mean(dB[blockIdx:])

		upper := -5.0
		lower := noise + 10
		if lower >= upper {
			break
		}

		newReg := numeric.LinearRegressionInRange(t, dB, upper, lower)
		newTCross := crossoverTime(noise, newReg)

		if math.Abs(newTCross-tCross) < 1e-3 {
			reg = newReg
			tCross = newTCross
			break
		}
		reg = newReg
		tCross = newTCross
	}

	crossIdx := irLen
	if tc := tCross * fs; tc < float64(irLen) {
		crossIdx = int(math.Round(tc))
	}
	if crossIdx < 1 {
		crossIdx = 1
	}
	if crossIdx > irLen {
		crossIdx = irLen
	}

	schroeder, _ := SchroederIntegral(envelope, 1/fs, crossIdx)
	dBCurve := normalizedDB(schroeder)

	return Result{
		CrossoverIndex:   crossIdx,
		NoiseStartIndex:  iNs,
		SchroederCurve:   schroeder,
		SchroederCurveDB: dBCurve,
	}
}

// crossoverTime solves (noise - intercept) / slope = t_cross, returning a
// value that sorts as "very late" (the end of the signal) when the
// regression is degenerate, so the caller's clipping naturally falls back
// to the full length instead of producing NaN/Inf downstream.
func crossoverTime(noise float64, reg numeric.Regression) float64 {
	if reg.Slope == 0 || math.IsInf(reg.Slope, 0) {
		return math.Inf(1)
	}
	return (noise - reg.Intercept) / reg.Slope
}

func normalizedDB(x []float64) []float64 {
	db := numeric.ToDB(x)
	if len(db) == 0 {
		return db
	}
	max := db[0]
	for _, v := range db {
		if v > max {
			max = v
		}
	}
	out := make([]float64, len(db))
	for i, v := range db {
		out[i] = v - max
	}
	return out
}

func mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}
