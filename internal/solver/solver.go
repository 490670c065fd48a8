// Package solver finds the normalized switching frequency that delivers a
// required FHA gain for a given tank. The solve is fully deterministic:
// identical inputs always produce identical output.
package solver

import (
	"math"

	"github.com/iwvelando/llc-sweeper/pkg/constants"
	"github.com/iwvelando/llc-sweeper/pkg/equations"
	"gonum.org/v1/gonum/floats"
)

const (
	bisectionTolerance  = 1e-12
	bisectionIterations = 200
)

// DefaultSearchRange is the widest normalized frequency interval considered.
var DefaultSearchRange = [2]float64{0.3, 3.0}

// SolveFN solves gain(fN, ln, qe) == targetGain for fN within searchRange.
// The second return value reports whether a solution was found; a false
// result is an expected outcome for unreachable gains, not an error.
//
// Strategy: a resonance shortcut for targets near unity, then bracketed
// bisection on the regime-appropriate sub-interval, then a dense linear scan
// accepted only when its best sample is within tol of the target.
func SolveFN(targetGain, ln, qe float64, searchRange [2]float64, tol float64) (float64, bool) {
	if math.Abs(targetGain-1.0) < constants.ResonanceGainTolerance {
		// M(1, ln, qe) == 1 identically; no solve needed.
		return 1.0, true
	}

	// Regime selection: gains below unity live above resonance, gains above
	// unity live below resonance.
	var lo, hi float64
	if targetGain < 1.0 {
		lo = math.Max(1.000001, searchRange[0])
		hi = math.Max(2.5, searchRange[1])
	} else {
		lo = math.Max(0.4, searchRange[0])
		hi = math.Min(0.999999, searchRange[1])
	}

	errFunc := func(f float64) float64 {
		return equations.Gain(f, ln, qe) - targetGain
	}

	if fn, ok := bisect(errFunc, lo, hi); ok {
		return fn, true
	}

	return scan(errFunc, lo, hi, tol)
}

// Solve runs SolveFN with the default search range and gain tolerance.
func Solve(targetGain, ln, qe float64) (float64, bool) {
	return SolveFN(targetGain, ln, qe, DefaultSearchRange, constants.DefaultGainTolerance)
}

// bisect performs bracketed root-finding, valid only when the error function
// changes sign across the interval endpoints.
func bisect(errFunc func(float64) float64, lo, hi float64) (float64, bool) {
	fLo := errFunc(lo)
	fHi := errFunc(hi)
	if fLo == 0 {
		return lo, true
	}
	if fHi == 0 {
		return hi, true
	}
	if fLo*fHi > 0 {
		return 0, false
	}

	for i := 0; i < bisectionIterations && hi-lo > bisectionTolerance; i++ {
		mid := 0.5 * (lo + hi)
		fMid := errFunc(mid)
		if fMid == 0 {
			return mid, true
		}
		if fLo*fMid < 0 {
			hi = mid
		} else {
			lo = mid
			fLo = fMid
		}
	}
	return 0.5 * (lo + hi), true
}

// scan is the fallback strategy: a fixed-count linear sampling of the
// interval, accepting the sample minimizing |err| when that minimum is
// within tolerance.
func scan(errFunc func(float64) float64, lo, hi, tol float64) (float64, bool) {
	samples := floats.Span(make([]float64, constants.ScanSamples), lo, hi)
	errs := make([]float64, len(samples))
	for i, f := range samples {
		errs[i] = math.Abs(errFunc(f))
	}
	idx := floats.MinIdx(errs)
	if errs[idx] < tol {
		return samples[idx], true
	}
	return 0, false
}
