// Package sweep drives the Cartesian exploration of the LLC tank design
// space: candidate generation, per-candidate evaluation at nominal and
// worst-case corners, validation, scoring, deduplication, and diverse top-N
// selection.
package sweep

import (
	"fmt"
	"math"
	"sort"

	"github.com/iwvelando/llc-sweeper/internal/config"
	"github.com/iwvelando/llc-sweeper/internal/solver"
	"github.com/iwvelando/llc-sweeper/pkg/constants"
	"github.com/iwvelando/llc-sweeper/pkg/equations"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// Run enumerates every (Ln, Qe) grid point, discretizes the ideal tank at
// each, evaluates the rounded candidates, and returns the deduplicated
// results sorted ascending by score. An empty slice means the sweep found no
// solvable candidate; the caller decides terminal behavior.
//
// Candidates whose nominal operating point cannot be solved are skipped
// entirely. Candidates with unsolvable corners are retained with a sentinel
// span ratio so they rank poorly rather than vanish.
func Run(logger *zap.Logger, spec config.Specification) []Result {
	if logger == nil {
		logger = zap.NewNop()
	}
	spec = spec.Normalize()

	nFloat, nUsed := equations.TurnsRatio(spec.Vin, spec.Vout)
	gReq := equations.RequiredGain(spec.Vin, spec.Vout, nUsed)

	var lnVals []float64
	for v := spec.LnMin; v < spec.LnMax+0.1; v += constants.LnStep {
		lnVals = append(lnVals, v)
	}
	qeVals := floats.Span(make([]float64, constants.QePoints), spec.QeMin, spec.QeMax)

	logger.Debug(fmt.Sprintf("sweeping %d Ln x %d Qe grid points", len(lnVals), len(qeVals)),
		zap.String("op", "sweep.Run"),
		zap.Int("nUsed", nUsed),
		zap.Float64("requiredGain", gReq),
	)

	var results []Result
	for _, ln := range lnVals {
		for _, qe := range qeVals {
			ideal := equations.Tank(spec.Vout, spec.Pout, nUsed, spec.FRTarget, ln, qe)
			sets := equations.Discretize(ideal.Lr, ideal.Cr, ideal.Lm,
				constants.DefaultInductorStep, constants.DefaultCapacitorStep)

			for _, set := range sets {
				res, ok := evaluate(spec, nFloat, nUsed, gReq, ln, qe, ideal, set)
				if !ok {
					logger.Debug("skipping unsolvable nominal operating point",
						zap.String("op", "sweep.Run"),
						zap.Float64("lnDes", ln),
						zap.Float64("qeDes", qe),
					)
					continue
				}
				results = append(results, res)
			}
		}
	}

	results = dedupe(results)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})

	logger.Info(fmt.Sprintf("sweep produced %d distinct candidates", len(results)),
		zap.String("op", "sweep.Run"),
	)
	return results
}

// evaluate builds one fully scored Result for a rounded component set. The
// second return value is false when the nominal operating point is
// unsolvable, which skips the candidate.
func evaluate(spec config.Specification, nFloat float64, nUsed int, gReq, ln, qe float64,
	ideal equations.TankComponents, set equations.ComponentSet) (Result, bool) {

	frReal, qeReal := equations.Recalculate(set.Lr, set.Cr, ideal.Re)
	lnReal := set.Lm / set.Lr

	fn, ok := solver.Solve(gReq, lnReal, qeReal)
	if !ok {
		return Result{}, false
	}
	fsw := fn * frReal

	res := Result{
		Tank: Tank{
			NFloat:  nFloat,
			NUsed:   nUsed,
			LnDes:   ln,
			QeDes:   qe,
			Lr:      set.Lr,
			Cr:      set.Cr,
			Lm:      set.Lm,
			FRReal:  frReal,
			QeReal:  qeReal,
			LnReal:  lnReal,
			LrIdeal: ideal.Lr,
			CrIdeal: ideal.Cr,
			LmIdeal: ideal.Lm,
		},
		TargetGain: gReq,
		FN:         fn,
		Fsw:        fsw,
		Gain:       equations.Gain(fn, lnReal, qeReal),
		Stress:     equations.StressSet(spec.Vin, spec.Vout, spec.Pout, nUsed, set.Lm, set.Cr, fsw),
		Valid:      true,
	}

	cornerWarnings := evaluateCorners(spec, nUsed, lnReal, qeReal, frReal, fsw, &res)

	res.Warnings = Validate(spec, res)
	res.Warnings = append(res.Warnings, cornerWarnings...)
	Rescore(spec, &res)
	return res, true
}

// evaluateCorners solves the two worst-case line/load corners and fills the
// span metrics on res, returning the warnings the corner checks raise.
//
// Low-line/full-load keeps the tank's nominal quality factor. High-line runs
// at light load, modeled as Qe scaled by the light-load ratio since loaded Q
// is inversely proportional to the load resistance; that proportionality is
// inherited from the FHA derivation and has not been independently verified.
func evaluateCorners(spec config.Specification, nUsed int, lnReal, qeReal, frReal, fswNominal float64, res *Result) []string {
	var warnings []string

	gMin := equations.RequiredGain(spec.VinMin, spec.Vout, nUsed)
	fnMin, okMin := solver.Solve(gMin, lnReal, qeReal)

	qeLight := qeReal * spec.LightLoadRatio
	gMax := equations.RequiredGain(spec.VinMax, spec.Vout, nUsed)
	fnMax, okMax := solver.Solve(gMax, lnReal, qeLight)

	if !okMin || !okMax {
		// Soft failure: pin the corners to the nominal point and let the
		// sentinel span ratio push the candidate down the ranking.
		res.FswMinCorner = fswNominal
		res.FswMaxCorner = fswNominal
		res.FswSpanRatio = constants.SpanSentinel
		warnings = append(warnings, "corner unsolvable (gain limit)")
	} else {
		fswMinCorner := fnMin * frReal
		fswMaxCorner := fnMax * frReal
		if fswMinCorner < 1e-9 {
			fswMinCorner = 1.0
		}
		res.FswMinCorner = fswMinCorner
		res.FswMaxCorner = fswMaxCorner
		res.FswSpanRatio = fswMaxCorner / fswMinCorner
	}

	if spec.FswMaxLimit > 0 && res.FswMaxCorner > spec.FswMaxLimit {
		warnings = append(warnings, fmt.Sprintf("fsw_max > %.0fk", spec.FswMaxLimit/1e3))
	}
	if res.FswMinCorner < spec.FswMin {
		warnings = append(warnings, fmt.Sprintf("fsw_min < %.0fk", spec.FswMin/1e3))
	}
	if res.FswSpanRatio > constants.SpanWarningThreshold {
		warnings = append(warnings, fmt.Sprintf("high fsw span (%.1fx)", res.FswSpanRatio))
	}

	return warnings
}

// componentKey identifies a physical component triple. Values land exactly on
// the manufacturable grid, so float equality is well-defined here.
type componentKey struct {
	lr, cr, lm float64
}

// dedupe keeps the lowest-score survivor per distinct (Lr, Cr, Lm) triple.
// Several grid points may round onto the same physical components. Survivors
// keep first-seen key order so the subsequent stable sort is deterministic.
func dedupe(results []Result) []Result {
	best := make(map[componentKey]int, len(results))
	var order []componentKey
	for i, r := range results {
		k := componentKey{lr: r.Tank.Lr, cr: r.Tank.Cr, lm: r.Tank.Lm}
		j, seen := best[k]
		if !seen {
			best[k] = i
			order = append(order, k)
		} else if r.Score < results[j].Score {
			best[k] = i
		}
	}
	out := make([]Result, 0, len(order))
	for _, k := range order {
		out = append(out, results[best[k]])
	}
	return out
}

// DiverseTop greedily walks the score-sorted results and returns up to n
// candidates that are mutually distinct in their design grid point: each
// accepted candidate differs from every previously accepted one by at least
// the Ln or the Qe diversity threshold.
func DiverseTop(results []Result, n int) []Result {
	if len(results) == 0 {
		return nil
	}

	selected := []Result{results[0]}
	for _, res := range results[1:] {
		if len(selected) >= n {
			break
		}
		distinct := true
		for _, s := range selected {
			dLn := math.Abs(res.Tank.LnDes - s.Tank.LnDes)
			dQe := math.Abs(res.Tank.QeDes - s.Tank.QeDes)
			if dLn < constants.DiversityLnThreshold && dQe < constants.DiversityQeThreshold {
				distinct = false
				break
			}
		}
		if distinct {
			selected = append(selected, res)
		}
	}
	return selected
}
