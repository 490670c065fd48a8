package sweep

import (
	"math"

	"github.com/iwvelando/llc-sweeper/internal/config"
	"github.com/iwvelando/llc-sweeper/pkg/constants"
)

// Rescore recomputes the candidate score from its current fields. Lower is
// better. The score is deliberately linear and inspectable: normalized
// resonant-inductor RMS current, normalized capacitor peak voltage, distance
// from resonance, a flat penalty per warning, and a frequency-span penalty.
//
// Rescore is the only sanctioned way to update a score; anything appending
// data to a result (e.g. externally computed magnetics metrics plus their
// warnings) must call it again rather than hand-adjust the number.
func Rescore(spec config.Specification, r *Result) {
	spec = spec.Normalize()

	score := constants.CurrentWeight*(r.Stress.IlrRMS/constants.CurrentReference) +
		constants.VoltageWeight*(r.Stress.VcrPeak/spec.Vin) +
		constants.ResonanceWeight*math.Abs(r.FN-1.0)

	score += constants.WarningPenalty * float64(len(r.Warnings))
	score += spanPenalty(spec, r)

	r.Score = score
}

// spanPenalty charges for frequency-span difficulty: a proportional term for
// exceeding the allowed span ratio plus a flat penalty per absolute limit
// breach at the corners. An unsolvable corner arrives here with the span
// sentinel already in place, so it is charged through the same path.
func spanPenalty(spec config.Specification, r *Result) float64 {
	penalty := constants.SpanWeight * math.Max(0, r.FswSpanRatio-spec.SpanRatioAllowed)

	if spec.FswMaxLimit > 0 && r.FswMaxCorner > spec.FswMaxLimit {
		penalty += constants.LimitPenalty
	}
	if r.FswMinCorner < spec.FswMin {
		penalty += constants.LimitPenalty
	}
	return penalty
}
