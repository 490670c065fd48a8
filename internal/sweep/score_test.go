package sweep

import (
	"math"
	"strings"
	"testing"

	"github.com/iwvelando/llc-sweeper/internal/config"
	"github.com/iwvelando/llc-sweeper/pkg/equations"
)

func scoreSpec() config.Specification {
	return config.Specification{
		Vin:      400,
		Vout:     48,
		Pout:     600,
		FRTarget: 100e3,
		FswMin:   50e3,
		Coss:     80e-12,
		Deadtime: 2e-6,
	}.Normalize()
}

func cleanResult() Result {
	return Result{
		Tank: Tank{
			NUsed:  4,
			LnDes:  9,
			QeDes:  0.35,
			Lr:     27e-6,
			Cr:     91e-9,
			Lm:     243e-6,
			FRReal: 100e3,
			QeReal: 0.35,
			LnReal: 9.0,
		},
		TargetGain: 0.96,
		FN:         1.1,
		Fsw:        110e3,
		Gain:       0.96,
		Stress: equations.Stress{
			IlrRMS:  3.0,
			VcrPeak: 300.0,
		},
		FswMinCorner: 105e3,
		FswMaxCorner: 126e3,
		FswSpanRatio: 1.2,
		Valid:        true,
	}
}

func TestRescoreBaseTerms(t *testing.T) {
	spec := scoreSpec()
	res := cleanResult()
	Rescore(spec, &res)

	// 1.0*(3.0/3.0) + 1.0*(300/400) + 0.2*|1.1-1| and no penalties
	expected := 1.0 + 0.75 + 0.02
	if math.Abs(res.Score-expected) > 1e-9 {
		t.Errorf("Rescore() = %.6f, expected %.6f", res.Score, expected)
	}
}

func TestRescoreWarningPenalty(t *testing.T) {
	spec := scoreSpec()
	res := cleanResult()
	Rescore(spec, &res)
	base := res.Score

	// Appending data to a result requires a rescore; each warning costs a
	// flat 10 points.
	res.Warnings = append(res.Warnings, "magnetics: estimated temp rise 65 C")
	Rescore(spec, &res)
	if math.Abs(res.Score-(base+10.0)) > 1e-9 {
		t.Errorf("Rescore() with one warning = %.4f, expected %.4f", res.Score, base+10.0)
	}
}

func TestRescoreSpanPenalties(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(spec *config.Specification, r *Result)
		expected float64 // additional score over the clean baseline
	}{
		{
			name: "Excess span ratio charged proportionally",
			mutate: func(spec *config.Specification, r *Result) {
				r.FswSpanRatio = 2.6 // 0.6*(2.6-1.6)
			},
			expected: 0.6,
		},
		{
			name: "Sentinel span after corner failure",
			mutate: func(spec *config.Specification, r *Result) {
				r.FswSpanRatio = 5.0 // 0.6*(5.0-1.6)
			},
			expected: 2.04,
		},
		{
			name: "Low-line corner under frequency floor",
			mutate: func(spec *config.Specification, r *Result) {
				r.FswMinCorner = 40e3
			},
			expected: 5.0,
		},
		{
			name: "Light-load corner over absolute ceiling",
			mutate: func(spec *config.Specification, r *Result) {
				spec.FswMaxLimit = 120e3
			},
			expected: 5.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := scoreSpec()
			res := cleanResult()
			Rescore(spec, &res)
			base := res.Score

			tt.mutate(&spec, &res)
			Rescore(spec, &res)
			if math.Abs(res.Score-(base+tt.expected)) > 1e-9 {
				t.Errorf("Rescore() = %.4f, expected %.4f", res.Score, base+tt.expected)
			}
		})
	}
}

func TestValidateCleanResult(t *testing.T) {
	warnings := Validate(scoreSpec(), cleanResult())
	if len(warnings) != 0 {
		t.Errorf("Validate() = %v, expected no warnings", warnings)
	}
}

func TestValidateWarnings(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(r *Result)
		fragment string
	}{
		{
			name: "Lm above ZVS-safe maximum",
			mutate: func(r *Result) {
				r.Tank.Lm = 20e-3
			},
			fragment: "no ZVS at startup",
		},
		{
			name: "Switching frequency below floor",
			mutate: func(r *Result) {
				r.Fsw = 40e3
			},
			fragment: "fsw (40.0 kHz) < fsw_min",
		},
		{
			name: "Normalized frequency outside FHA band",
			mutate: func(r *Result) {
				r.FN = 2.8
			},
			fragment: "outside typical range",
		},
		{
			name: "Realized Ln drifted past bounds",
			mutate: func(r *Result) {
				r.Tank.LnReal = 11.0
			},
			fragment: "Ln_real",
		},
		{
			name: "Realized Qe drifted past bounds",
			mutate: func(r *Result) {
				r.Tank.QeReal = 0.6
			},
			fragment: "Qe_real",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := cleanResult()
			tt.mutate(&res)
			warnings := Validate(scoreSpec(), res)
			if len(warnings) != 1 {
				t.Fatalf("Validate() = %v, expected exactly one warning", warnings)
			}
			if !strings.Contains(warnings[0], tt.fragment) {
				t.Errorf("warning %q does not contain %q", warnings[0], tt.fragment)
			}
		})
	}
}
