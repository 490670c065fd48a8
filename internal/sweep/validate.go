package sweep

import (
	"fmt"

	"github.com/iwvelando/llc-sweeper/internal/config"
	"github.com/iwvelando/llc-sweeper/pkg/constants"
	"github.com/iwvelando/llc-sweeper/pkg/equations"
)

// Validate checks the engineering constraints for a computed result and
// returns the warnings in a fixed order. Validation never removes a
// candidate; warnings feed the scorer as soft penalties.
func Validate(spec config.Specification, r Result) []string {
	spec = spec.Normalize()
	var warnings []string

	// ZVS startup check
	lmMax := equations.LmMax(spec.Deadtime, spec.Coss, spec.FswMin)
	if r.Tank.Lm > lmMax {
		warnings = append(warnings, fmt.Sprintf("Lm (%.1f uH) > Lm_max (%.1f uH): no ZVS at startup",
			r.Tank.Lm*1e6, lmMax*1e6))
	}

	// Switching frequency floor
	if r.Fsw < spec.FswMin {
		warnings = append(warnings, fmt.Sprintf("fsw (%.1f kHz) < fsw_min (%.1f kHz)",
			r.Fsw/1e3, spec.FswMin/1e3))
	}

	// FHA plausibility band
	if r.FN < constants.FNPlausibleMin || r.FN > constants.FNPlausibleMax {
		warnings = append(warnings, fmt.Sprintf("fN (%.2f) outside typical range [%.1f, %.1f]",
			r.FN, constants.FNPlausibleMin, constants.FNPlausibleMax))
	}

	// Rounding drift past the requested sweep bounds
	tol := constants.DriftTolerance
	if r.Tank.LnReal < spec.LnMin*(1-tol) || r.Tank.LnReal > spec.LnMax*(1+tol) {
		warnings = append(warnings, fmt.Sprintf("Ln_real (%.2f) out of bounds [%g, %g]",
			r.Tank.LnReal, spec.LnMin, spec.LnMax))
	}
	if r.Tank.QeReal < spec.QeMin*(1-tol) || r.Tank.QeReal > spec.QeMax*(1+tol) {
		warnings = append(warnings, fmt.Sprintf("Qe_real (%.3f) out of bounds [%g, %g]",
			r.Tank.QeReal, spec.QeMin, spec.QeMax))
	}

	return warnings
}
