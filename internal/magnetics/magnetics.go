// Package magnetics defines the narrow contract to an optional external
// magnetics-design advisor service. The advisor is an injected capability:
// when no endpoint is configured the Unavailable implementation is selected
// at composition time, so its absence is a clean status rather than a
// runtime failure.
package magnetics

import (
	"github.com/iwvelando/llc-sweeper/internal/config"
	"github.com/iwvelando/llc-sweeper/internal/sweep"
)

// Status tags an advisor outcome.
type Status string

const (
	// StatusOK means the advisor produced at least one design.
	StatusOK Status = "ok"

	// StatusUnavailable means no advisor is configured or reachable by design.
	StatusUnavailable Status = "unavailable"

	// StatusFail means the advisor ran and could not produce a design.
	StatusFail Status = "fail"
)

// Corner labels for advisor requests.
const (
	CornerFullLoad  = "full_load"
	CornerLightLoad = "light_load"
)

// Metrics summarizes the losses of a proposed magnetic design.
type Metrics struct {
	TotalLossW        float64 `json:"total_loss_W"`
	CoreLossW         float64 `json:"core_loss_W"`
	CopperLossW       float64 `json:"copper_loss_W"`
	EstimatedTempRise float64 `json:"estimated_temp_rise_C"`
	FillFactor        float64 `json:"fill_factor"`
	VolumeCm3         float64 `json:"volume_cm3"`
}

// Design is one candidate magnetic design proposed by the advisor.
type Design struct {
	Core           string  `json:"core"`
	Material       string  `json:"material"`
	PrimaryTurns   int     `json:"primary_turns"`
	SecondaryTurns int     `json:"secondary_turns"`
	WireGauge      string  `json:"wire_gauge"`
	Metrics        Metrics `json:"metrics"`
}

// Outcome is the structured result of one advisor invocation. Every status
// variant carries the same shape; consumers switch on Status.
type Outcome struct {
	Status   Status   `json:"status"`
	Designs  []Design `json:"top_designs"`
	Chosen   *Design  `json:"chosen,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty"`
	Metrics  Metrics  `json:"metrics"`
}

// Advisor proposes magnetic component designs for an evaluated tank
// candidate at a given operating corner.
type Advisor interface {
	DesignTransformer(spec config.Specification, res sweep.Result, corner string) Outcome
	DesignResonantInductor(spec config.Specification, res sweep.Result, corner string) Outcome
}

// Unavailable is the Advisor used when no magnetics service is configured.
type Unavailable struct{}

// DesignTransformer reports the unavailable status.
func (Unavailable) DesignTransformer(config.Specification, sweep.Result, string) Outcome {
	return Outcome{Status: StatusUnavailable}
}

// DesignResonantInductor reports the unavailable status.
func (Unavailable) DesignResonantInductor(config.Specification, sweep.Result, string) Outcome {
	return Outcome{Status: StatusUnavailable}
}
