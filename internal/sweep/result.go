package sweep

import "github.com/iwvelando/llc-sweeper/pkg/equations"

// Tank holds the designed resonant tank for one candidate: the grid point
// that generated it, the selected real components, and the parameters
// recalculated after rounding.
type Tank struct {
	NFloat float64 `json:"nFloat"`
	NUsed  int     `json:"nUsed"`

	// Design targets (the sweep grid point)
	LnDes float64 `json:"lnDes"`
	QeDes float64 `json:"qeDes"`

	// Selected real components
	Lr float64 `json:"lr"`
	Cr float64 `json:"cr"`
	Lm float64 `json:"lm"`

	// Recalculated after rounding
	FRReal float64 `json:"fRReal"`
	QeReal float64 `json:"qeReal"`
	LnReal float64 `json:"lnReal"`

	// Ideal pre-rounding values, kept for reference
	LrIdeal float64 `json:"lrIdeal"`
	CrIdeal float64 `json:"crIdeal"`
	LmIdeal float64 `json:"lmIdeal"`
}

// Result is one evaluated operating point for one tank.
type Result struct {
	Tank Tank `json:"tank"`

	// Nominal operating point
	TargetGain float64 `json:"targetGain"`
	FN         float64 `json:"fN"`
	Fsw        float64 `json:"fsw"`
	Gain       float64 `json:"gain"`

	Stress equations.Stress `json:"stress"`

	// Worst-case line/load corner frequencies and their ratio
	FswMinCorner float64 `json:"fswMinCorner"`
	FswMaxCorner float64 `json:"fswMaxCorner"`
	FswSpanRatio float64 `json:"fswSpanRatio"`

	Score    float64  `json:"score"`
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings,omitempty"`
}
