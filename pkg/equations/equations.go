// Package equations provides the closed-form first-harmonic-approximation
// (FHA) design equations for a half-bridge LLC resonant converter. All
// functions are pure; callers are responsible for keeping Ln, Qe, and fN
// away from zero.
package equations

import (
	"math"
)

// TankComponents holds the ideal resonant tank values for one design point.
type TankComponents struct {
	Re float64 // reflected AC resistance (ohm)
	Cr float64 // resonant capacitor (F)
	Lr float64 // resonant inductor (H)
	Lm float64 // magnetizing inductance (H)
	Rl float64 // DC load resistance (ohm)
}

// Stress holds the component stress quantities at one operating point.
type Stress struct {
	IlmPeak float64 `json:"ilmPeak"` // magnetizing current peak (A)
	IlmRMS  float64 `json:"ilmRms"`  // magnetizing current RMS (A)
	IlrRMS  float64 `json:"ilrRms"`  // resonant inductor current RMS (A)
	IlrPeak float64 `json:"ilrPeak"` // resonant inductor current peak (A)
	VcrRMS  float64 `json:"vcrRms"`  // resonant capacitor AC voltage RMS (V)
	VcrPeak float64 `json:"vcrPeak"` // resonant capacitor physical peak voltage, DC bias + AC peak (V)
	IqRMS   float64 `json:"iqRms"`   // primary switch current RMS (A)
	IqPeak  float64 `json:"iqPeak"`  // primary switch current peak (A)
	IdRMS   float64 `json:"idRms"`   // secondary rectifier current RMS (A)
	IdPeak  float64 `json:"idPeak"`  // secondary rectifier current peak (A)
}

// TurnsRatio calculates the transformer turns ratio for a half-bridge stage
// operated at resonance (G = 1). Returns the exact value and the integer
// value rounded half-up that the sweep actually uses.
func TurnsRatio(vin, vout float64) (float64, int) {
	nFloat := vin / (2 * vout)
	nUsed := int(math.Floor(nFloat + 0.5))
	return nFloat, nUsed
}

// LmMax calculates the maximum magnetizing inductance that still guarantees
// zero-voltage switching at startup, assuming the startup switching frequency
// is three times fswMin.
func LmMax(tDead, coss, fswMin float64) float64 {
	fStartup := 3 * fswMin
	tSwMin := 1.0 / fStartup
	return tSwMin * tDead / (16 * coss)
}

// RequiredDeadtime inverts LmMax: the minimum dead time that keeps a chosen
// magnetizing inductance ZVS-safe at startup.
func RequiredDeadtime(lm, coss, fswMin float64) float64 {
	fStartup := 3 * fswMin
	tSwMin := 1.0 / fStartup
	return 16 * coss * lm / tSwMin
}

// Tank sizes the resonant tank for a design point (Ln, Qe) at the target
// resonant frequency.
func Tank(vout, pout float64, n int, fr, ln, qe float64) TankComponents {
	rl := vout * vout / pout
	re := (8 * float64(n) * float64(n) / (math.Pi * math.Pi)) * rl
	cr := 1 / (2 * math.Pi * fr * re * qe)
	lr := 1 / (math.Pow(2*math.Pi*fr, 2) * cr)
	lm := ln * lr
	return TankComponents{Re: re, Cr: cr, Lr: lr, Lm: lm, Rl: rl}
}

// Recalculate determines the realized resonant frequency and quality factor
// after the tank components have been rounded to the manufacturable grid.
func Recalculate(lr, cr, re float64) (frNew, qeNew float64) {
	frNew = 1 / (2 * math.Pi * math.Sqrt(lr*cr))
	qeNew = 1 / (2 * math.Pi * frNew * re * cr)
	return frNew, qeNew
}

// Gain evaluates the FHA tank transfer function at normalized frequency fN.
// Gain(1, ln, qe) is identically 1 for any ln, qe.
func Gain(fn, ln, qe float64) float64 {
	term1 := 1 + (1/ln)*(1-1/(fn*fn))
	term2 := qe * (fn - 1/fn)
	return 1 / math.Sqrt(term1*term1+term2*term2)
}

// RequiredGain is the tank gain needed to regulate vout from vin with turns
// ratio n.
func RequiredGain(vin, vout float64, n int) float64 {
	return 2 * float64(n) * vout / vin
}

// StressSet computes the full component stress set at one operating point.
// Sinusoidal FHA approximations throughout: the magnetizing current is a
// triangle treated as a sinusoid for RMS, the secondary current is a
// rectified sine.
func StressSet(vin, vout, pout float64, n int, lm, cr, fsw float64) Stress {
	iout := pout / vout

	ilmPeak := float64(n) * vout / (4 * fsw * lm)
	ilmRMS := ilmPeak / math.Sqrt2

	// Reflected load fundamental, primary-side RMS
	iLoadRMS := math.Pi * iout / (2 * math.Sqrt2 * float64(n))

	ilrRMS := math.Sqrt(ilmRMS*ilmRMS + iLoadRMS*iLoadRMS)
	ilrPeak := math.Sqrt2 * ilrRMS

	vcrRMS := ilrRMS / (2 * math.Pi * fsw * cr)
	vcrPeak := vin/2 + math.Sqrt2*vcrRMS

	idPeak := iout * math.Pi / 2
	idRMS := idPeak / 2

	iqPeak := ilrPeak
	iqRMS := ilrRMS / math.Sqrt2

	return Stress{
		IlmPeak: ilmPeak,
		IlmRMS:  ilmRMS,
		IlrRMS:  ilrRMS,
		IlrPeak: ilrPeak,
		VcrRMS:  vcrRMS,
		VcrPeak: vcrPeak,
		IqRMS:   iqRMS,
		IqPeak:  iqPeak,
		IdRMS:   idRMS,
		IdPeak:  idPeak,
	}
}
