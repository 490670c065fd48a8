// Package output provides utilities for formatting and displaying sweep results.
package output

import (
	"fmt"
	"strings"

	"github.com/iwvelando/llc-sweeper/internal/sweep"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable summary: the diverse top candidates
// in full, then a count of the remaining ranked designs. Component values are
// scaled to engineering units at this edge only; everything upstream stays in
// SI base units.
func PrettyFormat(results, diverse []sweep.Result) {
	p := message.NewPrinter(language.English)

	if len(results) == 0 {
		fmt.Printf("No viable designs found.\n")
		return
	}

	_, _ = p.Printf("Found %d distinct candidates. Top %d (diverse):\n", len(results), len(diverse))
	for i, res := range diverse {
		t := res.Tank
		fmt.Printf("\nCandidate #%d (score %.4f)\n", i+1, res.Score)
		fmt.Printf("  Tank: Ln=%.2f (des %.1f), Qe=%.3f (des %.3f)\n", t.LnReal, t.LnDes, t.QeReal, t.QeDes)
		fmt.Printf("  Components: n=%d, Lr=%.1f uH, Cr=%.1f nF, Lm=%.1f uH\n",
			t.NUsed, t.Lr*1e6, t.Cr*1e9, t.Lm*1e6)
		fmt.Printf("  Operating point: fN=%.3f, fsw=%.2f kHz, gain=%.3f\n",
			res.FN, res.Fsw/1e3, res.Gain)
		fmt.Printf("  Stress: Ilr_rms=%.2f A, Vcr_peak=%.1f V\n", res.Stress.IlrRMS, res.Stress.VcrPeak)
		fmt.Printf("  Span: %.2f kHz .. %.2f kHz (ratio %.2f)\n",
			res.FswMinCorner/1e3, res.FswMaxCorner/1e3, res.FswSpanRatio)
		if len(res.Warnings) > 0 {
			fmt.Printf("  Warnings: %s\n", strings.Join(res.Warnings, "; "))
		}
	}
}

// resultColumns is the shared column layout of the CSV and XLSX renderings.
var resultColumns = []string{
	"rank", "score",
	"Ln_des", "Qe_des", "Ln_real", "Qe_real",
	"n", "Lr [uH]", "Cr [nF]", "Lm [uH]", "fR_real [kHz]",
	"fN", "fsw [kHz]", "gain",
	"Ilr_rms [A]", "Ilr_peak [A]", "Vcr_peak [V]", "Iq_rms [A]", "Id_rms [A]",
	"fsw_min [kHz]", "fsw_max [kHz]", "span_ratio",
	"warnings",
}

// resultRow renders one result into the shared column layout.
func resultRow(rank int, res sweep.Result) []string {
	t := res.Tank
	return []string{
		fmt.Sprintf("%d", rank),
		fmt.Sprintf("%.4f", res.Score),
		fmt.Sprintf("%.1f", t.LnDes),
		fmt.Sprintf("%.4f", t.QeDes),
		fmt.Sprintf("%.3f", t.LnReal),
		fmt.Sprintf("%.4f", t.QeReal),
		fmt.Sprintf("%d", t.NUsed),
		fmt.Sprintf("%.1f", t.Lr*1e6),
		fmt.Sprintf("%.1f", t.Cr*1e9),
		fmt.Sprintf("%.1f", t.Lm*1e6),
		fmt.Sprintf("%.2f", t.FRReal/1e3),
		fmt.Sprintf("%.4f", res.FN),
		fmt.Sprintf("%.2f", res.Fsw/1e3),
		fmt.Sprintf("%.4f", res.Gain),
		fmt.Sprintf("%.3f", res.Stress.IlrRMS),
		fmt.Sprintf("%.3f", res.Stress.IlrPeak),
		fmt.Sprintf("%.1f", res.Stress.VcrPeak),
		fmt.Sprintf("%.3f", res.Stress.IqRMS),
		fmt.Sprintf("%.3f", res.Stress.IdRMS),
		fmt.Sprintf("%.2f", res.FswMinCorner/1e3),
		fmt.Sprintf("%.2f", res.FswMaxCorner/1e3),
		fmt.Sprintf("%.3f", res.FswSpanRatio),
		strings.Join(res.Warnings, "; "),
	}
}

// CsvFormat outputs the full ranked result table in comma-separated value format.
func CsvFormat(results []sweep.Result) {
	for i, col := range resultColumns {
		if i > 0 {
			fmt.Printf(",")
		}
		fmt.Printf("%q", col)
	}
	fmt.Printf("\n")
	for i, res := range results {
		for j, cell := range resultRow(i+1, res) {
			if j > 0 {
				fmt.Printf(",")
			}
			fmt.Printf("%q", cell)
		}
		fmt.Printf("\n")
	}
}
