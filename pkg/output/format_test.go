package output

import (
	"path/filepath"
	"testing"

	"github.com/iwvelando/llc-sweeper/internal/sweep"
	"github.com/iwvelando/llc-sweeper/pkg/equations"
	"github.com/xuri/excelize/v2"
)

func sampleResults() []sweep.Result {
	return []sweep.Result{
		{
			Tank: sweep.Tank{
				NUsed: 4, LnDes: 9, QeDes: 0.35, LnReal: 9.0, QeReal: 0.349,
				Lr: 27e-6, Cr: 91e-9, Lm: 243e-6, FRReal: 101.5e3,
			},
			TargetGain: 0.96,
			FN:         1.1,
			Fsw:        111.7e3,
			Gain:       0.96,
			Stress:     equations.Stress{IlrRMS: 3.74, IlrPeak: 5.29, VcrPeak: 312.4, IqRMS: 2.65, IdRMS: 7.7},
			FswMinCorner: 108e3, FswMaxCorner: 131e3, FswSpanRatio: 1.21,
			Score: 2.12,
			Valid: true,
		},
		{
			Tank: sweep.Tank{
				NUsed: 4, LnDes: 5, QeDes: 0.43, LnReal: 5.02, QeReal: 0.431,
				Lr: 31e-6, Cr: 80e-9, Lm: 155e-6, FRReal: 101.1e3,
			},
			TargetGain: 0.96,
			FN:         1.15,
			Fsw:        116.3e3,
			Gain:       0.955,
			Stress:     equations.Stress{IlrRMS: 4.1, IlrPeak: 5.8, VcrPeak: 340.0, IqRMS: 2.9, IdRMS: 7.7},
			FswMinCorner: 110e3, FswMaxCorner: 240e3, FswSpanRatio: 2.18,
			Score:    14.9,
			Valid:    true,
			Warnings: []string{"high fsw span (2.2x)"},
		},
	}
}

func TestResultRow(t *testing.T) {
	results := sampleResults()
	row := resultRow(1, results[0])

	if len(row) != len(resultColumns) {
		t.Fatalf("row has %d cells, header has %d columns", len(row), len(resultColumns))
	}
	if row[0] != "1" {
		t.Errorf("rank cell = %q, expected 1", row[0])
	}
	if row[7] != "27.0" {
		t.Errorf("Lr cell = %q, expected 27.0 uH", row[7])
	}
	if row[8] != "91.0" {
		t.Errorf("Cr cell = %q, expected 91.0 nF", row[8])
	}
	if row[len(row)-1] != "" {
		t.Errorf("warnings cell = %q, expected empty for a clean result", row[len(row)-1])
	}

	warned := resultRow(2, results[1])
	if warned[len(warned)-1] != "high fsw span (2.2x)" {
		t.Errorf("warnings cell = %q", warned[len(warned)-1])
	}
}

func TestXlsxFormat(t *testing.T) {
	results := sampleResults()
	path := filepath.Join(t.TempDir(), "sweep.xlsx")

	if err := XlsxFormat(results, path); err != nil {
		t.Fatalf("XlsxFormat() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Sweep" {
		t.Fatalf("sheet list = %v, expected exactly [Sweep]", sheets)
	}

	header, err := f.GetCellValue("Sweep", "A1")
	if err != nil {
		t.Fatalf("failed to read header cell: %v", err)
	}
	if header != "rank" {
		t.Errorf("A1 = %q, expected rank", header)
	}

	rows, err := f.GetRows("Sweep")
	if err != nil {
		t.Fatalf("failed to read rows: %v", err)
	}
	if len(rows) != len(results)+1 {
		t.Fatalf("workbook has %d rows, expected %d", len(rows), len(results)+1)
	}
	if len(rows[0]) != len(resultColumns) {
		t.Errorf("header row has %d cells, expected %d", len(rows[0]), len(resultColumns))
	}

	// Numeric cells must carry native values, not formatted strings.
	nUsed, err := f.GetCellValue("Sweep", "G2")
	if err != nil {
		t.Fatalf("failed to read n cell: %v", err)
	}
	if nUsed != "4" {
		t.Errorf("G2 = %q, expected 4", nUsed)
	}
}

func TestXlsxFormatBadPath(t *testing.T) {
	if err := XlsxFormat(sampleResults(), filepath.Join(t.TempDir(), "missing", "dir", "out.xlsx")); err == nil {
		t.Error("XlsxFormat() expected error for unwritable path")
	}
}
