package output

import (
	"fmt"
	"strings"

	"github.com/iwvelando/llc-sweeper/internal/sweep"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sweep"

// XlsxFormat writes the full ranked result table to an Excel workbook with a
// frozen header row. Numeric cells keep their native values so spreadsheet
// sorting and filtering work; only the warnings column is text.
func XlsxFormat(results []sweep.Result, path string) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for col, header := range resultColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}

	for i, res := range results {
		t := res.Tank
		values := []interface{}{
			i + 1, res.Score,
			t.LnDes, t.QeDes, t.LnReal, t.QeReal,
			t.NUsed, t.Lr * 1e6, t.Cr * 1e9, t.Lm * 1e6, t.FRReal / 1e3,
			res.FN, res.Fsw / 1e3, res.Gain,
			res.Stress.IlrRMS, res.Stress.IlrPeak, res.Stress.VcrPeak,
			res.Stress.IqRMS, res.Stress.IdRMS,
			res.FswMinCorner / 1e3, res.FswMaxCorner / 1e3, res.FswSpanRatio,
			strings.Join(res.Warnings, "; "),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header row: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}
