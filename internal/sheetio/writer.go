package sheetio

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/revoltmotors/leadclean/internal/core"
)

// xlsx caps sheet names at 31 characters.
const maxSheetName = 31

// Write renders cleaned sheets as an xlsx workbook. Output is always xlsx
// regardless of the upload format so date cells survive as text.
func Write(w io.Writer, sheets []core.Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, sh := range sheets {
		name := sheetName(sh.Name, i)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("name sheet %q: %w", name, err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("create sheet %q: %w", name, err)
			}
		}

		if len(sh.Headers) > 0 {
			if err := setRow(f, name, 1, sh.Headers); err != nil {
				return err
			}
		}
		for r, row := range sh.Rows {
			if err := setRow(f, name, r+2, row); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("row %d: %w", rowNum, err)
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("write row %d on %q: %w", rowNum, sheet, err)
	}
	return nil
}

func sheetName(name string, idx int) string {
	if name == "" {
		return fmt.Sprintf("Sheet%d", idx+1)
	}
	if len(name) > maxSheetName {
		return name[:maxSheetName]
	}
	return name
}
