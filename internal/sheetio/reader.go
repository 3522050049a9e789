// Package sheetio converts between uploaded spreadsheet files and the
// engine's in-memory sheets. CSV uploads become single-sheet workbooks;
// xlsx uploads keep their tab structure.
package sheetio

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/revoltmotors/leadclean/internal/core"
)

// Read parses an uploaded file into sheets. The format is chosen by the
// filename extension; CSV sheets are named after the file.
func Read(filename string, r io.Reader) ([]core.Sheet, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(filename, r)
	case ".xlsx", ".xlsm":
		return readWorkbook(r)
	default:
		return nil, fmt.Errorf("unsupported file type %q: want .csv, .xlsx, or .xlsm", filepath.Ext(filename))
	}
}

func readCSV(filename string, r io.Reader) ([]core.Sheet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	headers, data := splitHeader(rows)
	return []core.Sheet{{Name: name, Headers: headers, Rows: data}}, nil
}

func readWorkbook(r io.Reader) ([]core.Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var sheets []core.Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		headers, data := splitHeader(rows)
		sheets = append(sheets, core.Sheet{Name: name, Headers: headers, Rows: data})
	}
	return sheets, nil
}

func splitHeader(rows [][]string) (headers []string, data [][]string) {
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], rows[1:]
}
