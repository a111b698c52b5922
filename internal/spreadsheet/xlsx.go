package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// readXLSXRows reads the first sheet of an XLSX workbook into raw rows.
//
// Raw cell values are requested so date cells come back as Excel serial
// numbers instead of text rendered through the cell's number format.
// Trailing empty cells are dropped by excelize, which keeps the three-cell
// rule meaningful for sheets with formatted but empty columns.
func readXLSXRows(r io.Reader, opts Options) ([]sheetRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	all, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	var rows []sheetRow
	for i := max(opts.HeaderRows, 0); i < len(all); i++ {
		rows = append(rows, sheetRow{
			number:      i + 1,
			cells:       all[i],
			serialDates: true,
		})
	}

	return rows, nil
}
