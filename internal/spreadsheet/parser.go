// =============================================================================
// PNP Vendor Generator - Spreadsheet Parser
// =============================================================================
//
// This module reads the UEFI PNP ID registry export and turns its table rows
// into vendor records.
//
// INPUT FORMATS:
//   The registry offers its export as an ".xls" download, but the file is
//   really an HTML document. Real XLSX workbooks are accepted as well and are
//   detected by their ZIP signature.
//
//   | Column A     | Column B | Column C    |
//   |--------------|----------|-------------|
//   | Company      | PNP ID   | Approved On |
//   | Acme Corp    | ACM      | 01/15/2016  |
//
// ROW RULES:
//   - Rows with exactly three cells are data rows
//   - Any other cell count (headers, spacers) is skipped silently
//   - A bad date or a bad PNP ID aborts the whole run
//
// =============================================================================

package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/pnp-vendors/internal/validation"
	"github.com/ginjaninja78/pnp-vendors/pnp"
)

// =============================================================================
// CONSTANTS AND ERRORS
// =============================================================================

// DateLayout is the approval date format used by the registry (MM/DD/YYYY).
const DateLayout = "01/02/2006"

// cellsPerRow is the number of cells in a data row.
const cellsPerRow = 3

// EncodingAuto makes the HTML reader sniff the character encoding from the
// document itself (BOM or <meta charset>).
const EncodingAuto = "auto"

// zipMagic is the local file header signature that starts every XLSX file.
var zipMagic = []byte("PK\x03\x04")

// ErrInvalidDate is returned when an approval date does not match DateLayout.
var ErrInvalidDate = errors.New("approval date must be MM/DD/YYYY")

// RowError attaches the spreadsheet row number to a parse failure.
type RowError struct {
	// Row is the 1-based row number. For HTML input it counts table body rows,
	// for XLSX input it is the sheet row.
	Row int

	// Field is the column that failed: "approval_date" or "pnp_id".
	Field string

	// Value is the trimmed cell text that failed.
	Value string

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, field '%s' (value: %q): %v", e.Row, e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *RowError) Unwrap() error {
	return e.Err
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls how the spreadsheet is read.
type Options struct {
	// Encoding is the character encoding label of HTML input, as understood by
	// the WHATWG encoding index ("utf-8", "windows-1252", ...), or EncodingAuto.
	// Default: "utf-8"
	Encoding string

	// HeaderRows is the number of leading rows skipped in XLSX input.
	// HTML input does not need it: header rows live outside <tbody> or have
	// no <td> cells.
	// Default: 1
	HeaderRows int
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Encoding:   "utf-8",
		HeaderRows: 1,
	}
}

// sheetRow is a raw table row before conversion into a vendor record.
type sheetRow struct {
	number int
	cells  []string

	// serialDates is set for XLSX rows, where date cells may hold Excel
	// serial numbers instead of text.
	serialDates bool
}

// =============================================================================
// MAIN PARSING FUNCTION
// =============================================================================

// Parse returns the vendor records of the spreadsheet at path in document
// order.
//
// The sequence is lazy: the file is read when iteration starts, and every
// new range over the sequence reads it again. The first error (unreadable
// file, bad date, bad PNP ID) is yielded once and ends the sequence.
func Parse(path string, opts Options) iter.Seq2[pnp.Vendor, error] {
	return func(yield func(pnp.Vendor, error) bool) {
		rows, err := readRows(path, opts)
		if err != nil {
			yield(pnp.Vendor{}, err)
			return
		}

		for _, row := range rows {
			if len(row.cells) != cellsPerRow {
				continue
			}

			vendor, err := parseRow(row)
			if err != nil {
				err.Row = row.number
				yield(pnp.Vendor{}, err)
				return
			}

			if !yield(vendor, nil) {
				return
			}
		}
	}
}

// readRows opens the file and dispatches on its format.
func readRows(path string, opts Options) ([]sheetRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	head := make([]byte, len(zipMagic))
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}

	if bytes.Equal(head[:n], zipMagic) {
		return readXLSXRows(f, opts)
	}
	return readHTMLRows(f, opts)
}

// parseRow converts a three-cell row into a vendor record. The caller fills
// in the row number of a returned error.
func parseRow(row sheetRow) (pnp.Vendor, *RowError) {
	name := strings.TrimSpace(row.cells[0])
	pnpID := strings.TrimSpace(row.cells[1])
	rawDate := strings.TrimSpace(row.cells[2])

	date, err := parseDate(rawDate, row.serialDates)
	if err != nil {
		return pnp.Vendor{}, &RowError{Field: "approval_date", Value: rawDate, Err: err}
	}

	if err := validation.ValidatePNPID(pnpID); err != nil {
		return pnp.Vendor{}, &RowError{Field: "pnp_id", Value: pnpID, Err: err}
	}

	return pnp.NewVendor(name, pnpID, date), nil
}

// parseDate parses an approval date. When serial is true, an Excel serial
// number is accepted as well.
func parseDate(raw string, serial bool) (time.Time, error) {
	date, err := time.Parse(DateLayout, raw)
	if err == nil {
		return date, nil
	}

	if serial {
		if value, ferr := strconv.ParseFloat(raw, 64); ferr == nil {
			if date, xerr := excelize.ExcelDateToTime(value, false); xerr == nil {
				return date, nil
			}
		}
	}

	return time.Time{}, fmt.Errorf("%w, got %q: %w", ErrInvalidDate, raw, err)
}
