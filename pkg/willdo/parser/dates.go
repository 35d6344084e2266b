package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/width"
)

// ErrInvalidSheetDate indicates a date cell holding neither a date serial nor "YYYY年M月D日".
var ErrInvalidSheetDate = errors.New("invalid sheet date")

// sheetDatePattern accepts an optional trailing weekday such as "(水)".
var sheetDatePattern = regexp.MustCompile(`^(\d{4})年(\d{1,2})月(\d{1,2})日\s*(?:\([^)]*\))?$`)

// ReadSheetDate reads and parses the date cell of a worksheet. Numeric cells
// are taken as Excel date serials; text cells must read "YYYY年M月D日".
func ReadSheetDate(f *excelize.File, sheetName, cell string) (time.Time, error) {
	typ, err := f.GetCellType(sheetName, cell)
	if err != nil {
		return time.Time{}, err
	}
	raw, err := f.GetCellValue(sheetName, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return time.Time{}, err
	}

	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return ParseSheetDate(raw)
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return time.Time{}, fmt.Errorf("%w: empty cell", ErrInvalidSheetDate)
		}
		serial, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidSheetDate, raw)
		}
		return SerialDate(serial)
	case excelize.CellTypeDate:
		// ISO 8601 text stored with t="d".
		if len(raw) >= len(isoDateLayout) {
			if t, err := time.Parse(isoDateLayout, raw[:len(isoDateLayout)]); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidSheetDate, raw)
	}
	return time.Time{}, fmt.Errorf("%w: unsupported cell type for %q", ErrInvalidSheetDate, raw)
}

const isoDateLayout = "2006-01-02"

// SerialDate converts an Excel date serial to its calendar day in UTC.
func SerialDate(serial float64) (time.Time, error) {
	if serial <= 0 {
		return time.Time{}, fmt.Errorf("%w: serial %v", ErrInvalidSheetDate, serial)
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidSheetDate, err)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// ParseSheetDate parses date text of the form "YYYY年M月D日", optionally
// followed by a parenthesized weekday. Full-width digits and parentheses are
// accepted. Bare numbers are rejected.
func ParseSheetDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(width.Narrow.String(raw))
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty cell", ErrInvalidSheetDate)
	}

	m := sheetDatePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidSheetDate, raw)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("%w: no such day %q", ErrInvalidSheetDate, raw)
	}
	return t, nil
}
