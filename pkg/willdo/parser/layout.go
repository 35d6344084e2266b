// Package parser reads dated task worksheets into typed records.
package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// RowRange is an inclusive 1-based row window.
type RowRange struct {
	Start int
	End   int
}

// Rows returns every row number in the range.
func (r RowRange) Rows() []int {
	if r.End < r.Start {
		return nil
	}
	rows := make([]int, 0, r.End-r.Start+1)
	for row := r.Start; row <= r.End; row++ {
		rows = append(rows, row)
	}
	return rows
}

// Validate checks that the range is non-empty and starts at row 1 or later.
func (r RowRange) Validate() error {
	if r.Start < 1 {
		return fmt.Errorf("start row must be positive, got %d", r.Start)
	}
	if r.End < r.Start {
		return fmt.Errorf("end row %d is before start row %d", r.End, r.Start)
	}
	return nil
}

// RowRanges holds the configured windows for each record class.
type RowRanges struct {
	// Tasks is the plain-task window (start_row..end_row).
	Tasks RowRange
	// DailyTasks is the daily-task window.
	DailyTasks RowRange
	// Communications is the communication window.
	Communications RowRange
}

// AllItems returns the combined window from the first task row to the last daily-task row.
func (r RowRanges) AllItems() RowRange {
	return RowRange{Start: r.Tasks.Start, End: r.DailyTasks.End}
}

// Validate checks every window.
func (r RowRanges) Validate() error {
	if err := r.Tasks.Validate(); err != nil {
		return fmt.Errorf("task range: %w", err)
	}
	if err := r.DailyTasks.Validate(); err != nil {
		return fmt.Errorf("daily task range: %w", err)
	}
	if err := r.Communications.Validate(); err != nil {
		return fmt.Errorf("communication range: %w", err)
	}
	return nil
}

// DefaultIndexSheet is the reserved name of the index tab, which is never scanned.
const DefaultIndexSheet = "シート一覧"

// Layout locates the date cell and the task columns on each worksheet.
type Layout struct {
	// DateCell holds the worksheet date (e.g. "A1").
	DateCell string
	// ContentColumn holds the task label (e.g. "B").
	ContentColumn string
	// TimeColumn holds the minutes spent (e.g. "C").
	TimeColumn string
	// IndexSheet is skipped entirely.
	IndexSheet string
}

// DefaultLayout returns the layout of the standard task sheet.
func DefaultLayout() Layout {
	return Layout{
		DateCell:      "A1",
		ContentColumn: "B",
		TimeColumn:    "C",
		IndexSheet:    DefaultIndexSheet,
	}
}

// Validate checks that every cell reference parses.
func (l Layout) Validate() error {
	if _, _, err := excelize.CellNameToCoordinates(l.DateCell); err != nil {
		return fmt.Errorf("date cell %q: %w", l.DateCell, err)
	}
	if _, err := excelize.ColumnNameToNumber(l.ContentColumn); err != nil {
		return fmt.Errorf("content column %q: %w", l.ContentColumn, err)
	}
	if _, err := excelize.ColumnNameToNumber(l.TimeColumn); err != nil {
		return fmt.Errorf("time column %q: %w", l.TimeColumn, err)
	}
	return nil
}

func (l Layout) contentCell(row int) string {
	return fmt.Sprintf("%s%d", l.ContentColumn, row)
}

func (l Layout) timeCell(row int) string {
	return fmt.Sprintf("%s%d", l.TimeColumn, row)
}
