// Package output serializes aggregate tables to CSV.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ukaji3/willdo-go/pkg/willdo/models"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSV files written by WriteCSVFiles.
const (
	TaskSummaryFile  = "summary_by_task.csv"
	MonthSummaryFile = "summary_by_month.csv"
	DaySummaryFile   = "summary_by_date_and_task.csv"
)

// TableToCSV writes table with a header of its column names. Output starts
// with a UTF-8 byte order mark so spreadsheet tools detect the encoding.
func TableToCSV(w io.Writer, table models.Table) error {
	records := [][]string{table.Columns()}
	for _, row := range table.Rows {
		values := table.Values(row)
		rec := make([]string, len(values))
		for i, v := range values {
			rec[i] = formatValue(v)
		}
		records = append(records, rec)
	}
	return writeAll(w, records)
}

// MonthsToCSV writes monthly totals.
func MonthsToCSV(w io.Writer, rows []models.MonthRow) error {
	records := [][]string{{"month", "total_minutes", "total_hours", "frequency"}}
	for _, r := range rows {
		records = append(records, []string{
			r.Month,
			formatValue(r.TotalMinutes),
			strconv.Itoa(r.TotalHours),
			strconv.Itoa(r.Frequency),
		})
	}
	return writeAll(w, records)
}

// DaysToCSV writes per-day content totals.
func DaysToCSV(w io.Writer, rows []models.DayRow) error {
	records := [][]string{{"date", "content", "total_minutes", "frequency"}}
	for _, r := range rows {
		records = append(records, []string{
			r.Date.Format("2006-01-02"),
			r.Content,
			formatValue(r.TotalMinutes),
			strconv.Itoa(r.Frequency),
		})
	}
	return writeAll(w, records)
}

// WriteCSVFiles writes the task summary and both timelines into dir,
// creating it if needed, and returns the written paths.
func WriteCSVFiles(dir string, summary models.Table, months []models.MonthRow, days []models.DayRow) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{TaskSummaryFile, func(w io.Writer) error { return TableToCSV(w, summary) }},
		{MonthSummaryFile, func(w io.Writer) error { return MonthsToCSV(w, months) }},
		{DaySummaryFile, func(w io.Writer) error { return DaysToCSV(w, days) }},
	}

	var paths []string
	for _, file := range files {
		path := filepath.Join(dir, file.name)
		if err := writeFile(path, file.write); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeAll(w io.Writer, records [][]string) error {
	bw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(bw)
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return bw.Close()
}

func formatValue(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}
