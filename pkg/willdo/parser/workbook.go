package parser

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/willdo-go/pkg/willdo/models"
	"github.com/xuri/excelize/v2"
)

// ErrNoData indicates that no worksheet is dated within the requested span.
var ErrNoData = errors.New("no worksheets in the requested period")

// Reader merges the records of every worksheet dated within a requested span.
type Reader struct {
	layout  Layout
	scanner *Scanner
	log     logrus.FieldLogger
}

// NewReader creates a Reader. A nil log uses the logrus standard logger.
func NewReader(layout Layout, ranges RowRanges, log logrus.FieldLogger) *Reader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Reader{
		layout:  layout,
		scanner: NewScanner(layout, ranges, log),
		log:     log,
	}
}

// ReadFile opens the workbook at path and reads it.
func (r *Reader) ReadFile(path string, span models.Span) (*models.Extraction, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	return r.Read(f, span)
}

// Read scans the worksheets of f in file order. Worksheets with an
// unparseable date are skipped with a warning. The returned extraction's Span
// covers the dates actually found, which may be narrower than span.
func (r *Reader) Read(f *excelize.File, span models.Span) (*models.Extraction, error) {
	ext := &models.Extraction{}
	found := false

	for _, sheetName := range f.GetSheetList() {
		if sheetName == r.layout.IndexSheet {
			continue
		}

		date, err := ReadSheetDate(f, sheetName, r.layout.DateCell)
		if err != nil {
			r.log.WithFields(logrus.Fields{
				"sheet": sheetName,
				"cell":  r.layout.DateCell,
			}).Warnf("skipping sheet: %v", err)
			continue
		}
		if !span.Contains(date) {
			continue
		}

		recs := r.scanner.ScanSheet(f, sheetName, date)
		ext.Tasks = append(ext.Tasks, recs.Tasks...)
		ext.DailyTasks = append(ext.DailyTasks, recs.DailyTasks...)
		ext.Communications = append(ext.Communications, recs.Communications...)
		ext.AllItems = append(ext.AllItems, recs.AllItems...)
		ext.Sheets = append(ext.Sheets, sheetName)

		if !found || date.Before(ext.Span.Start) {
			ext.Span.Start = date
		}
		if !found || date.After(ext.Span.End) {
			ext.Span.End = date
		}
		found = true
	}

	if !found {
		return nil, fmt.Errorf("%w: %s to %s", ErrNoData, span.Start.Format("2006-01-02"), span.End.Format("2006-01-02"))
	}

	r.log.WithFields(logrus.Fields{
		"sheets": len(ext.Sheets),
		"start":  ext.Span.StartKey(),
		"end":    ext.Span.EndKey(),
	}).Info("workbook read")
	return ext, nil
}
