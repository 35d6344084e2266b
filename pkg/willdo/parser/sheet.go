package parser

import (
	"time"

	"github.com/ukaji3/willdo-go/pkg/willdo/models"
	"github.com/xuri/excelize/v2"
)

// SheetRecords holds the four record classes read from one worksheet.
type SheetRecords struct {
	Tasks          []models.RawRecord
	DailyTasks     []models.RawRecord
	Communications []models.CommunicationRecord
	// AllItems re-scans the combined task and daily-task window, so rows in an
	// overlap of the two windows are counted once per window.
	AllItems []models.RawRecord
}

// ScanSheet extracts every record class from one worksheet.
// Rows beyond the populated area read as empty and are skipped.
func (s *Scanner) ScanSheet(f *excelize.File, sheetName string, date time.Time) SheetRecords {
	var recs SheetRecords
	recs.Tasks = s.scanRange(f, sheetName, s.ranges.Tasks, date)
	recs.DailyTasks = s.scanRange(f, sheetName, s.ranges.DailyTasks, date)
	recs.AllItems = s.scanRange(f, sheetName, s.ranges.AllItems(), date)

	for _, row := range s.ranges.Communications.Rows() {
		if rec, ok := s.ExtractCommunication(f, sheetName, row, date); ok {
			recs.Communications = append(recs.Communications, rec)
		}
	}
	return recs
}

func (s *Scanner) scanRange(f *excelize.File, sheetName string, rr RowRange, date time.Time) []models.RawRecord {
	var out []models.RawRecord
	for _, row := range rr.Rows() {
		if rec, ok := s.ExtractCell(f, sheetName, row, date); ok {
			out = append(out, rec)
		}
	}
	return out
}
