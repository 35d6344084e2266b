package parser

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/willdo-go/pkg/willdo/models"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/width"
)

// SkipMarker in a time cell means the row was intentionally not logged.
const SkipMarker = "*"

var (
	errNotNumeric = errors.New("time is not numeric")
	errNegative   = errors.New("time is negative")
)

// namePattern matches the first parenthesized segment of a communication label.
var namePattern = regexp.MustCompile(`\((.*?)\)`)

var parenFolder = strings.NewReplacer("（", "(", "）", ")")

// Scanner extracts records from the configured rows of a worksheet.
type Scanner struct {
	layout Layout
	ranges RowRanges
	log    logrus.FieldLogger
}

// NewScanner creates a Scanner. A nil log uses the logrus standard logger.
func NewScanner(layout Layout, ranges RowRanges, log logrus.FieldLogger) *Scanner {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Scanner{layout: layout, ranges: ranges, log: log}
}

// ExtractCell reads the content and time cells of one row.
// It returns false when either cell is empty, the time is the skip marker,
// or the time cannot be read as a number.
func (s *Scanner) ExtractCell(f *excelize.File, sheetName string, row int, date time.Time) (models.RawRecord, bool) {
	content, timeText := s.readRow(f, sheetName, row)
	if !isFilled(content, timeText) {
		return models.RawRecord{}, false
	}

	minutes, err := parseMinutes(timeText)
	if err != nil {
		s.warnTime(sheetName, row, timeText, err)
		return models.RawRecord{}, false
	}

	label := firstToken(content)
	if label == "" {
		return models.RawRecord{}, false
	}

	return models.RawRecord{Date: date, Content: label, Minutes: minutes}, true
}

// ExtractCommunication reads one row of the communication window.
// Rows whose content carries no parenthesized name are skipped silently.
func (s *Scanner) ExtractCommunication(f *excelize.File, sheetName string, row int, date time.Time) (models.CommunicationRecord, bool) {
	content, timeText := s.readRow(f, sheetName, row)
	if !isFilled(content, timeText) {
		return models.CommunicationRecord{}, false
	}

	name, label, ok := splitCommunication(content)
	if !ok {
		return models.CommunicationRecord{}, false
	}

	minutes, err := parseMinutes(timeText)
	if err != nil {
		s.warnTime(sheetName, row, timeText, err)
		return models.CommunicationRecord{}, false
	}

	return models.CommunicationRecord{
		RawRecord: models.RawRecord{Date: date, Content: label, Minutes: minutes},
		Name:      name,
	}, true
}

// readRow returns the content text and the unformatted time value of a row.
// Unreadable cells are reported as empty.
func (s *Scanner) readRow(f *excelize.File, sheetName string, row int) (string, string) {
	content, err := f.GetCellValue(sheetName, s.layout.contentCell(row))
	if err != nil {
		s.log.WithFields(logrus.Fields{"sheet": sheetName, "row": row}).Debugf("content cell unreadable: %v", err)
		return "", ""
	}
	timeText, err := f.GetCellValue(sheetName, s.layout.timeCell(row), excelize.Options{RawCellValue: true})
	if err != nil {
		s.log.WithFields(logrus.Fields{"sheet": sheetName, "row": row}).Debugf("time cell unreadable: %v", err)
		return "", ""
	}
	return content, timeText
}

func (s *Scanner) warnTime(sheetName string, row int, value string, err error) {
	s.log.WithFields(logrus.Fields{
		"sheet": sheetName,
		"row":   row,
		"value": value,
	}).Warnf("skipping row: %v", err)
}

func isFilled(content, timeText string) bool {
	if strings.TrimSpace(content) == "" {
		return false
	}
	t := strings.TrimSpace(width.Narrow.String(timeText))
	return t != "" && t != SkipMarker
}

// parseMinutes converts a time cell to minutes.
// Full-width digits are accepted.
func parseMinutes(s string) (float64, error) {
	s = strings.TrimSpace(width.Narrow.String(s))
	if isHexLiteral(s) {
		return 0, fmt.Errorf("%w: %q", errNotNumeric, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", errNotNumeric, s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %q", errNegative, s)
	}
	return v, nil
}

// isHexLiteral reports whether s uses the 0x prefix, which ParseFloat
// accepts but a decimal time entry never has.
func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// firstToken drops everything after the first run of whitespace.
func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// splitCommunication separates the parenthesized name from a label such as "打合せ(田中)".
func splitCommunication(content string) (name, label string, ok bool) {
	content = parenFolder.Replace(content)
	m := namePattern.FindStringSubmatch(content)
	if m == nil {
		return "", "", false
	}
	label = firstToken(namePattern.ReplaceAllString(content, ""))
	if label == "" {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), label, true
}
