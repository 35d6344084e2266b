// Package writer projects report tables onto a template workbook.
package writer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/willdo-go/pkg/willdo/models"
	"github.com/xuri/excelize/v2"
)

// Destination tabs of the report template.
const (
	TabClerk                  = "クラーク業務"
	TabNonClerk               = "クラーク以外業務"
	TabDailyTasks             = "デイリータスク"
	TabCommunicationByName    = "コミュニケーション"
	TabCommunicationByContent = "コミュニケーション内容"
	TabAllItems               = "全項目"
)

// DefaultPrefix starts every report filename.
const DefaultPrefix = "WILLDOリストまとめ"

// ErrMissingTab indicates the template lacks a destination tab.
var ErrMissingTab = errors.New("template is missing a destination tab")

// Config locates the template and the output directory.
type Config struct {
	TemplatePath string
	OutputDir    string
	// Prefix defaults to DefaultPrefix when empty.
	Prefix string
	// HeaderRows is the number of template rows above the data on every
	// tab. Zero means DefaultHeaderRows.
	HeaderRows int
}

// Writer fills a copy of the template with report tables.
type Writer struct {
	cfg Config
	log logrus.FieldLogger
}

// New creates a Writer. A nil log uses the logrus standard logger.
func New(cfg Config, log logrus.FieldLogger) *Writer {
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	if cfg.HeaderRows <= 0 {
		cfg.HeaderRows = DefaultHeaderRows
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Writer{cfg: cfg, log: log}
}

// TabTable pairs a report table with its destination tab.
type TabTable struct {
	Tab   string
	Table models.Table
}

// Tabs lists the report's tables in template order.
func Tabs(report models.Report) []TabTable {
	return []TabTable{
		{TabClerk, report.Clerk},
		{TabNonClerk, report.NonClerk},
		{TabDailyTasks, report.DailyTasks},
		{TabCommunicationByName, report.CommunicationByName},
		{TabCommunicationByContent, report.CommunicationByContent},
		{TabAllItems, report.AllItems},
	}
}

// FileName builds the report filename for the covered span.
func FileName(prefix string, span models.Span) string {
	return fmt.Sprintf("%s%s_%s.xlsx", prefix, span.StartKey(), span.EndKey())
}

// Write fills the template with report and saves it under the output
// directory, named after span. Nothing is saved when a tab cannot be filled.
func (w *Writer) Write(report models.Report, span models.Span) (string, error) {
	f, err := excelize.OpenFile(w.cfg.TemplatePath)
	if err != nil {
		return "", fmt.Errorf("open template %s: %w", w.cfg.TemplatePath, err)
	}
	defer f.Close()

	for _, tt := range Tabs(report) {
		if err := w.fillTab(f, tt.Tab, tt.Table); err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(w.cfg.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(w.cfg.OutputDir, FileName(w.cfg.Prefix, span))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save report %s: %w", path, err)
	}
	w.log.WithField("path", path).Info("report saved")
	return path, nil
}

// fillTab writes table directly below the tab's header rows, one row per
// aggregate row. Rows that run into existing template content, such as a
// totals footer, are still written and logged.
func (w *Writer) fillTab(f *excelize.File, tab string, table models.Table) error {
	idx, err := f.GetSheetIndex(tab)
	if err != nil || idx < 0 {
		return fmt.Errorf("%w: %s", ErrMissingTab, tab)
	}

	first := w.cfg.HeaderRows + 1
	if len(table.Rows) > 0 {
		filled, err := nextFilledRow(f, tab, first)
		if err != nil {
			return fmt.Errorf("read template tab %s: %w", tab, err)
		}
		if last := first + len(table.Rows) - 1; filled > 0 && filled <= last {
			w.log.WithFields(logrus.Fields{
				"tab": tab,
				"row": filled,
			}).Warn("report rows overwrite template content")
		}
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, first+i)
		if err != nil {
			return err
		}
		values := table.Values(row)
		if err := f.SetSheetRow(tab, cell, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", tab, first+i, err)
		}
	}
	return nil
}
