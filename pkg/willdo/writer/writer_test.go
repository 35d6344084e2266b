package writer

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/willdo-go/pkg/willdo/models"
	"github.com/xuri/excelize/v2"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// writeTemplate creates a template with every destination tab and a header
// row matching each table's columns. Tabs listed in skip are left out.
func writeTemplate(t *testing.T, skip ...string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	omitted := make(map[string]bool)
	for _, s := range skip {
		omitted[s] = true
	}

	for _, tt := range Tabs(sampleReport()) {
		if omitted[tt.Tab] {
			continue
		}
		if _, err := f.NewSheet(tt.Tab); err != nil {
			t.Fatalf("Failed to create tab: %v", err)
		}
		header := tt.Table.Columns()
		if err := f.SetSheetRow(tt.Tab, "A1", &header); err != nil {
			t.Fatalf("Failed to write header: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "template.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save template: %v", err)
	}
	return path
}

func sampleReport() models.Report {
	return models.Report{
		Clerk: models.Table{GroupBy: models.ByContent, Rows: []models.AggregateRow{
			{Content: "クラーク業務A", TotalMinutes: 55, TotalHours: 0, Frequency: 2},
			{Content: "クラーク業務B", TotalMinutes: 45, TotalHours: 0, Frequency: 1},
		}},
		NonClerk: models.Table{GroupBy: models.ByContent, Rows: []models.AggregateRow{
			{Content: "資料作成", TotalMinutes: 90, TotalHours: 1, Frequency: 1},
			{Content: "会議", TotalMinutes: 60, TotalHours: 1, Frequency: 1},
		}},
		DailyTasks: models.Table{GroupBy: models.ByContent, Rows: []models.AggregateRow{
			{Content: "毎日タスクB", TotalMinutes: 30, TotalHours: 0, Frequency: 2},
			{Content: "毎日タスクA", TotalMinutes: 20, TotalHours: 0, Frequency: 2},
		}},
		CommunicationByName: models.Table{GroupBy: models.ByName, Rows: []models.AggregateRow{
			{Name: "佐藤", TotalMinutes: 75, TotalHours: 1, Frequency: 2},
			{Name: "田中", TotalMinutes: 55, TotalHours: 0, Frequency: 2},
			{Name: "鈴木", TotalMinutes: 15, TotalHours: 0, Frequency: 1},
		}},
		CommunicationByContent: models.Table{GroupBy: models.ByContentAndName, Rows: []models.AggregateRow{
			{Content: "レビュー", Name: "佐藤", TotalMinutes: 75, TotalHours: 1, Frequency: 2},
			{Content: "打合せ", Name: "田中", TotalMinutes: 55, TotalHours: 0, Frequency: 2},
			{Content: "相談", Name: "鈴木", TotalMinutes: 15, TotalHours: 0, Frequency: 1},
		}},
		AllItems: models.Table{GroupBy: models.ByContent, Rows: []models.AggregateRow{
			{Content: "資料作成", TotalMinutes: 90, TotalHours: 1, Frequency: 1},
			{Content: "会議", TotalMinutes: 60, TotalHours: 1, Frequency: 1},
			{Content: "クラーク業務A", TotalMinutes: 30, TotalHours: 0, Frequency: 1},
			{Content: "毎日タスクA", TotalMinutes: 10, TotalHours: 0, Frequency: 1},
		}},
	}
}

func sampleSpan() models.Span {
	return models.Span{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}
}

// readTable reads the rows below the header of a written tab.
func readTable(t *testing.T, f *excelize.File, tab string, by models.GroupBy) models.Table {
	t.Helper()

	rows, err := f.GetRows(tab)
	require.NoError(t, err)

	table := models.Table{GroupBy: by}
	for _, cells := range rows[1:] {
		var row models.AggregateRow
		nums := cells
		switch by {
		case models.ByName:
			row.Name, nums = cells[0], cells[1:]
		case models.ByContentAndName:
			row.Content, row.Name, nums = cells[0], cells[1], cells[2:]
		default:
			row.Content, nums = cells[0], cells[1:]
		}
		require.Len(t, nums, 3)
		row.TotalMinutes, err = strconv.ParseFloat(nums[0], 64)
		require.NoError(t, err)
		row.TotalHours, err = strconv.Atoi(nums[1])
		require.NoError(t, err)
		row.Frequency, err = strconv.Atoi(nums[2])
		require.NoError(t, err)
		table.Rows = append(table.Rows, row)
	}
	return table
}

func TestWrite_RoundTrip(t *testing.T) {
	template := writeTemplate(t)
	outDir := filepath.Join(t.TempDir(), "nested", "out")

	w := New(Config{TemplatePath: template, OutputDir: outDir}, quietLogger())
	report := sampleReport()

	path, err := w.Write(report, sampleSpan())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "WILLDOリストまとめ20240101_20240103.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	for _, tt := range Tabs(report) {
		got := readTable(t, f, tt.Tab, tt.Table.GroupBy)
		assert.Equal(t, tt.Table.Rows, got.Rows, "tab %s", tt.Tab)

		header, err := f.GetCellValue(tt.Tab, "A1")
		require.NoError(t, err)
		assert.Equal(t, tt.Table.Columns()[0], header, "tab %s header", tt.Tab)
	}
}

func TestWrite_TemplateUnchanged(t *testing.T) {
	template := writeTemplate(t)
	before, err := os.ReadFile(template)
	require.NoError(t, err)

	w := New(Config{TemplatePath: template, OutputDir: t.TempDir()}, quietLogger())
	_, err = w.Write(sampleReport(), sampleSpan())
	require.NoError(t, err)

	after, err := os.ReadFile(template)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestWrite_Prefix(t *testing.T) {
	template := writeTemplate(t)

	w := New(Config{TemplatePath: template, OutputDir: t.TempDir(), Prefix: "summary_"}, quietLogger())
	path, err := w.Write(sampleReport(), sampleSpan())
	require.NoError(t, err)
	assert.Equal(t, "summary_20240101_20240103.xlsx", filepath.Base(path))
	assert.FileExists(t, path)
}

// writeFooterTemplate creates a template whose clerk tab has a one-row
// header and a totals footer at row 50 summing the rows between them.
func writeFooterTemplate(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for _, tt := range Tabs(sampleReport()) {
		if _, err := f.NewSheet(tt.Tab); err != nil {
			t.Fatalf("Failed to create tab: %v", err)
		}
		f.SetCellValue(tt.Tab, "A1", "項目")
	}
	f.SetCellValue(TabClerk, "A50", "総計")
	if err := f.SetCellFormula(TabClerk, "B50", "SUM(B2:B49)"); err != nil {
		t.Fatalf("Failed to set formula: %v", err)
	}

	path := filepath.Join(t.TempDir(), "template.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save template: %v", err)
	}
	return path
}

func TestWrite_RowsStartBelowHeaderAboveFooter(t *testing.T) {
	template := writeFooterTemplate(t)

	w := New(Config{TemplatePath: template, OutputDir: t.TempDir()}, quietLogger())
	path, err := w.Write(sampleReport(), sampleSpan())
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	for cell, want := range map[string]string{
		"A1":  "項目",
		"A2":  "クラーク業務A",
		"B2":  "55",
		"A3":  "クラーク業務B",
		"A4":  "",
		"A50": "総計",
		"A51": "",
	} {
		got, err := f.GetCellValue(TabClerk, cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, "cell %s", cell)
	}

	formula, err := f.GetCellFormula(TabClerk, "B50")
	require.NoError(t, err)
	assert.Equal(t, "SUM(B2:B49)", formula)
}

func TestWrite_HeaderRows(t *testing.T) {
	template := writeTemplate(t)

	w := New(Config{TemplatePath: template, OutputDir: t.TempDir(), HeaderRows: 3}, quietLogger())
	path, err := w.Write(sampleReport(), sampleSpan())
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(TabNonClerk, "A4")
	require.NoError(t, err)
	assert.Equal(t, "資料作成", v)
	v, err = f.GetCellValue(TabNonClerk, "A2")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestWrite_WarnsWhenRowsReachTemplateContent(t *testing.T) {
	template := writeFooterTemplate(t)
	log, hook := logtest.NewNullLogger()

	w := New(Config{TemplatePath: template, OutputDir: t.TempDir(), HeaderRows: 48}, log)
	_, err := w.Write(sampleReport(), sampleSpan())
	require.NoError(t, err)

	var warned []logrus.Fields
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = append(warned, e.Data)
		}
	}
	require.Len(t, warned, 1)
	assert.Equal(t, TabClerk, warned[0]["tab"])
	assert.Equal(t, 50, warned[0]["row"])
}

func TestWrite_MissingTab(t *testing.T) {
	template := writeTemplate(t, TabAllItems)
	outDir := t.TempDir()

	w := New(Config{TemplatePath: template, OutputDir: outDir}, quietLogger())
	_, err := w.Write(sampleReport(), sampleSpan())
	assert.True(t, errors.Is(err, ErrMissingTab), "got %v", err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWrite_MissingTemplate(t *testing.T) {
	w := New(Config{TemplatePath: filepath.Join(t.TempDir(), "none.xlsx"), OutputDir: t.TempDir()}, quietLogger())
	_, err := w.Write(sampleReport(), sampleSpan())
	assert.Error(t, err)
}

func TestFirstDataRow(t *testing.T) {
	tests := []struct {
		rows     [][]string
		start    int
		expected int
	}{
		{nil, 0, -1},
		{[][]string{{"", ""}}, 0, -1},
		{[][]string{{"a"}}, 0, 0},
		{[][]string{{"a"}}, 1, -1},
		{[][]string{{"a"}, {}, {"", "b"}, {""}}, 1, 2},
		{[][]string{{"a"}, {"b"}}, -1, 0},
	}

	for _, tt := range tests {
		if got := firstDataRow(tt.rows, tt.start); got != tt.expected {
			t.Errorf("firstDataRow(%v, %d) = %d, expected %d", tt.rows, tt.start, got, tt.expected)
		}
	}
}

func TestNextFilledRow(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	row, err := nextFilledRow(f, "Sheet1", 2)
	require.NoError(t, err)
	assert.Equal(t, 0, row)

	f.SetCellValue("Sheet1", "A1", "集計結果")
	f.SetCellValue("Sheet1", "B3", "合計時間(分)")
	row, err = nextFilledRow(f, "Sheet1", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, row)
}
