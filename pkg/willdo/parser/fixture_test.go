package parser

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeTaskWorkbook builds a three-day task workbook plus an index tab and
// returns its path. Rows follow the ranges used by testScanner.
func writeTaskWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for day := 1; day <= 3; day++ {
		sheet := fmt.Sprintf("シート%d", day)
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("Failed to create sheet: %v", err)
		}
		f.SetCellValue(sheet, "A1", fmt.Sprintf("2024年1月%d日", day))

		switch day {
		case 1:
			f.SetCellValue(sheet, "B5", "クラーク業務A")
			f.SetCellValue(sheet, "C5", 30)
			f.SetCellValue(sheet, "B6", "クラーク業務B")
			f.SetCellValue(sheet, "C6", 45)
		case 2:
			f.SetCellValue(sheet, "B5", "クラーク業務A")
			f.SetCellValue(sheet, "C5", 25)
			f.SetCellValue(sheet, "B6", "会議")
			f.SetCellValue(sheet, "C6", 60)
		default:
			f.SetCellValue(sheet, "B5", "資料作成")
			f.SetCellValue(sheet, "C5", 90)
		}

		if day == 1 || day == 2 {
			f.SetCellValue(sheet, "B20", "毎日タスクA")
			f.SetCellValue(sheet, "C20", 10)
		}
		if day == 1 || day == 3 {
			f.SetCellValue(sheet, "B21", "毎日タスクB")
			f.SetCellValue(sheet, "C21", 15)
		}

		switch day {
		case 1:
			f.SetCellValue(sheet, "B30", "打合せ(田中)")
			f.SetCellValue(sheet, "C30", 30)
			f.SetCellValue(sheet, "B31", "レビュー(佐藤)")
			f.SetCellValue(sheet, "C31", 45)
		case 2:
			f.SetCellValue(sheet, "B30", "打合せ(田中)")
			f.SetCellValue(sheet, "C30", 25)
			f.SetCellValue(sheet, "B31", "相談(鈴木)")
			f.SetCellValue(sheet, "C31", 15)
		default:
			f.SetCellValue(sheet, "B30", "レビュー(佐藤)")
			f.SetCellValue(sheet, "C30", 30)
		}
	}

	if _, err := f.NewSheet(DefaultIndexSheet); err != nil {
		t.Fatalf("Failed to create index sheet: %v", err)
	}
	f.SetCellValue(DefaultIndexSheet, "A1", "2024年1月2日")
	f.SetCellValue(DefaultIndexSheet, "B5", "目次")
	f.SetCellValue(DefaultIndexSheet, "C5", 999)

	if err := f.DeleteSheet("Sheet1"); err != nil {
		t.Fatalf("Failed to delete default sheet: %v", err)
	}

	path := filepath.Join(t.TempDir(), "willdo.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}
