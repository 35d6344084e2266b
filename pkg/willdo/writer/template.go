package writer

import "github.com/xuri/excelize/v2"

// DefaultHeaderRows is the header depth of the standard template tabs.
const DefaultHeaderRows = 1

// nextFilledRow returns the 1-based number of the first row at or below from
// holding a non-empty cell, or 0 when there is none.
func nextFilledRow(f *excelize.File, sheetName string, from int) (int, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return 0, err
	}
	return firstDataRow(rows, from-1) + 1, nil
}

// firstDataRow finds the 0-based index of the first row at or after start
// holding a non-empty cell, or -1 when there is none.
func firstDataRow(rows [][]string, start int) int {
	if start < 0 {
		start = 0
	}
	for rowIdx := start; rowIdx < len(rows); rowIdx++ {
		for _, cell := range rows[rowIdx] {
			if cell != "" {
				return rowIdx
			}
		}
	}
	return -1
}
