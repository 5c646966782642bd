package services

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ParseWorkbook reads an xlsx workbook and returns the first sheet as a
// header row plus body rows, the same row-grid shape ParseDelimited
// produces. It fails only when the workbook cannot be decoded or the
// sheet has no header row.
func ParseWorkbook(r io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %q is empty", sheetName)
	}

	return rows[0], rows[1:], nil
}
