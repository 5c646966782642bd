package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel creates a workbook version of the estimate and returns
// the file contents as a byte slice.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Determine sheet name (max 31 chars).
	sheetName := data.Title
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Estimate"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Column references (A through I).
	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
	lastCol := columns[len(columns)-1]

	widths := []float64{40, 12, 12, 8, 8, 14, 10, 14, 14}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	metaStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create meta style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#EBEBEB"}, Pattern: 1},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create section style: %w", err)
	}

	itemStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create item style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Title and metadata ──────────────────────────────────────────────

	rowNum := 1
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowNum), sanitizeExcelCell(data.Title))
	f.MergeCell(sheetName, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", lastCol, rowNum))
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", lastCol, rowNum), titleStyle)

	rowNum++
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowNum),
		fmt.Sprintf("Compatibility Profile: %s | Labor Rate: %s/hr | Tax Rate: %.2f%% | Date: %s",
			data.VanType, FormatUSD(data.LaborRate), data.TaxRate, data.CreatedDate))
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("A%d", rowNum), metaStyle)

	// ── Table header ────────────────────────────────────────────────────

	rowNum += 2
	tableHeaders := []string{
		"Item Description", "Item Size", "Price Per Unit", "Count",
		"Markup", "Material Cost", "Est. Hours", "Labor Cost", "Total",
	}
	for i, h := range tableHeaders {
		f.SetCellValue(sheetName, fmt.Sprintf("%s%d", columns[i], rowNum), h)
	}
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", lastCol, rowNum), headerStyle)

	// ── Line items ──────────────────────────────────────────────────────

	for _, r := range data.Rows {
		rowNum++
		if r.SectionHeader {
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowNum), sanitizeExcelCell(r.Section))
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", lastCol, rowNum), r.Total)
			f.MergeCell(sheetName, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("H%d", rowNum))
			f.SetCellStyle(sheetName, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", lastCol, rowNum), sectionStyle)
			continue
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowNum), sanitizeExcelCell(r.Description))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowNum), sanitizeExcelCell(r.ItemSize))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowNum), r.PricePerUnit)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowNum), r.Count)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowNum), r.Markup)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", rowNum), r.MaterialCost)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", rowNum), r.Hours)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", rowNum), r.LaborCost)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", rowNum), r.Total)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", lastCol, rowNum), itemStyle)
	}

	// ── Summary ─────────────────────────────────────────────────────────

	rowNum += 2
	summary := []struct {
		label string
		value float64
	}{
		{"Total Material", data.Material},
		{"Total Labor", data.Labor},
		{"Pre-Tax Total", data.PreTax},
		{fmt.Sprintf("Tax (%.2f%%)", data.TaxRate), data.Tax},
		{"Grand Total", data.Total},
	}
	for _, line := range summary {
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", rowNum), line.label)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", rowNum), line.value)
		f.SetCellStyle(sheetName, fmt.Sprintf("H%d", rowNum), fmt.Sprintf("H%d", rowNum), summaryLabelStyle)
		f.SetCellStyle(sheetName, fmt.Sprintf("I%d", rowNum), fmt.Sprintf("I%d", rowNum), summaryValueStyle)
		rowNum++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a uniform thin border on all four sides.
func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#CCCCCC", Style: 1},
		{Type: "right", Color: "#CCCCCC", Style: 1},
		{Type: "top", Color: "#CCCCCC", Style: 1},
		{Type: "bottom", Color: "#CCCCCC", Style: 1},
	}
}
