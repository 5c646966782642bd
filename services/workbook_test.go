package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes a grid into an in-memory xlsx file.
func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("coordinates: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestParseWorkbook(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"Type", "Item Description", "Price Per Unit", "Est.Hrs", "Promaster"},
		{"Flooring", "Vinyl", 425, 3.5, "x"},
		{"Electrical", "Battery", 950, 1.25, "yes"},
	})

	headers, body, err := ParseWorkbook(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseWorkbook() error = %v", err)
	}
	if len(headers) != 5 || headers[1] != "Item Description" {
		t.Errorf("unexpected headers: %v", headers)
	}
	if len(body) != 2 {
		t.Fatalf("expected 2 body rows, got %d", len(body))
	}
	if body[0][0] != "Flooring" {
		t.Errorf("unexpected first body row: %v", body[0])
	}
}

func TestParseWorkbook_FeedsCatalogBuilder(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"Type", "Item Description", "Price Per Unit", "Est.Hrs", "Promaster", "Sprinter"},
		{"Flooring", "Vinyl", "$425.00", 3.5, "x", ""},
		{"Flooring", "", 10, 1, "x", ""},
		{"Electrical", "Battery", 950, 1.25, "x", "yes"},
	})

	headers, body, err := ParseWorkbook(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseWorkbook() error = %v", err)
	}

	catalog, err := BuildCatalog(headers, body)
	if err != nil {
		t.Fatalf("BuildCatalog() error = %v", err)
	}
	if len(catalog.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(catalog.Sections))
	}
	if got := len(catalog.Sections[0].Items); got != 1 {
		t.Errorf("expected blank-description row dropped, got %d items", got)
	}
	battery := catalog.Sections[1].Items[0]
	if battery.PricePerUnit != 950 || battery.EstimatedHours != 1.25 {
		t.Errorf("unexpected battery values: %+v", battery)
	}
	if len(battery.Compatible) != 2 {
		t.Errorf("unexpected battery tags: %v", battery.Compatible)
	}
}

func TestParseWorkbook_Errors(t *testing.T) {
	t.Run("not a workbook", func(t *testing.T) {
		_, _, err := ParseWorkbook(strings.NewReader("Type,Item\nFlooring,Vinyl"))
		if err == nil {
			t.Error("expected error for non-xlsx input")
		}
	})

	t.Run("empty sheet", func(t *testing.T) {
		data := buildWorkbook(t, nil)
		_, _, err := ParseWorkbook(bytes.NewReader(data))
		if err == nil {
			t.Error("expected error for an empty sheet")
		}
	})
}
