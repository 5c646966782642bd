package services

import "time"

// ExportRow is a single line in the printable estimate: either a section
// header or a selected item with its derived costs.
type ExportRow struct {
	SectionHeader bool
	Section       string
	Description   string
	ItemSize      string
	Count         float64
	Markup        float64
	PricePerUnit  float64
	MaterialCost  float64
	Hours         float64
	LaborCost     float64
	Total         float64
}

// ExportData holds everything the PDF and workbook exporters need.
type ExportData struct {
	Title       string
	VanType     string
	CreatedDate string
	LaborRate   float64
	TaxRate     float64
	Rows        []ExportRow
	Material    float64
	Labor       float64
	PreTax      float64
	Tax         float64
	Total       float64
}

// BuildExportData flattens the current estimate into export rows.
// Sections with no selections are skipped; each included section
// contributes a header row followed by its selected lines.
func BuildExportData(e *Estimator, now time.Time) ExportData {
	view := e.View()

	title := view.VehicleTitle
	if title == "" {
		title = "Van Conversion Estimate"
	} else {
		title = title + " Conversion Estimate"
	}

	data := ExportData{
		Title:       title,
		VanType:     VanTypeLabel(view.Params.VanType),
		CreatedDate: now.Format("2006-01-02"),
		LaborRate:   view.Params.LaborRate,
		TaxRate:     view.Params.TaxRate,
		Material:    view.Overall.Material,
		Labor:       view.Overall.Labor,
		PreTax:      view.Overall.PreTax,
		Tax:         view.Overall.Tax,
		Total:       view.Overall.Total,
	}

	for _, section := range view.Sections {
		if len(section.Selected) == 0 {
			continue
		}
		data.Rows = append(data.Rows, ExportRow{
			SectionHeader: true,
			Section:       section.Name,
			Total:         section.Totals.Total,
		})
		for _, row := range section.Selected {
			data.Rows = append(data.Rows, ExportRow{
				Section:      section.Name,
				Description:  row.Description,
				ItemSize:     row.ItemSize,
				Count:        row.Count,
				Markup:       row.Markup,
				PricePerUnit: row.PricePerUnit,
				MaterialCost: row.MaterialCost,
				Hours:        row.RowHours,
				LaborCost:    row.LaborCost,
				Total:        row.Total,
			})
		}
	}

	return data
}
