package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF renders the printable estimate document using maroto/v2 and
// returns the raw PDF bytes.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addEstimateHeader(m, data)
	addEstimateTableHeader(m)
	for _, r := range data.Rows {
		addEstimateRow(m, r)
	}
	addEstimateSummary(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addEstimateHeader adds the title plus the vehicle/rate metadata.
func addEstimateHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	meta := props.Text{
		Size:  9,
		Align: align.Left,
		Color: &props.Color{Red: 80, Green: 80, Blue: 80},
	}
	metaRight := meta
	metaRight.Align = align.Right

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Compatibility Profile: %s", data.VanType), meta),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.CreatedDate), metaRight),
			),
		),
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Labor Rate: %s / hr", FormatUSD(data.LaborRate)), meta),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Tax Rate: %.2f%%", data.TaxRate), metaRight),
			),
		),
		row.New(4),
	)
}

// addEstimateTableHeader adds the column header row for the line items.
func addEstimateTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(3).Add(text.New("Item Description", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Size", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Unit Price", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Count", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Markup", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Material", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Hours", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Labor", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Total", headerText)).WithStyle(&headerCell),
		),
	)
}

// addEstimateRow adds one export row: section headers get a shaded band,
// item lines get the full cost breakdown.
func addEstimateRow(m core.Maroto, r ExportRow) {
	if r.SectionHeader {
		bg := &props.Color{Red: 235, Green: 235, Blue: 235}
		cell := &props.Cell{BackgroundColor: bg}
		style := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}
		styleRight := style
		styleRight.Align = align.Right

		m.AddRows(
			row.New(8).Add(
				col.New(9).Add(text.New(r.Section, style)).WithStyle(cell),
				col.New(3).Add(text.New(FormatUSD(r.Total), styleRight)).WithStyle(cell),
			),
		)
		return
	}

	base := props.Text{Size: 7, Align: align.Center}
	left := base
	left.Align = align.Left
	right := base
	right.Align = align.Right

	size := r.ItemSize
	if size == "" {
		size = "-"
	}

	m.AddRows(
		row.New(7).Add(
			col.New(3).Add(text.New(r.Description, left)),
			col.New(1).Add(text.New(size, base)),
			col.New(1).Add(text.New(FormatUSD(r.PricePerUnit), right)),
			col.New(1).Add(text.New(formatQty(r.Count), base)),
			col.New(1).Add(text.New(fmt.Sprintf("%.2f", r.Markup), base)),
			col.New(2).Add(text.New(FormatUSD(r.MaterialCost), right)),
			col.New(1).Add(text.New(FormatHours(r.Hours), base)),
			col.New(1).Add(text.New(FormatUSD(r.LaborCost), right)),
			col.New(1).Add(text.New(FormatUSD(r.Total), right)),
		),
	)
}

// addEstimateSummary adds the overall totals block.
func addEstimateSummary(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	valueStyle := labelStyle

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
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(text.New(line.label, labelStyle)).WithStyle(summaryCell),
				col.New(4).Add(text.New(FormatUSD(line.value), valueStyle)).WithStyle(summaryCell),
			),
		)
	}
}

// formatQty renders a count as a whole number when it has no fractional
// part, otherwise with two decimals.
func formatQty(qty float64) string {
	if qty == float64(int64(qty)) {
		return fmt.Sprintf("%d", int64(qty))
	}
	return fmt.Sprintf("%.2f", qty)
}
