package services

import "strings"

// SelectedRow is one selected line as the view renders it, with its
// per-line derived costs precomputed so no renderer re-derives pricing.
type SelectedRow struct {
	SelectedItem
	MaterialCost float64 `json:"materialCost"`
	LaborCost    float64 `json:"laborCost"`
	RowHours     float64 `json:"rowHours"`
	Total        float64 `json:"total"`
}

// SectionView is everything a renderer needs for one section panel.
type SectionView struct {
	Name     string        `json:"name"`
	Key      string        `json:"key"`
	Selected []SelectedRow `json:"selected"`
	Choices  []Item        `json:"choices"`
	Totals   SectionTotals `json:"totals"`
}

// EstimateView is the complete plain-data view model. It is the only
// surface a rendering layer (HTML, TUI, JSON API) is allowed to read.
type EstimateView struct {
	VehicleTitle string        `json:"vehicleTitle"`
	Params       Params        `json:"params"`
	VanTypes     []string      `json:"vanTypes"`
	Sections     []SectionView `json:"sections"`
	Overall      OverallTotals `json:"overall"`
}

// View assembles the current view model from the estimator's state.
func (e *Estimator) View() EstimateView {
	view := EstimateView{
		VehicleTitle: vehicleTitle(e.params),
		Params:       e.params,
		VanTypes:     e.catalog.VanTypes,
		Overall:      e.OverallTotals(),
	}
	for _, section := range e.catalog.Sections {
		sv := SectionView{
			Name:    section.Name,
			Key:     SectionKey(section.Name),
			Choices: e.CompatibleChoices(section.Name),
			Totals:  e.SectionTotals(section.Name),
		}
		for _, it := range e.SelectedItems(section.Name) {
			rowHours := it.EstimatedHours * it.Count
			material := it.PricePerUnit * it.Count * it.Markup
			labor := rowHours * e.params.LaborRate
			sv.Selected = append(sv.Selected, SelectedRow{
				SelectedItem: it,
				MaterialCost: material,
				LaborCost:    labor,
				RowHours:     rowHours,
				Total:        material + labor,
			})
		}
		view.Sections = append(view.Sections, sv)
	}
	return view
}

// vehicleTitle joins the display-only identifiers into one label,
// collapsing whitespace when fields are blank.
func vehicleTitle(p Params) string {
	return strings.Join(strings.Fields(p.Year+" "+p.Make+" "+p.Model), " ")
}
