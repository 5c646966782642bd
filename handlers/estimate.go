package handlers

import (
	"fmt"
	"net/http"
	"time"

	"vanestimate/services"
)

// HandleState returns the full view model: sections with selections,
// addable choices, per-section totals, and overall totals.
func (s *Server) HandleState(w http.ResponseWriter, r *http.Request) {
	if !s.available(w) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"source":   s.source,
		"estimate": s.est.View(),
	})
}

type selectionRequest struct {
	Section string `json:"section"`
	ItemID  string `json:"itemId"`
}

// HandleAddItem adds a catalog item to a section's selections.
func (s *Server) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	if !s.available(w) {
		return
	}
	var req selectionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	totals := s.est.AddSelection(req.Section, req.ItemID)
	writeJSON(w, http.StatusOK, map[string]any{
		"sectionTotals": totals,
		"estimate":      s.est.View(),
	})
}

// HandleRemoveItem removes a selection; removing an absent item succeeds.
func (s *Server) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	if !s.available(w) {
		return
	}
	var req selectionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.est.RemoveSelection(req.Section, req.ItemID)
	writeJSON(w, http.StatusOK, map[string]any{"estimate": s.est.View()})
}

// HandleUpdateSelection updates a count or markup field on one selection.
// The value may arrive as a JSON number or as raw input text.
func (s *Server) HandleUpdateSelection(w http.ResponseWriter, r *http.Request) {
	if !s.available(w) {
		return
	}
	var req struct {
		Section string `json:"section"`
		ItemID  string `json:"itemId"`
		Field   string `json:"field"`
		Value   any    `json:"value"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.est.UpdateSelectionField(req.Section, req.ItemID, req.Field, req.Value)
	writeJSON(w, http.StatusOK, map[string]any{"estimate": s.est.View()})
}

// HandleSetVanType switches the compatibility profile. Selections that
// are incompatible with the new type are pruned.
func (s *Server) HandleSetVanType(w http.ResponseWriter, r *http.Request) {
	if !s.available(w) {
		return
	}
	var req struct {
		VanType string `json:"vanType"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.est.SetVanType(req.VanType)
	writeJSON(w, http.StatusOK, map[string]any{"estimate": s.est.View()})
}

// HandleSetRates updates the labor and/or tax rates. Absent fields are
// left unchanged.
func (s *Server) HandleSetRates(w http.ResponseWriter, r *http.Request) {
	if !s.available(w) {
		return
	}
	var req struct {
		LaborRate any `json:"laborRate"`
		TaxRate   any `json:"taxRate"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if req.LaborRate != nil {
		s.est.SetLaborRate(req.LaborRate)
	}
	if req.TaxRate != nil {
		s.est.SetTaxRate(req.TaxRate)
	}
	writeJSON(w, http.StatusOK, map[string]any{"estimate": s.est.View()})
}

// HandleSetVehicle updates the display-only vehicle identifiers.
func (s *Server) HandleSetVehicle(w http.ResponseWriter, r *http.Request) {
	if !s.available(w) {
		return
	}
	var req struct {
		Year  string `json:"year"`
		Make  string `json:"make"`
		Model string `json:"model"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.est.SetVehicle(req.Year, req.Make, req.Model)
	writeJSON(w, http.StatusOK, map[string]any{"estimate": s.est.View()})
}

// HandleExportPDF streams the printable estimate as a PDF document.
func (s *Server) HandleExportPDF(w http.ResponseWriter, r *http.Request) {
	if !s.available(w) {
		return
	}
	s.mu.Lock()
	data := services.BuildExportData(s.est, time.Now())
	s.mu.Unlock()

	pdf, err := services.GeneratePDF(data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", exportFileName(data, "pdf")))
	w.Write(pdf)
}

// HandleExportExcel streams the estimate as an xlsx workbook.
func (s *Server) HandleExportExcel(w http.ResponseWriter, r *http.Request) {
	if !s.available(w) {
		return
	}
	s.mu.Lock()
	data := services.BuildExportData(s.est, time.Now())
	s.mu.Unlock()

	workbook, err := services.GenerateExcel(data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate workbook")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", exportFileName(data, "xlsx")))
	w.Write(workbook)
}

func exportFileName(data services.ExportData, ext string) string {
	key := services.SectionKey(data.Title)
	if key == "" {
		key = "estimate"
	}
	return key + "." + ext
}
