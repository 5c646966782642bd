package services

// Selection defaults applied when an item is added or when a field update
// does not yield a positive value.
const (
	defaultCount  = 1.0
	defaultMarkup = 1.2
)

// Selection is one chosen catalog item within a section.
type Selection struct {
	ItemID string  `json:"itemId"`
	Count  float64 `json:"count"`
	Markup float64 `json:"markup"`
}

// Params holds the session-wide estimate parameters. Year, make, and
// model are display-only; van type filters choices and prunes
// selections; the rates feed the totals.
type Params struct {
	Year      string  `json:"year"`
	Make      string  `json:"make"`
	Model     string  `json:"model"`
	VanType   string  `json:"vanType"`
	LaborRate float64 `json:"laborRate"`
	TaxRate   float64 `json:"taxRate"`
}

// SectionTotals are the derived per-section costs.
type SectionTotals struct {
	LaborHours   float64 `json:"laborHours"`
	MaterialCost float64 `json:"materialCost"`
	LaborCost    float64 `json:"laborCost"`
	Total        float64 `json:"total"`
}

// OverallTotals are the derived whole-estimate costs.
type OverallTotals struct {
	Material float64 `json:"material"`
	Labor    float64 `json:"labor"`
	PreTax   float64 `json:"preTax"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// SelectedItem is a selection resolved against its catalog item.
type SelectedItem struct {
	Item
	Count  float64 `json:"count"`
	Markup float64 `json:"markup"`
}

// Estimator owns one session's selection state and derives every total
// from the catalog, the selections, and the rate parameters. Construct
// one per session; it carries no package-level state and every query
// walks the current selections, so totals can never go stale.
type Estimator struct {
	catalog  *Catalog
	selected map[string][]Selection
	params   Params
}

// NewEstimator creates an estimator over an immutable catalog, seeding
// the rates from the catalog defaults.
func NewEstimator(catalog *Catalog) *Estimator {
	return &Estimator{
		catalog:  catalog,
		selected: make(map[string][]Selection),
		params: Params{
			LaborRate: catalog.DefaultLaborRate,
			TaxRate:   catalog.DefaultTaxRate,
		},
	}
}

// Catalog returns the catalog this estimator reads from.
func (e *Estimator) Catalog() *Catalog { return e.catalog }

// Params returns the current estimate parameters.
func (e *Estimator) Params() Params { return e.params }

// SetVehicle updates the display-only vehicle identifiers.
func (e *Estimator) SetVehicle(year, makeName, model string) {
	e.params.Year = year
	e.params.Make = makeName
	e.params.Model = model
}

// SetLaborRate updates the hourly labor rate. Unparseable or negative
// input clamps to 0.
func (e *Estimator) SetLaborRate(raw any) {
	rate := AsNumber(raw)
	if rate < 0 {
		rate = 0
	}
	e.params.LaborRate = rate
}

// SetTaxRate updates the tax percentage. Unparseable or negative input
// clamps to 0.
func (e *Estimator) SetTaxRate(raw any) {
	rate := AsNumber(raw)
	if rate < 0 {
		rate = 0
	}
	e.params.TaxRate = rate
}

// SetVanType switches the compatibility profile and prunes every
// selection whose item is not tagged for the new type. The prune is
// deliberate and not reversible: an incompatible part must not remain
// costed.
func (e *Estimator) SetVanType(tag string) {
	e.params.VanType = Normalize(tag)
	for _, section := range e.catalog.Sections {
		var kept []Selection
		for _, sel := range e.selected[section.Name] {
			item, ok := section.ItemByID(sel.ItemID)
			if !ok {
				continue
			}
			if item.CompatibleWith(e.params.VanType) {
				kept = append(kept, sel)
			}
		}
		e.selected[section.Name] = kept
	}
}

// AddSelection appends an item to a section's selections with default
// count and markup. Blank IDs and already-selected items are no-ops, so
// the call is idempotent. It returns the section's updated totals.
func (e *Estimator) AddSelection(sectionName, itemID string) SectionTotals {
	if itemID == "" {
		return e.SectionTotals(sectionName)
	}
	for _, sel := range e.selected[sectionName] {
		if sel.ItemID == itemID {
			return e.SectionTotals(sectionName)
		}
	}
	e.selected[sectionName] = append(e.selected[sectionName], Selection{
		ItemID: itemID,
		Count:  defaultCount,
		Markup: defaultMarkup,
	})
	return e.SectionTotals(sectionName)
}

// RemoveSelection drops an item from a section's selections. Removing an
// absent item is a no-op.
func (e *Estimator) RemoveSelection(sectionName, itemID string) {
	var kept []Selection
	for _, sel := range e.selected[sectionName] {
		if sel.ItemID != itemID {
			kept = append(kept, sel)
		}
	}
	e.selected[sectionName] = kept
}

// UpdateSelectionField coerces rawValue and applies it to the named field
// of one selection. Non-positive or unparseable values reset count to 1
// and markup to the default multiplier. Unknown fields are a no-op.
func (e *Estimator) UpdateSelectionField(sectionName, itemID, field string, rawValue any) {
	next := AsNumber(rawValue)
	selections := e.selected[sectionName]
	for i, sel := range selections {
		if sel.ItemID != itemID {
			continue
		}
		switch field {
		case "count":
			if next > 0 {
				selections[i].Count = next
			} else {
				selections[i].Count = defaultCount
			}
		case "markup":
			if next > 0 {
				selections[i].Markup = next
			} else {
				selections[i].Markup = defaultMarkup
			}
		}
	}
}

// SelectedItems resolves a section's selections against the catalog.
// Entries referencing a missing item are excluded; the catalog should not
// change mid-session, but a dangling reference must never poison totals.
func (e *Estimator) SelectedItems(sectionName string) []SelectedItem {
	section, ok := e.catalog.SectionByName(sectionName)
	if !ok {
		return nil
	}
	var resolved []SelectedItem
	for _, sel := range e.selected[sectionName] {
		item, ok := section.ItemByID(sel.ItemID)
		if !ok {
			continue
		}
		count := sel.Count
		if count <= 0 {
			count = defaultCount
		}
		markup := sel.Markup
		if markup <= 0 {
			markup = defaultMarkup
		}
		resolved = append(resolved, SelectedItem{Item: item, Count: count, Markup: markup})
	}
	return resolved
}

// CompatibleChoices lists the section items that can still be added:
// tagged for the current van type and not already selected. Without a
// van type there is no compatibility context and no choices are offered.
func (e *Estimator) CompatibleChoices(sectionName string) []Item {
	if e.params.VanType == "" {
		return nil
	}
	section, ok := e.catalog.SectionByName(sectionName)
	if !ok {
		return nil
	}
	selectedIDs := make(map[string]bool)
	for _, sel := range e.selected[sectionName] {
		selectedIDs[sel.ItemID] = true
	}
	var choices []Item
	for _, item := range section.Items {
		if selectedIDs[item.ID] {
			continue
		}
		if item.CompatibleWith(e.params.VanType) {
			choices = append(choices, item)
		}
	}
	return choices
}

// SectionTotals derives a section's material, labor, and combined costs
// from its current selections.
func (e *Estimator) SectionTotals(sectionName string) SectionTotals {
	var totals SectionTotals
	for _, it := range e.SelectedItems(sectionName) {
		totals.LaborHours += it.EstimatedHours * it.Count
		totals.MaterialCost += it.PricePerUnit * it.Count * it.Markup
	}
	totals.LaborCost = totals.LaborHours * e.params.LaborRate
	totals.Total = totals.MaterialCost + totals.LaborCost
	return totals
}

// OverallTotals sums every section's totals and applies the tax rate.
func (e *Estimator) OverallTotals() OverallTotals {
	var overall OverallTotals
	for _, section := range e.catalog.Sections {
		st := e.SectionTotals(section.Name)
		overall.Material += st.MaterialCost
		overall.Labor += st.LaborCost
	}
	overall.PreTax = overall.Material + overall.Labor
	overall.Tax = overall.PreTax * (e.params.TaxRate / 100)
	overall.Total = overall.PreTax + overall.Tax
	return overall
}
