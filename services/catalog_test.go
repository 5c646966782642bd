package services

import (
	"reflect"
	"strings"
	"testing"
)

func sampleGrid() ([]string, [][]string) {
	headers := []string{"Type", "Item Description", "Link", "Item Size", "Price Per Unit", "Est.Hrs", "Promaster", "Sprinter", "Transit", "Other"}
	body := [][]string{
		{"Flooring", "Vinyl Flooring", "https://example.com/vinyl", "8x6", "$425.00", "3.5", "x", "x", "", ""},
		{"Flooring", "Subfloor", "", "4x8", "$1,250.50", "2", "x", "", "yes", ""},
		{"Electrical", "Battery", "", "", "950", "1.25", "x", "x", "x", ""},
		{"Flooring", "", "", "", "10", "1", "x", "", "", ""}, // missing description
		{"", "Orphan", "", "", "25", "0.5", "x", "", "", ""}, // missing section
		{"Electrical", "Fuse Block", "", "", "64.99", "0.75", "", "1", "", ""},
	}
	return headers, body
}

func TestBuildCatalog(t *testing.T) {
	headers, body := sampleGrid()

	catalog, err := BuildCatalog(headers, body)
	if err != nil {
		t.Fatalf("BuildCatalog() error = %v", err)
	}

	t.Run("sections preserve encounter order", func(t *testing.T) {
		if len(catalog.Sections) != 2 {
			t.Fatalf("expected 2 sections, got %d", len(catalog.Sections))
		}
		if catalog.Sections[0].Name != "Flooring" || catalog.Sections[1].Name != "Electrical" {
			t.Errorf("unexpected section order: %q, %q", catalog.Sections[0].Name, catalog.Sections[1].Name)
		}
	})

	t.Run("malformed rows dropped silently", func(t *testing.T) {
		total := 0
		for _, s := range catalog.Sections {
			total += len(s.Items)
		}
		if total != 4 {
			t.Errorf("expected 4 items (2 rows dropped), got %d", total)
		}
	})

	t.Run("item ids derive from section and row position", func(t *testing.T) {
		flooring := catalog.Sections[0]
		if flooring.Items[0].ID != "flooring-0" || flooring.Items[1].ID != "flooring-1" {
			t.Errorf("unexpected flooring ids: %q, %q", flooring.Items[0].ID, flooring.Items[1].ID)
		}
		electrical := catalog.Sections[1]
		// Fuse Block sits at body row index 5.
		if electrical.Items[1].ID != "electrical-5" {
			t.Errorf("expected id electrical-5, got %q", electrical.Items[1].ID)
		}
	})

	t.Run("values coerced from messy cells", func(t *testing.T) {
		subfloor := catalog.Sections[0].Items[1]
		if subfloor.PricePerUnit != 1250.5 {
			t.Errorf("expected price 1250.5, got %v", subfloor.PricePerUnit)
		}
		if subfloor.EstimatedHours != 2 {
			t.Errorf("expected 2 hours, got %v", subfloor.EstimatedHours)
		}
	})

	t.Run("compatibility tags from yes-valued columns", func(t *testing.T) {
		subfloor := catalog.Sections[0].Items[1]
		if !reflect.DeepEqual(subfloor.Compatible, []string{"promaster", "transit"}) {
			t.Errorf("unexpected tags: %v", subfloor.Compatible)
		}
		fuse := catalog.Sections[1].Items[1]
		if !reflect.DeepEqual(fuse.Compatible, []string{"sprinter"}) {
			t.Errorf("unexpected tags: %v", fuse.Compatible)
		}
	})

	t.Run("van types from compatibility headers", func(t *testing.T) {
		if !reflect.DeepEqual(catalog.VanTypes, []string{"promaster", "sprinter", "transit", "other"}) {
			t.Errorf("unexpected van types: %v", catalog.VanTypes)
		}
	})

	t.Run("non-negative costs for well-formed grid", func(t *testing.T) {
		for _, s := range catalog.Sections {
			for _, it := range s.Items {
				if it.PricePerUnit < 0 || it.EstimatedHours < 0 {
					t.Errorf("item %s has negative cost fields", it.ID)
				}
			}
		}
	})
}

func TestBuildCatalog_Errors(t *testing.T) {
	t.Run("no body rows", func(t *testing.T) {
		_, err := BuildCatalog([]string{"Type", "Item Description"}, nil)
		if err == nil {
			t.Error("expected error for empty body")
		}
	})

	t.Run("missing required columns", func(t *testing.T) {
		_, err := BuildCatalog([]string{"Color", "Weight"}, [][]string{{"red", "5"}})
		if err == nil {
			t.Error("expected error when required columns cannot be inferred")
		}
		if err != nil && !strings.Contains(err.Error(), "required") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing only optional columns still builds", func(t *testing.T) {
		catalog, err := BuildCatalog(
			[]string{"Type", "Item Description"},
			[][]string{{"Flooring", "Vinyl"}},
		)
		if err != nil {
			t.Fatalf("BuildCatalog() error = %v", err)
		}
		item := catalog.Sections[0].Items[0]
		if item.PricePerUnit != 0 || item.EstimatedHours != 0 {
			t.Errorf("expected zero defaults for absent columns, got %v / %v", item.PricePerUnit, item.EstimatedHours)
		}
		if len(item.Compatible) != 0 {
			t.Errorf("expected no tags, got %v", item.Compatible)
		}
	})
}

func TestSectionKey(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"simple", "Flooring", "flooring"},
		{"spaces collapse", "Roof  Vent", "roof-vent"},
		{"punctuation collapses", "Heat & A/C!", "heat-a-c"},
		{"leading trailing stripped", " Solar ", "solar"},
		{"digits kept", "12V Wiring", "12v-wiring"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SectionKey(tt.input); got != tt.expect {
				t.Errorf("SectionKey(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestCatalogFromSnapshot(t *testing.T) {
	data := []byte(`{
		"defaultLaborRate": 95,
		"taxRate": 7.5,
		"sections": [
			{"name": "Flooring", "items": [
				{"product": "Vinyl", "materialCost": 425, "laborHours": 3.5, "compatible": ["Promaster", "sprinter"]},
				{"product": "", "materialCost": 10, "laborHours": 1}
			]},
			{"name": "Electrical", "items": [
				{"product": "Battery", "materialCost": 950, "laborHours": 1.25, "compatible": ["transit"]}
			]}
		]
	}`)

	catalog, err := CatalogFromSnapshot(data)
	if err != nil {
		t.Fatalf("CatalogFromSnapshot() error = %v", err)
	}

	if catalog.DefaultLaborRate != 95 || catalog.DefaultTaxRate != 7.5 {
		t.Errorf("rates not carried: %v / %v", catalog.DefaultLaborRate, catalog.DefaultTaxRate)
	}
	if len(catalog.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(catalog.Sections))
	}
	if len(catalog.Sections[0].Items) != 1 {
		t.Errorf("expected blank product dropped, got %d items", len(catalog.Sections[0].Items))
	}
	vinyl := catalog.Sections[0].Items[0]
	if vinyl.ID != "flooring-0" {
		t.Errorf("unexpected id %q", vinyl.ID)
	}
	if !reflect.DeepEqual(vinyl.Compatible, []string{"promaster", "sprinter"}) {
		t.Errorf("tags not normalized: %v", vinyl.Compatible)
	}
	if !reflect.DeepEqual(catalog.VanTypes, []string{"promaster", "sprinter", "transit"}) {
		t.Errorf("unexpected van types: %v", catalog.VanTypes)
	}
}

func TestCatalogFromSnapshot_RepeatedSections(t *testing.T) {
	data := []byte(`{
		"sections": [
			{"name": "Flooring", "items": [
				{"product": "Vinyl", "materialCost": 425}
			]},
			{"name": "Electrical", "items": [
				{"product": "Battery", "materialCost": 950}
			]},
			{"name": "Flooring", "items": [
				{"product": "Subfloor", "materialCost": 180}
			]}
		]
	}`)

	catalog, err := CatalogFromSnapshot(data)
	if err != nil {
		t.Fatalf("CatalogFromSnapshot() error = %v", err)
	}

	if len(catalog.Sections) != 2 {
		t.Fatalf("expected repeated section names to merge into 2 sections, got %d", len(catalog.Sections))
	}
	flooring := catalog.Sections[0]
	if flooring.Name != "Flooring" || len(flooring.Items) != 2 {
		t.Fatalf("expected merged Flooring with 2 items, got %q with %d", flooring.Name, len(flooring.Items))
	}
	if flooring.Items[0].Description != "Vinyl" || flooring.Items[1].Description != "Subfloor" {
		t.Errorf("unexpected merged items: %+v", flooring.Items)
	}
	if flooring.Items[1].ID != "flooring-2" {
		t.Errorf("unexpected id for merged item: %q", flooring.Items[1].ID)
	}
}

func TestCatalogFromSnapshot_Errors(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		if _, err := CatalogFromSnapshot([]byte("{not json")); err == nil {
			t.Error("expected error for malformed snapshot")
		}
	})

	t.Run("no sections", func(t *testing.T) {
		if _, err := CatalogFromSnapshot([]byte(`{"sections": []}`)); err == nil {
			t.Error("expected error for empty snapshot")
		}
	})

	t.Run("missing rates fall back to defaults", func(t *testing.T) {
		catalog, err := CatalogFromSnapshot([]byte(`{"sections": [{"name": "A", "items": [{"product": "p"}]}]}`))
		if err != nil {
			t.Fatalf("CatalogFromSnapshot() error = %v", err)
		}
		if catalog.DefaultLaborRate != DefaultLaborRate || catalog.DefaultTaxRate != DefaultTaxRate {
			t.Errorf("expected fallback rates, got %v / %v", catalog.DefaultLaborRate, catalog.DefaultTaxRate)
		}
	})
}
