package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Default rate constants applied when the catalog source does not carry
// its own.
const (
	DefaultLaborRate = 110.0
	DefaultTaxRate   = 8.25
)

// Item is a single installable catalog entry.
type Item struct {
	ID             string   `json:"id"`
	Description    string   `json:"description"`
	Link           string   `json:"link,omitempty"`
	ItemSize       string   `json:"itemSize,omitempty"`
	PricePerUnit   float64  `json:"pricePerUnit"`
	EstimatedHours float64  `json:"estimatedHours"`
	Compatible     []string `json:"compatible"`
}

// CompatibleWith reports whether the item is tagged for the given van type.
func (it Item) CompatibleWith(vanType string) bool {
	for _, tag := range it.Compatible {
		if tag == vanType {
			return true
		}
	}
	return false
}

// Section is a named category of items, in source encounter order.
type Section struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// ItemByID looks up an item within the section.
func (s Section) ItemByID(id string) (Item, bool) {
	for _, it := range s.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Catalog is the normalized, immutable shape of a loaded catalog source.
type Catalog struct {
	Sections         []Section `json:"sections"`
	VanTypes         []string  `json:"vanTypes"`
	DefaultLaborRate float64   `json:"defaultLaborRate"`
	DefaultTaxRate   float64   `json:"taxRate"`
}

// SectionByName finds a section by its unique name.
func (c *Catalog) SectionByName(name string) (Section, bool) {
	for _, s := range c.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// SectionKey derives a stable, URL/DOM-safe key from a section name by
// lowercasing and collapsing runs of non-alphanumerics to single dashes.
func SectionKey(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		} else {
			dash = true
		}
	}
	return b.String()
}

// MakeItemID derives an item identifier from its section name and the row
// position within the source body. Unique within one load; not stable
// across reloads if the upstream row order changes.
func MakeItemID(sectionName string, rowIndex int) string {
	return SectionKey(sectionName) + "-" + strconv.Itoa(rowIndex)
}

// BuildCatalog normalizes a raw header+body row grid into a Catalog.
// It fails when the body is empty or when the required section and item
// description columns cannot be inferred. Individual rows missing either
// required value are dropped silently; unparseable numeric cells coerce
// to zero.
func BuildCatalog(headers []string, body [][]string) (*Catalog, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("catalog source has no data rows")
	}

	typeCol := PickColumn(headers, []string{"type", "types"})
	descCol := PickColumn(headers, []string{"item description", "product", "item", "name"})
	linkCol := PickColumn(headers, []string{"link", "url"})
	sizeCol := PickColumn(headers, []string{"item size", "size"})
	priceCol := PickColumn(headers, []string{"price per unit", "price", "material cost"})
	hoursCol := PickColumn(headers, []string{"est.hrs", "est hrs", "estimated hours", "labor hours", "hours"})

	if typeCol < 0 || descCol < 0 {
		return nil, fmt.Errorf("catalog source is missing required Type and Item Description columns")
	}

	tagCols := CompatibilityColumns(headers)

	cell := func(row []string, col int) string {
		if col < 0 || col >= len(row) {
			return ""
		}
		return row[col]
	}

	var order []string
	bySection := make(map[string][]Item)

	for rowIdx, row := range body {
		sectionName := strings.TrimSpace(cell(row, typeCol))
		description := strings.TrimSpace(cell(row, descCol))
		if sectionName == "" || description == "" {
			continue
		}

		var compatible []string
		for _, tc := range tagCols {
			if YesValue(cell(row, tc.Index)) {
				compatible = append(compatible, tc.Tag)
			}
		}

		item := Item{
			ID:             MakeItemID(sectionName, rowIdx),
			Description:    description,
			Link:           strings.TrimSpace(cell(row, linkCol)),
			ItemSize:       strings.TrimSpace(cell(row, sizeCol)),
			PricePerUnit:   AsNumber(cell(row, priceCol)),
			EstimatedHours: AsNumber(cell(row, hoursCol)),
			Compatible:     compatible,
		}

		if _, seen := bySection[sectionName]; !seen {
			order = append(order, sectionName)
		}
		bySection[sectionName] = append(bySection[sectionName], item)
	}

	catalog := &Catalog{
		DefaultLaborRate: DefaultLaborRate,
		DefaultTaxRate:   DefaultTaxRate,
	}
	for _, name := range order {
		catalog.Sections = append(catalog.Sections, Section{Name: name, Items: bySection[name]})
	}
	for _, tc := range tagCols {
		catalog.VanTypes = append(catalog.VanTypes, tc.Tag)
	}

	return catalog, nil
}

// snapshot mirrors the pre-normalized fallback data contract.
type snapshot struct {
	Sections []struct {
		Name  string `json:"name"`
		Items []struct {
			Product      string   `json:"product"`
			Link         string   `json:"link"`
			ItemSize     string   `json:"itemSize"`
			MaterialCost float64  `json:"materialCost"`
			LaborHours   float64  `json:"laborHours"`
			Compatible   []string `json:"compatible"`
		} `json:"items"`
	} `json:"sections"`
	DefaultLaborRate float64 `json:"defaultLaborRate"`
	TaxRate          float64 `json:"taxRate"`
}

// CatalogFromSnapshot builds a Catalog from the pre-normalized fallback
// shape. The same tolerance rules apply as for row grids: entries missing
// a section name or product are dropped, coerced values are clamped to
// finite numbers, and item IDs are derived from section name plus overall
// entry position.
func CatalogFromSnapshot(data []byte) (*Catalog, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse catalog snapshot: %w", err)
	}
	if len(snap.Sections) == 0 {
		return nil, fmt.Errorf("catalog snapshot has no sections")
	}

	catalog := &Catalog{
		DefaultLaborRate: snap.DefaultLaborRate,
		DefaultTaxRate:   snap.TaxRate,
	}
	if catalog.DefaultLaborRate <= 0 {
		catalog.DefaultLaborRate = DefaultLaborRate
	}
	if catalog.DefaultTaxRate <= 0 {
		catalog.DefaultTaxRate = DefaultTaxRate
	}

	// Sections with the same name merge into the first occurrence, like
	// repeated section values in a row grid.
	indexByName := make(map[string]int)
	rowIdx := 0
	for _, ss := range snap.Sections {
		name := strings.TrimSpace(ss.Name)
		if name == "" {
			continue
		}
		idx, ok := indexByName[name]
		if !ok {
			idx = len(catalog.Sections)
			indexByName[name] = idx
			catalog.Sections = append(catalog.Sections, Section{Name: name})
		}

		for _, si := range ss.Items {
			product := strings.TrimSpace(si.Product)
			if product == "" {
				rowIdx++
				continue
			}
			var tags []string
			for _, tag := range si.Compatible {
				if t := Normalize(tag); t != "" {
					tags = append(tags, t)
				}
			}
			catalog.Sections[idx].Items = append(catalog.Sections[idx].Items, Item{
				ID:             MakeItemID(name, rowIdx),
				Description:    product,
				Link:           strings.TrimSpace(si.Link),
				ItemSize:       strings.TrimSpace(si.ItemSize),
				PricePerUnit:   AsNumber(si.MaterialCost),
				EstimatedHours: AsNumber(si.LaborHours),
				Compatible:     tags,
			})
			for _, t := range tags {
				if !containsString(catalog.VanTypes, t) {
					catalog.VanTypes = append(catalog.VanTypes, t)
				}
			}
			rowIdx++
		}
	}

	return catalog, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
