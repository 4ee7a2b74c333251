package planjson

import (
	"sort"

	"github.com/foodops/mealsched/internal/catalog"
	"github.com/foodops/mealsched/internal/shopping"
)

// ShoppingList is the top-level shape of shopping_list.json.
type ShoppingList struct {
	Sections map[string][]ShoppingItem `json:"sections"`
}

// ShoppingItem is one line within a shopping-list section.
type ShoppingItem struct {
	Item     string           `json:"item"`
	Display  string           `json:"display"`
	Quantity catalog.Quantity `json:"quantity"`
	Unit     string           `json:"unit"`
}

// sectionOrder lists the sections BuildShoppingList looks up in the
// aggregator's List, in the order sections would naturally be discussed
// in. That order does not reach the output: encoding/json writes the
// Sections map with its keys sorted lexicographically.
var sectionOrder = []catalog.Section{
	catalog.SectionProtein, catalog.SectionCarb, catalog.SectionVegetable,
	catalog.SectionDairy, catalog.SectionFat, catalog.SectionCondiment,
	catalog.SectionSpice, catalog.SectionOther,
}

// BuildShoppingList converts the aggregator's List into the wire shape,
// omitting sections that ended up empty after pantry exclusion.
func BuildShoppingList(list shopping.List) ShoppingList {
	sections := make(map[string][]ShoppingItem)
	for _, sec := range sectionOrder {
		items := list.Sections[sec]
		if len(items) == 0 {
			continue
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Display < items[j].Display })
		wire := make([]ShoppingItem, 0, len(items))
		for _, it := range items {
			wire = append(wire, ShoppingItem{
				Item:     it.ID,
				Display:  it.Display,
				Quantity: it.Quantity,
				Unit:     unitAbbrev(it.Unit),
			})
		}
		sections[string(sec)] = wire
	}
	return ShoppingList{Sections: sections}
}
