package shopping

import (
	"sort"

	"github.com/foodops/mealsched/internal/catalog"
	"github.com/foodops/mealsched/internal/portion"
)

type key struct {
	id   string
	unit catalog.Unit
}

// Aggregate sums quantities across every slot's resolved ingredient list,
// keyed by (ingredient id, unit), excludes pantry items, and groups the
// survivors by section, ordered within each section by display name in
// codepoint order.
func Aggregate(cat *catalog.Catalog, records []portion.SlotRecord) List {
	totals := map[key]float64{}
	display := map[key]string{}
	section := map[key]catalog.Section{}

	for _, rec := range records {
		for _, ing := range rec.Ingredients {
			if cat.Pantry[ing.Item] {
				continue
			}
			k := key{id: ing.Item, unit: ing.Unit}
			totals[k] += ing.Qty.Value
			display[k] = ing.Display
			if catIng, ok := cat.Ingredients[ing.Item]; ok {
				section[k] = catIng.Section
			}
		}
	}

	bySection := map[catalog.Section][]Item{}
	for k, total := range totals {
		bySection[section[k]] = append(bySection[section[k]], Item{
			ID:       k.id,
			Display:  display[k],
			Quantity: catalog.Literal(total, k.unit),
			Unit:     k.unit,
			Section:  section[k],
		})
	}

	for sec := range bySection {
		items := bySection[sec]
		sort.Slice(items, func(i, j int) bool { return items[i].Display < items[j].Display })
		bySection[sec] = items
	}

	return List{Sections: bySection}
}

// DeriveSummaries computes the plan JSON's per-protein and per-carb slot
// counts from the resolved records (no-carb slots excluded from carb
// counts).
func DeriveSummaries(records []portion.SlotRecord) Derived {
	d := Derived{ProteinCounts: map[string]int{}, CarbCounts: map[string]int{}}
	for _, rec := range records {
		d.ProteinCounts[rec.PrimaryProtein]++
		if rec.CarbID != "" {
			d.CarbCounts[rec.CarbID]++
		}
	}
	return d
}
