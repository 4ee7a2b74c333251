package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes an Ingredient while tracking whether default_qty
// and max_times_week were present in the source document, so the loader
// can distinguish "absent" from "explicitly zero" — both fields are
// optional and only meaningful when kind = carb. Keys that are not
// Ingredient fields are rejected, one error per key.
func (i *Ingredient) UnmarshalYAML(node *yaml.Node) error {
	type plain Ingredient
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*i = Ingredient(p)

	var unknown []string
	for idx := 0; idx+1 < len(node.Content); idx += 2 {
		key := node.Content[idx]
		switch key.Value {
		case "id", "display", "unit", "section", "kind":
		case "default_qty":
			i.hasDefaultQty = true
		case "max_times_week":
			i.hasMaxTimes = true
		default:
			unknown = append(unknown, fmt.Sprintf("line %d: field %s not found in type catalog.Ingredient", key.Line, key.Value))
		}
	}
	if len(unknown) > 0 {
		return &yaml.TypeError{Errors: unknown}
	}
	return nil
}
