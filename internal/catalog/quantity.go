package catalog

import (
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Quantity is a recipe ingredient line's amount: either a literal numeric
// value in some unit, or the `@portion` sentinel, which defers the actual
// amount to the protein-portion rules at resolution time.
//
// The source schema spells this as a string sentinel inside an otherwise
// numeric field; Quantity keeps the tagged-variant reading at the Go type
// boundary instead, so `@portion` never leaks past the loader.
type Quantity struct {
	IsPortion bool
	Value     float64
	Unit      Unit
}

// Portion is the `@portion` sentinel value.
var Portion = Quantity{IsPortion: true}

// Literal builds a concrete quantity.
func Literal(value float64, unit Unit) Quantity {
	return Quantity{Value: value, Unit: unit}
}

func (q Quantity) String() string {
	if q.IsPortion {
		return "@portion"
	}
	return fmt.Sprintf("%g %s", q.Value, q.Unit)
}

// UnmarshalYAML accepts either the literal string "@portion", or a mapping
// with `value`/`unit` keys, or a bare scalar number (unit left empty,
// resolved by the caller from context such as an ingredient's own unit).
// Any other key in the mapping form is rejected.
func (q *Quantity) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err == nil && s == "@portion" {
			*q = Portion
			return nil
		}
		var f float64
		if err := node.Decode(&f); err != nil {
			return fmt.Errorf("quantity: scalar %q is neither @portion nor a number", node.Value)
		}
		*q = Quantity{Value: f}
		return nil
	case yaml.MappingNode:
		for idx := 0; idx+1 < len(node.Content); idx += 2 {
			if k := node.Content[idx]; k.Value != "value" && k.Value != "unit" {
				return &yaml.TypeError{Errors: []string{
					fmt.Sprintf("line %d: field %s not found in type catalog.Quantity", k.Line, k.Value)}}
			}
		}
		var raw struct {
			Value float64 `yaml:"value"`
			Unit  Unit    `yaml:"unit"`
		}
		if err := node.Decode(&raw); err != nil {
			return fmt.Errorf("quantity: %w", err)
		}
		*q = Quantity{Value: raw.Value, Unit: raw.Unit}
		return nil
	default:
		return fmt.Errorf("quantity: unsupported YAML node kind %v", node.Kind)
	}
}

// MarshalJSON rounds to two decimal places at serialization time, per the
// source's own rounding point, so intermediate aggregation sums stay exact.
func (q Quantity) MarshalJSON() ([]byte, error) {
	rounded := math.Round(q.Value*100) / 100
	return []byte(fmt.Sprintf("%g", rounded)), nil
}

// UnmarshalJSON reads the bare number MarshalJSON writes. The unit is not
// part of that encoding, so the decoded Quantity has an empty Unit.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	*q = Quantity{Value: f}
	return nil
}
