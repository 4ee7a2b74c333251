package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestQuantity_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Quantity
	}{
		{name: "portion sentinel", in: `"@portion"`, want: Portion},
		{name: "bare scalar number", in: `90`, want: Literal(90, "")},
		{name: "mapping with value and unit", in: "value: 90\nunit: grams", want: Literal(90, UnitGrams)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Quantity
			require.NoError(t, yaml.Unmarshal([]byte(tt.in), &q))
			assert.Equal(t, tt.want, q)
		})
	}
}

func TestQuantity_UnmarshalYAML_RejectsGarbageScalar(t *testing.T) {
	var q Quantity
	err := yaml.Unmarshal([]byte(`"spicy"`), &q)
	assert.Error(t, err)
}

func TestQuantity_MarshalJSON_Rounds(t *testing.T) {
	q := Literal(33.33333, UnitGrams)
	data, err := q.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "33.33", string(data))
}
