package checklist

import (
	"testing"

	"github.com/DukeRupert/vigil/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories_MatchesTemplateShape(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, CategoryCount())

	kinds := map[string]domain.CategoryKind{}
	for _, c := range cats {
		require.True(t, c.Kind.IsValid(), "category %s has invalid kind", c.ID)
		kinds[c.ID] = c.Kind
	}

	assert.Equal(t, domain.CategoryKindStandard, kinds["extinguishers"])
	assert.Equal(t, domain.CategoryKindStandard, kinds["hydrants"])
	assert.Equal(t, domain.CategoryKindSpecial, kinds["pump"])
	assert.Equal(t, domain.CategoryKindPressure, kinds["pressure"])
}

func TestCategories_EveryFieldStartsEmpty(t *testing.T) {
	for _, c := range Categories() {
		assert.False(t, c.Expanded)
		assert.Equal(t, domain.StatusEmpty, c.Status)
		assert.Empty(t, c.Observation)
		assert.Empty(t, c.PressureValue)
		for _, si := range c.SubItems {
			assert.Equal(t, domain.StatusEmpty, si.Status)
			assert.Empty(t, si.Observation)
			assert.False(t, si.ShowObservation)
		}
	}
}

func TestCategories_ReturnsIndependentCopies(t *testing.T) {
	a := Categories()
	b := Categories()

	a[0].SubItems[0].Status = domain.StatusNotCompliant
	a[0].Expanded = true

	assert.Equal(t, domain.StatusEmpty, b[0].SubItems[0].Status,
		"mutating one copy must not leak into another")
	assert.False(t, b[0].Expanded)
}

func TestCategories_RegistryMarkers(t *testing.T) {
	cats := Categories()

	var hoses, extinguishers int
	for _, c := range cats {
		for _, si := range c.SubItems {
			switch si.Registry {
			case domain.RegistryHoses:
				hoses++
			case domain.RegistryExtinguishers:
				extinguishers++
			}
		}
	}
	assert.Equal(t, 1, hoses)
	assert.Equal(t, 1, extinguishers)
}

func TestValidOption(t *testing.T) {
	tests := []struct {
		name    string
		options []string
		value   string
		want    bool
	}{
		{"known hose length", HoseLengths, "20m", true},
		{"unknown hose length", HoseLengths, "45m", false},
		{"empty is always valid", ExtinguisherTypes, "", true},
		{"known extinguisher type", ExtinguisherTypes, "PQS ABC", true},
		{"case matters", ExtinguisherTypes, "co2", false},
		{"known weight", ExtinguisherWeights, "6kg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidOption(tt.options, tt.value))
		})
	}
}
