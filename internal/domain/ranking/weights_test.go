package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeights_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		w     Weights
		valid bool
	}{
		{"default", DefaultWeights(), true},
		{"all five", Weights{Skills: 40, Experience: 25, Education: 15, Personality: 10, CulturalFit: 10}, true},
		{"within tolerance", Weights{Skills: 33.333, Experience: 33.333, Education: 33.333}, true},
		{"under", Weights{Skills: 50, Experience: 30, Education: 10}, false},
		{"over", Weights{Skills: 60, Experience: 30, Education: 20}, false},
		{"negative component", Weights{Skills: 120, Experience: -20}, false},
		{"zero", Weights{}, false},
		{"single dimension", Weights{Skills: 100}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.w.IsValid())
			if tt.valid {
				assert.NoError(t, tt.w.Validate())
			} else {
				assert.ErrorIs(t, tt.w.Validate(), ErrInvalidWeightConfiguration)
			}
		})
	}
}

func TestWeights_ValidationMessage(t *testing.T) {
	w := Weights{Skills: 50, Experience: 30, Education: 10}
	assert.Contains(t, w.ValidationMessage(), "90.00")

	v := Validate(w)
	assert.False(t, v.Valid)
	assert.Equal(t, 90.0, v.Total)
	assert.Contains(t, v.Message, "Current total: 90.00%")

	v = Validate(DefaultWeights())
	require.True(t, v.Valid)
	assert.Equal(t, 100.0, v.Total)
}
