package ranking

import (
	"errors"
	"fmt"
	"math"
)

const weightTolerance = 0.01

var ErrInvalidWeightConfiguration = errors.New("invalid weight configuration")

// Weights are percentages per dimension and must total 100.
type Weights struct {
	Skills      float64 `json:"skills_weight"`
	Experience  float64 `json:"experience_weight"`
	Education   float64 `json:"education_weight"`
	Personality float64 `json:"personality_weight"`
	CulturalFit float64 `json:"cultural_fit_weight"`
}

func DefaultWeights() Weights {
	return Weights{Skills: 50, Experience: 30, Education: 20}
}

func (w Weights) Total() float64 {
	return w.Skills + w.Experience + w.Education + w.Personality + w.CulturalFit
}

func (w Weights) IsValid() bool {
	return w.outOfBounds() == "" && math.Abs(w.Total()-100) < weightTolerance
}

func (w Weights) ValidationMessage() string {
	if name := w.outOfBounds(); name != "" {
		return fmt.Sprintf("%s weight must be between 0 and 100. Current total: %.2f%%", name, w.Total())
	}
	return fmt.Sprintf("Total weight must be 100%%. Current total: %.2f%%", w.Total())
}

// Validate returns ErrInvalidWeightConfiguration with the diagnostic attached.
func (w Weights) Validate() error {
	if w.IsValid() {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidWeightConfiguration, w.ValidationMessage())
}

func (w Weights) outOfBounds() string {
	fields := []struct {
		name string
		v    float64
	}{
		{"skills", w.Skills},
		{"experience", w.Experience},
		{"education", w.Education},
		{"personality", w.Personality},
		{"cultural fit", w.CulturalFit},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || f.v < 0 || f.v > 100 {
			return f.name
		}
	}
	return ""
}

type Validation struct {
	Valid   bool    `json:"valid"`
	Message string  `json:"message"`
	Total   float64 `json:"total"`
}

func Validate(w Weights) Validation {
	v := Validation{Valid: w.IsValid(), Total: w.Total()}
	if v.Valid {
		v.Message = "Weight configuration is valid"
	} else {
		v.Message = w.ValidationMessage()
	}
	return v
}
