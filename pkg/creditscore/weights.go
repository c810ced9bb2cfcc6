// pkg/creditscore/weights.go
package creditscore

import (
	"fmt"
	"math"
)

const weightSumTolerance = 1e-9

// WeightTable holds the relative importance of each scoring factor.
// Weights must sum to 1.0 and none may be negative.
type WeightTable struct {
	PaymentHistory      float64 `json:"paymentHistory" mapstructure:"payment_history"`
	Income              float64 `json:"income" mapstructure:"income"`
	EmploymentStability float64 `json:"employmentStability" mapstructure:"employment_stability"`
	References          float64 `json:"references" mapstructure:"references"`
	Location            float64 `json:"location" mapstructure:"location"`
}

// DefaultWeights returns the production weight distribution.
func DefaultWeights() WeightTable {
	return WeightTable{
		PaymentHistory:      0.30,
		Income:              0.25,
		EmploymentStability: 0.20,
		References:          0.15,
		Location:            0.10,
	}
}

// Sum returns the total of all weights.
func (w WeightTable) Sum() float64 {
	return w.PaymentHistory + w.Income + w.EmploymentStability + w.References + w.Location
}

// IsZero reports whether no weight has been set.
func (w WeightTable) IsZero() bool {
	return w == WeightTable{}
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w WeightTable) Validate() error {
	named := []struct {
		name  string
		value float64
	}{
		{"paymentHistory", w.PaymentHistory},
		{"income", w.Income},
		{"employmentStability", w.EmploymentStability},
		{"references", w.References},
		{"location", w.Location},
	}
	for _, n := range named {
		if n.value < 0 {
			return fmt.Errorf("%w: %s weight is negative (%.4f)", ErrInvalidWeights, n.name, n.value)
		}
	}

	if sum := w.Sum(); math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: weights sum to %.6f, want 1.0", ErrInvalidWeights, sum)
	}
	return nil
}
