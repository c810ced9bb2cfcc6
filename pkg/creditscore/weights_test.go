// pkg/creditscore/weights_test.go
package creditscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightTable_Validate(t *testing.T) {
	tests := []struct {
		name    string
		weights WeightTable
		wantErr bool
	}{
		{name: "default weights", weights: DefaultWeights()},
		{name: "single factor", weights: WeightTable{Location: 1}},
		{
			name:    "sum below one",
			weights: WeightTable{PaymentHistory: 0.3, Income: 0.25, EmploymentStability: 0.2, References: 0.15},
			wantErr: true,
		},
		{
			name:    "sum above one",
			weights: WeightTable{PaymentHistory: 0.5, Income: 0.5, Location: 0.1},
			wantErr: true,
		},
		{
			name:    "negative weight",
			weights: WeightTable{PaymentHistory: 1.2, Location: -0.2},
			wantErr: true,
		},
		{name: "zero table", weights: WeightTable{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWeights)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWeightTable_Default(t *testing.T) {
	w := DefaultWeights()
	assert.InDelta(t, 1.0, w.Sum(), weightSumTolerance)
	assert.Equal(t, 0.30, w.PaymentHistory)
	assert.Equal(t, 0.25, w.Income)
	assert.Equal(t, 0.20, w.EmploymentStability)
	assert.Equal(t, 0.15, w.References)
	assert.Equal(t, 0.10, w.Location)
	assert.False(t, w.IsZero())
	assert.True(t, WeightTable{}.IsZero())
}
