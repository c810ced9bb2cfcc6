// pkg/creditscore/evaluator_test.go
package creditscore

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scoreDelta = 1e-9

// ==========================
// Test Helper Functions
// ==========================

func sampleProfile() ClientProfile {
	return ClientProfile{
		PaymentHistoryScore: 70,
		MonthlyIncome:       1_200_000,
		MonthsEmployed:      8,
		ReferenceScore:      80,
		LocationScore:       70,
	}
}

func topProfile() ClientProfile {
	return ClientProfile{
		PaymentHistoryScore: 100,
		MonthlyIncome:       5_000_000,
		MonthsEmployed:      36,
		ReferenceScore:      100,
		LocationScore:       100,
	}
}

// ==========================
// Scenario Tests
// ==========================

func TestEvaluator_BuildOffer_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		profile  ClientProfile
		expected LoanOffer
	}{
		{
			name:    "reference sample profile",
			profile: sampleProfile(),
			// 21 + 25 + 14 + 12 + 7
			expected: LoanOffer{
				Score:              79,
				RiskTier:           TierHigh,
				MaxAmount:          2_000_000,
				MonthlyRatePercent: 5,
				TermMonths:         3,
				MonthlyInstallment: 700_000,
			},
		},
		{
			name: "medium tier",
			profile: ClientProfile{
				PaymentHistoryScore: 65,
				MonthlyIncome:       800_000,
				MonthsEmployed:      7,
				ReferenceScore:      60,
				LocationScore:       50,
			},
			// 21 + 20 + 14 + 9 + 5
			expected: LoanOffer{
				Score:              69,
				RiskTier:           TierMedium,
				MaxAmount:          1_000_000,
				MonthlyRatePercent: 8,
				TermMonths:         3,
				MonthlyInstallment: 360_000,
			},
		},
		{
			name: "low tier",
			profile: ClientProfile{
				PaymentHistoryScore: 40,
				MonthlyIncome:       400_000,
				MonthsEmployed:      2,
				ReferenceScore:      50,
				LocationScore:       40,
			},
			// 12 + 10 + 8 + 7.5 + 4
			expected: LoanOffer{
				Score:              41.5,
				RiskTier:           TierLow,
				MaxAmount:          500_000,
				MonthlyRatePercent: 10,
				TermMonths:         3,
				MonthlyInstallment: 183_333.33,
			},
		},
		{
			name:    "maximum attainable score",
			profile: topProfile(),
			expected: LoanOffer{
				Score:              100,
				RiskTier:           TierHigh,
				MaxAmount:          2_000_000,
				MonthlyRatePercent: 5,
				TermMonths:         3,
				MonthlyInstallment: 700_000,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evaluator := NewEvaluator()
			offer := evaluator.BuildOffer(tt.profile)
			assert.Equal(t, tt.expected, offer)
		})
	}
}

func TestEvaluator_Breakdown_SubScores(t *testing.T) {
	evaluator := NewEvaluator()

	t.Run("income below reference ramps linearly", func(t *testing.T) {
		p := sampleProfile()
		p.MonthlyIncome = 500_000
		assert.InDelta(t, 12.5, evaluator.Breakdown(p).Income, scoreDelta)
	})

	t.Run("income above reference is capped", func(t *testing.T) {
		p := sampleProfile()
		p.MonthlyIncome = 9_000_000
		assert.InDelta(t, 25.0, evaluator.Breakdown(p).Income, scoreDelta)
	})

	t.Run("payment history below 60 is a flat step", func(t *testing.T) {
		for _, score := range []int{0, 30, 55, 59} {
			p := sampleProfile()
			p.PaymentHistoryScore = score
			assert.InDelta(t, 12.0, evaluator.Breakdown(p).PaymentHistory, scoreDelta, "score %d", score)
		}
	})

	t.Run("zero months employed is the lowest band", func(t *testing.T) {
		p := sampleProfile()
		p.MonthsEmployed = 0
		assert.InDelta(t, 8.0, evaluator.Breakdown(p).EmploymentStability, scoreDelta)
	})

	t.Run("breakdown total equals score", func(t *testing.T) {
		p := sampleProfile()
		assert.InDelta(t, evaluator.ComputeScore(p), evaluator.Breakdown(p).Total(), scoreDelta)
	})
}

func TestEvaluator_StepBreakpoints(t *testing.T) {
	tests := []struct {
		name     string
		value    int
		payment  float64
		employed float64
	}{
		{name: "below both lower bounds", value: 5, payment: 40, employed: 40},
		{name: "employment middle band starts at 6", value: 6, payment: 40, employed: 70},
		{name: "employment top band starts at 12", value: 12, payment: 40, employed: 100},
		{name: "payment middle band starts at 60", value: 60, payment: 70, employed: 100},
		{name: "payment middle band ends at 79", value: 79, payment: 70, employed: 100},
		{name: "payment top band starts at 80", value: 80, payment: 100, employed: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.payment, paymentHistoryPoints(tt.value))
			assert.Equal(t, tt.employed, employmentPoints(tt.value))
		})
	}
}

// ==========================
// Risk Classification Tests
// ==========================

func TestClassifyRisk_Boundaries(t *testing.T) {
	tests := []struct {
		score    float64
		expected RiskTier
	}{
		{score: 100, expected: TierHigh},
		{score: 75, expected: TierHigh},
		{score: 74.999, expected: TierMedium},
		{score: 60, expected: TierMedium},
		{score: 59.999, expected: TierLow},
		{score: 0, expected: TierLow},
		{score: -1_000, expected: TierLow},
		{score: 1_000, expected: TierHigh},
	}

	evaluator := NewEvaluator()
	for _, tt := range tests {
		assert.Equal(t, tt.expected, evaluator.ClassifyRisk(tt.score), "score %v", tt.score)
	}
}

// ==========================
// Property Tests
// ==========================

func TestEvaluator_ScoreWithinBounds(t *testing.T) {
	evaluator := NewEvaluator()

	for payment := 0; payment <= 100; payment += 10 {
		for _, income := range []float64{0, 250_000, 999_999, 1_000_000, 3_000_000} {
			for months := 0; months <= 24; months += 3 {
				for ref := 0; ref <= 100; ref += 25 {
					p := ClientProfile{
						PaymentHistoryScore: payment,
						MonthlyIncome:       income,
						MonthsEmployed:      months,
						ReferenceScore:      ref,
						LocationScore:       100 - ref,
					}
					score := evaluator.ComputeScore(p)
					assert.GreaterOrEqual(t, score, 0.0)
					assert.LessOrEqual(t, score, 100+scoreDelta)
				}
			}
		}
	}
}

func TestEvaluator_InstallmentMatchesFormula(t *testing.T) {
	expected := map[RiskTier]float64{
		TierHigh:   2_000_000 * 1.05 / 3,
		TierMedium: 1_000_000 * 1.08 / 3,
		TierLow:    500_000 * 1.10 / 3,
	}

	for tier, want := range expected {
		assert.InDelta(t, want, Installment(Terms(tier)), 0.005, "tier %s", tier)
	}
}

func TestEvaluator_BuildOffer_Idempotent(t *testing.T) {
	evaluator := NewEvaluator()
	p := ClientProfile{
		PaymentHistoryScore: 61,
		MonthlyIncome:       733_333.33,
		MonthsEmployed:      11,
		ReferenceScore:      47,
		LocationScore:       89,
	}

	first := evaluator.BuildOffer(p)
	second := evaluator.BuildOffer(p)
	assert.Equal(t, first, second)
}

func TestEvaluator_BuildOffer_RoundsExactValue(t *testing.T) {
	evaluator := NewEvaluator()
	// 21 + 0.025 + 14 + 0 + 7 sums to a float just below 42.025.
	p := ClientProfile{
		PaymentHistoryScore: 70,
		MonthlyIncome:       1000,
		MonthsEmployed:      8,
		ReferenceScore:      0,
		LocationScore:       70,
	}

	assert.Equal(t, 42.02, evaluator.BuildOffer(p).Score)
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{79, 79},
		{41.5, 41.5},
		{0.125, 0.13},
		{-0.125, -0.13},
		{42.024999999999998, 42.02},
		{69.996, 70},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, round2(tt.in), "round2(%v)", tt.in)
	}
}

func TestEvaluator_OutOfRangeInputsAreAbsorbed(t *testing.T) {
	evaluator := NewEvaluator()

	t.Run("scores above 100 are not clamped", func(t *testing.T) {
		p := topProfile()
		p.ReferenceScore = 200
		score := evaluator.ComputeScore(p)
		assert.InDelta(t, 115.0, score, scoreDelta)
		assert.Equal(t, TierHigh, evaluator.BuildOffer(p).RiskTier)
	})

	t.Run("negative income lowers the score", func(t *testing.T) {
		p := sampleProfile()
		p.MonthlyIncome = -1_000_000
		assert.InDelta(t, -25.0, evaluator.Breakdown(p).Income, scoreDelta)
		assert.Equal(t, TierLow, evaluator.BuildOffer(p).RiskTier)
	})

	t.Run("negative months fall into the lowest band", func(t *testing.T) {
		p := sampleProfile()
		p.MonthsEmployed = -3
		assert.InDelta(t, 8.0, evaluator.Breakdown(p).EmploymentStability, scoreDelta)
	})
}

// ==========================
// Custom Weights Tests
// ==========================

func TestNewEvaluatorWithWeights(t *testing.T) {
	t.Run("valid custom weights", func(t *testing.T) {
		evaluator, err := NewEvaluatorWithWeights(WeightTable{PaymentHistory: 1})
		require.NoError(t, err)

		p := sampleProfile()
		p.PaymentHistoryScore = 85
		assert.InDelta(t, 100.0, evaluator.ComputeScore(p), scoreDelta)
		assert.Equal(t, WeightTable{PaymentHistory: 1}, evaluator.Weights())
	})

	t.Run("weights not summing to one are rejected", func(t *testing.T) {
		evaluator, err := NewEvaluatorWithWeights(WeightTable{PaymentHistory: 0.5, Income: 0.4})
		assert.Nil(t, evaluator)
		assert.ErrorIs(t, err, ErrInvalidWeights)
	})
}

func TestLoanOffer_JSON(t *testing.T) {
	offer := NewEvaluator().BuildOffer(sampleProfile())

	data, err := json.Marshal(offer)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "high", decoded["riskTier"])
	assert.Equal(t, 79.0, decoded["score"])
	assert.Equal(t, 2_000_000.0, decoded["maxAmount"])
	assert.Equal(t, 5.0, decoded["monthlyRatePercent"])
	assert.Equal(t, 3.0, decoded["termMonths"])
	assert.Equal(t, 700_000.0, decoded["monthlyInstallment"])

	var roundTrip LoanOffer
	require.NoError(t, json.Unmarshal(data, &roundTrip))
	assert.Equal(t, offer, roundTrip)
}
