// pkg/creditscore/evaluator.go
package creditscore

import (
	"math"

	"github.com/shopspring/decimal"
)

// ReferenceIncome is the monthly income at which the income sub-score caps at 100.
const ReferenceIncome = 1_000_000.0

// Step-function sub-score points.
const (
	pointsTop    = 100.0
	pointsMiddle = 70.0
	pointsBottom = 40.0
)

// ClientProfile is the evaluation input. Score fields are expected in 0-100 and
// months as a non-negative count, but ranges are not enforced: out-of-range values
// flow through the formulas unchanged.
type ClientProfile struct {
	PaymentHistoryScore int     `json:"paymentHistoryScore"`
	MonthlyIncome       float64 `json:"monthlyIncome"`
	MonthsEmployed      int     `json:"monthsEmployed"`
	ReferenceScore      int     `json:"referenceScore"`
	LocationScore       int     `json:"locationScore"`
}

// ScoreBreakdown itemises the weighted sub-scores. Total() equals the credit score.
type ScoreBreakdown struct {
	PaymentHistory      float64 `json:"paymentHistory"`
	Income              float64 `json:"income"`
	EmploymentStability float64 `json:"employmentStability"`
	References          float64 `json:"references"`
	Location            float64 `json:"location"`
}

// Total sums the weighted sub-scores.
func (b ScoreBreakdown) Total() float64 {
	return b.PaymentHistory + b.Income + b.EmploymentStability + b.References + b.Location
}

// LoanOffer is the result of an evaluation. It is built fresh for every call.
type LoanOffer struct {
	Score              float64  `json:"score"`
	RiskTier           RiskTier `json:"riskTier"`
	MaxAmount          int64    `json:"maxAmount"`
	MonthlyRatePercent float64  `json:"monthlyRatePercent"`
	TermMonths         int      `json:"termMonths"`
	MonthlyInstallment float64  `json:"monthlyInstallment"`
}

// Evaluator turns a ClientProfile into a LoanOffer. Its weight table is fixed at
// construction, so one Evaluator can be shared between goroutines.
type Evaluator struct {
	weights WeightTable
}

// NewEvaluator returns an evaluator using DefaultWeights.
func NewEvaluator() *Evaluator {
	return &Evaluator{weights: DefaultWeights()}
}

// NewEvaluatorWithWeights returns an evaluator using w, or ErrInvalidWeights if w
// does not sum to 1.0.
func NewEvaluatorWithWeights(w WeightTable) (*Evaluator, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{weights: w}, nil
}

// Weights returns a copy of the evaluator's weight table.
func (e *Evaluator) Weights() WeightTable {
	return e.weights
}

// ComputeScore returns the unrounded weighted credit score.
func (e *Evaluator) ComputeScore(p ClientProfile) float64 {
	return e.Breakdown(p).Total()
}

// Breakdown returns each weighted sub-score of p.
func (e *Evaluator) Breakdown(p ClientProfile) ScoreBreakdown {
	return ScoreBreakdown{
		PaymentHistory:      paymentHistoryPoints(p.PaymentHistoryScore) * e.weights.PaymentHistory,
		Income:              incomePoints(p.MonthlyIncome) * e.weights.Income,
		EmploymentStability: employmentPoints(p.MonthsEmployed) * e.weights.EmploymentStability,
		References:          float64(p.ReferenceScore) * e.weights.References,
		Location:            float64(p.LocationScore) * e.weights.Location,
	}
}

// ClassifyRisk maps a score to its tier. First matching band wins, tested high to low.
func (e *Evaluator) ClassifyRisk(score float64) RiskTier {
	return ClassifyRisk(score)
}

// BuildOffer scores p, classifies the tier and derives the offer.
//
// The installment is limit * (1 + rate) / TermMonths: the monthly rate is applied
// once to the whole limit and the total is split evenly. It is not an amortization
// schedule.
func (e *Evaluator) BuildOffer(p ClientProfile) LoanOffer {
	score := e.ComputeScore(p)
	tier := ClassifyRisk(score)
	terms := Terms(tier)

	return LoanOffer{
		Score:              round2(score),
		RiskTier:           tier,
		MaxAmount:          terms.Limit,
		MonthlyRatePercent: terms.MonthlyRate.Mul(decimal.NewFromInt(100)).InexactFloat64(),
		TermMonths:         TermMonths,
		MonthlyInstallment: Installment(terms),
	}
}

// ClassifyRisk maps a score to its tier.
func ClassifyRisk(score float64) RiskTier {
	switch {
	case score >= HighTierMinScore:
		return TierHigh
	case score >= MediumTierMinScore:
		return TierMedium
	default:
		return TierLow
	}
}

// Installment returns limit * (1 + rate) / TermMonths rounded to 2 decimals.
func Installment(terms TierTerms) float64 {
	total := decimal.NewFromInt(terms.Limit).Mul(decimal.NewFromInt(1).Add(terms.MonthlyRate))
	return total.Div(decimal.NewFromInt(TermMonths)).Round(2).InexactFloat64()
}

func paymentHistoryPoints(score int) float64 {
	switch {
	case score >= 80:
		return pointsTop
	case score >= 60:
		return pointsMiddle
	default:
		return pointsBottom
	}
}

// incomePoints ramps linearly up to ReferenceIncome. There is no floor.
func incomePoints(income float64) float64 {
	return math.Min(100, income/ReferenceIncome*100)
}

func employmentPoints(months int) float64 {
	switch {
	case months >= 12:
		return pointsTop
	case months >= 6:
		return pointsMiddle
	default:
		return pointsBottom
	}
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	// Rounds the exact binary value, half away from zero.
	return decimal.NewFromFloatWithExponent(v, -2).InexactFloat64()
}
