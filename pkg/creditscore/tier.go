// pkg/creditscore/tier.go
package creditscore

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RiskTier classifies a client's creditworthiness. Higher tiers get larger limits
// and cheaper rates.
type RiskTier int

const (
	TierHigh RiskTier = iota
	TierMedium
	TierLow
)

// Score thresholds, lower bound inclusive.
const (
	HighTierMinScore   = 75.0
	MediumTierMinScore = 60.0
)

// TermMonths is the fixed repayment period of every offer.
const TermMonths = 3

func (t RiskTier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	case TierLow:
		return "low"
	default:
		return fmt.Sprintf("RiskTier(%d)", int(t))
	}
}

// Valid reports whether t is one of the three known tiers.
func (t RiskTier) Valid() bool {
	return t >= TierHigh && t <= TierLow
}

func (t RiskTier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRiskTier, int(t))
	}
	return []byte(t.String()), nil
}

func (t *RiskTier) UnmarshalText(text []byte) error {
	tier, err := ParseRiskTier(string(text))
	if err != nil {
		return err
	}
	*t = tier
	return nil
}

// ParseRiskTier maps "high", "medium" or "low" to its tier.
func ParseRiskTier(name string) (RiskTier, error) {
	switch name {
	case "high":
		return TierHigh, nil
	case "medium":
		return TierMedium, nil
	case "low":
		return TierLow, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRiskTier, name)
	}
}

// TierTerms is the credit limit and monthly interest rate granted to a tier.
type TierTerms struct {
	Limit       int64
	MonthlyRate decimal.Decimal
}

// tierTable is indexed by RiskTier.
var tierTable = [...]TierTerms{
	TierHigh:   {Limit: 2_000_000, MonthlyRate: decimal.RequireFromString("0.05")},
	TierMedium: {Limit: 1_000_000, MonthlyRate: decimal.RequireFromString("0.08")},
	TierLow:    {Limit: 500_000, MonthlyRate: decimal.RequireFromString("0.10")},
}

// Terms returns the fixed limit and rate for tier. Unknown tiers get the low tier's
// terms.
func Terms(tier RiskTier) TierTerms {
	if !tier.Valid() {
		return tierTable[TierLow]
	}
	return tierTable[tier]
}
