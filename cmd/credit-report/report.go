// cmd/credit-report/report.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"credit-evaluator/pkg/creditscore"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// report is the JSON form of a printed evaluation.
type report struct {
	Profile creditscore.ClientProfile  `json:"profile"`
	Offer   creditscore.LoanOffer      `json:"offer"`
	Detail  creditscore.ScoreBreakdown `json:"scoreBreakdown"`
}

func writeReport(w io.Writer, format, currency string, r report) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case formatText:
		_, err := io.WriteString(w, renderText(currency, r.Offer))
		return err
	default:
		return fmt.Errorf("unsupported format %q, expected %s or %s", format, formatText, formatJSON)
	}
}

func renderText(currency string, offer creditscore.LoanOffer) string {
	p := message.NewPrinter(language.English)
	suffix := ""
	if currency != "" {
		suffix = " " + currency
	}

	var b strings.Builder
	b.WriteString("\n=== Credit Evaluation Result ===\n")
	p.Fprintf(&b, "Credit score: %v\n", offer.Score)
	p.Fprintf(&b, "Risk tier: %s\n", offer.RiskTier)
	p.Fprintf(&b, "Maximum approved amount: $%d%s\n", offer.MaxAmount, suffix)
	p.Fprintf(&b, "Monthly interest rate: %.1f%%\n", offer.MonthlyRatePercent)
	p.Fprintf(&b, "Loan term: %d months\n", offer.TermMonths)
	p.Fprintf(&b, "Estimated monthly installment: $%.2f%s\n", offer.MonthlyInstallment, suffix)
	return b.String()
}
