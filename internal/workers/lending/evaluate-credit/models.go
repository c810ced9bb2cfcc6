// internal/workers/lending/evaluate-credit/models.go
package evaluatecredit

import "credit-evaluator/pkg/creditscore"

type Input struct {
	ClientID string                 `json:"clientId"`
	Profile  map[string]interface{} `json:"profile"`
}

// Output flattens the offer into the process variables.
type Output struct {
	creditscore.LoanOffer
	ScoreBreakdown creditscore.ScoreBreakdown `json:"scoreBreakdown"`
	EvaluationID   string                     `json:"evaluationId"`
	ClientID       string                     `json:"clientId,omitempty"`
}
