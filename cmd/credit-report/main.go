// cmd/credit-report/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"credit-evaluator/internal/common/logger"
	"credit-evaluator/pkg/creditscore"
)

var (
	version = "v0.0.1-default"

	paymentHistoryFlag = &cli.IntFlag{
		Name:  "payment-history",
		Usage: "Payment history score (0-100)",
		Value: 70,
	}
	incomeFlag = &cli.FloatFlag{
		Name:  "income",
		Usage: "Monthly income",
		Value: 1_200_000,
	}
	monthsEmployedFlag = &cli.IntFlag{
		Name:  "months-employed",
		Usage: "Months in current employment",
		Value: 8,
	}
	referencesFlag = &cli.IntFlag{
		Name:  "references",
		Usage: "Reference score (0-100)",
		Value: 80,
	}
	locationFlag = &cli.IntFlag{
		Name:  "location",
		Usage: "Location score (0-100)",
		Value: 70,
	}
	profileFlag = &cli.StringFlag{
		Name:  "profile",
		Usage: "Read the client profile from a JSON file instead of flags",
	}
	formatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "Output format [text, json]",
		Value: formatText,
	}
	currencyFlag = &cli.StringFlag{
		Name:  "currency",
		Usage: "Currency label printed after amounts",
		Value: "COP",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "Diagnostic log level written to stderr [debug, info, warn, error]",
		Value: "warn",
	}
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "credit-report: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "credit-report",
		Version: version,
		Usage:   "Score a client profile and print the resulting loan offer",
		Flags: []cli.Flag{
			paymentHistoryFlag,
			incomeFlag,
			monthsEmployedFlag,
			referencesFlag,
			locationFlag,
			profileFlag,
			formatFlag,
			currencyFlag,
			logLevelFlag,
		},
		Action: runReport,
	}
}

func runReport(_ context.Context, cmd *cli.Command) error {
	log := logger.NewStructured(logger.Options{
		Level:  cmd.String(logLevelFlag.Name),
		Format: "console",
		Output: "stderr",
	})

	profile, err := profileFrom(cmd)
	if err != nil {
		return err
	}

	evaluator := creditscore.NewEvaluator()
	r := report{
		Profile: profile,
		Offer:   evaluator.BuildOffer(profile),
		Detail:  evaluator.Breakdown(profile),
	}
	log.Debug("profile evaluated", map[string]interface{}{
		"score":    r.Offer.Score,
		"riskTier": r.Offer.RiskTier.String(),
	})

	out := cmd.Writer
	if out == nil {
		out = os.Stdout
	}
	return writeReport(out, cmd.String(formatFlag.Name), cmd.String(currencyFlag.Name), r)
}

// profileFrom reads --profile when given, otherwise the individual flags.
func profileFrom(cmd *cli.Command) (creditscore.ClientProfile, error) {
	if path := cmd.String(profileFlag.Name); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return creditscore.ClientProfile{}, fmt.Errorf("reading profile: %w", err)
		}
		return creditscore.DecodeProfile(data)
	}

	return creditscore.ClientProfile{
		PaymentHistoryScore: int(cmd.Int(paymentHistoryFlag.Name)),
		MonthlyIncome:       cmd.Float(incomeFlag.Name),
		MonthsEmployed:      int(cmd.Int(monthsEmployedFlag.Name)),
		ReferenceScore:      int(cmd.Int(referencesFlag.Name)),
		LocationScore:       int(cmd.Int(locationFlag.Name)),
	}, nil
}
