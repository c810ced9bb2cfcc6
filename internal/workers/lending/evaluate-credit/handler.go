// internal/workers/lending/evaluate-credit/handler.go
package evaluatecredit

import (
	"context"
	_ "embed"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"credit-evaluator/internal/common/errors"
	"credit-evaluator/internal/common/logger"
	"credit-evaluator/internal/common/metrics"
	"credit-evaluator/internal/common/observability"
	"credit-evaluator/internal/common/validation"
	"credit-evaluator/pkg/creditscore"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	TaskType = "evaluate-credit"
)

//go:embed schema.json
var inputSchemaJSON []byte

var inputSchema = validation.MustCompile(inputSchemaJSON)

type Handler struct {
	config       *Config
	evaluator    *creditscore.Evaluator
	obs          *observability.Observability
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler builds the handler. obs may be nil.
func NewHandler(config *Config, obs *observability.Observability, log logger.Logger) (*Handler, error) {
	if config == nil {
		config = LoadConfig()
	}
	evaluator, err := creditscore.NewEvaluatorWithWeights(config.Weights)
	if err != nil {
		return nil, fmt.Errorf("evaluate-credit: %w", err)
	}

	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		evaluator: evaluator,
		obs:       obs,
		errorHandler: errors.NewErrorHandler(log).WithRecorder(func(_ string, code errors.ErrorCode) {
			metrics.RecordJobFailed(TaskType, string(code))
		}),
		logger: log,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.fail(ctx, client, job, errors.NewParseError(err), start)
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.fail(ctx, client, job, err, start)
		return
	}

	if err := h.completeJob(ctx, client, job, output); err != nil {
		h.fail(ctx, client, job, errors.NewExternalServiceError("zeebe", err), start)
		return
	}

	elapsed := time.Since(start)
	metrics.RecordJobCompleted(TaskType, elapsed)
	h.obs.RecordJobProcessed(ctx, "completed")
	h.obs.RecordJobDuration(ctx, elapsed, "completed")
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	ctx, span := h.obs.StartSpan(ctx, "evaluate-credit",
		attribute.String("clientId", input.ClientID),
	)
	defer span.End()

	profile, err := h.parseProfile(input)
	if err != nil {
		metrics.InvalidProfiles.Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid profile")
		return nil, err
	}

	if ctx.Err() != nil {
		span.SetStatus(codes.Error, "timeout")
		return nil, errors.NewEvaluationTimeoutError(h.config.Timeout)
	}

	offer := h.evaluator.BuildOffer(profile)
	breakdown := h.evaluator.Breakdown(profile)
	tier := offer.RiskTier.String()

	span.SetAttributes(
		attribute.Float64("score", offer.Score),
		attribute.String("riskTier", tier),
	)
	metrics.RecordEvaluation(tier, offer.Score)
	h.obs.RecordEvaluation(ctx, tier, offer.Score)

	output := &Output{
		LoanOffer:      offer,
		ScoreBreakdown: breakdown,
		EvaluationID:   uuid.NewString(),
		ClientID:       input.ClientID,
	}

	h.logger.Info("credit evaluated", map[string]interface{}{
		"clientId":     input.ClientID,
		"evaluationId": output.EvaluationID,
		"score":        offer.Score,
		"riskTier":     tier,
		"maxAmount":    offer.MaxAmount,
		"installment":  offer.MonthlyInstallment,
	})

	return output, nil
}

// parseProfile checks the input against the schema and then decodes the
// profile, reporting either failure as INVALID_PROFILE.
func (h *Handler) parseProfile(input *Input) (creditscore.ClientProfile, error) {
	document := map[string]interface{}{}
	if input.Profile != nil {
		document["profile"] = input.Profile
	}

	result, err := inputSchema.Validate(document)
	if err != nil {
		return creditscore.ClientProfile{}, errors.NewCreditEvaluationFailedError(err)
	}
	if !result.Valid {
		return creditscore.ClientProfile{}, errors.NewInvalidProfileError(result.Error(), missingProfileFields(input.Profile))
	}

	profile, err := creditscore.ParseProfile(input.Profile)
	if err != nil {
		var invalid *creditscore.InvalidProfileError
		if stderrors.As(err, &invalid) {
			return creditscore.ClientProfile{}, errors.NewInvalidProfileError(invalid.Error(), invalid.Missing)
		}
		return creditscore.ClientProfile{}, errors.NewInvalidProfileError(err.Error(), nil)
	}
	return profile, nil
}

// missingProfileFields lists absent and null fields the same way
// creditscore.ParseProfile does.
func missingProfileFields(profile map[string]interface{}) []string {
	var missing []string
	for _, name := range creditscore.ProfileFields {
		if profile[name] == nil {
			missing = append(missing, name)
		}
	}
	return missing
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		return fmt.Errorf("create complete job command: %w", err)
	}
	if _, err := cmd.Send(ctx); err != nil {
		return fmt.Errorf("send complete job command: %w", err)
	}
	return nil
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error, start time.Time) {
	h.obs.RecordJobProcessed(ctx, "failed")
	h.obs.RecordJobDuration(ctx, time.Since(start), "failed")
	// The job context may already be spent; reporting gets its own deadline.
	reportCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	h.errorHandler.HandleJobError(reportCtx, client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
