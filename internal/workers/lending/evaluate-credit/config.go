// internal/workers/lending/evaluate-credit/config.go
package evaluatecredit

import (
	"time"

	"credit-evaluator/internal/common/config"
	"credit-evaluator/pkg/creditscore"
)

type Config struct {
	Timeout time.Duration
	Weights creditscore.WeightTable
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
		Weights: creditscore.DefaultWeights(),
	}
}

// ConfigFrom reads the worker timeout and scoring weights from the app config.
func ConfigFrom(cfg *config.Config) *Config {
	c := LoadConfig()
	if wcfg := config.GetWorkerConfig(cfg, TaskType); wcfg.Timeout > 0 {
		c.Timeout = config.GetDuration(wcfg.Timeout)
	}
	c.Weights = cfg.Scoring.EffectiveWeights()
	return c
}
