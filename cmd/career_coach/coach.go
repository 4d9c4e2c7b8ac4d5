package main

import (
	"context"
	"fmt"

	"github.com/jonathan/career-coach/internal/coach"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/logger"
)

func noClose() error { return nil }

// newCoachService builds the coaching service from cfg. Without an API key,
// or when offline is set, the service has no model client.
func newCoachService(ctx context.Context, cfg *config.Config, mode coach.Mode, offline bool, log *logger.Logger) (*coach.Service, func() error, error) {
	if err := coach.CheckPrompts(); err != nil {
		return nil, nil, fmt.Errorf("invalid prompt templates: %w", err)
	}

	opts := coach.Options{
		Mode: mode,
		Retry: llm.RetryPolicy{
			Retries:        cfg.AI.Retries,
			Backoff:        cfg.AI.RetryBackoff,
			AttemptTimeout: cfg.AI.ModelTimeout,
		},
		Logger: log,
	}

	apiKey := cfg.AI.APIKey()
	if offline || apiKey == "" {
		if !offline {
			log.Warn("model API key not set; AI routes will report not configured", "provider", cfg.AI.Provider, "mode", mode)
		}
		return coach.NewService(nil, opts), noClose, nil
	}

	llmCfg := llm.ConfigFor(llm.Provider(cfg.AI.Provider))
	if cfg.AI.Model != "" {
		llmCfg = llmCfg.WithAllModels(cfg.AI.Model)
	}
	client, err := llm.NewClient(ctx, llmCfg, apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create model client: %w", err)
	}
	log.Info("model client ready", "provider", client.Provider(), "model", llmCfg.GetModel(llm.TierStandard), "mode", mode)
	return coach.NewService(client, opts), client.Close, nil
}

// cliLogger logs to stderr with --verbose and discards otherwise.
func cliLogger(mode string) (*logger.Logger, error) {
	if !verbose {
		return logger.Nop(), nil
	}
	return logger.New(mode)
}
