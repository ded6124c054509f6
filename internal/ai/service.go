package ai

import (
	"context"
	"fmt"

	"hireai/internal/config"
	"hireai/internal/errors"
	"hireai/internal/types"
)

// Service handles AI operations for candidate screening
type Service struct {
	Provider Provider // Exported for access from server package
	cfg      config.ResolvedAIConfig
	logger   *errors.Logger
}

// NewService creates a new AI service instance with configuration for a specific operation
func NewService(cfg config.ResolvedAIConfig, operationType string, prompts PromptSource, logger *errors.Logger) (*Service, error) {
	var provider Provider
	var err error

	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"operation_type", operationType,
		"model", cfg.Model,
		"temperature", cfg.Temperature,
		"timeout", cfg.Timeout,
		"use_system_prompts", cfg.UseSystemPrompts)

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, operationType, prompts, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewScoringError(errors.ErrCodeScoringFailed,
			"Failed to create AI provider", err)
	}

	return &Service{
		Provider: provider,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// EvaluateResume scores a resume against a job description.
func (s *Service) EvaluateResume(ctx context.Context, jobContent, resumeText string) (types.EvaluationVerdict, *TokenUsage, error) {
	return s.Provider.EvaluateResume(ctx, jobContent, resumeText)
}

// DraftEmail produces an outreach email for a screened candidate.
func (s *Service) DraftEmail(ctx context.Context, input types.DraftEmailInput) (string, *TokenUsage, error) {
	return s.Provider.DraftEmail(ctx, input)
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) *ModelInfo {
	return s.Provider.GetModelInfo(ctx)
}

// Close releases provider resources.
func (s *Service) Close() error {
	return s.Provider.Close()
}
