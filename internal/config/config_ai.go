package config

import "time"

// ResolvedAIConfig is the effective configuration for one AI operation
// after operation-specific overrides are applied over the global block.
type ResolvedAIConfig struct {
	Provider         string
	Model            string
	Timeout          time.Duration
	APIKey           string
	Temperature      float32
	UseSystemPrompts bool
	CustomPrompts    PromptConfig
	CircuitBreaker   CircuitBreakerConfig
}

// GetScreenConfig returns the effective AI configuration for resume screening.
func (c *Config) GetScreenConfig() ResolvedAIConfig {
	return c.applyOperationDefaults(c.AI.Screen)
}

// GetDraftConfig returns the effective AI configuration for email drafting.
func (c *Config) GetDraftConfig() ResolvedAIConfig {
	return c.applyOperationDefaults(c.AI.Draft)
}

// applyOperationDefaults overlays an operation block on the global AI
// configuration. Zero values in the operation block fall through to the
// global values; pointer fields distinguish "unset" from explicit zero.
func (c *Config) applyOperationDefaults(op OperationAIConfig) ResolvedAIConfig {
	resolved := ResolvedAIConfig{
		Provider:         c.AI.Provider,
		Model:            c.AI.Model,
		Timeout:          c.AI.Timeout,
		APIKey:           c.AI.APIKey,
		Temperature:      c.AI.Temperature,
		UseSystemPrompts: c.AI.UseSystemPrompts,
		CustomPrompts:    c.AI.CustomPrompts,
		CircuitBreaker:   op.CircuitBreaker,
	}

	if op.Provider != "" {
		resolved.Provider = op.Provider
	}
	if op.Model != "" {
		resolved.Model = op.Model
	}
	if op.Timeout != nil {
		resolved.Timeout = *op.Timeout
	}
	if op.APIKey != "" {
		resolved.APIKey = op.APIKey
	}
	if op.Temperature != nil {
		resolved.Temperature = *op.Temperature
	}
	if op.UseSystemPrompts != nil {
		resolved.UseSystemPrompts = *op.UseSystemPrompts
	}

	resolved.CustomPrompts = mergePrompts(c.AI.CustomPrompts, op.CustomPrompts)

	return resolved
}

func mergePrompts(global, op PromptConfig) PromptConfig {
	merged := global

	if op.SystemPrompts.ScreenResume != "" {
		merged.SystemPrompts.ScreenResume = op.SystemPrompts.ScreenResume
	}
	if op.SystemPrompts.ScreenResumeFile != "" {
		merged.SystemPrompts.ScreenResumeFile = op.SystemPrompts.ScreenResumeFile
	}
	if op.SystemPrompts.DraftEmail != "" {
		merged.SystemPrompts.DraftEmail = op.SystemPrompts.DraftEmail
	}
	if op.SystemPrompts.DraftEmailFile != "" {
		merged.SystemPrompts.DraftEmailFile = op.SystemPrompts.DraftEmailFile
	}

	if op.UserPrompts.ScreenResume != "" {
		merged.UserPrompts.ScreenResume = op.UserPrompts.ScreenResume
	}
	if op.UserPrompts.ScreenResumeFile != "" {
		merged.UserPrompts.ScreenResumeFile = op.UserPrompts.ScreenResumeFile
	}
	if op.UserPrompts.DraftEmail != "" {
		merged.UserPrompts.DraftEmail = op.UserPrompts.DraftEmail
	}
	if op.UserPrompts.DraftEmailFile != "" {
		merged.UserPrompts.DraftEmailFile = op.UserPrompts.DraftEmailFile
	}

	return merged
}
