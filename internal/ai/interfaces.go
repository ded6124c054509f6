package ai

import (
	"context"

	"hireai/internal/types"
)

// Provider is the interface AI backends implement.
// All generation methods return token usage information - callers can ignore it if not needed
type Provider interface {
	EvaluateResume(ctx context.Context, jobContent, resumeText string) (types.EvaluationVerdict, *TokenUsage, error)
	DraftEmail(ctx context.Context, input types.DraftEmailInput) (string, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}

// PromptSource supplies custom prompt overrides. Empty strings mean the
// built-in defaults apply. Implemented by *config.Config so that
// file-backed prompts picked up by the watcher reach the provider.
type PromptSource interface {
	ScreenPrompts() (system, user string)
	DraftPrompts() (system, user string)
}
