package ai

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"hireai/internal/config"
	hireaiErrors "hireai/internal/errors"
	"hireai/internal/types"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements Provider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	cfg            config.ResolvedAIConfig
	operation      string
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	prompts        PromptSource
	logger         *hireaiErrors.Logger
}

// Ensure GeminiProvider implements Provider
var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance for a specific operation
func NewGeminiProvider(cfg config.ResolvedAIConfig, operationType string, prompts PromptSource, logger *hireaiErrors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, hireaiErrors.NewScoringError(hireaiErrors.ErrCodeScoringFailed,
			"Failed to create Gemini client", err)
	}

	return &GeminiProvider{
		client:         client,
		cfg:            cfg,
		operation:      operationType,
		circuitBreaker: NewAICircuitBreaker(operationType, cfg.CircuitBreaker, logger),
		modelBreaker:   NewModelCircuitBreaker(operationType, cfg.CircuitBreaker, logger),
		prompts:        prompts,
		logger:         logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.cfg.Model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.cfg.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)
		g.logger.Warn("Model availability check failed",
			"model", g.cfg.Model,
			"provider", g.cfg.Provider,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.cfg.Model,
		"provider", g.cfg.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// generate runs a single generation call through the circuit breaker with
// the configured per-call timeout. Failures are never retried here; a bad
// verdict should surface to the caller, not trigger hidden duplicate calls.
func (g *GeminiProvider) generate(ctx context.Context, operationName, userPrompt string, genaiConfig *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.client.Models.GenerateContent(callCtx, g.cfg.Model, genai.Text(userPrompt), genaiConfig)
	})
	if err != nil {
		return nil, g.classifyError(callCtx, operationName, err)
	}
	return result, nil
}

// classifyError maps transport failures onto the scoring error codes the
// rest of the application switches on.
func (g *GeminiProvider) classifyError(ctx context.Context, operationName string, err error) error {
	switch {
	case stderrors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded:
		return hireaiErrors.NewScoringError(hireaiErrors.ErrCodeScoringTimeout,
			"AI operation exceeded the configured timeout", err).
			WithContext("operation", operationName).
			WithContext("timeout", g.cfg.Timeout.String())
	case stderrors.Is(err, context.Canceled):
		return hireaiErrors.NewScoringError(hireaiErrors.ErrCodeScoringCanceled,
			"AI operation canceled by the caller", err).
			WithContext("operation", operationName)
	case stderrors.Is(err, gobreaker.ErrOpenState), stderrors.Is(err, gobreaker.ErrTooManyRequests):
		return hireaiErrors.NewScoringError(hireaiErrors.ErrCodeScoringFailed,
			"AI operation rejected, circuit breaker is open", err).
			WithContext("operation", operationName)
	}

	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return hireaiErrors.NewScoringError(hireaiErrors.ErrCodeScoringRateLimit,
				"AI provider rate limit exceeded", err).
				WithContext("operation", operationName)
		case apiErr.Code >= http.StatusInternalServerError:
			return hireaiErrors.NewScoringError(hireaiErrors.ErrCodeScoringTransport,
				fmt.Sprintf("AI provider returned HTTP %d", apiErr.Code), err).
				WithContext("operation", operationName)
		}
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		if netErr.Timeout() {
			return hireaiErrors.NewScoringError(hireaiErrors.ErrCodeScoringTimeout,
				"Network timeout talking to AI provider", err).
				WithContext("operation", operationName)
		}
		return hireaiErrors.NewScoringError(hireaiErrors.ErrCodeScoringTransport,
			"Network failure talking to AI provider", err).
			WithContext("operation", operationName)
	}

	return hireaiErrors.NewScoringError(hireaiErrors.ErrCodeScoringFailed,
		"Failed to generate content for "+operationName, err)
}

// EvaluateResume implements Provider for resume screening
func (g *GeminiProvider) EvaluateResume(ctx context.Context, jobContent, resumeText string) (types.EvaluationVerdict, *TokenUsage, error) {
	if strings.TrimSpace(jobContent) == "" {
		return types.EvaluationVerdict{}, nil, hireaiErrors.NewValidationError(hireaiErrors.ErrCodeEmptyContent,
			"Job content must not be empty", nil)
	}
	if strings.TrimSpace(resumeText) == "" {
		return types.EvaluationVerdict{}, nil, hireaiErrors.NewValidationError(hireaiErrors.ErrCodeEmptyResume,
			"Resume text must not be empty", nil)
	}

	tracer := otel.Tracer("hireai.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini.screen_resume")
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.cfg.Model),
		attribute.Float64("ai.temperature", float64(g.cfg.Temperature)),
		attribute.Int("input.job_length", len(jobContent)),
		attribute.Int("input.resume_length", len(resumeText)),
	)

	systemPrompt, userTemplate := g.screenPrompts()
	userPrompt := fmt.Sprintf(userTemplate, jobContent, resumeText)

	genaiConfig := g.buildScreenSchema()
	if g.cfg.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.generate(ctx, "screen_resume", userPrompt, genaiConfig)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return types.EvaluationVerdict{}, nil, err
	}

	verdict, err := parseVerdict(result.Text())
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return types.EvaluationVerdict{}, nil, err
	}

	if verdict.Clamped {
		g.logger.Warn("Match percentage outside valid range, clamped",
			"operation", "screen_resume",
			"clamped_to", verdict.MatchPercentage)
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("match_percentage", verdict.MatchPercentage),
		attribute.Bool("score_clamped", verdict.Clamped),
	)

	return verdict, tokenUsage, nil
}

// DraftEmail implements Provider for candidate outreach drafting. The
// response is free text, not JSON.
func (g *GeminiProvider) DraftEmail(ctx context.Context, input types.DraftEmailInput) (string, *TokenUsage, error) {
	tracer := otel.Tracer("hireai.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini.draft_email")
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.cfg.Model),
		attribute.Int("match_percentage", input.Score),
	)

	systemPrompt, userTemplate := g.draftPrompts()
	userPrompt := fmt.Sprintf(userTemplate, input.CandidateName, input.JobTitle, input.Score)

	genaiConfig := &genai.GenerateContentConfig{}
	if g.cfg.Temperature > 0 {
		genaiConfig.Temperature = genai.Ptr(g.cfg.Temperature)
	}
	if g.cfg.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.generate(ctx, "draft_email", userPrompt, genaiConfig)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", nil, err
	}

	body := strings.TrimSpace(result.Text())
	if body == "" {
		err := hireaiErrors.NewScoringError(hireaiErrors.ErrCodeScoringMalformed,
			"AI provider returned an empty email draft", nil)
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", nil, err
	}

	tokenUsage := extractTokenUsage(result)
	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("output.draft_length", len(body)),
	)

	return body, tokenUsage, nil
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}

	stats["overall_healthy"] = g.circuitBreaker.IsHealthy() && g.modelBreaker.IsModelHealthy()

	return stats
}

// Close implements Provider
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	return nil
}

// buildScreenSchema creates the structured-output schema for screening
func (g *GeminiProvider) buildScreenSchema() *genai.GenerateContentConfig {
	genaiConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"matchPercentage": {Type: genai.TypeInteger},
				"summary":         {Type: genai.TypeString},
				"pros": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"cons": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"interviewQuestions": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"matchPercentage", "summary", "pros", "cons", "interviewQuestions"},
		},
	}

	if g.cfg.Temperature > 0 {
		genaiConfig.Temperature = genai.Ptr(g.cfg.Temperature)
	}

	return genaiConfig
}

// screenPrompts resolves the screening prompts: custom overrides first,
// then the built-in defaults.
func (g *GeminiProvider) screenPrompts() (system, user string) {
	var customSystem, customUser string
	if g.prompts != nil {
		customSystem, customUser = g.prompts.ScreenPrompts()
	}
	return resolvePrompt(customSystem, DefaultSystemPrompts.ScreenResume),
		resolvePrompt(customUser, DefaultUserPrompts.ScreenResume)
}

// draftPrompts resolves the email drafting prompts.
func (g *GeminiProvider) draftPrompts() (system, user string) {
	var customSystem, customUser string
	if g.prompts != nil {
		customSystem, customUser = g.prompts.DraftPrompts()
	}
	return resolvePrompt(customSystem, DefaultSystemPrompts.DraftEmail),
		resolvePrompt(customUser, DefaultUserPrompts.DraftEmail)
}

// resolvePrompt returns the first non-empty prompt string.
func resolvePrompt(custom, fallback string) string {
	if custom != "" {
		return custom
	}
	return fallback
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
