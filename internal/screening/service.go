package screening

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"hireai/internal/ai"
	"hireai/internal/errors"
	"hireai/internal/store"
	"hireai/internal/types"
)

// Scorer is the slice of the AI service the screening pipeline needs.
type Scorer interface {
	EvaluateResume(ctx context.Context, jobContent, resumeText string) (types.EvaluationVerdict, *ai.TokenUsage, error)
}

// MetricsRecorder receives screening outcomes for observability. A nil
// recorder disables recording.
type MetricsRecorder interface {
	RecordScreening(ctx context.Context, outcome string, score int, shortlisted, clamped bool)
	RecordTokenUsage(ctx context.Context, operation string, usage *ai.TokenUsage)
}

// Service runs the resume screening pipeline: resolve the job, score the
// resume, derive the status, and record the candidate.
type Service struct {
	jobs       *store.JobStore
	candidates *store.CandidateStore
	scorer     Scorer
	metrics    MetricsRecorder
	logger     *errors.Logger
}

// NewService creates a screening service. metrics may be nil.
func NewService(jobs *store.JobStore, candidates *store.CandidateStore, scorer Scorer, metrics MetricsRecorder, logger *errors.Logger) *Service {
	return &Service{
		jobs:       jobs,
		candidates: candidates,
		scorer:     scorer,
		metrics:    metrics,
		logger:     logger,
	}
}

// Screen evaluates a resume against a stored job and records the outcome.
// A failed evaluation leaves the candidate store untouched.
func (s *Service) Screen(ctx context.Context, input types.ScreenInput) (types.ScreenReport, error) {
	if strings.TrimSpace(input.ResumeText) == "" {
		return types.ScreenReport{}, errors.NewValidationError(errors.ErrCodeEmptyResume,
			"Resume text must not be empty", nil)
	}
	if strings.TrimSpace(input.Candidate.Name) == "" {
		return types.ScreenReport{}, errors.NewValidationError(errors.ErrCodeInvalidFormat,
			"Candidate name must not be empty", nil)
	}

	job, err := s.jobs.FindByID(input.JobID)
	if err != nil {
		return types.ScreenReport{}, err
	}

	verdict, usage, err := s.scorer.EvaluateResume(ctx, job.Content, input.ResumeText)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordScreening(ctx, "error", 0, false, false)
		}
		s.logger.LogError(err, "Resume screening failed",
			"job_id", job.ID,
			"job_title", job.Title,
			"candidate", input.Candidate.Name)
		return types.ScreenReport{}, err
	}

	// The caller may have given up while the model was responding. Do not
	// record a result nobody is waiting for.
	if ctxErr := ctx.Err(); ctxErr != nil {
		code := errors.ErrCodeScoringCanceled
		if stderrors.Is(ctxErr, context.DeadlineExceeded) {
			code = errors.ErrCodeScoringTimeout
		}
		return types.ScreenReport{}, errors.NewScoringError(code,
			"Screening abandoned before the result was recorded", ctxErr)
	}

	email := input.Candidate.Email
	if strings.TrimSpace(email) == "" {
		email = types.PlaceholderEmail
	}

	record := types.CandidateRecord{
		Name:       input.Candidate.Name,
		Email:      email,
		JobID:      job.ID,
		Score:      verdict.MatchPercentage,
		Status:     types.StatusForScore(verdict.MatchPercentage),
		Evaluation: verdict,
		ScreenedAt: time.Now(),
	}
	s.candidates.Append(record)

	if s.metrics != nil {
		s.metrics.RecordScreening(ctx, "success", record.Score,
			record.Status == types.StatusShortlisted, verdict.Clamped)
		s.metrics.RecordTokenUsage(ctx, "screen_resume", usage)
	}

	s.logger.Info("Candidate screened",
		"candidate", record.Name,
		"job_id", job.ID,
		"job_title", job.Title,
		"score", record.Score,
		"status", string(record.Status))

	return types.ScreenReport{Job: job, Candidate: record}, nil
}

// ScreenResult carries the outcome of an asynchronous screening.
type ScreenResult struct {
	Report types.ScreenReport
	Err    error
}

// ScreenAsync runs Screen in the background and delivers the result on the
// returned channel. The channel is buffered, so an abandoned result does
// not leak the goroutine.
func (s *Service) ScreenAsync(ctx context.Context, input types.ScreenInput) <-chan ScreenResult {
	results := make(chan ScreenResult, 1)
	go func() {
		report, err := s.Screen(ctx, input)
		results <- ScreenResult{Report: report, Err: err}
	}()
	return results
}
