package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hireai/internal/ai"
	hireaiErrors "hireai/internal/errors"
	"hireai/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// getHealthCheckTimeout returns the configured health check timeout
func (s *Server) getHealthCheckTimeout() time.Duration {
	return s.AppConfig.Observability.HealthCheck.Timeout
}

// jobsHandler creates job postings and lists the active ones
func (s *Server) jobsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createJobHandler(w, r)
	case http.MethodGet:
		s.writeJSON(w, s.Jobs.List())
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) createJobHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctx, span := s.obs.Tracer("hireai.api").Start(ctx, "api.create_job")
	defer span.End()

	var req CreateJobRequest
	if err := parseJSONRequest(r, &req); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "validation"))
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	job, err := s.Jobs.Create(req.Title, req.Department, req.Content)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "validation"))
		s.writeDomainError(w, err)
		return
	}

	s.obs.RecordJobCreated(ctx)
	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int64("job.id", job.ID),
	)
	s.Logger.Info("Job posting created",
		"job_id", job.ID,
		"title", job.Title)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(job); err != nil {
		span.RecordError(err)
		log.Printf("Failed to encode job response: %v", err)
	}
}

// screenHandler runs a resume through the screening pipeline
func (s *Server) screenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	ctx, span := s.obs.Tracer("hireai.api").Start(ctx, "api.screen")
	defer span.End()

	var req ScreenRequest
	if err := parseJSONRequest(r, &req); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "validation"))
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	// Size validation
	if len(req.ResumeText) > int(s.MaxRequestSize/2) {
		err := fmt.Errorf("resume too large: %d chars", len(req.ResumeText))
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "validation"))
		writeErrorResponse(w, "Resume too large", fmt.Sprintf("resumeText exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
		return
	}

	span.SetAttributes(
		attribute.Int64("request.job_id", req.JobID),
		attribute.Int("request.resume_length", len(req.ResumeText)),
		attribute.String("operation", "screen"),
	)

	report, err := s.screener.Screen(ctx, types.ScreenInput{
		JobID:      req.JobID,
		ResumeText: req.ResumeText,
		Candidate: types.CandidateIdentity{
			Name:  req.CandidateName,
			Email: req.CandidateEmail,
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", string(hireaiErrors.TypeOf(err))))
		s.writeDomainError(w, err)
		return
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("candidate.score", report.Candidate.Score),
		attribute.String("candidate.status", string(report.Candidate.Status)),
	)

	s.writeJSON(w, report)
}

// candidatesHandler lists screened candidates, optionally the top N by score
func (s *Server) candidatesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeErrorResponse(w, "Invalid top parameter", "top must be a non-negative integer", http.StatusBadRequest)
			return
		}
		s.writeJSON(w, s.Candidates.TopByScore(n))
		return
	}

	s.writeJSON(w, s.Candidates.List())
}

// dashboardHandler returns the aggregated recruiter dashboard snapshot
func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	topN, ok := parseCountParam(w, r, "top")
	if !ok {
		return
	}
	recentN, ok := parseCountParam(w, r, "recent")
	if !ok {
		return
	}

	s.writeJSON(w, s.Dashboard.Snapshot(topN, recentN))
}

// parseCountParam reads an optional non-negative integer query parameter.
// Writes a 400 response and returns ok=false when the value is malformed.
func parseCountParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		writeErrorResponse(w, "Invalid "+name+" parameter", name+" must be a non-negative integer", http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

// draftHandler generates an interview-invitation email for a screened candidate
func (s *Server) draftHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	ctx, span := s.obs.Tracer("hireai.api").Start(ctx, "api.draft_email")
	defer span.End()

	var req DraftRequest
	if err := parseJSONRequest(r, &req); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "validation"))
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.CandidateName) == "" {
		err := fmt.Errorf("missing candidate name")
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "validation"))
		writeErrorResponse(w, "Missing candidate name", "candidateName field is required", http.StatusBadRequest)
		return
	}

	input := types.DraftEmailInput{
		CandidateName: req.CandidateName,
		JobTitle:      req.JobTitle,
	}
	if req.Score != nil {
		input.Score = *req.Score
	}

	// Fill in score and job title from the latest screening record when
	// the request leaves them out.
	if req.Score == nil || input.JobTitle == "" {
		record, found := s.Candidates.LatestByName(req.CandidateName)
		if !found {
			err := hireaiErrors.NewNotFoundError(hireaiErrors.ErrCodeCandidateNotFound,
				fmt.Sprintf("No screening record found for candidate %q", req.CandidateName), nil)
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "not_found"))
			s.writeDomainError(w, err)
			return
		}
		if req.Score == nil {
			input.Score = record.Score
		}
		if input.JobTitle == "" {
			if job, err := s.Jobs.FindByID(record.JobID); err == nil {
				input.JobTitle = job.Title
			}
		}
	}

	span.SetAttributes(
		attribute.String("candidate.name", input.CandidateName),
		attribute.Int("candidate.score", input.Score),
		attribute.String("operation", "draft"),
	)

	body, usage, err := s.draftAI.DraftEmail(ctx, input)
	s.obs.RecordTokenUsage(ctx, "draft_email", usage)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "ai_processing"))
		s.obs.RecordEmailDrafted(ctx, false)
		s.writeDomainError(w, err)
		return
	}

	s.obs.RecordEmailDrafted(ctx, true)
	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("response.body_length", len(body)),
	)

	s.writeJSON(w, types.EmailDraft{
		CandidateName: input.CandidateName,
		JobTitle:      input.JobTitle,
		Body:          body,
	})
}

// healthHandler provides a health check endpoint including AI model status
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":  "healthy",
		"service": "hireai",
		"version": s.Version,
	}

	aiStatus := s.checkAIModelsHealth()
	response["ai_models"] = aiStatus
	response["circuit_breakers"] = s.checkCircuitBreakerHealth()

	// Determine overall health status
	overallHealthy := true
	for _, modelStatus := range aiStatus {
		if info, ok := modelStatus.(*aiModelStatus); ok && !info.Available {
			overallHealthy = false
			break
		}
	}

	if !overallHealthy {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

type aiModelStatus struct {
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// checkAIModelsHealth checks model availability for both AI operations
func (s *Server) checkAIModelsHealth() map[string]any {
	ctx, cancel := context.WithTimeout(context.Background(), s.getHealthCheckTimeout())
	defer cancel()

	aiStatus := make(map[string]any)
	for name, svc := range map[string]*ai.Service{
		"screen": s.screenAI,
		"draft":  s.draftAI,
	} {
		info := svc.GetModelInfo(ctx)
		aiStatus[name] = &aiModelStatus{
			Name:        info.Name,
			DisplayName: info.DisplayName,
			Version:     info.Version,
			Available:   info.Available,
			Error:       info.Error,
		}
	}

	return aiStatus
}

// checkCircuitBreakerHealth reports circuit breaker state for both AI operations
func (s *Server) checkCircuitBreakerHealth() map[string]any {
	type breakerStatsSource interface {
		GetCircuitBreakerStats() map[string]any
	}

	status := make(map[string]any)
	for name, svc := range map[string]*ai.Service{
		"screen": s.screenAI,
		"draft":  s.draftAI,
	} {
		if src, ok := svc.Provider.(breakerStatsSource); ok {
			status[name] = src.GetCircuitBreakerStats()
		} else {
			status[name] = map[string]any{"available": false}
		}
	}

	return status
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service": "hireai",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
		"pipeline": map[string]any{
			"active_jobs":       s.Jobs.Count(),
			"total_candidates":  s.Candidates.Count(),
			"shortlisted_count": s.Candidates.CountShortlisted(),
		},
	}

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// writeJSON writes a JSON success response
func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// writeDomainError maps a pipeline error to an HTTP error response
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	writeErrorResponse(w, hireaiErrors.CodeOf(err), err.Error(), statusForError(err))
}

// statusForError maps pipeline error categories to HTTP status codes.
// Scoring failures distinguish rate limiting and timeouts so callers
// can react appropriately.
func statusForError(err error) int {
	switch hireaiErrors.TypeOf(err) {
	case hireaiErrors.ErrorTypeValidation:
		return http.StatusBadRequest
	case hireaiErrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case hireaiErrors.ErrorTypeScoring:
		switch hireaiErrors.CodeOf(err) {
		case hireaiErrors.ErrCodeScoringRateLimit:
			return http.StatusTooManyRequests
		case hireaiErrors.ErrCodeScoringTimeout:
			return http.StatusGatewayTimeout
		default:
			return http.StatusBadGateway
		}
	default:
		return http.StatusInternalServerError
	}
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
