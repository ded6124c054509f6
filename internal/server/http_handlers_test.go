package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hireai/internal/ai"
	"hireai/internal/config"
	hireaiErrors "hireai/internal/errors"
	"hireai/internal/screening"
	"hireai/internal/store"
	"hireai/internal/types"
)

type stubScorer struct {
	verdict types.EvaluationVerdict
	err     error
}

func (s *stubScorer) EvaluateResume(ctx context.Context, jobContent, resumeText string) (types.EvaluationVerdict, *ai.TokenUsage, error) {
	if s.err != nil {
		return types.EvaluationVerdict{}, nil, s.err
	}
	return s.verdict, &ai.TokenUsage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150}, nil
}

type stubDrafter struct {
	body string
	err  error
}

func (s *stubDrafter) EvaluateResume(ctx context.Context, jobContent, resumeText string) (types.EvaluationVerdict, *ai.TokenUsage, error) {
	return types.EvaluationVerdict{}, nil, nil
}

func (s *stubDrafter) DraftEmail(ctx context.Context, input types.DraftEmailInput) (string, *ai.TokenUsage, error) {
	if s.err != nil {
		return "", nil, s.err
	}
	return s.body, nil, nil
}

func (s *stubDrafter) GetModelInfo(ctx context.Context) *ai.ModelInfo {
	return &ai.ModelInfo{Name: "stub", Available: true}
}

func (s *stubDrafter) Close() error { return nil }

func newTestServer(t *testing.T, scorer screening.Scorer, drafter ai.Provider) *Server {
	t.Helper()

	logger, err := hireaiErrors.New("error")
	if err != nil {
		t.Fatalf("New logger: %v", err)
	}

	jobs := store.NewJobStore()
	candidates := store.NewCandidateStore()

	s := &Server{
		Version:        "test",
		MaxRequestSize: 1 << 20,
		Logger:         logger,
		Jobs:           jobs,
		Candidates:     candidates,
		Dashboard:      screening.NewDashboard(jobs, candidates),
		screener:       screening.NewService(jobs, candidates, scorer, nil, logger),
	}
	if drafter != nil {
		s.draftAI = &ai.Service{Provider: drafter}
	}
	return s
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateJobAndList(t *testing.T) {
	s := newTestServer(t, &stubScorer{}, nil)

	rec := httptest.NewRecorder()
	s.jobsHandler(rec, jsonRequest(http.MethodPost, "/jobs",
		`{"title":"Backend Engineer","department":"Platform","content":"Go, five years"}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("create job status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var job types.JobPosting
	if err := json.Unmarshal(rec.Body.Bytes(), &job); err != nil {
		t.Fatalf("Unmarshal job: %v", err)
	}
	if job.ID == 0 || job.Title != "Backend Engineer" {
		t.Errorf("unexpected job %+v", job)
	}

	rec = httptest.NewRecorder()
	s.jobsHandler(rec, httptest.NewRequest(http.MethodGet, "/jobs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list jobs status = %d, want %d", rec.Code, http.StatusOK)
	}
	var listed []types.JobPosting
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("Unmarshal job list: %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("len(listed) = %d, want 1", len(listed))
	}
}

func TestCreateJobValidation(t *testing.T) {
	s := newTestServer(t, &stubScorer{}, nil)

	rec := httptest.NewRecorder()
	s.jobsHandler(rec, jsonRequest(http.MethodPost, "/jobs", `{"title":"   ","content":"body"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal error response: %v", err)
	}
	if resp.Error != hireaiErrors.ErrCodeEmptyTitle {
		t.Errorf("error code = %q, want %q", resp.Error, hireaiErrors.ErrCodeEmptyTitle)
	}
}

func TestScreenHandler(t *testing.T) {
	scorer := &stubScorer{verdict: types.EvaluationVerdict{
		MatchPercentage:    82,
		Summary:            "Strong match",
		Pros:               []string{"Go experience"},
		Cons:               []string{"No Kubernetes"},
		InterviewQuestions: []string{"Describe a production incident"},
	}}
	s := newTestServer(t, scorer, nil)
	job, err := s.Jobs.Create("Backend Engineer", "Platform", "Go, five years")
	if err != nil {
		t.Fatalf("Create job: %v", err)
	}

	rec := httptest.NewRecorder()
	s.screenHandler(rec, jsonRequest(http.MethodPost, "/screen",
		fmt.Sprintf(`{"jobId":%d,"resumeText":"Go developer","candidateName":"Jane Doe"}`, job.ID)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var report types.ScreenReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("Unmarshal report: %v", err)
	}
	if report.Candidate.Score != 82 {
		t.Errorf("score = %d, want 82", report.Candidate.Score)
	}
	if report.Candidate.Status != types.StatusShortlisted {
		t.Errorf("status = %q, want %q", report.Candidate.Status, types.StatusShortlisted)
	}
	if s.Candidates.Count() != 1 {
		t.Errorf("candidate count = %d, want 1", s.Candidates.Count())
	}
}

func TestScreenHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		scorerErr  error
		body       string
		wantStatus int
	}{
		{
			name:       "unknown job",
			body:       `{"jobId":999,"resumeText":"Go developer","candidateName":"Jane"}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "empty resume",
			body:       `{"jobId":1,"resumeText":"  ","candidateName":"Jane"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "rate limited",
			scorerErr:  hireaiErrors.NewScoringError(hireaiErrors.ErrCodeScoringRateLimit, "rate limited", nil),
			body:       `{"jobId":1,"resumeText":"Go developer","candidateName":"Jane"}`,
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:       "timeout",
			scorerErr:  hireaiErrors.NewScoringError(hireaiErrors.ErrCodeScoringTimeout, "timed out", nil),
			body:       `{"jobId":1,"resumeText":"Go developer","candidateName":"Jane"}`,
			wantStatus: http.StatusGatewayTimeout,
		},
		{
			name:       "malformed response",
			scorerErr:  hireaiErrors.NewScoringError(hireaiErrors.ErrCodeScoringMalformed, "not valid JSON", nil),
			body:       `{"jobId":1,"resumeText":"Go developer","candidateName":"Jane"}`,
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, &stubScorer{err: tt.scorerErr}, nil)
			if _, err := s.Jobs.Create("Backend Engineer", "", "Go"); err != nil {
				t.Fatalf("Create job: %v", err)
			}

			rec := httptest.NewRecorder()
			s.screenHandler(rec, jsonRequest(http.MethodPost, "/screen", tt.body))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if s.Candidates.Count() != 0 {
				t.Errorf("candidate count = %d, want 0 after failure", s.Candidates.Count())
			}
		})
	}
}

func TestCandidatesHandler(t *testing.T) {
	s := newTestServer(t, &stubScorer{}, nil)
	now := time.Now()
	for _, c := range []struct {
		name  string
		score int
	}{
		{"Alice", 90},
		{"Bob", 60},
	} {
		s.Candidates.Append(types.CandidateRecord{
			Name:       c.name,
			Email:      types.PlaceholderEmail,
			JobID:      1,
			Score:      c.score,
			Status:     types.StatusForScore(c.score),
			ScreenedAt: now,
		})
	}

	rec := httptest.NewRecorder()
	s.candidatesHandler(rec, httptest.NewRequest(http.MethodGet, "/candidates?top=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var top []types.CandidateRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &top); err != nil {
		t.Fatalf("Unmarshal candidates: %v", err)
	}
	if len(top) != 1 || top[0].Name != "Alice" {
		t.Errorf("top = %+v, want [Alice]", top)
	}

	rec = httptest.NewRecorder()
	s.candidatesHandler(rec, httptest.NewRequest(http.MethodGet, "/candidates?top=abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad top param status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestDashboardHandler(t *testing.T) {
	s := newTestServer(t, &stubScorer{}, nil)
	if _, err := s.Jobs.Create("Backend Engineer", "", "Go"); err != nil {
		t.Fatalf("Create job: %v", err)
	}
	s.Candidates.Append(types.CandidateRecord{
		Name:       "Alice",
		Email:      types.PlaceholderEmail,
		JobID:      1,
		Score:      90,
		Status:     types.StatusShortlisted,
		ScreenedAt: time.Now(),
	})

	rec := httptest.NewRecorder()
	s.dashboardHandler(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var snap screening.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("Unmarshal snapshot: %v", err)
	}
	if snap.ActiveJobs != 1 || snap.TotalCandidates != 1 || snap.ShortlistedCount != 1 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestDraftHandler(t *testing.T) {
	s := newTestServer(t, &stubScorer{}, &stubDrafter{body: "Hi Jane, we would like to invite you to interview."})
	job, err := s.Jobs.Create("Backend Engineer", "", "Go")
	if err != nil {
		t.Fatalf("Create job: %v", err)
	}
	s.Candidates.Append(types.CandidateRecord{
		Name:       "Jane Doe",
		Email:      types.PlaceholderEmail,
		JobID:      job.ID,
		Score:      82,
		Status:     types.StatusShortlisted,
		ScreenedAt: time.Now(),
	})

	rec := httptest.NewRecorder()
	s.draftHandler(rec, jsonRequest(http.MethodPost, "/draft", `{"candidateName":"Jane Doe"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var draft types.EmailDraft
	if err := json.Unmarshal(rec.Body.Bytes(), &draft); err != nil {
		t.Fatalf("Unmarshal draft: %v", err)
	}
	if draft.JobTitle != "Backend Engineer" {
		t.Errorf("job title = %q, want resolved from screening record", draft.JobTitle)
	}
	if !strings.Contains(draft.Body, "invite") {
		t.Errorf("body = %q, want drafted email", draft.Body)
	}
}

func TestDraftHandlerUnknownCandidate(t *testing.T) {
	s := newTestServer(t, &stubScorer{}, &stubDrafter{body: "hello"})

	rec := httptest.NewRecorder()
	s.draftHandler(rec, jsonRequest(http.MethodPost, "/draft", `{"candidateName":"Nobody"}`))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusNotFound, rec.Body.String())
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t, &stubScorer{}, nil)
	s.APIKeys = map[string]bool{"secret-key-12345": true}

	handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		header     http.Header
		wantStatus int
	}{
		{
			name:       "missing key",
			header:     http.Header{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid key",
			header:     http.Header{"X-Api-Key": []string{"wrong"}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid key",
			header:     http.Header{"X-Api-Key": []string{"secret-key-12345"}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "bearer token",
			header:     http.Header{"Authorization": []string{"Bearer secret-key-12345"}},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
			for k, v := range tt.header {
				req.Header[k] = v
			}
			rec := httptest.NewRecorder()
			handler(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	logger, err := hireaiErrors.New("error")
	if err != nil {
		t.Fatalf("New logger: %v", err)
	}

	s := newTestServer(t, &stubScorer{}, nil)
	s.RateLimit = &config.RateLimitConfig{Enabled: true, RequestsPerMin: 1, BurstCapacity: 1, ByIP: true}
	s.RateLimiter = NewRateLimiter(1, time.Minute, 1, logger)
	defer s.RateLimiter.Close()

	handler := s.rateLimitMiddleware()(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req.RemoteAddr = "192.0.2.1:1234"

	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want %d", rec.Code, http.StatusOK)
	}

	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", hireaiErrors.NewValidationError(hireaiErrors.ErrCodeEmptyResume, "empty", nil), http.StatusBadRequest},
		{"not found", hireaiErrors.NewNotFoundError(hireaiErrors.ErrCodeJobNotFound, "missing", nil), http.StatusNotFound},
		{"rate limited", hireaiErrors.NewScoringError(hireaiErrors.ErrCodeScoringRateLimit, "slow down", nil), http.StatusTooManyRequests},
		{"timeout", hireaiErrors.NewScoringError(hireaiErrors.ErrCodeScoringTimeout, "deadline", nil), http.StatusGatewayTimeout},
		{"scoring", hireaiErrors.NewScoringError(hireaiErrors.ErrCodeScoringFailed, "boom", nil), http.StatusBadGateway},
		{"config", hireaiErrors.NewConfigError(hireaiErrors.ErrCodeInvalidConfig, "bad", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusForError(tt.err); got != tt.want {
				t.Errorf("statusForError() = %d, want %d", got, tt.want)
			}
		})
	}
}
