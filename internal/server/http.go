package server

import (
	"time"

	"hireai/internal/ai"
	"hireai/internal/config"
	hireaiErrors "hireai/internal/errors"
	"hireai/internal/observability"
	"hireai/internal/screening"
	"hireai/internal/store"
)

// CreateJobRequest represents the request body for the jobs endpoint
type CreateJobRequest struct {
	Title      string `json:"title"`
	Department string `json:"department"`
	Content    string `json:"content"`
}

// ScreenRequest represents the request body for the screen endpoint
type ScreenRequest struct {
	JobID          int64  `json:"jobId"`
	ResumeText     string `json:"resumeText"`
	CandidateName  string `json:"candidateName"`
	CandidateEmail string `json:"candidateEmail"`
}

// DraftRequest represents the request body for the draft endpoint
type DraftRequest struct {
	CandidateName string `json:"candidateName"`
	JobTitle      string `json:"jobTitle"`
	Score         *int   `json:"score"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration and state for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Logger
	Logger *hireaiErrors.Logger

	// Domain state
	Jobs       *store.JobStore
	Candidates *store.CandidateStore
	Dashboard  *screening.Dashboard

	screenAI *ai.Service
	draftAI  *ai.Service
	screener *screening.Service
	obs      *observability.Manager
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance with its stores and AI services.
// Seed jobs from the configuration are loaded immediately; individual bad
// seed entries are logged and skipped.
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *hireaiErrors.Logger) (*Server, error) {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	jobs := store.NewJobStore()
	for _, err := range jobs.Seed(appCfg.Jobs.Seed) {
		logger.Warn("Skipping invalid seed job", "error", err)
	}
	candidates := store.NewCandidateStore()

	screenAI, err := ai.NewService(appCfg.GetScreenConfig(), "screen", appCfg, logger)
	if err != nil {
		return nil, err
	}
	draftAI, err := ai.NewService(appCfg.GetDraftConfig(), "draft", appCfg, logger)
	if err != nil {
		return nil, err
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
		Jobs:           jobs,
		Candidates:     candidates,
		Dashboard:      screening.NewDashboard(jobs, candidates),
		screenAI:       screenAI,
		draftAI:        draftAI,
		screener:       screening.NewService(jobs, candidates, screenAI, nil, logger),
	}, nil
}
