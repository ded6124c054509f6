package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"hireai/internal/errors"
	"hireai/internal/types"
)

// JobStore holds job postings for the lifetime of the process.
// Postings are immutable once created and are never removed.
type JobStore struct {
	mu     sync.Mutex
	jobs   []types.JobPosting
	nextID int64
}

// NewJobStore creates an empty job store.
func NewJobStore() *JobStore {
	return &JobStore{nextID: 1}
}

// SeedJob describes a posting preloaded at startup from configuration.
type SeedJob struct {
	Title      string `mapstructure:"title"`
	Department string `mapstructure:"department"`
	Content    string `mapstructure:"content"`
}

// Seed loads startup postings. Invalid entries are skipped and reported.
func (s *JobStore) Seed(seeds []SeedJob) []error {
	var errs []error
	for _, seed := range seeds {
		if _, err := s.Create(seed.Title, seed.Department, seed.Content); err != nil {
			errs = append(errs, fmt.Errorf("seed job %q: %w", seed.Title, err))
		}
	}
	return errs
}

// Create validates and appends a new posting, assigning a fresh id.
// Display order equals creation order.
func (s *JobStore) Create(title, department, content string) (types.JobPosting, error) {
	if strings.TrimSpace(title) == "" {
		return types.JobPosting{}, errors.NewValidationError(errors.ErrCodeEmptyTitle,
			"job title must not be empty", nil)
	}
	if strings.TrimSpace(content) == "" {
		return types.JobPosting{}, errors.NewValidationError(errors.ErrCodeEmptyContent,
			"job content must not be empty", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job := types.JobPosting{
		ID:         s.nextID,
		Title:      title,
		Department: department,
		Content:    content,
		CreatedAt:  time.Now(),
	}
	s.nextID++
	s.jobs = append(s.jobs, job)

	return job, nil
}

// List returns a snapshot of all postings in creation order.
func (s *JobStore) List() []types.JobPosting {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.JobPosting, len(s.jobs))
	copy(out, s.jobs)
	return out
}

// FindByID returns the posting with the given id.
func (s *JobStore) FindByID(id int64) (types.JobPosting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if job.ID == id {
			return job, nil
		}
	}
	return types.JobPosting{}, errors.NewNotFoundError(errors.ErrCodeJobNotFound,
		fmt.Sprintf("no job with id %d", id), nil)
}

// FindByTitle returns the first posting with the given title. Duplicate
// titles resolve to the earliest created posting.
func (s *JobStore) FindByTitle(title string) (types.JobPosting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if job.Title == title {
			return job, nil
		}
	}
	return types.JobPosting{}, errors.NewNotFoundError(errors.ErrCodeJobNotFound,
		fmt.Sprintf("no job titled %q", title), nil)
}

// Count returns the number of postings.
func (s *JobStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}
