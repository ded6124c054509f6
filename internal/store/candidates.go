package store

import (
	"sort"
	"sync"
	"time"

	"hireai/internal/types"
)

// CandidateStore holds screening results in insertion order. It is a
// screening history, not a keyed table: the same candidate scored twice
// yields two records.
type CandidateStore struct {
	mu         sync.Mutex
	candidates []types.CandidateRecord
}

// NewCandidateStore creates an empty candidate store.
func NewCandidateStore() *CandidateStore {
	return &CandidateStore{}
}

// Append records a screening result. Safe under concurrent writers.
func (s *CandidateStore) Append(record types.CandidateRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates = append(s.candidates, record)
}

// List returns a snapshot of all records in insertion order.
func (s *CandidateStore) List() []types.CandidateRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.CandidateRecord, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// Count returns the number of records.
func (s *CandidateStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.candidates)
}

// TopByScore returns up to n records sorted by score descending. Ties keep
// insertion order so repeated calls are deterministic.
func (s *CandidateStore) TopByScore(n int) []types.CandidateRecord {
	ranked := s.List()
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// MostRecent returns up to n records ordered by screening time, newest first.
func (s *CandidateStore) MostRecent(n int) []types.CandidateRecord {
	recent := s.List()
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].ScreenedAt.After(recent[j].ScreenedAt)
	})

	if n >= 0 && n < len(recent) {
		recent = recent[:n]
	}
	return recent
}

// CountShortlisted returns the number of shortlisted records.
func (s *CandidateStore) CountShortlisted() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, c := range s.candidates {
		if c.Status == types.StatusShortlisted {
			count++
		}
	}
	return count
}

// AverageScore returns the arithmetic mean of all scores, or 0 when the
// collection is empty.
func (s *CandidateStore) AverageScore() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.candidates) == 0 {
		return 0
	}

	sum := 0
	for _, c := range s.candidates {
		sum += c.Score
	}
	return float64(sum) / float64(len(s.candidates))
}

// LatestByName returns the most recently appended record for the named
// candidate.
func (s *CandidateStore) LatestByName(name string) (types.CandidateRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest types.CandidateRecord
	var at time.Time
	found := false
	for _, c := range s.candidates {
		if c.Name == name && (!found || !c.ScreenedAt.Before(at)) {
			latest = c
			at = c.ScreenedAt
			found = true
		}
	}
	return latest, found
}
