package screening

import (
	"hireai/internal/store"
	"hireai/internal/types"
)

const (
	defaultTopCandidates  = 5
	defaultRecentActivity = 10
)

// Dashboard aggregates store state into the recruiter overview.
type Dashboard struct {
	jobs       *store.JobStore
	candidates *store.CandidateStore
}

// NewDashboard creates a dashboard aggregator over the given stores.
func NewDashboard(jobs *store.JobStore, candidates *store.CandidateStore) *Dashboard {
	return &Dashboard{jobs: jobs, candidates: candidates}
}

// Snapshot is a point-in-time view of the screening pipeline.
type Snapshot struct {
	ActiveJobs       int                     `json:"activeJobs"`
	TotalCandidates  int                     `json:"totalCandidates"`
	ShortlistedCount int                     `json:"shortlistedCount"`
	AverageScore     float64                 `json:"averageScore"`
	TopCandidates    []types.CandidateRecord `json:"topCandidates"`
	RecentActivity   []types.CandidateRecord `json:"recentActivity"`
}

// Snapshot builds the current dashboard view. Non-positive limits fall
// back to the defaults.
func (d *Dashboard) Snapshot(topN, recentN int) Snapshot {
	if topN <= 0 {
		topN = defaultTopCandidates
	}
	if recentN <= 0 {
		recentN = defaultRecentActivity
	}

	return Snapshot{
		ActiveJobs:       d.jobs.Count(),
		TotalCandidates:  d.candidates.Count(),
		ShortlistedCount: d.candidates.CountShortlisted(),
		AverageScore:     d.candidates.AverageScore(),
		TopCandidates:    d.candidates.TopByScore(topN),
		RecentActivity:   d.candidates.MostRecent(recentN),
	}
}
