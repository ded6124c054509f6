package store

import (
	"testing"
	"time"

	"hireai/internal/types"
)

func record(name string, score int, screenedAt time.Time) types.CandidateRecord {
	return types.CandidateRecord{
		Name:       name,
		Email:      types.PlaceholderEmail,
		JobID:      1,
		Score:      score,
		Status:     types.StatusForScore(score),
		ScreenedAt: screenedAt,
	}
}

func TestCandidateStoreAppendKeepsDuplicates(t *testing.T) {
	s := NewCandidateStore()
	now := time.Now()

	s.Append(record("Jane Doe", 60, now))
	s.Append(record("Jane Doe", 85, now.Add(time.Minute)))

	if got := s.Count(); got != 2 {
		t.Errorf("expected both screenings retained, got %d", got)
	}

	latest, ok := s.LatestByName("Jane Doe")
	if !ok {
		t.Fatal("expected to find Jane Doe")
	}
	if latest.Score != 85 {
		t.Errorf("expected latest screening score 85, got %d", latest.Score)
	}
}

func TestCandidateStoreTopByScore(t *testing.T) {
	s := NewCandidateStore()
	now := time.Now()

	s.Append(record("Alice", 90, now))
	s.Append(record("Bob", 60, now.Add(time.Second)))
	s.Append(record("Carol", 90, now.Add(2*time.Second)))

	top := s.TopByScore(2)
	if len(top) != 2 {
		t.Fatalf("expected 2 results, got %d", len(top))
	}
	// Equal scores keep insertion order.
	if top[0].Name != "Alice" || top[1].Name != "Carol" {
		t.Errorf("unexpected order: %s, %s", top[0].Name, top[1].Name)
	}

	all := s.TopByScore(10)
	if len(all) != 3 {
		t.Errorf("expected all 3 when n exceeds count, got %d", len(all))
	}
	if got := s.TopByScore(0); len(got) != 0 {
		t.Errorf("expected empty result for n=0, got %d", len(got))
	}
}

func TestCandidateStoreMostRecent(t *testing.T) {
	s := NewCandidateStore()
	now := time.Now()

	s.Append(record("Alice", 70, now))
	s.Append(record("Bob", 55, now.Add(time.Minute)))
	s.Append(record("Carol", 80, now.Add(2*time.Minute)))

	recent := s.MostRecent(2)
	if len(recent) != 2 {
		t.Fatalf("expected 2 results, got %d", len(recent))
	}
	if recent[0].Name != "Carol" || recent[1].Name != "Bob" {
		t.Errorf("expected newest first, got %s, %s", recent[0].Name, recent[1].Name)
	}
}

func TestCandidateStoreCountShortlisted(t *testing.T) {
	s := NewCandidateStore()
	now := time.Now()

	s.Append(record("Alice", 74, now))
	s.Append(record("Bob", 75, now))
	s.Append(record("Carol", 92, now))

	if got := s.CountShortlisted(); got != 2 {
		t.Errorf("expected 2 shortlisted (score >= %d), got %d", types.ShortlistThreshold, got)
	}
}

func TestCandidateStoreAverageScore(t *testing.T) {
	s := NewCandidateStore()

	if got := s.AverageScore(); got != 0 {
		t.Errorf("expected 0 average for empty store, got %f", got)
	}

	now := time.Now()
	s.Append(record("Alice", 60, now))
	s.Append(record("Bob", 80, now))

	if got := s.AverageScore(); got != 70 {
		t.Errorf("expected average 70, got %f", got)
	}
}
