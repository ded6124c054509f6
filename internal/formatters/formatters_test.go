package formatters

import (
	"strings"
	"testing"
	"time"

	"hireai/internal/screening"
	"hireai/internal/types"
)

func sampleReport() types.ScreenReport {
	return types.ScreenReport{
		Job: types.JobPosting{ID: 1, Title: "Backend Engineer"},
		Candidate: types.CandidateRecord{
			Name:   "Jane Doe",
			Email:  types.PlaceholderEmail,
			JobID:  1,
			Score:  82,
			Status: types.StatusShortlisted,
			Evaluation: types.EvaluationVerdict{
				MatchPercentage:    82,
				Summary:            "Strong backend background.",
				Pros:               []string{"Go experience"},
				Cons:               []string{"No Kubernetes"},
				InterviewQuestions: []string{"Describe a service you scaled."},
			},
			ScreenedAt: time.Now(),
		},
	}
}

func TestScreenReportFormatters(t *testing.T) {
	report := sampleReport()

	for _, format := range []string{"text", "markdown", "json"} {
		t.Run(format, func(t *testing.T) {
			output, err := GlobalRegistry.Format(report, format)
			if err != nil {
				t.Fatalf("Format(%s) failed: %v", format, err)
			}
			for _, want := range []string{"Jane Doe", "Backend Engineer", "82"} {
				if !strings.Contains(output, want) {
					t.Errorf("%s output missing %q:\n%s", format, want, output)
				}
			}
		})
	}
}

func TestSnapshotFormatter(t *testing.T) {
	snap := screening.Snapshot{
		ActiveJobs:       2,
		TotalCandidates:  3,
		ShortlistedCount: 1,
		AverageScore:     71.5,
		TopCandidates: []types.CandidateRecord{
			{Name: "Jane Doe", Score: 82, Status: types.StatusShortlisted},
		},
	}

	output, err := GlobalRegistry.Format(snap, "text")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	for _, want := range []string{"Jane Doe", "71.5", "Top Candidates"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestEmailDraftFormatter(t *testing.T) {
	draft := types.EmailDraft{
		CandidateName: "Jane Doe",
		JobTitle:      "Backend Engineer",
		Body:          "Hi Jane, your background stood out to us.",
	}

	output, err := GlobalRegistry.Format(draft, "markdown")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(output, "Jane Doe") || !strings.Contains(output, "stood out") {
		t.Errorf("unexpected output:\n%s", output)
	}
}

func TestUnknownFormat(t *testing.T) {
	if _, err := GlobalRegistry.Format(sampleReport(), "yaml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
