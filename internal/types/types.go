package types

import "time"

// CandidateStatus is the screening outcome for a candidate.
type CandidateStatus string

const (
	StatusScreened    CandidateStatus = "Screened"
	StatusShortlisted CandidateStatus = "Shortlisted"
)

// ShortlistThreshold is the minimum score for a candidate to be shortlisted.
// Fixed business rule, not configurable.
const ShortlistThreshold = 75

// StatusForScore derives the candidate status from a match score.
func StatusForScore(score int) CandidateStatus {
	if score >= ShortlistThreshold {
		return StatusShortlisted
	}
	return StatusScreened
}

// JobPosting represents a recruitment requisition. Immutable after creation.
type JobPosting struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Department string    `json:"department,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// EvaluationVerdict is the structured output of a scoring call.
type EvaluationVerdict struct {
	MatchPercentage    int      `json:"matchPercentage"`
	Summary            string   `json:"summary"`
	Pros               []string `json:"pros"`
	Cons               []string `json:"cons"`
	InterviewQuestions []string `json:"interviewQuestions"`

	// Clamped is set at the parse boundary when the model returned a
	// match percentage outside [0,100].
	Clamped bool `json:"clamped,omitempty"`
}

// CandidateRecord is one screening result. Append-only; never mutated.
type CandidateRecord struct {
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	JobID      int64             `json:"jobId"`
	Score      int               `json:"score"`
	Status     CandidateStatus   `json:"status"`
	Evaluation EvaluationVerdict `json:"evaluation"`
	ScreenedAt time.Time         `json:"screenedAt"`
}

// CandidateIdentity carries who is being screened, typically derived
// from the uploaded file identity.
type CandidateIdentity struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// PlaceholderEmail is used when no candidate email was supplied.
const PlaceholderEmail = "candidate@example.com"

// ScreenInput is the input for a screening run.
type ScreenInput struct {
	JobID      int64             `json:"jobId"`
	ResumeText string            `json:"resumeText"`
	Candidate  CandidateIdentity `json:"candidate"`
}

// DraftEmailInput is the input for an interview-invitation draft.
type DraftEmailInput struct {
	CandidateName string `json:"candidateName"`
	JobTitle      string `json:"jobTitle"`
	Score         int    `json:"score"`
}

// ScreenReport bundles a screening result for CLI output.
type ScreenReport struct {
	Job       JobPosting      `json:"job"`
	Candidate CandidateRecord `json:"candidate"`
}

// EmailDraft is a generated outreach email for a candidate.
type EmailDraft struct {
	CandidateName string `json:"candidateName"`
	JobTitle      string `json:"jobTitle"`
	Body          string `json:"body"`
}
