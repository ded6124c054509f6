package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"hireai/internal/screening"
	"hireai/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ScreenReport", &ScreenReportTextFormatter{})
	registry.RegisterFormatter("markdown", "ScreenReport", &ScreenReportMarkdownFormatter{})
	registry.RegisterFormatter("text", "Snapshot", &SnapshotTextFormatter{})
	registry.RegisterFormatter("markdown", "Snapshot", &SnapshotMarkdownFormatter{})
	registry.RegisterFormatter("text", "EmailDraft", &EmailDraftTextFormatter{})
	registry.RegisterFormatter("markdown", "EmailDraft", &EmailDraftMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ScreenReport:
		return "ScreenReport"
	case screening.Snapshot:
		return "Snapshot"
	case types.EmailDraft:
		return "EmailDraft"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ScreenReportTextFormatter handles text formatting for screening results
type ScreenReportTextFormatter struct{}

func (srf *ScreenReportTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScreenReport)
	if !ok {
		return "", fmt.Errorf("expected ScreenReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== SCREENING RESULT ===\n\n")
	output.WriteString(fmt.Sprintf("Candidate: %s <%s>\n", result.Candidate.Name, result.Candidate.Email))
	output.WriteString(fmt.Sprintf("Position:  %s\n", result.Job.Title))
	output.WriteString(fmt.Sprintf("Score:     %d/100\n", result.Candidate.Score))
	output.WriteString(fmt.Sprintf("Status:    %s\n\n", result.Candidate.Status))

	output.WriteString("Summary:\n")
	output.WriteString(result.Candidate.Evaluation.Summary)
	output.WriteString("\n\n")

	if len(result.Candidate.Evaluation.Pros) > 0 {
		output.WriteString("Strengths:\n")
		for _, pro := range result.Candidate.Evaluation.Pros {
			output.WriteString(fmt.Sprintf("- %s\n", pro))
		}
		output.WriteString("\n")
	}

	if len(result.Candidate.Evaluation.Cons) > 0 {
		output.WriteString("Concerns:\n")
		for _, con := range result.Candidate.Evaluation.Cons {
			output.WriteString(fmt.Sprintf("- %s\n", con))
		}
		output.WriteString("\n")
	}

	if len(result.Candidate.Evaluation.InterviewQuestions) > 0 {
		output.WriteString("Suggested Interview Questions:\n")
		for i, question := range result.Candidate.Evaluation.InterviewQuestions {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, question))
		}
	}

	return output.String(), nil
}

func (srf *ScreenReportTextFormatter) SupportedType() string {
	return "ScreenReport"
}

// ScreenReportMarkdownFormatter handles markdown formatting for screening results
type ScreenReportMarkdownFormatter struct{}

func (srm *ScreenReportMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScreenReport)
	if !ok {
		return "", fmt.Errorf("expected ScreenReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Screening Result\n\n")
	output.WriteString(fmt.Sprintf("**Candidate:** %s <%s>\n\n", result.Candidate.Name, result.Candidate.Email))
	output.WriteString(fmt.Sprintf("**Position:** %s\n\n", result.Job.Title))
	output.WriteString(fmt.Sprintf("**Score:** %d/100\n\n", result.Candidate.Score))
	output.WriteString(fmt.Sprintf("**Status:** %s\n\n", result.Candidate.Status))

	output.WriteString("## Summary\n\n")
	output.WriteString(result.Candidate.Evaluation.Summary)
	output.WriteString("\n\n")

	if len(result.Candidate.Evaluation.Pros) > 0 {
		output.WriteString("## Strengths\n\n")
		for _, pro := range result.Candidate.Evaluation.Pros {
			output.WriteString(fmt.Sprintf("- %s\n", pro))
		}
		output.WriteString("\n")
	}

	if len(result.Candidate.Evaluation.Cons) > 0 {
		output.WriteString("## Concerns\n\n")
		for _, con := range result.Candidate.Evaluation.Cons {
			output.WriteString(fmt.Sprintf("- %s\n", con))
		}
		output.WriteString("\n")
	}

	if len(result.Candidate.Evaluation.InterviewQuestions) > 0 {
		output.WriteString("## Suggested Interview Questions\n\n")
		for i, question := range result.Candidate.Evaluation.InterviewQuestions {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, question))
		}
	}

	return output.String(), nil
}

func (srm *ScreenReportMarkdownFormatter) SupportedType() string {
	return "ScreenReport"
}

// SnapshotTextFormatter handles text formatting for dashboard snapshots
type SnapshotTextFormatter struct{}

func (stf *SnapshotTextFormatter) Format(data any) (string, error) {
	result, ok := data.(screening.Snapshot)
	if !ok {
		return "", fmt.Errorf("expected Snapshot, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RECRUITMENT DASHBOARD ===\n\n")
	output.WriteString(fmt.Sprintf("Active Jobs:       %d\n", result.ActiveJobs))
	output.WriteString(fmt.Sprintf("Candidates:        %d\n", result.TotalCandidates))
	output.WriteString(fmt.Sprintf("Shortlisted:       %d\n", result.ShortlistedCount))
	output.WriteString(fmt.Sprintf("Average Score:     %.1f\n\n", result.AverageScore))

	if len(result.TopCandidates) > 0 {
		output.WriteString("Top Candidates:\n")
		for i, candidate := range result.TopCandidates {
			output.WriteString(fmt.Sprintf("%d. %s (%d/100, %s)\n",
				i+1, candidate.Name, candidate.Score, candidate.Status))
		}
		output.WriteString("\n")
	}

	if len(result.RecentActivity) > 0 {
		output.WriteString("Recent Activity:\n")
		for _, candidate := range result.RecentActivity {
			output.WriteString(fmt.Sprintf("- %s screened at %s (%d/100)\n",
				candidate.Name, candidate.ScreenedAt.Format("2006-01-02 15:04"), candidate.Score))
		}
	}

	return output.String(), nil
}

func (stf *SnapshotTextFormatter) SupportedType() string {
	return "Snapshot"
}

// SnapshotMarkdownFormatter handles markdown formatting for dashboard snapshots
type SnapshotMarkdownFormatter struct{}

func (smf *SnapshotMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(screening.Snapshot)
	if !ok {
		return "", fmt.Errorf("expected Snapshot, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Recruitment Dashboard\n\n")
	output.WriteString(fmt.Sprintf("- **Active Jobs:** %d\n", result.ActiveJobs))
	output.WriteString(fmt.Sprintf("- **Candidates:** %d\n", result.TotalCandidates))
	output.WriteString(fmt.Sprintf("- **Shortlisted:** %d\n", result.ShortlistedCount))
	output.WriteString(fmt.Sprintf("- **Average Score:** %.1f\n\n", result.AverageScore))

	if len(result.TopCandidates) > 0 {
		output.WriteString("## Top Candidates\n\n")
		for i, candidate := range result.TopCandidates {
			output.WriteString(fmt.Sprintf("%d. **%s** (%d/100, %s)\n",
				i+1, candidate.Name, candidate.Score, candidate.Status))
		}
		output.WriteString("\n")
	}

	if len(result.RecentActivity) > 0 {
		output.WriteString("## Recent Activity\n\n")
		for _, candidate := range result.RecentActivity {
			output.WriteString(fmt.Sprintf("- %s screened at %s (%d/100)\n",
				candidate.Name, candidate.ScreenedAt.Format("2006-01-02 15:04"), candidate.Score))
		}
	}

	return output.String(), nil
}

func (smf *SnapshotMarkdownFormatter) SupportedType() string {
	return "Snapshot"
}

// EmailDraftTextFormatter handles text formatting for email drafts
type EmailDraftTextFormatter struct{}

func (edf *EmailDraftTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.EmailDraft)
	if !ok {
		return "", fmt.Errorf("expected EmailDraft, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("To: %s\n", result.CandidateName))
	output.WriteString(fmt.Sprintf("Re: %s\n\n", result.JobTitle))
	output.WriteString(result.Body)
	output.WriteString("\n")

	return output.String(), nil
}

func (edf *EmailDraftTextFormatter) SupportedType() string {
	return "EmailDraft"
}

// EmailDraftMarkdownFormatter handles markdown formatting for email drafts
type EmailDraftMarkdownFormatter struct{}

func (edm *EmailDraftMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.EmailDraft)
	if !ok {
		return "", fmt.Errorf("expected EmailDraft, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("# Outreach Draft: %s\n\n", result.CandidateName))
	output.WriteString(fmt.Sprintf("**Position:** %s\n\n", result.JobTitle))
	output.WriteString(result.Body)
	output.WriteString("\n")

	return output.String(), nil
}

func (edm *EmailDraftMarkdownFormatter) SupportedType() string {
	return "EmailDraft"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
