package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"hireai/internal/ai"
	"hireai/internal/common"
	"hireai/internal/screening"
	"hireai/internal/store"
	"hireai/internal/types"
	"hireai/internal/utils"

	"github.com/spf13/cobra"
)

var screenCmd = &cobra.Command{
	Use:   "screen [job-description-file] [resume-file]",
	Short: "Screen a resume against a job description",
	Long: `Screen a candidate's resume against a job description using AI.
The command takes two arguments: the path to the job description file and
the path to the resume file. Both files should be in plain text format.

The candidate name defaults to a cleaned-up version of the resume filename
(for example "jane_doe-resume.txt" becomes "Jane Doe Resume"); use --name
to override it.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if screenConfig.OutputFormat == "" {
			screenConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(screenConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runScreen,
}

var (
	screenConfig         common.CommandConfig
	screenCandidateName  string
	screenCandidateEmail string
	screenJobTitle       string
)

func init() {
	screenCmd.Flags().StringVarP(&screenConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	screenCmd.Flags().StringVar(&screenConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	screenCmd.Flags().StringVar(&screenCandidateName, "name", "", "Candidate name (default: derived from resume filename)")
	screenCmd.Flags().StringVar(&screenCandidateEmail, "email", "", "Candidate email address")
	screenCmd.Flags().StringVar(&screenJobTitle, "title", "", "Job title (default: derived from job description filename)")

	// Add completion for format flag
	_ = screenCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runScreen(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)
	contents, err := fileProcessor.ValidateAndReadFiles(args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to read input files: %w", err)
	}
	jobContent, resumeText := contents[0], contents[1]

	jobTitle := screenJobTitle
	if jobTitle == "" {
		jobTitle = utils.CandidateNameFromFilename(filepath.Base(args[0]))
	}
	candidateName := screenCandidateName
	if candidateName == "" {
		candidateName = utils.CandidateNameFromFilename(filepath.Base(args[1]))
	}

	// Create AI service for the screen operation
	aiService, err := ai.NewService(cfg.GetScreenConfig(), "screen", cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}
	defer func() {
		if err := aiService.Close(); err != nil {
			logger.Warn("Failed to close AI service", "error", err)
		}
	}()

	// One-shot pipeline over in-memory stores
	jobs := store.NewJobStore()
	job, err := jobs.Create(jobTitle, "", jobContent)
	if err != nil {
		return fmt.Errorf("failed to register job posting: %w", err)
	}
	candidates := store.NewCandidateStore()
	screener := screening.NewService(jobs, candidates, aiService, nil, logger)

	logger.Info("Starting resume screening",
		"job_title", job.Title,
		"candidate", candidateName,
		"resume_chars", len(resumeText),
		"output_format", screenConfig.OutputFormat)

	report, err := screener.Screen(cmd.Context(), types.ScreenInput{
		JobID:      job.ID,
		ResumeText: resumeText,
		Candidate: types.CandidateIdentity{
			Name:  strings.TrimSpace(candidateName),
			Email: screenCandidateEmail,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to screen resume: %w", err)
	}

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(report, screenConfig); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	logger.Info("Resume screening completed successfully",
		"score", report.Candidate.Score,
		"status", report.Candidate.Status)
	return nil
}
