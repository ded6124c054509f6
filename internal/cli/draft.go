package cli

import (
	"fmt"

	"hireai/internal/ai"
	"hireai/internal/common"
	"hireai/internal/types"

	"github.com/spf13/cobra"
)

var draftCmd = &cobra.Command{
	Use:   "draft [candidate-name]",
	Short: "Draft an interview-invitation email for a candidate",
	Long: `Draft a personalized interview-invitation email for a screened
candidate using AI. The job title and match score come from the --title
and --score flags.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if draftConfig.OutputFormat == "" {
			draftConfig.OutputFormat = cfg.App.DefaultFormat
		}
		if err := validateScoreFlag(draftScore); err != nil {
			return err
		}
		return common.ValidateOutputFormat(draftConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runDraft,
}

var (
	draftConfig   common.CommandConfig
	draftJobTitle string
	draftScore    int
)

func init() {
	draftCmd.Flags().StringVarP(&draftConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	draftCmd.Flags().StringVar(&draftConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	draftCmd.Flags().StringVar(&draftJobTitle, "title", "", "Job title the candidate was screened for")
	draftCmd.Flags().IntVar(&draftScore, "score", 0, "Candidate match score (0-100)")
	_ = draftCmd.MarkFlagRequired("title")
	_ = draftCmd.MarkFlagRequired("score")
}

// validateScoreFlag rejects scores outside the range candidate records carry.
func validateScoreFlag(score int) error {
	if score < 0 || score > 100 {
		return fmt.Errorf("score must be between 0 and 100, got %d", score)
	}
	return nil
}

func runDraft(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	aiService, err := ai.NewService(cfg.GetDraftConfig(), "draft", cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}
	defer func() {
		if err := aiService.Close(); err != nil {
			logger.Warn("Failed to close AI service", "error", err)
		}
	}()

	input := types.DraftEmailInput{
		CandidateName: args[0],
		JobTitle:      draftJobTitle,
		Score:         draftScore,
	}

	logger.Info("Starting email draft",
		"candidate", input.CandidateName,
		"job_title", input.JobTitle,
		"score", input.Score)

	body, _, err := aiService.DraftEmail(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("failed to draft email: %w", err)
	}

	draft := types.EmailDraft{
		CandidateName: input.CandidateName,
		JobTitle:      input.JobTitle,
		Body:          body,
	}

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(draft, draftConfig); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	logger.Info("Email draft completed successfully")
	return nil
}
