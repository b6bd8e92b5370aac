package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"alfredoptarigan/ats-scorer/internal/services"
)

func newSuggestCmd() *cobra.Command {
	var (
		resumeFile string
		jobFile    string
		apiKey     string
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Ask Gemini for a tailored resume rewrite",
		Long:  "Score the resume, then send the score, missing keywords and resume entities to Gemini and print the suggested rewrite as markdown.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stack := loadScoringStack()

			if apiKey == "" {
				apiKey = stack.cfg.Gemini.APIKey
			}
			gemini, err := services.NewGeminiService(services.GeminiOptions{
				APIKey:            apiKey,
				Model:             stack.cfg.Gemini.Model,
				RequestsPerMinute: stack.cfg.Gemini.RequestsPerMinute,
				Timeout:           stack.cfg.Gemini.Timeout,
			})
			if err != nil {
				return geminiInitError(err)
			}

			extractor := services.NewTextExtractor(gemini)
			resume, err := readDocument(cmd.Context(), extractor, resumeFile)
			if err != nil {
				return err
			}
			job, err := readDocument(cmd.Context(), extractor, jobFile)
			if err != nil {
				return err
			}

			suggestions := services.NewSuggestionService(
				stack.scorer,
				services.NewEntityExtractor(0),
				gemini,
				stack.cfg.Gemini.Temperature,
				stack.cfg.Gemini.MaxRetries,
			)
			result := suggestions.Suggest(cmd.Context(), resume, job)

			printReport(cmd.ErrOrStderr(), newScoreReport(result.Analysis))
			if result.Warning != "" {
				return errors.New(result.Warning)
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Suggestions)
			return nil
		},
	}

	cmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "Path to the resume (PDF, DOCX, text or image)")
	cmd.Flags().StringVarP(&jobFile, "job", "j", "", "Path to the job description")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}

func geminiInitError(err error) error {
	if errors.Is(err, services.ErrGeneratorUnavailable) {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag): %w", err)
	}
	return fmt.Errorf("failed to initialize Gemini: %w", err)
}
