package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"alfredoptarigan/ats-scorer/internal/config"
	"alfredoptarigan/ats-scorer/internal/services"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "atscore",
		Short:         "Resume ATS scorer",
		Long:          "atscore extracts keywords, scores a resume against a job description and asks Gemini for tailored suggestions.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newKeywordsCmd(), newScoreCmd(), newSuggestCmd())
	return rootCmd
}

// scoringStack is the keyword and scoring pipeline shared by every command.
type scoringStack struct {
	cfg       *config.Config
	extractor services.KeywordExtractor
	scorer    services.ATSScorer
}

func loadScoringStack() *scoringStack {
	cfg := config.Load()

	lemmatizer, _, err := services.SharedLemmatizer(cfg.NLP.Providers)
	if err != nil {
		log.Printf("⚠️  No lemmatizer available, using regex keyword fallback: %v", err)
	}

	extractor := services.NewKeywordExtractor(lemmatizer)
	return &scoringStack{
		cfg:       cfg,
		extractor: extractor,
		scorer:    services.NewATSScorer(extractor),
	}
}

// readDocument loads a file and extracts its text according to its extension.
// Unknown extensions are read as plain text.
func readDocument(ctx context.Context, extractor services.TextExtractor, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	contentType := services.ContentTypeFromFilename(path)
	if contentType == services.ContentTypeOctet {
		contentType = services.ContentTypeText
	}

	extracted, err := extractor.Extract(ctx, data, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to extract %s: %w", path, err)
	}
	return extracted.Text, nil
}
