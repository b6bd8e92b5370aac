package services

import (
	"context"
	"fmt"
	"log"
	"strings"
)

const (
	warningMissingInput = "Please provide both a resume and a job description."
	warningHint         = "Please check your internet connection and API configuration."
)

type SuggestionResult struct {
	Analysis    *ATSAnalysis
	Entities    ResumeEntities
	Prompt      string
	Suggestions string
	// Warning is set instead of Suggestions when the generative service failed.
	Warning string
}

type SuggestionService interface {
	Suggest(ctx context.Context, resumeText, jobDescription string) *SuggestionResult
}

type suggestionService struct {
	scorer        ATSScorer
	entities      EntityExtractor
	generator     TextGenerator
	promptBuilder *PromptBuilder
	temperature   float32
	maxRetries    int
}

// NewSuggestionService wires the scorer to the generative collaborator.
// generator may be nil; every call then returns a warning.
func NewSuggestionService(
	scorer ATSScorer,
	entities EntityExtractor,
	generator TextGenerator,
	temperature float32,
	maxRetries int,
) SuggestionService {
	return &suggestionService{
		scorer:        scorer,
		entities:      entities,
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		temperature:   temperature,
		maxRetries:    maxRetries,
	}
}

// Suggest implements SuggestionService. The ATS analysis is always returned;
// generator failures only populate Warning.
func (s *suggestionService) Suggest(ctx context.Context, resumeText, jobDescription string) *SuggestionResult {
	analysis := s.scorer.Analyze(resumeText, jobDescription)
	result := &SuggestionResult{Analysis: analysis}

	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobDescription) == "" {
		result.Warning = warningMissingInput
		return result
	}

	if s.entities != nil {
		result.Entities = s.entities.ExtractEntities(resumeText)
	}

	result.Prompt = s.promptBuilder.BuildSuggestionPrompt(SuggestionPromptInput{
		ResumeText:      resumeText,
		JobDescription:  jobDescription,
		Breakdown:       analysis.Breakdown,
		MissingKeywords: analysis.MissingKeywords,
		Entities:        result.Entities,
	})

	if s.generator == nil {
		result.Warning = fmt.Sprintf("Error generating suggestions: %v. %s", ErrGeneratorUnavailable, warningHint)
		return result
	}

	log.Printf("📝 Suggestion prompt length: %d characters", len(result.Prompt))
	text, err := s.generator.GenerateTextWithRetry(ctx, result.Prompt, s.temperature, s.maxRetries)
	if err != nil {
		log.Printf("❌ Suggestion generation failed: %v", err)
		result.Warning = fmt.Sprintf("Error generating suggestions: %v. %s", err, warningHint)
		return result
	}

	result.Suggestions = stripCodeFence(text)
	log.Printf("✅ Suggestions received: %d characters", len(result.Suggestions))
	return result
}

// stripCodeFence removes a fence that wraps the whole model answer.
func stripCodeFence(input string) string {
	clean := strings.TrimSpace(input)
	if !strings.HasPrefix(clean, "```") || !strings.HasSuffix(clean, "```") || len(clean) < 6 {
		return clean
	}

	clean = strings.TrimSuffix(strings.TrimPrefix(clean, "```"), "```")
	// drop the language tag on the opening line
	if i := strings.Index(clean, "\n"); i >= 0 && !strings.ContainsAny(clean[:i], " \t") {
		clean = clean[i+1:]
	}
	return strings.TrimSpace(clean)
}
