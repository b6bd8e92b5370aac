package services

import (
	"fmt"
	"strings"
)

const notFound = "Not Found"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

type SuggestionPromptInput struct {
	ResumeText      string
	JobDescription  string
	Breakdown       ScoreBreakdown
	MissingKeywords []string
	Entities        ResumeEntities
}

const suggestionPromptTemplate = `You are an expert resume reviewer and writer with deep knowledge of hiring practices.
Refine and optimize the candidate's resume for the job description below so that it is impactful,
concise and keyword-rich for both recruiters and Applicant Tracking Systems (ATS).

GUIDELINES:
1. Improve clarity and structure while keeping sentences concise.
2. Prefer strong action verbs (%s) over weak phrasing.
3. Quantify achievements wherever possible (e.g. "Reduced latency by 30%%").
4. Work the missing keywords in naturally where the candidate's experience supports them.
5. Keep a professional tone and remove redundancy.
6. Keep an ATS-friendly layout: no tables, no multi-column sections.

ATS ANALYSIS:
- Overall Score: %d/100
- Keyword Match: %.2f/30
- Experience Relevance: %.2f/20
- Skill Density: %.2f/20
- Action Language: %.2f/15
- Formatting: %.2f/15
- Missing Keywords from JD: %s

EXTRACTED RESUME DETAILS:
- Name: %s
- Companies Worked At: %s
- Location: %s

JOB DESCRIPTION:
%s

ORIGINAL RESUME:
%s

Return your answer in Markdown with exactly two sections:
## Updated Resume
The improved resume with all modifications applied.

## Key Improvements & Suggestions
A bullet list of the major changes and why each one improves the resume's ATS score.`

// BuildSuggestionPrompt renders the improvement prompt. It is a pure function of its input.
func (pb *PromptBuilder) BuildSuggestionPrompt(in SuggestionPromptInput) string {
	return fmt.Sprintf(suggestionPromptTemplate,
		strings.Join(SortedVerbs(), ", "),
		in.Breakdown.Total,
		in.Breakdown.KeywordMatch,
		in.Breakdown.ExperienceRelevance,
		in.Breakdown.SkillDensity,
		in.Breakdown.ActionLanguage,
		in.Breakdown.Formatting,
		joinOrDefault(in.MissingKeywords, "None"),
		orDefault(in.Entities.Name, notFound),
		joinOrDefault(in.Entities.Organizations, notFound),
		joinOrDefault(in.Entities.Locations, notFound),
		strings.TrimSpace(in.JobDescription),
		strings.TrimSpace(in.ResumeText),
	)
}

// BuildOCRPrompt asks a vision model to transcribe a resume image.
func (pb *PromptBuilder) BuildOCRPrompt() string {
	return `Transcribe all text visible in this resume image exactly as written.
Preserve line breaks and reading order. Return ONLY the transcribed text, with no commentary or Markdown.`
}

func joinOrDefault(items []string, def string) string {
	if len(items) == 0 {
		return def
	}
	return strings.Join(items, ", ")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
