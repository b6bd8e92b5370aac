package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"alfredoptarigan/ats-scorer/internal/services"
)

type scoreReport struct {
	Score           int                     `json:"score"`
	Verdict         string                  `json:"verdict"`
	Message         string                  `json:"message"`
	Breakdown       services.ScoreBreakdown `json:"breakdown"`
	MatchedKeywords []string                `json:"matched_keywords"`
	MissingKeywords []string                `json:"missing_keywords"`
	Issues          []string                `json:"formatting_issues"`
}

func newScoreReport(analysis *services.ATSAnalysis) scoreReport {
	verdict, message := services.ScoreVerdict(analysis.Breakdown.Total)
	return scoreReport{
		Score:           analysis.Breakdown.Total,
		Verdict:         verdict,
		Message:         message,
		Breakdown:       analysis.Breakdown,
		MatchedKeywords: analysis.MatchedKeywords,
		MissingKeywords: analysis.MissingKeywords,
		Issues:          analysis.FormattingIssues,
	}
}

func newScoreCmd() *cobra.Command {
	var (
		resumeFile string
		jobFile    string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a resume against a job description",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stack := loadScoringStack()
			extractor := services.NewTextExtractor(nil)

			resume, err := readDocument(cmd.Context(), extractor, resumeFile)
			if err != nil {
				return err
			}
			job, err := readDocument(cmd.Context(), extractor, jobFile)
			if err != nil {
				return err
			}

			report := newScoreReport(stack.scorer.Analyze(resume, job))
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "Path to the resume (PDF, DOCX or text)")
	cmd.Flags().StringVarP(&jobFile, "job", "j", "", "Path to the job description")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}

func printReport(w io.Writer, r scoreReport) {
	fmt.Fprintf(w, "ATS score: %d/100 (%s)\n", r.Score, r.Verdict)
	fmt.Fprintln(w, r.Message)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Keyword match:        %6.2f / %.0f\n", r.Breakdown.KeywordMatch, services.KeywordMatchWeight)
	fmt.Fprintf(w, "  Experience relevance: %6.2f / %.0f\n", r.Breakdown.ExperienceRelevance, services.ExperienceRelevanceWeight)
	fmt.Fprintf(w, "  Skill density:        %6.2f / %.0f\n", r.Breakdown.SkillDensity, services.SkillDensityWeight)
	fmt.Fprintf(w, "  Action language:      %6.2f / %.0f\n", r.Breakdown.ActionLanguage, services.ActionLanguageWeight)
	fmt.Fprintf(w, "  Formatting:           %6.2f / %.0f\n", r.Breakdown.Formatting, services.FormattingWeight)

	if len(r.MissingKeywords) > 0 {
		fmt.Fprintf(w, "\nMissing keywords: %s\n", strings.Join(r.MissingKeywords, ", "))
	}
	for _, issue := range r.Issues {
		fmt.Fprintf(w, "Formatting issue: %s\n", issue)
	}
}
