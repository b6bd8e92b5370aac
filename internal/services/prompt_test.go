package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goldenInput() SuggestionPromptInput {
	return SuggestionPromptInput{
		ResumeText:     "Jane Doe\nBackend engineer. Developed Go services.\n",
		JobDescription: "  Looking for a Go engineer with Kubernetes.  ",
		Breakdown: ScoreBreakdown{
			KeywordMatch:        12.5,
			ExperienceRelevance: 20,
			SkillDensity:        4,
			ActionLanguage:      3,
			Formatting:          15,
			Total:               55,
		},
		MissingKeywords: []string{"kubernetes", "terraform"},
		Entities: ResumeEntities{
			Name:          "Jane Doe",
			Organizations: []string{"Acme"},
		},
	}
}

func TestBuildSuggestionPrompt_Snapshot(t *testing.T) {
	want, err := os.ReadFile(filepath.Join("testdata", "suggestion_prompt.golden"))
	require.NoError(t, err)

	got := NewPromptBuilder().BuildSuggestionPrompt(goldenInput())

	assert.Equal(t, string(want), got)
}

func TestBuildSuggestionPrompt_Defaults(t *testing.T) {
	in := goldenInput()
	in.MissingKeywords = nil
	in.Entities = ResumeEntities{}

	got := NewPromptBuilder().BuildSuggestionPrompt(in)

	assert.Contains(t, got, "- Missing Keywords from JD: None")
	assert.Contains(t, got, "- Name: Not Found")
	assert.Contains(t, got, "- Companies Worked At: Not Found")
	assert.Equal(t, got, NewPromptBuilder().BuildSuggestionPrompt(in))
}
