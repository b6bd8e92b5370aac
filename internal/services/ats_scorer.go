package services

import (
	"log"
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// Sub-score maxima. They sum to 100.
const (
	KeywordMatchWeight        = 30.0
	ExperienceRelevanceWeight = 20.0
	SkillDensityWeight        = 20.0
	ActionLanguageWeight      = 15.0
	FormattingWeight          = 15.0

	experienceMissingScore   = 10.0
	skillDensitySaturation   = 10
	actionVerbSaturation     = 5
	formattingIssuePenalty   = 5.0
	formattingMaxResumeChars = 2000
	maxMissingKeywords       = 10
)

var actionVerbs = []string{
	"developed", "optimized", "designed", "implemented",
	"led", "achieved", "created", "engineered",
}

// commonJobWords are never suggested as missing keywords.
var commonJobWords = []string{
	"work", "experience", "team", "company", "role", "position", "time", "year",
}

// commonJobWordForms are inflections some lemmatizers keep as their own lemma.
var commonJobWordForms = []string{
	"works", "working", "worked", "experiences", "experienced", "teams",
	"companies", "roles", "positions", "times", "years",
}

const (
	IssueTableLayout  = "resume mentions a table; ATS parsers often mangle tabular layouts"
	IssueResumeLength = "resume text exceeds 2000 characters"
)

type ScoreBreakdown struct {
	KeywordMatch        float64 `json:"keyword_match"`
	ExperienceRelevance float64 `json:"experience_relevance"`
	SkillDensity        float64 `json:"skill_density"`
	ActionLanguage      float64 `json:"action_language"`
	Formatting          float64 `json:"formatting"`
	Total               int     `json:"total"`
}

type ATSAnalysis struct {
	Breakdown         ScoreBreakdown
	ResumeKeywords    KeywordSet
	JobKeywords       KeywordSet
	MatchedKeywords   []string
	MissingKeywords   []string
	FormattingIssues  []string
	ActionVerbCount   int
	SkillMentionCount int
	// InsufficientInput is set when either text was empty; the score is then 0.
	InsufficientInput bool
}

type ATSScorer interface {
	CalculateATSScore(resumeText, jobDescription string) int
	Analyze(resumeText, jobDescription string) *ATSAnalysis
	MissingKeywords(resumeText, jobDescription string) []string
}

type atsScorer struct {
	extractor KeywordExtractor
	// excluded holds the common job words in the extractor's normalized form.
	excluded KeywordSet
}

func NewATSScorer(extractor KeywordExtractor) ATSScorer {
	return &atsScorer{
		extractor: extractor,
		excluded:  normalizedExclusions(extractor),
	}
}

// normalizedExclusions runs the common job words through the extractor so the
// exclusion compares lemmas against lemmas. The surface forms are kept too.
func normalizedExclusions(extractor KeywordExtractor) (excluded KeywordSet) {
	excluded = NewKeywordSet(commonJobWords...)
	for _, w := range commonJobWordForms {
		excluded[w] = struct{}{}
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️  Failed to normalize common job words, using surface forms: %v", r)
		}
	}()

	words := append(append([]string(nil), commonJobWords...), commonJobWordForms...)
	for w := range extractor.ExtractKeywords(strings.Join(words, " ")) {
		excluded[w] = struct{}{}
	}
	return excluded
}

// CalculateATSScore implements ATSScorer.
func (s *atsScorer) CalculateATSScore(resumeText, jobDescription string) int {
	return s.Analyze(resumeText, jobDescription).Breakdown.Total
}

// Analyze implements ATSScorer. It never panics; internal failures yield a zero score.
func (s *atsScorer) Analyze(resumeText, jobDescription string) (analysis *ATSAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ ATS scoring failed, returning 0: %v", r)
			analysis = emptyAnalysis()
		}
	}()

	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobDescription) == "" {
		return emptyAnalysis()
	}

	resumeKeywords := s.extractor.ExtractKeywords(resumeText)
	jobKeywords := s.extractor.ExtractKeywords(jobDescription)
	matched := resumeKeywords.Intersect(jobKeywords)
	lowerResume := strings.ToLower(resumeText)

	var keywordScore float64
	if jobKeywords.Len() > 0 {
		keywordScore = float64(matched.Len()) / float64(jobKeywords.Len()) * KeywordMatchWeight
	}

	experienceScore := experienceMissingScore
	if strings.Contains(lowerResume, "experience") {
		experienceScore = ExperienceRelevanceWeight
	}

	skillMentions := countSkillMentions(resumeText, jobKeywords)
	skillScore := saturate(skillMentions, skillDensitySaturation) * SkillDensityWeight

	verbCount := countActionVerbs(lowerResume)
	actionScore := saturate(verbCount, actionVerbSaturation) * ActionLanguageWeight

	issues := formattingIssues(resumeText, lowerResume)
	formattingScore := math.Max(0, FormattingWeight-formattingIssuePenalty*float64(len(issues)))

	total := keywordScore + experienceScore + skillScore + actionScore + formattingScore

	return &ATSAnalysis{
		Breakdown: ScoreBreakdown{
			KeywordMatch:        round2(keywordScore),
			ExperienceRelevance: round2(experienceScore),
			SkillDensity:        round2(skillScore),
			ActionLanguage:      round2(actionScore),
			Formatting:          round2(formattingScore),
			Total:               clampScore(total),
		},
		ResumeKeywords:    resumeKeywords,
		JobKeywords:       jobKeywords,
		MatchedKeywords:   matched.Sorted(),
		MissingKeywords:   s.selectMissing(jobKeywords, resumeKeywords),
		FormattingIssues:  issues,
		ActionVerbCount:   verbCount,
		SkillMentionCount: skillMentions,
	}
}

// MissingKeywords implements ATSScorer. Results are sorted alphabetically and
// capped at ten entries.
func (s *atsScorer) MissingKeywords(resumeText, jobDescription string) (missing []string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Missing keyword selection failed: %v", r)
			missing = []string{}
		}
	}()

	jobKeywords := s.extractor.ExtractKeywords(jobDescription)
	resumeKeywords := s.extractor.ExtractKeywords(resumeText)
	return s.selectMissing(jobKeywords, resumeKeywords)
}

func (s *atsScorer) selectMissing(jobKeywords, resumeKeywords KeywordSet) []string {
	missing := jobKeywords.Difference(resumeKeywords).Difference(s.excluded).Sorted()
	if len(missing) > maxMissingKeywords {
		missing = missing[:maxMissingKeywords]
	}
	return missing
}

// countSkillMentions counts whitespace-separated resume tokens that literally
// appear in the job keyword set. Case and punctuation are kept as written.
func countSkillMentions(resumeText string, jobKeywords KeywordSet) int {
	count := 0
	for _, token := range strings.Fields(resumeText) {
		if jobKeywords.Has(token) {
			count++
		}
	}
	return count
}

func countActionVerbs(lowerResume string) int {
	count := 0
	for _, verb := range actionVerbs {
		count += strings.Count(lowerResume, verb)
	}
	return count
}

func formattingIssues(resumeText, lowerResume string) []string {
	issues := []string{}
	if strings.Contains(lowerResume, "table") {
		issues = append(issues, IssueTableLayout)
	}
	if utf8.RuneCountInString(resumeText) > formattingMaxResumeChars {
		issues = append(issues, IssueResumeLength)
	}
	return issues
}

func saturate(count, limit int) float64 {
	return math.Min(float64(count)/float64(limit), 1)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampScore(total float64) int {
	score := int(math.Round(total))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func emptyAnalysis() *ATSAnalysis {
	return &ATSAnalysis{
		ResumeKeywords:    make(KeywordSet),
		JobKeywords:       make(KeywordSet),
		MatchedKeywords:   []string{},
		MissingKeywords:   []string{},
		FormattingIssues:  []string{},
		InsufficientInput: true,
	}
}

// ScoreVerdict maps a score onto the interpretation bands shown to users.
func ScoreVerdict(score int) (string, string) {
	switch {
	case score >= 80:
		return "excellent", "Excellent! Your resume is well-optimized for ATS systems."
	case score >= 60:
		return "good", "Good match, but there's room for improvement."
	case score >= 40:
		return "moderate", "Moderate match. Consider optimizing with more relevant keywords."
	default:
		return "low", "Low ATS score. Your resume needs significant optimization."
	}
}

// SortedVerbs returns the action verbs in alphabetical order.
func SortedVerbs() []string {
	out := append([]string(nil), actionVerbs...)
	sort.Strings(out)
	return out
}
