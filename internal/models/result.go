package models

// ScoreRequest texts may be empty; an empty side scores 0 with insufficient_input set.
type ScoreRequest struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
}

type KeywordsRequest struct {
	Text string `json:"text" validate:"required"`
}

type KeywordsResponse struct {
	Keywords []string `json:"keywords"`
	Count    int      `json:"count"`
	Fallback bool     `json:"fallback"`
}

type BatchJob struct {
	ID             string `json:"id" validate:"omitempty,max=128"`
	JobDescription string `json:"job_description"`
}

type BatchScoreRequest struct {
	ResumeText string     `json:"resume_text"`
	Jobs       []BatchJob `json:"jobs" validate:"required,min=1,dive"`
}

type ScoreBreakdown struct {
	KeywordMatch        float64 `json:"keyword_match"`
	ExperienceRelevance float64 `json:"experience_relevance"`
	SkillDensity        float64 `json:"skill_density"`
	ActionLanguage      float64 `json:"action_language"`
	Formatting          float64 `json:"formatting"`
}

type ScoreResponse struct {
	ID                string         `json:"id"`
	Score             int            `json:"score"`
	Verdict           string         `json:"verdict"`
	Message           string         `json:"message"`
	Breakdown         ScoreBreakdown `json:"breakdown"`
	MatchedKeywords   []string       `json:"matched_keywords"`
	MissingKeywords   []string       `json:"missing_keywords"`
	FormattingIssues  []string       `json:"formatting_issues"`
	ActionVerbCount   int            `json:"action_verb_count"`
	SkillMentionCount int            `json:"skill_mention_count"`
	InsufficientInput bool           `json:"insufficient_input,omitempty"`
}

type BatchScoreResult struct {
	ID              string   `json:"id"`
	Score           int      `json:"score"`
	Verdict         string   `json:"verdict"`
	MissingKeywords []string `json:"missing_keywords"`
	// InsufficientInput is set when the résumé or this job description was empty.
	InsufficientInput bool `json:"insufficient_input,omitempty"`
}

type BatchScoreResponse struct {
	ID      string             `json:"id"`
	Count   int                `json:"count"`
	Results []BatchScoreResult `json:"results"`
}

type Entities struct {
	Name          string   `json:"name,omitempty"`
	Organizations []string `json:"organizations,omitempty"`
	Locations     []string `json:"locations,omitempty"`
}

type SuggestionResponse struct {
	ScoreResponse
	Entities    Entities `json:"entities"`
	Suggestions string   `json:"suggestions,omitempty"`
	Warning     string   `json:"warning,omitempty"`
}

type ExtractResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Pages       int    `json:"pages"`
	Characters  int    `json:"characters"`
	Text        string `json:"text"`
}

type AnalyzeResponse struct {
	Document    ExtractResponse `json:"document"`
	Result      ScoreResponse   `json:"result"`
	Suggestions string          `json:"suggestions,omitempty"`
	Warning     string          `json:"warning,omitempty"`
}

type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    int      `json:"code"`
	Details []string `json:"details,omitempty"`
}
