package types

// MissingSentinel marks a suggestion whose original text was not found in the resume
const MissingSentinel = "MISSING"

// SuggestionCategory groups suggestions for display
type SuggestionCategory string

// Suggestion categories
const (
	CategoryText    SuggestionCategory = "text"
	CategoryKeyword SuggestionCategory = "keyword"
	CategoryOther   SuggestionCategory = "other"
)

// Suggestion is one improvement proposed by the analysis collaborator
type Suggestion struct {
	Suggestion   string             `json:"suggestion"`
	OriginalText string             `json:"originalText"`
	ImprovedText string             `json:"improvedText"`
	Category     SuggestionCategory `json:"category"`
}

// IsMissing reports whether the original text is the sentinel rather than resume content.
func (s Suggestion) IsMissing() bool {
	return s.OriginalText == MissingSentinel
}

// EvidenceResponsibility pairs a job description fragment with the resume text that matches it
type EvidenceResponsibility struct {
	JDFragment     string `json:"jdFragment"`
	ResumeFragment string `json:"resumeFragment"`
}

// EvidenceSkill pairs a matched skill with the resume text that shows it
type EvidenceSkill struct {
	Skill          string `json:"skill"`
	ResumeFragment string `json:"resumeFragment"`
}

// Evidence lists the matches behind a score
type Evidence struct {
	MatchedResponsibilities []EvidenceResponsibility `json:"matchedResponsibilities,omitempty"`
	MatchedSkills           []EvidenceSkill          `json:"matchedSkills,omitempty"`
}

// ScoreBreakdown is the per-dimension score
type ScoreBreakdown struct {
	RequiredSkills   float64 `json:"requiredSkills"`
	Experience       float64 `json:"experience"`
	Responsibilities float64 `json:"responsibilities"`
	Education        float64 `json:"education"`
	Industry         float64 `json:"industry"`
}

// CompatibilityResult is the decoded output of a job-match analysis. It is
// displayed and discarded, never stored with the resume.
type CompatibilityResult struct {
	CurrentScore        float64         `json:"currentScore"`
	PotentialScore      float64         `json:"potentialScore"`
	CurrentCallback     float64         `json:"currentCallback"`
	PotentialCallback   float64         `json:"potentialCallback"`
	Keywords            []string        `json:"keywords"`
	TopRequiredKeywords []string        `json:"topRequiredKeywords,omitempty"`
	MissingKeywords     []string        `json:"missingKeywords,omitempty"`
	Suggestions         []Suggestion    `json:"suggestions"`
	TextSuggestions     []Suggestion    `json:"textSuggestions,omitempty"`
	KeywordSuggestions  []Suggestion    `json:"keywordSuggestions,omitempty"`
	OtherSuggestions    []Suggestion    `json:"otherSuggestions,omitempty"`
	Evidence            *Evidence       `json:"evidence,omitempty"`
	ScoreBreakdown      *ScoreBreakdown `json:"scoreBreakdown,omitempty"`
	Confidence          *float64        `json:"confidence,omitempty"`
	IsValidJD           *bool           `json:"isValidJD,omitempty"`
	IsValidCV           *bool           `json:"isValidCV,omitempty"`
	ValidationWarning   string          `json:"validationWarning,omitempty"`
}
