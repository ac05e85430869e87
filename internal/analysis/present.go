package analysis

import (
	"github.com/jonathan/resume-builder/internal/types"
)

// Display labels
const (
	LabelMissing       = "Missing from Resume"
	LabelCurrent       = "Current Text"
	LabelImproved      = "Improved Text"
	MissingWarning     = "This content is not present in your current resume"
	InvalidInputNotice = "The job description or resume could not be fully analyzed"
)

// Card is one suggestion ready for display. OriginalText is what to show in
// the "current" slot; it is never the sentinel.
type Card struct {
	Category      types.SuggestionCategory `json:"category"`
	Suggestion    string                   `json:"suggestion"`
	OriginalLabel string                   `json:"originalLabel"`
	OriginalText  string                   `json:"originalText"`
	Missing       bool                     `json:"missing"`
	CopyOriginal  bool                     `json:"copyOriginal"`
	ImprovedLabel string                   `json:"improvedLabel"`
	ImprovedText  string                   `json:"improvedText"`
	CopyImproved  bool                     `json:"copyImproved"`
}

// CopyTargets lists the texts a user may copy from the card.
func (c Card) CopyTargets() []string {
	var out []string
	if c.CopyOriginal {
		out = append(out, c.OriginalText)
	}
	if c.CopyImproved {
		out = append(out, c.ImprovedText)
	}
	return out
}

// Group is the cards of one category
type Group struct {
	Category types.SuggestionCategory `json:"category"`
	Title    string                   `json:"title"`
	Cards    []Card                   `json:"cards"`
}

// Report is a CompatibilityResult arranged for display
type Report struct {
	CurrentScore        float64               `json:"currentScore"`
	PotentialScore      float64               `json:"potentialScore"`
	CurrentCallback     float64               `json:"currentCallback"`
	PotentialCallback   float64               `json:"potentialCallback"`
	Keywords            []string              `json:"keywords,omitempty"`
	TopRequiredKeywords []string              `json:"topRequiredKeywords,omitempty"`
	MissingKeywords     []string              `json:"missingKeywords,omitempty"`
	Groups              []Group               `json:"groups"`
	Breakdown           *types.ScoreBreakdown `json:"scoreBreakdown,omitempty"`
	Evidence            *types.Evidence       `json:"evidence,omitempty"`
	Confidence          *float64              `json:"confidence,omitempty"`
	Warnings            []string              `json:"warnings,omitempty"`
}

var groupTitles = map[types.SuggestionCategory]string{
	types.CategoryText:    "Text",
	types.CategoryKeyword: "Keywords",
	types.CategoryOther:   "Other",
}

// Categories lists the display groups in order.
func Categories() []types.SuggestionCategory {
	return []types.SuggestionCategory{types.CategoryText, types.CategoryKeyword, types.CategoryOther}
}

// NewCard applies the display rules to one suggestion.
func NewCard(s types.Suggestion, category types.SuggestionCategory) Card {
	c := Card{
		Category:      category,
		Suggestion:    s.Suggestion,
		ImprovedLabel: LabelImproved,
		ImprovedText:  s.ImprovedText,
		CopyImproved:  s.ImprovedText != "" && s.ImprovedText != types.MissingSentinel,
	}
	if s.IsMissing() {
		c.Missing = true
		c.OriginalLabel = LabelMissing
		c.OriginalText = MissingWarning
		return c
	}
	c.OriginalLabel = LabelCurrent
	c.OriginalText = s.OriginalText
	c.CopyOriginal = s.OriginalText != ""
	return c
}

// partition splits the combined list by category. Unknown categories go to other.
func partition(all []types.Suggestion) map[types.SuggestionCategory][]types.Suggestion {
	out := make(map[types.SuggestionCategory][]types.Suggestion)
	for _, s := range all {
		switch s.Category {
		case types.CategoryText, types.CategoryKeyword:
			out[s.Category] = append(out[s.Category], s)
		default:
			out[types.CategoryOther] = append(out[types.CategoryOther], s)
		}
	}
	return out
}

// Present arranges a result for display. Pre-split suggestion lists are
// used when the result carries any, otherwise the combined list is
// partitioned by category.
func Present(r *types.CompatibilityResult) Report {
	if r == nil {
		return Report{}
	}
	rep := Report{
		CurrentScore:        r.CurrentScore,
		PotentialScore:      r.PotentialScore,
		CurrentCallback:     r.CurrentCallback,
		PotentialCallback:   r.PotentialCallback,
		Keywords:            r.Keywords,
		TopRequiredKeywords: r.TopRequiredKeywords,
		MissingKeywords:     r.MissingKeywords,
		Breakdown:           r.ScoreBreakdown,
		Evidence:            r.Evidence,
		Confidence:          r.Confidence,
	}

	byCategory := map[types.SuggestionCategory][]types.Suggestion{
		types.CategoryText:    r.TextSuggestions,
		types.CategoryKeyword: r.KeywordSuggestions,
		types.CategoryOther:   r.OtherSuggestions,
	}
	if len(r.TextSuggestions)+len(r.KeywordSuggestions)+len(r.OtherSuggestions) == 0 {
		byCategory = partition(r.Suggestions)
	}

	for _, cat := range Categories() {
		g := Group{Category: cat, Title: groupTitles[cat], Cards: []Card{}}
		for _, s := range byCategory[cat] {
			g.Cards = append(g.Cards, NewCard(s, cat))
		}
		rep.Groups = append(rep.Groups, g)
	}

	if r.ValidationWarning != "" {
		rep.Warnings = append(rep.Warnings, r.ValidationWarning)
	} else if isFalse(r.IsValidJD) || isFalse(r.IsValidCV) {
		rep.Warnings = append(rep.Warnings, InvalidInputNotice)
	}
	return rep
}

func isFalse(b *bool) bool {
	return b != nil && !*b
}
