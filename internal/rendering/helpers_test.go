package rendering

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/view"
)

func sampleResume() *types.ResumeData {
	return &types.ResumeData{
		PersonalDetails: types.PersonalDetails{
			FullName: "Ada Lovelace",
			Email:    "ada@example.com",
			Phone:    "+44 20 1234",
			GitHub:   "github.com/ada",
			Location: "London",
		},
		JobTitle:  "Analyst & Writer",
		Objective: "Turning **notes** into programs\n\n- Built $100 engines\n- Wrote 50% of the notes",
		WorkExperience: []types.WorkExperience{
			{JobTitle: "Analyst", CompanyName: "Babbage & Co", StartDate: "1842", EndDate: "1843", Description: "- **Translated** the memoir\n- Added notes A_G"},
		},
		Skills: []types.Skill{
			types.NewGroupedSkill("Math", "Analysis, Algebra"),
			types.NewIndividualSkill("Poetry"),
		},
		Languages: []types.Language{{Language: "French", Proficiency: "Fluent"}},
	}
}

func renderDoc(t *testing.T, name types.TemplateName, data *types.ResumeData, editing bool) *view.Node {
	t.Helper()
	r, err := templates.Get(name)
	require.NoError(t, err)
	return r.Render(data, templates.Options{IsEditing: editing, ShowIcons: true}, nil)
}
