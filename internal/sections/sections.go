// Package sections decides which resume sections are shown and in what order.
// Every template and every output target goes through Visible so they all
// agree on the same list.
package sections

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/resume-builder/internal/types"
)

var titles = map[types.SectionToken]string{
	types.SectionObjective:      "Professional Summary",
	types.SectionWorkExperience: "Work Experience",
	types.SectionProjects:       "Projects",
	types.SectionEducation:      "Education",
	types.SectionSkills:         "Skills",
	types.SectionCertifications: "Certifications",
	types.SectionLanguages:      "Languages",
	types.SectionCustomSections: "Custom Sections",
}

var upper = cases.Upper(language.English)

// Visible returns the sections to render for data, in the given order.
// Unknown and repeated tokens are skipped and a section left out of order is
// not rendered. An empty order means types.DefaultSectionOrder.
func Visible(data *types.ResumeData, order []types.SectionToken) []types.SectionToken {
	if len(order) == 0 {
		order = types.DefaultSectionOrder()
	}
	seen := make(map[types.SectionToken]bool, len(order))
	out := make([]types.SectionToken, 0, len(order))
	for _, token := range order {
		if !token.Known() || seen[token] {
			continue
		}
		seen[token] = true
		if HasContent(data, token) {
			out = append(out, token)
		}
	}
	return out
}

// HasContent reports whether the section has anything to show.
func HasContent(data *types.ResumeData, token types.SectionToken) bool {
	if data == nil {
		return false
	}
	switch token {
	case types.SectionObjective:
		return strings.TrimSpace(data.Objective) != ""
	case types.SectionWorkExperience:
		return anyPresent(data.WorkExperience)
	case types.SectionProjects:
		return anyPresent(data.Projects)
	case types.SectionEducation:
		return anyPresent(data.Education)
	case types.SectionSkills:
		return anyPresent(data.Skills)
	case types.SectionCertifications:
		return anyPresent(data.Certifications)
	case types.SectionLanguages:
		return anyPresent(data.Languages)
	case types.SectionCustomSections:
		return anyPresent(data.CustomSections)
	}
	return false
}

func anyPresent[T interface{ Present() bool }](entries []T) bool {
	for _, e := range entries {
		if e.Present() {
			return true
		}
	}
	return false
}

// Move removes the element at from and inserts it at to, returning a new
// slice. A from outside the slice returns an unchanged copy. to is clamped
// into range.
func Move[T any](order []T, from, to int) []T {
	out := slices.Clone(order)
	if from < 0 || from >= len(out) {
		return out
	}
	to = max(0, min(to, len(out)-1))
	if from == to {
		return out
	}
	item := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, item)
}

// MoveUp moves the element at i one position earlier.
func MoveUp[T any](order []T, i int) []T {
	return Move(order, i, i-1)
}

// MoveDown moves the element at i one position later.
func MoveDown[T any](order []T, i int) []T {
	return Move(order, i, i+1)
}

// Title is the section heading shown by templates.
func Title(token types.SectionToken) string {
	if t, ok := titles[token]; ok {
		return t
	}
	return string(token)
}

// Label is the upper-cased name shown in the reorder list.
func Label(token types.SectionToken) string {
	return upper.String(Title(token))
}
