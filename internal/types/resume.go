// Package types provides type definitions for structured data used throughout the resume builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"slices"
	"strings"
)

// ResumeData is the canonical document for one resume: content plus the
// presentation preferences that travel with it through storage and export.
type ResumeData struct {
	PersonalDetails PersonalDetails  `json:"personalDetails"`
	JobTitle        string           `json:"jobTitle,omitempty"`
	Objective       string           `json:"objective,omitempty"`
	WorkExperience  []WorkExperience `json:"workExperience,omitempty"`
	Education       []Education      `json:"education,omitempty"`
	Skills          []Skill          `json:"skills,omitempty"`
	Projects        []Project        `json:"projects,omitempty"`
	Languages       []Language       `json:"languages,omitempty"`
	Certifications  []Certification  `json:"certifications,omitempty"`
	CustomSections  []CustomSection  `json:"customSections,omitempty"`

	Presentation
}

// PersonalDetails holds the contact block shown in every template header
type PersonalDetails struct {
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
	Location string `json:"location,omitempty"`
}

// WorkExperience is one position in the work history
type WorkExperience struct {
	JobTitle    string `json:"jobTitle,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education is one degree or program
type Education struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// Project is a portfolio entry
type Project struct {
	ProjectName string `json:"projectName,omitempty"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
}

// Language is a spoken language with a free-text proficiency
type Language struct {
	Language    string `json:"language,omitempty"`
	Proficiency string `json:"proficiency,omitempty"`
}

// Certification is a credential issued by an organization
type Certification struct {
	CertificationName   string `json:"certificationName,omitempty"`
	IssuingOrganization string `json:"issuingOrganization,omitempty"`
	IssueDate           string `json:"issueDate,omitempty"`
}

// CustomSection is a user-defined titled block of free text
type CustomSection struct {
	SectionTitle string `json:"sectionTitle,omitempty"`
	Content      string `json:"content,omitempty"`
}

// anyNonBlank reports whether at least one value has non-whitespace content.
func anyNonBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// Present reports whether the entry carries any content.
func (w WorkExperience) Present() bool {
	return anyNonBlank(w.JobTitle, w.CompanyName, w.Location, w.StartDate, w.EndDate, w.Description)
}

// Present reports whether the entry carries any content.
func (e Education) Present() bool {
	return anyNonBlank(e.Degree, e.Institution, e.Location, e.StartDate, e.EndDate, e.Description)
}

// Present reports whether the entry carries any content.
func (p Project) Present() bool {
	return anyNonBlank(p.ProjectName, p.Description, p.Link)
}

// Present reports whether the entry carries any content.
func (l Language) Present() bool {
	return anyNonBlank(l.Language, l.Proficiency)
}

// Present reports whether the entry carries any content.
func (c Certification) Present() bool {
	return anyNonBlank(c.CertificationName, c.IssuingOrganization, c.IssueDate)
}

// Present reports whether the entry carries any content.
func (c CustomSection) Present() bool {
	return anyNonBlank(c.SectionTitle, c.Content)
}

// HasContact reports whether at least one contact method is filled in.
func (p PersonalDetails) HasContact() bool {
	return anyNonBlank(p.Email, p.Phone, p.LinkedIn, p.GitHub, p.Website)
}

// Clone returns a deep copy. Every entry type is a plain value, so cloning
// the slices is enough to detach the copy from the receiver.
func (r *ResumeData) Clone() ResumeData {
	if r == nil {
		return ResumeData{}
	}
	out := *r
	out.WorkExperience = slices.Clone(r.WorkExperience)
	out.Education = slices.Clone(r.Education)
	out.Skills = slices.Clone(r.Skills)
	out.Projects = slices.Clone(r.Projects)
	out.Languages = slices.Clone(r.Languages)
	out.Certifications = slices.Clone(r.Certifications)
	out.CustomSections = slices.Clone(r.CustomSections)
	out.Presentation = r.Presentation.Clone()
	return out
}

// EffectivePresentation returns the preferences with every unset value filled
// by its default. The stored document keeps its absent values.
func (r *ResumeData) EffectivePresentation() Presentation {
	return r.Presentation.Effective()
}

// Normalize returns a deep copy with presentation defaults filled in.
func (r *ResumeData) Normalize() ResumeData {
	out := r.Clone()
	out.Presentation = out.Presentation.Effective()
	return out
}
