package types

import "fmt"

// FieldPatch is one field-level edit. A nil Index addresses a scalar field
// (personalDetails.<field>, objective, jobTitle); otherwise it addresses the
// element at that position of a list section.
type FieldPatch struct {
	Section string `json:"section" validate:"required"`
	Index   *int   `json:"index,omitempty" validate:"omitempty,min=0"`
	Field   string `json:"field" validate:"required"`
	Value   string `json:"value"`
}

// At returns an index pointer for building list patches.
func At(i int) *int {
	return &i
}

// PatchError reports a patch that does not address an existing field
type PatchError struct {
	Patch   FieldPatch
	Message string
}

func (e *PatchError) Error() string {
	if e.Patch.Index != nil {
		return fmt.Sprintf("invalid patch %s[%d].%s: %s", e.Patch.Section, *e.Patch.Index, e.Patch.Field, e.Message)
	}
	return fmt.Sprintf("invalid patch %s.%s: %s", e.Patch.Section, e.Patch.Field, e.Message)
}

// Apply writes one patch into the document. On error the document is unchanged.
func (r *ResumeData) Apply(p FieldPatch) error {
	fail := func(msg string) error { return &PatchError{Patch: p, Message: msg} }

	if p.Index == nil {
		switch p.Section {
		case FieldGroupPersonalDetails:
			target := personalField(&r.PersonalDetails, p.Field)
			if target == nil {
				return fail("unknown field")
			}
			*target = p.Value
		case string(SectionObjective):
			if p.Field != string(SectionObjective) {
				return fail("unknown field")
			}
			r.Objective = p.Value
		case FieldGroupJobTitle:
			if p.Field != FieldGroupJobTitle {
				return fail("unknown field")
			}
			r.JobTitle = p.Value
		default:
			return fail("section requires an index")
		}
		return nil
	}

	i := *p.Index
	inRange := func(n int) bool { return i >= 0 && i < n }

	var target *string
	switch SectionToken(p.Section) {
	case SectionWorkExperience:
		if !inRange(len(r.WorkExperience)) {
			return fail("index out of range")
		}
		target = workField(&r.WorkExperience[i], p.Field)
	case SectionEducation:
		if !inRange(len(r.Education)) {
			return fail("index out of range")
		}
		target = educationField(&r.Education[i], p.Field)
	case SectionProjects:
		if !inRange(len(r.Projects)) {
			return fail("index out of range")
		}
		target = projectField(&r.Projects[i], p.Field)
	case SectionLanguages:
		if !inRange(len(r.Languages)) {
			return fail("index out of range")
		}
		target = languageField(&r.Languages[i], p.Field)
	case SectionCertifications:
		if !inRange(len(r.Certifications)) {
			return fail("index out of range")
		}
		target = certificationField(&r.Certifications[i], p.Field)
	case SectionCustomSections:
		if !inRange(len(r.CustomSections)) {
			return fail("index out of range")
		}
		target = customField(&r.CustomSections[i], p.Field)
	case SectionSkills:
		if !inRange(len(r.Skills)) {
			return fail("index out of range")
		}
		updated, ok := patchSkill(r.Skills[i], p.Field, p.Value)
		if !ok {
			return fail("unknown field for skill entry")
		}
		r.Skills[i] = updated
		return nil
	default:
		return fail("unknown section")
	}
	if target == nil {
		return fail("unknown field")
	}
	*target = p.Value
	return nil
}

func personalField(d *PersonalDetails, field string) *string {
	switch field {
	case "fullName":
		return &d.FullName
	case "email":
		return &d.Email
	case "phone":
		return &d.Phone
	case "linkedin":
		return &d.LinkedIn
	case "github":
		return &d.GitHub
	case "website":
		return &d.Website
	case "location":
		return &d.Location
	}
	return nil
}

func workField(w *WorkExperience, field string) *string {
	switch field {
	case "jobTitle":
		return &w.JobTitle
	case "companyName":
		return &w.CompanyName
	case "location":
		return &w.Location
	case "startDate":
		return &w.StartDate
	case "endDate":
		return &w.EndDate
	case "description":
		return &w.Description
	}
	return nil
}

func educationField(e *Education, field string) *string {
	switch field {
	case "degree":
		return &e.Degree
	case "institution":
		return &e.Institution
	case "location":
		return &e.Location
	case "startDate":
		return &e.StartDate
	case "endDate":
		return &e.EndDate
	case "description":
		return &e.Description
	}
	return nil
}

func projectField(p *Project, field string) *string {
	switch field {
	case "projectName":
		return &p.ProjectName
	case "description":
		return &p.Description
	case "link":
		return &p.Link
	}
	return nil
}

func languageField(l *Language, field string) *string {
	switch field {
	case "language":
		return &l.Language
	case "proficiency":
		return &l.Proficiency
	}
	return nil
}

func certificationField(c *Certification, field string) *string {
	switch field {
	case "certificationName":
		return &c.CertificationName
	case "issuingOrganization":
		return &c.IssuingOrganization
	case "issueDate":
		return &c.IssueDate
	}
	return nil
}

func customField(c *CustomSection, field string) *string {
	switch field {
	case "sectionTitle":
		return &c.SectionTitle
	case "content":
		return &c.Content
	}
	return nil
}

// patchSkill returns a copy of s with one field replaced. The field must
// belong to the entry's own kind.
func patchSkill(s Skill, field, value string) (Skill, bool) {
	switch e := s.Entry.(type) {
	case GroupedSkill:
		switch field {
		case "category":
			e.Category = value
		case "skills":
			e.Skills = value
		default:
			return s, false
		}
		return Skill{Entry: e}, true
	case IndividualSkill:
		if field != "skill" {
			return s, false
		}
		e.Skill = value
		return Skill{Entry: e}, true
	}
	return s, false
}
