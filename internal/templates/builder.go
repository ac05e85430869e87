package templates

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/sections"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/view"
)

type fieldKind int

const (
	plainField fieldKind = iota
	multilineField
	emailField
	phoneField
	urlField
)

type builder struct {
	v       *variant
	data    *types.ResumeData
	editing bool
	icons   bool
	pal     Palette
	onPatch view.PatchFunc
}

func scalarRef(section, field string) view.FieldRef {
	return view.FieldRef{Section: section, Field: field}
}

func entryRef(token types.SectionToken, i int, field string) view.FieldRef {
	return view.FieldRef{Section: string(token), Index: types.At(i), Field: field}
}

// field renders one document value. In edit mode it is always a control
// holding the raw value. In view mode a blank value yields nil, contact
// kinds become links and everything else goes through the formatter.
func (b *builder) field(role string, ref view.FieldRef, value string, kind fieldKind, style view.Style) *view.Node {
	if b.editing {
		return view.Control(role, ref, value, kind == multilineField, b.onPatch).Styled(style)
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	switch kind {
	case emailField:
		return view.Link(role, value, "mailto:"+trimmed).Styled(style)
	case phoneField:
		return view.Link(role, value, "tel:"+strings.Join(strings.Fields(trimmed), "")).Styled(style)
	case urlField:
		return view.Link(role, value, ExternalHref(trimmed)).Styled(style)
	}
	return view.Rich(role, value).Styled(style)
}

func (b *builder) icon(name string) *view.Node {
	if !b.icons {
		return nil
	}
	return view.Icon(name).Styled(view.Style{Color: b.pal.Tertiary})
}

// item pairs an optional icon with a value. A nil value drops the whole group.
func (b *builder) item(role, icon string, value *view.Node) *view.Node {
	if value == nil {
		return nil
	}
	return view.Group(view.KindRow, role, b.icon(icon), value)
}

// container returns nil when none of the children survived.
func container(kind view.Kind, role string, style view.Style, children ...*view.Node) *view.Node {
	n := view.Group(kind, role, children...)
	if len(n.Children) == 0 {
		return nil
	}
	return n.Styled(style)
}

func row(role string, children ...*view.Node) *view.Node {
	return container(view.KindRow, role, view.Style{}, children...)
}

// joined separates the surviving parts with sep. The separator only appears
// between two present parts.
func joined(role, sep string, style view.Style, parts ...*view.Node) *view.Node {
	out := view.Group(view.KindRow, role)
	for _, p := range parts {
		if p == nil {
			continue
		}
		if len(out.Children) > 0 {
			out.Add(view.Separator(sep).Styled(style))
		}
		out.Add(p)
	}
	if len(out.Children) == 0 {
		return nil
	}
	return out.Styled(style)
}

func (b *builder) subheading() view.Style {
	return view.Style{Color: b.pal.Subheading, Bold: true}
}

func (b *builder) tertiary() view.Style {
	return view.Style{Color: b.pal.Tertiary, Size: view.SizeSmall}
}

func (b *builder) body() view.Style {
	return view.Style{Color: b.pal.Body, Size: view.SizeSmall}
}

func (b *builder) header() *view.Node {
	pd := b.data.PersonalDetails
	pdSection := types.FieldGroupPersonalDetails
	contact := b.tertiary()

	name := b.field("fullName", scalarRef(pdSection, "fullName"), pd.FullName, plainField,
		view.Style{Color: b.pal.Name, Size: view.SizeTitle, Bold: true})
	title := b.field("jobTitle", scalarRef(types.FieldGroupJobTitle, types.FieldGroupJobTitle), b.data.JobTitle, plainField,
		view.Style{Color: b.pal.Subheading})

	email := b.item("email", "mail", b.field("email", scalarRef(pdSection, "email"), pd.Email, emailField, contact))
	phone := b.item("phone", "phone", b.field("phone", scalarRef(pdSection, "phone"), pd.Phone, phoneField, contact))
	location := b.item("location", "map-pin", b.field("location", scalarRef(pdSection, "location"), pd.Location, plainField, contact))
	linkedin := b.item("linkedin", "linkedin", b.field("linkedin", scalarRef(pdSection, "linkedin"), pd.LinkedIn, urlField, contact))
	github := b.item("github", "github", b.field("github", scalarRef(pdSection, "github"), pd.GitHub, urlField, contact))
	website := b.item("website", "globe", b.field("website", scalarRef(pdSection, "website"), pd.Website, urlField, contact))

	switch b.v.header {
	case headerCentered:
		center := view.Style{Align: view.AlignCenter}
		return container(view.KindHeader, "header", center,
			name,
			title,
			container(view.KindRow, "contact", center, email, phone, location),
			container(view.KindRow, "links", center, linkedin, github, website),
		)
	case headerSplit:
		return container(view.KindHeader, "header", view.Style{},
			row("columns",
				container(view.KindColumn, "identity", view.Style{}, name, title),
				container(view.KindColumn, "contact", view.Style{Align: view.AlignRight},
					email, phone, location, linkedin, github, website),
			),
		)
	default:
		return container(view.KindHeader, "header", view.Style{},
			row("identity", name, title),
			row("contact", email, phone, location),
			row("links", linkedin, github, website),
		)
	}
}

func (b *builder) section(token types.SectionToken) *view.Node {
	sec := view.Section(token)
	if token != types.SectionCustomSections {
		sec.Add(b.v.heading(b.pal, sections.Title(token)))
	}

	d := b.data
	switch token {
	case types.SectionObjective:
		sec.Add(b.field("objective", scalarRef(string(types.SectionObjective), string(types.SectionObjective)),
			d.Objective, multilineField, b.body()))
	case types.SectionWorkExperience:
		b.entries(sec, len(d.WorkExperience), func(i int) bool { return d.WorkExperience[i].Present() }, b.work, true)
	case types.SectionProjects:
		b.entries(sec, len(d.Projects), func(i int) bool { return d.Projects[i].Present() }, b.project, true)
	case types.SectionEducation:
		b.entries(sec, len(d.Education), func(i int) bool { return d.Education[i].Present() }, b.education, false)
	case types.SectionSkills:
		b.entries(sec, len(d.Skills), func(i int) bool { return d.Skills[i].Present() }, b.skill, false)
	case types.SectionCertifications:
		b.entries(sec, len(d.Certifications), func(i int) bool { return d.Certifications[i].Present() }, b.certification, false)
	case types.SectionLanguages:
		b.entries(sec, len(d.Languages), func(i int) bool { return d.Languages[i].Present() }, b.language, false)
	case types.SectionCustomSections:
		b.entries(sec, len(d.CustomSections), func(i int) bool { return d.CustomSections[i].Present() }, b.custom, false)
	}
	return sec
}

// entries appends one node per list element. View mode skips elements
// without content; indexes always refer to the stored position.
func (b *builder) entries(sec *view.Node, n int, present func(int) bool, build func(int) *view.Node, divided bool) {
	first := true
	for i := 0; i < n; i++ {
		if !b.editing && !present(i) {
			continue
		}
		if divided && !first && b.v.divider != nil {
			sec.Add(b.v.divider(b.pal))
		}
		sec.Add(build(i))
		first = false
	}
}

func (b *builder) dates(token types.SectionToken, i int, start, end string) *view.Node {
	style := b.tertiary()
	style.Align = view.AlignRight
	return joined("dates", "-", style,
		b.field("startDate", entryRef(token, i, "startDate"), start, plainField, b.tertiary()),
		b.field("endDate", entryRef(token, i, "endDate"), end, plainField, b.tertiary()),
	)
}

func (b *builder) work(i int) *view.Node {
	const t = types.SectionWorkExperience
	w := b.data.WorkExperience[i]
	org := b.subheading()
	org.Size = view.SizeSmall
	return view.Entry(t, i,
		row("title",
			b.field("jobTitle", entryRef(t, i, "jobTitle"), w.JobTitle, plainField, b.subheading()),
			b.dates(t, i, w.StartDate, w.EndDate),
		),
		row("organization",
			b.item("company", "building", b.field("companyName", entryRef(t, i, "companyName"), w.CompanyName, plainField, org)),
			b.item("location", "map-pin", b.field("location", entryRef(t, i, "location"), w.Location, plainField, b.tertiary())),
		),
		b.field("description", entryRef(t, i, "description"), w.Description, multilineField, b.body()),
	)
}

func (b *builder) project(i int) *view.Node {
	const t = types.SectionProjects
	p := b.data.Projects[i]
	link := b.tertiary()
	link.Italic = true
	return view.Entry(t, i,
		b.field("projectName", entryRef(t, i, "projectName"), p.ProjectName, plainField, b.subheading()),
		b.item("link", "link", b.field("link", entryRef(t, i, "link"), p.Link, urlField, link)),
		b.field("description", entryRef(t, i, "description"), p.Description, multilineField, b.body()),
	)
}

func (b *builder) education(i int) *view.Node {
	const t = types.SectionEducation
	e := b.data.Education[i]
	org := b.subheading()
	org.Size = view.SizeSmall
	return view.Entry(t, i,
		row("title",
			b.field("degree", entryRef(t, i, "degree"), e.Degree, plainField, b.subheading()),
			b.dates(t, i, e.StartDate, e.EndDate),
		),
		row("organization",
			b.item("institution", "graduation-cap", b.field("institution", entryRef(t, i, "institution"), e.Institution, plainField, org)),
			b.item("location", "map-pin", b.field("location", entryRef(t, i, "location"), e.Location, plainField, b.tertiary())),
		),
		b.field("description", entryRef(t, i, "description"), e.Description, multilineField, b.body()),
	)
}

func (b *builder) skill(i int) *view.Node {
	const t = types.SectionSkills
	label := b.subheading()
	label.Size = view.SizeSmall
	switch s := b.data.Skills[i].Entry.(type) {
	case types.IndividualSkill:
		return view.Entry(t, i, b.field("skill", entryRef(t, i, "skill"), s.Skill, plainField, label))
	case types.GroupedSkill:
		return view.Entry(t, i, joined("skill-group", ":", label,
			b.field("category", entryRef(t, i, "category"), s.Category, plainField, label),
			b.field("skills", entryRef(t, i, "skills"), s.Skills, plainField, b.body()),
		))
	}
	return view.Entry(t, i)
}

func (b *builder) certification(i int) *view.Node {
	const t = types.SectionCertifications
	c := b.data.Certifications[i]
	date := b.tertiary()
	date.Align = view.AlignRight
	return view.Entry(t, i,
		row("title",
			b.field("certificationName", entryRef(t, i, "certificationName"), c.CertificationName, plainField, b.subheading()),
			b.field("issueDate", entryRef(t, i, "issueDate"), c.IssueDate, plainField, date),
		),
		b.item("issuer", "building",
			b.field("issuingOrganization", entryRef(t, i, "issuingOrganization"), c.IssuingOrganization, plainField, b.tertiary())),
	)
}

func (b *builder) language(i int) *view.Node {
	const t = types.SectionLanguages
	l := b.data.Languages[i]
	return view.Entry(t, i, joined("language", "-", b.tertiary(),
		b.field("language", entryRef(t, i, "language"), l.Language, plainField, b.subheading()),
		b.field("proficiency", entryRef(t, i, "proficiency"), l.Proficiency, plainField, b.tertiary()),
	))
}

func (b *builder) custom(i int) *view.Node {
	const t = types.SectionCustomSections
	c := b.data.CustomSections[i]
	entry := view.Entry(t, i)
	if b.editing {
		entry.Add(b.field("sectionTitle", entryRef(t, i, "sectionTitle"), c.SectionTitle, plainField, view.Style{Bold: true}))
	} else if strings.TrimSpace(c.SectionTitle) != "" {
		entry.Add(b.v.heading(b.pal, c.SectionTitle))
	}
	return entry.Add(b.field("content", entryRef(t, i, "content"), c.Content, multilineField, b.body()))
}
