package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SkillType is the stored discriminator for a skills entry
type SkillType string

// Skill entry kinds
const (
	SkillTypeGroup      SkillType = "group"
	SkillTypeIndividual SkillType = "individual"
)

// SkillEntry is implemented only by GroupedSkill and IndividualSkill.
// Callers dispatch on the concrete type with a type switch.
type SkillEntry interface {
	Kind() SkillType
	Present() bool
	sealed()
}

// GroupedSkill is a category heading with a free-text list of skills
type GroupedSkill struct {
	Category string
	Skills   string
}

// IndividualSkill is a single named skill
type IndividualSkill struct {
	Skill string
}

func (GroupedSkill) sealed()    {}
func (IndividualSkill) sealed() {}

// Kind returns SkillTypeGroup.
func (GroupedSkill) Kind() SkillType { return SkillTypeGroup }

// Kind returns SkillTypeIndividual.
func (IndividualSkill) Kind() SkillType { return SkillTypeIndividual }

// Present reports whether the entry carries any content.
func (g GroupedSkill) Present() bool { return anyNonBlank(g.Category, g.Skills) }

// Present reports whether the entry carries any content.
func (s IndividualSkill) Present() bool { return anyNonBlank(s.Skill) }

// Skill is one element of the skills list. It wraps a SkillEntry so the
// list keeps its stored JSON shape with the skillType tag.
type Skill struct {
	Entry SkillEntry
}

// NewGroupedSkill builds a grouped skills entry.
func NewGroupedSkill(category, skills string) Skill {
	return Skill{Entry: GroupedSkill{Category: category, Skills: skills}}
}

// NewIndividualSkill builds a single-skill entry.
func NewIndividualSkill(skill string) Skill {
	return Skill{Entry: IndividualSkill{Skill: skill}}
}

// Present reports whether the wrapped entry carries any content.
func (s Skill) Present() bool {
	return s.Entry != nil && s.Entry.Present()
}

type skillJSON struct {
	SkillType SkillType `json:"skillType,omitempty"`
	Category  string    `json:"category,omitempty"`
	Skills    string    `json:"skills,omitempty"`
	Skill     string    `json:"skill,omitempty"`
}

// MarshalJSON writes the entry with its skillType tag.
func (s Skill) MarshalJSON() ([]byte, error) {
	var out skillJSON
	switch e := s.Entry.(type) {
	case GroupedSkill:
		out = skillJSON{SkillType: SkillTypeGroup, Category: e.Category, Skills: e.Skills}
	case IndividualSkill:
		out = skillJSON{SkillType: SkillTypeIndividual, Skill: e.Skill}
	case nil:
		out = skillJSON{SkillType: SkillTypeGroup}
	default:
		return nil, fmt.Errorf("unsupported skill entry %T", s.Entry)
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a stored entry. A missing tag means a grouped entry.
func (s *Skill) UnmarshalJSON(data []byte) error {
	var in skillJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch SkillType(strings.ToLower(string(in.SkillType))) {
	case "", SkillTypeGroup:
		s.Entry = GroupedSkill{Category: in.Category, Skills: in.Skills}
	case SkillTypeIndividual:
		s.Entry = IndividualSkill{Skill: in.Skill}
	default:
		return fmt.Errorf("unknown skillType %q", in.SkillType)
	}
	return nil
}
