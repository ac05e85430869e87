package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func sampleResume() *types.ResumeData {
	return &types.ResumeData{
		PersonalDetails: types.PersonalDetails{FullName: "Ada Lovelace", Email: "ada@example.com"},
		Objective:       "Build analytical engines",
		WorkExperience: []types.WorkExperience{
			{JobTitle: "Analyst", CompanyName: "Babbage and Co"},
		},
		Presentation: types.Presentation{Template: types.TemplateMinimal},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m *Model, msgs ...tea.Msg) *Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(*Model)
		require.True(t, ok)
	}
	return m
}

func TestNew_StartsOnStoredTemplate(t *testing.T) {
	m := New(sampleResume())

	assert.Equal(t, types.TemplateMinimal, m.Template())
	assert.Equal(t, types.DefaultSectionOrder(), m.Order())
	assert.Equal(t, 0, m.Cursor())
	assert.False(t, m.Modified())
}

func TestNew_NilData(t *testing.T) {
	m := New(nil)

	assert.Equal(t, types.DefaultTemplate, m.Template())
	assert.Contains(t, m.View(), "Untitled resume")
}

func TestNew_DoesNotAliasInput(t *testing.T) {
	data := sampleResume()
	m := New(data)

	m = press(t, m, runes("i"), runes("J"))

	assert.True(t, data.IconsVisible())
	assert.Empty(t, data.SectionOrder)
	assert.False(t, m.Data().IconsVisible())
}

func TestInit(t *testing.T) {
	assert.Nil(t, New(sampleResume()).Init())
}

func TestView_ShowsResumeAndChrome(t *testing.T) {
	m := New(sampleResume())

	out := m.View()
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Babbage and Co")
	assert.Contains(t, out, "minimal")
	assert.Contains(t, out, "icons on")
	assert.Contains(t, out, "> Professional Summary")
	assert.NotContains(t, out, "(modified)")
}

func TestUpdate_CycleTemplates(t *testing.T) {
	m := New(sampleResume())
	names := types.TemplateNames()
	start := m.Template()

	for range names {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	assert.Equal(t, start, m.Template(), "a full cycle returns to the start")

	m = press(t, m, runes("t"))
	assert.NotEqual(t, start, m.Template())
	assert.Equal(t, m.Template(), m.Data().Template)

	m = press(t, m, runes("T"))
	assert.Equal(t, start, m.Template())
	assert.True(t, m.Modified())
	assert.Contains(t, m.View(), "(modified)")
}

func TestUpdate_PrevTemplateWraps(t *testing.T) {
	data := sampleResume()
	data.Template = types.TemplateModern
	m := New(data)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})

	names := types.TemplateNames()
	assert.Equal(t, names[len(names)-1], m.Template())
}

func TestUpdate_ToggleIcons(t *testing.T) {
	m := New(sampleResume())

	m = press(t, m, runes("i"))
	assert.False(t, m.Data().IconsVisible())
	assert.Contains(t, m.View(), "icons off")

	m = press(t, m, runes("i"))
	assert.True(t, m.Data().IconsVisible())
}

func TestUpdate_CursorBounds(t *testing.T) {
	m := New(sampleResume())

	m = press(t, m, runes("k"))
	assert.Equal(t, 0, m.Cursor())

	for range 20 {
		m = press(t, m, runes("j"))
	}
	assert.Equal(t, len(types.DefaultSectionOrder())-1, m.Cursor())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, len(types.DefaultSectionOrder())-2, m.Cursor())
	assert.False(t, m.Modified(), "moving the cursor changes nothing")
}

func TestUpdate_MoveSection(t *testing.T) {
	m := New(sampleResume())

	// objective moves below work experience and the cursor follows it
	m = press(t, m, runes("J"))
	order := m.Order()
	assert.Equal(t, types.SectionWorkExperience, order[0])
	assert.Equal(t, types.SectionObjective, order[1])
	assert.Equal(t, 1, m.Cursor())
	assert.Equal(t, order, m.Data().SectionOrder)

	m = press(t, m, runes("K"))
	assert.Equal(t, types.DefaultSectionOrder(), m.Order())
	assert.Equal(t, 0, m.Cursor())
}

func TestUpdate_MoveSectionAtEdges(t *testing.T) {
	m := New(sampleResume())

	m = press(t, m, runes("K"))
	assert.Equal(t, types.DefaultSectionOrder(), m.Order())
	assert.False(t, m.Modified())

	for range 10 {
		m = press(t, m, runes("j"))
	}
	m = press(t, m, runes("J"))
	assert.Equal(t, types.DefaultSectionOrder(), m.Order())
}

func TestUpdate_MoveEmptySectionReportsHidden(t *testing.T) {
	m := New(sampleResume())

	// projects is empty
	m = press(t, m, runes("j"), runes("j"), runes("K"))

	assert.Equal(t, types.SectionProjects, m.Order()[1])
	assert.Contains(t, m.View(), "Projects is empty and stays hidden")

	m = press(t, m, runes("j"))
	assert.NotContains(t, m.View(), "stays hidden")
}

func TestUpdate_HelpToggle(t *testing.T) {
	m := New(sampleResume())

	short := m.View()
	m = press(t, m, runes("?"))
	full := m.View()

	assert.NotContains(t, short, "previous template")
	assert.Contains(t, full, "previous template")
}

func TestUpdate_WindowSize(t *testing.T) {
	m := New(sampleResume())

	m = press(t, m, tea.WindowSizeMsg{Width: 160, Height: 50})

	assert.Equal(t, 160-sidebarWidth-5, m.viewport.Width)
	assert.Equal(t, 50-chromeHeight, m.viewport.Height)
	assert.Contains(t, m.View(), "Ada Lovelace")
}

func TestUpdate_Quit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		m := New(sampleResume())
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestUpdate_UnknownKeyIgnored(t *testing.T) {
	m := New(sampleResume())

	_, cmd := m.Update(runes("z"))

	assert.Nil(t, cmd)
	assert.False(t, m.Modified())
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Quit.Keys(), "q")
	assert.Contains(t, km.Quit.Keys(), "ctrl+c")
	assert.Contains(t, km.MoveUp.Keys(), "K")
	assert.Contains(t, km.MoveDown.Keys(), "J")
	assert.Len(t, km.FullHelp(), 3)
	assert.NotEmpty(t, km.ShortHelp())
}
