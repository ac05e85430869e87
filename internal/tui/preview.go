// Package tui provides an interactive terminal previewer for a resume file.
package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/sections"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	sidebarWidth  = 26
	defaultWidth  = 100
	defaultHeight = 30
	// header, footer and the sidebar border
	chromeHeight = 3
)

// Model is the previewer state. It owns a private copy of the resume; the
// caller reads the result back with Data after the program exits.
type Model struct {
	styles *Styles
	keys   *KeyMap
	help   help.Model

	data      types.ResumeData
	order     []types.SectionToken
	templates []types.TemplateName
	current   int
	cursor    int
	dirty     bool
	status    string

	viewport viewport.Model
	width    int
	height   int
}

// New creates a previewer for data. The stored template selects the
// starting variant.
func New(data *types.ResumeData) *Model {
	m := &Model{
		styles:    DefaultStyles(),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		data:      data.Clone(),
		templates: types.TemplateNames(),
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.order = m.data.Order()
	if i := slices.Index(m.templates, m.data.EffectivePresentation().Template); i >= 0 {
		m.current = i
	}
	m.viewport = viewport.New(m.previewWidth(), m.previewHeight())
	m.refresh()
	return m
}

// Init initialises the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the previewer.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = m.previewWidth()
		m.viewport.Height = m.previewHeight()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleKeyMsg handles key presses.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.viewport.Height = m.previewHeight()

	case key.Matches(msg, m.keys.NextTemplate):
		m.cycleTemplate(1)

	case key.Matches(msg, m.keys.PrevTemplate):
		m.cycleTemplate(-1)

	case key.Matches(msg, m.keys.ToggleIcons):
		m.data.SetIcons(!m.data.IconsVisible())
		m.dirty = true

	case key.Matches(msg, m.keys.MoveUp):
		m.moveSection(m.cursor - 1)

	case key.Matches(msg, m.keys.MoveDown):
		m.moveSection(m.cursor + 1)

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.order)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height/2)
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height/2)
		return m, nil

	default:
		return m, nil
	}

	m.refresh()
	return m, nil
}

func (m *Model) cycleTemplate(step int) {
	n := len(m.templates)
	m.current = ((m.current+step)%n + n) % n
	m.data.Template = m.templates[m.current]
	m.dirty = true
}

func (m *Model) moveSection(to int) {
	if to < 0 || to >= len(m.order) {
		return
	}
	m.order = sections.Move(m.order, m.cursor, to)
	m.data.SectionOrder = slices.Clone(m.order)
	m.cursor = to
	m.dirty = true
	if !sections.HasContent(&m.data, m.order[to]) {
		m.status = fmt.Sprintf("%s is empty and stays hidden", sections.Title(m.order[to]))
	}
}

// refresh re-renders the resume into the viewport.
func (m *Model) refresh() {
	renderer := templates.Resolve(m.Template())
	tree := renderer.Render(&m.data, templates.OptionsFor(m.data.Presentation, false), nil)

	highlight := -1
	if m.cursor < len(m.order) {
		highlight = slices.Index(sections.Visible(&m.data, m.order), m.order[m.cursor])
	}
	m.viewport.SetContent(rendering.RenderTerminal(tree, rendering.TerminalOptions{
		Width:     m.previewWidth(),
		Highlight: highlight,
	}))
}

// View renders the previewer.
func (m *Model) View() string {
	icons := "on"
	if !m.data.IconsVisible() {
		icons = "off"
	}
	header := m.styles.Title.Render(fmt.Sprintf("%s  ·  %s", m.title(), m.Template())) +
		m.styles.Muted.Render(fmt.Sprintf("  icons %s", icons))
	if m.dirty {
		header += m.styles.Muted.Render("  (modified)")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), " ", m.viewport.View())

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = m.styles.Status.Render(m.status) + "\n" + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) sidebar() string {
	var b strings.Builder
	for i, token := range m.order {
		label := sections.Title(token)
		style := m.styles.Normal
		if !sections.HasContent(&m.data, token) {
			style = m.styles.Muted
		}
		if i == m.cursor {
			style = m.styles.Selected
			label = "> " + label
		} else {
			label = "  " + label
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(style.Render(label))
	}
	return m.styles.Sidebar.Height(m.previewHeight()).Render(b.String())
}

func (m *Model) title() string {
	if name := strings.TrimSpace(m.data.PersonalDetails.FullName); name != "" {
		return name
	}
	return "Untitled resume"
}

func (m *Model) previewWidth() int {
	return max(20, m.width-sidebarWidth-5)
}

func (m *Model) previewHeight() int {
	h := m.height - chromeHeight
	if m.help.ShowAll {
		h -= 4
	}
	return max(5, h)
}

// Template returns the variant currently displayed.
func (m *Model) Template() types.TemplateName {
	return m.templates[m.current]
}

// Order returns the current section order.
func (m *Model) Order() []types.SectionToken {
	return slices.Clone(m.order)
}

// Cursor returns the index of the selected section in Order.
func (m *Model) Cursor() int {
	return m.cursor
}

// Modified reports whether any preference changed since New.
func (m *Model) Modified() bool {
	return m.dirty
}

// Data returns a copy of the resume with the preferences chosen in the
// previewer applied.
func (m *Model) Data() types.ResumeData {
	return m.data.Clone()
}
