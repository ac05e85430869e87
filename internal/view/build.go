package view

import (
	"github.com/jonathan/resume-builder/internal/richtext"
	"github.com/jonathan/resume-builder/internal/types"
)

// Group builds a container node.
func Group(kind Kind, role string, children ...*Node) *Node {
	return (&Node{Kind: kind, Role: role}).Add(children...)
}

// Text builds a plain text leaf.
func Text(role, text string) *Node {
	return &Node{Kind: KindText, Role: role, Text: text}
}

// Rich builds a formatted text leaf.
func Rich(role, text string) *Node {
	return &Node{Kind: KindRich, Role: role, Rich: richtext.Format(text)}
}

// Link builds a hyperlink whose display text is the raw value.
func Link(role, text, href string) *Node {
	return &Node{Kind: KindLink, Role: role, Text: text, Href: href}
}

// Icon builds an icon glyph reference.
func Icon(name string) *Node {
	return &Node{Kind: KindIcon, Icon: name}
}

// Separator builds an inline separator such as "|" or "•".
func Separator(text string) *Node {
	return &Node{Kind: KindSeparator, Text: text}
}

// Rule builds a horizontal rule.
func Rule(role string, style Style) *Node {
	return &Node{Kind: KindRule, Role: role, Style: style}
}

// Heading builds a section heading.
func Heading(text string, style Style) *Node {
	return &Node{Kind: KindHeading, Role: "section-title", Text: text, Style: style}
}

// Section builds a section container.
func Section(token types.SectionToken, children ...*Node) *Node {
	n := Group(KindSection, string(token), children...)
	n.Section = token
	return n
}

// Entry builds a container for the list element stored at index.
func Entry(token types.SectionToken, index int, children ...*Node) *Node {
	n := Group(KindEntry, string(token), children...)
	n.Section = token
	n.Index = &index
	return n
}

// Control builds an editable field bound to ref. Edits go to onPatch.
func Control(role string, ref FieldRef, value string, multiline bool, onPatch PatchFunc) *Node {
	r := ref
	return &Node{
		Kind:      KindControl,
		Role:      role,
		Text:      value,
		Ref:       &r,
		Multiline: multiline,
		onPatch:   onPatch,
	}
}

// Styled sets the node's style and returns it.
func (n *Node) Styled(s Style) *Node {
	n.Style = s
	return n
}

// WithClass sets the node's class and returns it.
func (n *Node) WithClass(class string) *Node {
	n.Class = class
	return n
}
