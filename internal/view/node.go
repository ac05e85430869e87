// Package view defines the visual tree produced by templates. A tree is
// plain data plus patch callbacks on editable nodes, so it can be rendered
// to HTML, LaTeX, text or a terminal without the template knowing which.
package view

import (
	"errors"

	"github.com/jonathan/resume-builder/internal/richtext"
	"github.com/jonathan/resume-builder/internal/types"
)

// Kind identifies what a node represents
type Kind string

// Node kinds
const (
	KindDocument  Kind = "document"
	KindHeader    Kind = "header"
	KindSection   Kind = "section"
	KindHeading   Kind = "heading"
	KindEntry     Kind = "entry"
	KindRow       Kind = "row"
	KindColumn    Kind = "column"
	KindText      Kind = "text"
	KindRich      Kind = "rich"
	KindLink      Kind = "link"
	KindControl   Kind = "control"
	KindIcon      Kind = "icon"
	KindSeparator Kind = "separator"
	KindRule      Kind = "rule"
)

// Align is horizontal alignment of a block
type Align string

// Alignments
const (
	AlignLeft   Align = ""
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Size is a relative text size
type Size string

// Sizes
const (
	SizeNormal Size = ""
	SizeSmall  Size = "small"
	SizeLarge  Size = "large"
	SizeTitle  Size = "title"
)

// Style carries the presentational hints a serializer may honor.
type Style struct {
	Font       string `json:"font,omitempty"`
	Color      string `json:"color,omitempty"`
	Background string `json:"background,omitempty"`
	Align      Align  `json:"align,omitempty"`
	Size       Size   `json:"size,omitempty"`
	Bold       bool   `json:"bold,omitempty"`
	Italic     bool   `json:"italic,omitempty"`
	Uppercase  bool   `json:"uppercase,omitempty"`
	Dashed     bool   `json:"dashed,omitempty"`
	Thick      bool   `json:"thick,omitempty"`
}

// FieldRef addresses the document field an editable node writes to
type FieldRef struct {
	Section string `json:"section"`
	Index   *int   `json:"index,omitempty"`
	Field   string `json:"field"`
}

// Patch builds the patch that sets the referenced field to value.
func (r FieldRef) Patch(value string) types.FieldPatch {
	return types.FieldPatch{Section: r.Section, Index: r.Index, Field: r.Field, Value: value}
}

// PatchFunc receives edits made through control nodes
type PatchFunc func(types.FieldPatch)

// ErrNotEditable is returned by Set on nodes that are not controls
var ErrNotEditable = errors.New("node is not editable")

// Node is one element of the visual tree
type Node struct {
	Kind      Kind               `json:"kind"`
	Role      string             `json:"role,omitempty"`
	Class     string             `json:"class,omitempty"`
	Style     Style              `json:"style,omitempty"`
	Text      string             `json:"text,omitempty"`
	Rich      richtext.Block     `json:"rich,omitempty"`
	Href      string             `json:"href,omitempty"`
	Icon      string             `json:"icon,omitempty"`
	Section   types.SectionToken `json:"section,omitempty"`
	Index     *int               `json:"index,omitempty"`
	Ref       *FieldRef          `json:"ref,omitempty"`
	Multiline bool               `json:"multiline,omitempty"`
	Children  []*Node            `json:"children,omitempty"`

	onPatch PatchFunc
}

// Set sends an edit for a control node to the template's patch callback.
func (n *Node) Set(value string) error {
	if n.Kind != KindControl || n.Ref == nil {
		return ErrNotEditable
	}
	if n.onPatch != nil {
		n.onPatch(n.Ref.Patch(value))
	}
	return nil
}

// Add appends non-nil children and returns the receiver.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindAll returns every node in the tree matching pred, in document order.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(x *Node) bool {
		if pred(x) {
			out = append(out, x)
		}
		return true
	})
	return out
}

// OfKind matches nodes of the given kind.
func OfKind(k Kind) func(*Node) bool {
	return func(n *Node) bool { return n.Kind == k }
}

// Sections returns the section tokens of the tree's section nodes in order.
func (n *Node) Sections() []types.SectionToken {
	var out []types.SectionToken
	for _, s := range n.FindAll(OfKind(KindSection)) {
		out = append(out, s.Section)
	}
	return out
}

// Control finds the control bound to the given field.
func (n *Node) Control(section string, index *int, field string) *Node {
	for _, c := range n.FindAll(OfKind(KindControl)) {
		r := c.Ref
		if r.Section != section || r.Field != field {
			continue
		}
		if (r.Index == nil) != (index == nil) {
			continue
		}
		if r.Index == nil || *r.Index == *index {
			return c
		}
	}
	return nil
}
