package rendering

import (
	_ "embed"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/richtext"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/view"
)

//go:embed templates/resume.html.tmpl
var htmlTemplateSource string

//go:embed templates/resume.css
var stylesheet string

var htmlTemplate = template.Must(template.New("resume").Funcs(template.FuncMap{
	"classes":   nodeClasses,
	"style":     nodeStyle,
	"href":      safeHref,
	"glyph":     Glyph,
	"bullet":    func() string { return richtext.BulletGlyph },
	"fieldName": fieldName,
}).Parse(htmlTemplateSource))

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)

type htmlPage struct {
	Title string
	CSS   template.CSS
	Root  *view.Node
}

// RenderHTML renders a visual tree as a standalone HTML page.
func RenderHTML(doc *view.Node) (string, error) {
	if doc == nil || doc.Kind != view.KindDocument {
		return "", &RenderError{Message: "expected a document node"}
	}
	page := htmlPage{
		Title: documentTitle(doc),
		CSS:   template.CSS(stylesheet),
		Root:  doc,
	}
	var sb strings.Builder
	if err := htmlTemplate.ExecuteTemplate(&sb, "page", page); err != nil {
		return "", &TemplateError{Message: "failed to execute html template", Cause: err}
	}
	return sb.String(), nil
}

// RenderHTMLFragment renders a node without the page wrapper, for live
// preview updates.
func RenderHTMLFragment(n *view.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	var sb strings.Builder
	if err := htmlTemplate.ExecuteTemplate(&sb, "node", n); err != nil {
		return "", &TemplateError{Message: "failed to execute html template", Cause: err}
	}
	return sb.String(), nil
}

func nodeClasses(n *view.Node) string {
	parts := []string{"kind-" + string(n.Kind)}
	if n.Role != "" {
		parts = append(parts, "role-"+n.Role)
	}
	if n.Class != "" {
		parts = append(parts, n.Class)
	}
	if n.Style.Size != view.SizeNormal {
		parts = append(parts, "size-"+string(n.Style.Size))
	}
	if n.Style.Align != view.AlignLeft {
		parts = append(parts, "align-"+string(n.Style.Align))
	}
	if n.Style.Thick {
		parts = append(parts, "thick")
	}
	return strings.Join(parts, " ")
}

// nodeStyle builds the inline style attribute. Only validated colours and
// sanitized font names reach the output, so the result is safe CSS.
func nodeStyle(n *view.Node) template.CSS {
	var decls []string
	s := n.Style
	if colorPattern.MatchString(s.Color) {
		if n.Kind == view.KindRule {
			decls = append(decls, "border-color: "+s.Color)
		} else {
			decls = append(decls, "color: "+s.Color)
		}
	}
	if colorPattern.MatchString(s.Background) {
		decls = append(decls, "background-color: "+s.Background)
	}
	if f := templates.SanitizeFont(s.Font); f != "" {
		decls = append(decls, fmt.Sprintf("font-family: %s", quoteFontList(f)))
	}
	if s.Bold {
		decls = append(decls, "font-weight: 600")
	}
	if s.Italic {
		decls = append(decls, "font-style: italic")
	}
	if s.Uppercase {
		decls = append(decls, "text-transform: uppercase")
	}
	return template.CSS(strings.Join(decls, "; "))
}

func quoteFontList(list string) string {
	fams := strings.Split(list, ",")
	out := make([]string, 0, len(fams))
	for _, f := range fams {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		switch f {
		case "serif", "sans-serif", "monospace", "cursive":
			out = append(out, f)
		default:
			out = append(out, `"`+f+`"`)
		}
	}
	return strings.Join(out, ", ")
}

// safeHref passes through the link schemes templates produce. html/template
// would otherwise reject tel: links.
func safeHref(href string) template.URL {
	lower := strings.ToLower(href)
	for _, scheme := range []string{"https://", "http://", "mailto:", "tel:"} {
		if strings.HasPrefix(lower, scheme) {
			return template.URL(href)
		}
	}
	return template.URL("#")
}

func fieldName(n *view.Node) string {
	if n.Ref == nil {
		return ""
	}
	if n.Ref.Index != nil {
		return fmt.Sprintf("%s.%d.%s", n.Ref.Section, *n.Ref.Index, n.Ref.Field)
	}
	return n.Ref.Section + "." + n.Ref.Field
}
