package templates

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// ErrUnknownTemplate is returned for names with no registered renderer
var ErrUnknownTemplate = errors.New("unknown template")

var registry = map[types.TemplateName]Renderer{}

func init() {
	for _, v := range []*variant{newModern(), newLegacy(), newMinimal(), newProfessional(), newCreative()} {
		registry[v.name] = v
	}
}

// Get returns the renderer registered under name.
func Get(name types.TemplateName) (Renderer, error) {
	r, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return r, nil
}

// Resolve returns the renderer for name, or the default template when name
// is blank or unknown.
func Resolve(name types.TemplateName) Renderer {
	if r, ok := registry[name]; ok {
		return r
	}
	return registry[types.DefaultTemplate]
}

// All returns every registered renderer in a stable order.
func All() []Renderer {
	out := make([]Renderer, 0, len(registry))
	for _, name := range types.TemplateNames() {
		if r, ok := registry[name]; ok {
			out = append(out, r)
		}
	}
	return out
}
