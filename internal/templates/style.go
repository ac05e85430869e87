package templates

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	colorBlack   = "#000000"
	colorGray600 = "#4b5563"
	colorGray700 = "#374151"
	colorGray800 = "#1f2937"
	colorCyan800 = "#155e75"
)

var white = colorful.Color{R: 1, G: 1, B: 1}

// NormalizeHex parses a hex colour ("#rgb" or "#rrggbb") and returns it in
// lower-case six-digit form.
func NormalizeHex(s string) (string, bool) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}

// Lighten blends hex toward white by percent (0-100). Invalid input is returned unchanged.
func Lighten(hex string, percent float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	t := max(0, min(percent, 100)) / 100
	return c.BlendRgb(white, t).Clamped().Hex()
}

// SanitizeFont keeps only characters that are safe in a CSS or LaTeX font
// name. An empty result means the variant default.
func SanitizeFont(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ', r == ',', r == '-':
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}

// ExternalHref turns a user-entered URL into a link target, adding https://
// when no scheme is present.
func ExternalHref(raw string) string {
	v := strings.TrimSpace(raw)
	lower := strings.ToLower(v)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return v
	}
	return "https://" + v
}

// PrimaryFont returns the first family of a CSS font list.
func PrimaryFont(family string) string {
	first, _, _ := strings.Cut(family, ",")
	return strings.TrimSpace(first)
}
