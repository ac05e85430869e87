package rendering

// icon glyphs for targets without an icon font
var glyphs = map[string]string{
	"mail":           "✉",
	"phone":          "☎",
	"map-pin":        "⌖",
	"linkedin":       "in",
	"github":         "gh",
	"globe":          "◎",
	"building":       "▣",
	"graduation-cap": "◆",
	"link":           "↗",
}

// fontawesome5 commands for the LaTeX target
var faIcons = map[string]string{
	"mail":           `\faEnvelope`,
	"phone":          `\faPhone`,
	"map-pin":        `\faMapMarker*`,
	"linkedin":       `\faLinkedin`,
	"github":         `\faGithub`,
	"globe":          `\faGlobe`,
	"building":       `\faBuilding`,
	"graduation-cap": `\faGraduationCap`,
	"link":           `\faLink`,
}

// Glyph returns a printable symbol for an icon name.
func Glyph(name string) string {
	if g, ok := glyphs[name]; ok {
		return g
	}
	return "•"
}
