// Package schemas embeds the JSON Schema documents for stored data.
package schemas

import "embed"

// Files holds every *.schema.json in this directory.
//
//go:embed *.schema.json
var Files embed.FS

// Schema file names
const (
	Resume   = "resume.schema.json"
	Settings = "settings.schema.json"
)
