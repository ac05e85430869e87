// Package migrations embeds the SQL migrations for the document store.
package migrations

import "embed"

// FS contains all SQL migration files embedded at compile time.
//
//go:embed *.up.sql
var FS embed.FS
