// Package migrations embeds the schema so every binary can apply it without a file path.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
